package grocery

import (
	"fmt"
	"sort"
	"strings"
)

// Cart sort keys. The stored order is insertion order; sorting is a
// read-time view concern only.
const (
	SortName         = "name"
	SortNameDesc     = "name_desc"
	SortPrice        = "price"
	SortPriceDesc    = "price_desc"
	SortTotal        = "total"
	SortTotalDesc    = "total_desc"
	SortQuantity     = "quantity"
	SortQuantityDesc = "quantity_desc"
)

// AddToCart looks the item up across all store catalogs and adds a copy to
// the cart. Re-adding an id already in the cart merges by summing quantity.
func (m *Manager) AddToCart(itemID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.findItem(itemID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, itemID)
	}

	for i := range m.doc.ShoppingList {
		if m.doc.ShoppingList[i].ID == itemID {
			m.doc.ShoppingList[i].Quantity += quantity
			m.saver.Schedule()
			return nil
		}
	}

	m.doc.ShoppingList = append(m.doc.ShoppingList, CartEntry{Item: item, Quantity: quantity})

	m.saver.Schedule()
	return nil
}

// RemoveFromCart drops the entry with the given id. Returns whether an
// entry was actually removed; a miss is not an error.
func (m *Manager) RemoveFromCart(itemID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.doc.ShoppingList {
		if e.ID == itemID {
			m.doc.ShoppingList = append(m.doc.ShoppingList[:i], m.doc.ShoppingList[i+1:]...)
			m.saver.Schedule()
			return true
		}
	}
	return false
}

// UpdateQuantity overwrites an entry's quantity.
func (m *Manager) UpdateQuantity(itemID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.doc.ShoppingList {
		if m.doc.ShoppingList[i].ID == itemID {
			m.doc.ShoppingList[i].Quantity = quantity
			m.saver.Schedule()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, itemID)
}

// ListCart returns the cart as display lines, optionally scoped to one
// store, ordered by the requested sort key (name ascending by default).
func (m *Manager) ListCart(store, sortKey string) []CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]CartLine, 0, len(m.doc.ShoppingList))
	for _, e := range m.doc.ShoppingList {
		if store != "" && e.Store != store {
			continue
		}
		out = append(out, CartLine{CartEntry: e, Total: round2(lineTotal(e.Price, e.Quantity))})
	}

	sortCartLines(out, sortKey)
	return out
}

// CartTotal sums line totals, optionally scoped to one store, rounded to
// two decimals.
func (m *Manager) CartTotal(store string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return round2(sumLines(m.cartEntriesLocked(store)))
}

// StoreItemCount reports how many cart entries belong to a store. Callers
// restoring an archive use it to decide whether to ask for confirmation
// before the destructive replace.
func (m *Manager) StoreItemCount(store string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cartEntriesLocked(store))
}

// ClearCart empties the whole cross-store cart.
func (m *Manager) ClearCart() {
	m.mu.Lock()
	m.doc.ShoppingList = nil
	m.mu.Unlock()

	m.saver.Schedule()
}

func (m *Manager) cartEntriesLocked(store string) []CartEntry {
	if store == "" {
		return m.doc.ShoppingList
	}
	out := make([]CartEntry, 0, len(m.doc.ShoppingList))
	for _, e := range m.doc.ShoppingList {
		if e.Store == store {
			out = append(out, e)
		}
	}
	return out
}

func sortCartLines(lines []CartLine, key string) {
	var less func(i, j int) bool

	switch key {
	case SortNameDesc:
		less = func(i, j int) bool {
			return strings.ToLower(lines[i].Name) > strings.ToLower(lines[j].Name)
		}
	case SortPrice:
		less = func(i, j int) bool { return lines[i].Price < lines[j].Price }
	case SortPriceDesc:
		less = func(i, j int) bool { return lines[i].Price > lines[j].Price }
	case SortTotal:
		less = func(i, j int) bool { return lines[i].Total < lines[j].Total }
	case SortTotalDesc:
		less = func(i, j int) bool { return lines[i].Total > lines[j].Total }
	case SortQuantity:
		less = func(i, j int) bool { return lines[i].Quantity < lines[j].Quantity }
	case SortQuantityDesc:
		less = func(i, j int) bool { return lines[i].Quantity > lines[j].Quantity }
	default:
		less = func(i, j int) bool {
			return strings.ToLower(lines[i].Name) < strings.ToLower(lines[j].Name)
		}
	}

	sort.SliceStable(lines, less)
}
