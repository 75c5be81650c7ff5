package grocery

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ListItems returns the catalog for one store, optionally filtered by exact
// category match. Unknown stores yield an empty slice.
func (m *Manager) ListItems(store, category string) []Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.doc.Stores[store]
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if category != "" && it.Category != category {
			continue
		}
		out = append(out, it)
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Categories returns the distinct categories present in a store's catalog,
// sorted, always including the Miscellaneous sentinel.
func (m *Manager) Categories(store string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	set := map[string]struct{}{MiscCategory: {}}
	for _, it := range m.doc.Stores[store] {
		set[it.Category] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// AddItem inserts a new catalog item. Name and category are normalized to
// plain text before the duplicate check and before storage. The new id is
// the store's prefix plus the highest existing numeric suffix for that
// prefix, plus one.
func (m *Manager) AddItem(store, name, category string, price float64, unit string) (Item, error) {
	name = normalizeText(name)
	category = normalizeText(category)
	unit = strings.TrimSpace(unit)

	if name == "" || category == "" {
		return Item{}, fmt.Errorf("%w: name and category are required", ErrValidation)
	}
	if price <= 0 {
		return Item{}, fmt.Errorf("%w: price must be positive", ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.doc.Stores[store]
	lower := strings.ToLower(name)
	for _, it := range items {
		if strings.ToLower(it.Name) == lower {
			return Item{}, fmt.Errorf("%w: %q in %s", ErrDuplicate, name, store)
		}
	}

	prefix := storePrefix(store)
	item := Item{
		ID:       fmt.Sprintf("%s-%d", prefix, maxSuffix(items, prefix)+1),
		Name:     name,
		Category: category,
		Price:    price,
		Unit:     unit,
		Store:    store,
	}
	m.doc.Stores[store] = append(items, item)

	m.saver.Schedule()
	return item, nil
}

// ItemUpdate carries the optional fields of a catalog edit; nil means
// "leave unchanged".
type ItemUpdate struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	Unit     *string  `json:"unit"`
}

// UpdateItem finds an item by id across all stores and applies the provided
// fields. Any cart entry sharing the id gets the same patch so the cart view
// stays consistent with catalog edits.
func (m *Manager) UpdateItem(id string, upd ItemUpdate) error {
	if upd.Price != nil && *upd.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	found := false
	for store, items := range m.doc.Stores {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			applyUpdate(&items[i], upd)
			m.doc.Stores[store] = items
			found = true
			break
		}
		if found {
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	for i := range m.doc.ShoppingList {
		if m.doc.ShoppingList[i].ID == id {
			applyUpdate(&m.doc.ShoppingList[i].Item, upd)
		}
	}

	m.saver.Schedule()
	return nil
}

// DeleteItem removes an item from one store's catalog.
func (m *Manager) DeleteItem(store, id string) (Item, error) {
	id = strings.TrimSpace(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.doc.Stores[store]
	for i, it := range items {
		if it.ID != id {
			continue
		}
		m.doc.Stores[store] = append(items[:i], items[i+1:]...)
		m.saver.Schedule()
		return it, nil
	}
	return Item{}, fmt.Errorf("%w: %s in %s", ErrNotFound, id, store)
}

func (m *Manager) findItem(id string) (Item, bool) {
	for _, items := range m.doc.Stores {
		for _, it := range items {
			if it.ID == id {
				return it, true
			}
		}
	}
	return Item{}, false
}

func applyUpdate(it *Item, upd ItemUpdate) {
	if upd.Name != nil {
		it.Name = normalizeText(*upd.Name)
	}
	if upd.Category != nil {
		it.Category = normalizeText(*upd.Category)
	}
	if upd.Price != nil {
		it.Price = *upd.Price
	}
	if upd.Unit != nil {
		it.Unit = strings.TrimSpace(*upd.Unit)
	}
}

// storePrefix derives the id prefix: first two letters of the store name,
// lowercased, spaces stripped. "Trader Joe's" -> "tr".
func storePrefix(store string) string {
	s := strings.ToLower(strings.ReplaceAll(store, " ", ""))
	if len(s) > 2 {
		s = s[:2]
	}
	return s
}

func maxSuffix(items []Item, prefix string) int {
	max := 0
	for _, it := range items {
		if !strings.HasPrefix(it.ID, prefix) {
			continue
		}
		parts := strings.SplitN(it.ID, "-", 2)
		if len(parts) != 2 {
			continue
		}
		if n, err := strconv.Atoi(parts[1]); err == nil && n > max {
			max = n
		}
	}
	return max
}
