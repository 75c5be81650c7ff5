package grocery

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ArchiveStore snapshots the cart entries belonging to one store (or the
// whole cart for the AllStores sentinel) into a new archive at the front of
// the ring, evicts the oldest entry past capacity, and removes the archived
// entries from the live cart. Archiving is deliberate and infrequent, so the
// save is immediate rather than debounced.
func (m *Manager) ArchiveStore(store string) (ArchiveEntry, error) {
	m.mu.Lock()

	all := store == "" || store == AllStores

	selected := make([]CartEntry, 0, len(m.doc.ShoppingList))
	remaining := make([]CartEntry, 0, len(m.doc.ShoppingList))
	for _, e := range m.doc.ShoppingList {
		if all || e.Store == store {
			selected = append(selected, e)
		} else {
			remaining = append(remaining, e)
		}
	}

	if len(selected) == 0 {
		m.mu.Unlock()
		if all {
			return ArchiveEntry{}, ErrNothingToArchive
		}
		return ArchiveEntry{}, fmt.Errorf("%w for %s", ErrNothingToArchive, store)
	}

	storeTotals := map[string]decimal.Decimal{}
	for _, e := range selected {
		storeTotals[e.Store] = storeTotals[e.Store].Add(lineTotal(e.Price, e.Quantity))
	}
	rounded := make(map[string]float64, len(storeTotals))
	for s, t := range storeTotals {
		rounded[s] = round2(t)
	}

	label := store
	if all {
		label = AllStores
	}

	now := m.now().In(m.loc)
	entry := ArchiveEntry{
		Date:        now,
		DateLabel:   now.Format("2006-01-02 15:04"),
		Store:       label,
		Items:       selected,
		ItemCount:   len(selected),
		TotalCost:   round2(sumLines(selected)),
		StoreTotals: rounded,
	}

	m.doc.Archives = append([]ArchiveEntry{entry}, m.doc.Archives...)
	if len(m.doc.Archives) > m.maxArchives {
		m.doc.Archives = m.doc.Archives[:m.maxArchives]
	}
	m.doc.ShoppingList = remaining
	m.mu.Unlock()

	m.saver.ForceSave()
	return entry, nil
}

// Archives returns the ring newest-first.
func (m *Manager) Archives() []ArchiveEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ArchiveEntry, len(m.doc.Archives))
	copy(out, m.doc.Archives)
	return out
}

// RestoreArchive copies an archive's items back into the live cart,
// replacing whatever the cart held for that archive's store. An AllStores
// archive replaces the entire cart. The archive itself is kept.
func (m *Manager) RestoreArchive(index int) (ArchiveEntry, error) {
	m.mu.Lock()

	if index < 0 || index >= len(m.doc.Archives) {
		m.mu.Unlock()
		return ArchiveEntry{}, fmt.Errorf("%w: %d", ErrBadIndex, index)
	}

	archive := m.doc.Archives[index]

	var remaining []CartEntry
	if archive.Store != AllStores {
		for _, e := range m.doc.ShoppingList {
			if e.Store != archive.Store {
				remaining = append(remaining, e)
			}
		}
	}
	m.doc.ShoppingList = append(remaining, archive.Items...)
	m.mu.Unlock()

	m.saver.Schedule()
	return archive, nil
}

// DeleteArchive removes one archive by index with an immediate save.
func (m *Manager) DeleteArchive(index int) (ArchiveEntry, error) {
	m.mu.Lock()

	if index < 0 || index >= len(m.doc.Archives) {
		m.mu.Unlock()
		return ArchiveEntry{}, fmt.Errorf("%w: %d", ErrBadIndex, index)
	}

	removed := m.doc.Archives[index]
	m.doc.Archives = append(m.doc.Archives[:index], m.doc.Archives[index+1:]...)
	m.mu.Unlock()

	m.saver.ForceSave()
	return removed, nil
}

// DeleteArchives removes a batch of indices. Indices are processed in
// descending numeric order so earlier removals cannot shift later ones.
// Invalid indices are skipped; the count of actual removals is returned.
func (m *Manager) DeleteArchives(indices []int) int {
	if len(indices) == 0 {
		return 0
	}

	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	m.mu.Lock()
	deleted := 0
	for _, idx := range sorted {
		if idx < 0 || idx >= len(m.doc.Archives) {
			continue
		}
		m.doc.Archives = append(m.doc.Archives[:idx], m.doc.Archives[idx+1:]...)
		deleted++
	}
	m.mu.Unlock()

	if deleted > 0 {
		m.saver.ForceSave()
	}
	return deleted
}

// Summary aggregates analytics across the whole ring. Returns ok=false when
// no archives are retained.
func (m *Manager) Summary() (ArchiveSummary, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.doc.Archives) == 0 {
		return ArchiveSummary{}, false
	}

	spent := decimal.Zero
	totalItems := 0
	storeTotals := map[string]float64{}

	counts := map[string]int{}
	var order []string

	for _, a := range m.doc.Archives {
		spent = spent.Add(decimal.NewFromFloat(a.TotalCost))
		totalItems += a.ItemCount
		for s, t := range a.StoreTotals {
			storeTotals[s] += t
		}
		for _, it := range a.Items {
			if _, seen := counts[it.Name]; !seen {
				order = append(order, it.Name)
			}
			counts[it.Name] += it.Quantity
		}
	}

	// Rank by cumulative quantity, ties broken by first-encountered order.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > 10 {
		order = order[:10]
	}
	top := make([]TopItem, len(order))
	for i, name := range order {
		top[i] = TopItem{Name: name, Quantity: counts[name]}
	}

	n := int64(len(m.doc.Archives))
	return ArchiveSummary{
		TotalArchives: int(n),
		TotalSpent:    round2(spent),
		TotalItems:    totalItems,
		AvgPerTrip:    round2(spent.Div(decimal.NewFromInt(n))),
		StoreTotals:   storeTotals,
		TopItems:      top,
	}, true
}
