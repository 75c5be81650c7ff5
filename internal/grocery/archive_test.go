package grocery

import (
	"errors"
	"testing"
)

func TestArchiveStore_SnapshotAndClear(t *testing.T) {
	m, saver := newTestManager(t)
	mustAdd(t, m, "tj-1", 2) // 4.00
	mustAdd(t, m, "tj-2", 1) // 1.49
	mustAdd(t, m, "sw-1", 1) // other store, must survive

	entry, err := m.ArchiveStore("Trader Joe's")
	if err != nil {
		t.Fatalf("ArchiveStore: %v", err)
	}

	if entry.ItemCount != 2 {
		t.Errorf("item_count = %d, want 2", entry.ItemCount)
	}
	if entry.TotalCost != 5.49 {
		t.Errorf("total_cost = %v, want 5.49", entry.TotalCost)
	}
	if entry.Store != "Trader Joe's" {
		t.Errorf("store = %s", entry.Store)
	}
	if entry.DateLabel != "2026-03-14 10:30" {
		t.Errorf("date_label = %s", entry.DateLabel)
	}
	if got := entry.StoreTotals["Trader Joe's"]; got != 5.49 {
		t.Errorf("store_totals = %v, want 5.49", entry.StoreTotals)
	}

	remaining := m.ListCart("", "")
	if len(remaining) != 1 || remaining[0].ID != "sw-1" {
		t.Errorf("remaining cart = %+v, want only sw-1", remaining)
	}

	if saver.forced != 1 {
		t.Errorf("forced saves = %d, want 1 (archive saves immediately)", saver.forced)
	}
}

func TestArchiveStore_Empty(t *testing.T) {
	m, saver := newTestManager(t)

	if _, err := m.ArchiveStore("Trader Joe's"); !errors.Is(err, ErrNothingToArchive) {
		t.Errorf("err = %v, want ErrNothingToArchive", err)
	}
	if saver.forced != 0 {
		t.Errorf("forced saves = %d, want 0", saver.forced)
	}
}

func TestArchiveThenRestore_Roundtrip(t *testing.T) {
	m, _ := newTestManager(t)
	mustAdd(t, m, "tj-1", 2)
	mustAdd(t, m, "tj-8", 3)
	mustAdd(t, m, "sw-1", 1)

	before := m.ListCart("Trader Joe's", SortName)

	if _, err := m.ArchiveStore("Trader Joe's"); err != nil {
		t.Fatalf("ArchiveStore: %v", err)
	}
	if _, err := m.RestoreArchive(0); err != nil {
		t.Fatalf("RestoreArchive: %v", err)
	}

	after := m.ListCart("Trader Joe's", SortName)
	if len(after) != len(before) {
		t.Fatalf("restored entries = %d, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i].ID != before[i].ID || after[i].Quantity != before[i].Quantity || after[i].Price != before[i].Price {
			t.Errorf("entry %d = %+v, want %+v", i, after[i].CartEntry, before[i].CartEntry)
		}
	}

	// Other stores untouched, archive retained.
	if got := m.StoreItemCount("Safeway"); got != 1 {
		t.Errorf("safeway entries = %d, want 1", got)
	}
	if got := len(m.Archives()); got != 1 {
		t.Errorf("archives = %d, want 1 (restore keeps the archive)", got)
	}
}

func TestRestore_ReplacesStoreEntries(t *testing.T) {
	m, _ := newTestManager(t)
	mustAdd(t, m, "tj-1", 2)

	if _, err := m.ArchiveStore("Trader Joe's"); err != nil {
		t.Fatalf("ArchiveStore: %v", err)
	}

	// Build up different content for the same store before restoring.
	mustAdd(t, m, "tj-2", 5)

	if _, err := m.RestoreArchive(0); err != nil {
		t.Fatalf("RestoreArchive: %v", err)
	}

	lines := m.ListCart("Trader Joe's", "")
	if len(lines) != 1 || lines[0].ID != "tj-1" || lines[0].Quantity != 2 {
		t.Errorf("restore did not replace: %+v", lines)
	}
}

func TestRestore_AllStoresClearsWholeCart(t *testing.T) {
	m, _ := newTestManager(t)
	mustAdd(t, m, "tj-1", 1)
	mustAdd(t, m, "sw-1", 1)

	if _, err := m.ArchiveStore(AllStores); err != nil {
		t.Fatalf("ArchiveStore: %v", err)
	}

	mustAdd(t, m, "tj-2", 9)

	if _, err := m.RestoreArchive(0); err != nil {
		t.Fatalf("RestoreArchive: %v", err)
	}

	lines := m.ListCart("", SortName)
	if len(lines) != 2 {
		t.Fatalf("cart entries = %d, want the 2 archived ones", len(lines))
	}
	for _, l := range lines {
		if l.ID == "tj-2" {
			t.Errorf("pre-restore entry survived an all-stores restore")
		}
	}
}

func TestRestore_BadIndex(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.RestoreArchive(0); !errors.Is(err, ErrBadIndex) {
		t.Errorf("empty ring err = %v, want ErrBadIndex", err)
	}
	if _, err := m.RestoreArchive(-1); !errors.Is(err, ErrBadIndex) {
		t.Errorf("negative index err = %v, want ErrBadIndex", err)
	}
}

func TestArchiveRing_EvictsOldestAtCapacity(t *testing.T) {
	m, _ := newTestManager(t)

	// Seven archives; labels via quantity let us identify entries.
	for i := 1; i <= 7; i++ {
		mustAdd(t, m, "tj-1", i)
		if _, err := m.ArchiveStore("Trader Joe's"); err != nil {
			t.Fatalf("archive %d: %v", i, err)
		}
	}

	archives := m.Archives()
	if len(archives) != defaultMaxArchives {
		t.Fatalf("ring size = %d, want %d", len(archives), defaultMaxArchives)
	}
	if archives[0].Items[0].Quantity != 7 {
		t.Errorf("newest first: quantity = %d, want 7", archives[0].Items[0].Quantity)
	}
	// The first archive (quantity 1) must have been evicted.
	if oldest := archives[len(archives)-1]; oldest.Items[0].Quantity != 2 {
		t.Errorf("oldest retained quantity = %d, want 2", oldest.Items[0].Quantity)
	}
}

func TestDeleteArchives_DescendingOrder(t *testing.T) {
	m, saver := newTestManager(t)

	for i := 1; i <= 3; i++ {
		mustAdd(t, m, "tj-1", i)
		if _, err := m.ArchiveStore("Trader Joe's"); err != nil {
			t.Fatalf("archive %d: %v", i, err)
		}
	}
	// Ring is now [qty3, qty2, qty1] newest-first.

	if got := m.DeleteArchives([]int{0, 2}); got != 2 {
		t.Fatalf("deleted = %d, want 2", got)
	}

	archives := m.Archives()
	if len(archives) != 1 {
		t.Fatalf("remaining archives = %d, want 1", len(archives))
	}
	if archives[0].Items[0].Quantity != 2 {
		t.Errorf("survivor quantity = %d, want middle entry 2", archives[0].Items[0].Quantity)
	}
	if saver.forced != 4 {
		t.Errorf("forced saves = %d, want 4 (3 archives + 1 batch delete)", saver.forced)
	}
}

func TestDeleteArchives_AllInvalid(t *testing.T) {
	m, saver := newTestManager(t)
	forcedBefore := saver.forced

	if got := m.DeleteArchives([]int{5, -1, 99}); got != 0 {
		t.Errorf("deleted = %d, want 0", got)
	}
	if saver.forced != forcedBefore {
		t.Errorf("save forced for a no-op batch delete")
	}
}

func TestDeleteArchive_Single(t *testing.T) {
	m, _ := newTestManager(t)
	mustAdd(t, m, "tj-1", 1)
	if _, err := m.ArchiveStore("Trader Joe's"); err != nil {
		t.Fatalf("ArchiveStore: %v", err)
	}

	removed, err := m.DeleteArchive(0)
	if err != nil {
		t.Fatalf("DeleteArchive: %v", err)
	}
	if removed.Store != "Trader Joe's" {
		t.Errorf("removed store = %s", removed.Store)
	}
	if _, err := m.DeleteArchive(0); !errors.Is(err, ErrBadIndex) {
		t.Errorf("err = %v, want ErrBadIndex on empty ring", err)
	}
}

func TestSummary(t *testing.T) {
	m, _ := newTestManager(t)

	if _, ok := m.Summary(); ok {
		t.Fatal("summary reported for empty ring")
	}

	mustAdd(t, m, "tj-1", 2) // 4.00
	if _, err := m.ArchiveStore("Trader Joe's"); err != nil {
		t.Fatalf("ArchiveStore: %v", err)
	}
	mustAdd(t, m, "tj-1", 1) // 2.00
	mustAdd(t, m, "sw-1", 1) // 4.99
	if _, err := m.ArchiveStore(AllStores); err != nil {
		t.Fatalf("ArchiveStore: %v", err)
	}

	summary, ok := m.Summary()
	if !ok {
		t.Fatal("no summary for populated ring")
	}
	if summary.TotalArchives != 2 {
		t.Errorf("total_archives = %d, want 2", summary.TotalArchives)
	}
	if summary.TotalSpent != 10.99 {
		t.Errorf("total_spent = %v, want 10.99", summary.TotalSpent)
	}
	if summary.TotalItems != 3 {
		t.Errorf("total_items = %d, want 3", summary.TotalItems)
	}
	if summary.AvgPerTrip != 5.5 {
		t.Errorf("avg_per_trip = %v, want 5.5", summary.AvgPerTrip)
	}
	if got := summary.StoreTotals["Trader Joe's"]; got != 6.00 {
		t.Errorf("trader joe's cumulative = %v, want 6.00", got)
	}
	if got := summary.StoreTotals["Safeway"]; got != 4.99 {
		t.Errorf("safeway cumulative = %v, want 4.99", got)
	}

	if len(summary.TopItems) == 0 || summary.TopItems[0].Name != "Organic Bananas" {
		t.Fatalf("top items = %+v, want Organic Bananas first", summary.TopItems)
	}
	if summary.TopItems[0].Quantity != 3 {
		t.Errorf("top quantity = %d, want 3 across archives", summary.TopItems[0].Quantity)
	}
}
