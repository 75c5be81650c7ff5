package grocery

import "time"

// AllStores is the sentinel store name meaning "every store at once". It is
// accepted by the archive operation and recorded on archives built from the
// whole cart.
const AllStores = "All Stores"

// MiscCategory is always offered as a category choice even when no item
// carries it.
const MiscCategory = "Miscellaneous"

// Item is a catalog entry. IDs look like "tj-12": a per-store prefix plus a
// numeric suffix assigned at insert time.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Unit     string  `json:"unit"`
	Store    string  `json:"store"`
}

// CartEntry is a denormalized copy of a catalog item plus a quantity. The
// cart owns its copies; catalog edits reach it only through the explicit
// patch in UpdateItem.
type CartEntry struct {
	Item
	Quantity int `json:"quantity"`
}

// CartLine is a read-time view of a cart entry with its computed line total.
type CartLine struct {
	CartEntry
	Total float64 `json:"total"`
}

// ArchiveEntry is a snapshot of a past shopping trip for one store (or the
// whole cart when Store == AllStores).
type ArchiveEntry struct {
	Date        time.Time          `json:"date"`
	DateLabel   string             `json:"date_label"`
	Store       string             `json:"store"`
	Items       []CartEntry        `json:"items"`
	ItemCount   int                `json:"item_count"`
	TotalCost   float64            `json:"total_cost"`
	StoreTotals map[string]float64 `json:"store_totals,omitempty"`
}

// ArchiveSummary aggregates analytics across every retained archive.
type ArchiveSummary struct {
	TotalArchives int                `json:"total_archives"`
	TotalSpent    float64            `json:"total_spent"`
	TotalItems    int                `json:"total_items"`
	AvgPerTrip    float64            `json:"avg_per_trip"`
	StoreTotals   map[string]float64 `json:"store_totals"`
	TopItems      []TopItem          `json:"top_items"`
}

// TopItem is one row of the most-purchased ranking.
type TopItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// BudgetStatus reports the cart total against the configured total budget.
type BudgetStatus struct {
	Total      float64 `json:"total"`
	Budget     float64 `json:"budget"`
	Percentage float64 `json:"percentage"`
	Status     string  `json:"status"`
	Remaining  float64 `json:"remaining"`
}

// Budget status levels.
const (
	BudgetOnTrack     = "on_track"
	BudgetApproaching = "approaching_limit"
	BudgetOver        = "over_budget"
)

// Document is the full persisted state, both the remote document and the
// local file fallback.
type Document struct {
	Stores       map[string][]Item  `json:"stores"`
	ShoppingList []CartEntry        `json:"shopping_list"`
	Budget       float64            `json:"budget"`
	StoreBudgets map[string]float64 `json:"store_budgets"`
	EmailAddress string             `json:"email_address"`
	Archives     []ArchiveEntry     `json:"archived_lists"`
	LastUpdated  time.Time          `json:"last_updated"`
}

// Clone deep-copies the document so a snapshot handed to the persistence
// layer cannot alias live state.
func (d Document) Clone() Document {
	out := d
	out.Stores = make(map[string][]Item, len(d.Stores))
	for name, items := range d.Stores {
		out.Stores[name] = append([]Item(nil), items...)
	}
	out.ShoppingList = append([]CartEntry(nil), d.ShoppingList...)
	out.StoreBudgets = make(map[string]float64, len(d.StoreBudgets))
	for name, b := range d.StoreBudgets {
		out.StoreBudgets[name] = b
	}
	out.Archives = make([]ArchiveEntry, len(d.Archives))
	for i, a := range d.Archives {
		c := a
		c.Items = append([]CartEntry(nil), a.Items...)
		c.StoreTotals = make(map[string]float64, len(a.StoreTotals))
		for s, t := range a.StoreTotals {
			c.StoreTotals[s] = t
		}
		out.Archives[i] = c
	}
	return out
}
