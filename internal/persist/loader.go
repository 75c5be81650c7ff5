package persist

import (
	"context"

	"go.uber.org/zap"

	"GroceryHub/internal/grocery"
)

// Loader tries an ordered list of document stores; the first one holding a
// document wins. When none does, the seed dataset is used. After any
// successful path the baseline store is healed back into the catalog.
type Loader struct {
	Sources []DocumentStore
	Log     *zap.Logger
}

// Result reports where the document came from and whether the baseline
// self-heal changed it (in which case a save should be scheduled).
type Result struct {
	Doc    grocery.Document
	Source string
	Healed bool
}

func (l *Loader) Load(ctx context.Context) Result {
	log := l.Log
	if log == nil {
		log = zap.NewNop()
	}

	for _, src := range l.Sources {
		doc, found, err := src.Load(ctx)
		if err != nil {
			log.Warn("load source failed", zap.String("source", src.Name()), zap.Error(err))
			continue
		}
		if !found {
			log.Info("load source empty", zap.String("source", src.Name()))
			continue
		}

		log.Info("state loaded",
			zap.String("source", src.Name()),
			zap.Int("stores", len(doc.Stores)),
			zap.Int("cart_items", len(doc.ShoppingList)))
		healed := ensureBaseline(&doc)
		return Result{Doc: doc, Source: src.Name(), Healed: healed}
	}

	log.Info("no persisted state found, seeding defaults")
	doc := grocery.SeedDocument()
	ensureBaseline(&doc)
	return Result{Doc: doc, Source: "seed", Healed: false}
}

// ensureBaseline heals a known historical data gap: documents persisted
// before the baseline store existed come back without it.
func ensureBaseline(doc *grocery.Document) bool {
	if doc.Stores == nil {
		doc.Stores = map[string][]grocery.Item{}
	}
	if doc.StoreBudgets == nil {
		doc.StoreBudgets = map[string]float64{}
	}

	healed := false
	if len(doc.Stores[grocery.BaselineStore]) == 0 {
		doc.Stores[grocery.BaselineStore] = grocery.BaselineItems()
		healed = true
	}
	if _, ok := doc.StoreBudgets[grocery.BaselineStore]; !ok {
		doc.StoreBudgets[grocery.BaselineStore] = grocery.DefaultBaselineBudget
	}
	return healed
}
