package grocery

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func errorsIsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

type recordSaver struct {
	scheduled int
	forced    int
}

func (s *recordSaver) Schedule()  { s.scheduled++ }
func (s *recordSaver) ForceSave() { s.forced++ }

func testDoc() Document {
	return Document{
		Stores: map[string][]Item{
			"Trader Joe's": {
				{ID: "tj-1", Name: "Organic Bananas", Category: "Produce", Price: 2.00, Unit: "lb", Store: "Trader Joe's"},
				{ID: "tj-2", Name: "Avocados", Category: "Produce", Price: 1.49, Unit: "each", Store: "Trader Joe's"},
				{ID: "tj-8", Name: "Greek Yogurt", Category: "Dairy", Price: 1.99, Unit: "container", Store: "Trader Joe's"},
			},
			"Safeway": {
				{ID: "sw-1", Name: "Chicken Breast", Category: "Meat", Price: 4.99, Unit: "lb", Store: "Safeway"},
				{ID: "sw-13", Name: "Eggs", Category: "Dairy", Price: 4.99, Unit: "dozen", Store: "Safeway"},
			},
		},
		Budget: 100,
		StoreBudgets: map[string]float64{
			"Trader Joe's": 50,
			"Safeway":      50,
		},
	}
}

func newTestManager(t *testing.T) (*Manager, *recordSaver) {
	t.Helper()

	saver := &recordSaver{}
	m := NewManager(testDoc(), saver, zap.NewNop())
	m.now = func() time.Time { return time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC) }
	m.loc = time.UTC
	return m, saver
}
