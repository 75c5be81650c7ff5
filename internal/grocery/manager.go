package grocery

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Saver decouples the manager from the persistence scheduler. Schedule is
// the debounced path taken after ordinary mutations; ForceSave is the
// synchronous path for archive operations.
type Saver interface {
	Schedule()
	ForceSave()
}

type noopSaver struct{}

func (noopSaver) Schedule()  {}
func (noopSaver) ForceSave() {}

// Manager owns the whole in-memory state: per-store catalogs, the cart, the
// archive ring, budgets and settings. All operations run to completion under
// one mutex; the only concurrent reader is the persistence scheduler, which
// takes a deep-copied snapshot through the same lock.
type Manager struct {
	mu    sync.Mutex
	doc   Document
	saver Saver
	loc   *time.Location
	now   func() time.Time
	log   *zap.Logger

	maxArchives int
}

const defaultMaxArchives = 6

func NewManager(doc Document, saver Saver, log *zap.Logger) *Manager {
	if saver == nil {
		saver = noopSaver{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if doc.Stores == nil {
		doc.Stores = map[string][]Item{}
	}
	if doc.StoreBudgets == nil {
		doc.StoreBudgets = map[string]float64{}
	}

	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		log.Warn("tzdata unavailable, timestamps fall back to UTC", zap.Error(err))
		loc = time.UTC
	}

	return &Manager{
		doc:         doc,
		saver:       saver,
		loc:         loc,
		now:         time.Now,
		log:         log,
		maxArchives: defaultMaxArchives,
	}
}

// SetSaver installs the persistence hook after construction. The scheduler
// needs the manager for snapshots and the manager needs the scheduler for
// saves; the scheduler is built second.
func (m *Manager) SetSaver(s Saver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s == nil {
		s = noopSaver{}
	}
	m.saver = s
}

// Snapshot returns a deep copy of the full state with a fresh LastUpdated
// stamp, safe to serialize off-thread.
func (m *Manager) Snapshot() Document {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.doc.Clone()
	out.LastUpdated = m.now().In(m.loc)
	return out
}

// StoreNames lists the known stores, sorted.
func (m *Manager) StoreNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.doc.Stores))
	for name := range m.doc.Stores {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// StoreBudgets returns a copy of the per-store budget mapping.
func (m *Manager) StoreBudgets() map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]float64, len(m.doc.StoreBudgets))
	for name, b := range m.doc.StoreBudgets {
		out[name] = b
	}
	return out
}

func (m *Manager) SetBudget(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: budget must be positive", ErrValidation)
	}

	m.mu.Lock()
	m.doc.Budget = amount
	m.mu.Unlock()

	m.saver.Schedule()
	return nil
}

func (m *Manager) SetStoreBudget(store string, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: budget must be positive", ErrValidation)
	}

	m.mu.Lock()
	m.doc.StoreBudgets[store] = amount
	m.mu.Unlock()

	m.saver.Schedule()
	return nil
}

// SetEmailAddress stores the recipient setting. Syntax is checked by the
// email sender at point of use, not here.
func (m *Manager) SetEmailAddress(addr string) {
	m.mu.Lock()
	m.doc.EmailAddress = strings.TrimSpace(addr)
	m.mu.Unlock()

	m.saver.Schedule()
}

func (m *Manager) EmailAddress() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc.EmailAddress
}

// BudgetStatus compares the live cart total against the total budget.
func (m *Manager) BudgetStatus() BudgetStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := sumLines(m.doc.ShoppingList)
	budget := decimal.NewFromFloat(m.doc.Budget)

	var pct decimal.Decimal
	if budget.IsPositive() {
		pct = total.Div(budget).Mul(decimal.NewFromInt(100))
	}

	status := BudgetOnTrack
	switch {
	case pct.GreaterThanOrEqual(decimal.NewFromInt(100)):
		status = BudgetOver
	case pct.GreaterThanOrEqual(decimal.NewFromInt(80)):
		status = BudgetApproaching
	}

	return BudgetStatus{
		Total:      round2(total),
		Budget:     m.doc.Budget,
		Percentage: pct.Round(1).InexactFloat64(),
		Status:     status,
		Remaining:  round2(budget.Sub(total)),
	}
}
