package persist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"GroceryHub/internal/grocery"
)

type fakeStore struct {
	mu      sync.Mutex
	name    string
	saves   int
	failing bool
	last    grocery.Document
}

func (f *fakeStore) Name() string { return f.name }

func (f *fakeStore) Ping(ctx context.Context) error {
	if f.failing {
		return errors.New("down")
	}
	return nil
}

func (f *fakeStore) Load(ctx context.Context) (grocery.Document, bool, error) {
	return grocery.Document{}, false, nil
}

func (f *fakeStore) Save(ctx context.Context, doc grocery.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("save failed")
	}
	f.saves++
	f.last = doc
	return nil
}

func (f *fakeStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

func newTestScheduler(primary, fallback *fakeStore, delay time.Duration) *Scheduler {
	var p DocumentStore
	if primary != nil {
		p = primary
	}
	return NewScheduler(Config{
		Snapshot: func() grocery.Document { return grocery.Document{Budget: 42} },
		Primary:  p,
		Fallback: fallback,
		Delay:    delay,
		Log:      zap.NewNop(),
	})
}

func TestScheduler_DebouncesBursts(t *testing.T) {
	fallback := &fakeStore{name: "local"}
	s := newTestScheduler(nil, fallback, 50*time.Millisecond)

	s.Schedule()
	s.Schedule()
	s.Schedule()

	if got := fallback.saveCount(); got != 0 {
		t.Fatalf("saves before window elapsed = %d, want 0", got)
	}

	deadline := time.Now().Add(2 * time.Second)
	for fallback.saveCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	// Allow any (incorrect) extra timers to fire.
	time.Sleep(100 * time.Millisecond)

	if got := fallback.saveCount(); got != 1 {
		t.Fatalf("saves = %d, want exactly 1 for a burst of 3 schedules", got)
	}
}

func TestScheduler_ForceSaveIsImmediate(t *testing.T) {
	fallback := &fakeStore{name: "local"}
	s := newTestScheduler(nil, fallback, time.Hour)

	s.Schedule()
	s.ForceSave()

	if got := fallback.saveCount(); got != 1 {
		t.Fatalf("saves after ForceSave = %d, want 1", got)
	}

	// The pending debounced timer must have been cancelled.
	time.Sleep(50 * time.Millisecond)
	if got := fallback.saveCount(); got != 1 {
		t.Fatalf("saves = %d, want still 1", got)
	}
}

func TestScheduler_RemoteFailureDegradesToLocal(t *testing.T) {
	primary := &fakeStore{name: "hub", failing: true}
	fallback := &fakeStore{name: "local"}
	s := newTestScheduler(primary, fallback, time.Hour)

	s.ForceSave()

	if got := primary.saveCount(); got != 0 {
		t.Errorf("primary saves = %d, want 0", got)
	}
	if got := fallback.saveCount(); got != 1 {
		t.Errorf("fallback saves = %d, want 1", got)
	}
	if fallback.last.Budget != 42 {
		t.Errorf("fallback wrote %+v, want the snapshot", fallback.last)
	}
}

func TestScheduler_PrimaryTakesTheWrite(t *testing.T) {
	primary := &fakeStore{name: "hub"}
	fallback := &fakeStore{name: "local"}
	s := newTestScheduler(primary, fallback, time.Hour)

	s.ForceSave()

	if got := primary.saveCount(); got != 1 {
		t.Errorf("primary saves = %d, want 1", got)
	}
	if got := fallback.saveCount(); got != 0 {
		t.Errorf("fallback saves = %d, want 0", got)
	}
}

func TestScheduler_Ping(t *testing.T) {
	primary := &fakeStore{name: "hub", failing: true}
	fallback := &fakeStore{name: "local"}
	s := newTestScheduler(primary, fallback, time.Hour)

	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("ping with healthy fallback: %v", err)
	}

	fallback.failing = true
	if err := s.Ping(context.Background()); err == nil {
		t.Error("ping with both stores down succeeded")
	}
}
