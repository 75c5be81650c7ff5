package persist

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"GroceryHub/internal/grocery"
)

const (
	// DefaultSaveDelay is the debounce window: bursts of mutations inside
	// it collapse into one flush.
	DefaultSaveDelay = 3 * time.Second

	flushTimeout = 10 * time.Second
)

// Metrics counts flush outcomes. "remote" means the primary store took the
// write, "degraded" means the local fallback did, "failed" means neither.
type Metrics struct {
	Saves    *prometheus.CounterVec
	Duration prometheus.Histogram
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Saves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grocery_saves_total",
				Help: "State document flushes by outcome",
			},
			[]string{"outcome"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "grocery_save_duration_seconds",
				Help: "State document flush latency",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Saves, m.Duration)
	}
	return m
}

// Scheduler debounces saves of the full state document. Schedule arms (or
// re-arms) a timer; only the latest state at fire time is written. ForceSave
// cancels any pending timer and flushes synchronously. A remote write
// failure degrades to the local fallback and is never surfaced to the
// mutating caller.
type Scheduler struct {
	snapshot func() grocery.Document
	primary  DocumentStore
	fallback DocumentStore
	delay    time.Duration
	log      *zap.Logger
	metrics  *Metrics

	mu    sync.Mutex
	timer *time.Timer
}

// Config carries the scheduler's collaborators. Primary may be nil (local
// only); Fallback must not be.
type Config struct {
	Snapshot func() grocery.Document
	Primary  DocumentStore
	Fallback DocumentStore
	Delay    time.Duration
	Log      *zap.Logger
	Metrics  *Metrics
}

func NewScheduler(cfg Config) *Scheduler {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultSaveDelay
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics(nil)
	}
	return &Scheduler{
		snapshot: cfg.Snapshot,
		primary:  cfg.Primary,
		fallback: cfg.Fallback,
		delay:    cfg.Delay,
		log:      cfg.Log,
		metrics:  cfg.Metrics,
	}
}

// Schedule arms the debounce timer, cancelling any pending one. Non-blocking.
func (s *Scheduler) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() { s.flush() })
}

// ForceSave cancels any pending timer and flushes immediately, surfacing
// the I/O latency to the caller.
func (s *Scheduler) ForceSave() {
	s.cancel()
	s.flush()
}

// Flush is the shutdown path: cancel whatever is pending and write once.
func (s *Scheduler) Flush() {
	s.ForceSave()
}

// Ping probes durable storage: ready when either the primary or the
// fallback is reachable.
func (s *Scheduler) Ping(ctx context.Context) error {
	if s.primary != nil {
		if err := s.primary.Ping(ctx); err == nil {
			return nil
		}
	}
	return s.fallback.Ping(ctx)
}

func (s *Scheduler) cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	doc := s.snapshot()
	start := time.Now()

	if s.primary != nil {
		err := s.primary.Save(ctx, doc)
		if err == nil {
			s.metrics.Saves.WithLabelValues("remote").Inc()
			s.metrics.Duration.Observe(time.Since(start).Seconds())
			s.log.Info("state saved", zap.String("store", s.primary.Name()))
			return
		}
		s.log.Warn("remote save failed, falling back to local",
			zap.String("store", s.primary.Name()), zap.Error(err))
	}

	if err := s.fallback.Save(ctx, doc); err != nil {
		s.metrics.Saves.WithLabelValues("failed").Inc()
		s.log.Error("local save failed, state not persisted",
			zap.String("store", s.fallback.Name()), zap.Error(err))
		return
	}

	outcome := "local"
	if s.primary != nil {
		outcome = "degraded"
	}
	s.metrics.Saves.WithLabelValues(outcome).Inc()
	s.metrics.Duration.Observe(time.Since(start).Seconds())
	s.log.Info("state saved", zap.String("store", s.fallback.Name()))
}
