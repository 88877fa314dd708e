// Package engine orchestrates ingestion, profile matching, ranking and
// alerting on top of the store.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/donaldgifford/dealsense/internal/cache"
	"github.com/donaldgifford/dealsense/internal/ingest"
	"github.com/donaldgifford/dealsense/internal/metrics"
	"github.com/donaldgifford/dealsense/internal/notify"
	"github.com/donaldgifford/dealsense/internal/store"
	score "github.com/donaldgifford/dealsense/pkg/scorer"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

var (
	// ErrNotFound is returned when a profile or deal does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a request is missing required fields
	// or carries out of range values.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIngestionRunning is returned when an ingestion run is requested
	// while another is still in progress.
	ErrIngestionRunning = errors.New("ingestion already running")
)

// DefaultAlertThreshold is the minimum match score that raises an alert.
const DefaultAlertThreshold = 0.8

// Engine ties the scoring core to storage, sources and notifications.
type Engine struct {
	store    store.Store
	sources  []ingest.Source
	notifier notify.Notifier
	trust    cache.TrustCache
	log      *slog.Logger
	nowFunc  func() time.Time

	alertThreshold float64
	ingestMu       sync.Mutex
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithSources sets the feeds polled by RunIngestion.
func WithSources(sources ...ingest.Source) EngineOption {
	return func(e *Engine) {
		e.sources = sources
	}
}

// WithNotifier sets the alert notifier. Alerts are logged and discarded
// when none is set.
func WithNotifier(n notify.Notifier) EngineOption {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithTrustCache sets the trust score cache.
func WithTrustCache(c cache.TrustCache) EngineOption {
	return func(e *Engine) {
		e.trust = c
	}
}

// WithNowFunc overrides the clock for testing.
func WithNowFunc(f func() time.Time) EngineOption {
	return func(e *Engine) {
		e.nowFunc = f
	}
}

// WithAlertThreshold sets the minimum match score that raises an alert.
func WithAlertThreshold(threshold float64) EngineOption {
	return func(e *Engine) {
		e.alertThreshold = threshold
	}
}

// NewEngine creates a new Engine backed by s.
func NewEngine(s store.Store, opts ...EngineOption) *Engine {
	e := &Engine{
		store:          s,
		trust:          cache.Noop{},
		log:            slog.Default(),
		nowFunc:        time.Now,
		alertThreshold: DefaultAlertThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.notifier == nil {
		e.notifier = notify.NewNoOpNotifier(e.log)
	}
	return e
}

// trustAt returns the trust score of d observed at now, consulting the
// cache first. Cache failures are logged and treated as misses.
func (e *Engine) trustAt(ctx context.Context, d *domain.Deal, now time.Time) float64 {
	key := cache.Key(d.ID, now, score.AgeBand(d.PostedAt, now))

	v, ok, err := e.trust.Get(ctx, key)
	switch {
	case err != nil:
		e.log.Warn("trust cache read failed", "key", key, "error", err)
	case ok:
		metrics.TrustCacheHitsTotal.Inc()
		return v
	}
	metrics.TrustCacheMissesTotal.Inc()

	v = score.TrustAt(*d, now)
	metrics.TrustScoreDistribution.Observe(v)

	if err := e.trust.Set(ctx, key, v); err != nil {
		e.log.Warn("trust cache write failed", "key", key, "error", err)
	}
	return v
}

// lookupErr maps a store lookup failure onto the engine's error taxonomy.
func lookupErr(kind, id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return fmt.Errorf("%s %s: %w", kind, id, err)
}
