// Package registry implements the Engine Registry from spec.md §4.D: the
// orchestration core that owns every registered engine's runtime policy,
// fans a query out across the eligible engines concurrently, and harvests
// their results for the Aggregator.
//
// The fan-out/harvest shape is grounded on two sources: the teacher's
// worker-goroutine + sync.WaitGroup idiom in
// packages/engine/pipeline/pipeline.go, and the original Rust
// implementation's per-query JoinSet fan-out in
// original_source/src/engines/registry.rs (spawn one task per engine,
// apply a per-task timeout, drain outcomes as they arrive). Go's
// golang.org/x/sync/errgroup — already pulled in transitively by the
// teacher's OpenTelemetry stack — replaces the JoinSet/WaitGroup pairing.
package registry

import (
	"context"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"metasearch/engine/adapter"
	"metasearch/engine/aggregate"
	"metasearch/engine/breaker"
	"metasearch/engine/config"
	"metasearch/engine/models"
	"metasearch/engine/telemetry/logging"
	"metasearch/engine/telemetry/metrics"
	"metasearch/engine/telemetry/tracing"
	"metasearch/engine/throttle"
)

// entry is the registry-owned record for one registered engine: the
// adapter handle, its declared categories, and its breaker/throttle
// state. Created at Register, never recreated for the lifetime of the
// Registry — only the EngineConfig snapshot read at dispatch time varies.
type entry struct {
	adapter    adapter.Adapter
	categories []string
	breaker    *breaker.Breaker
	throttle   *throttle.Throttle
}

// Registry owns the set of registered engines and dispatches queries
// across them. The zero value is not usable; construct with New.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	order   []string
	sealed  bool

	configs *config.Store
	client  *http.Client
	logger  logging.Logger
	metrics *metrics.Provider
}

// Option configures a Registry at construction.
type Option func(*Registry)

func WithConfigStore(s *config.Store) Option {
	return func(r *Registry) { r.configs = s }
}

func WithHTTPClient(c *http.Client) Option {
	return func(r *Registry) { r.client = c }
}

func WithLogger(l logging.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

func WithMetrics(m *metrics.Provider) Option {
	return func(r *Registry) { r.metrics = m }
}

// New builds an empty Registry. Defaults: an empty config store (every
// engine uses models.DefaultEngineConfig()), http.DefaultClient, a
// no-op-ish slog logger, and a fresh (unregistered) metrics Provider.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]*entry),
		configs: config.NewStore(),
		client:  http.DefaultClient,
		logger:  logging.New(nil),
		metrics: metrics.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds adapter a to a new entry, seeded from the current config
// snapshot for a.ID(). Registering the same id twice is an error.
// Registration is only safe before the first Search call.
func (r *Registry) Register(a adapter.Adapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return models.ErrRegistrySealed
	}

	id := a.ID()
	if _, exists := r.entries[id]; exists {
		return models.ErrEngineAlreadyRegistered
	}

	cfg := r.configs.Snapshot(id)
	e := &entry{
		adapter:    a,
		categories: a.Categories(),
		throttle:   throttle.New(),
		breaker: breaker.New(cfg.FailureThreshold, cfg.Cooldown(),
			breaker.WithOnTransition(func(t breaker.Transition) {
				r.onBreakerTransition(id, t)
			}),
		),
	}
	r.entries[id] = e
	r.order = append(r.order, id)
	return nil
}

func (r *Registry) onBreakerTransition(id string, t breaker.Transition) {
	r.logger.WarnCtx(context.Background(), "engine breaker transition",
		"engine_id", id, "from", t.From.String(), "to", t.To.String())
	r.metrics.SetBreakerState(id, breakerStateGauge(t.To))
}

func breakerStateGauge(s breaker.State) int {
	switch s {
	case breaker.Open:
		return metrics.BreakerOpen
	case breaker.HalfOpen:
		return metrics.BreakerHalfOpen
	default:
		return metrics.BreakerClosed
	}
}

// Search runs the fan-out/harvest/merge pipeline for one query. It never
// fails: a fully-failing run returns an empty slice. Upstream cancellation
// of ctx cancels every in-flight engine dispatch.
func (r *Registry) Search(ctx context.Context, query models.SearchQuery, blocklist []string) []models.SearchResult {
	query = query.Normalize()

	r.mu.Lock()
	r.sealed = true
	selected := r.selectEntries(query)
	r.mu.Unlock()

	if len(selected) == 0 {
		return nil
	}

	var mu sync.Mutex
	var harvested []models.SearchResult

	g := new(errgroup.Group)
	for _, id := range selected {
		e := r.entries[id]
		g.Go(func() error {
			defer recoverDispatchPanic(r.logger, id)
			results := r.dispatch(ctx, id, e, query)
			if len(results) == 0 {
				return nil
			}
			mu.Lock()
			harvested = append(harvested, results...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // dispatch never returns an error; this only waits.

	agg := aggregate.New(blocklist)
	return agg.Merge(harvested)
}

// selectEntries applies the eligibility predicate from spec.md §4.D:
// enabled AND category-match AND breaker-closed. Must be called with r.mu
// held.
func (r *Registry) selectEntries(query models.SearchQuery) []string {
	var ids []string
	for _, id := range r.order {
		e := r.entries[id]
		cfg := r.configs.Snapshot(id)
		if !cfg.Enabled {
			continue
		}
		if !query.MatchesAny(e.categories) {
			continue
		}
		if !e.breaker.Check() {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// dispatch runs throttle -> timeout-bounded adapter call -> outcome
// classification -> breaker report -> score shaping for one engine.
func (r *Registry) dispatch(ctx context.Context, id string, e *entry, query models.SearchQuery) []models.SearchResult {
	cfg := r.configs.Snapshot(id)

	if err := e.throttle.Wait(ctx, cfg.Throttle()); err != nil {
		return nil
	}

	dispatchCtx, span := tracing.StartDispatch(ctx, id, query.Q)
	defer span.End()

	timeoutCtx, cancel := context.WithTimeout(dispatchCtx, cfg.Timeout())
	defer cancel()

	start := time.Now()
	results, err := e.adapter.Search(timeoutCtx, query, r.client, cfg)
	elapsed := time.Since(start).Seconds()

	switch {
	case err == nil:
		e.breaker.ReportSuccess()
		r.metrics.RecordDispatch(id, metrics.OutcomeOK, elapsed)
		return shapeScores(id, cfg.Weight, results)

	case timeoutCtx.Err() == context.DeadlineExceeded:
		e.breaker.ReportFailure()
		r.metrics.RecordDispatch(id, metrics.OutcomeTimeout, elapsed)
		r.logger.ErrorCtx(ctx, "engine dispatch timed out", "engine_id", id, "kind", models.KindTimeout.String())
		return nil

	default:
		e.breaker.ReportFailure()
		r.metrics.RecordDispatch(id, metrics.OutcomeError, elapsed)
		kind := "unexpected"
		if ee, ok := err.(*models.EngineError); ok {
			kind = ee.Kind.String()
		}
		r.logger.ErrorCtx(ctx, "engine dispatch failed", "engine_id", id, "kind", kind, "error", err.Error())
		return nil
	}
}

// shapeScores applies spec.md §4.D's score formula: score := weight/(i+1)
// for the i-th result in adapter order, and stamps the dispatching
// engine's id so the Aggregator has a non-empty Engines list to merge on.
func shapeScores(engineID string, weight float64, results []models.SearchResult) []models.SearchResult {
	out := make([]models.SearchResult, len(results))
	for i, res := range results {
		res.Score = weight / float64(i+1)
		if len(res.Engines) == 0 {
			res.Engines = []string{engineID}
		}
		out[i] = res
	}
	return out
}

// recoverDispatchPanic ensures a panic in one engine's dispatch goroutine
// never aborts the batch (spec.md §4.D).
func recoverDispatchPanic(logger logging.Logger, id string) {
	if rec := recover(); rec != nil {
		logger.ErrorCtx(context.Background(), "engine dispatch panicked",
			"engine_id", id, "panic", rec, "stack", string(debug.Stack()))
	}
}
