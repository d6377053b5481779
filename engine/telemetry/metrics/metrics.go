// Package metrics wraps github.com/prometheus/client_golang behind a small
// Provider the registry reports dispatch outcomes and breaker state
// through, grounded on the teacher's
// engine/telemetry/metrics/prometheus.go PrometheusProvider (a dynamic
// counter/gauge/histogram-by-name registry with a cardinality guard),
// narrowed here to the fixed set of series the search engine actually
// emits instead of an open-ended metric-name API.
package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Provider records the metrics the registry and breaker emit.
type Provider struct {
	reg *prom.Registry

	dispatchTotal   *prom.CounterVec
	dispatchLatency *prom.HistogramVec
	breakerState    *prom.GaugeVec
}

// New builds a Provider with its own Prometheus registry.
func New() *Provider {
	reg := prom.NewRegistry()

	dispatchTotal := prom.NewCounterVec(prom.CounterOpts{
		Name: "metasearch_engine_dispatch_total",
		Help: "Count of per-engine dispatch outcomes.",
	}, []string{"engine", "outcome"})

	dispatchLatency := prom.NewHistogramVec(prom.HistogramOpts{
		Name:    "metasearch_engine_dispatch_seconds",
		Help:    "Per-engine dispatch latency in seconds.",
		Buckets: prom.DefBuckets,
	}, []string{"engine"})

	breakerState := prom.NewGaugeVec(prom.GaugeOpts{
		Name: "metasearch_engine_breaker_state",
		Help: "Circuit breaker state per engine: 0=closed, 1=half-open, 2=open.",
	}, []string{"engine"})

	reg.MustRegister(dispatchTotal, dispatchLatency, breakerState)

	return &Provider{
		reg:             reg,
		dispatchTotal:   dispatchTotal,
		dispatchLatency: dispatchLatency,
		breakerState:    breakerState,
	}
}

// Outcome is one of "ok", "error", "timeout", "skipped" — the registry's
// classification of a single dispatch.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeError   Outcome = "error"
	OutcomeTimeout Outcome = "timeout"
	OutcomeSkipped Outcome = "skipped"
)

// RecordDispatch records one dispatch's outcome and latency for engineID.
func (p *Provider) RecordDispatch(engineID string, outcome Outcome, seconds float64) {
	if p == nil {
		return
	}
	p.dispatchTotal.WithLabelValues(engineID, string(outcome)).Inc()
	p.dispatchLatency.WithLabelValues(engineID).Observe(seconds)
}

// BreakerState values reported via SetBreakerState, one per engine/breaker.State.
// The numbering differs from breaker.State's own (which orders Open before
// HalfOpen); the registry maps between the two.
const (
	BreakerClosed   = 0
	BreakerHalfOpen = 1
	BreakerOpen     = 2
)

// SetBreakerState records the current breaker state gauge for engineID.
func (p *Provider) SetBreakerState(engineID string, state int) {
	if p == nil {
		return
	}
	p.breakerState.WithLabelValues(engineID).Set(float64(state))
}

// Handler exposes the provider's registry over HTTP for scraping.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{})
}
