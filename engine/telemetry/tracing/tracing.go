// Package tracing wires the registry's per-engine dispatch spans into
// OpenTelemetry, following the span-per-unit-of-work shape of the
// teacher's engine/telemetry/tracing package.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "metasearch/engine/registry"

// Tracer returns the package-scoped OpenTelemetry tracer. Call sites
// obtain it lazily so tests that never configure a global TracerProvider
// still get a working no-op tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// StartDispatch opens a span for one engine dispatch, tagged with the
// engine id and query text.
func StartDispatch(ctx context.Context, engineID, query string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "engine.dispatch",
		trace.WithAttributes(
			attribute.String("engine.id", engineID),
			attribute.String("query.q", query),
		),
	)
}
