package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("fbref-fixtures/internal/usecase")

// startUsecaseSpan only traces inside an existing request trace; CLI runs and
// untraced callers get the no-op span from ctx.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
