package httpapi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("fbref-fixtures/internal/interfaces/httpapi")

// startHandlerSpan opens httpapi.Handler.<method> under the otelhttp request
// span. Routes excluded from tracing carry no parent and get a no-op span.
func startHandlerSpan(ctx context.Context, method string) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return apiTracer.Start(ctx, handlerSpanName(method))
}

func handlerSpanName(method string) string {
	return "httpapi.Handler." + method
}

// markSpanError records err and the response status on the active span. Only
// 5xx responses flip the span status.
func markSpanError(ctx context.Context, err error, status int) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if status >= 500 {
		span.SetStatus(codes.Error, err.Error())
	}
}
