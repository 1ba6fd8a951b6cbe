package httpapi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("startlist/internal/interfaces/httpapi")

// startSpan opens a child span only when the request already carries a
// valid trace; otherwise the context passes through untouched.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if name == "" || !parent.SpanContext().IsValid() {
		return ctx, parent
	}

	return apiTracer.Start(ctx, name)
}
