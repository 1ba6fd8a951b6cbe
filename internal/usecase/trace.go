package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("startlist/internal/usecase")

// startUsecaseSpan opens a child span only when the caller already carries
// a valid trace; otherwise the context passes through untouched.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if name == "" || !parent.SpanContext().IsValid() {
		return ctx, parent
	}

	return usecaseTracer.Start(ctx, name)
}
