package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("oddsboard/internal/interfaces/httpapi")

// startSpan opens handler spans under the otelhttp server span. Helpers and
// untraced requests reuse the current span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	current := trace.SpanFromContext(ctx)
	if !current.SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, noEndSpan{current}
	}
	return apiTracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
}

// noEndSpan lets helpers defer End without closing a span they do not own.
type noEndSpan struct {
	trace.Span
}

func (noEndSpan) End(...trace.SpanEndOption) {}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}
