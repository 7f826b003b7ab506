package restclient

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/kbukum/restkit/restclient"

// tracing holds the optional OpenTelemetry hook. A nil *tracing disables
// all span work, so the facade can call start/end unconditionally.
type tracing struct {
	tracer  trace.Tracer
	service string
}

// WithTracing opens an OpenTelemetry span around each logical call (all of
// its attempts), named "{serviceName}.{METHOD} {path}". Spans are emitted
// through the globally installed tracer provider; without one they are
// no-ops.
func WithTracing(serviceName string) Option {
	return func(c *Client) {
		c.tracing = &tracing{
			tracer:  otel.Tracer(tracerName),
			service: serviceName,
		}
	}
}

func (t *tracing) start(ctx context.Context, spec *RequestSpec) (context.Context, trace.Span) {
	if t == nil {
		return ctx, nil
	}
	return t.tracer.Start(ctx, t.service+"."+spec.Method+" "+spec.URL.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", spec.Method),
			attribute.String("url.full", spec.URL.String()),
		),
	)
}

func (t *tracing) end(span trace.Span, status, attempts int, err error) {
	if t == nil || span == nil {
		return
	}
	if status > 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	span.SetAttributes(attribute.Int("http.request.resend_count", attempts-1))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
