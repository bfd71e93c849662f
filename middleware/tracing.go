package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name used when no tracer is given.
const TracerName = "github.com/agentstation/traits"

// Tracing wraps every Process call in an OpenTelemetry span. A nil tracer
// uses the global tracer provider.
func Tracing(tracer trace.Tracer) Middleware {
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	return Wrap(func(kind string, next ProcessFunc) ProcessFunc {
		return func(ctx context.Context, values map[string]any) (map[string]any, error) {
			ctx, span := tracer.Start(ctx, "traits.process "+kind,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(
					attribute.String("traits.node.kind", kind),
					attribute.Int("traits.node.inputs", len(values)),
				),
			)
			defer span.End()

			out, err := next(ctx, values)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				span.SetAttributes(attribute.String("traits.node.phase", string(phaseOf(err))))
				return out, err
			}

			span.SetAttributes(attribute.Int("traits.node.outputs", len(out)))
			span.SetStatus(codes.Ok, "")
			return out, nil
		}
	})
}
