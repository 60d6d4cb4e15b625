package behavior

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/mediate/handler"
)

// tracerName is the instrumentation scope name for mediate tracing.
const tracerName = "github.com/xraph/mediate"

// Tracing returns a behavior that wraps dispatch in an OpenTelemetry
// span. If no TracerProvider is configured globally, the default noop
// tracer is used and this behavior becomes a pass-through with zero
// overhead.
//
// Span attributes include: mediate.dispatch.id, mediate.dispatch.name,
// mediate.dispatch.kind, mediate.scope.app_id, mediate.scope.org_id.
// On error, the span status is set to codes.Error with the error message.
func Tracing() Behavior {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing behavior using the provided tracer.
// This variant allows injecting a specific TracerProvider for testing or
// when multiple providers are in use.
func TracingWithTracer(tracer trace.Tracer) Behavior {
	return func(ctx context.Context, env *handler.Envelope, next Handler) (any, error) {
		ctx, span := tracer.Start(ctx, "mediate.dispatch",
			trace.WithAttributes(
				attribute.String("mediate.dispatch.id", env.ID.String()),
				attribute.String("mediate.dispatch.name", env.Name),
				attribute.String("mediate.dispatch.kind", string(env.Kind)),
				attribute.String("mediate.scope.app_id", env.ScopeAppID),
				attribute.String("mediate.scope.org_id", env.ScopeOrgID),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		res, err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return res, err
	}
}
