package behavior

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xraph/mediate/handler"
)

// meterName is the instrumentation scope name for mediate metrics.
const meterName = "github.com/xraph/mediate"

// Metrics returns a behavior that records per-dispatch metrics using
// the global OTel MeterProvider. If no MeterProvider is configured, noop
// instruments are used and this behavior becomes a pass-through.
//
// Instruments:
//   - mediate.request.duration (Float64Histogram): dispatch time in
//     seconds, with attributes: name, kind, status ("ok" or "error")
//   - mediate.request.dispatches (Int64Counter): total dispatches,
//     with attributes: name, kind, status ("ok" or "error")
func Metrics() Behavior {
	meter := otel.Meter(meterName)
	return MetricsWithMeter(meter)
}

// MetricsWithMeter returns metrics behavior using the provided meter.
// This variant allows injecting a specific MeterProvider for testing.
func MetricsWithMeter(meter metric.Meter) Behavior {
	// Create instruments once at behavior construction time.
	// OTel instruments are safe for concurrent use. On error, the API
	// returns noop instruments so the behavior degrades gracefully.
	duration, dErr := meter.Float64Histogram(
		"mediate.request.duration",
		metric.WithDescription("Duration of mediator dispatch in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr // noop fallback guaranteed by OTel API contract

	dispatches, eErr := meter.Int64Counter(
		"mediate.request.dispatches",
		metric.WithDescription("Total number of mediator dispatches"),
		metric.WithUnit("{dispatch}"),
	)
	_ = eErr // noop fallback guaranteed by OTel API contract

	return func(ctx context.Context, env *handler.Envelope, next Handler) (any, error) {
		start := time.Now()
		res, err := next(ctx)
		elapsed := time.Since(start).Seconds()

		status := "ok"
		if err != nil {
			status = "error"
		}

		attrs := metric.WithAttributes(
			attribute.String("name", env.Name),
			attribute.String("kind", string(env.Kind)),
			attribute.String("status", status),
		)

		duration.Record(ctx, elapsed, attrs)
		dispatches.Add(ctx, 1, attrs)

		return res, err
	}
}
