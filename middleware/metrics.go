package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	focengine "github.com/foc-fun/foc-engine-go"
)

// meterName is the instrumentation scope name for foc-engine metrics.
const meterName = "github.com/foc-fun/foc-engine-go"

// Metrics returns middleware that records per-submission metrics using
// the global OTel MeterProvider. If no MeterProvider is configured, noop
// instruments are used and this middleware becomes a pass-through.
//
// Instruments:
//   - focengine.batch.duration (Float64Histogram): submission time in
//     seconds, with attribute: status ("ok" or "error")
//   - focengine.batch.submissions (Int64Counter): total submissions,
//     with attribute: status ("ok" or "error")
//   - focengine.batch.size (Int64Histogram): actions per batch
func Metrics() Middleware {
	meter := otel.Meter(meterName)
	return MetricsWithMeter(meter)
}

// MetricsWithMeter returns metrics middleware using the provided meter.
// This variant allows injecting a specific MeterProvider for testing.
func MetricsWithMeter(meter metric.Meter) Middleware {
	// Create instruments once at middleware construction time.
	// OTel instruments are safe for concurrent use. On error, the API
	// returns noop instruments so the middleware degrades gracefully.
	duration, dErr := meter.Float64Histogram(
		"focengine.batch.duration",
		metric.WithDescription("Duration of batch submission in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr // noop fallback guaranteed by OTel API contract

	submissions, sErr := meter.Int64Counter(
		"focengine.batch.submissions",
		metric.WithDescription("Total number of batch submissions"),
		metric.WithUnit("{submission}"),
	)
	_ = sErr // noop fallback guaranteed by OTel API contract

	size, zErr := meter.Int64Histogram(
		"focengine.batch.size",
		metric.WithDescription("Number of actions per submitted batch"),
		metric.WithUnit("{action}"),
	)
	_ = zErr // noop fallback guaranteed by OTel API contract

	return func(next focengine.Executor) focengine.Executor {
		return func(ctx context.Context, batch []focengine.Action) error {
			start := time.Now()
			err := next(ctx, batch)
			elapsed := time.Since(start).Seconds()

			status := "ok"
			if err != nil {
				status = "error"
			}
			attrs := metric.WithAttributes(attribute.String("status", status))

			duration.Record(ctx, elapsed, attrs)
			submissions.Add(ctx, 1, attrs)
			size.Record(ctx, int64(len(batch)), attrs)

			return err
		}
	}
}
