package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName identifies the bridge's instrumentation scope.
const meterName = "github.com/mcu-control/mcb"

// Recorder records per-dispatch metrics. The zero value (and a disabled
// recorder) is safe to use and records nothing.
type Recorder struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewRecorder creates a metrics recorder. queueDepth, when non-nil, is
// polled by an observable gauge reporting the current request backlog.
// A disabled recorder is inert.
func NewRecorder(enabled bool, queueDepth func() int) (*Recorder, error) {
	if !enabled {
		return &Recorder{}, nil
	}

	meter := otel.Meter(meterName)

	requests, err := meter.Int64Counter("mcb.requests",
		metric.WithDescription("Dispatched bridge requests by command and outcome"))
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}

	duration, err := meter.Float64Histogram("mcb.dispatch.duration",
		metric.WithDescription("Dispatch latency per request"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	if queueDepth != nil {
		_, err = meter.Int64ObservableGauge("mcb.queue.depth",
			metric.WithDescription("Requests currently waiting for a drain pass"),
			metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
				o.Observe(int64(queueDepth()))
				return nil
			}))
		if err != nil {
			return nil, fmt.Errorf("failed to create queue depth gauge: %w", err)
		}
	}

	return &Recorder{
		requests: requests,
		duration: duration,
	}, nil
}

// RecordDispatch records one dispatched request.
func (r *Recorder) RecordDispatch(command, outcome string, latency time.Duration) {
	if r == nil || r.requests == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("command", command),
		attribute.String("outcome", outcome),
	)

	ctx := context.Background()
	r.requests.Add(ctx, 1, attrs)
	r.duration.Record(ctx, float64(latency.Microseconds())/1000.0, attrs)
}
