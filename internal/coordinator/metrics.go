package coordinator

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/serac-weather/serac/internal/coordinator"

// Metrics records poll-cycle outcomes.
type Metrics struct {
	polls    metric.Int64Counter
	duration metric.Float64Histogram
}

// NewMetrics creates the coordinator instruments on the global meter
// provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)

	polls, err := meter.Int64Counter("serac.poll.total",
		metric.WithDescription("Poll cycles by source and outcome"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("serac.poll.duration",
		metric.WithDescription("Poll cycle duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{polls: polls, duration: duration}, nil
}

// RecordPoll records one completed poll cycle. Nil receivers are no-ops
// so coordinators work without telemetry wired.
func (m *Metrics) RecordPoll(ctx context.Context, source string, success bool, elapsed time.Duration) {
	if m == nil {
		return
	}

	outcome := "success"
	if !success {
		outcome = "failure"
	}

	attrs := metric.WithAttributes(
		attribute.String("source", source),
		attribute.String("outcome", outcome),
	)
	m.polls.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
