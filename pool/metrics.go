package pool

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/utkarsh5026/bestprice/internal/scheduler"
)

const meterName = "github.com/utkarsh5026/bestprice/pool"

// poolMetrics holds the OpenTelemetry instruments for one pool.
type poolMetrics struct {
	poolAttr  attribute.KeyValue
	submitted metric.Int64Counter
	completed metric.Int64Counter
	duration  metric.Float64Histogram
	depth     metric.Int64UpDownCounter
}

func newPoolMetrics(mp metric.MeterProvider, poolName string) (*poolMetrics, error) {
	meter := mp.Meter(meterName)

	submitted, err := meter.Int64Counter("bestprice.pool.tasks.submitted",
		metric.WithDescription("Tasks accepted by the pool"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tasks.submitted counter: %w", err)
	}

	completed, err := meter.Int64Counter("bestprice.pool.tasks.completed",
		metric.WithDescription("Tasks finished by the pool, by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tasks.completed counter: %w", err)
	}

	duration, err := meter.Float64Histogram("bestprice.pool.task.duration",
		metric.WithDescription("Task execution time in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating task.duration histogram: %w", err)
	}

	depth, err := meter.Int64UpDownCounter("bestprice.pool.queue.depth",
		metric.WithDescription("Tasks waiting for a worker"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating queue.depth counter: %w", err)
	}

	return &poolMetrics{
		poolAttr:  attribute.String("pool.name", poolName),
		submitted: submitted,
		completed: completed,
		duration:  duration,
		depth:     depth,
	}, nil
}

func (m *poolMetrics) recordSubmit(ctx context.Context) {
	attrs := metric.WithAttributes(m.poolAttr)
	m.submitted.Add(ctx, 1, attrs)
	m.depth.Add(ctx, 1, attrs)
}

func (m *poolMetrics) recordStart(ctx context.Context) {
	m.depth.Add(ctx, -1, metric.WithAttributes(m.poolAttr))
}

func (m *poolMetrics) recordEnd(ctx context.Context, outcome scheduler.Outcome, elapsed time.Duration) {
	m.completed.Add(ctx, 1, metric.WithAttributes(
		m.poolAttr,
		attribute.String("outcome", outcome.String()),
	))
	m.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(m.poolAttr))
}
