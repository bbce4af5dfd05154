package query

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/zneright/tourkita-core/internal/query"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

var (
	metricsOnce sync.Once
	queries     metric.Int64Counter
	latency     metric.Float64Histogram
)

func initMetrics() {
	m := meter()
	queries, _ = m.Int64Counter(
		"query.requests",
		metric.WithDescription("Total queries served"),
	)
	latency, _ = m.Float64Histogram(
		"query.duration",
		metric.WithDescription("Query duration in milliseconds"),
		metric.WithUnit("ms"),
	)
}

func recordQueryMetric(op string, elapsed time.Duration) {
	metricsOnce.Do(initMetrics)
	attrs := metric.WithAttributes(attribute.String("operation", op))
	if queries != nil {
		queries.Add(context.Background(), 1, attrs)
	}
	if latency != nil {
		latency.Record(context.Background(), float64(elapsed.Milliseconds()), attrs)
	}
}
