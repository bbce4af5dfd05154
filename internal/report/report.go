// Package report is the error sink for per-record failures. Lookup and
// coercion problems land here instead of propagating to the UI: callers only
// ever see "N/A" labels or partial lists.
package report

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/zneright/tourkita-core/internal/report"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Reporter records a degraded-path failure with its context fields.
type Reporter interface {
	Report(ctx context.Context, err error, fields map[string]any)
}

// SlogReporter logs failures via slog and counts them on the global OTel
// meter (no-op when no meter provider is configured).
type SlogReporter struct {
	logger   *slog.Logger
	failures metric.Int64Counter
}

// NewSlogReporter creates a reporter writing to the given logger.
func NewSlogReporter(logger *slog.Logger) *SlogReporter {
	counter, err := meter().Int64Counter(
		"resolver.failures",
		metric.WithDescription("Degraded-path failures reported by the resolver core"),
	)
	if err != nil {
		counter = nil
	}
	return &SlogReporter{logger: logger, failures: counter}
}

// Report logs the failure and increments the failure counter. Nil errors
// are ignored.
func (r *SlogReporter) Report(ctx context.Context, err error, fields map[string]any) {
	if err == nil {
		return
	}

	attrs := make([]any, 0, 2+2*len(fields))
	attrs = append(attrs, "error", err)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	r.logger.ErrorContext(ctx, "degraded resolution", attrs...)

	if r.failures != nil {
		op, _ := fields["operation"].(string)
		r.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}

// Discard is a Reporter that drops everything. Test helper.
type Discard struct{}

func (Discard) Report(context.Context, error, map[string]any) {}
