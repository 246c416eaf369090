package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "github.com/allisson/casting/internal/errors"
)

// Operation outcomes used as the "status" label.
const (
	StatusSuccess = "success"
	StatusDenied  = "denied"
	StatusError   = "error"
)

// Domains used as the "domain" label.
const (
	DomainMovies = "movies"
	DomainActors = "actors"
	DomainAuth   = "auth"
)

// OperationRecorder records the outcome and latency of use case operations.
type OperationRecorder interface {
	// Observe records one finished operation. The status label is derived from err.
	Observe(ctx context.Context, domain, operation string, started time.Time, err error)
}

type operationRecorder struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	now              func() time.Time
}

// NewOperationRecorder creates an OperationRecorder on the given meter provider.
func NewOperationRecorder(meterProvider metric.MeterProvider, namespace string) (OperationRecorder, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of use case operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of use case operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &operationRecorder{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		now:              time.Now,
	}, nil
}

func (r *operationRecorder) Observe(
	ctx context.Context,
	domain, operation string,
	started time.Time,
	err error,
) {
	attrs := metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", StatusOf(err)),
	)
	r.operationCounter.Add(ctx, 1, attrs)
	r.durationHisto.Record(ctx, r.now().Sub(started).Seconds(), attrs)
}

// StatusOf classifies err as an operation outcome. Authentication and
// authorization rejections are reported apart from failures.
func StatusOf(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case apperrors.Is(err, apperrors.ErrUnauthorized), apperrors.Is(err, apperrors.ErrForbidden):
		return StatusDenied
	default:
		return StatusError
	}
}

// NoOpOperationRecorder discards everything. Used when metrics are disabled.
type NoOpOperationRecorder struct{}

// NewNoOpOperationRecorder creates a no-op OperationRecorder.
func NewNoOpOperationRecorder() OperationRecorder {
	return &NoOpOperationRecorder{}
}

// Observe does nothing.
func (n *NoOpOperationRecorder) Observe(context.Context, string, string, time.Time, error) {}
