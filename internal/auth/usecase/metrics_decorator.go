package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/casting/internal/auth/domain"
	"github.com/allisson/casting/internal/metrics"
)

// authorizerWithMetrics decorates Authorizer with metrics instrumentation.
type authorizerWithMetrics struct {
	next     Authorizer
	recorder metrics.OperationRecorder
}

// NewAuthorizerWithMetrics wraps an Authorizer with metrics recording.
func NewAuthorizerWithMetrics(authorizer Authorizer, recorder metrics.OperationRecorder) Authorizer {
	return &authorizerWithMetrics{
		next:     authorizer,
		recorder: recorder,
	}
}

// Authorize records metrics for token verification.
func (a *authorizerWithMetrics) Authorize(
	ctx context.Context,
	headers HeaderGetter,
	required authDomain.Permission,
) (*authDomain.Identity, error) {
	start := time.Now()
	identity, err := a.next.Authorize(ctx, headers, required)
	a.recorder.Observe(ctx, metrics.DomainAuth, "authorize", start, err)
	return identity, err
}
