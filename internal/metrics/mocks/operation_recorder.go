// Package mocks provides mock implementations of the metrics package interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockOperationRecorder is a mock implementation of metrics.OperationRecorder.
type MockOperationRecorder struct {
	mock.Mock
}

// Observe mocks the Observe method of OperationRecorder.
func (m *MockOperationRecorder) Observe(
	ctx context.Context,
	domain, operation string,
	started time.Time,
	err error,
) {
	m.Called(ctx, domain, operation, started, err)
}
