// Package mocks provides mock implementations of the auth use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/casting/internal/auth/domain"
	authUseCase "github.com/allisson/casting/internal/auth/usecase"
)

// MockAuthorizer is a mock implementation of Authorizer.
type MockAuthorizer struct {
	mock.Mock
}

// Authorize mocks the Authorize method of Authorizer.
func (m *MockAuthorizer) Authorize(
	ctx context.Context,
	headers authUseCase.HeaderGetter,
	required authDomain.Permission,
) (*authDomain.Identity, error) {
	args := m.Called(ctx, headers, required)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Identity), args.Error(1)
}
