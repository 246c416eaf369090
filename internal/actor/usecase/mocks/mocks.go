// Package mocks provides mock implementations of the actor use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	actorDomain "github.com/allisson/casting/internal/actor/domain"
)

// MockActorRepository is a mock implementation of ActorRepository.
type MockActorRepository struct {
	mock.Mock
}

// Create mocks the Create method of ActorRepository. A returned id is assigned
// to actor before the error is returned.
func (m *MockActorRepository) Create(ctx context.Context, actor *actorDomain.Actor) error {
	args := m.Called(ctx, actor)
	if id, ok := args.Get(0).(int64); ok {
		actor.ID = id
		return args.Error(1)
	}
	return args.Error(0)
}

// List mocks the List method of ActorRepository.
func (m *MockActorRepository) List(ctx context.Context) ([]*actorDomain.Actor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*actorDomain.Actor), args.Error(1)
}

// Get mocks the Get method of ActorRepository.
func (m *MockActorRepository) Get(ctx context.Context, id int64) (*actorDomain.Actor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*actorDomain.Actor), args.Error(1)
}

// GetForUpdate mocks the GetForUpdate method of ActorRepository.
func (m *MockActorRepository) GetForUpdate(ctx context.Context, id int64) (*actorDomain.Actor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*actorDomain.Actor), args.Error(1)
}

// Update mocks the Update method of ActorRepository.
func (m *MockActorRepository) Update(ctx context.Context, actor *actorDomain.Actor) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}

// Delete mocks the Delete method of ActorRepository.
func (m *MockActorRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockActorUseCase is a mock implementation of ActorUseCase.
type MockActorUseCase struct {
	mock.Mock
}

// Create mocks the Create method of ActorUseCase.
func (m *MockActorUseCase) Create(
	ctx context.Context,
	input *actorDomain.CreateActorInput,
) (*actorDomain.Actor, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*actorDomain.Actor), args.Error(1)
}

// List mocks the List method of ActorUseCase.
func (m *MockActorUseCase) List(ctx context.Context) ([]*actorDomain.Actor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*actorDomain.Actor), args.Error(1)
}

// Get mocks the Get method of ActorUseCase.
func (m *MockActorUseCase) Get(ctx context.Context, id int64) (*actorDomain.Actor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*actorDomain.Actor), args.Error(1)
}

// Update mocks the Update method of ActorUseCase.
func (m *MockActorUseCase) Update(
	ctx context.Context,
	id int64,
	input *actorDomain.UpdateActorInput,
) (*actorDomain.Actor, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*actorDomain.Actor), args.Error(1)
}

// Delete mocks the Delete method of ActorUseCase.
func (m *MockActorUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
