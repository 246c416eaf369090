// Package mocks provides mock implementations of the movie use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	movieDomain "github.com/allisson/casting/internal/movie/domain"
)

// MockMovieRepository is a mock implementation of MovieRepository.
type MockMovieRepository struct {
	mock.Mock
}

// Create mocks the Create method of MovieRepository. A returned id is assigned
// to movie before the error is returned.
func (m *MockMovieRepository) Create(ctx context.Context, movie *movieDomain.Movie) error {
	args := m.Called(ctx, movie)
	if id, ok := args.Get(0).(int64); ok {
		movie.ID = id
		return args.Error(1)
	}
	return args.Error(0)
}

// List mocks the List method of MovieRepository.
func (m *MockMovieRepository) List(ctx context.Context) ([]*movieDomain.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*movieDomain.Movie), args.Error(1)
}

// Get mocks the Get method of MovieRepository.
func (m *MockMovieRepository) Get(ctx context.Context, id int64) (*movieDomain.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*movieDomain.Movie), args.Error(1)
}

// GetForUpdate mocks the GetForUpdate method of MovieRepository.
func (m *MockMovieRepository) GetForUpdate(ctx context.Context, id int64) (*movieDomain.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*movieDomain.Movie), args.Error(1)
}

// Update mocks the Update method of MovieRepository.
func (m *MockMovieRepository) Update(ctx context.Context, movie *movieDomain.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

// Delete mocks the Delete method of MovieRepository.
func (m *MockMovieRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMovieUseCase is a mock implementation of MovieUseCase.
type MockMovieUseCase struct {
	mock.Mock
}

// Create mocks the Create method of MovieUseCase.
func (m *MockMovieUseCase) Create(
	ctx context.Context,
	input *movieDomain.CreateMovieInput,
) (*movieDomain.Movie, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*movieDomain.Movie), args.Error(1)
}

// List mocks the List method of MovieUseCase.
func (m *MockMovieUseCase) List(ctx context.Context) ([]*movieDomain.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*movieDomain.Movie), args.Error(1)
}

// Get mocks the Get method of MovieUseCase.
func (m *MockMovieUseCase) Get(ctx context.Context, id int64) (*movieDomain.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*movieDomain.Movie), args.Error(1)
}

// Update mocks the Update method of MovieUseCase.
func (m *MockMovieUseCase) Update(
	ctx context.Context,
	id int64,
	input *movieDomain.UpdateMovieInput,
) (*movieDomain.Movie, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*movieDomain.Movie), args.Error(1)
}

// Delete mocks the Delete method of MovieUseCase.
func (m *MockMovieUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
