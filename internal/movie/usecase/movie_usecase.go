// Package usecase implements the movie operations on top of MovieRepository.
//
// Inputs are validated before any store access, so a rejected create or
// update never touches the database. Partial updates read, merge and write
// the row inside one transaction with the row locked, which keeps concurrent
// patches of different fields from overwriting each other.
package usecase

import (
	"context"

	"github.com/allisson/casting/internal/database"
	apperrors "github.com/allisson/casting/internal/errors"
	movieDomain "github.com/allisson/casting/internal/movie/domain"
)

type movieUseCase struct {
	txManager database.TxManager
	movieRepo MovieRepository
}

// NewMovieUseCase creates a new MovieUseCase.
func NewMovieUseCase(txManager database.TxManager, movieRepo MovieRepository) MovieUseCase {
	return &movieUseCase{
		txManager: txManager,
		movieRepo: movieRepo,
	}
}

// Create validates input and stores a new movie.
func (m *movieUseCase) Create(
	ctx context.Context,
	input *movieDomain.CreateMovieInput,
) (*movieDomain.Movie, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	movie := &movieDomain.Movie{
		Title: input.Title,
		Date:  input.Date,
	}
	if err := m.movieRepo.Create(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

// List returns every movie.
func (m *movieUseCase) List(ctx context.Context) ([]*movieDomain.Movie, error) {
	return m.movieRepo.List(ctx)
}

// Get returns a single movie.
func (m *movieUseCase) Get(ctx context.Context, id int64) (*movieDomain.Movie, error) {
	return m.movieRepo.Get(ctx, id)
}

// Update applies a partial update inside a transaction.
func (m *movieUseCase) Update(
	ctx context.Context,
	id int64,
	input *movieDomain.UpdateMovieInput,
) (*movieDomain.Movie, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *movieDomain.Movie
	err := m.txManager.WithTx(ctx, func(ctx context.Context) error {
		movie, err := m.movieRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		input.Apply(movie)

		if err := m.movieRepo.Update(ctx, movie); err != nil {
			return err
		}
		updated = movie
		return nil
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) || apperrors.Is(err, apperrors.ErrStoreFailure) {
			return nil, err
		}
		return nil, apperrors.StoreFailure(err, "failed to update movie")
	}
	return updated, nil
}

// Delete removes a movie.
func (m *movieUseCase) Delete(ctx context.Context, id int64) error {
	return m.movieRepo.Delete(ctx, id)
}
