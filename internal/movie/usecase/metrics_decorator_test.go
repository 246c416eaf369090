package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/casting/internal/metrics"
	metricsMocks "github.com/allisson/casting/internal/metrics/mocks"
	movieDomain "github.com/allisson/casting/internal/movie/domain"
	"github.com/allisson/casting/internal/movie/usecase/mocks"
)

func TestMovieUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	failure := errors.New("boom")
	movie := &movieDomain.Movie{ID: 1, Title: "Alien", Date: "1979"}
	createInput := &movieDomain.CreateMovieInput{Title: "Alien", Date: "1979"}
	updateInput := &movieDomain.UpdateMovieInput{}

	tests := []struct {
		name      string
		operation string
		setup     func(next *mocks.MockMovieUseCase)
		call      func(uc MovieUseCase) error
		err       error
	}{
		{
			name:      "create",
			operation: "movie_create",
			setup: func(next *mocks.MockMovieUseCase) {
				next.On("Create", ctx, createInput).Return(movie, nil).Once()
			},
			call: func(uc MovieUseCase) error {
				_, err := uc.Create(ctx, createInput)
				return err
			},
		},
		{
			name:      "list",
			operation: "movie_list",
			setup: func(next *mocks.MockMovieUseCase) {
				next.On("List", ctx).Return(nil, failure).Once()
			},
			call: func(uc MovieUseCase) error {
				_, err := uc.List(ctx)
				return err
			},
			err: failure,
		},
		{
			name:      "get",
			operation: "movie_get",
			setup: func(next *mocks.MockMovieUseCase) {
				next.On("Get", ctx, int64(1)).Return(movie, nil).Once()
			},
			call: func(uc MovieUseCase) error {
				_, err := uc.Get(ctx, 1)
				return err
			},
		},
		{
			name:      "update",
			operation: "movie_update",
			setup: func(next *mocks.MockMovieUseCase) {
				next.On("Update", ctx, int64(1), updateInput).Return(nil, movieDomain.ErrMovieNotFound).Once()
			},
			call: func(uc MovieUseCase) error {
				_, err := uc.Update(ctx, 1, updateInput)
				return err
			},
			err: movieDomain.ErrMovieNotFound,
		},
		{
			name:      "delete",
			operation: "movie_delete",
			setup: func(next *mocks.MockMovieUseCase) {
				next.On("Delete", ctx, int64(1)).Return(nil).Once()
			},
			call: func(uc MovieUseCase) error {
				return uc.Delete(ctx, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &mocks.MockMovieUseCase{}
			recorder := &metricsMocks.MockOperationRecorder{}

			tt.setup(next)
			recorder.On("Observe", ctx, metrics.DomainMovies, tt.operation, mock.AnythingOfType("time.Time"), tt.err).
				Once()

			err := tt.call(NewMovieUseCaseWithMetrics(next, recorder))

			assert.Equal(t, tt.err, err)
			next.AssertExpectations(t)
			recorder.AssertExpectations(t)
		})
	}
}
