package usecase

import (
	"context"
	"time"

	"github.com/allisson/casting/internal/metrics"
	movieDomain "github.com/allisson/casting/internal/movie/domain"
)

// movieUseCaseWithMetrics decorates MovieUseCase with metrics instrumentation.
type movieUseCaseWithMetrics struct {
	next     MovieUseCase
	recorder metrics.OperationRecorder
}

// NewMovieUseCaseWithMetrics wraps a MovieUseCase with metrics recording.
func NewMovieUseCaseWithMetrics(useCase MovieUseCase, recorder metrics.OperationRecorder) MovieUseCase {
	return &movieUseCaseWithMetrics{
		next:     useCase,
		recorder: recorder,
	}
}

// Create records metrics for movie creation.
func (m *movieUseCaseWithMetrics) Create(
	ctx context.Context,
	input *movieDomain.CreateMovieInput,
) (*movieDomain.Movie, error) {
	start := time.Now()
	movie, err := m.next.Create(ctx, input)
	m.recorder.Observe(ctx, metrics.DomainMovies, "movie_create", start, err)
	return movie, err
}

// List records metrics for movie listing.
func (m *movieUseCaseWithMetrics) List(ctx context.Context) ([]*movieDomain.Movie, error) {
	start := time.Now()
	movies, err := m.next.List(ctx)
	m.recorder.Observe(ctx, metrics.DomainMovies, "movie_list", start, err)
	return movies, err
}

// Get records metrics for movie retrieval.
func (m *movieUseCaseWithMetrics) Get(ctx context.Context, id int64) (*movieDomain.Movie, error) {
	start := time.Now()
	movie, err := m.next.Get(ctx, id)
	m.recorder.Observe(ctx, metrics.DomainMovies, "movie_get", start, err)
	return movie, err
}

// Update records metrics for movie updates.
func (m *movieUseCaseWithMetrics) Update(
	ctx context.Context,
	id int64,
	input *movieDomain.UpdateMovieInput,
) (*movieDomain.Movie, error) {
	start := time.Now()
	movie, err := m.next.Update(ctx, id, input)
	m.recorder.Observe(ctx, metrics.DomainMovies, "movie_update", start, err)
	return movie, err
}

// Delete records metrics for movie deletion.
func (m *movieUseCaseWithMetrics) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.recorder.Observe(ctx, metrics.DomainMovies, "movie_delete", start, err)
	return err
}
