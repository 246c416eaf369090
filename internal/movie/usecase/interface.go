package usecase

import (
	"context"

	movieDomain "github.com/allisson/casting/internal/movie/domain"
)

// MovieRepository defines the interface for movie persistence.
type MovieRepository interface {
	Create(ctx context.Context, movie *movieDomain.Movie) error
	List(ctx context.Context) ([]*movieDomain.Movie, error)
	Get(ctx context.Context, id int64) (*movieDomain.Movie, error)
	GetForUpdate(ctx context.Context, id int64) (*movieDomain.Movie, error)
	Update(ctx context.Context, movie *movieDomain.Movie) error
	Delete(ctx context.Context, id int64) error
}

// MovieUseCase defines the interface for movie operations.
type MovieUseCase interface {
	Create(ctx context.Context, input *movieDomain.CreateMovieInput) (*movieDomain.Movie, error)
	List(ctx context.Context) ([]*movieDomain.Movie, error)
	Get(ctx context.Context, id int64) (*movieDomain.Movie, error)
	// Update merges the present fields of input over the stored movie and
	// returns the result. Absent fields keep their stored value.
	Update(ctx context.Context, id int64, input *movieDomain.UpdateMovieInput) (*movieDomain.Movie, error)
	Delete(ctx context.Context, id int64) error
}
