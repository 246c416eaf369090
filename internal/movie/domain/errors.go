package domain

import (
	"github.com/allisson/casting/internal/errors"
)

var (
	// ErrMovieNotFound indicates no movie has the requested id.
	ErrMovieNotFound = errors.Wrap(errors.ErrNotFound, "movie not found")

	// ErrEmptyUpdate indicates an update carries none of the movie fields.
	ErrEmptyUpdate = errors.New("at least one of title or date is required")
)
