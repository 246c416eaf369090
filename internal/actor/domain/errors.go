package domain

import (
	"github.com/allisson/casting/internal/errors"
)

var (
	// ErrActorNotFound indicates no actor has the requested id.
	ErrActorNotFound = errors.Wrap(errors.ErrNotFound, "actor not found")

	// ErrEmptyUpdate indicates an update carries none of the actor fields.
	ErrEmptyUpdate = errors.New("at least one of name, gender or age is required")
)
