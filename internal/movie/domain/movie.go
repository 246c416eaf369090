// Package domain defines the movie record and its create and update inputs.
package domain

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/casting/internal/validation"
)

// Movie is a stored movie record.
type Movie struct {
	ID    int64
	Title string
	Date  string
}

// CreateMovieInput holds the fields of a new movie. Both are required.
type CreateMovieInput struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// Validate checks every field is present, not blank and within length.
func (i *CreateMovieInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Title, customValidation.RequiredText()...),
		validation.Field(&i.Date, customValidation.RequiredText()...),
	)
	return customValidation.WrapValidationError(err)
}

// UpdateMovieInput holds a partial update. Nil fields are left unchanged.
type UpdateMovieInput struct {
	Title *string `json:"title"`
	Date  *string `json:"date"`
}

// Validate checks that at least one field is present and present fields are valid.
func (i *UpdateMovieInput) Validate() error {
	if i.Title == nil && i.Date == nil {
		return customValidation.WrapValidationError(ErrEmptyUpdate)
	}
	err := validation.ValidateStruct(i,
		validation.Field(&i.Title, customValidation.OptionalText),
		validation.Field(&i.Date, customValidation.OptionalText),
	)
	return customValidation.WrapValidationError(err)
}

// Apply merges the present fields over movie.
func (i *UpdateMovieInput) Apply(movie *Movie) {
	if i.Title != nil {
		movie.Title = *i.Title
	}
	if i.Date != nil {
		movie.Date = *i.Date
	}
}
