// Package domain defines the actor record and its create and update inputs.
package domain

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/casting/internal/validation"
)

// Actor is a stored actor record. Gender and age are free text.
type Actor struct {
	ID     int64
	Name   string
	Gender string
	Age    string
}

// CreateActorInput holds the fields of a new actor. All are required.
type CreateActorInput struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Age    string `json:"age"`
}

// Validate checks every field is present, not blank and within length.
func (i *CreateActorInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Name, customValidation.RequiredText()...),
		validation.Field(&i.Gender, customValidation.RequiredText()...),
		validation.Field(&i.Age, customValidation.RequiredText()...),
	)
	return customValidation.WrapValidationError(err)
}

// UpdateActorInput holds a partial update. Nil fields are left unchanged.
type UpdateActorInput struct {
	Name   *string `json:"name"`
	Gender *string `json:"gender"`
	Age    *string `json:"age"`
}

// Validate checks that at least one field is present and present fields are valid.
func (i *UpdateActorInput) Validate() error {
	if i.Name == nil && i.Gender == nil && i.Age == nil {
		return customValidation.WrapValidationError(ErrEmptyUpdate)
	}
	err := validation.ValidateStruct(i,
		validation.Field(&i.Name, customValidation.OptionalText),
		validation.Field(&i.Gender, customValidation.OptionalText),
		validation.Field(&i.Age, customValidation.OptionalText),
	)
	return customValidation.WrapValidationError(err)
}

// Apply merges the present fields over actor.
func (i *UpdateActorInput) Apply(actor *Actor) {
	if i.Name != nil {
		actor.Name = *i.Name
	}
	if i.Gender != nil {
		actor.Gender = *i.Gender
	}
	if i.Age != nil {
		actor.Age = *i.Age
	}
}
