// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated caller doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrStoreFailure indicates the underlying data store rejected a read or write.
	ErrStoreFailure = errors.New("store failure")

	// ErrUnavailable indicates a required upstream dependency could not be reached.
	ErrUnavailable = errors.New("unavailable")
)

// CodedError is a domain error with a stable machine-readable code and a
// human-readable description. It unwraps to its kind so callers can match on
// either the specific error or the broad category.
type CodedError struct {
	Kind        error
	Code        string
	Description string
}

// NewCoded returns a CodedError of the given kind.
func NewCoded(kind error, code, description string) *CodedError {
	return &CodedError{Kind: kind, Code: code, Description: description}
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	return e.Code + ": " + e.Description
}

// Unwrap returns the error kind.
func (e *CodedError) Unwrap() error {
	return e.Kind
}

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// StoreFailure marks err as an ErrStoreFailure while keeping err in the chain
// for logging.
func StoreFailure(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", message, ErrStoreFailure, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
