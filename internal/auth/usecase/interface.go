// Package usecase implements the access control gate that turns a request's
// bearer token into a verified identity.
package usecase

import (
	"context"

	authDomain "github.com/allisson/casting/internal/auth/domain"
)

// HeaderGetter reads a request header. http.Header satisfies it.
type HeaderGetter interface {
	Get(key string) string
}

// Authorizer verifies the bearer token carried by a request and checks it
// grants a permission.
type Authorizer interface {
	// Authorize returns the decoded identity when the Authorization header holds
	// a valid bearer token granting required. Every failure is one of the coded
	// errors of the auth domain package, so callers can tell them apart:
	//   - ErrMissingHeader, ErrMalformedHeader, ErrMalformedToken
	//   - ErrUnsupportedAlgorithm, ErrUnknownSigningKey, ErrInvalidSignature
	//   - ErrTokenExpired, ErrTokenNotYetValid, ErrInvalidIssuer, ErrInvalidAudience
	//   - ErrMissingPermissionsClaim, ErrPermissionDenied
	//   - ErrKeySetUnavailable when the signing keys cannot be fetched
	Authorize(
		ctx context.Context,
		headers HeaderGetter,
		required authDomain.Permission,
	) (*authDomain.Identity, error)
}
