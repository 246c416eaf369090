package domain

import (
	"github.com/allisson/casting/internal/errors"
)

// Access control errors. Each carries a stable code that is returned to the
// client together with its description.
var (
	// ErrMissingHeader indicates the Authorization header is absent.
	ErrMissingHeader = errors.NewCoded(
		errors.ErrUnauthorized,
		"authorization_header_missing",
		"Authorization header is expected.",
	)

	// ErrMalformedHeader indicates the Authorization header is not "Bearer <token>".
	ErrMalformedHeader = errors.NewCoded(
		errors.ErrUnauthorized,
		"invalid_header",
		"Authorization header must be a bearer token.",
	)

	// ErrMalformedToken indicates the token structure cannot be decoded.
	ErrMalformedToken = errors.NewCoded(
		errors.ErrUnauthorized,
		"invalid_token",
		"Unable to parse authentication token.",
	)

	// ErrUnsupportedAlgorithm indicates the token declares an algorithm other than the configured one.
	ErrUnsupportedAlgorithm = errors.NewCoded(
		errors.ErrUnauthorized,
		"unsupported_algorithm",
		"Token signing algorithm is not accepted.",
	)

	// ErrUnknownSigningKey indicates no published key matches the token key id.
	ErrUnknownSigningKey = errors.NewCoded(
		errors.ErrUnauthorized,
		"unknown_signing_key",
		"Unable to find the appropriate key.",
	)

	// ErrInvalidSignature indicates the signature does not verify with the resolved key.
	ErrInvalidSignature = errors.NewCoded(
		errors.ErrUnauthorized,
		"invalid_signature",
		"Token signature is invalid.",
	)

	// ErrTokenExpired indicates the token has no expiry or it is in the past.
	ErrTokenExpired = errors.NewCoded(
		errors.ErrUnauthorized,
		"token_expired",
		"Token expired.",
	)

	// ErrTokenNotYetValid indicates the token "nbf" is in the future.
	ErrTokenNotYetValid = errors.NewCoded(
		errors.ErrUnauthorized,
		"token_not_yet_valid",
		"Token is not valid yet.",
	)

	// ErrInvalidIssuer indicates the "iss" claim does not match.
	ErrInvalidIssuer = errors.NewCoded(
		errors.ErrUnauthorized,
		"invalid_issuer",
		"Incorrect issuer. Please check the issuer.",
	)

	// ErrInvalidAudience indicates the "aud" claim does not contain the expected audience.
	ErrInvalidAudience = errors.NewCoded(
		errors.ErrUnauthorized,
		"invalid_audience",
		"Incorrect audience. Please check the audience.",
	)

	// ErrMissingPermissionsClaim indicates the token carries neither "permissions" nor "scope".
	ErrMissingPermissionsClaim = errors.NewCoded(
		errors.ErrUnauthorized,
		"permissions_missing",
		"Permissions not included in token.",
	)

	// ErrPermissionDenied indicates the token is valid but lacks the required permission.
	ErrPermissionDenied = errors.NewCoded(
		errors.ErrForbidden,
		"permission_denied",
		"Permission not found.",
	)

	// ErrKeySetUnavailable indicates the signing key set could not be fetched.
	ErrKeySetUnavailable = errors.NewCoded(
		errors.ErrUnavailable,
		"key_set_unavailable",
		"Unable to fetch signing keys.",
	)
)
