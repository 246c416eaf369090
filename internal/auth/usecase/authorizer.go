package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jonboulle/clockwork"

	authDomain "github.com/allisson/casting/internal/auth/domain"
	authService "github.com/allisson/casting/internal/auth/service"
)

const bearerScheme = "Bearer"

// AuthorizerConfig holds the values every accepted token must match.
type AuthorizerConfig struct {
	Issuer    string
	Audience  string
	Algorithm string
	ClockSkew time.Duration
}

type authorizer struct {
	keySet   authService.KeySet
	method   jwt.SigningMethod
	issuer   string
	audience string
	skew     time.Duration
	clock    clockwork.Clock
	parser   *jwt.Parser
}

// NewAuthorizer creates the access control gate. Symmetric algorithms and
// "none" are refused since tokens are verified with published public keys.
func NewAuthorizer(
	keySet authService.KeySet,
	cfg AuthorizerConfig,
	clock clockwork.Clock,
) (Authorizer, error) {
	if cfg.Issuer == "" {
		return nil, errors.New("auth issuer is required")
	}
	if cfg.Audience == "" {
		return nil, errors.New("auth audience is required")
	}

	method := jwt.GetSigningMethod(cfg.Algorithm)
	switch method.(type) {
	case *jwt.SigningMethodRSA, *jwt.SigningMethodRSAPSS, *jwt.SigningMethodECDSA:
	default:
		return nil, fmt.Errorf("unsupported auth algorithm %q", cfg.Algorithm)
	}

	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &authorizer{
		keySet:   keySet,
		method:   method,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		skew:     cfg.ClockSkew,
		clock:    clock,
		parser:   jwt.NewParser(),
	}, nil
}

// Authorize implements Authorizer.
func (a *authorizer) Authorize(
	ctx context.Context,
	headers HeaderGetter,
	required authDomain.Permission,
) (*authDomain.Identity, error) {
	raw, err := bearerToken(headers)
	if err != nil {
		return nil, err
	}

	claims := &tokenClaims{}
	token, parts, err := a.parser.ParseUnverified(raw, claims)
	if err != nil {
		var validationErr *jwt.ValidationError
		if token == nil || !errors.As(err, &validationErr) ||
			validationErr.Errors&jwt.ValidationErrorUnverifiable == 0 {
			return nil, authDomain.ErrMalformedToken
		}
	}

	kid, ok := token.Header["kid"].(string)
	if !ok || kid == "" {
		return nil, authDomain.ErrMalformedToken
	}
	if token.Method == nil || token.Method.Alg() != a.method.Alg() {
		return nil, authDomain.ErrUnsupportedAlgorithm
	}

	key, err := a.keySet.Key(ctx, kid)
	if err != nil {
		return nil, err
	}

	if err := a.method.Verify(parts[0]+"."+parts[1], parts[2], key); err != nil {
		return nil, authDomain.ErrInvalidSignature
	}

	if err := a.validateClaims(claims); err != nil {
		return nil, err
	}

	permissions, ok := claims.grantedPermissions()
	if !ok {
		return nil, authDomain.ErrMissingPermissionsClaim
	}

	identity := &authDomain.Identity{
		Subject:     claims.Subject,
		Issuer:      claims.Issuer,
		Audience:    claims.Audience,
		ExpiresAt:   claims.ExpiresAt.Time,
		Permissions: permissions,
	}
	if !identity.HasPermission(required) {
		return nil, authDomain.ErrPermissionDenied
	}

	return identity, nil
}

// validateClaims checks exp, nbf, iss and aud in that order. exp is required.
func (a *authorizer) validateClaims(claims *tokenClaims) error {
	now := a.clock.Now()

	if !claims.VerifyExpiresAt(now.Add(-a.skew), true) {
		return authDomain.ErrTokenExpired
	}
	if !claims.VerifyNotBefore(now.Add(a.skew), false) {
		return authDomain.ErrTokenNotYetValid
	}
	if !claims.VerifyIssuer(a.issuer, true) {
		return authDomain.ErrInvalidIssuer
	}
	if !claims.VerifyAudience(a.audience, true) {
		return authDomain.ErrInvalidAudience
	}
	return nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(headers HeaderGetter) (string, error) {
	header := headers.Get("Authorization")
	if header == "" {
		return "", authDomain.ErrMissingHeader
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != bearerScheme || parts[1] == "" {
		return "", authDomain.ErrMalformedHeader
	}
	return parts[1], nil
}
