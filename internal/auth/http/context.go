// Package http binds the access control gate to gin routes.
package http

import (
	"context"

	authDomain "github.com/allisson/casting/internal/auth/domain"
)

// identityKey is a context key type for storing the verified identity.
type identityKey struct{}

// WithIdentity stores the verified identity in the context.
func WithIdentity(ctx context.Context, identity *authDomain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves the verified identity from the context.
// Returns (identity, true) if present, or (nil, false) if the gate did not run.
func GetIdentity(ctx context.Context) (*authDomain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*authDomain.Identity)
	return identity, ok && identity != nil
}
