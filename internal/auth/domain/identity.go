package domain

import (
	"slices"
	"time"
)

// Identity is the result of a successful token verification. It lives for
// the duration of one request and is never persisted.
type Identity struct {
	Subject     string
	Issuer      string
	Audience    []string
	ExpiresAt   time.Time
	Permissions []Permission
}

// HasPermission reports whether the identity was granted p.
func (i *Identity) HasPermission(p Permission) bool {
	return slices.Contains(i.Permissions, p)
}
