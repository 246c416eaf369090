package usecase

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	authDomain "github.com/allisson/casting/internal/auth/domain"
)

// tokenClaims is the payload of an access token. "permissions" and "scope"
// stay nil when absent or null.
type tokenClaims struct {
	jwt.RegisteredClaims
	Permissions *permissionList `json:"permissions,omitempty"`
	Scope       *permissionList `json:"scope,omitempty"`
}

// grantedPermissions prefers "permissions" over "scope".
func (c *tokenClaims) grantedPermissions() ([]authDomain.Permission, bool) {
	switch {
	case c.Permissions != nil:
		return *c.Permissions, true
	case c.Scope != nil:
		return *c.Scope, true
	default:
		return nil, false
	}
}

// permissionList decodes either a JSON array of strings or a space-delimited string.
type permissionList []authDomain.Permission

func (p *permissionList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*p = toPermissions(list)
		return nil
	}

	var delimited string
	if err := json.Unmarshal(data, &delimited); err != nil {
		return errors.New("permissions must be a string or an array of strings")
	}
	*p = toPermissions(strings.Fields(delimited))
	return nil
}

func toPermissions(values []string) permissionList {
	permissions := make(permissionList, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			permissions = append(permissions, authDomain.Permission(v))
		}
	}
	return permissions
}
