package token

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jrsteele09/go-oidc-playground/internal/utils"
)

// Roles holds the Keycloak role claims of a token.
type Roles struct {
	Realm  []string            // realm_access.roles
	Client map[string][]string // resource_access.<client>.roles
}

// HasRole reports whether role is granted for clientID or at realm level.
func (r Roles) HasRole(clientID, role string) bool {
	return slices.Contains(r.Client[clientID], role) || slices.Contains(r.Realm, role)
}

func rolesFromClaims(claims jwt.MapClaims) Roles {
	roles := Roles{Client: map[string][]string{}}

	if realm, ok := claims["realm_access"].(map[string]any); ok {
		roles.Realm = utils.ToStringSlice(realm["roles"])
	}

	if resources, ok := claims["resource_access"].(map[string]any); ok {
		for client, access := range resources {
			if m, ok := access.(map[string]any); ok {
				roles.Client[client] = utils.ToStringSlice(m["roles"])
			}
		}
	}
	return roles
}

// usernameFromClaims falls back from preferred_username to email to sub.
func usernameFromClaims(claims jwt.MapClaims) string {
	for _, key := range []string{"preferred_username", "email", "sub"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
