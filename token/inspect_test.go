package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-oidc-playground/token"
	"github.com/jrsteele09/go-oidc-playground/token/tokentest"
)

func TestInspect(t *testing.T) {
	keys, err := tokentest.GenerateRSAKeyPair("k1")
	require.NoError(t, err)

	exp := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	raw, err := keys.Sign(jwt.MapClaims{
		"iss":                "http://kc/realms/demo",
		"sub":                "123",
		"preferred_username": "alice",
		"aud":                "oauth-backend",
		"exp":                exp.Unix(),
		"realm_access":       map[string]any{"roles": []string{"offline_access"}},
		"resource_access": map[string]any{
			"oauth-backend": map[string]any{"roles": []string{"user"}},
		},
	})
	require.NoError(t, err)

	t.Run("claims", func(t *testing.T) {
		inspection, err := token.Inspect(raw)
		require.NoError(t, err)
		require.Equal(t, "http://kc/realms/demo", inspection.Issuer)
		require.Equal(t, "123", inspection.Subject)
		require.Equal(t, "alice", inspection.Username)
		require.Equal(t, []string{"oauth-backend"}, inspection.Audience)
		require.NotNil(t, inspection.ExpiresAt)
		require.True(t, exp.Equal(*inspection.ExpiresAt))
		require.Equal(t, []string{"offline_access"}, inspection.Roles.Realm)
		require.Equal(t, []string{"user"}, inspection.Roles.Client["oauth-backend"])
	})

	t.Run("no warnings when everything matches", func(t *testing.T) {
		inspection, err := token.Inspect(raw)
		require.NoError(t, err)
		warnings := inspection.Warnings(token.Expectation{
			Issuer:   "http://kc/realms/demo",
			ClientID: "oauth-backend",
			Role:     "user",
		}, exp.Add(-time.Minute))
		require.Empty(t, warnings)
	})

	t.Run("every warning", func(t *testing.T) {
		inspection, err := token.Inspect(raw)
		require.NoError(t, err)
		warnings := inspection.Warnings(token.Expectation{
			Issuer:   "http://other/realms/demo",
			ClientID: "other-backend",
			Role:     "admin",
		}, exp.Add(10*time.Minute))
		require.Equal(t, []string{
			"Issuer mismatch (expected: http://other/realms/demo, got: http://kc/realms/demo)",
			"Token EXPIRED (expired 10 minutes ago)",
			`Token audience mismatch (expected: other-backend, got: ["oauth-backend"])`,
			"Missing required role 'admin' (has: [])",
		}, warnings)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := token.Inspect("not-a-jwt")
		require.ErrorIs(t, err, token.ErrMalformedToken)

		_, err = token.Inspect("a.b.c")
		require.ErrorIs(t, err, token.ErrMalformedToken)
	})
}

func TestRolesHasRole(t *testing.T) {
	roles := token.Roles{
		Realm:  []string{"admin"},
		Client: map[string][]string{"oauth-backend": {"user"}},
	}
	require.True(t, roles.HasRole("oauth-backend", "user"))
	require.True(t, roles.HasRole("oauth-backend", "admin"))
	require.True(t, roles.HasRole("unknown", "admin"))
	require.False(t, roles.HasRole("other", "user"))
	require.False(t, roles.HasRole("oauth-backend", "auditor"))
}
