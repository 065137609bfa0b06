// Package tokentest runs an in-process OpenID provider that signs Keycloak shaped tokens.
package tokentest

import (
	"crypto"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// Issuer serves discovery, JWKS and a token endpoint from an httptest server.
type Issuer struct {
	*httptest.Server
	Keys *KeyPair

	// TokenHandler answers POST /token. Defaults to a fixed bearer response.
	TokenHandler http.HandlerFunc

	discoveryHits atomic.Int32
}

func NewIssuer(t *testing.T) *Issuer {
	t.Helper()

	keys, err := GenerateRSAKeyPair("test-key")
	require.NoError(t, err)

	iss := &Issuer{Keys: keys}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		iss.discoveryHits.Add(1)
		writeJSON(w, iss.Discovery())
	})
	mux.HandleFunc("GET /jwks", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, iss.Keys.JWKS())
	})
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		if iss.TokenHandler != nil {
			iss.TokenHandler(w, r)
			return
		}
		writeJSON(w, map[string]any{"access_token": "at", "token_type": "Bearer", "expires_in": 300})
	})

	iss.Server = httptest.NewServer(mux)
	t.Cleanup(iss.Close)
	return iss
}

// Discovery returns the provider metadata document.
func (i *Issuer) Discovery() map[string]any {
	return map[string]any{
		"issuer":                                i.URL,
		"authorization_endpoint":                i.URL + "/auth",
		"token_endpoint":                        i.URL + "/token",
		"userinfo_endpoint":                     i.URL + "/userinfo",
		"end_session_endpoint":                  i.URL + "/logout",
		"jwks_uri":                              i.URL + "/jwks",
		"id_token_signing_alg_values_supported": []string{"RS256"},
	}
}

// DiscoveryHits counts discovery document requests.
func (i *Issuer) DiscoveryHits() int {
	return int(i.discoveryHits.Load())
}

func (i *Issuer) KeySet() *oidc.StaticKeySet {
	return &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{i.Keys.PublicKey()}}
}

// Claims returns access token claims for username, valid for five minutes from now.
// clientRoles maps a client ID to its granted roles.
func (i *Issuer) Claims(username string, audience []string, clientRoles map[string][]string, now time.Time) jwt.MapClaims {
	resourceAccess := map[string]any{}
	for client, roles := range clientRoles {
		resourceAccess[client] = map[string]any{"roles": roles}
	}
	return jwt.MapClaims{
		"iss":                i.URL,
		"sub":                "sub-" + username,
		"preferred_username": username,
		"aud":                audience,
		"iat":                now.Unix(),
		"exp":                now.Add(5 * time.Minute).Unix(),
		"realm_access":       map[string]any{"roles": []string{"offline_access"}},
		"resource_access":    resourceAccess,
	}
}

// Token signs claims, failing the test on error.
func (i *Issuer) Token(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := i.Keys.Sign(claims)
	require.NoError(t, err)
	return signed
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
