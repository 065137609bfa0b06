package oauth2

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-oidc-playground/internal/utils"
)

// TokenResponse represents the response from an OAuth2 token request (RFC 6749 section 5.1).
// The proxy relays the provider's bytes untouched; this type is only decoded to describe
// the response in logs.
type TokenResponse struct {
	// AccessToken is the JWT token used to access protected resources.
	// Example: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
	// Usage: Include in Authorization header: "Bearer <access_token>"
	// Lifespan: Short-lived (typically 15 minutes - 1 hour)
	AccessToken *string `json:"access_token,omitempty"`

	// IdToken is the OpenID Connect ID token containing user identity information.
	// Example: "eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9..."
	// Usage: Client validates and extracts user claims (sub, email, name, etc.)
	// Only present: When "openid" scope was requested
	IdToken *string `json:"id_token,omitempty"`

	// TokenType indicates how to use the access token.
	// Example: "Bearer"
	// Standard: required by RFC 6749
	// Usage: Tells client to use "Authorization: Bearer <token>" header
	TokenType string `json:"token_type,omitempty"`

	// ExpiresIn is the lifetime in seconds of the access token.
	// Example: 900 (for 15 minutes)
	// Usage: Client should refresh token before expiration
	// Note: This is a hint - actual expiration is in the JWT's "exp" claim
	ExpiresIn int `json:"expires_in,omitempty"`

	// RefreshToken is an opaque token used to obtain new access tokens.
	// Example: "tGzv3JOkF0XG5Qx2TlKWIA"
	// Usage: Send to /token endpoint with grant_type=refresh_token
	// Lifespan: Long-lived (typically 7-30 days)
	// Security: Should be stored securely, rotates on each use
	RefreshToken *string `json:"refresh_token,omitempty"`

	// Scope indicates the access token's granted permissions.
	// Example: "openid profile email api.read"
	// Usage: Space-separated list of scopes
	// Note: May be less than requested if some scopes were denied
	Scope string `json:"scope,omitempty"`
}

// DecodeTokenResponse decodes a relayed token response body.
func DecodeTokenResponse(body []byte) (*TokenResponse, error) {
	var resp TokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Summary describes the response without exposing any token values.
func (t *TokenResponse) Summary() string {
	var present []string
	if utils.Value(t.AccessToken) != "" {
		present = append(present, "access_token")
	}
	if utils.Value(t.IdToken) != "" {
		present = append(present, "id_token")
	}
	if utils.Value(t.RefreshToken) != "" {
		present = append(present, "refresh_token")
	}
	tokens := "none"
	if len(present) > 0 {
		tokens = strings.Join(present, ",")
	}
	return fmt.Sprintf("token_type=%s expires_in=%d scope=%q tokens=%s", t.TokenType, t.ExpiresIn, t.Scope, tokens)
}
