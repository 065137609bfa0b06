package oauthmodel

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-oidc-playground/oauth2"
)

const maxTokenRequestBytes = 1 << 20

// TokenExchangeRequest holds the parameters the playground UI sends to /api/keycloak/token.
// The proxy re-encodes them as an application/x-www-form-urlencoded body for the
// identity provider's token endpoint. Nothing here is validated against the provider;
// the provider's answer is relayed as-is.
type TokenExchangeRequest struct {
	// TokenEndpoint is the absolute URL of the provider's token endpoint.
	// Required: No - when empty the default issuer's discovered token endpoint is used
	// Example: "http://localhost:8080/realms/demo/protocol/openid-connect/token"
	// Source: token_endpoint from the discovery document loaded by the UI
	TokenEndpoint string `json:"token_endpoint"`

	// GrantType selects the token flow.
	// Required: Yes
	// Example: "authorization_code" or "refresh_token"
	GrantType oauth2.GrantType `json:"grant_type"`

	// Code is the authorization code returned to the redirect URI.
	// Required: Yes for authorization_code
	// Example: "SplxlOBeZQQYbYS6WxSbIA"
	// Logging: only the first ten characters are ever logged
	Code string `json:"code,omitempty"`

	// RefreshToken obtains new tokens without re-authenticating.
	// Required: Yes for refresh_token
	// Security: Never logged
	RefreshToken string `json:"refresh_token,omitempty"`

	// ClientID identifies the public client registered at the provider.
	// Required: Usually (public clients authenticate with client_id only)
	// Example: "oidc-playground"
	ClientID string `json:"client_id,omitempty"`

	// RedirectURI must match the redirect_uri of the authentication request.
	// Required: Yes for authorization_code
	// Example: "http://localhost:8000/"
	RedirectURI string `json:"redirect_uri,omitempty"`

	// Scope optionally narrows the scope of a refreshed token.
	// Required: No
	// Example: "openid profile"
	Scope string `json:"scope,omitempty"`
}

// ParseTokenExchangeRequest reads a JSON or form encoded body.
func ParseTokenExchangeRequest(r *http.Request) (*TokenExchangeRequest, error) {
	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedContentType, ct)
		}
		mediaType = parsed
	}

	body := io.LimitReader(r.Body, maxTokenRequestBytes)

	switch mediaType {
	case "application/json":
		var req TokenExchangeRequest
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedTokenExchangeRequest, err)
		}
		return &req, nil

	case "application/x-www-form-urlencoded":
		raw, err := io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedTokenExchangeRequest, err)
		}
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedTokenExchangeRequest, err)
		}
		return &TokenExchangeRequest{
			TokenEndpoint: values.Get("token_endpoint"),
			GrantType:     oauth2.GrantType(values.Get("grant_type")),
			Code:          values.Get("code"),
			RefreshToken:  values.Get("refresh_token"),
			ClientID:      values.Get("client_id"),
			RedirectURI:   values.Get("redirect_uri"),
			Scope:         values.Get("scope"),
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedContentType, mediaType)
}

// Validate checks the one parameter every grant needs.
func (t *TokenExchangeRequest) Validate() error {
	if strings.TrimSpace(string(t.GrantType)) == "" {
		return ErrMissingGrantType
	}
	return nil
}

// Encode builds the form body in a fixed parameter order:
// grant_type, code, refresh_token, client_id, redirect_uri, scope.
// Empty optional parameters are left out.
func (t *TokenExchangeRequest) Encode() string {
	var b strings.Builder
	b.WriteString("grant_type=")
	b.WriteString(url.QueryEscape(string(t.GrantType)))

	for _, p := range []struct{ name, value string }{
		{"code", t.Code},
		{"refresh_token", t.RefreshToken},
		{"client_id", t.ClientID},
		{"redirect_uri", t.RedirectURI},
		{"scope", t.Scope},
	} {
		if p.value == "" {
			continue
		}
		b.WriteString("&")
		b.WriteString(p.name)
		b.WriteString("=")
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// CodePreview returns a log-safe prefix of the authorization code.
func (t *TokenExchangeRequest) CodePreview() string {
	if t.Code == "" {
		return "null"
	}
	if len(t.Code) <= 10 {
		return t.Code + "..."
	}
	return t.Code[:10] + "..."
}
