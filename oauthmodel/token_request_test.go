package oauthmodel_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-oidc-playground/oauth2"
	"github.com/jrsteele09/go-oidc-playground/oauthmodel"
)

func TestParseTokenExchangeRequest(t *testing.T) {
	t.Run("json body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/keycloak/token", strings.NewReader(
			`{"token_endpoint":"http://kc/token","grant_type":"authorization_code","code":"abc","client_id":"app","redirect_uri":"http://localhost:8000/"}`))
		r.Header.Set("Content-Type", "application/json; charset=utf-8")

		req, err := oauthmodel.ParseTokenExchangeRequest(r)
		require.NoError(t, err)
		require.Equal(t, "http://kc/token", req.TokenEndpoint)
		require.Equal(t, oauth2.AuthorizationCodeGrant, req.GrantType)
		require.Equal(t, "abc", req.Code)
		require.Equal(t, "app", req.ClientID)
		require.Equal(t, "http://localhost:8000/", req.RedirectURI)
	})

	t.Run("form body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/keycloak/token", strings.NewReader(
			"token_endpoint=http%3A%2F%2Fkc%2Ftoken&grant_type=refresh_token&refresh_token=r1&scope=openid+profile"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		req, err := oauthmodel.ParseTokenExchangeRequest(r)
		require.NoError(t, err)
		require.Equal(t, "http://kc/token", req.TokenEndpoint)
		require.Equal(t, oauth2.RefreshTokenCodeGrant, req.GrantType)
		require.Equal(t, "r1", req.RefreshToken)
		require.Equal(t, "openid profile", req.Scope)
	})

	t.Run("missing content type is treated as json", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/keycloak/token", strings.NewReader(`{"grant_type":"refresh_token"}`))
		req, err := oauthmodel.ParseTokenExchangeRequest(r)
		require.NoError(t, err)
		require.Equal(t, oauth2.RefreshTokenCodeGrant, req.GrantType)
	})

	t.Run("malformed json", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/keycloak/token", strings.NewReader(`{"grant_type":`))
		r.Header.Set("Content-Type", "application/json")
		_, err := oauthmodel.ParseTokenExchangeRequest(r)
		require.ErrorIs(t, err, oauthmodel.ErrMalformedTokenExchangeRequest)
	})

	t.Run("unsupported content type", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/keycloak/token", strings.NewReader("grant_type"))
		r.Header.Set("Content-Type", "text/plain")
		_, err := oauthmodel.ParseTokenExchangeRequest(r)
		require.ErrorIs(t, err, oauthmodel.ErrUnsupportedContentType)
	})
}

func TestTokenExchangeRequestValidate(t *testing.T) {
	require.ErrorIs(t, (&oauthmodel.TokenExchangeRequest{}).Validate(), oauthmodel.ErrMissingGrantType)
	require.ErrorIs(t, (&oauthmodel.TokenExchangeRequest{GrantType: "  "}).Validate(), oauthmodel.ErrMissingGrantType)
	require.NoError(t, (&oauthmodel.TokenExchangeRequest{GrantType: oauth2.AuthorizationCodeGrant}).Validate())
}

func TestTokenExchangeRequestEncode(t *testing.T) {
	t.Run("fixed order and escaping", func(t *testing.T) {
		req := oauthmodel.TokenExchangeRequest{
			TokenEndpoint: "http://kc/token",
			GrantType:     oauth2.AuthorizationCodeGrant,
			Code:          "a b&c",
			ClientID:      "app",
			RedirectURI:   "http://localhost:8000/",
			Scope:         "openid profile",
		}
		require.Equal(t,
			"grant_type=authorization_code&code=a+b%26c&client_id=app&redirect_uri=http%3A%2F%2Flocalhost%3A8000%2F&scope=openid+profile",
			req.Encode())
	})

	t.Run("empty optionals omitted", func(t *testing.T) {
		req := oauthmodel.TokenExchangeRequest{GrantType: oauth2.RefreshTokenCodeGrant, RefreshToken: "r1"}
		require.Equal(t, "grant_type=refresh_token&refresh_token=r1", req.Encode())
	})

	t.Run("token endpoint never encoded", func(t *testing.T) {
		req := oauthmodel.TokenExchangeRequest{TokenEndpoint: "http://kc/token", GrantType: oauth2.ClientCredentialsCodeGrant}
		require.Equal(t, "grant_type=client_credentials", req.Encode())
	})
}

func TestTokenExchangeRequestCodePreview(t *testing.T) {
	require.Equal(t, "null", (&oauthmodel.TokenExchangeRequest{}).CodePreview())
	require.Equal(t, "short...", (&oauthmodel.TokenExchangeRequest{Code: "short"}).CodePreview())
	require.Equal(t, "0123456789...", (&oauthmodel.TokenExchangeRequest{Code: "0123456789abcdef"}).CodePreview())
}
