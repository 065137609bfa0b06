package oauthmodel_test

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-oidc-playground/oauth2"
	"github.com/jrsteele09/go-oidc-playground/oauthmodel"
)

func TestAuthenticationRequestURL(t *testing.T) {
	t.Run("full request", func(t *testing.T) {
		req := oauthmodel.AuthenticationRequest{
			AuthorizationEndpoint: "http://kc/realms/demo/protocol/openid-connect/auth",
			ClientID:              "app",
			RedirectURI:           "http://localhost:8000/",
			Scope:                 "openid  profile",
			State:                 "s1",
			Prompt:                "login",
			MaxAge:                "300",
			LoginHint:             "alice",
		}

		raw, err := req.URL()
		require.NoError(t, err)

		u, err := url.Parse(raw)
		require.NoError(t, err)
		require.Equal(t, "kc", u.Host)
		require.Equal(t, "/realms/demo/protocol/openid-connect/auth", u.Path)

		q := u.Query()
		require.Equal(t, "code", q.Get("response_type"))
		require.Equal(t, "app", q.Get("client_id"))
		require.Equal(t, "http://localhost:8000/", q.Get("redirect_uri"))
		require.Equal(t, "openid profile", q.Get("scope"))
		require.Equal(t, "s1", q.Get("state"))
		require.Equal(t, "login", q.Get("prompt"))
		require.Equal(t, "300", q.Get("max_age"))
		require.Equal(t, "alice", q.Get("login_hint"))
		require.False(t, q.Has("code_challenge"))
	})

	t.Run("state generated when empty", func(t *testing.T) {
		req := oauthmodel.AuthenticationRequest{AuthorizationEndpoint: "http://kc/auth", ClientID: "app"}
		raw, err := req.URL()
		require.NoError(t, err)
		u, err := url.Parse(raw)
		require.NoError(t, err)
		require.NotEmpty(t, u.Query().Get("state"))
		require.False(t, u.Query().Has("prompt"))
	})

	t.Run("pkce defaults to S256", func(t *testing.T) {
		req := oauthmodel.AuthenticationRequest{AuthorizationEndpoint: "http://kc/auth", ClientID: "app", CodeChallenge: "xyz"}
		raw, err := req.URL()
		require.NoError(t, err)
		u, err := url.Parse(raw)
		require.NoError(t, err)
		require.Equal(t, "xyz", u.Query().Get("code_challenge"))
		require.Equal(t, "S256", u.Query().Get("code_challenge_method"))
	})

	t.Run("validation", func(t *testing.T) {
		base := oauthmodel.AuthenticationRequest{AuthorizationEndpoint: "http://kc/auth", ClientID: "app"}

		missingEndpoint := base
		missingEndpoint.AuthorizationEndpoint = ""
		_, err := missingEndpoint.URL()
		require.ErrorIs(t, err, oauthmodel.ErrMissingAuthorizationEndpoint)

		missingClient := base
		missingClient.ClientID = ""
		_, err = missingClient.URL()
		require.ErrorIs(t, err, oauthmodel.ErrMissingClientID)

		badMaxAge := base
		badMaxAge.MaxAge = "-1"
		_, err = badMaxAge.URL()
		require.ErrorIs(t, err, oauthmodel.ErrInvalidMaxAge)

		badMethod := base
		badMethod.CodeChallenge = "xyz"
		badMethod.CodeChallengeMethod = "MD5"
		_, err = badMethod.URL()
		require.ErrorIs(t, err, oauthmodel.ErrInvalidCodeChallengeMethod)

		badMode := base
		badMode.ResponseMode = "web_message"
		_, err = badMode.URL()
		require.ErrorIs(t, err, oauthmodel.ErrInvalidResponseMode)

		okMode := base
		okMode.ResponseMode = oauth2.FragmentResponseMode
		require.NoError(t, okMode.Validate())
	})
}

func TestAuthenticationRequestFromQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/keycloak/authorize?authorization_endpoint=http%3A%2F%2Fkc%2Fauth&client_id=app&max_age=10&response_mode=query", nil)
	req := oauthmodel.AuthenticationRequestFromQuery(r)
	require.Equal(t, "http://kc/auth", req.AuthorizationEndpoint)
	require.Equal(t, "app", req.ClientID)
	require.Equal(t, "10", req.MaxAge)
	require.Equal(t, oauth2.QueryResponseMode, req.ResponseMode)
}
