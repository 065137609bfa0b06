package oauthmodel

import (
	"net/http"
	"net/url"
	"strings"
)

// LogoutRequest carries the RP-initiated logout parameters the UI passes to /api/keycloak/logout.
type LogoutRequest struct {
	// EndSessionEndpoint is the provider's end_session_endpoint from discovery.
	// Required: Yes
	EndSessionEndpoint string

	// PostLogoutRedirectURI is where the provider sends the browser after logout.
	// Required: No (omitted from the redirect when empty)
	// Example: "http://localhost:8000/"
	PostLogoutRedirectURI string

	// IDTokenHint is the ID token of the session being ended.
	// Required: No, but providers skip the confirmation page when present
	// Logging: only its presence is logged
	IDTokenHint string
}

func LogoutRequestFromQuery(r *http.Request) LogoutRequest {
	q := r.URL.Query()
	return LogoutRequest{
		EndSessionEndpoint:    q.Get("end_session_endpoint"),
		PostLogoutRedirectURI: q.Get("post_logout_redirect_uri"),
		IDTokenHint:           q.Get("id_token_hint"),
	}
}

// URL returns the end session URL the browser is redirected to.
func (l LogoutRequest) URL() (string, error) {
	endpoint := strings.TrimSpace(l.EndSessionEndpoint)
	if endpoint == "" {
		return "", ErrMissingEndSessionEndpoint
	}

	separator := "?"
	if strings.Contains(endpoint, "?") {
		separator = "&"
	}

	var params []string
	if l.PostLogoutRedirectURI != "" {
		params = append(params, "post_logout_redirect_uri="+url.QueryEscape(l.PostLogoutRedirectURI))
	}
	if l.IDTokenHint != "" {
		params = append(params, "id_token_hint="+url.QueryEscape(l.IDTokenHint))
	}
	if len(params) == 0 {
		return endpoint, nil
	}
	return endpoint + separator + strings.Join(params, "&"), nil
}
