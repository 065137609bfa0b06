package oauthmodel

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	xoauth2 "golang.org/x/oauth2"

	"github.com/jrsteele09/go-oidc-playground/oauth2"
)

// AuthenticationRequest describes the authorization code request the playground sends the
// browser to. The resulting URL always carries response_type=code.
type AuthenticationRequest struct {
	// AuthorizationEndpoint is the provider's authorization_endpoint from discovery.
	// Required: Yes
	// Example: "http://localhost:8080/realms/demo/protocol/openid-connect/auth"
	AuthorizationEndpoint string

	// ClientID identifies the client registered at the provider.
	// Required: Yes
	ClientID string

	// RedirectURI is where the provider returns the authorization code.
	// Required: No, the provider falls back to the registered URI when there is exactly one
	RedirectURI string

	// Scope is a space separated scope list.
	// Example: "openid profile email"
	Scope string

	// State is echoed back on the redirect. A random value is generated when empty.
	State string

	// Prompt controls re-authentication and consent ("none", "login", "consent").
	Prompt string

	// MaxAge is the maximum authentication age in seconds, passed as max_age.
	// Empty means not sent.
	MaxAge string

	// LoginHint pre-fills the username on the provider's login page.
	LoginHint string

	// ResponseMode optionally asks for query, fragment or form_post delivery.
	ResponseMode oauth2.ResponseModeType

	// CodeChallenge and CodeChallengeMethod carry an optional PKCE challenge.
	CodeChallenge       string
	CodeChallengeMethod oauth2.CodeMethodType
}

func AuthenticationRequestFromQuery(r *http.Request) AuthenticationRequest {
	q := r.URL.Query()
	return AuthenticationRequest{
		AuthorizationEndpoint: q.Get("authorization_endpoint"),
		ClientID:              q.Get("client_id"),
		RedirectURI:           q.Get("redirect_uri"),
		Scope:                 q.Get("scope"),
		State:                 q.Get("state"),
		Prompt:                q.Get("prompt"),
		MaxAge:                q.Get("max_age"),
		LoginHint:             q.Get("login_hint"),
		ResponseMode:          oauth2.ResponseModeType(q.Get("response_mode")),
		CodeChallenge:         q.Get("code_challenge"),
		CodeChallengeMethod:   oauth2.CodeMethodType(q.Get("code_challenge_method")),
	}
}

func (a AuthenticationRequest) Validate() error {
	if strings.TrimSpace(a.AuthorizationEndpoint) == "" {
		return ErrMissingAuthorizationEndpoint
	}
	if strings.TrimSpace(a.ClientID) == "" {
		return ErrMissingClientID
	}
	if a.MaxAge != "" {
		if n, err := strconv.Atoi(a.MaxAge); err != nil || n < 0 {
			return ErrInvalidMaxAge
		}
	}
	if !codeChallengeMethodValid(a.CodeChallenge, a.CodeChallengeMethod) {
		return ErrInvalidCodeChallengeMethod
	}
	if !responseModeValid(a.ResponseMode) {
		return ErrInvalidResponseMode
	}
	return nil
}

// URL validates the request and returns the authorization URL.
func (a AuthenticationRequest) URL() (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}

	cfg := xoauth2.Config{
		ClientID:    a.ClientID,
		RedirectURL: a.RedirectURI,
		Scopes:      strings.Fields(a.Scope),
		Endpoint:    xoauth2.Endpoint{AuthURL: a.AuthorizationEndpoint},
	}

	var opts []xoauth2.AuthCodeOption
	for _, p := range []struct{ key, value string }{
		{"prompt", a.Prompt},
		{"max_age", a.MaxAge},
		{"login_hint", a.LoginHint},
		{"response_mode", string(a.ResponseMode)},
		{"code_challenge", a.CodeChallenge},
	} {
		if p.value != "" {
			opts = append(opts, xoauth2.SetAuthURLParam(p.key, p.value))
		}
	}
	if a.CodeChallenge != "" {
		method := a.CodeChallengeMethod
		if method == "" {
			method = oauth2.CodeMethodTypeS256
		}
		opts = append(opts, xoauth2.SetAuthURLParam("code_challenge_method", string(method)))
	}

	state := a.State
	if state == "" {
		state = uuid.NewString()
	}
	return cfg.AuthCodeURL(state, opts...), nil
}

func codeChallengeMethodValid(codeChallenge string, challengeMethod oauth2.CodeMethodType) bool {
	if strings.TrimSpace(codeChallenge) == "" {
		return true
	}
	switch challengeMethod {
	case "", oauth2.CodeMethodTypeS256, oauth2.CodeMethodTypeNone:
		return true
	}
	return false
}

func responseModeValid(responseMode oauth2.ResponseModeType) bool {
	switch responseMode {
	case "", oauth2.QueryResponseMode, oauth2.FragmentResponseMode, oauth2.FormPostResponseMode:
		return true
	}
	return false
}
