package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jrsteele09/go-oidc-playground/internal/metrics"
	"github.com/jrsteele09/go-oidc-playground/oauth2"
	"github.com/jrsteele09/go-oidc-playground/oauthmodel"
	"github.com/jrsteele09/go-oidc-playground/upstream"
)

const (
	errFetchingDiscovery = "Error fetching discovery"
	errExchangingToken   = "Error exchanging token"
	errFetchingUserInfo  = "Error fetching userinfo"
	errLoggingOut        = "Error logging out"
	errBuildingAuthURL   = "Error building authentication request"
)

// ConfigHandler tells the UI which issuer to prefill.
func (s *Server) ConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"issuer": s.config.GetDefaultIssuer()})
	}
}

// DiscoveryProxy fetches {issuer}/.well-known/openid-configuration and relays status and body.
func (s *Server) DiscoveryProxy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(r)

		issuer := r.URL.Query().Get("issuer")
		if issuer == "" {
			issuer = s.config.GetDefaultIssuer()
		}
		target := issuer + "/.well-known/openid-configuration"
		logger.Info().Msgf("GET %s → %s", RouteAPIDiscovery, target)

		start := s.now()
		resp, err := s.upstream.Get(r.Context(), target, nil)
		if err != nil {
			s.observeFailure(RouteAPIDiscovery, start)
			logger.Err(err).Msg("Discovery request failed")
			writeJSONError(w, errFetchingDiscovery, http.StatusInternalServerError)
			return
		}
		s.observeResponse(RouteAPIDiscovery, resp, start)
		logger.Info().Msgf("  └─ Response: %d", resp.StatusCode)

		writeBody(w, resp.StatusCode, contentTypeJSON, resp.Body)
	}
}

// TokenProxy forwards an authorization_code or refresh_token exchange to the token endpoint.
func (s *Server) TokenProxy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(r)

		req, err := oauthmodel.ParseTokenExchangeRequest(r)
		if err == nil {
			err = req.Validate()
		}
		if err != nil {
			logger.Err(err).Msg("Invalid token exchange request")
			writeJSONError(w, errExchangingToken, http.StatusInternalServerError)
			return
		}

		endpoint := req.TokenEndpoint
		if endpoint == "" {
			endpoint, err = s.discovery.TokenEndpoint(r.Context())
			if err != nil {
				logger.Err(err).Msg("No token_endpoint given and discovery of the default issuer failed")
				writeJSONError(w, errExchangingToken, http.StatusInternalServerError)
				return
			}
		}

		logger.Info().Msgf("POST %s → %s", RouteAPIToken, endpoint)
		logger.Info().Msgf("  └─ Grant type: %s, Code: %s", req.GrantType, req.CodePreview())

		start := s.now()
		resp, err := s.upstream.PostForm(r.Context(), endpoint, req.Encode())
		if err != nil {
			s.observeFailure(RouteAPIToken, start)
			logger.Err(err).Msg("Token exchange failed")
			writeJSONError(w, errExchangingToken, http.StatusInternalServerError)
			return
		}
		s.observeResponse(RouteAPIToken, resp, start)
		logger.Info().Msgf("  └─ Response: %d", resp.StatusCode)

		if tokens, err := oauth2.DecodeTokenResponse(resp.Body); err == nil {
			logger.Debug().Msgf("  └─ %s", tokens.Summary())
		}

		body := resp.Body
		if len(body) == 0 {
			body = []byte("{}")
		}
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		writeBody(w, resp.StatusCode, contentTypeJSON, body)
	}
}

// UserInfoProxy calls the userinfo endpoint with the caller's Authorization header.
func (s *Server) UserInfoProxy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(r)

		endpoint := r.URL.Query().Get("endpoint")
		logger.Info().Msgf("GET %s → %s", RouteAPIUserInfo, endpoint)

		header := authorizationHeader(r)
		logger.Info().Msgf("  └─ Authorization: %s", presence(header != nil))

		start := s.now()
		resp, err := s.upstream.Get(r.Context(), endpoint, header)
		if err != nil {
			s.observeFailure(RouteAPIUserInfo, start)
			logger.Err(err).Msg("Userinfo request failed")
			writeJSONError(w, errFetchingUserInfo, http.StatusInternalServerError)
			return
		}
		s.observeResponse(RouteAPIUserInfo, resp, start)
		logger.Info().Msgf("  └─ Response: %d", resp.StatusCode)

		writeBody(w, resp.StatusCode, contentTypeJSON, resp.Body)
	}
}

// LogoutRedirect sends the browser to the provider's end_session_endpoint.
func (s *Server) LogoutRedirect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(r)

		req := oauthmodel.LogoutRequestFromQuery(r)
		logoutURL, err := req.URL()
		if err != nil {
			logger.Err(err).Msg("Logout failed")
			writeJSONError(w, errLoggingOut, http.StatusInternalServerError)
			return
		}

		logger.Info().Msgf("GET %s → %s", RouteAPILogout, req.EndSessionEndpoint)
		logger.Info().Msgf("  └─ id_token_hint: %s", presence(req.IDTokenHint != ""))

		http.Redirect(w, r, logoutURL, http.StatusSeeOther)
	}
}

// AuthorizeURL builds the authorization code request URL for the UI.
func (s *Server) AuthorizeURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(r)

		req := oauthmodel.AuthenticationRequestFromQuery(r)
		authURL, err := req.URL()
		if err != nil {
			logger.Err(err).Msg("Failed to build authentication request")
			writeJSONError(w, errBuildingAuthURL, http.StatusInternalServerError)
			return
		}

		logger.Info().Msgf("GET %s → %s", RouteAPIAuthorize, req.AuthorizationEndpoint)
		writeJSON(w, http.StatusOK, map[string]string{"url": authURL})
	}
}

// authorizationHeader copies the caller's Authorization header, or returns nil when absent.
func authorizationHeader(r *http.Request) http.Header {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return nil
	}
	return http.Header{"Authorization": []string{auth}}
}

func presence(present bool) string {
	if present {
		return "present"
	}
	return "missing"
}

func (s *Server) observeResponse(route string, resp *upstream.Response, start time.Time) {
	s.metrics.ObserveProxy(route, strconv.Itoa(resp.StatusCode), s.now().Sub(start))
}

func (s *Server) observeFailure(route string, start time.Time) {
	s.metrics.ObserveProxy(route, metrics.OutcomeError, s.now().Sub(start))
}
