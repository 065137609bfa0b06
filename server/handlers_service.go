package server

import (
	"fmt"
	"net/http"
	"strings"
)

const (
	errConnectingToBackend = "Error connecting to backend service"

	msgInvalidToken = "Access denied: Invalid or missing authentication token"
	msgMissingRole  = "Access denied: User does not have the required '%s' role"
	msgBackendError = "Backend service error"
	msgAccessDenied = "Access denied"
)

// ServiceProxy calls the configured SERVICE_URL and relays status and text.
func (s *Server) ServiceProxy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(r)

		target := s.config.GetServiceURL()
		header := authorizationHeader(r)
		logger.Info().Msgf("GET %s → %s", RouteAPIService, target)
		logger.Info().Msgf("  └─ Authorization: %s", presence(header != nil))

		start := s.now()
		resp, err := s.upstream.Get(r.Context(), target, header)
		if err != nil {
			s.observeFailure(RouteAPIService, start)
			logger.Err(err).Msg("Backend service request failed")
			writeText(w, http.StatusInternalServerError, errConnectingToBackend)
			return
		}
		s.observeResponse(RouteAPIService, resp, start)
		logger.Info().Msgf("  └─ Response: %d", resp.StatusCode)

		writeBody(w, resp.StatusCode, contentTypeText, resp.Body)
	}
}

// PublicServiceProxy calls {OAUTH_SERVICE_URL}/public without credentials.
func (s *Server) PublicServiceProxy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(r)

		target := s.backendURL(RoutePublic)
		logger.Info().Msgf("GET %s → %s", RouteAPIServicePublic, target)

		start := s.now()
		resp, err := s.upstream.Get(r.Context(), target, nil)
		if err != nil {
			s.observeFailure(RouteAPIServicePublic, start)
			logger.Err(err).Msg("Public endpoint request failed")
			writeText(w, http.StatusInternalServerError, errConnectingToBackend)
			return
		}
		s.observeResponse(RouteAPIServicePublic, resp, start)
		logger.Info().Msgf("  └─ Response: %d", resp.StatusCode)

		if resp.IsSuccess() {
			writeBody(w, http.StatusOK, contentTypeText, resp.Body)
			return
		}
		writeBody(w, resp.StatusCode, contentTypeText, resp.Body)
	}
}

// SecuredServiceProxy calls {OAUTH_SERVICE_URL}/secured with the caller's Authorization header
// and turns access failures into readable messages.
func (s *Server) SecuredServiceProxy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(r)

		target := s.backendURL(RouteSecured)
		header := authorizationHeader(r)
		logger.Info().Msgf("GET %s → %s", RouteAPIServiceSecured, target)
		logger.Info().Msgf("  └─ Authorization: %s", presence(header != nil))

		start := s.now()
		resp, err := s.upstream.Get(r.Context(), target, header)
		if err != nil {
			s.observeFailure(RouteAPIServiceSecured, start)
			logger.Err(err).Msg("Secured endpoint request failed")
			writeText(w, http.StatusInternalServerError, errConnectingToBackend)
			return
		}
		s.observeResponse(RouteAPIServiceSecured, resp, start)
		logger.Info().Msgf("  └─ Response: %d", resp.StatusCode)

		if resp.IsSuccess() {
			writeBody(w, http.StatusOK, contentTypeText, resp.Body)
			return
		}
		writeText(w, resp.StatusCode, s.securedFailureMessage(resp.StatusCode))
	}
}

func (s *Server) securedFailureMessage(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return msgInvalidToken
	case status == http.StatusForbidden:
		return fmt.Sprintf(msgMissingRole, s.config.GetRequiredRole())
	case status >= http.StatusInternalServerError:
		return msgBackendError
	}
	return msgAccessDenied
}

func (s *Server) backendURL(path string) string {
	return strings.TrimRight(s.config.GetOAuthServiceURL(), "/") + path
}
