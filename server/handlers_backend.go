package server

import (
	"net/http"
	"strings"
)

const (
	publicMessage = "Public message!"
	secretMessage = "Secret message!"
)

// BackendIndexHandler links the public and secured endpoints.
func (s *Server) BackendIndexHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("backend_index.html")
	if err != nil {
		panic("Failed to parse backend index template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"AppName":      s.config.GetAppName(),
			"PublicRoute":  RoutePublic,
			"SecuredRoute": RouteSecured,
			"ClientID":     s.config.GetBackendClientID(),
			"Role":         s.config.GetRequiredRole(),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			requestLogger(r).Err(err).Msg("Failed to render backend index")
		}
	}
}

func (s *Server) PublicHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusOK, publicMessage)
	}
}

// SecuredHandler runs behind RequireRole.
func (s *Server) SecuredHandler() http.HandlerFunc {
	clientID := s.config.GetBackendClientID()

	return func(w http.ResponseWriter, r *http.Request) {
		if principal, ok := PrincipalFromContext(r.Context()); ok {
			logger := requestLogger(r)
			logger.Info().Msgf("  └─ ✓ Access GRANTED to user: %s", principal.Username)
			logger.Info().Msgf("  └─ Client roles: [%s]", strings.Join(principal.Roles.Client[clientID], ", "))
		}
		writeText(w, http.StatusOK, secretMessage)
	}
}
