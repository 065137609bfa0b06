package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-oidc-playground/token"
)

// Backend access results recorded in metrics.
const (
	accessAuthorized     = "authorized"
	accessNoToken        = "no_token"
	accessInvalidToken   = "invalid_token"
	accessForbidden      = "forbidden"
	accessPublic         = "public"
	accessPublicError    = "public_error"
	accessSecuredFailure = "error"
)

const tokenPreviewMaxLength = 50

// DiagnosticsMiddleware explains backend access decisions in the log: whether a bearer
// token came with the request, what it claims (unverified), why it would be rejected,
// and the final outcome. The index page is not logged.
func (s *Server) DiagnosticsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == RouteIndex {
			next(w, r)
			return
		}

		logger := requestLogger(r)
		raw, hasToken := token.FromHeader(r.Header.Get("Authorization"))
		isPublic := r.URL.Path == RoutePublic

		if isPublic {
			logger.Info().Msgf("%s %s - Token: %s", r.Method, r.URL.Path, publicTokenState(hasToken))
		} else {
			logger.Info().Msgf("%s %s - Token: %s", r.Method, r.URL.Path, presence(hasToken))
		}

		if hasToken {
			s.logTokenDetails(logger, raw)
		}

		rec := &statusRecorder{ResponseWriter: w}
		next(rec, r)
		status := rec.Status()

		switch r.URL.Path {
		case RouteSecured:
			s.logSecuredOutcome(logger, r, status, hasToken)
		case RoutePublic:
			s.logPublicOutcome(logger, r, status)
		}
	}
}

func (s *Server) logTokenDetails(logger *zerolog.Logger, raw string) {
	inspection, err := token.Inspect(raw)
	if err != nil {
		logger.Warn().Msgf("  └─ ⚠️  Could not decode token: %v", err)
		logger.Warn().Msgf("  └─ Token preview: %s...", preview(raw))
		return
	}

	expires := "N/A"
	if inspection.ExpiresAt != nil {
		expires = inspection.ExpiresAt.UTC().Format(time.RFC3339)
	}
	logger.Info().Msgf("  └─ Issuer: %s", orNA(inspection.Issuer))
	logger.Info().Msgf("  └─ Subject: %s", orNA(inspection.Subject))
	logger.Info().Msgf("  └─ Username: %s", orNA(inspection.Username))
	logger.Info().Msgf("  └─ Audience: [%s]", strings.Join(inspection.Audience, ", "))
	logger.Info().Msgf("  └─ Expires: %s", expires)

	expect := token.Expectation{
		Issuer:   s.config.GetExpectedIssuer(),
		ClientID: s.config.GetBackendClientID(),
		Role:     s.config.GetRequiredRole(),
	}
	for _, warning := range inspection.Warnings(expect, s.now()) {
		logger.Warn().Msgf("  └─ ⚠️  %s", warning)
	}
}

func (s *Server) logSecuredOutcome(logger *zerolog.Logger, r *http.Request, status int, hasToken bool) {
	reason := ""
	result := accessAuthorized
	switch {
	case status == http.StatusUnauthorized && !hasToken:
		reason, result = "(No token provided)", accessNoToken
	case status == http.StatusUnauthorized:
		reason, result = "(Invalid or expired token)", accessInvalidToken
	case status == http.StatusForbidden:
		reason, result = "(Insufficient permissions)", accessForbidden
	case status >= http.StatusBadRequest:
		result = accessSecuredFailure
	}
	s.metrics.ObserveBackendAccess(RouteSecured, result)

	if status < http.StatusBadRequest {
		logger.Info().Msgf("✓ AUTHORIZED - %s %s → %d", r.Method, r.URL.Path, status)
		return
	}
	logger.Warn().Msgf("✗ DENIED - %s %s → %d %s", r.Method, r.URL.Path, status, reason)
}

func (s *Server) logPublicOutcome(logger *zerolog.Logger, r *http.Request, status int) {
	if status < http.StatusBadRequest {
		s.metrics.ObserveBackendAccess(RoutePublic, accessPublic)
		logger.Info().Msgf("✓ Public endpoint accessed - %s %s → %d", r.Method, r.URL.Path, status)
		return
	}
	s.metrics.ObserveBackendAccess(RoutePublic, accessPublicError)
	logger.Warn().Msgf("✗ Public endpoint error - %s %s → %d", r.Method, r.URL.Path, status)
}

func publicTokenState(hasToken bool) string {
	if hasToken {
		return "present (not required)"
	}
	return "not required"
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

func preview(raw string) string {
	if len(raw) > tokenPreviewMaxLength {
		return raw[:tokenPreviewMaxLength]
	}
	return raw
}
