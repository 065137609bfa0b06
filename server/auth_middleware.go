package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	perrors "github.com/jrsteele09/go-oidc-playground/internal/errors"
	"github.com/jrsteele09/go-oidc-playground/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyPrincipal stores the verified *token.Principal
	ContextKeyPrincipal ContextKey = "principal"
)

// RequireRole is middleware for backend routes that need a verified bearer token
// granting role for clientID.
//   - missing or unverifiable token: 401 with WWW-Authenticate: Bearer
//   - role not granted: 403
//   - issuer unreachable: 503
func (s *Server) RequireRole(clientID, role string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			logger := requestLogger(r)

			raw, ok := token.FromHeader(r.Header.Get("Authorization"))
			if !ok {
				logger.Debug().Msgf("  └─ %s", perrors.ErrNoToken)
				s.unauthorized(w, "")
				return
			}

			principal, err := s.verifier.Verify(r.Context(), raw)
			if err != nil {
				if errors.Is(err, perrors.ErrDiscoveryFailed) {
					logger.Err(err).Msg("  └─ Cannot verify token")
					writeText(w, http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable))
					return
				}
				logger.Warn().Err(err).Msg("  └─ Token rejected")
				s.unauthorized(w, "invalid_token")
				return
			}

			if !principal.HasRole(clientID, role) {
				logger.Warn().Msgf("  └─ %s: %s lacks %s:%s", perrors.ErrMissingRole, principal.Username, clientID, role)
				writeText(w, http.StatusForbidden, http.StatusText(http.StatusForbidden))
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyPrincipal, principal)
			next(w, r.WithContext(ctx))
		}
	}
}

func (s *Server) unauthorized(w http.ResponseWriter, errorCode string) {
	challenge := fmt.Sprintf("Bearer realm=%q", s.config.GetRealm())
	if errorCode != "" {
		challenge += fmt.Sprintf(", error=%q", errorCode)
	}
	w.Header().Set("WWW-Authenticate", challenge)
	writeText(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
}

// PrincipalFromContext returns the principal stored by RequireRole.
func PrincipalFromContext(ctx context.Context) (*token.Principal, bool) {
	principal, ok := ctx.Value(ContextKeyPrincipal).(*token.Principal)
	return principal, ok
}
