package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-oidc-playground/internal/config"
	"github.com/jrsteele09/go-oidc-playground/internal/metrics"
	"github.com/jrsteele09/go-oidc-playground/internal/telemetry"
	"github.com/jrsteele09/go-oidc-playground/token"
	"github.com/jrsteele09/go-oidc-playground/upstream"
)

// Mode selects which half of the playground a Server runs.
type Mode string

const (
	// ModeFrontend serves the playground UI and the /api proxies.
	ModeFrontend Mode = "frontend"
	// ModeBackend serves the protected sample service.
	ModeBackend Mode = "backend"
)

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	mode    Mode
	mux     *http.ServeMux
	handler http.Handler
	routes  []string
	config  config.Config

	upstream  upstream.Client
	discovery *token.Discovery
	verifier  *token.Verifier
	metrics   *metrics.Metrics
	static    *staticFiles
	now       func() time.Time
}

type Option func(*Server)

// WithUpstream replaces the outbound HTTP client used by the proxies.
func WithUpstream(c upstream.Client) Option {
	return func(s *Server) {
		s.upstream = c
	}
}

// WithDiscovery sets the default issuer discovery used for the token endpoint fallback.
func WithDiscovery(d *token.Discovery) Option {
	return func(s *Server) {
		s.discovery = d
	}
}

// WithVerifier sets the access token verifier of the backend.
func WithVerifier(v *token.Verifier) Option {
	return func(s *Server) {
		s.verifier = v
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

func WithNowFunc(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

func New(cfg config.Config, mode Mode, opts ...Option) (*Server, error) {
	if mode != ModeFrontend && mode != ModeBackend {
		return nil, fmt.Errorf("[Server New] unknown mode %q", mode)
	}

	s := &Server{
		env:    cfg.GetEnv(),
		mode:   mode,
		mux:    http.NewServeMux(),
		config: cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.metrics == nil {
		s.metrics = metrics.New()
	}

	var httpClient *http.Client
	if s.upstream == nil {
		c := upstream.New(upstream.WithTimeout(cfg.GetUpstreamTimeout()))
		s.upstream = c
		httpClient = c.HTTP()
	}

	switch mode {
	case ModeFrontend:
		if s.discovery == nil {
			s.discovery = token.NewDiscovery(cfg.GetDefaultIssuer(), httpClient)
		}
		static, err := newStaticFiles(strings.NewReplacer(
			"KC_URL", cfg.GetKeycloakURL(),
			"INPUT_ISSUER", cfg.GetDefaultIssuer(),
			"SERVICE_URL", RouteAPIService,
		))
		if err != nil {
			return nil, fmt.Errorf("[Server New] failed to load static files: %w", err)
		}
		s.static = static
		s.initFrontendRoutes()

	case ModeBackend:
		if s.verifier == nil {
			s.verifier = token.NewVerifier(cfg.GetExpectedIssuer(), cfg.GetBackendClientID(), token.WithHTTPClient(httpClient))
		}
		s.initBackendRoutes()
	}
	s.initSharedRoutes()
	s.logRoutes()

	s.handler = telemetry.Middleware(string(mode))(s.mux)
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) Mode() Mode {
	return s.mode
}

func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}

func colourMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}
