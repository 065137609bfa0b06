package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

func (s *Server) initFrontendRoutes() {
	s.RegisterRouteHandler("GET "+RouteIndex+"{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))

	// Identity provider proxies
	s.RegisterRouteHandler("GET "+RouteAPIConfig, ChainMiddleware(s.ConfigHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIDiscovery, ChainMiddleware(s.DiscoveryProxy(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPIToken, ChainMiddleware(s.TokenProxy(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIUserInfo, ChainMiddleware(s.UserInfoProxy(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPILogout, ChainMiddleware(s.LogoutRedirect(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIAuthorize, ChainMiddleware(s.AuthorizeURL(), s.APIMiddleware()...))

	// Backend service proxies
	s.RegisterRouteHandler("GET "+RouteAPIService, ChainMiddleware(s.ServiceProxy(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIServicePublic, ChainMiddleware(s.PublicServiceProxy(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIServiceSecured, ChainMiddleware(s.SecuredServiceProxy(), s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteStaticFile, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare()...))
}

func (s *Server) initBackendRoutes() {
	s.RegisterRouteHandler("GET "+RouteIndex+"{$}", ChainMiddleware(s.BackendIndexHandler(), s.BackendMiddleware()...))
	s.RegisterRouteHandler("GET "+RoutePublic, ChainMiddleware(s.PublicHandler(), s.BackendMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteSecured, ChainMiddleware(s.SecuredHandler(),
		s.BackendMiddleware(s.RequireRole(s.config.GetBackendClientID(), s.config.GetRequiredRole()))...))

	// CORS preflight for any backend path, 404 for everything else
	s.RegisterRouteHandler("/{path...}", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.NotFound(w, r)
	}, s.CorsMiddleware))
}

func (s *Server) initSharedRoutes() {
	s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())
	s.RegisterRouteFunc("GET "+RouteHealthz, func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusOK, "ok")
	})
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := s.static.StreamFile(w, filePath)
		if err != nil {
			logError(r.Method, filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

func logError(method, path, error string) {
	errorString := Red + error + ResetColor
	log.Warn().Msgf("[%-19s] %s %s", colourMethod(method), path, errorString)
}
