package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Frontend API Routes - Identity provider proxies
	RouteAPIConfig    = "/api/config"
	RouteAPIDiscovery = "/api/keycloak/discovery"
	RouteAPIToken     = "/api/keycloak/token"
	RouteAPIUserInfo  = "/api/keycloak/userinfo"
	RouteAPILogout    = "/api/keycloak/logout"
	RouteAPIAuthorize = "/api/keycloak/authorize"

	// Frontend API Routes - Backend service proxies
	RouteAPIService        = "/api/service"
	RouteAPIServicePublic  = "/api/service/public"
	RouteAPIServiceSecured = "/api/service/secured"

	// Backend Routes
	RouteIndex   = "/"
	RoutePublic  = "/public"
	RouteSecured = "/secured"

	// Shared Routes
	RouteMetrics = "/metrics"
	RouteHealthz = "/healthz"

	// Static Asset Routes (patterns)
	RouteStaticFile = "/{file}"
)
