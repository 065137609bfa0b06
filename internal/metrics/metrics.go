// Package metrics exposes Prometheus collectors for proxy and backend traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "playground"

// OutcomeError labels a proxy request that failed locally (no upstream status).
const OutcomeError = "error"

// Metrics owns a private registry so several servers can live in one process (tests).
type Metrics struct {
	registry         *prometheus.Registry
	proxyRequests    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	backendAccess    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		proxyRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proxy_requests_total",
			Help:      "Proxied requests by route and outcome (upstream status code or \"error\").",
		}, []string{"route", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_duration_seconds",
			Help:      "Duration of outbound calls made by proxy routes.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		backendAccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_access_total",
			Help:      "Backend endpoint access by route and result.",
		}, []string{"route", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.proxyRequests,
		m.upstreamDuration,
		m.backendAccess,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveProxy records one proxied request. outcome is the upstream status code or OutcomeError.
func (m *Metrics) ObserveProxy(route, outcome string, elapsed time.Duration) {
	m.proxyRequests.WithLabelValues(route, outcome).Inc()
	m.upstreamDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveBackendAccess records an access decision (e.g. "authorized", "denied") for a backend route.
func (m *Metrics) ObserveBackendAccess(route, result string) {
	m.backendAccess.WithLabelValues(route, result).Inc()
}

// ProxyRequests exposes the counter for assertions.
func (m *Metrics) ProxyRequests() *prometheus.CounterVec {
	return m.proxyRequests
}

// BackendAccess exposes the counter for assertions.
func (m *Metrics) BackendAccess() *prometheus.CounterVec {
	return m.backendAccess
}
