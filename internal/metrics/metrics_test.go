package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-oidc-playground/internal/metrics"
)

func TestMetrics_ObserveAndExpose(t *testing.T) {
	m := metrics.New()
	m.ObserveProxy("/api/keycloak/token", "200", 10*time.Millisecond)
	m.ObserveProxy("/api/keycloak/token", metrics.OutcomeError, time.Millisecond)
	m.ObserveBackendAccess("/secured", "denied")

	require.Equal(t, 1.0, testutil.ToFloat64(m.ProxyRequests().WithLabelValues("/api/keycloak/token", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ProxyRequests().WithLabelValues("/api/keycloak/token", "error")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.BackendAccess().WithLabelValues("/secured", "denied")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "playground_proxy_requests_total")
	require.Contains(t, string(body), "playground_upstream_duration_seconds")
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	require.NotPanics(t, func() {
		metrics.New()
		metrics.New()
	})
}
