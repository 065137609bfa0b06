package telemetry_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jrsteele09/go-oidc-playground/internal/config"
	"github.com/jrsteele09/go-oidc-playground/internal/telemetry"
)

func TestSetup_NoEndpoint(t *testing.T) {
	cfg := config.New(viper.New())

	shutdown, err := telemetry.Setup(context.Background(), cfg, "test")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	fields := otel.GetTextMapPropagator().Fields()
	require.Contains(t, fields, "traceparent")
	require.Contains(t, fields, "baggage")
}

func TestSetup_WithEndpoint(t *testing.T) {
	v := viper.New()
	v.Set("otel_exporter_otlp_endpoint", "http://127.0.0.1:4318")
	cfg := config.New(v)

	shutdown, err := telemetry.Setup(context.Background(), cfg, "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(context.Background()))
}

func TestMiddleware_ContinuesIncomingTrace(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(telemetry.Propagator())
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	handler := telemetry.Middleware("test")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "GET /api/config", spans[0].Name())
	require.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext().TraceID().String())

}
