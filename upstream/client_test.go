package upstream_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	perrors "github.com/jrsteele09/go-oidc-playground/internal/errors"
	"github.com/jrsteele09/go-oidc-playground/internal/telemetry"
	"github.com/jrsteele09/go-oidc-playground/upstream"
)

func TestHTTPClient_Get(t *testing.T) {
	var gotAuth, gotOther string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotOther = r.Header.Get("X-Not-Forwarded")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_token"}`))
	}))
	defer srv.Close()

	c := upstream.New()
	header := http.Header{}
	header.Set("Authorization", "Bearer abc")

	resp, err := c.Get(context.Background(), srv.URL+"/userinfo", header)
	require.NoError(t, err, "non-2xx must not be an error")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.False(t, resp.IsSuccess())
	require.JSONEq(t, `{"error":"invalid_token"}`, string(resp.Body))
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.Equal(t, "Bearer abc", gotAuth)
	require.Empty(t, gotOther)
}

func TestHTTPClient_PostForm(t *testing.T) {
	var gotMethod, gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`{"access_token":"t"}`))
	}))
	defer srv.Close()

	resp, err := upstream.New().PostForm(context.Background(), srv.URL, "grant_type=authorization_code&code=a%2Bb")
	require.NoError(t, err)
	require.True(t, resp.IsSuccess())
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	require.Equal(t, "grant_type=authorization_code&code=a%2Bb", gotBody)
}

func TestHTTPClient_Errors(t *testing.T) {
	c := upstream.New(upstream.WithTimeout(time.Second))

	t.Run("missing url", func(t *testing.T) {
		_, err := c.Get(context.Background(), "", nil)
		require.ErrorIs(t, err, perrors.ErrMissingURL)
	})

	t.Run("relative url", func(t *testing.T) {
		_, err := c.Get(context.Background(), "/well-known", nil)
		require.ErrorIs(t, err, perrors.ErrInvalidURL)
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		_, err := c.PostForm(context.Background(), "ftp://example.com/token", "")
		require.ErrorIs(t, err, perrors.ErrInvalidURL)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		addr := srv.URL
		srv.Close()

		_, err := c.Get(context.Background(), addr, nil)
		require.ErrorIs(t, err, perrors.ErrUpstreamFailed)
	})
}

func TestHTTPClient_BodyLimit(t *testing.T) {
	var size atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("a"), int(size.Load())))
	}))
	defer srv.Close()

	c := upstream.New()

	t.Run("at the limit", func(t *testing.T) {
		size.Store(upstream.MaxBodyBytes)
		resp, err := c.Get(context.Background(), srv.URL, nil)
		require.NoError(t, err)
		require.Len(t, resp.Body, upstream.MaxBodyBytes)
	})

	t.Run("over the limit", func(t *testing.T) {
		size.Store(upstream.MaxBodyBytes + 1)
		resp, err := c.Get(context.Background(), srv.URL, nil)
		require.ErrorIs(t, err, perrors.ErrReadUpstreamBody)
		require.Nil(t, resp)
	})
}

func TestHTTPClient_PropagatesTraceContext(t *testing.T) {
	provider := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(telemetry.Propagator())
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	var traceparent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("traceparent")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, span := provider.Tracer("test").Start(context.Background(), "parent")
	_, err := upstream.New().Get(ctx, srv.URL, nil)
	span.End()

	require.NoError(t, err)
	require.Contains(t, traceparent, span.SpanContext().TraceID().String())
}
