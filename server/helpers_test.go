package server_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-oidc-playground/internal/config"
	"github.com/jrsteele09/go-oidc-playground/server"
)

func newConfig(t *testing.T, values map[string]any) config.Config {
	t.Helper()
	v := viper.New()
	v.Set("env", "TEST")
	for key, value := range values {
		v.Set(key, value)
	}
	return config.New(v)
}

func newServer(t *testing.T, cfg config.Config, mode server.Mode, opts ...server.Option) *server.Server {
	t.Helper()
	srv, err := server.New(cfg, mode, opts...)
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, h http.Handler, method, target string, body io.Reader, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// captureLogs redirects the global logger into a buffer for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })
	return &buf
}

// closedURL returns the URL of a server that is no longer listening.
func closedURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}
