// Package upstream is the single outbound HTTP path used by every proxy handler.
// A completed exchange is never an error, whatever its status: callers relay the status.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	perrors "github.com/jrsteele09/go-oidc-playground/internal/errors"
)

// MaxBodyBytes is the largest upstream body relayed. Larger bodies fail the call.
const MaxBodyBytes = 10 << 20

const (
	defaultTimeout = 30 * time.Second

	contentTypeForm = "application/x-www-form-urlencoded"
)

// Response is a fully read upstream response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client issues one outbound call per proxied request.
type Client interface {
	Get(ctx context.Context, rawURL string, header http.Header) (*Response, error)
	PostForm(ctx context.Context, rawURL string, form string) (*Response, error)
}

// HTTPClient implements Client over net/http with a pooled transport that
// injects W3C trace context into every outgoing request.
type HTTPClient struct {
	client *http.Client
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

// WithTimeout bounds the whole exchange, body included.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

func New(opts ...Option) *HTTPClient {
	c := &HTTPClient{
		client: &http.Client{
			Transport: otelhttp.NewTransport(cleanhttp.DefaultPooledTransport()),
			Timeout:   defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HTTP returns the underlying client, e.g. for libraries that take an *http.Client.
func (c *HTTPClient) HTTP() *http.Client {
	return c.client
}

// Get sends a GET carrying only the given headers.
func (c *HTTPClient) Get(ctx context.Context, rawURL string, header http.Header) (*Response, error) {
	req, err := newRequest(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for name, values := range header {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	return c.do(req)
}

// PostForm sends an already encoded application/x-www-form-urlencoded body.
func (c *HTTPClient) PostForm(ctx context.Context, rawURL string, form string) (*Response, error) {
	req, err := newRequest(ctx, http.MethodPost, rawURL, strings.NewReader(form))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentTypeForm)
	return c.do(req)
}

func (c *HTTPClient) do(req *http.Request) (*Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", perrors.ErrUpstreamFailed, req.Method, req.URL.Redacted(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", perrors.ErrReadUpstreamBody, req.Method, req.URL.Redacted(), err)
	}
	if len(body) > MaxBodyBytes {
		return nil, fmt.Errorf("%w: %s %s: body exceeds %d bytes", perrors.ErrReadUpstreamBody, req.Method, req.URL.Redacted(), MaxBodyBytes)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
	}, nil
}

func newRequest(ctx context.Context, method, rawURL string, body io.Reader) (*http.Request, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, perrors.ErrMissingURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", perrors.ErrInvalidURL, rawURL)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, perrors.Wrapf(err, "[upstream newRequest] %s %s", method, u.Redacted())
	}
	return req, nil
}
