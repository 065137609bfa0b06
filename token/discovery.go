package token

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/sync/singleflight"

	perrors "github.com/jrsteele09/go-oidc-playground/internal/errors"
)

// discoveryTimeout bounds a shared lookup, which outlives any single caller's context.
const discoveryTimeout = 30 * time.Second

// Discovery resolves an issuer's provider metadata on first use. Concurrent callers share
// one lookup and each stops waiting when its own context ends. A failed discovery is not
// cached, so the next call tries again.
type Discovery struct {
	issuer string
	client *http.Client

	lookups  singleflight.Group
	mu       sync.RWMutex
	provider *oidc.Provider
}

func NewDiscovery(issuer string, client *http.Client) *Discovery {
	return &Discovery{
		issuer: strings.TrimRight(issuer, "/"),
		client: client,
	}
}

func (d *Discovery) Issuer() string {
	return d.issuer
}

func (d *Discovery) Provider(ctx context.Context) (*oidc.Provider, error) {
	if provider := d.cached(); provider != nil {
		return provider, nil
	}

	result := d.lookups.DoChan(d.issuer, func() (any, error) {
		if provider := d.cached(); provider != nil {
			return provider, nil
		}
		return d.discover(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*oidc.Provider), nil
	}
}

func (d *Discovery) discover(ctx context.Context) (*oidc.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, discoveryTimeout)
	defer cancel()

	if d.client != nil {
		ctx = oidc.ClientContext(ctx, d.client)
	}
	provider, err := oidc.NewProvider(ctx, d.issuer)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", perrors.ErrDiscoveryFailed, d.issuer, err)
	}

	d.mu.Lock()
	d.provider = provider
	d.mu.Unlock()
	return provider, nil
}

func (d *Discovery) cached() *oidc.Provider {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.provider
}

// TokenEndpoint returns the issuer's discovered token_endpoint.
func (d *Discovery) TokenEndpoint(ctx context.Context) (string, error) {
	provider, err := d.Provider(ctx)
	if err != nil {
		return "", err
	}
	return provider.Endpoint().TokenURL, nil
}
