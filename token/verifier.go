package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"

	perrors "github.com/jrsteele09/go-oidc-playground/internal/errors"
)

// Principal is the identity carried by a verified access token.
type Principal struct {
	Subject   string
	Username  string
	Issuer    string
	Audience  []string
	ExpiresAt time.Time
	Roles     Roles
}

func (p *Principal) HasRole(clientID, role string) bool {
	return p.Roles.HasRole(clientID, role)
}

// Verifier checks access tokens issued for a single client.
type Verifier struct {
	issuer     string
	clientID   string
	keySet     oidc.KeySet
	httpClient *http.Client
	discovery  *Discovery
	now        func() time.Time

	mu       sync.Mutex
	verifier *oidc.IDTokenVerifier
}

type VerifierOption func(*Verifier)

// WithKeySet verifies signatures against a fixed key set instead of the issuer's JWKS.
func WithKeySet(keySet oidc.KeySet) VerifierOption {
	return func(v *Verifier) {
		v.keySet = keySet
	}
}

func WithHTTPClient(client *http.Client) VerifierOption {
	return func(v *Verifier) {
		v.httpClient = client
	}
}

// WithDiscovery shares an existing Discovery for the same issuer.
func WithDiscovery(d *Discovery) VerifierOption {
	return func(v *Verifier) {
		v.discovery = d
	}
}

func WithNow(now func() time.Time) VerifierOption {
	return func(v *Verifier) {
		v.now = now
	}
}

func NewVerifier(issuer, clientID string, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		issuer:   issuer,
		clientID: clientID,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.discovery == nil {
		v.discovery = NewDiscovery(issuer, v.httpClient)
	}
	return v
}

func (v *Verifier) ClientID() string {
	return v.clientID
}

// Verify checks signature, issuer, expiry and that the audience contains the client ID.
func (v *Verifier) Verify(ctx context.Context, raw string) (*Principal, error) {
	verifier, err := v.tokenVerifier(ctx)
	if err != nil {
		return nil, err
	}

	idToken, err := verifier.Verify(ctx, raw)
	if err != nil {
		var expired *oidc.TokenExpiredError
		if errors.As(err, &expired) {
			return nil, fmt.Errorf("%w: %w: %w", perrors.ErrInvalidToken, ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", perrors.ErrInvalidToken, err)
	}

	if !slices.Contains(idToken.Audience, v.clientID) {
		return nil, fmt.Errorf("%w: %q not in %v", perrors.ErrInvalidAudience, v.clientID, idToken.Audience)
	}

	claims := jwt.MapClaims{}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: %w", perrors.ErrInvalidToken, err)
	}

	return &Principal{
		Subject:   idToken.Subject,
		Username:  usernameFromClaims(claims),
		Issuer:    idToken.Issuer,
		Audience:  idToken.Audience,
		ExpiresAt: idToken.Expiry,
		Roles:     rolesFromClaims(claims),
	}, nil
}

func (v *Verifier) tokenVerifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	v.mu.Lock()
	if v.verifier != nil {
		defer v.mu.Unlock()
		return v.verifier, nil
	}

	// Keycloak access tokens are audience-checked in Verify.
	cfg := &oidc.Config{
		SkipClientIDCheck: true,
		Now:               v.now,
	}

	if v.keySet != nil {
		defer v.mu.Unlock()
		v.verifier = oidc.NewVerifier(v.issuer, v.keySet, cfg)
		return v.verifier, nil
	}
	v.mu.Unlock()

	// v.mu is not held across discovery, which blocks on the network.
	provider, err := v.discovery.Provider(ctx)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.verifier == nil {
		v.verifier = provider.Verifier(cfg)
	}
	return v.verifier, nil
}
