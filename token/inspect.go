package token

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jrsteele09/go-oidc-playground/internal/utils"
)

// Inspection is the unverified content of a bearer token. It is only used for
// diagnostics and must never drive an access decision.
type Inspection struct {
	Issuer    string
	Subject   string
	Username  string
	Audience  []string
	ExpiresAt *time.Time
	Roles     Roles
}

// Expectation is what the backend expects a token to carry.
type Expectation struct {
	Issuer   string
	ClientID string
	Role     string
}

// Inspect decodes a JWT without checking its signature.
func Inspect(raw string) (*Inspection, error) {
	if parts := strings.Split(raw, "."); len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 parts, got %d", ErrMalformedToken, len(parts))
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	inspection := &Inspection{
		Issuer:   stringClaim(claims, "iss"),
		Subject:  stringClaim(claims, "sub"),
		Username: stringClaim(claims, "preferred_username"),
		Audience: utils.ToStringSlice(claims["aud"]),
		Roles:    rolesFromClaims(claims),
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		inspection.ExpiresAt = &t
	}
	return inspection, nil
}

// Warnings lists the reasons the token is likely to be rejected.
func (i *Inspection) Warnings(expect Expectation, now time.Time) []string {
	var warnings []string

	if i.Issuer != "" && expect.Issuer != "" && i.Issuer != expect.Issuer {
		warnings = append(warnings, fmt.Sprintf("Issuer mismatch (expected: %s, got: %s)", expect.Issuer, i.Issuer))
	}

	if i.ExpiresAt != nil && i.ExpiresAt.Before(now) {
		minutes := int(now.Sub(*i.ExpiresAt).Minutes())
		warnings = append(warnings, fmt.Sprintf("Token EXPIRED (expired %d minutes ago)", minutes))
	}

	if expect.ClientID != "" && !i.hasAudience(expect.ClientID) {
		warnings = append(warnings, fmt.Sprintf("Token audience mismatch (expected: %s, got: %s)", expect.ClientID, formatList(i.Audience)))
	}

	if expect.Role != "" && !i.Roles.HasRole(expect.ClientID, expect.Role) {
		warnings = append(warnings, fmt.Sprintf("Missing required role '%s' (has: %s)", expect.Role, formatList(i.Roles.Client[expect.ClientID])))
	}
	return warnings
}

func (i *Inspection) hasAudience(clientID string) bool {
	return slices.Contains(i.Audience, clientID)
}

func formatList(values []string) string {
	quoted := make([]string, len(values))
	for n, v := range values {
		quoted[n] = fmt.Sprintf("%q", v)
	}
	return "[" + strings.Join(quoted, ",") + "]"
}
