package token

import "strings"

const bearerScheme = "bearer"

// FromHeader extracts the token from an Authorization header value of the form "Bearer <token>".
func FromHeader(h string) (string, bool) {
	scheme, raw, found := strings.Cut(strings.TrimSpace(h), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	return raw, true
}
