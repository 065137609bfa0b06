package errors

import (
	"errors"
	"fmt"
)

// Common error types for the playground proxies and the backend
var (
	// Upstream errors
	ErrMissingURL       = errors.New("missing upstream url")
	ErrInvalidURL       = errors.New("invalid upstream url")
	ErrUpstreamFailed   = errors.New("upstream request failed")
	ErrReadUpstreamBody = errors.New("failed to read upstream body")

	// Token errors
	ErrNoToken         = errors.New("no token provided")
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidAudience = errors.New("invalid audience")
	ErrMissingRole     = errors.New("missing required role")

	// Provider errors
	ErrDiscoveryFailed = errors.New("failed to discover provider configuration")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
