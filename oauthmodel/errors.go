package oauthmodel

import "errors"

var (
	ErrMissingGrantType              = errors.New("grant_type is required")
	ErrMissingEndSessionEndpoint     = errors.New("end_session_endpoint is required")
	ErrMissingAuthorizationEndpoint  = errors.New("authorization_endpoint is required")
	ErrMissingClientID               = errors.New("client_id is required")
	ErrInvalidCodeChallengeMethod    = errors.New("invalid code challenge method")
	ErrInvalidResponseMode           = errors.New("invalid response mode")
	ErrInvalidMaxAge                 = errors.New("max_age must be a non-negative integer")
	ErrUnsupportedContentType        = errors.New("unsupported content type")
	ErrMalformedTokenExchangeRequest = errors.New("malformed token exchange request")
)
