package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	serviceURLKey      = "service_url"
	oauthServiceURLKey = "oauth_service_url"
	upstreamTimeoutKey = "upstream_timeout"
)

type ServiceConfig interface {
	GetServiceURL() string
	GetOAuthServiceURL() string
	GetUpstreamTimeout() time.Duration
}

type Service struct {
	v *viper.Viper
}

var _ ServiceConfig = Service{}

// GetServiceURL is the single backend URL proxied by GET /api/service.
func (s Service) GetServiceURL() string {
	return s.v.GetString(serviceURLKey)
}

// GetOAuthServiceURL is the backend base URL used for /api/service/public and /api/service/secured.
func (s Service) GetOAuthServiceURL() string {
	return s.v.GetString(oauthServiceURLKey)
}

func (s Service) GetUpstreamTimeout() time.Duration {
	d := s.v.GetDuration(upstreamTimeoutKey)
	if d <= 0 {
		return 30 * time.Second
	}
	return d
}
