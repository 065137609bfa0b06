package config

import "github.com/spf13/viper"

const (
	backendClientIDKey = "backend_client_id"
	requiredRoleKey    = "required_role"
)

type BackendConfig interface {
	GetBackendClientID() string
	GetRequiredRole() string
}

type Backend struct {
	v *viper.Viper
}

var _ BackendConfig = Backend{}

// GetBackendClientID is both the expected token audience and the resource_access key holding client roles.
func (b Backend) GetBackendClientID() string {
	return b.v.GetString(backendClientIDKey)
}

func (b Backend) GetRequiredRole() string {
	return b.v.GetString(requiredRoleKey)
}
