package config

import (
	"github.com/spf13/viper"
)

type Config interface {
	EnvConfig
	KeycloakConfig
	ServiceConfig
	BackendConfig
	CorsConfig
	TelemetryConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetDebug() bool
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Keycloak
	Service
	Backend
	Cors
	Telemetry
}

// New builds a Config over v. Values resolve flag > env > default, the usual viper order.
// A nil v uses the global viper instance that the cobra commands bind their flags into.
func New(v *viper.Viper) Config {
	if v == nil {
		v = viper.GetViper()
	}
	setDefaults(v)
	v.AutomaticEnv()

	return mainConfig{
		EnvVars:   EnvVars{v: v},
		Keycloak:  Keycloak{v: v},
		Service:   Service{v: v},
		Backend:   Backend{v: v},
		Cors:      Cors{v: v},
		Telemetry: Telemetry{v: v},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(portKey, "8000")
	v.SetDefault(appNameKey, "OIDC Playground")
	v.SetDefault(envKey, "DEV")
	v.SetDefault(debugKey, false)

	v.SetDefault(kcURLKey, "http://localhost:8080/")
	v.SetDefault(inputIssuerKey, "http://localhost:8080/realms/demo")
	v.SetDefault(realmKey, "demo")

	v.SetDefault(serviceURLKey, "http://localhost:3000/secured")
	v.SetDefault(oauthServiceURLKey, "http://localhost:3000")
	v.SetDefault(upstreamTimeoutKey, "30s")

	v.SetDefault(backendClientIDKey, "oauth-backend")
	v.SetDefault(requiredRoleKey, "user")

	v.SetDefault(allowedOriginsKey, "*")

	v.SetDefault(otlpEndpointKey, "")
	v.SetDefault(serviceNameKey, "oidc-playground")
	v.SetDefault(samplingRateKey, 1.0)
	v.SetDefault(otlpInsecureKey, true)
}

// SetCommandDefaults overrides the defaults that differ between the frontend and backend binaries.
func SetCommandDefaults(v *viper.Viper, port, serviceName string) {
	if v == nil {
		v = viper.GetViper()
	}
	v.SetDefault(portKey, port)
	v.SetDefault(serviceNameKey, serviceName)
}
