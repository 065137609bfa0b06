package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	portKey    = "port"
	appNameKey = "app_name"
	envKey     = "env"
	debugKey   = "debug"
)

type EnvVars struct {
	v *viper.Viper
}

var _ EnvConfig = EnvVars{}

// GetPort returns the listen address, e.g. ":8000".
func (e EnvVars) GetPort() string {
	port := e.v.GetString(portKey)
	if port != "" && !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.v.GetString(appNameKey)
}

// GetEnv returns the deployment environment, "DEV" unless ENV says otherwise.
func (e EnvVars) GetEnv() string {
	env := e.v.GetString(envKey)
	if env == "" {
		return "DEV"
	}
	return env
}

func (e EnvVars) GetDebug() bool {
	return e.v.GetBool(debugKey)
}
