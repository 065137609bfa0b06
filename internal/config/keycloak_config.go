package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	kcURLKey       = "kc_url"
	inputIssuerKey = "input_issuer"
	realmKey       = "realm"
)

type KeycloakConfig interface {
	GetKeycloakURL() string
	GetDefaultIssuer() string
	GetRealm() string
	GetExpectedIssuer() string
}

type Keycloak struct {
	v *viper.Viper
}

var _ KeycloakConfig = Keycloak{}

// GetKeycloakURL is the identity provider base URL, e.g. "http://localhost:8080/".
func (k Keycloak) GetKeycloakURL() string {
	return k.v.GetString(kcURLKey)
}

// GetDefaultIssuer is the issuer the playground discovers when the UI does not name one.
func (k Keycloak) GetDefaultIssuer() string {
	return k.v.GetString(inputIssuerKey)
}

func (k Keycloak) GetRealm() string {
	return k.v.GetString(realmKey)
}

// GetExpectedIssuer is the issuer the backend accepts tokens from: KC_URL + "realms/" + REALM.
func (k Keycloak) GetExpectedIssuer() string {
	base := strings.TrimRight(k.GetKeycloakURL(), "/")
	return strings.TrimRight(base+"/realms/"+k.GetRealm(), "/")
}
