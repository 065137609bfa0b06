package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jrsteele09/go-oidc-playground/internal/config"
	"github.com/jrsteele09/go-oidc-playground/server"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "playground",
		Short:        "OpenID Connect playground for Keycloak",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	mustBind("debug", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.AddCommand(
		newServeCmd(server.ModeFrontend, "8000", "Serve the playground UI and identity provider proxies"),
		newServeCmd(server.ModeBackend, "3000", "Serve the sample resource server with /public and /secured"),
		newVersionCmd(),
	)
	return rootCmd
}

// flagKeys maps serve flags to the config keys they override.
var flagKeys = map[string]string{
	"port":              "port",
	"kc-url":            "kc_url",
	"input-issuer":      "input_issuer",
	"oauth-service-url": "oauth_service_url",
	"realm":             "realm",
}

func newServeCmd(mode server.Mode, port, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(mode),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Both serve commands share the global keys, so bind only the running one.
			cmd.Flags().VisitAll(func(f *pflag.Flag) {
				if key, ok := flagKeys[f.Name]; ok {
					mustBind(key, f)
				}
			})
			cfg := config.New(nil)
			config.SetCommandDefaults(nil, port, "oidc-playground-"+string(mode))
			return run(cmd.Context(), cfg, mode)
		},
	}

	flags := cmd.Flags()
	flags.String("port", port, "Listen port (PORT)")
	flags.String("kc-url", "", "Keycloak base URL (KC_URL)")

	switch mode {
	case server.ModeFrontend:
		flags.String("input-issuer", "", "Default issuer shown in the UI (INPUT_ISSUER)")
		flags.String("oauth-service-url", "", "Backend service base URL (OAUTH_SERVICE_URL)")
	case server.ModeBackend:
		flags.String("realm", "", "Keycloak realm accepted by /secured (REALM)")
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(version)
		},
	}
}

// mustBind binds a flag into the global viper instance read by config.New(nil).
func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", key, err))
	}
}
