// Package logging configures the global zerolog logger used across the playground.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Configure replaces the global logger. DEV gets a human readable console writer,
// every other environment gets JSON lines on stderr.
func Configure(env string, debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = New(os.Stderr, env)
}

// New returns a timestamped logger writing to w in the format for env.
func New(w io.Writer, env string) zerolog.Logger {
	if isDev(env) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

func isDev(env string) bool {
	return env == "" || strings.EqualFold(env, "DEV")
}
