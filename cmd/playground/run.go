package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-oidc-playground/internal/config"
	"github.com/jrsteele09/go-oidc-playground/internal/logging"
	"github.com/jrsteele09/go-oidc-playground/internal/telemetry"
	"github.com/jrsteele09/go-oidc-playground/server"
)

const shutdownTimeout = 5 * time.Second

func run(ctx context.Context, c config.Config, mode server.Mode) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("Recovered from panic: %v", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	logging.Configure(c.GetEnv(), c.GetDebug())
	displayAppname(c.GetAppName())

	shutdownTracer, err := telemetry.Setup(ctx, c, version)
	if err != nil {
		return fmt.Errorf("telemetry.Setup: %w", err)
	}

	handler, err := server.New(c, mode)
	if err != nil {
		return multierror.Append(err, shutdownTracer(context.Background())).ErrorOrNil()
	}

	srv := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listenAndServe(srv, mode)
	}()

	var result *multierror.Error
	select {
	case err := <-serveErr:
		result = multierror.Append(result, err)
	case <-ctx.Done():
	}

	result = multierror.Append(result, shutdown(srv, shutdownTracer))
	return result.ErrorOrNil()
}

func listenAndServe(srv *http.Server, mode server.Mode) error {
	log.Info().Msgf("%s listening on %s", mode, srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

// shutdown stops the HTTP server and flushes pending spans, reporting every failure.
func shutdown(srv *http.Server, shutdownTracer telemetry.ShutdownFunc) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var result *multierror.Error
	if err := srv.Shutdown(ctx); err != nil {
		result = multierror.Append(result, fmt.Errorf("server.Shutdown: %w", err))
	}
	if err := shutdownTracer(ctx); err != nil {
		result = multierror.Append(result, fmt.Errorf("tracer shutdown: %w", err))
	}
	log.Info().Msg("Server stopped")
	return result.ErrorOrNil()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
