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
	"github.com/jrsteele09/college-portal/auth"
	"github.com/jrsteele09/college-portal/internal/bootstrap"
	"github.com/jrsteele09/college-portal/internal/config"
	"github.com/jrsteele09/college-portal/server"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	bootstrap.SetupLogging(c, os.Stderr)
	displayAppname(c.GetAppName())

	ctx := context.Background()
	app, err := bootstrap.NewPortal(ctx, c, "")
	if err != nil {
		return err
	}
	defer app.Close()

	restoreSession(ctx, app)

	handler, err := server.New(c, app.Controller)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(httpServer) }()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

// restoreSession skips the login page when a stored token still resolves
func restoreSession(ctx context.Context, app *bootstrap.Portal) {
	session, err := app.Controller.Restore(ctx)
	switch {
	case err == nil:
		log.Info().Str("session", session.String()).Msg("Restored stored session")
	case errors.Is(err, auth.ErrNoStoredSession):
		log.Info().Msg("No stored session, login required")
	default:
		log.Warn().Err(err).Msg("Stored session could not be restored, login required")
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
