package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	xhttp "RugGuard/pkg/http"
	applogger "RugGuard/pkg/logger"
)

// Resource is closed after the HTTP server stops, in registration order.
type Resource interface {
	Name() string
	Close() error
}

// App encapsulates the application lifecycle.
type App struct {
	httpServer      *xhttp.Server
	resources       []Resource
	log             *applogger.Logger
	shutdownTimeout time.Duration
}

// New creates a new App instance.
func New(httpServer *xhttp.Server, l *applogger.Logger, shutdownTimeout time.Duration, resources ...Resource) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{
		httpServer:      httpServer,
		resources:       resources,
		log:             l,
		shutdownTimeout: shutdownTimeout,
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled, SIGINT or
// SIGTERM arrives, or the server fails.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return errors.Join(err, a.closeResources())
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err := <-a.httpServer.Errors():
		a.log.Error("http server error", applogger.Error(err))
		runErr = fmt.Errorf("http server: %w", err)
	}
	return errors.Join(runErr, a.shutdown())
}

// shutdown stops the HTTP server, then closes resources.
func (a *App) shutdown() error {
	a.log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		errs = append(errs, err)
	}
	if err := a.closeResources(); err != nil {
		errs = append(errs, err)
	}

	a.log.Info("shutdown complete")
	return errors.Join(errs...)
}

func (a *App) closeResources() error {
	var errs []error
	for _, r := range a.resources {
		if err := r.Close(); err != nil {
			a.log.Warn("resource close error", applogger.String("resource", r.Name()), applogger.Error(err))
			errs = append(errs, fmt.Errorf("close %s: %w", r.Name(), err))
		}
	}
	return errors.Join(errs...)
}
