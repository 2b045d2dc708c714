package app

import (
	"context"
	"time"

	"go.uber.org/fx"

	"blogd/internal/app/server"
	"blogd/internal/config"
	"blogd/internal/config/logger"
)

// App represents the main application container
type App struct {
	server          server.Server
	shutdownTimeout time.Duration
	log             logger.Logger
}

// NewApp creates a new application instance with its dependencies
func NewApp(cfg *config.Config, srv server.Server, log logger.Logger) *App {
	return &App{
		server:          srv,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
		log:             log,
	}
}

// Start begins serving requests
func (a *App) Start(ctx context.Context) error {
	if err := a.server.Start(ctx); err != nil {
		a.log.Error().Err(err).Msg("Failed to start server")
		return err
	}

	a.log.Info().Msgf("%s v%s started on %s", config.AppName, config.Version, a.server.Addr())

	return nil
}

// Stop drains the server within the configured shutdown timeout; zero waits as long as ctx allows
func (a *App) Stop(ctx context.Context) error {
	if a.shutdownTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, a.shutdownTimeout)
		defer cancel()
	}

	if err := a.server.Stop(ctx); err != nil {
		a.log.Warn().Err(err).Msg("Server did not shut down cleanly")
		return err
	}

	return nil
}

// Register registers the application's lifecycle hooks with fx
func Register(lifecycle fx.Lifecycle, app *App) {
	lifecycle.Append(fx.Hook{
		OnStart: app.Start,
		OnStop:  app.Stop,
	})
}
