package app

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/peerlink-relay/internal/config"
	"github.com/vovakirdan/peerlink-relay/internal/core"
	transporthttp "github.com/vovakirdan/peerlink-relay/internal/transport/http"
)

// App wires together the router and the transport layer.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	router          *core.Router
	log             *zerolog.Logger
}

// New constructs the application with the provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) *App {
	router := core.NewRouter(logger)
	server := transporthttp.NewServer(router, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		router:          router,
		log:             logger,
	}
}

// Run starts the router and HTTP server and blocks until context
// cancellation or fatal error. There is no durable state to flush on the
// way out; closing the listener is the whole shutdown.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.router.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	a.log.Info().Str("addr", a.server.Addr).Msg("relay listening")

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
