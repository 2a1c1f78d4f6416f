// Package app wires the simulation hub, HTTP surface, and lifecycle into a
// runnable server.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	balls "github.com/zegevlier/bevy-balls"
	servernet "github.com/zegevlier/bevy-balls/internal/net"
)

const shutdownTimeout = 5 * time.Second

type Config struct {
	Addr      string
	ClientDir string
	Sim       balls.Config
	Logger    *zap.Logger
}

// Run starts the simulation loop and the HTTP server and blocks until ctx
// is cancelled or either fails.
func Run(ctx context.Context, cfg Config) error {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	hub := balls.NewHub(cfg.Sim, logger.Named("hub"))

	handler := servernet.NewHTTPHandler(hub, servernet.HTTPHandlerConfig{
		ClientDir: cfg.ClientDir,
		Logger:    logger.Named("net"),
	})
	srv := &http.Server{Addr: cfg.Addr, Handler: handler}

	stop := make(chan struct{})
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		hub.RunSimulation(stop)
		return nil
	})

	group.Go(func() error {
		logger.Info("server listening",
			zap.String("addr", cfg.Addr),
			zap.String("seed", hub.CurrentConfig().Seed))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		close(stop)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return group.Wait()
}
