package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/casting/internal/app"
	"github.com/allisson/casting/internal/config"
)

// shutdownTimeout bounds the graceful stop of the servers.
const shutdownTimeout = 30 * time.Second

// runnable is a server with a blocking Start and a graceful Shutdown.
type runnable interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// keyWarmer fetches the signing keys ahead of the first request.
type keyWarmer interface {
	Refresh(ctx context.Context) error
}

// RunServer starts the API server and, when enabled, the metrics server.
// Loads configuration, initializes the DI container, warms the signing key
// cache and blocks until SIGINT/SIGTERM or a server failure.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	defer closeContainer(container, logger)

	// Get HTTP server from container (this initializes all dependencies)
	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	keySet, err := container.KeySet()
	if err != nil {
		return fmt.Errorf("failed to initialize key set: %w", err)
	}
	warmKeySet(ctx, keySet, cfg.AuthJWKSHTTPTimeout, logger)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	servers := map[string]runnable{"api": server}
	if metricsServer != nil {
		servers["metrics"] = metricsServer
	}

	return serve(ctx, logger, servers)
}

// warmKeySet fetches the signing keys once. A failure is logged and the
// server still starts; protected routes answer 503 until the identity
// provider is reachable.
func warmKeySet(ctx context.Context, keySet keyWarmer, timeout time.Duration, logger *slog.Logger) {
	warmCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := keySet.Refresh(warmCtx); err != nil {
		logger.Warn("failed to fetch signing keys at startup", slog.Any("error", err))
		return
	}
	logger.Info("signing keys loaded")
}

// serve runs every server until ctx is done or one of them fails, then shuts
// all of them down.
func serve(ctx context.Context, logger *slog.Logger, servers map[string]runnable) error {
	g, gctx := errgroup.WithContext(ctx)

	for name, srv := range servers {
		g.Go(func() error {
			if err := srv.Start(gctx); err != nil {
				return fmt.Errorf("%s server error: %w", name, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			logger.Info("shutdown signal received")
		} else {
			logger.Error("server error, initiating shutdown")
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		var shutdownErrors []error
		for name, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				shutdownErrors = append(shutdownErrors, fmt.Errorf("%s server shutdown: %w", name, err))
			}
		}
		return errors.Join(shutdownErrors...)
	})

	return g.Wait()
}
