package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/casting/internal/metrics"
)

const metricsPath = "/metrics"

// MetricsServer exposes the casting Prometheus scrape endpoint on its own listener,
// away from the bearer-token protected API.
type MetricsServer struct {
	server    *http.Server
	logger    *slog.Logger
	namespace string
}

// NewMetricsServer builds the scrape server. Without a provider every path answers
// with the API's JSON not_found body.
func NewMetricsServer(
	host string,
	port int,
	logger *slog.Logger,
	metricsProvider *metrics.Provider,
) *MetricsServer {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(recoveryMiddleware(logger))
	router.Use(CustomLoggerMiddleware(logger))

	namespace := ""
	if metricsProvider != nil {
		namespace = metricsProvider.Namespace()
		router.GET(metricsPath, gin.WrapH(metricsProvider.Handler()))
	}

	router.NoRoute(notFoundHandler)
	router.NoMethod(methodNotAllowedHandler)

	return &MetricsServer{
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger:    logger,
		namespace: namespace,
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *MetricsServer) GetHandler() http.Handler {
	return s.server.Handler
}

// Start blocks serving scrapes until Shutdown is called.
func (s *MetricsServer) Start(ctx context.Context) error {
	s.logger.Info("starting metrics server",
		slog.String("addr", s.server.Addr),
		slog.String("path", metricsPath),
		slog.String("namespace", s.namespace))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the metrics HTTP server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down metrics server", slog.String("addr", s.server.Addr))
	return s.server.Shutdown(ctx)
}
