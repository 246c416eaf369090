// Package http provides the API server, its router and the metrics server.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	actorHTTP "github.com/allisson/casting/internal/actor/http"
	authDomain "github.com/allisson/casting/internal/auth/domain"
	authHTTP "github.com/allisson/casting/internal/auth/http"
	authUseCase "github.com/allisson/casting/internal/auth/usecase"
	"github.com/allisson/casting/internal/config"
	"github.com/allisson/casting/internal/metrics"
	movieHTTP "github.com/allisson/casting/internal/movie/http"
)

// readinessTimeout bounds the database ping of the readiness probe.
const readinessTimeout = 2 * time.Second

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	logger *slog.Logger
	router *gin.Engine
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter registers every route. Each resource route runs the access
// gate for its permission, then the per-subject rate limiter when enabled.
// ctx bounds background work owned by the router, such as rate limiter cleanup.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	authorizer authUseCase.Authorizer,
	movieHandler *movieHTTP.MovieHandler,
	actorHandler *actorHTTP.ActorHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(recoveryMiddleware(s.logger))
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsProvider.Namespace()))
	}

	router.NoRoute(notFoundHandler)
	router.NoMethod(methodNotAllowedHandler)

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	var rateLimiter gin.HandlerFunc
	if cfg.RateLimitEnabled {
		rateLimiter = authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger)
	}

	guard := func(permission authDomain.Permission, handler gin.HandlerFunc) []gin.HandlerFunc {
		chain := []gin.HandlerFunc{authHTTP.RequirePermission(authorizer, permission, s.logger)}
		if rateLimiter != nil {
			chain = append(chain, rateLimiter)
		}
		return append(chain, handler)
	}

	movies := router.Group("/movies")
	{
		movies.GET("", guard(authDomain.GetMovies, movieHandler.ListHandler)...)
		movies.POST("", guard(authDomain.PostMovies, movieHandler.CreateHandler)...)
		movies.GET("/:id", guard(authDomain.GetMovies, movieHandler.GetHandler)...)
		movies.PATCH("/:id", guard(authDomain.PatchMovies, movieHandler.UpdateHandler)...)
		movies.DELETE("/:id", guard(authDomain.DeleteMovies, movieHandler.DeleteHandler)...)
	}

	actors := router.Group("/actors")
	{
		actors.GET("", guard(authDomain.GetActors, actorHandler.ListHandler)...)
		actors.POST("", guard(authDomain.PostActors, actorHandler.CreateHandler)...)
		actors.GET("/:id", guard(authDomain.GetActors, actorHandler.GetHandler)...)
		actors.PATCH("/:id", guard(authDomain.PatchActors, actorHandler.UpdateHandler)...)
		actors.DELETE("/:id", guard(authDomain.DeleteActors, actorHandler.DeleteHandler)...)
	}

	s.router = router
}

// GetHandler returns the configured router.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	database := "ok"
	if s.db == nil {
		database = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			database = "error"
		}
	}

	status, code := "ready", http.StatusOK
	if database != "ok" {
		status, code = "not_ready", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"components": gin.H{"database": database},
	})
}
