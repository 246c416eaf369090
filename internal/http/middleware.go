package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/allisson/casting/internal/httputil"
)

// CustomLoggerMiddleware logs one line per request with the request id set by
// the requestid middleware.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		logger.Log(c.Request.Context(), level, "http request",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
			slog.String("request_id", requestid.Get(c)),
		)
	}
}

// recoveryMiddleware turns a panic into a logged 500 with the standard error body.
func recoveryMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			slog.Any("error", recovered),
			slog.String("path", c.Request.URL.Path),
			slog.String("method", c.Request.Method),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, httputil.ErrorResponse{
			Error:   http.StatusInternalServerError,
			Code:    "internal_error",
			Message: "internal server error",
		})
	})
}

func notFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, httputil.ErrorResponse{
		Error:   http.StatusNotFound,
		Code:    "not_found",
		Message: "resource not found",
	})
}

func methodNotAllowedHandler(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, httputil.ErrorResponse{
		Error:   http.StatusMethodNotAllowed,
		Code:    "method_not_allowed",
		Message: "method not allowed",
	})
}
