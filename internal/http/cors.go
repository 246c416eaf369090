package http

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	corsMaxAge      = 12 * time.Hour
	requestIDHeader = "X-Request-ID"
)

// createCORSMiddleware builds the browser allow-list for the casting API. Returns nil
// when CORS is disabled or no usable origin survives validation.
// Credentials are never allowed; the bearer token travels in Authorization.
func createCORSMiddleware(enabled bool, allowOriginsStr string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	if allowOriginsStr == "" {
		logger.Warn("CORS enabled but no origins configured - CORS will not be applied")
		return nil
	}

	origins := make([]string, 0)
	for _, origin := range parseOrigins(allowOriginsStr) {
		normalized, ok := normalizeOrigin(origin)
		if !ok {
			logger.Warn("ignoring invalid CORS origin", slog.String("origin", origin))
			continue
		}
		origins = append(origins, normalized)
	}

	if len(origins) == 0 {
		logger.Warn("CORS enabled but no valid origins found")
		return nil
	}

	logger.Info("CORS enabled",
		slog.Int("origin_count", len(origins)),
		slog.Any("origins", origins))

	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			"GET",
			"POST",
			"PATCH",
			"DELETE",
		},
		AllowHeaders: []string{
			"Authorization",
			"Content-Type",
			requestIDHeader,
		},
		ExposeHeaders: []string{
			requestIDHeader,
		},
		AllowCredentials: false,
		MaxAge:           corsMaxAge,
	})
}

// normalizeOrigin accepts a bare http or https origin and strips a trailing slash.
// Paths, queries and wildcards are rejected.
func normalizeOrigin(origin string) (string, bool) {
	origin = strings.TrimSuffix(origin, "/")
	if strings.Contains(origin, "*") {
		return "", false
	}

	u, err := url.Parse(origin)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.Host == "" || u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return "", false
	}

	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host), true
}

// parseOrigins parses comma-separated origin list and trims whitespace.
// Returns empty slice if input is empty.
func parseOrigins(originsStr string) []string {
	if originsStr == "" {
		return nil
	}

	parts := strings.Split(originsStr, ",")
	origins := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
