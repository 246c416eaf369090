package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("casting_http")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "casting_http"))
	router.GET("/movies/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})

	for _, path := range []string{"/movies/1", "/movies/2", "/nowhere"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	output := scrape(t, provider)

	assertMetricLine(
		t,
		output,
		`casting_http_http_requests_total`,
		`method="GET".*path="/movies/:id".*status_code="200"`,
		`2`,
	)
	assertMetricLine(
		t,
		output,
		`casting_http_http_requests_total`,
		`method="GET".*path="unknown".*status_code="404"`,
		`1`,
	)
	assert.Contains(t, output, "casting_http_http_requests_in_flight")
}

func TestRoutePattern(t *testing.T) {
	assert.Equal(t, "/movies/:id", routePattern("/movies/:id"))
	assert.Equal(t, "/", routePattern("/"))
	assert.Equal(t, "unknown", routePattern(""))
}
