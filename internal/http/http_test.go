package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	actorHTTP "github.com/allisson/casting/internal/actor/http"
	actorMocks "github.com/allisson/casting/internal/actor/usecase/mocks"
	authDomain "github.com/allisson/casting/internal/auth/domain"
	authUseCase "github.com/allisson/casting/internal/auth/usecase"
	"github.com/allisson/casting/internal/config"
	"github.com/allisson/casting/internal/metrics"
	movieDomain "github.com/allisson/casting/internal/movie/domain"
	movieHTTP "github.com/allisson/casting/internal/movie/http"
	movieMocks "github.com/allisson/casting/internal/movie/usecase/mocks"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAuthorizer grants the permissions listed for each bearer token.
type fakeAuthorizer struct {
	grants map[string][]authDomain.Permission
}

func (f *fakeAuthorizer) Authorize(
	_ context.Context,
	headers authUseCase.HeaderGetter,
	required authDomain.Permission,
) (*authDomain.Identity, error) {
	header := headers.Get("Authorization")
	if header == "" {
		return nil, authDomain.ErrMissingHeader
	}
	token := header[len("Bearer "):]
	permissions, ok := f.grants[token]
	if !ok {
		return nil, authDomain.ErrInvalidSignature
	}
	identity := &authDomain.Identity{Subject: token, Permissions: permissions}
	if !identity.HasPermission(required) {
		return nil, authDomain.ErrPermissionDenied
	}
	return identity, nil
}

type routerFixture struct {
	server  *Server
	movies  *movieMocks.MockMovieUseCase
	actors  *actorMocks.MockActorUseCase
	handler http.Handler
}

func newRouterFixture(t *testing.T, cfg *config.Config, provider *metrics.Provider) *routerFixture {
	t.Helper()

	logger := discardLogger()
	movies := &movieMocks.MockMovieUseCase{}
	actors := &actorMocks.MockActorUseCase{}
	authorizer := &fakeAuthorizer{grants: map[string][]authDomain.Permission{
		"assistant": {authDomain.GetMovies, authDomain.GetActors},
		"producer": {
			authDomain.GetMovies, authDomain.PostMovies, authDomain.PatchMovies, authDomain.DeleteMovies,
			authDomain.GetActors, authDomain.PostActors, authDomain.PatchActors, authDomain.DeleteActors,
		},
	}}

	server := NewServer(nil, "localhost", 8080, logger)
	server.SetupRouter(
		t.Context(),
		cfg,
		authorizer,
		movieHTTP.NewMovieHandler(movies, logger),
		actorHTTP.NewActorHandler(actors, logger),
		provider,
	)

	t.Cleanup(func() {
		movies.AssertExpectations(t)
		actors.AssertExpectations(t)
	})

	return &routerFixture{server: server, movies: movies, actors: actors, handler: server.GetHandler()}
}

func (f *routerFixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	server := NewServer(nil, "localhost", 8080, discardLogger())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	t.Run("NilDB", func(t *testing.T) {
		server := NewServer(nil, "localhost", 8080, discardLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"not_ready","components":{"database":"error"}}`, w.Body.String())
	})

	t.Run("PingSucceeds", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		dbMock.ExpectPing()

		server := NewServer(db, "localhost", 8080, discardLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
		server.readinessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ready","components":{"database":"ok"}}`, w.Body.String())
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("PingFails", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		dbMock.ExpectPing().WillReturnError(assert.AnError)

		server := NewServer(db, "localhost", 8080, discardLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(buf.String()), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "/test", entry["path"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, w.Header().Get("X-Request-Id"), entry["request_id"])
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(recoveryMiddleware(discardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t,
		`{"success":false,"error":500,"code":"internal_error","message":"internal server error"}`,
		w.Body.String(),
	)
}

func TestRouter_Gate(t *testing.T) {
	f := newRouterFixture(t, &config.Config{}, nil)

	t.Run("MissingHeader", func(t *testing.T) {
		w := f.do(http.MethodGet, "/movies", "", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t,
			`{"success":false,"error":401,"code":"authorization_header_missing","message":"`+
				authDomain.ErrMissingHeader.Description+`"}`,
			w.Body.String(),
		)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		w := f.do(http.MethodGet, "/actors", "forged", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("PermissionDenied", func(t *testing.T) {
		w := f.do(http.MethodDelete, "/movies/1", "assistant", "")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"permission_denied"`)
	})

	t.Run("DeniedBeforeBodyIsRead", func(t *testing.T) {
		w := f.do(http.MethodPost, "/actors", "assistant", "not json")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRouter_Routes(t *testing.T) {
	f := newRouterFixture(t, &config.Config{}, nil)

	f.movies.On("List", mock.Anything).Return([]*movieDomain.Movie{}, nil).Once()
	f.movies.On("Get", mock.Anything, int64(3)).
		Return(&movieDomain.Movie{ID: 3, Title: "Heat", Date: "1995"}, nil).
		Once()
	f.movies.On("Delete", mock.Anything, int64(3)).Return(nil).Once()
	f.actors.On("List", mock.Anything).Return(nil, assert.AnError).Once()

	w := f.do(http.MethodGet, "/movies", "assistant", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"movies":[]}`, w.Body.String())

	w = f.do(http.MethodGet, "/movies/3", "assistant", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodDelete, "/movies/3", "producer", "")
	assert.JSONEq(t, `{"success":true,"deleted":3}`, w.Body.String())

	w = f.do(http.MethodGet, "/actors", "assistant", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())

	w = f.do(http.MethodGet, "/directors", "producer", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":404,"code":"not_found","message":"resource not found"}`, w.Body.String())

	w = f.do(http.MethodPut, "/movies/3", "producer", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = f.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestRouter_RateLimitPerSubject(t *testing.T) {
	f := newRouterFixture(t, &config.Config{
		RateLimitEnabled:        true,
		RateLimitRequestsPerSec: 0.001,
		RateLimitBurst:          1,
	}, nil)

	f.movies.On("List", mock.Anything).Return([]*movieDomain.Movie{}, nil).Twice()

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/movies", "assistant", "").Code)

	limited := f.do(http.MethodGet, "/movies", "assistant", "")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/movies", "producer", "").Code)
}

func TestRouter_HTTPMetrics(t *testing.T) {
	provider, err := metrics.NewProvider("casting_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	f := newRouterFixture(t, &config.Config{}, provider)
	f.movies.On("List", mock.Anything).Return([]*movieDomain.Movie{}, nil).Once()

	f.do(http.MethodGet, "/movies", "assistant", "")

	metricsServer := NewMetricsServer("localhost", 8081, discardLogger(), provider)
	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "casting_test_http_requests_total")
	assert.Contains(t, w.Body.String(), `path="/movies"`)
}

func TestMetricsServer_Routes(t *testing.T) {
	provider, err := metrics.NewProvider("casting_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	t.Run("unknown path returns json not_found", func(t *testing.T) {
		handler := NewMetricsServer("localhost", 8081, discardLogger(), provider).GetHandler()
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/movies", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"success":false,"error":404,"code":"not_found","message":"resource not found"}`, w.Body.String())
	})

	t.Run("post to metrics returns method_not_allowed", func(t *testing.T) {
		handler := NewMetricsServer("localhost", 8081, discardLogger(), provider).GetHandler()
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/metrics", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"method_not_allowed"`)
	})

	t.Run("nil provider serves no metrics", func(t *testing.T) {
		server := NewMetricsServer("localhost", 8081, discardLogger(), nil)
		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"not_found"`)
		assert.Empty(t, server.namespace)
	})

	t.Run("namespace comes from provider", func(t *testing.T) {
		server := NewMetricsServer("localhost", 8081, discardLogger(), provider)
		assert.Equal(t, "casting_test", server.namespace)
	})
}

func TestServer_NoMetricsEndpoint(t *testing.T) {
	f := newRouterFixture(t, &config.Config{}, nil)

	w := f.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_StartRequiresRouter(t *testing.T) {
	server := NewServer(nil, "localhost", 0, discardLogger())
	assert.Error(t, server.Start(context.Background()))
}

func TestServer_ShutdownGracefully(t *testing.T) {
	f := newRouterFixture(t, &config.Config{}, nil)
	server := NewServer(nil, "127.0.0.1", 0, discardLogger())
	server.router = f.server.router

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.NoError(t, server.Shutdown(shutdownCtx))
	assert.NoError(t, <-errChan)
}
