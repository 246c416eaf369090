package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/casting/internal/auth/domain"
	authUseCase "github.com/allisson/casting/internal/auth/usecase"
	"github.com/allisson/casting/internal/httputil"
)

// mockAuthorizer is a mock implementation of Authorizer for testing.
type mockAuthorizer struct {
	mock.Mock
}

func (m *mockAuthorizer) Authorize(
	ctx context.Context,
	headers authUseCase.HeaderGetter,
	required authDomain.Permission,
) (*authDomain.Identity, error) {
	args := m.Called(ctx, headers, required)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Identity), args.Error(1)
}

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequirePermission_Success(t *testing.T) {
	authorizer := &mockAuthorizer{}
	identity := &authDomain.Identity{
		Subject:     "auth0|producer",
		Permissions: []authDomain.Permission{authDomain.PostMovies},
	}
	authorizer.On("Authorize", mock.Anything, mock.Anything, authDomain.PostMovies).
		Return(identity, nil).
		Once()

	router := gin.New()
	router.POST("/movies", RequirePermission(authorizer, authDomain.PostMovies, createTestLogger()),
		func(c *gin.Context) {
			got, ok := GetIdentity(c.Request.Context())
			require.True(t, ok)
			assert.Equal(t, "auth0|producer", got.Subject)
			c.Status(http.StatusCreated)
		})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/movies", nil)
	req.Header.Set("Authorization", "Bearer token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	authorizer.AssertExpectations(t)
}

func TestRequirePermission_PassesRequestHeaders(t *testing.T) {
	authorizer := &mockAuthorizer{}
	authorizer.On("Authorize", mock.Anything, mock.MatchedBy(func(h authUseCase.HeaderGetter) bool {
		return h.Get("Authorization") == "Bearer abc.def.ghi"
	}), authDomain.GetActors).Return(&authDomain.Identity{Subject: "s"}, nil).Once()

	router := gin.New()
	router.GET("/actors", RequirePermission(authorizer, authDomain.GetActors, createTestLogger()),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/actors", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	authorizer.AssertExpectations(t)
}

func TestRequirePermission_Failures(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "missing header",
			err:            authDomain.ErrMissingHeader,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "authorization_header_missing",
		},
		{
			name:           "malformed header",
			err:            authDomain.ErrMalformedHeader,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "invalid_header",
		},
		{
			name:           "unsupported algorithm",
			err:            authDomain.ErrUnsupportedAlgorithm,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "unsupported_algorithm",
		},
		{
			name:           "expired token",
			err:            authDomain.ErrTokenExpired,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "token_expired",
		},
		{
			name:           "missing permissions claim",
			err:            authDomain.ErrMissingPermissionsClaim,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "permissions_missing",
		},
		{
			name:           "permission denied",
			err:            authDomain.ErrPermissionDenied,
			expectedStatus: http.StatusForbidden,
			expectedCode:   "permission_denied",
		},
		{
			name:           "key set unavailable",
			err:            authDomain.ErrKeySetUnavailable,
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "key_set_unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authorizer := &mockAuthorizer{}
			authorizer.On("Authorize", mock.Anything, mock.Anything, authDomain.DeleteMovies).
				Return(nil, tt.err).
				Once()

			router := gin.New()
			router.DELETE("/movies/:id",
				RequirePermission(authorizer, authDomain.DeleteMovies, createTestLogger()),
				func(c *gin.Context) {
					t.Fatal("handler should not be called when authorization fails")
				})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/movies/1", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response httputil.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.False(t, response.Success)
			assert.Equal(t, tt.expectedStatus, response.Error)
			assert.Equal(t, tt.expectedCode, response.Code)
			assert.NotEmpty(t, response.Message)
		})
	}
}

func TestGetIdentity(t *testing.T) {
	_, ok := GetIdentity(context.Background())
	assert.False(t, ok)

	_, ok = GetIdentity(WithIdentity(context.Background(), nil))
	assert.False(t, ok)

	identity := &authDomain.Identity{Subject: "auth0|director"}
	got, ok := GetIdentity(WithIdentity(context.Background(), identity))
	assert.True(t, ok)
	assert.Same(t, identity, got)
}
