package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/casting/internal/auth/domain"
	authUseCase "github.com/allisson/casting/internal/auth/usecase"
	apperrors "github.com/allisson/casting/internal/errors"
	"github.com/allisson/casting/internal/httputil"
)

// RequirePermission runs the access control gate for one route. The request
// reaches the next handler only when its bearer token is valid and grants
// permission; the verified identity is then available through GetIdentity.
//
// Failures are written with the status and code of the gate error:
//   - 401 for header, token, signature and claim problems
//   - 403 when the token lacks permission
//   - 503 when the signing keys cannot be fetched
//
// Usage:
//
//	router.POST("/movies",
//	    RequirePermission(authorizer, authDomain.PostMovies, logger),
//	    movieHandler.CreateHandler)
func RequirePermission(
	authorizer authUseCase.Authorizer,
	permission authDomain.Permission,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := authorizer.Authorize(c.Request.Context(), c.Request.Header, permission)
		if err != nil {
			var coded *apperrors.CodedError
			code := "unknown"
			if apperrors.As(err, &coded) {
				code = coded.Code
			}
			logger.Debug("authorization failed",
				slog.String("permission", permission.String()),
				slog.String("code", code))

			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))

		logger.Debug("authorization successful",
			slog.String("subject", identity.Subject),
			slog.String("permission", permission.String()))

		c.Next()
	}
}
