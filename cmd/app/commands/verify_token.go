package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	authDomain "github.com/allisson/casting/internal/auth/domain"
	authUseCase "github.com/allisson/casting/internal/auth/usecase"
	apperrors "github.com/allisson/casting/internal/errors"
)

// verifyTokenResult is the JSON output of verify-token.
type verifyTokenResult struct {
	Valid       bool     `json:"valid"`
	Subject     string   `json:"subject,omitempty"`
	Issuer      string   `json:"issuer,omitempty"`
	Audience    []string `json:"audience,omitempty"`
	ExpiresAt   string   `json:"expires_at,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	Code        string   `json:"code,omitempty"`
	Description string   `json:"description,omitempty"`
}

// RunVerifyToken runs the access control gate against token as if it had been
// sent as a bearer token on a route requiring permission. Prints the decoded
// identity, or the rejection code, and returns an error when the token is rejected.
func RunVerifyToken(
	ctx context.Context,
	authorizer authUseCase.Authorizer,
	logger *slog.Logger,
	writer io.Writer,
	token, permission string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	required := authDomain.Permission(permission)
	if !slices.Contains(authDomain.AllPermissions, required) {
		return fmt.Errorf("invalid permission: %s", permission)
	}

	token = strings.TrimPrefix(strings.TrimSpace(token), "Bearer ")
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+token)

	logger.Info("verifying token", slog.String("permission", permission))

	identity, err := authorizer.Authorize(ctx, headers, required)
	if err != nil {
		var coded *apperrors.CodedError
		if !apperrors.As(err, &coded) {
			return fmt.Errorf("failed to verify token: %w", err)
		}

		result := verifyTokenResult{Code: coded.Code, Description: coded.Description}
		if format == "json" {
			if err := writeJSON(writer, result); err != nil {
				return err
			}
		} else {
			_, _ = fmt.Fprintf(writer, "Token rejected: %s\n", coded.Code)
			_, _ = fmt.Fprintf(writer, "%s\n", coded.Description)
		}
		return fmt.Errorf("token rejected: %s", coded.Code)
	}

	result := verifyTokenResult{
		Valid:       true,
		Subject:     identity.Subject,
		Issuer:      identity.Issuer,
		Audience:    identity.Audience,
		ExpiresAt:   identity.ExpiresAt.UTC().Format(time.RFC3339),
		Permissions: make([]string, 0, len(identity.Permissions)),
	}
	for _, p := range identity.Permissions {
		result.Permissions = append(result.Permissions, p.String())
	}

	if format == "json" {
		return writeJSON(writer, result)
	}

	_, _ = fmt.Fprintln(writer, "Token is valid")
	_, _ = fmt.Fprintf(writer, "Subject: %s\n", result.Subject)
	_, _ = fmt.Fprintf(writer, "Issuer: %s\n", result.Issuer)
	_, _ = fmt.Fprintf(writer, "Audience: %s\n", strings.Join(result.Audience, ", "))
	_, _ = fmt.Fprintf(writer, "Expires at: %s\n", result.ExpiresAt)
	_, _ = fmt.Fprintf(writer, "Permissions: %s\n", strings.Join(result.Permissions, ", "))
	return nil
}
