// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/casting/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorMapping describes how an error kind is rendered.
type errorMapping struct {
	kind    error
	status  int
	code    string
	message string
}

// errorMappings is checked in order; the first matching kind wins.
var errorMappings = []errorMapping{
	{apperrors.ErrInvalidInput, http.StatusBadRequest, "bad_request", "bad request"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "authentication is required"},
	{apperrors.ErrForbidden, http.StatusForbidden, "forbidden", "permission not granted"},
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "resource not found"},
	{apperrors.ErrConflict, http.StatusConflict, "conflict", "a conflict occurred with existing data"},
	{apperrors.ErrStoreFailure, http.StatusUnprocessableEntity, "unprocessable", "unprocessable"},
	{apperrors.ErrUnavailable, http.StatusServiceUnavailable, "service_unavailable", "service unavailable"},
}

// ErrorToResponse maps a domain error to its HTTP status code and body.
// Coded errors contribute their own code and description; validation errors
// expose their message; everything else gets the generic message of its kind.
func ErrorToResponse(err error) (int, ErrorResponse) {
	for _, m := range errorMappings {
		if !apperrors.Is(err, m.kind) {
			continue
		}

		response := ErrorResponse{Error: m.status, Code: m.code, Message: m.message}

		var coded *apperrors.CodedError
		if apperrors.As(err, &coded) {
			response.Code = coded.Code
			response.Message = coded.Description
		} else if m.kind == apperrors.ErrInvalidInput {
			response.Message = err.Error()
		}

		return m.status, response
	}

	// For unknown/internal errors, don't expose details to the client
	return http.StatusInternalServerError, ErrorResponse{
		Error:   http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "internal server error",
	}
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON response.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode, response := ErrorToResponse(err)

	// Log the full error details (including wrapped errors)
	if logger != nil {
		level := slog.LevelWarn
		if statusCode >= http.StatusInternalServerError || statusCode == http.StatusUnprocessableEntity {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", response.Code),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, response)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   http.StatusBadRequest,
		Code:    "bad_request",
		Message: "bad request",
	})
}
