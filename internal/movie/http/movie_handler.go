// Package http provides HTTP handlers for movie operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/casting/internal/httputil"
	"github.com/allisson/casting/internal/movie/http/dto"
	movieUseCase "github.com/allisson/casting/internal/movie/usecase"
)

// MovieHandler handles HTTP requests for movies. Authorization happens in
// route middleware before any handler runs.
type MovieHandler struct {
	movieUseCase movieUseCase.MovieUseCase
	logger       *slog.Logger
}

// NewMovieHandler creates a new movie handler.
func NewMovieHandler(movieUseCase movieUseCase.MovieUseCase, logger *slog.Logger) *MovieHandler {
	return &MovieHandler{
		movieUseCase: movieUseCase,
		logger:       logger,
	}
}

// ListHandler returns every movie.
// GET /movies - Requires get:movies.
func (h *MovieHandler) ListHandler(c *gin.Context) {
	movies, err := h.movieUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMoviesToListResponse(movies))
}

// CreateHandler stores a new movie.
// POST /movies - Requires post:movies. Returns 201 Created with the new id.
func (h *MovieHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateMovieRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	movie, err := h.movieUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateMovieResponse{
		Success: true,
		MovieID: movie.ID,
	})
}

// GetHandler returns a single movie.
// GET /movies/:id - Requires get:movies.
func (h *MovieHandler) GetHandler(c *gin.Context) {
	id, err := httputil.ParseID(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	movie, err := h.movieUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.GetMovieResponse{
		Success: true,
		Movie:   dto.MapMovieToResponse(movie),
	})
}

// UpdateHandler merges the fields present in the body over a stored movie.
// PATCH /movies/:id - Requires patch:movies.
func (h *MovieHandler) UpdateHandler(c *gin.Context) {
	id, err := httputil.ParseID(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateMovieRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	movie, err := h.movieUseCase.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateMovieResponse{
		Success:      true,
		UpdatedMovie: dto.MapMovieToResponse(movie),
	})
}

// DeleteHandler removes a movie.
// DELETE /movies/:id - Requires delete:movies. Returns the deleted id.
func (h *MovieHandler) DeleteHandler(c *gin.Context) {
	id, err := httputil.ParseID(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.movieUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.DeleteResponse{
		Success: true,
		Deleted: id,
	})
}
