// Package http provides HTTP handlers for actor operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/casting/internal/actor/http/dto"
	actorUseCase "github.com/allisson/casting/internal/actor/usecase"
	"github.com/allisson/casting/internal/httputil"
)

// ActorHandler handles HTTP requests for actors.
type ActorHandler struct {
	actorUseCase actorUseCase.ActorUseCase
	logger       *slog.Logger
}

// NewActorHandler creates a new actor handler.
func NewActorHandler(actorUseCase actorUseCase.ActorUseCase, logger *slog.Logger) *ActorHandler {
	return &ActorHandler{
		actorUseCase: actorUseCase,
		logger:       logger,
	}
}

// ListHandler returns every actor.
// GET /actors - Requires get:actors.
func (h *ActorHandler) ListHandler(c *gin.Context) {
	actors, err := h.actorUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapActorsToListResponse(actors))
}

// CreateHandler stores a new actor.
// POST /actors - Requires post:actors. Returns 201 Created with the new id.
func (h *ActorHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateActorRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	actor, err := h.actorUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateActorResponse{
		Success: true,
		ActorID: actor.ID,
	})
}

// GetHandler returns a single actor.
// GET /actors/:id - Requires get:actors.
func (h *ActorHandler) GetHandler(c *gin.Context) {
	id, err := httputil.ParseID(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	actor, err := h.actorUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.GetActorResponse{
		Success: true,
		Actor:   dto.MapActorToResponse(actor),
	})
}

// UpdateHandler merges the fields present in the body over a stored actor.
// PATCH /actors/:id - Requires patch:actors.
func (h *ActorHandler) UpdateHandler(c *gin.Context) {
	id, err := httputil.ParseID(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateActorRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	actor, err := h.actorUseCase.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateActorResponse{
		Success:      true,
		UpdatedActor: dto.MapActorToResponse(actor),
	})
}

// DeleteHandler removes an actor.
// DELETE /actors/:id - Requires delete:actors. Returns the deleted id.
func (h *ActorHandler) DeleteHandler(c *gin.Context) {
	id, err := httputil.ParseID(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.actorUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.DeleteResponse{
		Success: true,
		Deleted: id,
	})
}
