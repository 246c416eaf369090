package dto

import (
	actorDomain "github.com/allisson/casting/internal/actor/domain"
)

// ActorResponse is the wire form of an actor.
type ActorResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Age    string `json:"age"`
}

// ListActorsResponse is the body of GET /actors.
type ListActorsResponse struct {
	Success bool            `json:"success"`
	Actors  []ActorResponse `json:"actors"`
}

// CreateActorResponse is the body of POST /actors.
type CreateActorResponse struct {
	Success bool  `json:"success"`
	ActorID int64 `json:"actor_id"`
}

// GetActorResponse is the body of GET /actors/:id.
type GetActorResponse struct {
	Success bool          `json:"success"`
	Actor   ActorResponse `json:"actor"`
}

// UpdateActorResponse is the body of PATCH /actors/:id.
type UpdateActorResponse struct {
	Success      bool          `json:"success"`
	UpdatedActor ActorResponse `json:"updated_actor"`
}

// MapActorToResponse converts a domain actor to its wire form.
func MapActorToResponse(actor *actorDomain.Actor) ActorResponse {
	return ActorResponse{
		ID:     actor.ID,
		Name:   actor.Name,
		Gender: actor.Gender,
		Age:    actor.Age,
	}
}

// MapActorsToListResponse converts domain actors to a list response.
func MapActorsToListResponse(actors []*actorDomain.Actor) ListActorsResponse {
	data := make([]ActorResponse, 0, len(actors))
	for _, actor := range actors {
		data = append(data, MapActorToResponse(actor))
	}
	return ListActorsResponse{
		Success: true,
		Actors:  data,
	}
}
