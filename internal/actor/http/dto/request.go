// Package dto provides data transfer objects for actor HTTP requests and responses.
package dto

import (
	actorDomain "github.com/allisson/casting/internal/actor/domain"
	"github.com/allisson/casting/internal/httputil"
)

// CreateActorRequest is the body of POST /actors. Every field accepts a JSON
// string or number.
type CreateActorRequest struct {
	Name   *httputil.Text `json:"name"`
	Gender *httputil.Text `json:"gender"`
	Age    *httputil.Text `json:"age"`
}

// ToInput converts the request to a domain input.
func (r *CreateActorRequest) ToInput() *actorDomain.CreateActorInput {
	return &actorDomain.CreateActorInput{
		Name:   r.Name.Value(),
		Gender: r.Gender.Value(),
		Age:    r.Age.Value(),
	}
}

// UpdateActorRequest is the body of PATCH /actors/:id.
type UpdateActorRequest struct {
	Name   *httputil.Text `json:"name"`
	Gender *httputil.Text `json:"gender"`
	Age    *httputil.Text `json:"age"`
}

// ToInput converts the request to a domain input.
func (r *UpdateActorRequest) ToInput() *actorDomain.UpdateActorInput {
	return &actorDomain.UpdateActorInput{
		Name:   r.Name.Ptr(),
		Gender: r.Gender.Ptr(),
		Age:    r.Age.Ptr(),
	}
}
