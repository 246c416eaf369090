// Package dto provides data transfer objects for movie HTTP requests and responses.
package dto

import (
	"github.com/allisson/casting/internal/httputil"
	movieDomain "github.com/allisson/casting/internal/movie/domain"
)

// CreateMovieRequest is the body of POST /movies.
type CreateMovieRequest struct {
	Title *httputil.Text `json:"title"`
	Date  *httputil.Text `json:"date"`
}

// ToInput converts the request to a domain input. Absent fields become empty
// and are rejected by validation.
func (r *CreateMovieRequest) ToInput() *movieDomain.CreateMovieInput {
	return &movieDomain.CreateMovieInput{
		Title: r.Title.Value(),
		Date:  r.Date.Value(),
	}
}

// UpdateMovieRequest is the body of PATCH /movies/:id. Absent or null fields
// are left unchanged.
type UpdateMovieRequest struct {
	Title *httputil.Text `json:"title"`
	Date  *httputil.Text `json:"date"`
}

// ToInput converts the request to a domain input.
func (r *UpdateMovieRequest) ToInput() *movieDomain.UpdateMovieInput {
	return &movieDomain.UpdateMovieInput{
		Title: r.Title.Ptr(),
		Date:  r.Date.Ptr(),
	}
}
