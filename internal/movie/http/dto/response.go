package dto

import (
	movieDomain "github.com/allisson/casting/internal/movie/domain"
)

// MovieResponse is the wire form of a movie.
type MovieResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

// ListMoviesResponse is the body of GET /movies.
type ListMoviesResponse struct {
	Success bool            `json:"success"`
	Movies  []MovieResponse `json:"movies"`
}

// CreateMovieResponse is the body of POST /movies.
type CreateMovieResponse struct {
	Success bool  `json:"success"`
	MovieID int64 `json:"movie_id"`
}

// GetMovieResponse is the body of GET /movies/:id.
type GetMovieResponse struct {
	Success bool          `json:"success"`
	Movie   MovieResponse `json:"movie"`
}

// UpdateMovieResponse is the body of PATCH /movies/:id.
type UpdateMovieResponse struct {
	Success      bool          `json:"success"`
	UpdatedMovie MovieResponse `json:"updated_movie"`
}

// MapMovieToResponse converts a domain movie to its wire form.
func MapMovieToResponse(movie *movieDomain.Movie) MovieResponse {
	return MovieResponse{
		ID:    movie.ID,
		Title: movie.Title,
		Date:  movie.Date,
	}
}

// MapMoviesToListResponse converts domain movies to a list response. An empty
// result is rendered as an empty array.
func MapMoviesToListResponse(movies []*movieDomain.Movie) ListMoviesResponse {
	data := make([]MovieResponse, 0, len(movies))
	for _, movie := range movies {
		data = append(data, MapMovieToResponse(movie))
	}
	return ListMoviesResponse{
		Success: true,
		Movies:  data,
	}
}
