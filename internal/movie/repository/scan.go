package repository

import (
	"database/sql"

	apperrors "github.com/allisson/casting/internal/errors"
	movieDomain "github.com/allisson/casting/internal/movie/domain"
)

func scanMovies(rows *sql.Rows) ([]*movieDomain.Movie, error) {
	movies := make([]*movieDomain.Movie, 0)
	for rows.Next() {
		var movie movieDomain.Movie
		if err := rows.Scan(&movie.ID, &movie.Title, &movie.Date); err != nil {
			return nil, apperrors.StoreFailure(err, "failed to scan movie")
		}
		movies = append(movies, &movie)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.StoreFailure(err, "failed to iterate movies")
	}
	return movies, nil
}

// requireAffected reports ErrMovieNotFound when the statement touched no row.
func requireAffected(result sql.Result, message string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.StoreFailure(err, message)
	}
	if affected == 0 {
		return movieDomain.ErrMovieNotFound
	}
	return nil
}
