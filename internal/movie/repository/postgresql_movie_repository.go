// Package repository implements movie persistence for PostgreSQL and MySQL.
//
// Every method picks up a transaction from the context through database.GetTx,
// so the same repository works inside and outside TxManager.WithTx. Driver
// errors are reported as ErrStoreFailure; a missing row is ErrMovieNotFound.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/casting/internal/database"
	apperrors "github.com/allisson/casting/internal/errors"
	movieDomain "github.com/allisson/casting/internal/movie/domain"
)

// PostgreSQLMovieRepository implements movie persistence for PostgreSQL.
type PostgreSQLMovieRepository struct {
	db *sql.DB
}

// NewPostgreSQLMovieRepository creates a new PostgreSQL movie repository.
func NewPostgreSQLMovieRepository(db *sql.DB) *PostgreSQLMovieRepository {
	return &PostgreSQLMovieRepository{db: db}
}

// Create inserts movie and sets its generated id.
func (p *PostgreSQLMovieRepository) Create(ctx context.Context, movie *movieDomain.Movie) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO movies (title, date) VALUES ($1, $2) RETURNING id`

	if err := querier.QueryRowContext(ctx, query, movie.Title, movie.Date).Scan(&movie.ID); err != nil {
		return apperrors.StoreFailure(err, "failed to create movie")
	}
	return nil
}

// List returns every movie ordered by id.
func (p *PostgreSQLMovieRepository) List(ctx context.Context) ([]*movieDomain.Movie, error) {
	querier := database.GetTx(ctx, p.db)

	rows, err := querier.QueryContext(ctx, `SELECT id, title, date FROM movies ORDER BY id`)
	if err != nil {
		return nil, apperrors.StoreFailure(err, "failed to list movies")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanMovies(rows)
}

// Get returns the movie with id.
func (p *PostgreSQLMovieRepository) Get(ctx context.Context, id int64) (*movieDomain.Movie, error) {
	return p.get(ctx, `SELECT id, title, date FROM movies WHERE id = $1`, id)
}

// GetForUpdate returns the movie with id and locks its row until the
// surrounding transaction ends.
func (p *PostgreSQLMovieRepository) GetForUpdate(ctx context.Context, id int64) (*movieDomain.Movie, error) {
	return p.get(ctx, `SELECT id, title, date FROM movies WHERE id = $1 FOR UPDATE`, id)
}

func (p *PostgreSQLMovieRepository) get(ctx context.Context, query string, id int64) (*movieDomain.Movie, error) {
	querier := database.GetTx(ctx, p.db)

	var movie movieDomain.Movie
	err := querier.QueryRowContext(ctx, query, id).Scan(&movie.ID, &movie.Title, &movie.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, movieDomain.ErrMovieNotFound
		}
		return nil, apperrors.StoreFailure(err, "failed to get movie")
	}
	return &movie, nil
}

// Update overwrites title and date of an existing movie.
func (p *PostgreSQLMovieRepository) Update(ctx context.Context, movie *movieDomain.Movie) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE movies SET title = $1, date = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, movie.Title, movie.Date, movie.ID)
	if err != nil {
		return apperrors.StoreFailure(err, "failed to update movie")
	}
	return requireAffected(result, "failed to update movie")
}

// Delete removes the movie with id.
func (p *PostgreSQLMovieRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return apperrors.StoreFailure(err, "failed to delete movie")
	}
	return requireAffected(result, "failed to delete movie")
}
