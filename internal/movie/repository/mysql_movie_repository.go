package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/casting/internal/database"
	apperrors "github.com/allisson/casting/internal/errors"
	movieDomain "github.com/allisson/casting/internal/movie/domain"
)

// MySQLMovieRepository implements movie persistence for MySQL.
type MySQLMovieRepository struct {
	db *sql.DB
}

// NewMySQLMovieRepository creates a new MySQL movie repository.
func NewMySQLMovieRepository(db *sql.DB) *MySQLMovieRepository {
	return &MySQLMovieRepository{db: db}
}

// Create inserts movie and sets its generated id.
func (m *MySQLMovieRepository) Create(ctx context.Context, movie *movieDomain.Movie) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `INSERT INTO movies (title, date) VALUES (?, ?)`, movie.Title, movie.Date)
	if err != nil {
		return apperrors.StoreFailure(err, "failed to create movie")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.StoreFailure(err, "failed to read movie id")
	}
	movie.ID = id
	return nil
}

// List returns every movie ordered by id.
func (m *MySQLMovieRepository) List(ctx context.Context) ([]*movieDomain.Movie, error) {
	querier := database.GetTx(ctx, m.db)

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
func (m *MySQLMovieRepository) Get(ctx context.Context, id int64) (*movieDomain.Movie, error) {
	return m.get(ctx, `SELECT id, title, date FROM movies WHERE id = ?`, id)
}

// GetForUpdate returns the movie with id and locks its row until the
// surrounding transaction ends.
func (m *MySQLMovieRepository) GetForUpdate(ctx context.Context, id int64) (*movieDomain.Movie, error) {
	return m.get(ctx, `SELECT id, title, date FROM movies WHERE id = ? FOR UPDATE`, id)
}

func (m *MySQLMovieRepository) get(ctx context.Context, query string, id int64) (*movieDomain.Movie, error) {
	querier := database.GetTx(ctx, m.db)

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

// Update overwrites title and date of a movie. MySQL reports changed rather
// than matched rows, so an update with identical values affects zero rows;
// callers establish existence with GetForUpdate first.
func (m *MySQLMovieRepository) Update(ctx context.Context, movie *movieDomain.Movie) error {
	querier := database.GetTx(ctx, m.db)

	_, err := querier.ExecContext(
		ctx,
		`UPDATE movies SET title = ?, date = ? WHERE id = ?`,
		movie.Title,
		movie.Date,
		movie.ID,
	)
	if err != nil {
		return apperrors.StoreFailure(err, "failed to update movie")
	}
	return nil
}

// Delete removes the movie with id.
func (m *MySQLMovieRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return apperrors.StoreFailure(err, "failed to delete movie")
	}
	return requireAffected(result, "failed to delete movie")
}
