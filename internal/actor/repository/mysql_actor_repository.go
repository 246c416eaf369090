package repository

import (
	"context"
	"database/sql"
	"errors"

	actorDomain "github.com/allisson/casting/internal/actor/domain"
	"github.com/allisson/casting/internal/database"
	apperrors "github.com/allisson/casting/internal/errors"
)

// MySQLActorRepository implements actor persistence for MySQL.
type MySQLActorRepository struct {
	db *sql.DB
}

// NewMySQLActorRepository creates a new MySQL actor repository.
func NewMySQLActorRepository(db *sql.DB) *MySQLActorRepository {
	return &MySQLActorRepository{db: db}
}

// Create inserts actor and sets its generated id.
func (m *MySQLActorRepository) Create(ctx context.Context, actor *actorDomain.Actor) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(
		ctx,
		`INSERT INTO actors (name, gender, age) VALUES (?, ?, ?)`,
		actor.Name,
		actor.Gender,
		actor.Age,
	)
	if err != nil {
		return apperrors.StoreFailure(err, "failed to create actor")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.StoreFailure(err, "failed to read actor id")
	}
	actor.ID = id
	return nil
}

// List returns every actor ordered by id.
func (m *MySQLActorRepository) List(ctx context.Context) ([]*actorDomain.Actor, error) {
	querier := database.GetTx(ctx, m.db)

	rows, err := querier.QueryContext(ctx, `SELECT id, name, gender, age FROM actors ORDER BY id`)
	if err != nil {
		return nil, apperrors.StoreFailure(err, "failed to list actors")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanActors(rows)
}

// Get returns the actor with id.
func (m *MySQLActorRepository) Get(ctx context.Context, id int64) (*actorDomain.Actor, error) {
	return m.get(ctx, `SELECT id, name, gender, age FROM actors WHERE id = ?`, id)
}

// GetForUpdate returns the actor with id and locks its row until the
// surrounding transaction ends.
func (m *MySQLActorRepository) GetForUpdate(ctx context.Context, id int64) (*actorDomain.Actor, error) {
	return m.get(ctx, `SELECT id, name, gender, age FROM actors WHERE id = ? FOR UPDATE`, id)
}

func (m *MySQLActorRepository) get(ctx context.Context, query string, id int64) (*actorDomain.Actor, error) {
	querier := database.GetTx(ctx, m.db)

	var actor actorDomain.Actor
	err := querier.QueryRowContext(ctx, query, id).Scan(&actor.ID, &actor.Name, &actor.Gender, &actor.Age)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, actorDomain.ErrActorNotFound
		}
		return nil, apperrors.StoreFailure(err, "failed to get actor")
	}
	return &actor, nil
}

// Update overwrites every field of an actor. Rows affected is not checked
// since MySQL counts changed rows only; existence comes from GetForUpdate.
func (m *MySQLActorRepository) Update(ctx context.Context, actor *actorDomain.Actor) error {
	querier := database.GetTx(ctx, m.db)

	_, err := querier.ExecContext(
		ctx,
		`UPDATE actors SET name = ?, gender = ?, age = ? WHERE id = ?`,
		actor.Name,
		actor.Gender,
		actor.Age,
		actor.ID,
	)
	if err != nil {
		return apperrors.StoreFailure(err, "failed to update actor")
	}
	return nil
}

// Delete removes the actor with id.
func (m *MySQLActorRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM actors WHERE id = ?`, id)
	if err != nil {
		return apperrors.StoreFailure(err, "failed to delete actor")
	}
	return requireAffected(result, "failed to delete actor")
}
