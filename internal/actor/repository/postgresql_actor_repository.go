// Package repository implements actor persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	actorDomain "github.com/allisson/casting/internal/actor/domain"
	"github.com/allisson/casting/internal/database"
	apperrors "github.com/allisson/casting/internal/errors"
)

// PostgreSQLActorRepository implements actor persistence for PostgreSQL.
type PostgreSQLActorRepository struct {
	db *sql.DB
}

// NewPostgreSQLActorRepository creates a new PostgreSQL actor repository.
func NewPostgreSQLActorRepository(db *sql.DB) *PostgreSQLActorRepository {
	return &PostgreSQLActorRepository{db: db}
}

// Create inserts actor and sets its generated id.
func (p *PostgreSQLActorRepository) Create(ctx context.Context, actor *actorDomain.Actor) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO actors (name, gender, age) VALUES ($1, $2, $3) RETURNING id`

	err := querier.QueryRowContext(ctx, query, actor.Name, actor.Gender, actor.Age).Scan(&actor.ID)
	if err != nil {
		return apperrors.StoreFailure(err, "failed to create actor")
	}
	return nil
}

// List returns every actor ordered by id.
func (p *PostgreSQLActorRepository) List(ctx context.Context) ([]*actorDomain.Actor, error) {
	querier := database.GetTx(ctx, p.db)

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
func (p *PostgreSQLActorRepository) Get(ctx context.Context, id int64) (*actorDomain.Actor, error) {
	return p.get(ctx, `SELECT id, name, gender, age FROM actors WHERE id = $1`, id)
}

// GetForUpdate returns the actor with id and locks its row until the
// surrounding transaction ends.
func (p *PostgreSQLActorRepository) GetForUpdate(ctx context.Context, id int64) (*actorDomain.Actor, error) {
	return p.get(ctx, `SELECT id, name, gender, age FROM actors WHERE id = $1 FOR UPDATE`, id)
}

func (p *PostgreSQLActorRepository) get(ctx context.Context, query string, id int64) (*actorDomain.Actor, error) {
	querier := database.GetTx(ctx, p.db)

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

// Update overwrites every field of an existing actor.
func (p *PostgreSQLActorRepository) Update(ctx context.Context, actor *actorDomain.Actor) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE actors SET name = $1, gender = $2, age = $3 WHERE id = $4`

	result, err := querier.ExecContext(ctx, query, actor.Name, actor.Gender, actor.Age, actor.ID)
	if err != nil {
		return apperrors.StoreFailure(err, "failed to update actor")
	}
	return requireAffected(result, "failed to update actor")
}

// Delete removes the actor with id.
func (p *PostgreSQLActorRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM actors WHERE id = $1`, id)
	if err != nil {
		return apperrors.StoreFailure(err, "failed to delete actor")
	}
	return requireAffected(result, "failed to delete actor")
}
