package repository

import (
	"database/sql"

	actorDomain "github.com/allisson/casting/internal/actor/domain"
	apperrors "github.com/allisson/casting/internal/errors"
)

func scanActors(rows *sql.Rows) ([]*actorDomain.Actor, error) {
	actors := make([]*actorDomain.Actor, 0)
	for rows.Next() {
		var actor actorDomain.Actor
		if err := rows.Scan(&actor.ID, &actor.Name, &actor.Gender, &actor.Age); err != nil {
			return nil, apperrors.StoreFailure(err, "failed to scan actor")
		}
		actors = append(actors, &actor)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.StoreFailure(err, "failed to iterate actors")
	}
	return actors, nil
}

func requireAffected(result sql.Result, message string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.StoreFailure(err, message)
	}
	if affected == 0 {
		return actorDomain.ErrActorNotFound
	}
	return nil
}
