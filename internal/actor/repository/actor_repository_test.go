package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	actorDomain "github.com/allisson/casting/internal/actor/domain"
	apperrors "github.com/allisson/casting/internal/errors"
)

var actorColumns = []string{"id", "name", "gender", "age"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestPostgreSQLActorRepository(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgreSQLActorRepository(db)
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO actors (name, gender, age) VALUES ($1, $2, $3) RETURNING id`).
			WithArgs("Will Smith", "male", "54").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

		actor := &actorDomain.Actor{Name: "Will Smith", Gender: "male", Age: "54"}
		require.NoError(t, repo.Create(ctx, actor))
		assert.Equal(t, int64(2), actor.ID)
	})

	t.Run("List", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, gender, age FROM actors ORDER BY id`).
			WillReturnRows(sqlmock.NewRows(actorColumns).
				AddRow(1, "Sigourney Weaver", "female", "73").
				AddRow(2, "Will Smith", "male", "54"))

		actors, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, actors, 2)
		assert.Equal(t, "Sigourney Weaver", actors[0].Name)
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, gender, age FROM actors WHERE id = $1`).
			WithArgs(int64(8)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(ctx, 8)
		assert.ErrorIs(t, err, actorDomain.ErrActorNotFound)
	})

	t.Run("GetForUpdate", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, gender, age FROM actors WHERE id = $1 FOR UPDATE`).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows(actorColumns).AddRow(2, "Will Smith", "male", "54"))

		actor, err := repo.GetForUpdate(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, &actorDomain.Actor{ID: 2, Name: "Will Smith", Gender: "male", Age: "54"}, actor)
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE actors SET name = $1, gender = $2, age = $3 WHERE id = $4`).
			WithArgs("Will Smith", "male", "55", int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, &actorDomain.Actor{ID: 2, Name: "Will Smith", Gender: "male", Age: "55"})
		assert.ErrorIs(t, err, actorDomain.ErrActorNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM actors WHERE id = $1`).
			WithArgs(int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.Delete(ctx, 2))

		mock.ExpectExec(`DELETE FROM actors WHERE id = $1`).
			WithArgs(int64(2)).
			WillReturnError(errors.New("pq: deadlock detected"))
		err := repo.Delete(ctx, 2)
		assert.True(t, apperrors.Is(err, apperrors.ErrStoreFailure))
		assert.False(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}

func TestMySQLActorRepository(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLActorRepository(db)
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO actors (name, gender, age) VALUES (?, ?, ?)`).
			WithArgs("Will Smith", "male", "54").
			WillReturnResult(sqlmock.NewResult(5, 1))

		actor := &actorDomain.Actor{Name: "Will Smith", Gender: "male", Age: "54"}
		require.NoError(t, repo.Create(ctx, actor))
		assert.Equal(t, int64(5), actor.ID)
	})

	t.Run("List_Empty", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, gender, age FROM actors ORDER BY id`).
			WillReturnRows(sqlmock.NewRows(actorColumns))

		actors, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, actors)
		assert.Empty(t, actors)
	})

	t.Run("Get", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, gender, age FROM actors WHERE id = ?`).
			WithArgs(int64(5)).
			WillReturnError(errors.New("Error 1146: Table 'casting.actors' doesn't exist"))

		_, err := repo.Get(ctx, 5)
		assert.True(t, apperrors.Is(err, apperrors.ErrStoreFailure))
	})

	t.Run("Update", func(t *testing.T) {
		mock.ExpectExec(`UPDATE actors SET name = ?, gender = ?, age = ? WHERE id = ?`).
			WithArgs("Will Smith", "male", "54", int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Update(ctx, &actorDomain.Actor{ID: 5, Name: "Will Smith", Gender: "male", Age: "54"}))
	})

	t.Run("Delete_NotFound", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM actors WHERE id = ?`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 5), actorDomain.ErrActorNotFound)
	})
}
