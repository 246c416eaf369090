// Package usecase implements the actor operations on top of ActorRepository.
package usecase

import (
	"context"

	actorDomain "github.com/allisson/casting/internal/actor/domain"
	"github.com/allisson/casting/internal/database"
	apperrors "github.com/allisson/casting/internal/errors"
)

type actorUseCase struct {
	txManager database.TxManager
	actorRepo ActorRepository
}

// NewActorUseCase creates a new ActorUseCase.
func NewActorUseCase(txManager database.TxManager, actorRepo ActorRepository) ActorUseCase {
	return &actorUseCase{
		txManager: txManager,
		actorRepo: actorRepo,
	}
}

// Create validates input and stores a new actor.
func (a *actorUseCase) Create(
	ctx context.Context,
	input *actorDomain.CreateActorInput,
) (*actorDomain.Actor, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	actor := &actorDomain.Actor{
		Name:   input.Name,
		Gender: input.Gender,
		Age:    input.Age,
	}
	if err := a.actorRepo.Create(ctx, actor); err != nil {
		return nil, err
	}
	return actor, nil
}

// List returns every actor.
func (a *actorUseCase) List(ctx context.Context) ([]*actorDomain.Actor, error) {
	return a.actorRepo.List(ctx)
}

// Get returns a single actor.
func (a *actorUseCase) Get(ctx context.Context, id int64) (*actorDomain.Actor, error) {
	return a.actorRepo.Get(ctx, id)
}

// Update applies a partial update inside a transaction.
func (a *actorUseCase) Update(
	ctx context.Context,
	id int64,
	input *actorDomain.UpdateActorInput,
) (*actorDomain.Actor, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *actorDomain.Actor
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		actor, err := a.actorRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		input.Apply(actor)

		if err := a.actorRepo.Update(ctx, actor); err != nil {
			return err
		}
		updated = actor
		return nil
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) || apperrors.Is(err, apperrors.ErrStoreFailure) {
			return nil, err
		}
		return nil, apperrors.StoreFailure(err, "failed to update actor")
	}
	return updated, nil
}

// Delete removes a actor.
func (a *actorUseCase) Delete(ctx context.Context, id int64) error {
	return a.actorRepo.Delete(ctx, id)
}
