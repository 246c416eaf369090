package usecase

import (
	"context"

	actorDomain "github.com/allisson/casting/internal/actor/domain"
)

// ActorRepository defines the interface for actor persistence.
type ActorRepository interface {
	Create(ctx context.Context, actor *actorDomain.Actor) error
	List(ctx context.Context) ([]*actorDomain.Actor, error)
	Get(ctx context.Context, id int64) (*actorDomain.Actor, error)
	GetForUpdate(ctx context.Context, id int64) (*actorDomain.Actor, error)
	Update(ctx context.Context, actor *actorDomain.Actor) error
	Delete(ctx context.Context, id int64) error
}

// ActorUseCase defines the interface for actor operations.
type ActorUseCase interface {
	Create(ctx context.Context, input *actorDomain.CreateActorInput) (*actorDomain.Actor, error)
	List(ctx context.Context) ([]*actorDomain.Actor, error)
	Get(ctx context.Context, id int64) (*actorDomain.Actor, error)
	// Update merges the present fields of input over the stored actor and
	// returns the result. Absent fields keep their stored value.
	Update(ctx context.Context, id int64, input *actorDomain.UpdateActorInput) (*actorDomain.Actor, error)
	Delete(ctx context.Context, id int64) error
}
