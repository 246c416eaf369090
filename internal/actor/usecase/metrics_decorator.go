package usecase

import (
	"context"
	"time"

	actorDomain "github.com/allisson/casting/internal/actor/domain"
	"github.com/allisson/casting/internal/metrics"
)

// actorUseCaseWithMetrics decorates ActorUseCase with metrics instrumentation.
type actorUseCaseWithMetrics struct {
	next     ActorUseCase
	recorder metrics.OperationRecorder
}

// NewActorUseCaseWithMetrics wraps a ActorUseCase with metrics recording.
func NewActorUseCaseWithMetrics(useCase ActorUseCase, recorder metrics.OperationRecorder) ActorUseCase {
	return &actorUseCaseWithMetrics{
		next:     useCase,
		recorder: recorder,
	}
}

// Create records metrics for actor creation.
func (a *actorUseCaseWithMetrics) Create(
	ctx context.Context,
	input *actorDomain.CreateActorInput,
) (*actorDomain.Actor, error) {
	start := time.Now()
	actor, err := a.next.Create(ctx, input)
	a.recorder.Observe(ctx, metrics.DomainActors, "actor_create", start, err)
	return actor, err
}

// List records metrics for actor listing.
func (a *actorUseCaseWithMetrics) List(ctx context.Context) ([]*actorDomain.Actor, error) {
	start := time.Now()
	actors, err := a.next.List(ctx)
	a.recorder.Observe(ctx, metrics.DomainActors, "actor_list", start, err)
	return actors, err
}

// Get records metrics for actor retrieval.
func (a *actorUseCaseWithMetrics) Get(ctx context.Context, id int64) (*actorDomain.Actor, error) {
	start := time.Now()
	actor, err := a.next.Get(ctx, id)
	a.recorder.Observe(ctx, metrics.DomainActors, "actor_get", start, err)
	return actor, err
}

// Update records metrics for actor updates.
func (a *actorUseCaseWithMetrics) Update(
	ctx context.Context,
	id int64,
	input *actorDomain.UpdateActorInput,
) (*actorDomain.Actor, error) {
	start := time.Now()
	actor, err := a.next.Update(ctx, id, input)
	a.recorder.Observe(ctx, metrics.DomainActors, "actor_update", start, err)
	return actor, err
}

// Delete records metrics for actor deletion.
func (a *actorUseCaseWithMetrics) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := a.next.Delete(ctx, id)
	a.recorder.Observe(ctx, metrics.DomainActors, "actor_delete", start, err)
	return err
}
