package app

import (
	"fmt"

	"github.com/allisson/casting/internal/database"
	actorHTTP "github.com/allisson/casting/internal/actor/http"
	actorRepository "github.com/allisson/casting/internal/actor/repository"
	actorUseCase "github.com/allisson/casting/internal/actor/usecase"
)

// ActorRepository returns the actor repository for the configured driver.
func (c *Container) ActorRepository() (actorUseCase.ActorRepository, error) {
	var err error
	c.actorRepositoryInit.Do(func() {
		c.actorRepository, err = c.initActorRepository()
		if err != nil {
			c.initErrors["actorRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["actorRepository"]; exists {
		return nil, storedErr
	}
	return c.actorRepository, nil
}

// ActorUseCase returns the actor use case.
func (c *Container) ActorUseCase() (actorUseCase.ActorUseCase, error) {
	var err error
	c.actorUseCaseInit.Do(func() {
		c.actorUseCase, err = c.initActorUseCase()
		if err != nil {
			c.initErrors["actorUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["actorUseCase"]; exists {
		return nil, storedErr
	}
	return c.actorUseCase, nil
}

// ActorHandler returns the actor HTTP handler.
func (c *Container) ActorHandler() (*actorHTTP.ActorHandler, error) {
	var err error
	c.actorHandlerInit.Do(func() {
		c.actorHandler, err = c.initActorHandler()
		if err != nil {
			c.initErrors["actorHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["actorHandler"]; exists {
		return nil, storedErr
	}
	return c.actorHandler, nil
}

// initActorRepository creates the actor repository based on the database driver.
func (c *Container) initActorRepository() (actorUseCase.ActorRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for actor repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return actorRepository.NewPostgreSQLActorRepository(db), nil
	case database.DriverMySQL:
		return actorRepository.NewMySQLActorRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initActorUseCase creates the actor use case and wraps it with metrics.
func (c *Container) initActorUseCase() (actorUseCase.ActorUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for actor use case: %w", err)
	}

	repo, err := c.ActorRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get actor repository for actor use case: %w", err)
	}

	recorder, err := c.OperationRecorder()
	if err != nil {
		return nil, fmt.Errorf("failed to get operation recorder for actor use case: %w", err)
	}

	useCase := actorUseCase.NewActorUseCase(txManager, repo)
	return actorUseCase.NewActorUseCaseWithMetrics(useCase, recorder), nil
}

// initActorHandler creates the actor HTTP handler.
func (c *Container) initActorHandler() (*actorHTTP.ActorHandler, error) {
	useCase, err := c.ActorUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get actor use case for actor handler: %w", err)
	}
	return actorHTTP.NewActorHandler(useCase, c.Logger()), nil
}
