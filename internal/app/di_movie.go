package app

import (
	"fmt"

	"github.com/allisson/casting/internal/database"
	movieHTTP "github.com/allisson/casting/internal/movie/http"
	movieRepository "github.com/allisson/casting/internal/movie/repository"
	movieUseCase "github.com/allisson/casting/internal/movie/usecase"
)

// MovieRepository returns the movie repository for the configured driver.
func (c *Container) MovieRepository() (movieUseCase.MovieRepository, error) {
	var err error
	c.movieRepositoryInit.Do(func() {
		c.movieRepository, err = c.initMovieRepository()
		if err != nil {
			c.initErrors["movieRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["movieRepository"]; exists {
		return nil, storedErr
	}
	return c.movieRepository, nil
}

// MovieUseCase returns the movie use case.
func (c *Container) MovieUseCase() (movieUseCase.MovieUseCase, error) {
	var err error
	c.movieUseCaseInit.Do(func() {
		c.movieUseCase, err = c.initMovieUseCase()
		if err != nil {
			c.initErrors["movieUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["movieUseCase"]; exists {
		return nil, storedErr
	}
	return c.movieUseCase, nil
}

// MovieHandler returns the movie HTTP handler.
func (c *Container) MovieHandler() (*movieHTTP.MovieHandler, error) {
	var err error
	c.movieHandlerInit.Do(func() {
		c.movieHandler, err = c.initMovieHandler()
		if err != nil {
			c.initErrors["movieHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["movieHandler"]; exists {
		return nil, storedErr
	}
	return c.movieHandler, nil
}

// initMovieRepository creates the movie repository based on the database driver.
func (c *Container) initMovieRepository() (movieUseCase.MovieRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for movie repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return movieRepository.NewPostgreSQLMovieRepository(db), nil
	case database.DriverMySQL:
		return movieRepository.NewMySQLMovieRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMovieUseCase creates the movie use case and wraps it with metrics.
func (c *Container) initMovieUseCase() (movieUseCase.MovieUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for movie use case: %w", err)
	}

	repo, err := c.MovieRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get movie repository for movie use case: %w", err)
	}

	recorder, err := c.OperationRecorder()
	if err != nil {
		return nil, fmt.Errorf("failed to get operation recorder for movie use case: %w", err)
	}

	useCase := movieUseCase.NewMovieUseCase(txManager, repo)
	return movieUseCase.NewMovieUseCaseWithMetrics(useCase, recorder), nil
}

// initMovieHandler creates the movie HTTP handler.
func (c *Container) initMovieHandler() (*movieHTTP.MovieHandler, error) {
	useCase, err := c.MovieUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get movie use case for movie handler: %w", err)
	}
	return movieHTTP.NewMovieHandler(useCase, c.Logger()), nil
}
