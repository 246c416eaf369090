package app

import (
	"fmt"
	nethttp "net/http"

	"github.com/jonboulle/clockwork"

	authService "github.com/allisson/casting/internal/auth/service"
	authUseCase "github.com/allisson/casting/internal/auth/usecase"
)

// KeySet returns the cached JWKS key set of the identity provider.
func (c *Container) KeySet() (*authService.RemoteKeySet, error) {
	var err error
	c.keySetInit.Do(func() {
		c.keySet, err = c.initKeySet()
		if err != nil {
			c.initErrors["keySet"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keySet"]; exists {
		return nil, storedErr
	}
	return c.keySet, nil
}

// Authorizer returns the bearer token access control gate.
func (c *Container) Authorizer() (authUseCase.Authorizer, error) {
	var err error
	c.authorizerInit.Do(func() {
		c.authorizer, err = c.initAuthorizer()
		if err != nil {
			c.initErrors["authorizer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authorizer"]; exists {
		return nil, storedErr
	}
	return c.authorizer, nil
}

// initKeySet creates the remote key set. The cache starts empty.
func (c *Container) initKeySet() (*authService.RemoteKeySet, error) {
	if c.config.AuthJWKSURL == "" {
		return nil, fmt.Errorf("auth key set url is required: set AUTH_DOMAIN or AUTH_JWKS_URL")
	}
	client := &nethttp.Client{Timeout: c.config.AuthJWKSHTTPTimeout}
	return authService.NewRemoteKeySet(
		c.config.AuthJWKSURL,
		client,
		c.config.AuthJWKSMinRefreshInterval,
		clockwork.NewRealClock(),
		c.Logger(),
	), nil
}

// initAuthorizer creates the authorizer and wraps it with metrics.
func (c *Container) initAuthorizer() (authUseCase.Authorizer, error) {
	keySet, err := c.KeySet()
	if err != nil {
		return nil, fmt.Errorf("failed to get key set for authorizer: %w", err)
	}

	recorder, err := c.OperationRecorder()
	if err != nil {
		return nil, fmt.Errorf("failed to get operation recorder for authorizer: %w", err)
	}

	authorizer, err := authUseCase.NewAuthorizer(keySet, authUseCase.AuthorizerConfig{
		Issuer:    c.config.AuthIssuer,
		Audience:  c.config.AuthAudience,
		Algorithm: c.config.AuthAlgorithm,
		ClockSkew: c.config.AuthClockSkew,
	}, clockwork.NewRealClock())
	if err != nil {
		return nil, fmt.Errorf("failed to create authorizer: %w", err)
	}

	return authUseCase.NewAuthorizerWithMetrics(authorizer, recorder), nil
}
