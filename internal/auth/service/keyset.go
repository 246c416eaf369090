// Package service provides the signing key set used to verify bearer tokens.
package service

import (
	"context"
	"crypto"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	authDomain "github.com/allisson/casting/internal/auth/domain"
	apperrors "github.com/allisson/casting/internal/errors"
)

// maxKeySetSize bounds the key set document read from the identity provider.
const maxKeySetSize = 1 << 20

// KeySet resolves a signing key by its key id.
type KeySet interface {
	// Key returns the public key for kid. Returns ErrUnknownSigningKey when the
	// key is not published and ErrKeySetUnavailable when the set cannot be fetched.
	Key(ctx context.Context, kid string) (crypto.PublicKey, error)
}

// RemoteKeySet caches the keys published at a JWKS URL. A lookup miss
// triggers a refresh; concurrent misses share one fetch and refreshes caused
// by misses are spaced by at least minRefreshInterval.
type RemoteKeySet struct {
	url                string
	client             *http.Client
	clock              clockwork.Clock
	minRefreshInterval time.Duration
	logger             *slog.Logger

	group singleflight.Group

	mu          sync.RWMutex
	keys        map[string]crypto.PublicKey
	lastAttempt time.Time
	lastErr     error
}

// NewRemoteKeySet creates a key set for url. The cache starts empty; call
// Refresh to warm it up.
func NewRemoteKeySet(
	url string,
	client *http.Client,
	minRefreshInterval time.Duration,
	clock clockwork.Clock,
	logger *slog.Logger,
) *RemoteKeySet {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RemoteKeySet{
		url:                url,
		client:             client,
		clock:              clock,
		minRefreshInterval: minRefreshInterval,
		logger:             logger,
		keys:               map[string]crypto.PublicKey{},
	}
}

// Key implements KeySet.
func (s *RemoteKeySet) Key(ctx context.Context, kid string) (crypto.PublicKey, error) {
	if key, ok := s.lookup(kid); ok {
		return key, nil
	}

	if err := s.wait(ctx, s.group.DoChan("miss", func() (any, error) {
		return nil, s.refreshOnMiss(context.WithoutCancel(ctx))
	})); err != nil {
		return nil, err
	}

	if key, ok := s.lookup(kid); ok {
		return key, nil
	}
	return nil, authDomain.ErrUnknownSigningKey
}

// Refresh fetches the key set unconditionally and replaces the cache.
func (s *RemoteKeySet) Refresh(ctx context.Context) error {
	return s.wait(ctx, s.group.DoChan("refresh", func() (any, error) {
		return nil, s.refresh(context.WithoutCancel(ctx))
	}))
}

// KeyIDs returns the cached key ids in sorted order.
func (s *RemoteKeySet) KeyIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.keys))
	for kid := range s.keys {
		ids = append(ids, kid)
	}
	slices.Sort(ids)
	return ids
}

func (s *RemoteKeySet) lookup(kid string) (crypto.PublicKey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.keys[kid]
	return key, ok
}

func (s *RemoteKeySet) wait(ctx context.Context, ch <-chan singleflight.Result) error {
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return apperrors.Wrap(authDomain.ErrKeySetUnavailable, ctx.Err().Error())
	}
}

// refreshOnMiss refreshes unless the previous attempt is too recent. A
// throttled miss reports the previous failure, if any.
func (s *RemoteKeySet) refreshOnMiss(ctx context.Context) error {
	s.mu.RLock()
	lastAttempt, lastErr := s.lastAttempt, s.lastErr
	s.mu.RUnlock()

	if !lastAttempt.IsZero() && s.clock.Now().Sub(lastAttempt) < s.minRefreshInterval {
		return lastErr
	}
	return s.refresh(ctx)
}

func (s *RemoteKeySet) refresh(ctx context.Context) error {
	keys, fetchErr := s.fetch(ctx)

	var err error
	if fetchErr != nil {
		err = apperrors.Wrap(authDomain.ErrKeySetUnavailable, fetchErr.Error())
	}

	s.mu.Lock()
	s.lastAttempt = s.clock.Now()
	s.lastErr = err
	if err == nil {
		s.keys = keys
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("failed to refresh signing keys", slog.String("url", s.url), slog.Any("error", fetchErr))
		return err
	}

	s.logger.Debug("signing keys refreshed", slog.String("url", s.url), slog.Int("keys", len(keys)))
	return nil
}

func (s *RemoteKeySet) fetch(ctx context.Context) (map[string]crypto.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build key set request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch key set: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected key set response status: %d", resp.StatusCode)
	}

	var document jsonWebKeySet
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxKeySetSize)).Decode(&document); err != nil {
		return nil, fmt.Errorf("failed to decode key set: %w", err)
	}

	keys := make(map[string]crypto.PublicKey, len(document.Keys))
	for _, jwk := range document.Keys {
		if jwk.Kid == "" || (jwk.Use != "" && jwk.Use != "sig") {
			continue
		}
		key, err := jwk.publicKey()
		if err != nil {
			s.logger.Warn("skipping signing key", slog.String("kid", jwk.Kid), slog.Any("error", err))
			continue
		}
		keys[jwk.Kid] = key
	}

	if len(keys) == 0 {
		return nil, errors.New("key set has no usable signing keys")
	}
	return keys, nil
}
