package service

import (
	"context"
	"crypto/ecdsa"
	"crypto/rsa"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/casting/internal/auth/domain"
	apperrors "github.com/allisson/casting/internal/errors"
	"github.com/allisson/casting/internal/testutil"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestKeySet(idp *testutil.IdentityProvider, clock clockwork.Clock) *RemoteKeySet {
	return NewRemoteKeySet(idp.JWKSURL(), idp.HTTPClient(), 30*time.Second, clock, newTestLogger())
}

func TestRemoteKeySet_Key(t *testing.T) {
	idp := testutil.NewIdentityProvider(t)
	keySet := newTestKeySet(idp, clockwork.NewFakeClock())
	ctx := context.Background()

	rsaKey, err := keySet.Key(ctx, testutil.RSAKeyID)
	require.NoError(t, err)
	assert.IsType(t, &rsa.PublicKey{}, rsaKey)

	ecKey, err := keySet.Key(ctx, testutil.ECKeyID)
	require.NoError(t, err)
	assert.IsType(t, &ecdsa.PublicKey{}, ecKey)

	assert.Equal(t, 1, idp.Fetches())
	assert.Equal(t, []string{testutil.ECKeyID, testutil.RSAKeyID}, keySet.KeyIDs())
}

func TestRemoteKeySet_MissRefreshesAfterRotation(t *testing.T) {
	idp := testutil.NewIdentityProvider(t)
	clock := clockwork.NewFakeClock()
	keySet := newTestKeySet(idp, clock)
	ctx := context.Background()

	require.NoError(t, keySet.Refresh(ctx))
	rotated := idp.AddRSAKey(t)

	// Within the refresh interval the new key stays unknown.
	_, err := keySet.Key(ctx, rotated)
	assert.ErrorIs(t, err, authDomain.ErrUnknownSigningKey)
	assert.Equal(t, 1, idp.Fetches())

	clock.Advance(31 * time.Second)

	key, err := keySet.Key(ctx, rotated)
	require.NoError(t, err)
	assert.NotNil(t, key)
	assert.Equal(t, 2, idp.Fetches())
}

func TestRemoteKeySet_UnknownKey(t *testing.T) {
	idp := testutil.NewIdentityProvider(t)
	keySet := newTestKeySet(idp, clockwork.NewFakeClock())

	_, err := keySet.Key(context.Background(), "does-not-exist")

	assert.ErrorIs(t, err, authDomain.ErrUnknownSigningKey)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestRemoteKeySet_ConcurrentMissesShareOneFetch(t *testing.T) {
	idp := testutil.NewIdentityProvider(t)
	keySet := newTestKeySet(idp, clockwork.NewFakeClock())

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := keySet.Key(context.Background(), testutil.RSAKeyID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, idp.Fetches())
}

func TestRemoteKeySet_Unavailable(t *testing.T) {
	idp := testutil.NewIdentityProvider(t)
	clock := clockwork.NewFakeClock()
	keySet := newTestKeySet(idp, clock)
	ctx := context.Background()

	idp.SetFailing(true)

	_, err := keySet.Key(ctx, testutil.RSAKeyID)
	assert.ErrorIs(t, err, authDomain.ErrKeySetUnavailable)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnavailable))

	// A throttled miss reports the previous failure without fetching again.
	_, err = keySet.Key(ctx, testutil.RSAKeyID)
	assert.ErrorIs(t, err, authDomain.ErrKeySetUnavailable)
	assert.Equal(t, 1, idp.Fetches())

	idp.SetFailing(false)
	clock.Advance(time.Minute)

	_, err = keySet.Key(ctx, testutil.RSAKeyID)
	assert.NoError(t, err)
}

func TestRemoteKeySet_RefreshKeepsKeysOnFailure(t *testing.T) {
	idp := testutil.NewIdentityProvider(t)
	keySet := newTestKeySet(idp, clockwork.NewFakeClock())
	ctx := context.Background()

	require.NoError(t, keySet.Refresh(ctx))

	idp.SetFailing(true)
	assert.ErrorIs(t, keySet.Refresh(ctx), authDomain.ErrKeySetUnavailable)

	_, err := keySet.Key(ctx, testutil.RSAKeyID)
	assert.NoError(t, err)
}

func TestRemoteKeySet_SkipsUnusableKeys(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"keys":[
			{"kty":"RSA","kid":"enc","use":"enc","n":"AQAB","e":"AQAB"},
			{"kty":"oct","kid":"hmac","k":"c2VjcmV0"},
			{"kty":"RSA","use":"sig","n":"AQAB","e":"AQAB"}
		]}`)
	}))
	defer server.Close()

	keySet := NewRemoteKeySet(server.URL, server.Client(), time.Second, clockwork.NewFakeClock(), newTestLogger())

	err := keySet.Refresh(context.Background())

	assert.ErrorIs(t, err, authDomain.ErrKeySetUnavailable)
	assert.Empty(t, keySet.KeyIDs())
}

func TestRemoteKeySet_CanceledContext(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()
	defer close(release)

	keySet := NewRemoteKeySet(server.URL, server.Client(), time.Second, clockwork.NewFakeClock(), newTestLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := keySet.Key(ctx, "any")

	assert.ErrorIs(t, err, authDomain.ErrKeySetUnavailable)
}
