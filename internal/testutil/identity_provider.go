package testutil

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

// Key ids published by a new IdentityProvider.
const (
	RSAKeyID = "rsa-1"
	ECKeyID  = "ec-1"
)

// TestAudience is the audience stamped on tokens by IdentityProvider.Claims.
const TestAudience = "casting"

type signingKey struct {
	kid     string
	method  jwt.SigningMethod
	private crypto.Signer
}

// IdentityProvider is an in-process identity provider: it publishes a JWKS
// document over httptest and signs tokens with the matching private keys.
//
//	idp := testutil.NewIdentityProvider(t)
//	token := idp.Sign(t, testutil.RSAKeyID, idp.Claims("auth0|producer", time.Now(), "get:movies"))
type IdentityProvider struct {
	Server *httptest.Server

	mu      sync.Mutex
	keys    []signingKey
	failing bool
	fetches atomic.Int32
}

// NewIdentityProvider starts a provider publishing one RS256 and one ES256 key.
// The server is closed when the test finishes.
func NewIdentityProvider(t *testing.T) *IdentityProvider {
	t.Helper()

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	p := &IdentityProvider{
		keys: []signingKey{
			{kid: RSAKeyID, method: jwt.SigningMethodRS256, private: rsaKey},
			{kid: ECKeyID, method: jwt.SigningMethodES256, private: ecKey},
		},
	}
	p.Server = httptest.NewServer(http.HandlerFunc(p.serveKeys))
	t.Cleanup(p.Server.Close)

	return p
}

// JWKSURL returns the key set URL.
func (p *IdentityProvider) JWKSURL() string {
	return p.Server.URL + "/.well-known/jwks.json"
}

// Issuer returns the issuer URL with a trailing slash.
func (p *IdentityProvider) Issuer() string {
	return p.Server.URL + "/"
}

// HTTPClient returns a client whose idle connections are closed with the server.
func (p *IdentityProvider) HTTPClient() *http.Client {
	return p.Server.Client()
}

// Fetches returns how many times the key set was requested.
func (p *IdentityProvider) Fetches() int {
	return int(p.fetches.Load())
}

// SetFailing makes the key set endpoint answer 500 while failing is true.
func (p *IdentityProvider) SetFailing(failing bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failing = failing
}

// AddRSAKey publishes a new RS256 key and returns its key id.
func (p *IdentityProvider) AddRSAKey(t *testing.T) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	p.mu.Lock()
	defer p.mu.Unlock()
	kid := fmt.Sprintf("rsa-%d", len(p.keys)+1)
	p.keys = append(p.keys, signingKey{kid: kid, method: jwt.SigningMethodRS256, private: key})
	return kid
}

// Claims returns registered claims for subject issued now and valid for one
// hour, plus a "permissions" array.
func (p *IdentityProvider) Claims(subject string, now time.Time, permissions ...string) jwt.MapClaims {
	if permissions == nil {
		permissions = []string{}
	}
	return jwt.MapClaims{
		"iss":         p.Issuer(),
		"sub":         subject,
		"aud":         []string{TestAudience},
		"iat":         now.Unix(),
		"exp":         now.Add(time.Hour).Unix(),
		"permissions": permissions,
	}
}

// Sign signs claims with the private key published under kid.
func (p *IdentityProvider) Sign(t *testing.T, kid string, claims jwt.Claims) string {
	t.Helper()

	p.mu.Lock()
	var found *signingKey
	for i := range p.keys {
		if p.keys[i].kid == kid {
			found = &p.keys[i]
		}
	}
	p.mu.Unlock()
	require.NotNil(t, found, "unknown key id %q", kid)

	return SignToken(t, found.method, kid, found.private, claims)
}

// SignToken signs claims with an arbitrary method and key.
func SignToken(t *testing.T, method jwt.SigningMethod, kid string, key any, claims jwt.Claims) string {
	t.Helper()

	token := jwt.NewWithClaims(method, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

// Segment base64url-encodes raw JSON for hand-built tokens.
func Segment(raw string) string {
	return jwt.EncodeSegment([]byte(raw))
}

// JoinSegments builds a compact token from already encoded segments.
func JoinSegments(segments ...string) string {
	return strings.Join(segments, ".")
}

func (p *IdentityProvider) serveKeys(w http.ResponseWriter, r *http.Request) {
	p.fetches.Add(1)

	p.mu.Lock()
	failing := p.failing
	keys := make([]map[string]string, 0, len(p.keys))
	for _, k := range p.keys {
		keys = append(keys, publicJWK(k))
	}
	p.mu.Unlock()

	if failing {
		http.Error(w, "unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"keys": keys})
}

func publicJWK(k signingKey) map[string]string {
	switch pub := k.private.Public().(type) {
	case *rsa.PublicKey:
		return map[string]string{
			"kty": "RSA",
			"kid": k.kid,
			"use": "sig",
			"alg": k.method.Alg(),
			"n":   jwt.EncodeSegment(pub.N.Bytes()),
			"e":   jwt.EncodeSegment(big.NewInt(int64(pub.E)).Bytes()),
		}
	case *ecdsa.PublicKey:
		point, _ := pub.Bytes()
		size := (len(point) - 1) / 2
		return map[string]string{
			"kty": "EC",
			"kid": k.kid,
			"use": "sig",
			"alg": k.method.Alg(),
			"crv": pub.Curve.Params().Name,
			"x":   jwt.EncodeSegment(point[1 : 1+size]),
			"y":   jwt.EncodeSegment(point[1+size:]),
		}
	default:
		return map[string]string{"kid": k.kid}
	}
}
