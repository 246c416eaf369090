package service

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"math/big"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONWebKey_RSA(t *testing.T) {
	private, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	jwk := jsonWebKey{
		Kty: "RSA",
		Kid: "rsa",
		N:   jwt.EncodeSegment(private.N.Bytes()),
		E:   jwt.EncodeSegment(big.NewInt(int64(private.E)).Bytes()),
	}

	key, err := jwk.publicKey()
	require.NoError(t, err)

	rsaKey, ok := key.(*rsa.PublicKey)
	require.True(t, ok)
	assert.True(t, private.PublicKey.Equal(rsaKey))
}

func TestJSONWebKey_EC(t *testing.T) {
	for _, curve := range []elliptic.Curve{elliptic.P256(), elliptic.P384(), elliptic.P521()} {
		t.Run(curve.Params().Name, func(t *testing.T) {
			private, err := ecdsa.GenerateKey(curve, rand.Reader)
			require.NoError(t, err)

			point, err := private.PublicKey.Bytes()
			require.NoError(t, err)
			size := (len(point) - 1) / 2

			jwk := jsonWebKey{
				Kty: "EC",
				Crv: curve.Params().Name,
				X:   jwt.EncodeSegment(point[1 : 1+size]),
				Y:   jwt.EncodeSegment(point[1+size:]),
			}

			key, err := jwk.publicKey()
			require.NoError(t, err)

			ecKey, ok := key.(*ecdsa.PublicKey)
			require.True(t, ok)
			assert.True(t, private.PublicKey.Equal(ecKey))
		})
	}
}

func TestJSONWebKey_Invalid(t *testing.T) {
	tests := []struct {
		name string
		jwk  jsonWebKey
	}{
		{name: "unsupported key type", jwk: jsonWebKey{Kty: "oct"}},
		{name: "rsa without modulus", jwk: jsonWebKey{Kty: "RSA", E: "AQAB"}},
		{name: "rsa with bad encoding", jwk: jsonWebKey{Kty: "RSA", N: "!!!", E: "AQAB"}},
		{name: "rsa with exponent one", jwk: jsonWebKey{Kty: "RSA", N: "AQAB", E: "AQ"}},
		{name: "unsupported curve", jwk: jsonWebKey{Kty: "EC", Crv: "secp256k1", X: "AQ", Y: "AQ"}},
		{name: "ec point not on curve", jwk: jsonWebKey{Kty: "EC", Crv: "P-256", X: "AQ", Y: "AQ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := tt.jwk.publicKey()
			assert.Error(t, err)
			assert.Nil(t, key)
		})
	}
}
