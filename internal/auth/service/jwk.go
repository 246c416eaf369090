package service

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/golang-jwt/jwt/v4"
)

// jsonWebKeySet is the document published at the key set URL.
type jsonWebKeySet struct {
	Keys []jsonWebKey `json:"keys"`
}

// jsonWebKey holds the public members of an RSA or EC key.
type jsonWebKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`

	// RSA
	N string `json:"n"`
	E string `json:"e"`

	// EC
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

var (
	errUnsupportedKeyType = errors.New("unsupported key type")
	errUnsupportedCurve   = errors.New("unsupported curve")
)

// publicKey decodes the key material into an *rsa.PublicKey or *ecdsa.PublicKey.
func (k jsonWebKey) publicKey() (crypto.PublicKey, error) {
	switch k.Kty {
	case "RSA":
		return k.rsaPublicKey()
	case "EC":
		return k.ecdsaPublicKey()
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedKeyType, k.Kty)
	}
}

func (k jsonWebKey) rsaPublicKey() (*rsa.PublicKey, error) {
	if k.N == "" || k.E == "" {
		return nil, errors.New("missing rsa modulus or exponent")
	}

	n, err := jwt.DecodeSegment(k.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rsa modulus: %w", err)
	}
	e, err := jwt.DecodeSegment(k.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rsa exponent: %w", err)
	}

	exponent := new(big.Int).SetBytes(e)
	if !exponent.IsInt64() || exponent.Int64() < 3 || exponent.Int64() > 1<<31-1 {
		return nil, errors.New("invalid rsa exponent")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(n),
		E: int(exponent.Int64()),
	}, nil
}

func (k jsonWebKey) ecdsaPublicKey() (*ecdsa.PublicKey, error) {
	var curve elliptic.Curve
	switch k.Crv {
	case "P-256":
		curve = elliptic.P256()
	case "P-384":
		curve = elliptic.P384()
	case "P-521":
		curve = elliptic.P521()
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedCurve, k.Crv)
	}

	size := (curve.Params().BitSize + 7) / 8

	x, err := jwt.DecodeSegment(k.X)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ec x coordinate: %w", err)
	}
	y, err := jwt.DecodeSegment(k.Y)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ec y coordinate: %w", err)
	}
	if len(x) > size || len(y) > size {
		return nil, errors.New("ec coordinate too long")
	}

	// Uncompressed point: 0x04 || X || Y, each coordinate left-padded.
	point := make([]byte, 1+2*size)
	point[0] = 4
	copy(point[1+size-len(x):1+size], x)
	copy(point[1+2*size-len(y):], y)

	return ecdsa.ParseUncompressedPublicKey(curve, point)
}
