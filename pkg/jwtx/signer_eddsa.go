package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// EdDSASigner implements the Signer interface using Ed25519.
type EdDSASigner struct {
	kid string
	key ed25519.PrivateKey
	pub ed25519.PublicKey
	alg string
}

// NewSignerEdDSA wraps an Ed25519 private key. The kid is only used when
// publishing the public key as a JWK, it never ends up in token headers.
func NewSignerEdDSA(kid string, key ed25519.PrivateKey) (*EdDSASigner, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.New("jwtx: invalid Ed25519 private key size")
	}

	// Copy so the caller can't mutate our key afterwards
	k := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	copy(k, key)

	return &EdDSASigner{
		kid: kid,
		key: k,
		pub: k.Public().(ed25519.PublicKey),
		alg: jwt.SigningMethodEdDSA.Alg(),
	}, nil
}

func (s *EdDSASigner) Alg() string                  { return s.alg }
func (s *EdDSASigner) KID() string                  { return s.kid }
func (s *EdDSASigner) PublicKey() ed25519.PublicKey { return s.pub }

// Sign encodes the header {"alg":"EdDSA","typ":typ} and the claims, signs
// "header.payload" with the private key and returns the three-part token.
func (s *EdDSASigner) Sign(typ TokenType, claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["typ"] = string(typ)

	signed, err := t.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSign, err)
	}
	return signed, nil
}

// PublicJWK returns the public half as a JWK, handy for registering the
// application key with the remote service.
func (s *EdDSASigner) PublicJWK() JWK {
	return NewEd25519JWK(s.kid, "sig", s.alg, s.pub)
}

// Validate does a quick sanity check to make sure we actually have keys.
func (s *EdDSASigner) Validate() error {
	if s.key == nil || s.pub == nil {
		return errors.New("jwtx: nil Ed25519 key")
	}
	if len(s.key) != ed25519.PrivateKeySize {
		return errors.New("jwtx: invalid Ed25519 private key size")
	}
	if len(s.pub) != ed25519.PublicKeySize {
		return errors.New("jwtx: invalid Ed25519 public key size")
	}
	return nil
}
