package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrTypeMismatch = errors.New("jwtx: token type mismatch")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// EdDSAVerifier validates tokens signed with an application's Ed25519 key.
// The remote service does the real verification; this is what a host (or a
// test) uses to check tokens locally.
type EdDSAVerifier struct {
	pub ed25519.PublicKey
	now func() time.Time
}

// NewVerifierEdDSA creates a verifier for a single Ed25519 public key.
func NewVerifierEdDSA(pub ed25519.PublicKey) *EdDSAVerifier {
	return &EdDSAVerifier{pub: pub, now: time.Now}
}

// WithClock overrides the clock used for expiry checks.
func (v *EdDSAVerifier) WithClock(now func() time.Time) *EdDSAVerifier {
	return &EdDSAVerifier{pub: v.pub, now: now}
}

// Verify validates the token string, checks that its "typ" header is want and
// that the claims have exactly the shape of that token kind.
func (v *EdDSAVerifier) Verify(tokenStr string, want TokenType) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		typ, _ := t.Header["typ"].(string)
		if TokenType(typ) != want {
			return nil, fmt.Errorf("%w: got %q, want %q", ErrTypeMismatch, typ, want)
		}
		return v.pub, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTypeMismatch):
			return nil, ErrTypeMismatch
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSig
		}
		return nil, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaim
	}

	if err := claims.ValidateShape(want); err != nil {
		return nil, err
	}

	return claims, nil
}
