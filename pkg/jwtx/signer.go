package jwtx

import "errors"

// Signer is our interface for anything that can sign tokens.
type Signer interface {
	Alg() string
	Sign(typ TokenType, claims Claims) (string, error)
	PublicJWK() JWK
	Validate() error
}

// ErrSign is returned (wrapped) when the underlying signature primitive fails.
var ErrSign = errors.New("jwtx: signing failed")
