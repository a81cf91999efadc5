package cryptox

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey reports key material that isn't a usable Ed25519 private key.
var ErrInvalidKey = errors.New("cryptox: invalid Ed25519 private key")

// GenerateEd25519Key generates a new Ed25519 private key.
// Ed25519 keys are always 256 bits (32 bytes) and don't require a size parameter.
// Returns the private key in PEM format (PKCS8).
func GenerateEd25519Key() ([]byte, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate Ed25519 key: %w", err)
	}

	// Ed25519 keys are always marshaled as PKCS8
	privateKeyBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to marshal PKCS8 key: %w", err)
	}

	privateKeyPEM := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: privateKeyBytes,
	}

	return pem.EncodeToMemory(privateKeyPEM), nil
}

// EncodeEd25519Key returns the standard base64 form of the full 64-byte key,
// which is how application keys are usually handed out.
func EncodeEd25519Key(key ed25519.PrivateKey) string {
	return base64.StdEncoding.EncodeToString(key)
}

// ParseEd25519PrivateKey accepts an application key in any of the forms we
// see in the wild:
//
//   - PEM "PRIVATE KEY" (PKCS8), as produced by GenerateEd25519Key
//   - raw 64-byte private key or 32-byte seed
//   - standard or URL-safe base64 (padded or not) of either raw form
func ParseEd25519PrivateKey(material []byte) (ed25519.PrivateKey, error) {
	if len(bytes.TrimSpace(material)) == 0 {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidKey)
	}

	// Raw bytes first. The base64 forms of a seed or key are 43, 44, 86 or
	// 88 chars long so they can't be mistaken for raw material.
	if key, ok := fromRaw(material); ok {
		return key, nil
	}

	return ParseEd25519PrivateKeyText(string(material))
}

// ParseEd25519PrivateKeyText is ParseEd25519PrivateKey for key text: only
// PEM and base64 are accepted. A 32 or 64 character string is never taken
// as raw key bytes.
func ParseEd25519PrivateKeyText(text string) (ed25519.PrivateKey, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidKey)
	}

	if strings.HasPrefix(trimmed, "-----BEGIN") {
		return parsePEM([]byte(trimmed))
	}

	decoded, err := decodeBase64(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: not PEM or base64", ErrInvalidKey)
	}

	key, ok := fromRaw(decoded)
	if !ok {
		return nil, fmt.Errorf("%w: decoded key is %d bytes, want %d or %d",
			ErrInvalidKey, len(decoded), ed25519.SeedSize, ed25519.PrivateKeySize)
	}
	return key, nil
}

func parsePEM(pemKey []byte) (ed25519.PrivateKey, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, fmt.Errorf("%w: invalid PEM", ErrInvalidKey)
	}

	if block.Type != "PRIVATE KEY" {
		return nil, fmt.Errorf("%w: expected PRIVATE KEY, got %q (Ed25519 requires PKCS8)", ErrInvalidKey, block.Type)
	}

	priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: parse PKCS8: %w", ErrInvalidKey, err)
	}

	key, ok := priv.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an Ed25519 key", ErrInvalidKey)
	}
	return key, nil
}

func fromRaw(b []byte) (ed25519.PrivateKey, bool) {
	switch len(b) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(b), true
	case ed25519.PrivateKeySize:
		key := ed25519.NewKeyFromSeed(b[:ed25519.SeedSize])
		// The second half must be the public key derived from the seed,
		// otherwise every signature we make will fail to verify.
		if !bytes.Equal(key[ed25519.SeedSize:], b[ed25519.SeedSize:]) {
			return nil, false
		}
		return key, true
	default:
		return nil, false
	}
}

func decodeBase64(s string) ([]byte, error) {
	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}

	var lastErr error
	for _, enc := range encodings {
		b, err := enc.DecodeString(strings.TrimSpace(s))
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
