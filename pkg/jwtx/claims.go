package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType is the value carried in the "typ" header. The remote service
// uses it to tell the three token kinds apart.
type TokenType string

const (
	// TypeClient marks the application's own backend credential.
	TypeClient TokenType = "cjwt"
	// TypeTempUser marks a short-lived token for unregistered data senders.
	TypeTempUser TokenType = "tjwt"
	// TypeUser marks a token for a registered application user.
	TypeUser TokenType = "jwt"
)

// Default lifetimes per token kind. The services that consume these tokens
// expect these values, so only change them if the remote side agrees.
const (
	DefaultClientTokenTTL   = 24 * time.Hour
	DefaultTempUserTokenTTL = 30 * time.Minute
	DefaultUserTokenTTL     = 12 * time.Hour
)

// Claims is the payload of every token we mint. Field order matters for the
// encoded form: uid, app, tid, gid and then exp, which is what the remote
// service has always received.
type Claims struct {
	// User ID, only set on registered-user tokens
	UID string `json:"uid,omitempty"`

	// Application ID
	App string `json:"app"`

	// Token ID, fresh per mint on client and temp-user tokens
	TID string `json:"tid,omitempty"`

	// Group ID the user (or sender) belongs to
	GID string `json:"gid,omitempty"`

	// Only ExpiresAt is ever populated, everything else stays omitted.
	jwt.RegisteredClaims
}

// NewClientClaims builds the claims for a client credential (cjwt).
func NewClientClaims(appID string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		App:              appID,
		TID:              NewTID(),
		RegisteredClaims: expiresAt(now, ttl),
	}
}

// NewTempUserClaims builds the claims for a temporary-user token (tjwt).
func NewTempUserClaims(appID, groupID string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		App:              appID,
		TID:              NewTID(),
		GID:              groupID,
		RegisteredClaims: expiresAt(now, ttl),
	}
}

// NewUserClaims builds the claims for a registered-user token (jwt).
func NewUserClaims(appID, userID, groupID string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		UID:              userID,
		App:              appID,
		GID:              groupID,
		RegisteredClaims: expiresAt(now, ttl),
	}
}

// NewTID returns a random UUIDv4 for the "tid" claim.
func NewTID() string {
	return uuid.NewString()
}

func expiresAt(now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(ttl))}
}

// Expiry returns the exp claim, or the zero time when it is missing.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// ValidateExpiry ensures the token hasn’t expired.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}

// ValidateShape checks that exactly the fields belonging to typ are set.
func (c *Claims) ValidateShape(typ TokenType) error {
	if c.App == "" || c.ExpiresAt == nil {
		return ErrInvalidClaim
	}

	switch typ {
	case TypeClient:
		if c.TID == "" || c.GID != "" || c.UID != "" {
			return ErrInvalidClaim
		}
	case TypeTempUser:
		if c.TID == "" || c.GID == "" || c.UID != "" {
			return ErrInvalidClaim
		}
	case TypeUser:
		if c.UID == "" || c.GID == "" || c.TID != "" {
			return ErrInvalidClaim
		}
	default:
		return ErrTypeMismatch
	}

	return nil
}
