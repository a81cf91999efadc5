package httpx

import (
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window
	RequestsPerWindow int
	// Window is the time window for rate limiting
	Window time.Duration
	// Burst allows for temporary bursts above the rate limit
	Burst int
}

// ErrInvalidRateLimit is returned for a config that would never let a request through.
var ErrInvalidRateLimit = errors.New("httpx: invalid rate limit config")

// Validate checks the config describes a usable limit.
func (c RateLimitConfig) Validate() error {
	if c.RequestsPerWindow <= 0 || c.Window <= 0 || c.Burst <= 0 {
		return ErrInvalidRateLimit
	}
	return nil
}

// NewLimiter converts the config into a token bucket.
func NewLimiter(c RateLimitConfig) (*rate.Limiter, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	// Calculate rate per second from requests per window
	ratePerSecond := float64(c.RequestsPerWindow) / c.Window.Seconds()
	return rate.NewLimiter(rate.Limit(ratePerSecond), c.Burst), nil
}

// RateLimitedTransport holds outbound requests until the limiter lets them
// through. Waiting respects the request context, so a cancelled or timed-out
// call gives up instead of queueing forever.
type RateLimitedTransport struct {
	Base    http.RoundTripper
	Limiter *rate.Limiter
}

// NewRateLimitedTransport wraps base (http.DefaultTransport when nil).
func NewRateLimitedTransport(base http.RoundTripper, c RateLimitConfig) (*RateLimitedTransport, error) {
	limiter, err := NewLimiter(c)
	if err != nil {
		return nil, err
	}
	if base == nil {
		base = http.DefaultTransport
	}
	return &RateLimitedTransport{Base: base, Limiter: limiter}, nil
}

func (t *RateLimitedTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if err := t.Limiter.Wait(r.Context()); err != nil {
		return nil, err
	}
	return t.Base.RoundTrip(r)
}
