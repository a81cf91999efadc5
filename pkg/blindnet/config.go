package blindnet

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/blindnet/pkg/httpx"
	"github.com/aussiebroadwan/blindnet/pkg/jwtx"
)

const (
	// DefaultAPIEndpoint is the production blindnet API.
	DefaultAPIEndpoint = "https://api.blindnet.io"

	// DefaultTimeout bounds a single HTTP attempt when no HTTPClient is given.
	DefaultTimeout = 10 * time.Second
)

// Config configures a Client. Zero values fall back to the documented defaults.
type Config struct {
	AppKey      []byte // Required: Ed25519 private key, PEM (PKCS8), raw, or base64 of raw
	AppID       string // Required: application ID, carried as the "app" claim
	APIEndpoint string // Optional: API base URL (default: https://api.blindnet.io)

	HTTPClient *http.Client  // Optional: client used for lifecycle calls (default: one with Timeout)
	Timeout    time.Duration // Optional: per-attempt timeout when HTTPClient is nil (default: 10s)

	ClientTokenTTL   time.Duration // Optional: client credential lifetime (default: 24h)
	TempUserTokenTTL time.Duration // Optional: temporary-user token lifetime (default: 30m)
	UserTokenTTL     time.Duration // Optional: registered-user token lifetime (default: 12h)

	RateLimit *httpx.RateLimitConfig // Optional: cap on outbound lifecycle requests (default: none)
	Logger    *slog.Logger           // Optional: (default: slog.Default())
	Now       func() time.Time       // Optional: clock used for token expiry (default: time.Now)

	// Set by Init: AppKey is PEM or base64 text, never raw key bytes
	keyText bool
}

// Option tweaks the Config built by Init.
type Option func(*Config)

// WithAPIEndpoint points the client at a different API base URL.
func WithAPIEndpoint(endpoint string) Option {
	return func(c *Config) { c.APIEndpoint = endpoint }
}

// WithHTTPClient sets the HTTP client used for lifecycle requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Config) { c.HTTPClient = h }
}

// WithTimeout sets the per-attempt request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithClientTokenTTL overrides the client credential lifetime.
func WithClientTokenTTL(d time.Duration) Option {
	return func(c *Config) { c.ClientTokenTTL = d }
}

// WithTempUserTokenTTL overrides the temporary-user token lifetime.
func WithTempUserTokenTTL(d time.Duration) Option {
	return func(c *Config) { c.TempUserTokenTTL = d }
}

// WithUserTokenTTL overrides the registered-user token lifetime.
func WithUserTokenTTL(d time.Duration) Option {
	return func(c *Config) { c.UserTokenTTL = d }
}

// WithRateLimit caps outbound lifecycle requests.
func WithRateLimit(rl httpx.RateLimitConfig) Option {
	return func(c *Config) { c.RateLimit = &rl }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithClock sets the clock used when computing token expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Config) { c.Now = now }
}

// withDefaults returns a copy of c with every unset field filled in.
func (c Config) withDefaults() Config {
	if c.APIEndpoint == "" {
		c.APIEndpoint = DefaultAPIEndpoint
	}
	c.APIEndpoint = strings.TrimSuffix(c.APIEndpoint, "/")

	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.ClientTokenTTL == 0 {
		c.ClientTokenTTL = jwtx.DefaultClientTokenTTL
	}
	if c.TempUserTokenTTL == 0 {
		c.TempUserTokenTTL = jwtx.DefaultTempUserTokenTTL
	}
	if c.UserTokenTTL == 0 {
		c.UserTokenTTL = jwtx.DefaultUserTokenTTL
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Validate checks everything except the key material, which New parses.
// Call it on a Config that has been through withDefaults.
func (c Config) Validate() error {
	if len(c.AppKey) == 0 {
		return configError(errors.New("application key is required"))
	}
	if strings.TrimSpace(c.AppID) == "" {
		return configError(errors.New("application id is required"))
	}

	u, err := url.Parse(c.APIEndpoint)
	if err != nil {
		return configError(fmt.Errorf("invalid api endpoint: %w", err))
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return configError(fmt.Errorf("api endpoint %q must be an absolute http(s) URL", c.APIEndpoint))
	}

	if c.ClientTokenTTL < 0 || c.TempUserTokenTTL < 0 || c.UserTokenTTL < 0 {
		return configError(errors.New("token lifetimes must be positive"))
	}

	if c.RateLimit != nil {
		if err := c.RateLimit.Validate(); err != nil {
			return configError(err)
		}
	}

	return nil
}
