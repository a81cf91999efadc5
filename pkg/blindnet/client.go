package blindnet

import (
	"crypto/ed25519"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aussiebroadwan/blindnet/pkg/cryptox"
	"github.com/aussiebroadwan/blindnet/pkg/httpx"
	"github.com/aussiebroadwan/blindnet/pkg/jwtx"
	"github.com/aussiebroadwan/blindnet/pkg/slogx"
)

// Client mints tokens for an application and calls the blindnet lifecycle
// endpoints on its behalf. It is safe for concurrent use.
type Client struct {
	cfg        Config
	signer     jwtx.Signer
	pub        ed25519.PublicKey
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time

	// Current client credential, swapped whole on refresh
	mu          sync.RWMutex
	clientToken string
}

// Init creates a Client from a base64 (or PEM) encoded application key and
// an application ID, using the production endpoint unless overridden. Raw
// key bytes are only accepted through New.
func Init(appKey, appID string, opts ...Option) (*Client, error) {
	cfg := Config{
		AppKey:  []byte(appKey),
		AppID:   appID,
		keyText: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return New(cfg)
}

// New creates a Client and mints its first client credential. It never
// touches the network.
func New(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key, err := parseAppKey(cfg)
	if err != nil {
		return nil, configError(err)
	}

	signer, err := jwtx.NewSignerEdDSA(cfg.AppID, key)
	if err != nil {
		return nil, configError(err)
	}

	httpClient, err := buildHTTPClient(cfg)
	if err != nil {
		return nil, configError(err)
	}

	// The signer holds its own copy, don't keep the raw key around twice
	cfg.AppKey = nil

	c := &Client{
		cfg:        cfg,
		signer:     signer,
		pub:        signer.PublicKey(),
		httpClient: httpClient,
		logger:     cfg.Logger.With("component", "blindnet", "app", cfg.AppID),
		now:        cfg.Now,
	}

	if err := c.RefreshClientToken(); err != nil {
		return nil, err
	}

	return c, nil
}

func parseAppKey(cfg Config) (ed25519.PrivateKey, error) {
	if cfg.keyText {
		return cryptox.ParseEd25519PrivateKeyText(string(cfg.AppKey))
	}
	return cryptox.ParseEd25519PrivateKey(cfg.AppKey)
}

// buildHTTPClient layers rate limiting and request logging over either the
// caller's client (copied, never mutated) or a fresh one with cfg.Timeout.
func buildHTTPClient(cfg Config) (*http.Client, error) {
	var hc http.Client
	if cfg.HTTPClient != nil {
		hc = *cfg.HTTPClient
	} else {
		hc = http.Client{Timeout: cfg.Timeout}
	}

	transport := hc.Transport
	if cfg.RateLimit != nil {
		limited, err := httpx.NewRateLimitedTransport(transport, *cfg.RateLimit)
		if err != nil {
			return nil, err
		}
		transport = limited
	}
	hc.Transport = slogx.Transport(transport, cfg.Logger)

	return &hc, nil
}

// ClientToken returns the current client credential.
func (c *Client) ClientToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clientToken
}

// AppID returns the application ID the client was configured with.
func (c *Client) AppID() string { return c.cfg.AppID }

// APIEndpoint returns the API base URL, without a trailing slash.
func (c *Client) APIEndpoint() string { return c.cfg.APIEndpoint }

// PublicKey returns the application's Ed25519 public key, which is what the
// service uses to verify every token this client mints.
func (c *Client) PublicKey() ed25519.PublicKey { return c.pub }

// PublicJWK returns the public key as a JWK with the application ID as kid.
func (c *Client) PublicJWK() jwtx.JWK { return c.signer.PublicJWK() }

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.cfg.APIEndpoint + path
}
