package blindnet

import (
	"fmt"
	"strings"

	"github.com/aussiebroadwan/blindnet/pkg/jwtx"
)

// CreateTempUserToken mints a short-lived token (tjwt) for a data sender who
// isn't registered with the application, scoped to the group they send to.
func (c *Client) CreateTempUserToken(groupID string) (string, error) {
	if err := requireID("group id", groupID); err != nil {
		return "", err
	}

	claims := jwtx.NewTempUserClaims(c.cfg.AppID, groupID, c.cfg.TempUserTokenTTL, c.now())
	return c.sign(jwtx.TypeTempUser, claims)
}

// CreateUserToken mints a token (jwt) for a registered application user.
func (c *Client) CreateUserToken(userID, groupID string) (string, error) {
	if err := requireID("user id", userID); err != nil {
		return "", err
	}
	if err := requireID("group id", groupID); err != nil {
		return "", err
	}

	claims := jwtx.NewUserClaims(c.cfg.AppID, userID, groupID, c.cfg.UserTokenTTL, c.now())
	return c.sign(jwtx.TypeUser, claims)
}

// RefreshClientToken mints a new client credential (cjwt) and replaces the
// cached one. Lifecycle calls do this on their own after a 401, so callers
// rarely need it.
func (c *Client) RefreshClientToken() error {
	claims := jwtx.NewClientClaims(c.cfg.AppID, c.cfg.ClientTokenTTL, c.now())
	token, err := c.sign(jwtx.TypeClient, claims)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.clientToken = token
	c.mu.Unlock()

	c.logger.Info("client token refreshed", "tid", claims.TID, "exp", claims.Expiry())
	return nil
}

func (c *Client) sign(typ jwtx.TokenType, claims jwtx.Claims) (string, error) {
	token, err := c.signer.Sign(typ, claims)
	if err != nil {
		c.logger.Error("token signing failed", "typ", typ, "error", err)
		return "", signingError(err)
	}
	return token, nil
}

func requireID(name, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidArgument, name)
	}
	return nil
}
