package blindnet

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/blindnet/pkg/httpx"
	"github.com/aussiebroadwan/blindnet/pkg/idx"
	"github.com/aussiebroadwan/blindnet/pkg/slogx"
)

// attempt tracks where a lifecycle request is in its two-step lifecycle.
type attempt int

const (
	firstAttempt attempt = iota + 1
	secondAttempt
)

// deleteResource runs the lifecycle request state machine:
//
//	200                    -> done
//	401 on first attempt   -> refresh client token, resend
//	401 on second attempt  -> ErrAuthentication
//	anything else          -> *ServiceError
func (c *Client) deleteResource(ctx context.Context, op operation, what, id string) error {
	if err := requireID(what, id); err != nil {
		return err
	}

	path := op.path(id)
	logger := slogx.FromContext(ctx, c.logger).With("op", op.name, "path", path)

	for at := firstAttempt; ; at++ {
		reqID := idx.New().String()
		log := logger.With("attempt", int(at), "req_id", reqID)

		status, err := c.send(ctx, http.MethodDelete, path, reqID)
		if err != nil {
			log.Warn("request failed", "error", err)
			return fmt.Errorf("blindnet: %s: %w", op.name, err)
		}

		switch {
		case status == http.StatusOK:
			log.Debug("request succeeded")
			return nil

		case status == http.StatusUnauthorized && at == firstAttempt:
			log.Info("client token rejected, refreshing")
			if err := c.RefreshClientToken(); err != nil {
				return err
			}

		case status == http.StatusUnauthorized:
			log.Warn("client token rejected after refresh")
			return fmt.Errorf("%s: %w", op.name, ErrAuthentication)

		default:
			log.Warn("unexpected status", "status", status)
			return &ServiceError{
				Op:         op.name,
				Message:    op.message + id,
				StatusCode: status,
			}
		}
	}
}

// send performs one authenticated request with the current client token,
// tagged with reqID, and returns the status code. The body is always drained
// and closed.
func (c *Client) send(ctx context.Context, method, path, reqID string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.ClientToken())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(slogx.RequestIDHeader, reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer httpx.DrainAndClose(resp)

	return resp.StatusCode, nil
}
