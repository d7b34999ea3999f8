// Package email provides the Postmark-backed email transport.
package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

var ErrInvalidConfig = errors.New("email: invalid configuration")

// Config captures the settings for the Postmark transport.
type Config struct {
	ServerToken  string
	AccountToken string
	// Sender is the From address on every outbound email.
	Sender string
}

// Client sends transactional email through Postmark.
type Client struct {
	client *postmark.Client
	sender string
}

// NewClient validates the configuration and returns a ready transport.
// Tokens are required so a misconfigured deployment fails at startup instead
// of silently dropping every email at send time.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: server token is required", ErrInvalidConfig)
	}
	if cfg.Sender == "" {
		return nil, fmt.Errorf("%w: sender address is required", ErrInvalidConfig)
	}
	return &Client{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		sender: cfg.Sender,
	}, nil
}

// SendEmail delivers one message. Postmark reports some failures in the
// response body rather than the transport error, so both are checked.
func (c *Client) SendEmail(ctx context.Context, to, subject, body string) error {
	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:     c.sender,
		To:       to,
		Subject:  subject,
		TextBody: body,
	})
	if err != nil {
		return fmt.Errorf("postmark send: %w", err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("postmark send: %d - %s", resp.ErrorCode, resp.Message)
	}
	return nil
}
