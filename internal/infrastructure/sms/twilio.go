// Package sms provides the Twilio-backed SMS transport.
package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.twilio.com"
	defaultTimeout = 10 * time.Second
)

// Config captures the settings for the Twilio Messages API.
type Config struct {
	AccountSID string
	AuthToken  string
	// BaseURL overrides the Twilio API host, used in tests.
	BaseURL string
	Timeout time.Duration
}

// Client sends text messages through the Twilio Messages REST API.
type Client struct {
	httpClient *http.Client
	accountSID string
	authToken  string
	baseURL    string
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// SendSMS posts one message to the Messages endpoint. Any non-2xx response is
// returned as an error with a truncated body for diagnosis.
func (c *Client) SendSMS(ctx context.Context, to, from, body string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("twilio request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio send: status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
