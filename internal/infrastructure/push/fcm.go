// Package push provides the FCM-backed push notification transport.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for Firebase Cloud Messaging.
type Config struct {
	ServerKey string
	Endpoint  string
	Timeout   time.Duration
}

// Client sends push notifications through the FCM HTTP API.
type Client struct {
	httpClient *http.Client
	serverKey  string
	endpoint   string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		serverKey:  cfg.ServerKey,
		endpoint:   cfg.Endpoint,
	}
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmMessage struct {
	To           string          `json:"to"`
	Notification fcmNotification `json:"notification"`
}

type fcmResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
}

// SendPush delivers one notification to a device token. FCM reports
// per-token failures inside a 200 response, so the body is inspected too.
func (c *Client) SendPush(ctx context.Context, deviceToken, title, body string) error {
	payload, err := json.Marshal(fcmMessage{
		To:           deviceToken,
		Notification: fcmNotification{Title: title, Body: body},
	})
	if err != nil {
		return fmt.Errorf("fcm marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("fcm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fcm send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("fcm send: status %d: %s", resp.StatusCode, string(detail))
	}

	var result fcmResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("fcm response: %w", err)
	}
	if result.Failure > 0 {
		return fmt.Errorf("fcm send: rejected for device token")
	}
	return nil
}
