// Package notification contains the channel adapters used by the fan-out
// orchestrator. Each adapter wraps one outbound transport behind the uniform
// ports.Channel contract and resolves status text through the shared message
// catalog; unknown statuses fall back to the generic message and are never an
// error.
package notification

import (
	"context"
	"fmt"

	"github.com/parceltrack/tracking-system/internal/core/domain"
)

// EmailTransport is the outbound email boundary: an external service
// accepting (to, subject, body).
type EmailTransport interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// EmailChannel notifies customers by email.
type EmailChannel struct {
	transport EmailTransport
}

func NewEmailChannel(transport EmailTransport) *EmailChannel {
	return &EmailChannel{transport: transport}
}

func (c *EmailChannel) Kind() domain.NotificationChannel {
	return domain.ChannelEmail
}

// Send delivers the status message to the recipient address. Transport errors
// are returned as-is for the orchestrator to record; they never panic.
func (c *EmailChannel) Send(ctx context.Context, recipient string, status domain.ShipmentStatus) error {
	subject := "Shipment update"
	if status.Known() {
		subject = fmt.Sprintf("Shipment update: %s", status)
	}
	if err := c.transport.SendEmail(ctx, recipient, subject, domain.MessageFor(status)); err != nil {
		return fmt.Errorf("email send: %w", err)
	}
	return nil
}
