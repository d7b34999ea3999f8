package notification

import (
	"context"
	"fmt"

	"github.com/parceltrack/tracking-system/internal/core/domain"
)

// SMSTransport is the outbound SMS boundary: an external gateway accepting
// (to, from, body).
type SMSTransport interface {
	SendSMS(ctx context.Context, to, from, body string) error
}

// SMSChannel notifies customers by text message.
type SMSChannel struct {
	transport SMSTransport
	from      string
}

func NewSMSChannel(transport SMSTransport, from string) *SMSChannel {
	return &SMSChannel{transport: transport, from: from}
}

func (c *SMSChannel) Kind() domain.NotificationChannel {
	return domain.ChannelSMS
}

func (c *SMSChannel) Send(ctx context.Context, recipient string, status domain.ShipmentStatus) error {
	if err := c.transport.SendSMS(ctx, recipient, c.from, domain.MessageFor(status)); err != nil {
		return fmt.Errorf("sms send: %w", err)
	}
	return nil
}
