package notification

import (
	"context"
	"fmt"

	"github.com/parceltrack/tracking-system/internal/core/domain"
)

const pushTitle = "Shipment update"

// PushTransport is the outbound push boundary: an external service accepting
// (deviceToken, title, body).
type PushTransport interface {
	SendPush(ctx context.Context, deviceToken, title, body string) error
}

// PushChannel notifies the device that produced the update stream.
type PushChannel struct {
	transport PushTransport
}

func NewPushChannel(transport PushTransport) *PushChannel {
	return &PushChannel{transport: transport}
}

func (c *PushChannel) Kind() domain.NotificationChannel {
	return domain.ChannelPush
}

func (c *PushChannel) Send(ctx context.Context, recipient string, status domain.ShipmentStatus) error {
	if err := c.transport.SendPush(ctx, recipient, pushTitle, domain.MessageFor(status)); err != nil {
		return fmt.Errorf("push send: %w", err)
	}
	return nil
}
