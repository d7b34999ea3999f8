package ports

import (
	"context"

	"github.com/parceltrack/tracking-system/internal/core/domain"
)

// Channel is the uniform wrapper around one outbound notification delivery
// mechanism. Send resolves the status to template text internally and returns
// an error only for delivery failures; unknown statuses are never an error.
type Channel interface {
	Kind() domain.NotificationChannel
	Send(ctx context.Context, recipient string, status domain.ShipmentStatus) error
}
