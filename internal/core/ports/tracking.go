package ports

import (
	"context"

	"github.com/parceltrack/tracking-system/internal/core/domain"
)

// LocationUpdateInput is the DTO passed from the transport layer (REST or
// websocket) to the tracking service.
type LocationUpdateInput struct {
	TrackingNumber string
	Location       CoordinatesInput
	Status         string // one of the defined statuses, or any string
	DeviceToken    string // optional
}

// BroadcastPayload is the message republished to every observer of a
// shipment's topic.
type BroadcastPayload struct {
	Location domain.Coordinates `json:"location"`
	Status   string             `json:"status"`
}

// Broadcaster fans a payload out to all current observers of a shipment's
// topic. Delivery is best-effort and fire-and-forget; there is no backlog.
// Publish reports how many observers the payload was handed to.
type Broadcaster interface {
	Publish(trackingNumber string, payload BroadcastPayload) int
}

// TrackingService processes incoming location updates: broadcast first, then
// notification fan-out.
type TrackingService interface {
	Process(ctx context.Context, in LocationUpdateInput) error
}
