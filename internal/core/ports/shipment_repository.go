package ports

import (
	"context"

	"github.com/parceltrack/tracking-system/internal/core/domain"
)

// ListShipmentsFilter carries all query parameters for listing shipments.
// CreatedBy is enforced by the service layer for non-admin callers.
type ListShipmentsFilter struct {
	CreatedBy string // empty = no filter (admin); non-empty = scoped to creator
	Status    string // optional: filter by shipment status
	Driver    string // optional: filter by assigned driver
	Page      int    // 1-based
	Limit     int    // max rows per page (capped at 100 by service)
}

// ShipmentRepository defines persistence operations for shipments.
type ShipmentRepository interface {
	Create(ctx context.Context, s *domain.Shipment) error
	// FindByTrackingNumber retrieves a shipment by tracking number.
	// When createdBy is non-empty, the query is additionally scoped to that creator.
	FindByTrackingNumber(ctx context.Context, trackingNumber string, createdBy string) (*domain.Shipment, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Shipment, error)
	// UpdateStatus sets the shipment's status and appends a history entry.
	UpdateStatus(ctx context.Context, trackingNumber string, status domain.ShipmentStatus, notes string) error
	// List returns a page of shipments matching filter and the total count.
	List(ctx context.Context, filter ListShipmentsFilter) ([]*domain.Shipment, int64, error)
}
