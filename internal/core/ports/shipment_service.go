package ports

import (
	"context"
	"time"
)

// PersonInput holds customer contact details. Email and Phone are optional;
// the notification fan-out only uses the channels whose identifiers exist.
type PersonInput struct {
	Name  string
	Email string
	Phone string
}

// CoordinatesInput holds geographic coordinates.
type CoordinatesInput struct {
	Lat float64
	Lng float64
}

// AddressInput holds a physical location.
type AddressInput struct {
	Address     string
	City        string
	ZipCode     string
	Coordinates CoordinatesInput
}

// CreateShipmentInput carries all data needed to create a new shipment.
type CreateShipmentInput struct {
	Customer       PersonInput
	Origin         AddressInput
	Destination    AddressInput
	Description    string
	AssignedDriver string
	CreatedBy      string
	IdempotencyKey string
}

// ShipmentResult is returned by the service after creating a shipment.
type ShipmentResult struct {
	TrackingNumber    string
	Status            string
	CreatedAt         time.Time
	EstimatedDelivery time.Time
	// AlreadyExisted is true when the Idempotency-Key matched an existing shipment.
	AlreadyExisted bool
}

// GetShipmentInput carries the parameters needed to retrieve a single shipment.
type GetShipmentInput struct {
	TrackingNumber string
	// Role and Subject enforce access scoping: customers only see their own shipments.
	Role    string
	Subject string
}

// StatusHistoryItem is a single entry in the shipment's status history.
type StatusHistoryItem struct {
	Status    string
	Timestamp time.Time
	Notes     string
}

// ShipmentDetail is the full shipment view returned by GetShipment.
type ShipmentDetail struct {
	TrackingNumber    string
	Status            string
	Description       string
	AssignedDriver    string
	CreatedAt         time.Time
	EstimatedDelivery time.Time
	Customer          PersonInput
	Origin            AddressInput
	Destination       AddressInput
	StatusHistory     []StatusHistoryItem
}

// TrackingInfo is the public lookup view: status and history only, with all
// customer contact fields withheld.
type TrackingInfo struct {
	TrackingNumber    string
	Status            string
	EstimatedDelivery time.Time
	StatusHistory     []StatusHistoryItem
}

// UpdateStatusInput carries a manual status correction.
type UpdateStatusInput struct {
	TrackingNumber string
	Status         string
	Notes          string
}

// ListShipmentsInput carries all parameters for the list endpoint.
type ListShipmentsInput struct {
	Role    string
	Subject string
	Status  string
	Driver  string
	Page    int
	Limit   int
}

// ShipmentSummary is the lightweight view used in list responses (no status_history).
type ShipmentSummary struct {
	TrackingNumber    string
	Status            string
	Customer          PersonInput
	Origin            AddressInput
	Destination       AddressInput
	AssignedDriver    string
	CreatedAt         time.Time
	EstimatedDelivery time.Time
}

// ListShipmentsResult is returned by ListShipments.
type ListShipmentsResult struct {
	Items      []ShipmentSummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ShipmentService defines use-case operations for shipments.
type ShipmentService interface {
	CreateShipment(ctx context.Context, input CreateShipmentInput) (*ShipmentResult, error)
	GetShipment(ctx context.Context, input GetShipmentInput) (*ShipmentDetail, error)
	ListShipments(ctx context.Context, input ListShipmentsInput) (*ListShipmentsResult, error)
	// UpdateStatus applies a manual status correction. Only defined statuses
	// are accepted on this path.
	UpdateStatus(ctx context.Context, input UpdateStatusInput) error
	// Track is the unauthenticated public lookup.
	Track(ctx context.Context, trackingNumber string) (*TrackingInfo, error)
}
