package domain

import (
	"errors"
	"time"
)

// ShipmentStatus represents the lifecycle state of a shipment.
type ShipmentStatus string

const (
	StatusPending        ShipmentStatus = "pending"
	StatusDispatched     ShipmentStatus = "dispatched"
	StatusInTransit      ShipmentStatus = "in_transit"
	StatusOutForDelivery ShipmentStatus = "out_for_delivery"
	StatusDelivered      ShipmentStatus = "delivered"
)

// knownStatuses is the closed set of statuses this system defines. Unknown
// values are still accepted on the realtime path; they only lose their
// per-status notification text.
var knownStatuses = map[ShipmentStatus]struct{}{
	StatusPending:        {},
	StatusDispatched:     {},
	StatusInTransit:      {},
	StatusOutForDelivery: {},
	StatusDelivered:      {},
}

// Known reports whether s is one of the defined shipment statuses.
func (s ShipmentStatus) Known() bool {
	_, ok := knownStatuses[s]
	return ok
}

var ErrShipmentNotFound = errors.New("shipment not found")
var ErrDuplicateShipment = errors.New("shipment already exists")
var ErrForbidden = errors.New("access forbidden")
var ErrMalformedEvent = errors.New("malformed update event")

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Address represents a physical location.
type Address struct {
	Address     string      `json:"address" bson:"address"`
	City        string      `json:"city" bson:"city"`
	ZipCode     string      `json:"zip_code" bson:"zip_code"`
	Coordinates Coordinates `json:"coordinates" bson:"coordinates"`
}

// Person represents a customer contact on a shipment.
type Person struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// StatusHistoryEntry records a single status change on a shipment.
type StatusHistoryEntry struct {
	Status    ShipmentStatus `json:"status" bson:"status"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
	Notes     string         `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Shipment is the core aggregate root.
type Shipment struct {
	ID                string               `json:"id" bson:"_id,omitempty"`
	TrackingNumber    string               `json:"tracking_number" bson:"tracking_number"`
	CreatedBy         string               `json:"created_by" bson:"created_by"`
	Customer          Person               `json:"customer" bson:"customer"`
	Origin            Address              `json:"origin" bson:"origin"`
	Destination       Address              `json:"destination" bson:"destination"`
	Description       string               `json:"description" bson:"description"`
	AssignedDriver    string               `json:"assigned_driver,omitempty" bson:"assigned_driver,omitempty"`
	Status            ShipmentStatus       `json:"status" bson:"status"`
	CreatedAt         time.Time            `json:"created_at" bson:"created_at"`
	EstimatedDelivery time.Time            `json:"estimated_delivery" bson:"estimated_delivery"`
	IdempotencyKey    string               `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	StatusHistory     []StatusHistoryEntry `json:"status_history" bson:"status_history"`
}

// Contact is the read-only view of a shipment used by the notification
// fan-out: just the identifiers needed to reach the customer.
type Contact struct {
	TrackingNumber string
	CustomerEmail  string
	CustomerPhone  string
}

// Contact projects the shipment's customer reach-out fields.
func (s *Shipment) Contact() Contact {
	return Contact{
		TrackingNumber: s.TrackingNumber,
		CustomerEmail:  s.Customer.Email,
		CustomerPhone:  s.Customer.Phone,
	}
}
