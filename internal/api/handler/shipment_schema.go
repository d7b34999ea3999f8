package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type coordinatesRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type addressRequest struct {
	Address     string             `json:"address"      validate:"required"`
	City        string             `json:"city"         validate:"required"`
	ZipCode     string             `json:"zip_code"     validate:"required"`
	Coordinates coordinatesRequest `json:"coordinates"`
}

// customerRequest carries the notification contact fields: email and phone
// are both optional, and each one present enables its channel during fan-out.
type customerRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

// updateStatusRequest is the manual correction payload. The oneof constraint
// is intentional here: operator input is validated against the defined
// statuses, while the realtime ingestion path accepts any string.
type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending dispatched in_transit out_for_delivery delivered"`
	Notes  string `json:"notes"`
}

type createShipmentRequest struct {
	Customer       customerRequest `json:"customer"    validate:"required"`
	Origin         addressRequest  `json:"origin"      validate:"required"`
	Destination    addressRequest  `json:"destination" validate:"required"`
	Description    string          `json:"description" validate:"required"`
	AssignedDriver string          `json:"assigned_driver"`
}

// --- Response types, owned by the transport layer so the JSON contract is
// not coupled to internal service changes. ---

type shipmentLinks struct {
	Self  string `json:"self"`
	Track string `json:"track"`
}

type createShipmentResponse struct {
	TrackingNumber    string        `json:"tracking_number"`
	Status            string        `json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	EstimatedDelivery time.Time     `json:"estimated_delivery"`
	Links             shipmentLinks `json:"_links"`
}

type customerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type coordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type addressResponse struct {
	Address     string              `json:"address"`
	City        string              `json:"city"`
	ZipCode     string              `json:"zip_code"`
	Coordinates coordinatesResponse `json:"coordinates"`
}

type statusHistoryItemResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

type getShipmentResponse struct {
	TrackingNumber    string                      `json:"tracking_number"`
	Status            string                      `json:"status"`
	Description       string                      `json:"description"`
	AssignedDriver    string                      `json:"assigned_driver,omitempty"`
	CreatedAt         time.Time                   `json:"created_at"`
	EstimatedDelivery time.Time                   `json:"estimated_delivery"`
	Customer          customerResponse            `json:"customer"`
	Origin            addressResponse             `json:"origin"`
	Destination       addressResponse             `json:"destination"`
	StatusHistory     []statusHistoryItemResponse `json:"status_history"`
	Links             shipmentLinks               `json:"_links"`
}

// trackShipmentResponse is the public lookup view: no customer contacts.
type trackShipmentResponse struct {
	TrackingNumber    string                      `json:"tracking_number"`
	Status            string                      `json:"status"`
	EstimatedDelivery time.Time                   `json:"estimated_delivery"`
	StatusHistory     []statusHistoryItemResponse `json:"status_history"`
}

// shipmentSummaryResponse is the lightweight item used in list responses.
// It intentionally omits status_history to keep payloads small.
type shipmentSummaryResponse struct {
	TrackingNumber    string           `json:"tracking_number"`
	Status            string           `json:"status"`
	AssignedDriver    string           `json:"assigned_driver,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	EstimatedDelivery time.Time        `json:"estimated_delivery"`
	Customer          customerResponse `json:"customer"`
	Origin            addressResponse  `json:"origin"`
	Destination       addressResponse  `json:"destination"`
	Links             shipmentLinks    `json:"_links"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listShipmentsResponse struct {
	Data       []shipmentSummaryResponse `json:"data"`
	Pagination paginationResponse        `json:"pagination"`
}
