package handler

type locationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// locationUpdateRequest is the inbound realtime event. Status is required but
// deliberately unconstrained: unknown values still broadcast and fall back to
// the generic notification text.
type locationUpdateRequest struct {
	TrackingNumber string          `json:"tracking_number" validate:"required"`
	Location       locationRequest `json:"location"`
	Status         string          `json:"status"          validate:"required"`
	DeviceToken    string          `json:"device_token,omitempty"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}
