package handler

import (
	"github.com/parceltrack/tracking-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createShipmentRequest, createdBy, idempotencyKey string) ports.CreateShipmentInput {
	return ports.CreateShipmentInput{
		Customer: ports.PersonInput{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
		Origin:         toAddressInput(req.Origin),
		Destination:    toAddressInput(req.Destination),
		Description:    req.Description,
		AssignedDriver: req.AssignedDriver,
		CreatedBy:      createdBy,
		IdempotencyKey: idempotencyKey,
	}
}

func toAddressInput(a addressRequest) ports.AddressInput {
	return ports.AddressInput{
		Address: a.Address,
		City:    a.City,
		ZipCode: a.ZipCode,
		Coordinates: ports.CoordinatesInput{
			Lat: a.Coordinates.Lat,
			Lng: a.Coordinates.Lng,
		},
	}
}

// --- Service result → HTTP response ---

func links(trackingNumber string) shipmentLinks {
	return shipmentLinks{
		Self:  "/api/shipments/" + trackingNumber,
		Track: "/api/public/track/" + trackingNumber,
	}
}

func toCreateResponse(r *ports.ShipmentResult) createShipmentResponse {
	return createShipmentResponse{
		TrackingNumber:    r.TrackingNumber,
		Status:            r.Status,
		CreatedAt:         r.CreatedAt.UTC(),
		EstimatedDelivery: r.EstimatedDelivery.UTC(),
		Links:             links(r.TrackingNumber),
	}
}

func toGetResponse(d *ports.ShipmentDetail) getShipmentResponse {
	return getShipmentResponse{
		TrackingNumber:    d.TrackingNumber,
		Status:            d.Status,
		Description:       d.Description,
		AssignedDriver:    d.AssignedDriver,
		CreatedAt:         d.CreatedAt.UTC(),
		EstimatedDelivery: d.EstimatedDelivery.UTC(),
		Customer: customerResponse{
			Name:  d.Customer.Name,
			Email: d.Customer.Email,
			Phone: d.Customer.Phone,
		},
		Origin:        toAddressResponse(d.Origin),
		Destination:   toAddressResponse(d.Destination),
		StatusHistory: toStatusHistoryResponse(d.StatusHistory),
		Links:         links(d.TrackingNumber),
	}
}

func toTrackResponse(t *ports.TrackingInfo) trackShipmentResponse {
	return trackShipmentResponse{
		TrackingNumber:    t.TrackingNumber,
		Status:            t.Status,
		EstimatedDelivery: t.EstimatedDelivery.UTC(),
		StatusHistory:     toStatusHistoryResponse(t.StatusHistory),
	}
}

func toAddressResponse(a ports.AddressInput) addressResponse {
	return addressResponse{
		Address: a.Address,
		City:    a.City,
		ZipCode: a.ZipCode,
		Coordinates: coordinatesResponse{
			Lat: a.Coordinates.Lat,
			Lng: a.Coordinates.Lng,
		},
	}
}

func toStatusHistoryResponse(items []ports.StatusHistoryItem) []statusHistoryItemResponse {
	out := make([]statusHistoryItemResponse, len(items))
	for i, item := range items {
		out[i] = statusHistoryItemResponse{
			Status:    item.Status,
			Timestamp: item.Timestamp.UTC(),
			Notes:     item.Notes,
		}
	}
	return out
}

func toListResponse(r *ports.ListShipmentsResult) listShipmentsResponse {
	items := make([]shipmentSummaryResponse, len(r.Items))
	for i, s := range r.Items {
		items[i] = shipmentSummaryResponse{
			TrackingNumber: s.TrackingNumber,
			Status:         s.Status,
			AssignedDriver: s.AssignedDriver,
			CreatedAt:      s.CreatedAt.UTC(),
			EstimatedDelivery: s.EstimatedDelivery.UTC(),
			Customer: customerResponse{
				Name:  s.Customer.Name,
				Email: s.Customer.Email,
				Phone: s.Customer.Phone,
			},
			Origin:      toAddressResponse(s.Origin),
			Destination: toAddressResponse(s.Destination),
			Links:       links(s.TrackingNumber),
		}
	}
	return listShipmentsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
