package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/parceltrack/tracking-system/internal/api/metrics"
	"github.com/parceltrack/tracking-system/internal/core/domain"
	"github.com/parceltrack/tracking-system/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type ShipmentService struct {
	repo   ports.ShipmentRepository
	logger zerolog.Logger
}

func NewShipmentService(repo ports.ShipmentRepository, logger zerolog.Logger) *ShipmentService {
	return &ShipmentService{repo: repo, logger: logger}
}

// CreateShipment creates a new shipment. If an idempotency key is provided
// and already seen, the previously created shipment is returned without side
// effects.
func (s *ShipmentService) CreateShipment(ctx context.Context, input ports.CreateShipmentInput) (*ports.ShipmentResult, error) {
	if input.IdempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		if err == nil && existing != nil {
			s.logger.Info().
				Str("idempotency_key", input.IdempotencyKey).
				Str("tracking_number", existing.TrackingNumber).
				Msg("idempotent replay")
			return &ports.ShipmentResult{
				TrackingNumber:    existing.TrackingNumber,
				Status:            string(existing.Status),
				CreatedAt:         existing.CreatedAt,
				EstimatedDelivery: existing.EstimatedDelivery,
				AlreadyExisted:    true,
			}, nil
		}
	}

	now := time.Now().UTC()
	shipment := &domain.Shipment{
		TrackingNumber:    generateTrackingNumber(),
		CreatedBy:         input.CreatedBy,
		Status:            domain.StatusPending,
		Description:       input.Description,
		AssignedDriver:    input.AssignedDriver,
		CreatedAt:         now,
		EstimatedDelivery: estimatedDelivery(now),
		IdempotencyKey:    input.IdempotencyKey,
		Customer: domain.Person{
			Name:  input.Customer.Name,
			Email: input.Customer.Email,
			Phone: input.Customer.Phone,
		},
		Origin:        toAddress(input.Origin),
		Destination:   toAddress(input.Destination),
		StatusHistory: []domain.StatusHistoryEntry{{Status: domain.StatusPending, Timestamp: now}},
	}

	if err := s.repo.Create(ctx, shipment); err != nil {
		s.logger.Error().Err(err).Msg("failed to create shipment")
		return nil, err
	}

	metrics.ShipmentsCreatedTotal.Inc()
	s.logger.Info().
		Str("tracking_number", shipment.TrackingNumber).
		Str("created_by", input.CreatedBy).
		Msg("shipment created")

	return &ports.ShipmentResult{
		TrackingNumber:    shipment.TrackingNumber,
		Status:            string(shipment.Status),
		CreatedAt:         shipment.CreatedAt,
		EstimatedDelivery: shipment.EstimatedDelivery,
	}, nil
}

// GetShipment returns the full shipment view. Customers only see shipments
// they created; admins and drivers see everything.
func (s *ShipmentService) GetShipment(ctx context.Context, input ports.GetShipmentInput) (*ports.ShipmentDetail, error) {
	scope := ""
	if input.Role == domain.RoleCustomer {
		scope = input.Subject
	}

	shipment, err := s.repo.FindByTrackingNumber(ctx, input.TrackingNumber, scope)
	if err != nil {
		return nil, fmt.Errorf("get shipment: %w", err)
	}

	return &ports.ShipmentDetail{
		TrackingNumber:    shipment.TrackingNumber,
		Status:            string(shipment.Status),
		Description:       shipment.Description,
		AssignedDriver:    shipment.AssignedDriver,
		CreatedAt:         shipment.CreatedAt,
		EstimatedDelivery: shipment.EstimatedDelivery,
		Customer: ports.PersonInput{
			Name:  shipment.Customer.Name,
			Email: shipment.Customer.Email,
			Phone: shipment.Customer.Phone,
		},
		Origin:        toAddressInput(shipment.Origin),
		Destination:   toAddressInput(shipment.Destination),
		StatusHistory: toHistoryItems(shipment.StatusHistory),
	}, nil
}

// ListShipments returns a page of shipments with access scoping applied.
func (s *ShipmentService) ListShipments(ctx context.Context, input ports.ListShipmentsInput) (*ports.ListShipmentsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := ports.ListShipmentsFilter{
		Status: input.Status,
		Driver: input.Driver,
		Page:   page,
		Limit:  limit,
	}
	switch input.Role {
	case domain.RoleCustomer:
		filter.CreatedBy = input.Subject
	case domain.RoleDriver:
		filter.Driver = input.Subject
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}

	summaries := make([]ports.ShipmentSummary, len(items))
	for i, sh := range items {
		summaries[i] = ports.ShipmentSummary{
			TrackingNumber: sh.TrackingNumber,
			Status:         string(sh.Status),
			Customer: ports.PersonInput{
				Name:  sh.Customer.Name,
				Email: sh.Customer.Email,
				Phone: sh.Customer.Phone,
			},
			Origin:            toAddressInput(sh.Origin),
			Destination:       toAddressInput(sh.Destination),
			AssignedDriver:    sh.AssignedDriver,
			CreatedAt:         sh.CreatedAt,
			EstimatedDelivery: sh.EstimatedDelivery,
		}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListShipmentsResult{
		Items:      summaries,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatus applies a manual status correction and appends a history
// entry. Unlike the realtime pipeline, this path only accepts the defined
// statuses: a correction carrying an unknown value is an operator mistake.
func (s *ShipmentService) UpdateStatus(ctx context.Context, input ports.UpdateStatusInput) error {
	status := domain.ShipmentStatus(input.Status)
	if !status.Known() {
		return domain.ErrMalformedEvent
	}

	if err := s.repo.UpdateStatus(ctx, input.TrackingNumber, status, input.Notes); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	s.logger.Info().
		Str("tracking_number", input.TrackingNumber).
		Str("status", input.Status).
		Msg("shipment status updated")
	return nil
}

// Track is the public lookup: status and history only. Customer contact
// fields never leave this method.
func (s *ShipmentService) Track(ctx context.Context, trackingNumber string) (*ports.TrackingInfo, error) {
	shipment, err := s.repo.FindByTrackingNumber(ctx, trackingNumber, "")
	if err != nil {
		return nil, fmt.Errorf("track shipment: %w", err)
	}

	return &ports.TrackingInfo{
		TrackingNumber:    shipment.TrackingNumber,
		Status:            string(shipment.Status),
		EstimatedDelivery: shipment.EstimatedDelivery,
		StatusHistory:     toHistoryItems(shipment.StatusHistory),
	}, nil
}

func toAddress(a ports.AddressInput) domain.Address {
	return domain.Address{
		Address: a.Address,
		City:    a.City,
		ZipCode: a.ZipCode,
		Coordinates: domain.Coordinates{
			Lat: a.Coordinates.Lat,
			Lng: a.Coordinates.Lng,
		},
	}
}

func toAddressInput(a domain.Address) ports.AddressInput {
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

func toHistoryItems(entries []domain.StatusHistoryEntry) []ports.StatusHistoryItem {
	items := make([]ports.StatusHistoryItem, len(entries))
	for i, e := range entries {
		items[i] = ports.StatusHistoryItem{
			Status:    string(e.Status),
			Timestamp: e.Timestamp,
			Notes:     e.Notes,
		}
	}
	return items
}

// generateTrackingNumber returns a tracking number in the format PT-XXXXXXXX.
func generateTrackingNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("PT-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("PT-%08X", b)
}

// estimatedDelivery places the estimate at 18:00 UTC two days out.
func estimatedDelivery(from time.Time) time.Time {
	base := time.Date(from.Year(), from.Month(), from.Day(), 18, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, 2)
}
