package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/parceltrack/tracking-system/internal/core/domain"
	"github.com/parceltrack/tracking-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubShipmentRepo struct {
	byTracking    map[string]*domain.Shipment
	byIdempotency map[string]*domain.Shipment
	lastScope     string // createdBy passed to the last FindByTrackingNumber call
	createErr     error  // if set, Create returns this error
	findErr       error  // if set, FindByTrackingNumber returns this error
}

func newStubShipmentRepo() *stubShipmentRepo {
	return &stubShipmentRepo{
		byTracking:    make(map[string]*domain.Shipment),
		byIdempotency: make(map[string]*domain.Shipment),
	}
}

func (r *stubShipmentRepo) Create(_ context.Context, s *domain.Shipment) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *s
	r.byTracking[s.TrackingNumber] = &clone
	if s.IdempotencyKey != "" {
		r.byIdempotency[s.IdempotencyKey] = &clone
	}
	return nil
}

func (r *stubShipmentRepo) FindByTrackingNumber(_ context.Context, trackingNumber, createdBy string) (*domain.Shipment, error) {
	r.lastScope = createdBy
	if r.findErr != nil {
		return nil, r.findErr
	}
	s, ok := r.byTracking[trackingNumber]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	// Enforce creator scoping the way the real Mongo query does.
	if createdBy != "" && s.CreatedBy != createdBy {
		return nil, domain.ErrShipmentNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubShipmentRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.Shipment, error) {
	s, ok := r.byIdempotency[key]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubShipmentRepo) UpdateStatus(_ context.Context, trackingNumber string, status domain.ShipmentStatus, notes string) error {
	s, ok := r.byTracking[trackingNumber]
	if !ok {
		return domain.ErrShipmentNotFound
	}
	s.Status = status
	s.StatusHistory = append(s.StatusHistory, domain.StatusHistoryEntry{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Notes:     notes,
	})
	return nil
}

func (r *stubShipmentRepo) List(_ context.Context, f ports.ListShipmentsFilter) ([]*domain.Shipment, int64, error) {
	var matched []*domain.Shipment
	for _, s := range r.byTracking {
		if f.CreatedBy != "" && s.CreatedBy != f.CreatedBy {
			continue
		}
		if f.Status != "" && string(s.Status) != f.Status {
			continue
		}
		if f.Driver != "" && s.AssignedDriver != f.Driver {
			continue
		}
		clone := *s
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func seededRepo(tracking, createdBy string, status domain.ShipmentStatus) *stubShipmentRepo {
	repo := newStubShipmentRepo()
	now := time.Now().UTC()
	repo.byTracking[tracking] = &domain.Shipment{
		TrackingNumber: tracking,
		CreatedBy:      createdBy,
		Status:         status,
		Customer:       domain.Person{Name: "Ana Torres", Email: "ana@example.com", Phone: "+5215512345678"},
		CreatedAt:      now,
		StatusHistory:  []domain.StatusHistoryEntry{{Status: status, Timestamp: now}},
	}
	return repo
}

func newShipmentSvc(repo *stubShipmentRepo) ports.ShipmentService {
	return NewShipmentService(repo, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCreateShipment_HappyPath(t *testing.T) {
	repo := newStubShipmentRepo()
	svc := newShipmentSvc(repo)

	res, err := svc.CreateShipment(context.Background(), ports.CreateShipmentInput{
		Customer:  ports.PersonInput{Name: "Ana Torres", Email: "ana@example.com"},
		CreatedBy: "customer_1",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.HasPrefix(res.TrackingNumber, "PT-") {
		t.Errorf("unexpected tracking number format: %q", res.TrackingNumber)
	}
	if res.Status != string(domain.StatusPending) {
		t.Errorf("expected status pending, got %q", res.Status)
	}
	if res.AlreadyExisted {
		t.Errorf("fresh shipment reported as replay")
	}

	stored := repo.byTracking[res.TrackingNumber]
	if stored == nil {
		t.Fatalf("shipment not persisted")
	}
	if len(stored.StatusHistory) != 1 || stored.StatusHistory[0].Status != domain.StatusPending {
		t.Errorf("expected one pending history entry, got %+v", stored.StatusHistory)
	}
}

func TestCreateShipment_IdempotentReplay(t *testing.T) {
	repo := newStubShipmentRepo()
	svc := newShipmentSvc(repo)

	input := ports.CreateShipmentInput{
		Customer:       ports.PersonInput{Name: "Ana Torres"},
		CreatedBy:      "customer_1",
		IdempotencyKey: "key-123",
	}

	first, err := svc.CreateShipment(context.Background(), input)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := svc.CreateShipment(context.Background(), input)
	if err != nil {
		t.Fatalf("replay create: %v", err)
	}

	if !second.AlreadyExisted {
		t.Errorf("expected replay to be flagged")
	}
	if second.TrackingNumber != first.TrackingNumber {
		t.Errorf("replay returned a different shipment: %q vs %q", second.TrackingNumber, first.TrackingNumber)
	}
	if len(repo.byTracking) != 1 {
		t.Errorf("expected a single stored shipment, got %d", len(repo.byTracking))
	}
}

func TestCreateShipment_RepoError(t *testing.T) {
	repo := newStubShipmentRepo()
	repo.createErr = errors.New("write failed")
	svc := newShipmentSvc(repo)

	if _, err := svc.CreateShipment(context.Background(), ports.CreateShipmentInput{CreatedBy: "customer_1"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGetShipment_CustomerScopedToOwnShipments(t *testing.T) {
	repo := seededRepo("PT-AABBCCDD", "customer_1", domain.StatusInTransit)
	svc := newShipmentSvc(repo)

	// Owner sees it.
	detail, err := svc.GetShipment(context.Background(), ports.GetShipmentInput{
		TrackingNumber: "PT-AABBCCDD",
		Role:           domain.RoleCustomer,
		Subject:        "customer_1",
	})
	if err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if detail.Status != string(domain.StatusInTransit) {
		t.Errorf("expected in_transit, got %q", detail.Status)
	}
	if repo.lastScope != "customer_1" {
		t.Errorf("expected scoped query, got scope %q", repo.lastScope)
	}

	// Another customer gets not-found, not someone else's data.
	_, err = svc.GetShipment(context.Background(), ports.GetShipmentInput{
		TrackingNumber: "PT-AABBCCDD",
		Role:           domain.RoleCustomer,
		Subject:        "customer_2",
	})
	if !errors.Is(err, domain.ErrShipmentNotFound) {
		t.Fatalf("expected ErrShipmentNotFound, got: %v", err)
	}
}

func TestGetShipment_AdminUnscoped(t *testing.T) {
	repo := seededRepo("PT-AABBCCDD", "customer_1", domain.StatusPending)
	svc := newShipmentSvc(repo)

	if _, err := svc.GetShipment(context.Background(), ports.GetShipmentInput{
		TrackingNumber: "PT-AABBCCDD",
		Role:           domain.RoleAdmin,
		Subject:        "admin_1",
	}); err != nil {
		t.Fatalf("admin lookup: %v", err)
	}
	if repo.lastScope != "" {
		t.Errorf("expected unscoped query for admin, got scope %q", repo.lastScope)
	}
}

func TestListShipments_DriverFilteredToAssignments(t *testing.T) {
	repo := newStubShipmentRepo()
	now := time.Now().UTC()
	repo.byTracking["PT-00000001"] = &domain.Shipment{TrackingNumber: "PT-00000001", AssignedDriver: "driver_1", CreatedAt: now}
	repo.byTracking["PT-00000002"] = &domain.Shipment{TrackingNumber: "PT-00000002", AssignedDriver: "driver_2", CreatedAt: now}
	svc := newShipmentSvc(repo)

	res, err := svc.ListShipments(context.Background(), ports.ListShipmentsInput{
		Role:    domain.RoleDriver,
		Subject: "driver_1",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Items) != 1 || res.Items[0].TrackingNumber != "PT-00000001" {
		t.Fatalf("expected only the driver's assignment, got %+v", res.Items)
	}
}

func TestListShipments_PaginationClamps(t *testing.T) {
	svc := newShipmentSvc(newStubShipmentRepo())

	res, err := svc.ListShipments(context.Background(), ports.ListShipmentsInput{
		Role:  domain.RoleAdmin,
		Page:  -3,
		Limit: 10_000,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Page != 1 {
		t.Errorf("expected page clamped to 1, got %d", res.Page)
	}
	if res.Limit != maxPageLimit {
		t.Errorf("expected limit clamped to %d, got %d", maxPageLimit, res.Limit)
	}
}

func TestUpdateStatus_AppendsHistory(t *testing.T) {
	repo := seededRepo("PT-AABBCCDD", "customer_1", domain.StatusInTransit)
	svc := newShipmentSvc(repo)

	err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		TrackingNumber: "PT-AABBCCDD",
		Status:         "delivered",
		Notes:          "left with neighbor",
	})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}

	stored := repo.byTracking["PT-AABBCCDD"]
	if stored.Status != domain.StatusDelivered {
		t.Errorf("status not applied: %s", stored.Status)
	}
	if len(stored.StatusHistory) != 2 || stored.StatusHistory[1].Notes != "left with neighbor" {
		t.Errorf("history entry not appended: %+v", stored.StatusHistory)
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	repo := seededRepo("PT-AABBCCDD", "customer_1", domain.StatusInTransit)
	svc := newShipmentSvc(repo)

	err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		TrackingNumber: "PT-AABBCCDD",
		Status:         "customs_hold",
	})
	if !errors.Is(err, domain.ErrMalformedEvent) {
		t.Fatalf("expected ErrMalformedEvent, got: %v", err)
	}
	if repo.byTracking["PT-AABBCCDD"].Status != domain.StatusInTransit {
		t.Errorf("rejected update must not change state")
	}
}

func TestUpdateStatus_UnknownShipment(t *testing.T) {
	svc := newShipmentSvc(newStubShipmentRepo())

	err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		TrackingNumber: "PT-FFFFFFFF",
		Status:         "delivered",
	})
	if !errors.Is(err, domain.ErrShipmentNotFound) {
		t.Fatalf("expected ErrShipmentNotFound, got: %v", err)
	}
}

func TestTrack_PublicViewHasNoContacts(t *testing.T) {
	repo := seededRepo("PT-AABBCCDD", "customer_1", domain.StatusOutForDelivery)
	svc := newShipmentSvc(repo)

	info, err := svc.Track(context.Background(), "PT-AABBCCDD")
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if info.Status != string(domain.StatusOutForDelivery) {
		t.Errorf("expected out_for_delivery, got %q", info.Status)
	}
	if len(info.StatusHistory) != 1 {
		t.Errorf("expected history, got %+v", info.StatusHistory)
	}
	if repo.lastScope != "" {
		t.Errorf("public lookup must be unscoped, got %q", repo.lastScope)
	}
}

func TestTrack_UnknownShipment(t *testing.T) {
	svc := newShipmentSvc(newStubShipmentRepo())

	_, err := svc.Track(context.Background(), "PT-FFFFFFFF")
	if !errors.Is(err, domain.ErrShipmentNotFound) {
		t.Fatalf("expected ErrShipmentNotFound, got: %v", err)
	}
}
