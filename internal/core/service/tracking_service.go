package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/parceltrack/tracking-system/internal/api/metrics"
	"github.com/parceltrack/tracking-system/internal/core/domain"
	"github.com/parceltrack/tracking-system/internal/core/ports"
)

// TrackingService is the realtime propagation pipeline: each location update
// is broadcast to the shipment's observers first, then fanned out to the
// eligible notification channels. Notification dispatch never blocks or fails
// the producer of the update.
type TrackingService struct {
	repo     ports.ShipmentRepository
	hub      ports.Broadcaster
	channels []ports.Channel
	log      zerolog.Logger
	wg       sync.WaitGroup
}

func NewTrackingService(
	repo ports.ShipmentRepository,
	hub ports.Broadcaster,
	channels []ports.Channel,
	log zerolog.Logger,
) *TrackingService {
	return &TrackingService{
		repo:     repo,
		hub:      hub,
		channels: channels,
		log:      log,
	}
}

// Process handles one location update. A missing tracking number makes the
// event malformed: it is dropped with neither broadcast nor notification.
// Otherwise the broadcast happens immediately and notification dispatch runs
// in the background; a shipment that cannot be resolved skips only the
// notification stage, never the broadcast already sent.
func (s *TrackingService) Process(ctx context.Context, in ports.LocationUpdateInput) error {
	if strings.TrimSpace(in.TrackingNumber) == "" {
		metrics.LocationUpdatesTotal.WithLabelValues(in.Status, "malformed").Inc()
		s.log.Warn().Str("status", in.Status).Msg("location update dropped: missing tracking number")
		return domain.ErrMalformedEvent
	}

	payload := ports.BroadcastPayload{
		Location: domain.Coordinates{Lat: in.Location.Lat, Lng: in.Location.Lng},
		Status:   in.Status,
	}
	delivered := s.hub.Publish(in.TrackingNumber, payload)
	metrics.BroadcastDeliveriesTotal.Add(float64(delivered))
	metrics.LocationUpdatesTotal.WithLabelValues(in.Status, "processed").Inc()

	s.log.Debug().
		Str("tracking_number", in.TrackingNumber).
		Str("status", in.Status).
		Int("observers", delivered).
		Msg("location update broadcast")

	// Notifications run detached from the producer's request: the update has
	// already been delivered to observers, and a later update for the same
	// shipment must not wait for this one's channel sends.
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.notify(context.WithoutCancel(ctx), in)
	}()

	return nil
}

// Wait blocks until all in-flight notification fan-outs have finished.
// Used on shutdown and in tests.
func (s *TrackingService) Wait() {
	s.wg.Wait()
}

// notify resolves the shipment's contact and dispatches the eligible
// channels. An unresolvable shipment is logged and skipped; it is not an
// error anyone upstream sees.
func (s *TrackingService) notify(ctx context.Context, in ports.LocationUpdateInput) {
	shipment, err := s.repo.FindByTrackingNumber(ctx, in.TrackingNumber, "")
	if err != nil {
		metrics.FanoutSkippedTotal.Inc()
		if errors.Is(err, domain.ErrShipmentNotFound) {
			s.log.Info().Str("tracking_number", in.TrackingNumber).Msg("notification skipped: unknown shipment")
		} else {
			s.log.Warn().Err(err).Str("tracking_number", in.TrackingNumber).Msg("notification skipped: lookup failed")
		}
		return
	}

	outcomes := s.dispatch(ctx, shipment.Contact(), domain.ShipmentStatus(in.Status), in.DeviceToken)
	for _, o := range outcomes {
		ev := s.log.Info()
		if !o.Success {
			ev = s.log.Error().Err(o.Err)
		}
		ev.Str("tracking_number", in.TrackingNumber).
			Str("channel", string(o.Channel)).
			Str("recipient", o.Recipient).
			Bool("success", o.Success).
			Msg("notification outcome")
	}
}

// dispatch invokes every eligible channel concurrently and independently.
// Eligibility is purely field presence: phone enables SMS, email enables
// email, a device token enables push. One channel's failure is recorded in
// its outcome and cannot affect the others.
func (s *TrackingService) dispatch(
	ctx context.Context,
	contact domain.Contact,
	status domain.ShipmentStatus,
	deviceToken string,
) []domain.NotificationOutcome {
	type target struct {
		channel   ports.Channel
		recipient string
	}

	var targets []target
	for _, ch := range s.channels {
		switch ch.Kind() {
		case domain.ChannelEmail:
			if contact.CustomerEmail != "" {
				targets = append(targets, target{ch, contact.CustomerEmail})
			}
		case domain.ChannelSMS:
			if contact.CustomerPhone != "" {
				targets = append(targets, target{ch, contact.CustomerPhone})
			}
		case domain.ChannelPush:
			if deviceToken != "" {
				targets = append(targets, target{ch, deviceToken})
			}
		}
	}

	outcomes := make([]domain.NotificationOutcome, len(targets))
	var wg sync.WaitGroup
	for i, t := range targets {
		wg.Add(1)
		go func(i int, t target) {
			defer wg.Done()

			timer := prometheus.NewTimer(metrics.NotificationDuration.WithLabelValues(string(t.channel.Kind())))
			err := t.channel.Send(ctx, t.recipient, status)
			timer.ObserveDuration()

			result := "success"
			if err != nil {
				result = "failure"
			}
			metrics.NotificationsTotal.WithLabelValues(string(t.channel.Kind()), result).Inc()

			outcomes[i] = domain.NotificationOutcome{
				Channel:   t.channel.Kind(),
				Recipient: t.recipient,
				Success:   err == nil,
				Err:       err,
			}
		}(i, t)
	}
	wg.Wait()

	return outcomes
}
