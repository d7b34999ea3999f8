package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/parceltrack/tracking-system/internal/core/ports"
)

// UpdateDispatcher is the interface the handler uses to enqueue updates.
type UpdateDispatcher interface {
	Enqueue(in ports.LocationUpdateInput)
}

// RateLimiter caps update submissions per driver. Implementations fail open.
type RateLimiter interface {
	Allow(ctx context.Context, subject string) (bool, error)
}

// TrackingHandler handles driver location update ingestion over REST.
type TrackingHandler struct {
	dispatcher UpdateDispatcher
	limiter    RateLimiter
	log        zerolog.Logger
}

func NewTrackingHandler(dispatcher UpdateDispatcher, limiter RateLimiter, log zerolog.Logger) *TrackingHandler {
	return &TrackingHandler{dispatcher: dispatcher, limiter: limiter, log: log}
}

// UpdateLocation handles POST /api/drivers/location — enqueues a single
// update and returns 202. Processing (broadcast + notification fan-out)
// happens on the dispatcher workers; adapter failures never reach this
// response.
func (h *TrackingHandler) UpdateLocation(c echo.Context) error {
	_, subject, err := ctxClaims(c)
	if err != nil {
		return err
	}

	allowed, err := h.limiter.Allow(c.Request().Context(), subject)
	if err != nil {
		h.log.Warn().Err(err).Str("subject", subject).Msg("rate limiter unavailable, allowing update")
	}
	if !allowed {
		return echo.NewHTTPError(http.StatusTooManyRequests, "update rate limit exceeded")
	}

	var req locationUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(toUpdateInput(req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "update accepted"})
}

// toUpdateInput maps the HTTP request to the service DTO.
func toUpdateInput(r locationUpdateRequest) ports.LocationUpdateInput {
	return ports.LocationUpdateInput{
		TrackingNumber: r.TrackingNumber,
		Location:       ports.CoordinatesInput{Lat: r.Location.Lat, Lng: r.Location.Lng},
		Status:         r.Status,
		DeviceToken:    r.DeviceToken,
	}
}
