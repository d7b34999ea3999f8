package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/parceltrack/tracking-system/internal/api/metrics"
	"github.com/parceltrack/tracking-system/internal/core/domain"
	"github.com/parceltrack/tracking-system/internal/realtime"
)

// Websocket frame types.
const (
	msgTypeUpdate   = "update"
	msgTypeError    = "error"
	msgTypeAccepted = "accepted"
)

// updateFrame is the payload pushed to tracking observers.
type updateFrame struct {
	Type           string             `json:"type"`
	TrackingNumber string             `json:"tracking_number"`
	Location       domain.Coordinates `json:"location"`
	Status         string             `json:"status"`
}

// driverFrame is one inbound message on the driver stream.
type driverFrame struct {
	TrackingNumber string          `json:"tracking_number"`
	Location       locationRequest `json:"location"`
	Status         string          `json:"status"`
	DeviceToken    string          `json:"device_token,omitempty"`
}

type ackFrame struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

// WSHandler manages websocket connections: observers subscribing to a
// shipment's topic, and drivers streaming location updates in.
type WSHandler struct {
	hub        *realtime.Hub
	dispatcher UpdateDispatcher
	limiter    RateLimiter
	upgrader   websocket.Upgrader
	log        zerolog.Logger
}

func NewWSHandler(hub *realtime.Hub, dispatcher UpdateDispatcher, limiter RateLimiter, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		hub:        hub,
		dispatcher: dispatcher,
		limiter:    limiter,
		upgrader: websocket.Upgrader{
			// The tracking page is served from arbitrary origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// TrackSocket handles GET /ws/track/:tracking_number. The connection's
// lifetime is the subscription's lifetime: subscribed on upgrade, removed on
// disconnect. Observers receive only live updates for their shipment, no
// backlog.
func (h *WSHandler) TrackSocket(c echo.Context) error {
	trackingNumber := c.Param("tracking_number")
	if trackingNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing tracking number")
	}

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	sub := h.hub.Subscribe(trackingNumber)
	defer h.hub.Unsubscribe(sub)

	metrics.ObserversConnected.Inc()
	defer metrics.ObserversConnected.Dec()

	// Reader only watches for disconnect; observers do not send anything
	// this side acts on.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return nil
		case payload, ok := <-sub.C():
			if !ok {
				return nil
			}
			frame := updateFrame{
				Type:           msgTypeUpdate,
				TrackingNumber: trackingNumber,
				Location:       payload.Location,
				Status:         payload.Status,
			}
			if err := ws.WriteJSON(frame); err != nil {
				return nil
			}
		}
	}
}

// DriverSocket handles GET /ws/drivers (role-gated by the router). Each JSON
// frame is one location update; malformed frames are answered with an error
// frame and otherwise dropped, never failing the stream.
func (h *WSHandler) DriverSocket(c echo.Context) error {
	_, subject, err := ctxClaims(c)
	if err != nil {
		return err
	}

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	h.log.Debug().Str("subject", subject).Msg("driver stream connected")

	for {
		var frame driverFrame
		if err := ws.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Str("subject", subject).Msg("driver stream closed")
			}
			return nil
		}

		if frame.TrackingNumber == "" {
			_ = ws.WriteJSON(ackFrame{Type: msgTypeError, Message: "missing tracking number"})
			continue
		}

		allowed, err := h.limiter.Allow(c.Request().Context(), subject)
		if err != nil {
			h.log.Warn().Err(err).Str("subject", subject).Msg("rate limiter unavailable, allowing update")
		}
		if !allowed {
			_ = ws.WriteJSON(ackFrame{Type: msgTypeError, Message: "update rate limit exceeded"})
			continue
		}

		h.dispatcher.Enqueue(toUpdateInput(locationUpdateRequest{
			TrackingNumber: frame.TrackingNumber,
			Location:       frame.Location,
			Status:         frame.Status,
			DeviceToken:    frame.DeviceToken,
		}))
		_ = ws.WriteJSON(ackFrame{Type: msgTypeAccepted})
	}
}
