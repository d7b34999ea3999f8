package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/parceltrack/tracking-system/internal/core/ports"
)

// ShipmentHandler handles HTTP requests for shipment operations.
type ShipmentHandler struct {
	service ports.ShipmentService
}

func NewShipmentHandler(service ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

// Create handles POST /api/shipments.
func (h *ShipmentHandler) Create(c echo.Context) error {
	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	_, subject, err := ctxClaims(c)
	if err != nil {
		return err
	}
	idempotencyKey := c.Request().Header.Get("Idempotency-Key")

	result, err := h.service.CreateShipment(c.Request().Context(), toCreateInput(req, subject, idempotencyKey))
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, toCreateResponse(result))
}

// Get handles GET /api/shipments/:tracking_number.
func (h *ShipmentHandler) Get(c echo.Context) error {
	role, subject, err := ctxClaims(c)
	if err != nil {
		return err
	}

	detail, err := h.service.GetShipment(c.Request().Context(), ports.GetShipmentInput{
		TrackingNumber: c.Param("tracking_number"),
		Role:           role,
		Subject:        subject,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toGetResponse(detail))
}

// List handles GET /api/shipments.
func (h *ShipmentHandler) List(c echo.Context) error {
	role, subject, err := ctxClaims(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListShipments(c.Request().Context(), ports.ListShipmentsInput{
		Role:    role,
		Subject: subject,
		Status:  c.QueryParam("status"),
		Driver:  c.QueryParam("driver"),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(result))
}

// UpdateStatus handles PATCH /api/shipments/:tracking_number/status.
func (h *ShipmentHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateStatusInput{
		TrackingNumber: c.Param("tracking_number"),
		Status:         req.Status,
		Notes:          req.Notes,
	})
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Track handles GET /api/public/track/:tracking_number — no auth required.
func (h *ShipmentHandler) Track(c echo.Context) error {
	info, err := h.service.Track(c.Request().Context(), c.Param("tracking_number"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTrackResponse(info))
}
