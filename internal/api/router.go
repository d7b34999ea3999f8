package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/parceltrack/tracking-system/internal/api/handler"
	"github.com/parceltrack/tracking-system/internal/api/middleware"
	"github.com/parceltrack/tracking-system/internal/core/domain"
	"github.com/parceltrack/tracking-system/internal/core/service"
	mongodb "github.com/parceltrack/tracking-system/internal/infrastructure/db/mongo"
	"github.com/parceltrack/tracking-system/internal/infrastructure/http/handlers"
	"github.com/parceltrack/tracking-system/internal/realtime"
)

// Deps carries the long-lived components the router wires handlers onto.
// They are owned by main, which also controls their shutdown order.
type Deps struct {
	Mongo      *mongo.Database
	Redis      *redis.Client
	JWTSecret  string
	Hub        *realtime.Hub
	Dispatcher handler.UpdateDispatcher
	Limiter    handler.RateLimiter
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tracking"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(d.Mongo)
	authService := service.NewAuthService(authRepo, d.JWTSecret, 24*time.Hour)
	authHandler := handler.NewAuthHandler(authService)

	shipmentRepo := mongodb.NewShipmentRepository(d.Mongo)
	shipmentService := service.NewShipmentService(shipmentRepo, d.Log)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)

	trackingHandler := handler.NewTrackingHandler(d.Dispatcher, d.Limiter, d.Log)
	wsHandler := handler.NewWSHandler(d.Hub, d.Dispatcher, d.Limiter, d.Log)

	authMiddleware := middleware.Auth(d.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Public tracking ---
	e.GET("/api/public/track/:tracking_number", shipmentHandler.Track)

	// --- Shipments (authenticated) ---
	shipments := e.Group("/api/shipments", authMiddleware)
	shipments.POST("", shipmentHandler.Create)
	shipments.GET("", shipmentHandler.List)
	shipments.GET("/:tracking_number", shipmentHandler.Get)
	shipments.PATCH("/:tracking_number/status", shipmentHandler.UpdateStatus, middleware.RBAC(domain.RoleAdmin))

	// --- Driver ingestion ---
	drivers := e.Group("/api/drivers", authMiddleware, middleware.RBAC(domain.RoleDriver))
	drivers.POST("/location", trackingHandler.UpdateLocation)

	// --- Websockets ---
	e.GET("/ws/track/:tracking_number", wsHandler.TrackSocket)
	e.GET("/ws/drivers", wsHandler.DriverSocket, authMiddleware, middleware.RBAC(domain.RoleDriver))

	return e
}
