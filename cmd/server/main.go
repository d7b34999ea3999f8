package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/parceltrack/tracking-system/internal/api"
	"github.com/parceltrack/tracking-system/internal/core/ports"
	"github.com/parceltrack/tracking-system/internal/core/service"
	mongodb "github.com/parceltrack/tracking-system/internal/infrastructure/db/mongo"
	redisdb "github.com/parceltrack/tracking-system/internal/infrastructure/db/redis"
	"github.com/parceltrack/tracking-system/internal/infrastructure/email"
	"github.com/parceltrack/tracking-system/internal/infrastructure/push"
	"github.com/parceltrack/tracking-system/internal/infrastructure/queue"
	"github.com/parceltrack/tracking-system/internal/infrastructure/sms"
	"github.com/parceltrack/tracking-system/internal/notification"
	"github.com/parceltrack/tracking-system/internal/pkg/config"
	"github.com/parceltrack/tracking-system/internal/realtime"
	"github.com/parceltrack/tracking-system/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Datastores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	shipmentRepo := mongodb.NewShipmentRepository(db)
	if err := shipmentRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("shipment index creation failed")
	}

	// --- Notification channels ---
	channels := buildChannels(cfg, log)

	// --- Realtime pipeline ---
	hub := realtime.NewHub(0, log)
	trackingService := service.NewTrackingService(shipmentRepo, hub, channels, log)

	dispatcher := queue.NewDispatcher(0, trackingService, log)
	dispatcher.Start(ctx)

	limiter := redisdb.NewRateLimiter(rdb, cfg.DriverUpdateLimit)

	e := api.NewRouter(api.Deps{
		Mongo:      db,
		Redis:      rdb,
		JWTSecret:  cfg.JWTSecret,
		Hub:        hub,
		Dispatcher: dispatcher,
		Limiter:    limiter,
		Log:        log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// The dispatcher workers stop with ctx; wait for notification fan-outs
	// already in flight, then drop the remaining observers.
	trackingService.Wait()
	hub.Close()

	log.Info().Msg("server stopped")
}

// buildChannels assembles the notification channels whose transports are
// configured. A missing credential disables that channel instead of failing
// startup, so a deployment can run email-only or with no channels at all.
func buildChannels(cfg *config.Config, log zerolog.Logger) []ports.Channel {
	var channels []ports.Channel

	if cfg.Email.PostmarkServerToken != "" {
		client, err := email.NewClient(email.Config{
			ServerToken:  cfg.Email.PostmarkServerToken,
			AccountToken: cfg.Email.PostmarkAccountToken,
			Sender:       cfg.Email.SenderEmail,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("postmark client setup failed")
		}
		channels = append(channels, notification.NewEmailChannel(client))
	} else {
		log.Warn().Msg("email channel disabled: POSTMARK_SERVER_TOKEN not set")
	}

	if cfg.SMS.AccountSID != "" {
		client := sms.NewClient(sms.Config{
			AccountSID: cfg.SMS.AccountSID,
			AuthToken:  cfg.SMS.AuthToken,
		})
		channels = append(channels, notification.NewSMSChannel(client, cfg.SMS.From))
	} else {
		log.Warn().Msg("sms channel disabled: TWILIO_ACCOUNT_SID not set")
	}

	if cfg.Push.ServerKey != "" {
		client := push.NewClient(push.Config{
			ServerKey: cfg.Push.ServerKey,
			Endpoint:  cfg.Push.Endpoint,
		})
		channels = append(channels, notification.NewPushChannel(client))
	} else {
		log.Warn().Msg("push channel disabled: FCM_SERVER_KEY not set")
	}

	return channels
}
