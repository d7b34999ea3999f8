package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// DriverUpdateLimit caps location updates per driver per minute.
	// 0 disables rate limiting entirely (the default): bursts are processed
	// as fast as downstream services allow.
	DriverUpdateLimit int `env:"DRIVER_UPDATE_LIMIT, default=0"`

	Mongo MongoConfig
	Redis RedisConfig
	Email EmailConfig
	SMS   SMSConfig
	Push  PushConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=tracking_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type EmailConfig struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL, default=no-reply@parceltrack.io"`
}

type SMSConfig struct {
	AccountSID string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	From       string `env:"SMS_FROM"`
}

type PushConfig struct {
	ServerKey string `env:"FCM_SERVER_KEY"`
	Endpoint  string `env:"FCM_ENDPOINT, default=https://fcm.googleapis.com/fcm/send"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
