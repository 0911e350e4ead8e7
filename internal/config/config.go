package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Booking backend
	BackendURL  string        `envconfig:"BACKEND_URL" default:"http://localhost:8001"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`

	// Local UI
	ListenAddr string        `envconfig:"LISTEN_ADDR" default:"127.0.0.1:3000"`
	CSRFKey    string        `envconfig:"CSRF_KEY"`
	FlashTTL   time.Duration `envconfig:"FLASH_TTL" default:"3s"`

	// Durable local storage
	LocalStoreURL    string `envconfig:"LOCAL_STORE_URL" default:"willspark.db"`
	LocalStoreSecret string `envconfig:"LOCAL_STORE_SECRET"`
	RedisAddr        string `envconfig:"REDIS_ADDR"`
	RedisPassword    string `envconfig:"REDIS_PASSWORD"`
	RedisDB          int    `envconfig:"REDIS_DB" default:"0"`

	// Notifications
	PollSchedule string `envconfig:"POLL_SCHEDULE" default:"@every 30s"`

	// Payments
	StripePublishableKey string `envconfig:"STRIPE_PUBLISHABLE_KEY"`

	// Outbound channels for staff
	SendGridAPIKey    string   `envconfig:"SENDGRID_API_KEY"`
	SendGridFromEmail string   `envconfig:"SENDGRID_FROM_EMAIL"`
	SendGridFromName  string   `envconfig:"SENDGRID_FROM_NAME" default:"Wills Park Tennis"`
	TwilioAccountSID  string   `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string   `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber  string   `envconfig:"TWILIO_FROM_NUMBER"`
	BroadcastSMSTo    []string `envconfig:"BROADCAST_SMS_TO"`
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file loaded: %v", err)
	}
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	c.BackendURL = strings.TrimRight(c.BackendURL, "/")
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("config: BACKEND_URL is empty")
	}
	if c.CSRFKey != "" && len(c.CSRFKey) != 32 {
		return fmt.Errorf("config: CSRF_KEY must be 32 bytes, got %d", len(c.CSRFKey))
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("config: HTTP_TIMEOUT must be positive")
	}
	return nil
}

// UsesPostgres reports whether the local store points at a Postgres database.
func (c Config) UsesPostgres() bool {
	return strings.HasPrefix(c.LocalStoreURL, "postgres://") || strings.HasPrefix(c.LocalStoreURL, "postgresql://")
}

func (c Config) SendGridEnabled() bool {
	return c.SendGridAPIKey != "" && c.SendGridFromEmail != ""
}

func (c Config) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}
