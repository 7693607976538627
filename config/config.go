package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8000"`
	LogLevel   string `envconfig:"LOG_LEVEL"`
	LogFile    string `envconfig:"LOG_FILE"`

	// Store
	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBName     string `envconfig:"DB_NAME" default:"shaadibazaarhub"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"marketplace.db"`

	// Tokens
	JWTSecret         string `envconfig:"JWT_SECRET" required:"true"`
	JWTAlgorithm      string `envconfig:"JWT_ALGORITHM" default:"HS256"`
	JWTExpiresMinutes int    `envconfig:"JWT_EXPIRES_MINUTES" default:"120"`

	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`

	// Integration events; empty URL disables the publisher.
	RabbitURL      string `envconfig:"RABBIT_URL"`
	RabbitExchange string `envconfig:"RABBIT_EXCHANGE" default:"marketplace"`

	// WhatsApp notifications
	TwilioEnabled        bool   `envconfig:"TWILIO_ENABLED" default:"false"`
	TwilioAccountSID     string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken      string `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppFrom   string `envconfig:"TWILIO_WHATSAPP_FROM" default:"whatsapp:+14155238886"`
	TwilioAdminWhatsApp  string `envconfig:"TWILIO_ADMIN_WHATSAPP_TO"`
	TwilioAPIBaseURL     string `envconfig:"TWILIO_API_BASE_URL" default:"https://api.twilio.com"`
	DefaultCountryCode   string `envconfig:"DEFAULT_COUNTRY_CODE" default:"91"`
	NotifyTimeoutSeconds int    `envconfig:"NOTIFY_TIMEOUT_SECONDS" default:"10"`

	// Payments
	RazorpayKeyID      string `envconfig:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret  string `envconfig:"RAZORPAY_KEY_SECRET"`
	RazorpayAPIBaseURL string `envconfig:"RAZORPAY_API_BASE_URL" default:"https://api.razorpay.com"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return c, nil
}

func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

func (c Config) NotifyTimeout() time.Duration {
	return time.Duration(c.NotifyTimeoutSeconds) * time.Second
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}
