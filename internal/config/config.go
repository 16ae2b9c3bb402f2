package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers understood by the application.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty  bool   `env:"LOG_PRETTY" envDefault:"false"`
	DigestCron string `env:"DIGEST_CRON"`

	HTTP   HTTP   `envPrefix:"HTTP_"`
	Store  Store  `envPrefix:"STORE_"`
	SMTP   SMTP   `envPrefix:"SMTP_"`
	Mail   Mail   `envPrefix:"MAIL_"`
	CORS   CORS   `envPrefix:"CORS_"`
	Admin  Admin  `envPrefix:"ADMIN_"`
	JWT    JWT    `envPrefix:"JWT_"`
	Notify Notify `envPrefix:"NOTIFY_"`
}

// HTTP contains listener parameters.
type HTTP struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Addr returns the host:port the server listens on.
func (h HTTP) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// Store selects and configures the subscriber store backend.
type Store struct {
	Driver     string `env:"DRIVER" envDefault:"memory"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"./landing.db"`
	DSN        string `env:"POSTGRES_DSN"`
}

// SMTP contains outbound mail transport parameters. Host and credentials have
// no defaults; an empty Host leaves the notifier unconfigured.
type SMTP struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	TLS      string `env:"TLS" envDefault:"opportunistic"` // mandatory, opportunistic or none
}

// Mail contains the fixed addressing used by notification templates.
type Mail struct {
	Brand    string `env:"BRAND" envDefault:"Well & Wilde"`
	From     string `env:"FROM" envDefault:"hello@wellandwilde.ie"`
	Operator string `env:"OPERATOR" envDefault:"hello@wellandwilde.ie"`
}

// CORS contains cross-origin policy for the API.
type CORS struct {
	AllowedOrigins   []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	AllowCredentials bool     `env:"ALLOW_CREDENTIALS" envDefault:"true"`
}

// Admin controls access to the subscriber listing.
type Admin struct {
	AuthRequired bool   `env:"AUTH_REQUIRED" envDefault:"true"`
	Username     string `env:"USERNAME"`
	Password     string `env:"PASSWORD"`
	SecureCookie bool   `env:"SECURE_COOKIE" envDefault:"false"`
}

// JWT contains token signing parameters.
type JWT struct {
	Secret string        `env:"SECRET"`
	TTL    time.Duration `env:"TTL" envDefault:"24h"`
}

// Notify tunes the background notification queue.
type Notify struct {
	QueueSize   int           `env:"QUEUE_SIZE" envDefault:"100"`
	Workers     int           `env:"WORKERS" envDefault:"2"`
	SendTimeout time.Duration `env:"SEND_TIMEOUT" envDefault:"30s"`
}

// Load reads an optional .env file, then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.Store.DSN == "" {
			return errors.New("STORE_POSTGRES_DSN is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Admin.AuthRequired && c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required when ADMIN_AUTH_REQUIRED is true")
	}

	switch c.SMTP.TLS {
	case "mandatory", "opportunistic", "none":
	default:
		return fmt.Errorf("unknown SMTP_TLS %q", c.SMTP.TLS)
	}

	if c.Notify.Workers < 1 {
		return errors.New("NOTIFY_WORKERS must be at least 1")
	}
	if c.Notify.QueueSize < 0 {
		return errors.New("NOTIFY_QUEUE_SIZE must not be negative")
	}
	return nil
}
