package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	defaultJWTSecret = "change-me-jwt-secret"
	minProdSecretLen = 32
)

const (
	BrokerNone  = "none"
	BrokerKafka = "kafka"
	BrokerAMQP  = "amqp"
)

type Config struct {
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	JWTSecret         string        `envconfig:"JWT_SECRET"`
	SessionTTL        time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	SessionCookieName string        `envconfig:"SESSION_COOKIE_NAME" default:"session"`
	CookieSecureRaw   string        `envconfig:"COOKIE_SECURE"`
	CookieSecure      bool          `ignored:"true"`
	BcryptCost        int           `envconfig:"BCRYPT_COST" default:"12"`

	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	LockTTL       time.Duration `envconfig:"LOCK_TTL" default:"10s"`

	EventsBroker string   `envconfig:"EVENTS_BROKER" default:"none"`
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	EventsTopic  string   `envconfig:"EVENTS_TOPIC" default:"talently.bookings"`
	AMQPURL      string   `envconfig:"AMQP_URL"`
	AMQPExchange string   `envconfig:"AMQP_EXCHANGE" default:"talently.events"`

	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	ServiceName  string `envconfig:"OTEL_SERVICE_NAME" default:"talently"`
	OTELEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.normalize()

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	slog.Info("session cookie config",
		"name", cfg.SessionCookieName,
		"secure", cfg.CookieSecure,
		"ttl", cfg.SessionTTL,
	)
	return &cfg, nil
}

func (c *Config) normalize() {
	c.AppEnv = strings.ToLower(strings.TrimSpace(c.AppEnv))
	c.JWTSecret = strings.TrimSpace(c.JWTSecret)
	c.SessionCookieName = strings.TrimSpace(c.SessionCookieName)
	c.EventsBroker = strings.ToLower(strings.TrimSpace(c.EventsBroker))
	c.OTELEndpoint = strings.TrimSpace(c.OTELEndpoint)

	if raw := strings.TrimSpace(c.CookieSecureRaw); raw != "" {
		c.CookieSecure = parseBool(raw)
	} else {
		c.CookieSecure = c.IsProduction()
	}
}

// IsProduction reports whether the app runs in a prod-like environment.
func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.SessionCookieName == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME must not be empty")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	if cfg.LockTTL <= 0 {
		return fmt.Errorf("LOCK_TTL must be > 0")
	}

	switch cfg.EventsBroker {
	case BrokerNone:
	case BrokerKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS must be set when EVENTS_BROKER=kafka")
		}
	case BrokerAMQP:
		if strings.TrimSpace(cfg.AMQPURL) == "" {
			return fmt.Errorf("AMQP_URL must be set when EVENTS_BROKER=amqp")
		}
	default:
		return fmt.Errorf("EVENTS_BROKER must be one of: none, kafka, amqp")
	}

	if cfg.IsProduction() {
		if cfg.JWTSecret == defaultJWTSecret || len(cfg.JWTSecret) < minProdSecretLen {
			return fmt.Errorf("in prod/release JWT_SECRET must be at least %d bytes and not default", minProdSecretLen)
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseBool(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}
