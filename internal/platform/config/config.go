package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type StorageBackend string

const (
	StorageMemory   StorageBackend = "memory"
	StoragePostgres StorageBackend = "postgres"
	StorageMongo    StorageBackend = "mongo"
)

type AuthMode string

const (
	// AuthDev acepta X-Debug-User-ID sin verificar nada.
	AuthDev    AuthMode = "dev"
	AuthJWT    AuthMode = "jwt"
	AuthRemote AuthMode = "remote"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Storage       StorageBackend `env:"STORAGE_BACKEND" envDefault:"memory"`
	DatabaseDSN   string         `env:"DB_DSN"`
	MongoURI      string         `env:"MONGO_URI"`
	MongoDatabase string         `env:"MONGO_DATABASE" envDefault:"cownect"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	AppName   string `env:"APP_NAME" envDefault:"cownect"`

	AuthMode    AuthMode      `env:"AUTH_MODE" envDefault:"dev"`
	JWTSecret   string        `env:"JWT_SECRET"`
	JWTIssuer   string        `env:"JWT_ISSUER"`
	AuthBaseURL string        `env:"AUTH_BASE_URL"`
	AuthAPIKey  string        `env:"AUTH_API_KEY"`
	AuthTimeout time.Duration `env:"AUTH_TIMEOUT" envDefault:"5s"`

	// Capacidad del rancho cuando el cliente no manda max_capacity.
	DefaultMaxCapacity int `env:"DEFAULT_MAX_CAPACITY" envDefault:"100"`
}

// Load lee la configuración desde env y valida combinaciones básicas.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Storage = StorageBackend(strings.ToLower(strings.TrimSpace(string(cfg.Storage))))
	cfg.AuthMode = AuthMode(strings.ToLower(strings.TrimSpace(string(cfg.AuthMode))))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(c.DatabaseDSN) == "" {
			return errors.New("config: DB_DSN is required for postgres storage")
		}
	case StorageMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			return errors.New("config: MONGO_URI is required for mongo storage")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_BACKEND %q", c.Storage)
	}

	switch c.AuthMode {
	case AuthDev:
	case AuthJWT:
		if strings.TrimSpace(c.JWTSecret) == "" {
			return errors.New("config: JWT_SECRET is required for jwt auth")
		}
	case AuthRemote:
		if strings.TrimSpace(c.AuthBaseURL) == "" || strings.TrimSpace(c.AuthAPIKey) == "" {
			return errors.New("config: AUTH_BASE_URL and AUTH_API_KEY are required for remote auth")
		}
	default:
		return fmt.Errorf("config: unknown AUTH_MODE %q", c.AuthMode)
	}

	if c.DefaultMaxCapacity < 0 {
		return errors.New("config: DEFAULT_MAX_CAPACITY must be >= 0")
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}
