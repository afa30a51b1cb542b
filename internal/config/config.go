package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port        string        `env:"PORT" envDefault:"8080"`
	Env         string        `env:"APP_ENV" envDefault:"development"`
	StoreDriver string        `env:"STORE_DRIVER" envDefault:"postgres"`
	PostgresDSN string        `env:"POSTGRES_DSN"`
	MongoURI    string        `env:"MONGO_URI"`
	MongoDB     string        `env:"MONGO_DB" envDefault:"espace_client"`
	TokenSecret string        `env:"TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"48h"`
	CORSOrigins []string      `env:"CORS_ORIGINS" envDefault:"http://localhost:5173,http://localhost:3000"`
}

// Load parses the environment. The token signing secret is mandatory: the
// process must not serve requests without it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TokenSecret == "" {
		return nil, errors.New("TOKEN_SECRET is required")
	}
	switch cfg.StoreDriver {
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, errors.New("POSTGRES_DSN is required")
		}
	case "mongo":
		if cfg.MongoURI == "" {
			return nil, errors.New("MONGO_URI is required")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	return cfg, nil
}

// Production reports whether the service runs in production mode. Cookies
// carry the Secure flag only when it returns true.
func (c *Config) Production() bool {
	return c.Env == "production"
}
