package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8080"`
	APIBase        string        `env:"API_BASE"`
	DBDir          string        `env:"DB_DIR" envDefault:"data"`
	LogLevel       slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir         string        `env:"SPA_DIR" envDefault:"web/dist"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"20m"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	// The round service is the only source of rounds and scores; without its
	// address the app cannot do anything, so fail at startup rather than on
	// the first request.
	if cfg.APIBase == "" {
		return nil, fmt.Errorf("API_BASE must be set to the round service base URL (e.g. http://localhost:8000)")
	}
	u, err := url.Parse(cfg.APIBase)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("API_BASE %q is not an absolute URL", cfg.APIBase)
	}

	return &cfg, nil
}
