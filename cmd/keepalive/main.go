// Command keepalive pings a deployed instance so free-tier hosting does not
// spin it down. Meant to run from a scheduler such as cron or a CI workflow.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type config struct {
	TargetURL  string        `env:"PING_TARGET_URL"`
	Timeout    time.Duration `env:"PING_TIMEOUT_SECONDS" envDefault:"10s"`
	Retries    int           `env:"PING_RETRIES" envDefault:"3"`
	RetryDelay time.Duration `env:"PING_RETRY_DELAY_SECONDS" envDefault:"5s"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[config]()
	if err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.TargetURL == "" {
		return fmt.Errorf("PING_TARGET_URL must be set")
	}
	if cfg.Retries < 1 {
		cfg.Retries = 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	client := &http.Client{Timeout: cfg.Timeout}

	var lastErr error
	for attempt := 1; attempt <= cfg.Retries; attempt++ {
		resp, err := client.Get(cfg.TargetURL)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode < http.StatusInternalServerError {
				logger.Info("ping ok", "url", cfg.TargetURL, "status", resp.StatusCode, "attempt", attempt)
				return nil
			}
			err = fmt.Errorf("status %d", resp.StatusCode)
		}

		lastErr = err
		logger.Warn("ping failed", "url", cfg.TargetURL, "attempt", attempt, "error", err)
		if attempt < cfg.Retries {
			time.Sleep(cfg.RetryDelay)
		}
	}

	return fmt.Errorf("all %d ping attempts failed: %w", cfg.Retries, lastErr)
}
