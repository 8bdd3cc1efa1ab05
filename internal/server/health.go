package server

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"
)

// backendProber is the slice of the backend client the health check needs.
type backendProber interface {
	Health(ctx context.Context) error
}

// HealthResponse maps each checked dependency to its status.
type HealthResponse map[string]HealthStatus

type HealthStatus struct {
	Status string `json:"status"`
}

func handleHealth(logger *slog.Logger, db *sql.DB, backend backendProber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := HealthResponse{
			"sqlite":  {Status: "ok"},
			"backend": {Status: "ok"},
		}
		status := http.StatusOK

		if err := db.PingContext(ctx); err != nil {
			logger.Error("health check failed", "name", "sqlite", "error", err)
			checks["sqlite"] = HealthStatus{Status: "error"}
			status = http.StatusServiceUnavailable
		}

		if err := backend.Health(ctx); err != nil {
			logger.Error("health check failed", "name", "backend", "error", err)
			checks["backend"] = HealthStatus{Status: "error"}
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, status, checks)
	}
}
