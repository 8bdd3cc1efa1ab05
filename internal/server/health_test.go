package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/geopersona/geopersona/internal/database"
)

type stubProber struct {
	err error
}

func (p *stubProber) Health(context.Context) error {
	return p.err
}

func TestHandleHealth(t *testing.T) {
	db, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "health.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("all dependencies up", func(t *testing.T) {
		handler := handleHealth(logger, db, &stubProber{})
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body HealthResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body["sqlite"].Status != "ok" || body["backend"].Status != "ok" {
			t.Errorf("body = %+v", body)
		}
	})

	t.Run("backend down", func(t *testing.T) {
		handler := handleHealth(logger, db, &stubProber{err: fmt.Errorf("connection refused")})
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
		var body HealthResponse
		json.Unmarshal(w.Body.Bytes(), &body)
		if body["backend"].Status != "error" {
			t.Errorf("backend status = %q, want error", body["backend"].Status)
		}
		if body["sqlite"].Status != "ok" {
			t.Errorf("sqlite status = %q, want ok", body["sqlite"].Status)
		}
	})
}
