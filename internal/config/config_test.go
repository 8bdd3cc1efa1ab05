package config

import (
	"strings"
	"testing"
)

func TestLoadRequiresAPIBase(t *testing.T) {
	t.Setenv("API_BASE", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when API_BASE is unset")
	}
	if !strings.Contains(err.Error(), "API_BASE") {
		t.Errorf("error %q does not name API_BASE", err)
	}
}

func TestLoadRejectsRelativeAPIBase(t *testing.T) {
	t.Setenv("API_BASE", "localhost:8000/api")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-absolute API_BASE")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE", "http://localhost:8000")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("SESSION_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.SessionTTL.Minutes() != 20 {
		t.Errorf("SessionTTL = %v, want 20m", cfg.SessionTTL)
	}
	if cfg.DBDir != "data" {
		t.Errorf("DBDir = %q, want data", cfg.DBDir)
	}
}
