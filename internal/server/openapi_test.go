package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleOpenAPI(t *testing.T) {
	w := httptest.NewRecorder()
	handleOpenAPI()(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content type = %q", ct)
	}

	var spec struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &spec); err != nil {
		t.Fatalf("invalid spec JSON: %v", err)
	}
	if spec.Info.Title != "GeoPersona API" {
		t.Errorf("title = %q", spec.Info.Title)
	}

	for _, path := range []string{
		"/healthz",
		"/api/game/state",
		"/api/game/round",
		"/api/game/guess",
		"/api/game/submit",
		"/api/game/mode",
		"/api/game/style",
	} {
		if _, ok := spec.Paths[path]; !ok {
			t.Errorf("spec is missing path %s", path)
		}
	}
}
