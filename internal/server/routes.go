package server

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/geopersona/geopersona/internal/backend"
)

func addRoutes(r chi.Router, logger *slog.Logger, db *sql.DB, client *backend.Client, sessions *Sessions, broker *Broker, spaDir string) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("GeoPersona API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db, client))

	// Game routes. The caller's session is resolved (or created) by
	// sessionMiddleware.
	r.Route("/api/game", func(r chi.Router) {
		r.Use(sessionMiddleware(sessions))
		r.Get("/state", handleState())
		r.Post("/round", handleNewRound())
		r.Post("/guess", handleProposeGuess())
		r.Post("/submit", handleSubmitGuess())
		r.Put("/mode", handleSetMode())
		r.Put("/style", handleSetMapStyle())
		r.Get("/events", handleEvents(broker))
	})

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}
