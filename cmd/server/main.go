package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/geopersona/geopersona/internal/backend"
	"github.com/geopersona/geopersona/internal/config"
	"github.com/geopersona/geopersona/internal/database"
	"github.com/geopersona/geopersona/internal/migrations"
	"github.com/geopersona/geopersona/internal/prefs"
	"github.com/geopersona/geopersona/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.DBDir, 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	db, err := database.Open(ctx, filepath.Join(cfg.DBDir, "geopersona.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return err
	}

	store, err := prefs.NewStore(ctx, db)
	if err != nil {
		return err
	}

	client := backend.NewClient(cfg.APIBase, cfg.BackendTimeout)
	broker := server.NewBroker()
	sessions := server.NewSessions(client, store, broker, logger, cfg.SessionTTL)

	srv := server.New(cfg.HTTPAddr, logger, db, client, sessions, broker, cfg.SPADir)

	logger.Info("starting server", "addr", cfg.HTTPAddr, "backend", cfg.APIBase)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		return sessions.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return srv.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
