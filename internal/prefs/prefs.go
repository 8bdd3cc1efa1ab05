// Package prefs persists the player's mode and map style across restarts,
// the way the browser app kept them in localStorage. Values are read once
// at startup and written through on change; unknown stored values fall back
// to the defaults instead of failing.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/geopersona/geopersona/internal/geo"
)

const (
	keyMode     = "mode"
	keyMapStyle = "mapStyle"
)

// Store is a typed view over the preferences table with an in-memory cache.
type Store struct {
	db *sql.DB

	mu    sync.RWMutex
	mode  geo.Mode
	style geo.MapStyle
}

// NewStore loads stored preferences. Missing or corrupt rows yield the
// defaults; they are never an error.
func NewStore(ctx context.Context, db *sql.DB) (*Store, error) {
	s := &Store{db: db}

	rawMode, err := s.read(ctx, keyMode)
	if err != nil {
		return nil, fmt.Errorf("loading mode preference: %w", err)
	}
	s.mode, _ = geo.ParseMode(rawMode)

	rawStyle, err := s.read(ctx, keyMapStyle)
	if err != nil {
		return nil, fmt.Errorf("loading mapStyle preference: %w", err)
	}
	s.style, _ = geo.ParseMapStyle(rawStyle)

	return s, nil
}

// Mode returns the persisted game mode.
func (s *Store) Mode() geo.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// MapStyle returns the persisted map style.
func (s *Store) MapStyle() geo.MapStyle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.style
}

// SetMode persists a new game mode.
func (s *Store) SetMode(ctx context.Context, m geo.Mode) error {
	if !m.Valid() {
		return fmt.Errorf("unknown mode %q", m)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(ctx, keyMode, string(m)); err != nil {
		return fmt.Errorf("persisting mode: %w", err)
	}
	s.mode = m
	return nil
}

// SetMapStyle persists a new map style.
func (s *Store) SetMapStyle(ctx context.Context, style geo.MapStyle) error {
	if !style.Valid() {
		return fmt.Errorf("unknown map style %q", style)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(ctx, keyMapStyle, string(style)); err != nil {
		return fmt.Errorf("persisting mapStyle: %w", err)
	}
	s.style = style
	return nil
}

func (s *Store) read(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM preferences WHERE key = ?
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

func (s *Store) write(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	`, key, value)
	return err
}
