package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"github.com/geopersona/geopersona/internal/controller"
	"github.com/geopersona/geopersona/internal/mapview"
)

// Session is one browser's game: its own controller and map surface. The
// round backend keeps rounds for a limited time, so idle sessions are swept
// with the same horizon.
type Session struct {
	Token string
	Ctrl  *controller.Controller

	mu       sync.Mutex
	surface  *mapview.Surface
	lastSeen time.Time
}

// RenderView renders the session's map view for a snapshot. The surface
// keeps per-session viewport state, so rendering is serialized.
func (s *Session) RenderView(p mapview.Props) mapview.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface.Render(p)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Sessions hands out and expires per-browser sessions.
type Sessions struct {
	svc    controller.RoundService
	prefs  controller.Preferences
	broker *Broker
	logger *slog.Logger
	ttl    time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessions(svc controller.RoundService, prefs controller.Preferences, broker *Broker, logger *slog.Logger, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 20 * time.Minute
	}
	return &Sessions{
		svc:      svc,
		prefs:    prefs,
		broker:   broker,
		logger:   logger,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for a token, refreshing its idle timer.
func (s *Sessions) Get(token string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if ok {
		sess.touch(time.Now())
	}
	return sess, ok
}

// Create builds a new session and starts its first round in the background,
// the way the browser app kicked off a round on mount.
func (s *Sessions) Create() *Session {
	token := newToken()
	ctrl := controller.New(s.svc, s.prefs, s.logger.With("session", token[:8]))

	sess := &Session{
		Token:    token,
		Ctrl:     ctrl,
		surface:  mapview.NewSurface(),
		lastSeen: time.Now(),
	}
	ctrl.SetOnChange(func() {
		s.broker.Publish(token, StateEvent{Type: "state", Version: ctrl.Snapshot().Version})
	})

	s.mu.Lock()
	s.sessions[token] = sess
	s.mu.Unlock()

	go ctrl.StartRound(context.Background(), "")

	s.logger.Info("session created", "session", token[:8])
	return sess
}

// Run sweeps idle sessions until ctx is done.
func (s *Sessions) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			s.sweep(now)
		}
	}
}

func (s *Sessions) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, sess := range s.sessions {
		if now.Sub(sess.idleSince()) > s.ttl {
			delete(s.sessions, token)
			s.logger.Info("session expired", "session", token[:8])
		}
	}
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func newToken() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
