// Package controller owns the round/guess/result lifecycle. It is the only
// place game state changes: handlers issue commands, read snapshots, and
// never touch the fields directly.
package controller

import (
	"context"
	"log/slog"
	"sync"

	"github.com/geopersona/geopersona/internal/geo"
)

// User-facing error strings. Backend details go to the log, not the banner.
const (
	msgStartRoundFailed  = "Failed to start a round."
	msgSubmitGuessFailed = "Failed to submit guess."
)

// RoundService is the outbound contract to the round-generation/scoring
// backend.
type RoundService interface {
	CreateRound(ctx context.Context, mode geo.Mode) (*geo.Round, error)
	SubmitGuess(ctx context.Context, roundID string, guess geo.Coord) (*geo.Result, error)
}

// Preferences is the durable mode/mapStyle storage.
type Preferences interface {
	Mode() geo.Mode
	MapStyle() geo.MapStyle
	SetMode(ctx context.Context, m geo.Mode) error
	SetMapStyle(ctx context.Context, s geo.MapStyle) error
}

// Snapshot is a consistent copy of the controller's state. Locked and
// AnyLoading are derived, never stored.
type Snapshot struct {
	Round         *geo.Round
	Guess         *geo.Coord
	Result        *geo.Result
	Err           string
	RoundLoading  bool
	SubmitLoading bool
	Mode          geo.Mode
	MapStyle      geo.MapStyle
	Version       uint64
}

// Locked reports whether the current round can still accept guess edits.
func (s Snapshot) Locked() bool { return s.Result != nil }

// AnyLoading reports whether either network operation is in flight.
func (s Snapshot) AnyLoading() bool { return s.RoundLoading || s.SubmitLoading }

// Controller drives the two asynchronous operations (start round, submit
// guess) and keeps their completions race-free. Each operation carries a
// generation stamp taken when it starts; a completion is applied only while
// its stamp is still the newest, so responses arriving out of order can
// never resurrect stale state. Submissions are additionally stamped with the
// round ID they were issued against.
type Controller struct {
	svc    RoundService
	prefs  Preferences
	logger *slog.Logger

	mu            sync.Mutex
	round         *geo.Round
	guess         *geo.Coord
	result        *geo.Result
	errMsg        string
	roundLoading  bool
	submitLoading bool
	startGen      uint64
	submitGen     uint64
	version       uint64
	onChange      func()
}

func New(svc RoundService, prefs Preferences, logger *slog.Logger) *Controller {
	return &Controller{svc: svc, prefs: prefs, logger: logger}
}

// SetOnChange registers a hook fired after every state transition. Must be
// called before the controller is shared.
func (c *Controller) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Round:         c.round,
		Guess:         c.guess,
		Result:        c.result,
		Err:           c.errMsg,
		RoundLoading:  c.roundLoading,
		SubmitLoading: c.submitLoading,
		Mode:          c.prefs.Mode(),
		MapStyle:      c.prefs.MapStyle(),
		Version:       c.version,
	}
}

// notify bumps the version and fires the change hook. Callers hold the lock
// for the bump; the hook runs without it.
func (c *Controller) notify(fn func()) {
	if fn != nil {
		fn()
	}
}

// StartRound begins a new round. When mode is non-empty it becomes the
// persisted preference; otherwise the stored preference is used. Stale
// guess/result/error state is cleared before the network call so the UI
// never shows a previous round's outcome over a new one. If several starts
// overlap, only the most recent call's response is applied.
func (c *Controller) StartRound(ctx context.Context, mode geo.Mode) Snapshot {
	c.mu.Lock()
	c.startGen++
	gen := c.startGen
	// A new round also invalidates any in-flight submission outright.
	c.submitGen++
	c.errMsg = ""
	c.result = nil
	c.guess = nil
	c.roundLoading = true
	c.submitLoading = false

	if mode != "" {
		if err := c.prefs.SetMode(ctx, mode); err != nil {
			c.logger.Warn("persisting mode preference", "mode", mode, "error", err)
		}
	} else {
		mode = c.prefs.Mode()
	}
	c.version++
	hook := c.onChange
	c.mu.Unlock()
	c.notify(hook)

	round, err := c.svc.CreateRound(ctx, mode)

	c.mu.Lock()
	if gen != c.startGen {
		// A newer start owns the state now; this response is dropped whole,
		// loading flags included.
		c.mu.Unlock()
		c.logger.Debug("discarding superseded round response", "gen", gen)
		return c.Snapshot()
	}

	c.roundLoading = false
	if err != nil {
		c.errMsg = msgStartRoundFailed
		c.logger.Error("start round failed", "mode", mode, "error", err)
	} else {
		c.round = round
		c.logger.Info("round started", "round_id", round.ID, "mode", mode, "max_score", round.MaxScore)
	}
	c.version++
	snap := c.snapshotLocked()
	hook = c.onChange
	c.mu.Unlock()
	c.notify(hook)
	return snap
}

// SubmitGuess submits the current guess for scoring. Preconditions (a round,
// a guess, no result yet, no submission already in flight) are enforced as
// silent no-ops; the rendering layer disables the action, this is the
// backstop. The response is applied only if no newer submission or round
// start happened meanwhile and the round it was issued against is still
// current.
func (c *Controller) SubmitGuess(ctx context.Context) Snapshot {
	c.mu.Lock()
	if c.round == nil || c.guess == nil || c.result != nil || c.submitLoading {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	c.submitGen++
	gen := c.submitGen
	roundID := c.round.ID
	guess := *c.guess
	c.submitLoading = true
	c.errMsg = ""
	c.version++
	hook := c.onChange
	c.mu.Unlock()
	c.notify(hook)

	result, err := c.svc.SubmitGuess(ctx, roundID, guess)

	c.mu.Lock()
	if gen != c.submitGen || c.round == nil || c.round.ID != roundID {
		c.mu.Unlock()
		c.logger.Debug("discarding stale guess response", "round_id", roundID)
		return c.Snapshot()
	}

	c.submitLoading = false
	if err != nil {
		// The round stays unlocked: the guess remains editable for a retry.
		c.errMsg = msgSubmitGuessFailed
		c.logger.Error("submit guess failed", "round_id", roundID, "error", err)
	} else {
		c.result = result
		c.logger.Info("guess scored", "round_id", roundID,
			"distance_km", result.DistanceKM, "score", result.Score)
	}
	c.version++
	snap := c.snapshotLocked()
	hook = c.onChange
	c.mu.Unlock()
	c.notify(hook)
	return snap
}

// ProposeGuess is the single inbound coordinate message; map clicks and
// marker drags both arrive here. The proposal replaces any prior guess and
// is rejected when no round exists, when the round is locked, or when the
// coordinate is out of range.
func (c *Controller) ProposeGuess(coord geo.Coord) bool {
	c.mu.Lock()
	if c.round == nil || c.result != nil {
		c.mu.Unlock()
		return false
	}
	if err := coord.Validate(); err != nil {
		c.mu.Unlock()
		c.logger.Warn("rejecting guess coordinate", "error", err)
		return false
	}

	g := coord
	c.guess = &g
	c.version++
	hook := c.onChange
	c.mu.Unlock()
	c.notify(hook)
	return true
}

// SetMode persists a new mode and starts a fresh round with it, since the
// mode determines how rounds are generated.
func (c *Controller) SetMode(ctx context.Context, mode geo.Mode) (Snapshot, error) {
	if !mode.Valid() {
		return c.Snapshot(), &InvalidPreferenceError{Field: "mode", Value: string(mode)}
	}
	return c.StartRound(ctx, mode), nil
}

// SetMapStyle persists a new map style. Display-only: round, guess and
// result are untouched and the style may change at any time, locked or not.
func (c *Controller) SetMapStyle(ctx context.Context, style geo.MapStyle) (Snapshot, error) {
	if !style.Valid() {
		return c.Snapshot(), &InvalidPreferenceError{Field: "mapStyle", Value: string(style)}
	}

	c.mu.Lock()
	if err := c.prefs.SetMapStyle(ctx, style); err != nil {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, err
	}
	c.version++
	snap := c.snapshotLocked()
	hook := c.onChange
	c.mu.Unlock()
	c.notify(hook)
	return snap, nil
}

// InvalidPreferenceError reports a mode/style value outside the known set.
type InvalidPreferenceError struct {
	Field string
	Value string
}

func (e *InvalidPreferenceError) Error() string {
	return "unknown " + e.Field + " " + e.Value
}
