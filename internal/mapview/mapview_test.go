package mapview

import (
	"testing"

	"github.com/geopersona/geopersona/internal/geo"
)

func testRound(id string) *geo.Round {
	return &geo.Round{
		ID:         id,
		MapDefault: geo.Viewport{Center: geo.Coord{Lat: 10, Lon: 20}, Zoom: 3},
		MaxScore:   5000,
	}
}

func TestTilesKnownStyles(t *testing.T) {
	for _, style := range []geo.MapStyle{geo.StyleStreets, geo.StyleDark, geo.StyleSatellite} {
		ts := Tiles(style)
		if ts.Style != style {
			t.Errorf("Tiles(%q).Style = %q", style, ts.Style)
		}
		if ts.URL == "" || ts.Attribution == "" {
			t.Errorf("Tiles(%q) incomplete: %+v", style, ts)
		}
	}
}

func TestTilesUnknownStyleFallsBack(t *testing.T) {
	ts := Tiles("neon")
	if ts.Style != geo.DefaultStyle {
		t.Errorf("Tiles(neon).Style = %q, want default %q", ts.Style, geo.DefaultStyle)
	}
}

func TestResetViewOncePerRound(t *testing.T) {
	s := NewSurface()

	v := s.Render(Props{Round: testRound("r1")})
	if !v.ResetView {
		t.Error("first render of a round must reset the view")
	}
	if v.Viewport.Center.Lat != 10 || v.Viewport.Zoom != 3 {
		t.Errorf("Viewport = %+v, want round default", v.Viewport)
	}

	// Re-renders of the same round must not re-center under the user.
	v = s.Render(Props{Round: testRound("r1"), Guess: &geo.Coord{Lat: 1, Lon: 1}})
	if v.ResetView {
		t.Error("re-render of the same round must not reset the view")
	}

	// A new round implies a fresh default viewport.
	v = s.Render(Props{Round: testRound("r2")})
	if !v.ResetView {
		t.Error("a new round must reset the view")
	}
}

func TestNoRoundRendersWorldView(t *testing.T) {
	s := NewSurface()
	v := s.Render(Props{})
	if v.ResetView {
		t.Error("no round, nothing to reset")
	}
	if v.GuessMarker != nil || v.AnswerMarker != nil || v.Line != nil {
		t.Errorf("empty props produced markers: %+v", v)
	}
	if v.Viewport.Zoom == 0 {
		t.Error("expected a usable world viewport")
	}
}

func TestGuessMarkerDraggableUntilLocked(t *testing.T) {
	s := NewSurface()
	guess := &geo.Coord{Lat: 11, Lon: 19}

	v := s.Render(Props{Round: testRound("r1"), Guess: guess})
	if v.GuessMarker == nil || !v.GuessMarker.Draggable {
		t.Errorf("unlocked guess marker = %+v, want draggable", v.GuessMarker)
	}

	answer := &geo.Coord{Lat: 10.5, Lon: 19.5}
	v = s.Render(Props{Round: testRound("r1"), Guess: guess, Locked: true, Answer: answer})
	if v.GuessMarker == nil || v.GuessMarker.Draggable {
		t.Errorf("locked guess marker = %+v, want frozen", v.GuessMarker)
	}
}

func TestLockedViewDrawsAnswerAndLine(t *testing.T) {
	s := NewSurface()
	guess := &geo.Coord{Lat: 11, Lon: 19}
	answer := &geo.Coord{Lat: 10.5, Lon: 19.5}

	v := s.Render(Props{Round: testRound("r1"), Guess: guess, Locked: true, Answer: answer})
	if v.AnswerMarker == nil || v.AnswerMarker.Pos != *answer {
		t.Fatalf("AnswerMarker = %+v", v.AnswerMarker)
	}
	if len(v.Line) != 2 || v.Line[0] != *guess || v.Line[1] != *answer {
		t.Errorf("Line = %+v, want guess→answer", v.Line)
	}
	if !v.Locked {
		t.Error("view must carry the lock flag")
	}
}

func TestLockedViewWithMissingEndpointsDrawsNoLine(t *testing.T) {
	s := NewSurface()
	answer := &geo.Coord{Lat: 10.5, Lon: 19.5}

	v := s.Render(Props{Round: testRound("r1"), Locked: true, Answer: answer})
	if v.Line != nil {
		t.Errorf("Line = %+v, want none without a guess", v.Line)
	}

	v = s.Render(Props{Round: testRound("r1"), Guess: &geo.Coord{Lat: 1, Lon: 1}, Locked: true})
	if v.Line != nil || v.AnswerMarker != nil {
		t.Errorf("locked view without answer drew %+v / %+v", v.Line, v.AnswerMarker)
	}
}

func TestStyleSwitchKeepsGameState(t *testing.T) {
	s := NewSurface()
	guess := &geo.Coord{Lat: 11, Lon: 19}
	answer := &geo.Coord{Lat: 10.5, Lon: 19.5}

	base := Props{Round: testRound("r1"), Guess: guess, Locked: true, Answer: answer}
	s.Render(base)

	base.Style = geo.StyleSatellite
	v := s.Render(base)
	if v.Tiles.Style != geo.StyleSatellite {
		t.Errorf("Tiles.Style = %q, want satellite", v.Tiles.Style)
	}
	if v.ResetView {
		t.Error("style change must not reset the view")
	}
	if v.Line == nil || v.AnswerMarker == nil {
		t.Error("style change must not alter lock rendering")
	}
}
