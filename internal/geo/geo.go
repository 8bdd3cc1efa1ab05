// Package geo defines the core domain types for a guessing round.
// It has no dependencies beyond the standard library.
package geo

import "fmt"

// Coord is a geographic coordinate (WGS 84).
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate reports whether the coordinate is within valid lat/lon ranges.
func (c Coord) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("lat %v out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("lon %v out of range [-180, 180]", c.Lon)
	}
	return nil
}

// Viewport is a map view: center coordinate plus zoom level.
type Viewport struct {
	Center Coord `json:"center"`
	Zoom   int   `json:"zoom"`
}

// Hints are the three clue categories shown alongside a round's monologue.
// Each list is ordered as the backend produced it.
type Hints struct {
	Cuisine []string `json:"cuisine"`
	Habits  []string `json:"habits"`
	Vibes   []string `json:"vibes"`
}

// Round is one instance of the guessing game as delivered by the backend.
// It is immutable once received; a new round replaces it wholesale.
type Round struct {
	ID            string   `json:"roundId"`
	Character     string   `json:"character"`
	Monologue     string   `json:"monologue"`
	Hints         Hints    `json:"hints"`
	MapDefault    Viewport `json:"mapDefault"`
	MaxScore      int      `json:"maxScore"`
	AIEmbellished bool     `json:"aiEmbellished"`
}

// Answer is the ground-truth location revealed with a result.
type Answer struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Region  string  `json:"region"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Coord returns the answer's location as a coordinate.
func (a Answer) Coord() Coord {
	return Coord{Lat: a.Lat, Lon: a.Lon}
}

// Result is the scored outcome of a submitted guess. Once a result exists
// for a round, that round is locked: the guess can no longer change and no
// further submission is accepted.
type Result struct {
	DistanceKM float64 `json:"distance_km"`
	Score      int     `json:"score"`
	Answer     Answer  `json:"answer"`
}

// Mode selects the backend's round-generation strategy.
type Mode string

const (
	ModeOffline Mode = "offline"
	ModeAI      Mode = "ai"
)

// DefaultMode is used when no preference is stored or the stored value is
// unrecognized.
const DefaultMode = ModeOffline

// ParseMode maps a stored string onto a Mode, falling back to DefaultMode
// for unknown or corrupt values.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeOffline, ModeAI:
		return Mode(s), true
	}
	return DefaultMode, false
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	_, ok := ParseMode(string(m))
	return ok
}

// MapStyle selects the tile rendering of the map. It has no effect on game
// state.
type MapStyle string

const (
	StyleSatellite MapStyle = "satellite"
	StyleDark      MapStyle = "dark"
	StyleStreets   MapStyle = "streets"
)

// DefaultStyle is used when no preference is stored or the stored value is
// unrecognized.
const DefaultStyle = StyleStreets

// ParseMapStyle maps a stored string onto a MapStyle, falling back to
// DefaultStyle for unknown or corrupt values.
func ParseMapStyle(s string) (MapStyle, bool) {
	switch MapStyle(s) {
	case StyleSatellite, StyleDark, StyleStreets:
		return MapStyle(s), true
	}
	return DefaultStyle, false
}

// Valid reports whether s is a known map style.
func (s MapStyle) Valid() bool {
	_, ok := ParseMapStyle(string(s))
	return ok
}
