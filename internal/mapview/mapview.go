// Package mapview turns round/guess/result state into the view model the
// map UI renders: tile source for the chosen style, guess and answer
// markers, the guess→answer reveal line, and the viewport-reset policy.
// It knows the shape of that state, not where it came from.
package mapview

import "github.com/geopersona/geopersona/internal/geo"

// TileSet is one tile source the map can render.
type TileSet struct {
	Style       geo.MapStyle `json:"style"`
	URL         string       `json:"url"`
	Attribution string       `json:"attribution"`
}

var tileSets = map[geo.MapStyle]TileSet{
	geo.StyleStreets: {
		Style:       geo.StyleStreets,
		URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
	},
	geo.StyleDark: {
		Style:       geo.StyleDark,
		URL:         "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> &copy; <a href="https://carto.com/">CARTO</a>`,
	},
	geo.StyleSatellite: {
		Style:       geo.StyleSatellite,
		URL:         "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
		Attribution: `Tiles &copy; Esri &mdash; Source: Esri, Maxar, Earthstar Geographics`,
	},
}

// Tiles returns the tile source for a style, falling back to the default
// style for unknown values.
func Tiles(style geo.MapStyle) TileSet {
	if ts, ok := tileSets[style]; ok {
		return ts
	}
	return tileSets[geo.DefaultStyle]
}

// worldView is shown before the first round arrives.
var worldView = geo.Viewport{Center: geo.Coord{Lat: 20, Lon: 0}, Zoom: 2}

// Marker is a pin on the map.
type Marker struct {
	Pos       geo.Coord `json:"pos"`
	Draggable bool      `json:"draggable"`
}

// Props is the input contract: the current round (for the default
// viewport), the guess if any, the lock flag, the answer coordinate
// (present only once locked), and the tile style.
type Props struct {
	Round  *geo.Round
	Guess  *geo.Coord
	Locked bool
	Answer *geo.Coord
	Style  geo.MapStyle
}

// View is what the map UI renders.
type View struct {
	Viewport     geo.Viewport `json:"viewport"`
	ResetView    bool         `json:"resetView"`
	Tiles        TileSet      `json:"tiles"`
	GuessMarker  *Marker      `json:"guessMarker"`
	AnswerMarker *Marker      `json:"answerMarker"`
	Line         []geo.Coord  `json:"line"`
	Locked       bool         `json:"locked"`
}

// Surface renders Views for one session. The only state it keeps is which
// round's default viewport it already handed out, so the view re-initializes
// exactly once per round and never re-centers under the user mid-pan.
type Surface struct {
	lastRoundID string
	initialized bool
}

func NewSurface() *Surface {
	return &Surface{}
}

// Render computes the view model for the given state.
func (s *Surface) Render(p Props) View {
	v := View{
		Viewport: worldView,
		Tiles:    Tiles(p.Style),
		Locked:   p.Locked,
	}

	if p.Round != nil {
		v.Viewport = p.Round.MapDefault
		if !s.initialized || s.lastRoundID != p.Round.ID {
			v.ResetView = true
			s.initialized = true
			s.lastRoundID = p.Round.ID
		}
	}

	if p.Guess != nil {
		v.GuessMarker = &Marker{Pos: *p.Guess, Draggable: !p.Locked}
	}

	// The answer marker and the reveal line exist only on a locked view,
	// and the line needs both endpoints. A locked view with either side
	// missing simply renders without them.
	if p.Locked && p.Answer != nil {
		v.AnswerMarker = &Marker{Pos: *p.Answer}
		if p.Guess != nil {
			v.Line = []geo.Coord{*p.Guess, *p.Answer}
		}
	}

	return v
}
