package server

import (
	"fmt"

	"github.com/geopersona/geopersona/internal/controller"
	"github.com/geopersona/geopersona/internal/geo"
	"github.com/geopersona/geopersona/internal/mapview"
)

// ResultInfo is a scored result plus the rendered "score / maxScore" label.
type ResultInfo struct {
	geo.Result
	ScoreLabel string `json:"scoreLabel"`
}

// StateResponse is the full game state every handler returns: the
// controller snapshot plus the rendered map view.
type StateResponse struct {
	Round         *geo.Round   `json:"round"`
	Guess         *geo.Coord   `json:"guess"`
	Result        *ResultInfo  `json:"result"`
	Error         string       `json:"error,omitempty"`
	RoundLoading  bool         `json:"roundLoading"`
	SubmitLoading bool         `json:"submitLoading"`
	AnyLoading    bool         `json:"anyLoading"`
	Locked        bool         `json:"locked"`
	Mode          geo.Mode     `json:"mode"`
	MapStyle      geo.MapStyle `json:"mapStyle"`
	Map           mapview.View `json:"map"`
	Version       uint64       `json:"version"`
}

func stateResponse(sess *Session, snap controller.Snapshot) StateResponse {
	var result *ResultInfo
	var answer *geo.Coord
	if snap.Result != nil {
		result = &ResultInfo{Result: *snap.Result}
		if snap.Round != nil {
			result.ScoreLabel = fmt.Sprintf("%d / %d", snap.Result.Score, snap.Round.MaxScore)
		}
		a := snap.Result.Answer.Coord()
		answer = &a
	}

	view := sess.RenderView(mapview.Props{
		Round:  snap.Round,
		Guess:  snap.Guess,
		Locked: snap.Locked(),
		Answer: answer,
		Style:  snap.MapStyle,
	})

	return StateResponse{
		Round:         snap.Round,
		Guess:         snap.Guess,
		Result:        result,
		Error:         snap.Err,
		RoundLoading:  snap.RoundLoading,
		SubmitLoading: snap.SubmitLoading,
		AnyLoading:    snap.AnyLoading(),
		Locked:        snap.Locked(),
		Mode:          snap.Mode,
		MapStyle:      snap.MapStyle,
		Map:           view,
		Version:       snap.Version,
	}
}
