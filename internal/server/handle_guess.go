package server

import (
	"net/http"

	"github.com/geopersona/geopersona/internal/geo"
)

// GuessRequest is a proposed pin coordinate. Clicks and marker drags send
// the same message; Source is informational only.
type GuessRequest struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Source string  `json:"source,omitempty"`
}

// GuessAck reports whether the proposal was accepted. A locked round or a
// missing round rejects the pin without it being an error.
type GuessAck struct {
	Accepted bool `json:"accepted"`
	StateResponse
}

func handleProposeGuess() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GuessRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		sess := sessionFrom(r)
		accepted := sess.Ctrl.ProposeGuess(geo.Coord{Lat: req.Lat, Lon: req.Lon})

		writeJSON(w, http.StatusOK, GuessAck{
			Accepted:      accepted,
			StateResponse: stateResponse(sess, sess.Ctrl.Snapshot()),
		})
	}
}

func handleSubmitGuess() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		snap := sess.Ctrl.SubmitGuess(r.Context())
		writeJSON(w, http.StatusOK, stateResponse(sess, snap))
	}
}
