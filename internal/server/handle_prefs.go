package server

import (
	"errors"
	"net/http"

	"github.com/geopersona/geopersona/internal/controller"
	"github.com/geopersona/geopersona/internal/geo"
)

type ModeRequest struct {
	Mode string `json:"mode"`
}

type MapStyleRequest struct {
	MapStyle string `json:"mapStyle"`
}

// handleSetMode persists the mode and starts a fresh round with it, since
// mode selects how the backend generates rounds.
func handleSetMode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ModeRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		sess := sessionFrom(r)
		snap, err := sess.Ctrl.SetMode(r.Context(), geo.Mode(req.Mode))
		var invalid *controller.InvalidPreferenceError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusBadRequest, invalid.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, stateResponse(sess, snap))
	}
}

func handleSetMapStyle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MapStyleRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		sess := sessionFrom(r)
		snap, err := sess.Ctrl.SetMapStyle(r.Context(), geo.MapStyle(req.MapStyle))
		var invalid *controller.InvalidPreferenceError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusBadRequest, invalid.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, stateResponse(sess, snap))
	}
}
