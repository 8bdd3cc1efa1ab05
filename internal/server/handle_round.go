package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/geopersona/geopersona/internal/geo"
)

type NewRoundRequest struct {
	Mode string `json:"mode,omitempty"`
}

func handleNewRound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// An empty body means "use the stored mode preference". Decode
		// unconditionally so chunked requests, which carry no length,
		// still get their mode honored.
		var req NewRoundRequest
		if err := readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var mode geo.Mode
		if req.Mode != "" {
			mode = geo.Mode(req.Mode)
			if !mode.Valid() {
				writeError(w, http.StatusBadRequest, "unknown mode")
				return
			}
		}

		sess := sessionFrom(r)
		snap := sess.Ctrl.StartRound(r.Context(), mode)
		writeJSON(w, http.StatusOK, stateResponse(sess, snap))
	}
}
