package server

import "net/http"

func handleState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		writeJSON(w, http.StatusOK, stateResponse(sess, sess.Ctrl.Snapshot()))
	}
}
