package server

import (
	"net/http"
	"os"
	"path/filepath"
)

// handleSPA serves the built web UI from dir. Any path that does not name a
// real file gets index.html, so client-side routes survive a page refresh.
func handleSPA(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))

	return func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(dir, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	}
}
