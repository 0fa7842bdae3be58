package web

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// spaHandler serves the built console bundle, falling back to index.html
// for client-side routes.
type spaHandler struct {
	staticDir string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.staticDir, filepath.Clean("/"+r.URL.Path))

	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		// Serve index.html for SPA routing
		http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
		return
	}

	// Cache fingerprinted assets aggressively
	if strings.Contains(r.URL.Path, "/assets/") {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	}

	http.ServeFile(w, r, path)
}
