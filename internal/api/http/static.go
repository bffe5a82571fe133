package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPAHandler serves the built frontend from dir. Paths that do not match a
// real file fall back to index.html so client-side routing works after a
// hard refresh.
func SPAHandler(dir string) http.Handler {
	fileServer := http.FileServer(http.Dir(dir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))

		info, err := os.Stat(name)
		if err != nil || info.IsDir() {
			if !strings.HasSuffix(r.URL.Path, "/") || r.URL.Path == "/" {
				http.ServeFile(w, r, filepath.Join(dir, "index.html"))
				return
			}
		}

		fileServer.ServeHTTP(w, r)
	})
}
