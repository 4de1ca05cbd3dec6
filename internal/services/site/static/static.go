// Package static embeds the site's stylesheet.
package static

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed site.css
var files embed.FS

// FS returns the embedded static files.
func FS() fs.FS {
	return files
}

// Handler serves the embedded files with a long cache lifetime.
func Handler() http.Handler {
	fileServer := http.FileServerFS(files)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		fileServer.ServeHTTP(w, r)
	})
}
