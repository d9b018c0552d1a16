package http

import (
	"net/http"
	"strings"
)

// StaticHandler serves files from dir under the given URL prefix. Directory
// listings are refused; only direct file paths resolve.
func StaticHandler(prefix, dir string) http.Handler {
	fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}
