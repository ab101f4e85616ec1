package handler

import (
	"net/http"
	"path"
	"strings"

	"github.com/mesto/mesto-api/internal/middleware"
)

// staticFiles serves regular files from dir under StaticPrefix. Missing
// paths and directories get the JSON not-found response, so directories
// are never listed.
func staticFiles(dir string, errs *middleware.ErrorHandler) http.Handler {
	root := http.Dir(dir)
	files := http.FileServer(root)

	return http.StripPrefix(StaticPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path
		if !strings.HasPrefix(name, "/") {
			name = "/" + name
		}

		f, err := root.Open(path.Clean(name))
		if err != nil {
			errs.NotFound(w, r)
			return
		}
		info, err := f.Stat()
		_ = f.Close()
		if err != nil || info.IsDir() {
			errs.NotFound(w, r)
			return
		}

		files.ServeHTTP(w, r)
	}))
}
