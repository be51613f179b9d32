package handlers

import (
	"net/http"
	"path"
	"strings"

	"github.com/spf13/afero"
)

const indexFile = "/index.html"

// StaticHandler serves the compiled frontend. Paths that are not files fall
// back to index.html so client-side routes resolve.
type StaticHandler struct {
	fs         afero.Fs
	fileServer http.Handler
}

// NewStaticHandler creates a handler over the build output filesystem.
func NewStaticHandler(fsys afero.Fs) *StaticHandler {
	return &StaticHandler{
		fs:         fsys,
		fileServer: http.FileServer(afero.NewHttpFs(fsys)),
	}
}

// ServeHTTP serves static files
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := path.Clean("/" + r.URL.Path)
	if name != "/" && name != indexFile {
		if info, err := h.fs.Stat(name); err == nil && !info.IsDir() {
			// Hashed bundles never change under the same name
			if strings.HasPrefix(name, "/assets/") {
				w.Header().Set("Cache-Control", "public, max-age=31536000")
			}
			h.fileServer.ServeHTTP(w, r)
			return
		}
	}

	h.serveIndex(w, r)
}

func (h *StaticHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	f, err := h.fs.Open(indexFile)
	if err != nil {
		http.Error(w, "frontend not built", http.StatusNotFound)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "frontend not built", http.StatusNotFound)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, "index.html", info.ModTime(), f)
}
