package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// SiteHandler serves the static portfolio site from a directory. "/" serves
// index.html; directory listings and dotfiles are never exposed.
type SiteHandler struct {
	dir   string
	files http.Handler
}

// NewSiteHandler creates a SiteHandler rooted at dir (SITE_DIR).
func NewSiteHandler(dir string) *SiteHandler {
	return &SiteHandler{dir: dir, files: http.FileServer(http.Dir(dir))}
}

func (h *SiteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clean := path.Clean("/" + r.URL.Path)

	if clean == "/" || clean == "/index.html" {
		index := filepath.Join(h.dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, index)
		return
	}

	for _, seg := range strings.Split(clean, "/") {
		if strings.HasPrefix(seg, ".") {
			http.NotFound(w, r)
			return
		}
	}

	info, err := os.Stat(filepath.Join(h.dir, filepath.FromSlash(clean)))
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	h.files.ServeHTTP(w, r)
}
