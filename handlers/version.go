package handlers

import (
	"net/http"
	"os"
	"strings"
	"sync"
)

// version is set at build time with -ldflags "-X podcatalog/handlers.version=..."
// or read from version.txt.
var (
	version     string
	versionOnce sync.Once
)

type VersionHandler struct{}

type VersionResponse struct {
	Version string `json:"version"`
}

func NewVersionHandler() *VersionHandler {
	return &VersionHandler{}
}

// GetVersion reports the build version (cached after first read)
func GetVersion() string {
	versionOnce.Do(func() {
		if version != "" {
			return
		}
		for _, path := range []string{"version.txt", "/app/version.txt"} {
			data, err := os.ReadFile(path)
			if err == nil {
				version = strings.TrimSpace(string(data))
				return
			}
		}
		version = "dev"
	})
	return version
}

func (h *VersionHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: GetVersion()})
}
