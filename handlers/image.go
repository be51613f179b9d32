package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"podcatalog/internal/requestid"
	"podcatalog/services/imagerelay"
)

const imageCacheControl = "public, max-age=86400"

type imageRelay interface {
	Fetch(ctx context.Context, target string) (*imagerelay.Image, error)
}

// ImageHandler relays remote images so hosts that check the referer or user
// agent still serve them to the browser.
type ImageHandler struct {
	relay imageRelay
}

func NewImageHandler(relay imageRelay) *ImageHandler {
	return &ImageHandler{relay: relay}
}

// Proxy handles GET /proxy-image?url=<target>.
func (h *ImageHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		writeJSONError(w, http.StatusBadRequest, "No image URL provided")
		return
	}
	if h.relay == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "image relay unavailable")
		return
	}

	img, err := h.relay.Fetch(r.Context(), target)
	if err != nil {
		if errors.Is(err, imagerelay.ErrInvalidURL) {
			writeJSONError(w, http.StatusBadRequest, "Invalid image URL")
			return
		}
		log.Printf("[image-relay] request=%s error fetching image %s: %v", requestid.Get(r), target, err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch image")
		return
	}
	defer img.Close()

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Cache-Control", imageCacheControl)
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}
	if _, err := img.WriteTo(w); err != nil {
		// Headers are already out; all that is left is to note it.
		log.Printf("[image-relay] request=%s stream of %s ended early: %v", requestid.Get(r), target, err)
	}
}
