package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes bundles the handlers mounted on the router.
type Routes struct {
	Catalog *CatalogHandler
	Images  *ImageHandler
	Version *VersionHandler
	Static  http.Handler

	// RelayMiddleware wraps only the image relay, innermost last.
	RelayMiddleware []mux.MiddlewareFunc
}

// Register mounts the API, the image relay and the SPA catch-all. The
// catch-all goes last so it never shadows the API.
func Register(r *mux.Router, rt Routes) {
	if rt.Version != nil {
		r.HandleFunc("/api/version", rt.Version.GetVersion).Methods(http.MethodGet)
	}

	if rt.Catalog != nil {
		api := r.PathPrefix("/api").Subrouter()
		api.HandleFunc("/catalog", rt.Catalog.GetCatalog).Methods(http.MethodGet)
		api.HandleFunc("/catalog/reload", rt.Catalog.Reload).Methods(http.MethodPost)
		api.HandleFunc("/genres", rt.Catalog.GetGenres).Methods(http.MethodGet)
		api.HandleFunc("/podcasts/{id}", rt.Catalog.GetPodcast).Methods(http.MethodGet)
	}

	if rt.Images != nil {
		var relay http.Handler = http.HandlerFunc(rt.Images.Proxy)
		for i := len(rt.RelayMiddleware) - 1; i >= 0; i-- {
			relay = rt.RelayMiddleware[i](relay)
		}
		r.Handle("/proxy-image", relay).Methods(http.MethodGet, http.MethodHead)
	}

	if rt.Static != nil {
		r.PathPrefix("/").Handler(rt.Static).Methods(http.MethodGet, http.MethodHead)
	}
}
