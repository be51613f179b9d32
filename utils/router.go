package utils

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter constructs the base mux router with CORS and the health route.
func NewRouter(policy OriginPolicy) *mux.Router {
	r := mux.NewRouter()

	r.Use(mux.MiddlewareFunc(CORSMiddleware(policy)))

	// Preflights must match a route for the middleware to run
	r.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)
	return r
}
