package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"podcatalog/models"
	"podcatalog/services/browse"
	"podcatalog/services/catalog"
)

type catalogService interface {
	Snapshot() catalog.Snapshot
	Reload(ctx context.Context) error
}

// CatalogHandler serves the derived podcast view and the details modal data.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service catalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// baseState replays the catalog snapshot into a fresh viewer state.
func (h *CatalogHandler) baseState() (browse.State, *catalog.Catalog) {
	state := browse.InitialState()
	snap := h.service.Snapshot()
	switch snap.Status {
	case catalog.StatusReady:
		state = browse.Reduce(state, browse.CatalogLoaded{
			Podcasts: snap.Catalog.Podcasts,
			Genres:   snap.Catalog.Genres,
			Seasons:  snap.Catalog.Seasons,
		})
	case catalog.StatusFailed:
		state = browse.Reduce(state, browse.CatalogFailed{Message: snap.Error})
	}
	return state, snap.Catalog
}

// stateFor applies the request's genre and sort selections.
func (h *CatalogHandler) stateFor(r *http.Request) (browse.State, *catalog.Catalog) {
	state, c := h.baseState()
	q := r.URL.Query()
	state = browse.Reduce(state,
		browse.GenreSelected{Genre: q.Get("genre")},
		browse.SortSelected{Sort: browse.ParseSortKey(q.Get("sort"))},
	)
	return state, c
}

// GetCatalog returns the current phase and the filtered, sorted podcasts.
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	state, c := h.stateFor(r)
	writeJSON(w, http.StatusOK, buildCatalogResponse(state, c))
}

// GetGenres returns the derived genre list; empty until the catalog is ready.
func (h *CatalogHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	state, _ := h.baseState()
	genres := state.Genres
	if genres == nil {
		genres = []models.Genre{}
	}
	writeJSON(w, http.StatusOK, genres)
}

// GetPodcast returns one podcast with its genre labels and synthetic seasons.
func (h *CatalogHandler) GetPodcast(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "podcast id is required")
		return
	}

	state, c := h.baseState()
	switch state.Phase() {
	case browse.PhaseLoading:
		writeJSONError(w, http.StatusServiceUnavailable, "catalog is still loading")
		return
	case browse.PhaseError:
		writeJSONError(w, http.StatusServiceUnavailable, state.Error)
		return
	}

	state = browse.Reduce(state, browse.PodcastOpened{ID: id})
	if state.Selected == nil {
		writeJSONError(w, http.StatusNotFound, "podcast not found")
		return
	}

	writeJSON(w, http.StatusOK, models.PodcastDetails{
		Podcast: *state.Selected,
		Genres:  c.GenresOf(*state.Selected),
		Seasons: state.SeasonsOf(id),
	})
}

// Reload fetches the catalog again, the way a full page reload would.
func (h *CatalogHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reload(r.Context()); err != nil {
		writeJSONError(w, http.StatusBadGateway, catalog.LoadFailedMessage)
		return
	}
	state, c := h.stateFor(r)
	writeJSON(w, http.StatusOK, buildCatalogResponse(state, c))
}

func buildCatalogResponse(state browse.State, c *catalog.Catalog) models.CatalogResponse {
	phase := state.Phase()
	view := state.View()
	genres := state.Genres
	if genres == nil {
		genres = []models.Genre{}
	}

	resp := models.CatalogResponse{
		Phase:    string(phase),
		Genre:    state.Params.Genre,
		Sort:     string(state.Params.Sort),
		Genres:   genres,
		Podcasts: view,
		Total:    len(view),
	}
	switch phase {
	case browse.PhaseError:
		resp.Message = state.Error
	case browse.PhaseEmpty:
		resp.Message = browse.NoResultsMessage
	}
	if c != nil {
		resp.LoadedAt = c.LoadedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
