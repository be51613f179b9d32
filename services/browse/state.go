package browse

import (
	"podcatalog/models"
)

// Phase is what the viewer should render.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseEmpty   Phase = "empty"
	PhaseReady   Phase = "ready"
)

// NoResultsMessage is shown when the filters leave nothing to display.
const NoResultsMessage = "No podcasts found with the selected filters."

// State is an immutable snapshot of everything the viewer renders from.
// Reduce returns a new State; slices are shared but never written.
type State struct {
	Loading  bool
	Error    string
	Podcasts []models.Podcast
	Genres   []models.Genre
	Seasons  map[string][]models.Season
	Params   Params
	Selected *models.Podcast
}

// InitialState is the state before the catalog has loaded.
func InitialState() State {
	return State{Loading: true, Params: DefaultParams()}
}

// Event is a state transition input.
type Event interface {
	apply(State) State
}

// CatalogLoaded delivers a successful load.
type CatalogLoaded struct {
	Podcasts []models.Podcast
	Genres   []models.Genre
	Seasons  map[string][]models.Season
}

// CatalogFailed delivers the user-facing message of a failed load.
type CatalogFailed struct {
	Message string
}

// GenreSelected changes the genre selector.
type GenreSelected struct {
	Genre string
}

// SortSelected changes the sort key.
type SortSelected struct {
	Sort SortKey
}

// PodcastOpened opens the details modal for a podcast id.
type PodcastOpened struct {
	ID string
}

// ModalClosed closes the details modal.
type ModalClosed struct{}

func (e CatalogLoaded) apply(s State) State {
	s.Loading = false
	s.Error = ""
	s.Podcasts = e.Podcasts
	s.Genres = e.Genres
	s.Seasons = e.Seasons
	s.Selected = nil
	return s
}

func (e CatalogFailed) apply(s State) State {
	s.Loading = false
	s.Error = e.Message
	s.Podcasts = nil
	s.Genres = nil
	s.Seasons = nil
	s.Selected = nil
	return s
}

func (e GenreSelected) apply(s State) State {
	s.Params.Genre = ParseGenreSelector(e.Genre)
	return s
}

func (e SortSelected) apply(s State) State {
	if e.Sort == "" {
		e.Sort = DefaultSort
	}
	s.Params.Sort = e.Sort
	return s
}

func (e PodcastOpened) apply(s State) State {
	s.Selected = nil
	for i := range s.Podcasts {
		if s.Podcasts[i].ID == e.ID {
			p := s.Podcasts[i]
			s.Selected = &p
			break
		}
	}
	return s
}

func (ModalClosed) apply(s State) State {
	s.Selected = nil
	return s
}

// Reduce applies events in order and returns the resulting state.
func Reduce(s State, events ...Event) State {
	for _, e := range events {
		if e == nil {
			continue
		}
		s = e.apply(s)
	}
	return s
}

// View recomputes the derived list for the current params.
func (s State) View() []models.Podcast {
	return View(s.Podcasts, s.Params)
}

// Phase reports what to render. Ready with an empty view is PhaseEmpty.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Error != "":
		return PhaseError
	case len(s.View()) == 0:
		return PhaseEmpty
	default:
		return PhaseReady
	}
}

// SeasonsOf returns the synthetic seasons of a podcast.
func (s State) SeasonsOf(id string) []models.Season {
	seasons := s.Seasons[id]
	if seasons == nil {
		return []models.Season{}
	}
	return seasons
}
