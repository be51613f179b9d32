package catalog

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"podcatalog/models"
)

// LoadFailedMessage is the single user-facing message for any load failure.
const LoadFailedMessage = "Failed to fetch podcasts from the API. Please check your internet connection and try again."

// Status is the lifecycle state of the catalog.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Fetcher retrieves the raw podcast list.
type Fetcher interface {
	Fetch(ctx context.Context) ([]models.Podcast, error)
}

// Catalog is an immutable snapshot of one successful load.
type Catalog struct {
	Podcasts []models.Podcast
	Genres   []models.Genre
	Seasons  map[string][]models.Season
	LoadedAt time.Time

	byID map[string]int
}

// Podcast looks up a record by id.
func (c *Catalog) Podcast(id string) (models.Podcast, bool) {
	if c == nil {
		return models.Podcast{}, false
	}
	idx, ok := c.byID[id]
	if !ok {
		return models.Podcast{}, false
	}
	return c.Podcasts[idx], true
}

// GenresOf resolves a podcast's genre ids to labelled genres, preserving order.
func (c *Catalog) GenresOf(p models.Podcast) []models.Genre {
	out := make([]models.Genre, 0, len(p.Genres))
	for _, id := range p.Genres {
		out = append(out, models.Genre{ID: id, Name: GenreLabel(id)})
	}
	return out
}

// Snapshot is a consistent read of the service state.
type Snapshot struct {
	Status  Status
	Catalog *Catalog
	Error   string
}

// Service owns the in-memory catalog for the process lifetime.
type Service struct {
	fetcher Fetcher
	rng     IntSource
	now     func() time.Time

	once    sync.Once
	loadErr error

	mu      sync.RWMutex
	status  Status
	catalog *Catalog
	errMsg  string
}

// New creates a catalog service. A nil rng uses DefaultSource.
func New(fetcher Fetcher, rng IntSource) *Service {
	if rng == nil {
		rng = DefaultSource
	}
	return &Service{
		fetcher: fetcher,
		rng:     rng,
		now:     time.Now,
		status:  StatusLoading,
	}
}

// Load fetches the catalog. Only the first call does any work; later calls
// return the first call's result.
func (s *Service) Load(ctx context.Context) error {
	s.once.Do(func() {
		err := s.load(ctx)
		s.mu.Lock()
		s.loadErr = err
		s.mu.Unlock()
	})
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Reload discards the current state and fetches again, the same as a fresh
// start of the viewer.
func (s *Service) Reload(ctx context.Context) error {
	s.once.Do(func() {})

	s.mu.Lock()
	s.status = StatusLoading
	s.catalog = nil
	s.errMsg = ""
	s.mu.Unlock()

	err := s.load(ctx)
	s.mu.Lock()
	s.loadErr = err
	s.mu.Unlock()
	return err
}

// Snapshot returns the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Status: s.status, Catalog: s.catalog, Error: s.errMsg}
}

func (s *Service) load(ctx context.Context) error {
	if s.fetcher == nil {
		return s.fail(errors.New("catalog fetcher not configured"))
	}

	start := s.now()
	podcasts, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return s.fail(err)
	}

	missing := 0
	for i := range podcasts {
		if podcasts[i].Genres == nil {
			podcasts[i].Genres = []int{}
			missing++
		}
	}
	if missing > 0 {
		log.Printf("[catalog] %d podcasts had no genres field, treating as empty", missing)
	}

	byID := make(map[string]int, len(podcasts))
	for i, p := range podcasts {
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = i
		}
	}

	c := &Catalog{
		Podcasts: podcasts,
		Genres:   DeriveGenres(podcasts),
		Seasons:  DeriveSeasons(podcasts, s.rng),
		LoadedAt: s.now(),
		byID:     byID,
	}

	s.mu.Lock()
	s.catalog = c
	s.status = StatusReady
	s.errMsg = ""
	s.mu.Unlock()

	log.Printf("[catalog] loaded %d podcasts, %d genres in %s",
		len(c.Podcasts), len(c.Genres), c.LoadedAt.Sub(start).Round(time.Millisecond))
	return nil
}

func (s *Service) fail(err error) error {
	log.Printf("[catalog] error fetching podcasts: %v", err)

	s.mu.Lock()
	s.catalog = nil
	s.status = StatusFailed
	s.errMsg = LoadFailedMessage
	s.mu.Unlock()
	return err
}
