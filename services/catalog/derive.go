package catalog

import (
	"fmt"
	"math/rand/v2"

	"podcatalog/models"
)

const (
	minEpisodes   = 5
	episodeSpread = 10
)

// IntSource supplies pseudo-random integers in [0, n). *rand.Rand from
// math/rand/v2 satisfies it.
type IntSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource is safe for concurrent use.
var DefaultSource IntSource = globalSource{}

// GenreLabel synthesizes a display label for a genre id. The upstream API
// only carries ids, so there is no name lookup.
func GenreLabel(id int) string {
	return fmt.Sprintf("Genre %d", id)
}

// DeriveGenres returns every distinct genre id in first-seen order.
func DeriveGenres(podcasts []models.Podcast) []models.Genre {
	seen := make(map[int]struct{})
	genres := make([]models.Genre, 0)
	for _, p := range podcasts {
		for _, id := range p.Genres {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			genres = append(genres, models.Genre{ID: id, Name: GenreLabel(id)})
		}
	}
	return genres
}

// DeriveSeasons builds placeholder season lists keyed by podcast id. Episode
// counts come from rng and are not reproducible across loads.
func DeriveSeasons(podcasts []models.Podcast, rng IntSource) map[string][]models.Season {
	if rng == nil {
		rng = DefaultSource
	}
	seasons := make(map[string][]models.Season, len(podcasts))
	for _, p := range podcasts {
		list := make([]models.Season, 0, max(p.Seasons, 0))
		for i := 0; i < p.Seasons; i++ {
			list = append(list, models.Season{
				Title:    fmt.Sprintf("Season %d", i+1),
				Episodes: rng.IntN(episodeSpread) + minEpisodes,
			})
		}
		seasons[p.ID] = list
	}
	return seasons
}
