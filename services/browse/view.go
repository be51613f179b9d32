// Package browse derives the visible podcast list from the loaded catalog and
// the viewer's genre and sort selections.
package browse

import (
	"sort"
	"strconv"
	"strings"

	"podcatalog/models"
)

// SortKey selects the ordering of the derived view.
type SortKey string

const (
	SortUpdatedDesc SortKey = "updated-desc"
	SortPopularDesc SortKey = "popular-desc"
	// SortNewestDesc orders exactly like SortUpdatedDesc. The catalog has no
	// creation date so "newest" falls back to the last update. Known defect,
	// kept so existing links keep their meaning.
	SortNewestDesc SortKey = "newest-desc"

	DefaultSort = SortUpdatedDesc
)

// GenreAll is the selector that disables genre filtering.
const GenreAll = "all"

const genrePrefix = "genre-"

// Params are the two viewer selections the view depends on.
type Params struct {
	Genre string
	Sort  SortKey
}

// DefaultParams is the initial selection.
func DefaultParams() Params {
	return Params{Genre: GenreAll, Sort: DefaultSort}
}

// ParseSortKey returns the key for a raw query value. Empty means the default.
// Keys are case-sensitive; unknown keys are kept as-is and leave catalog
// order untouched.
func ParseSortKey(raw string) SortKey {
	if raw == "" {
		return DefaultSort
	}
	return SortKey(raw)
}

// ParseGenreSelector returns the selector for a raw query value. Empty means
// "all"; anything else is kept verbatim, so "ALL" matches nothing.
func ParseGenreSelector(raw string) string {
	if raw == "" {
		return GenreAll
	}
	return raw
}

// GenreSelector formats the selector for a genre id.
func GenreSelector(id int) string {
	return genrePrefix + strconv.Itoa(id)
}

// genreID extracts the id from a "genre-<id>" selector.
func genreID(selector string) (int, bool) {
	if !strings.HasPrefix(selector, genrePrefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(selector, genrePrefix))
	if err != nil {
		return 0, false
	}
	return id, true
}

// Known reports whether the key has a defined ordering.
func (k SortKey) Known() bool {
	switch k {
	case SortUpdatedDesc, SortPopularDesc, SortNewestDesc:
		return true
	default:
		return false
	}
}

// View filters and sorts the catalog. The input slice is never modified and
// the result is always a fresh slice. A selector that names no valid genre id
// matches nothing.
func View(podcasts []models.Podcast, params Params) []models.Podcast {
	result := make([]models.Podcast, 0, len(podcasts))

	genre := ParseGenreSelector(params.Genre)
	if genre == GenreAll {
		result = append(result, podcasts...)
	} else if id, ok := genreID(genre); ok {
		for _, p := range podcasts {
			if p.HasGenre(id) {
				result = append(result, p)
			}
		}
	}

	if less := comparator(params.Sort); less != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return less(result[i], result[j])
		})
	}
	return result
}

// comparator returns the "comes before" function for a key, or nil when the
// key does not reorder.
func comparator(key SortKey) func(a, b models.Podcast) bool {
	switch key {
	case SortUpdatedDesc, SortNewestDesc:
		return func(a, b models.Podcast) bool {
			return a.Updated.After(b.Updated.Time)
		}
	case SortPopularDesc:
		return func(a, b models.Podcast) bool {
			return a.Seasons > b.Seasons
		}
	default:
		return nil
	}
}
