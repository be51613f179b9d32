package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podcatalog/models"
)

// fixedSource returns the values in order, cycling.
type fixedSource struct {
	values []int
	calls  int
}

func (f *fixedSource) IntN(n int) int {
	v := f.values[f.calls%len(f.values)] % n
	f.calls++
	return v
}

func TestDeriveGenres_DedupesInFirstSeenOrder(t *testing.T) {
	podcasts := []models.Podcast{
		{ID: "a", Genres: []int{3, 1}},
		{ID: "b", Genres: []int{1, 7}},
		{ID: "c", Genres: []int{}},
		{ID: "d", Genres: []int{7, 3}},
	}

	want := []models.Genre{{ID: 3, Name: "Genre 3"}, {ID: 1, Name: "Genre 1"}, {ID: 7, Name: "Genre 7"}}
	assert.Equal(t, want, DeriveGenres(podcasts))
}

func TestDeriveGenres_EmptyCatalog(t *testing.T) {
	genres := DeriveGenres(nil)
	require.NotNil(t, genres)
	assert.Empty(t, genres)
}

func TestDeriveSeasons_StructureAndRange(t *testing.T) {
	podcasts := []models.Podcast{
		{ID: "a", Seasons: 3},
		{ID: "b", Seasons: 0},
		{ID: "c", Seasons: 1},
	}
	rng := &fixedSource{values: []int{0, 9, 4, 100}}

	seasons := DeriveSeasons(podcasts, rng)

	require.Len(t, seasons["a"], 3)
	assert.Empty(t, seasons["b"])
	assert.Equal(t, []models.Season{
		{Title: "Season 1", Episodes: 5},
		{Title: "Season 2", Episodes: 14},
		{Title: "Season 3", Episodes: 9},
	}, seasons["a"])
}

func TestDeriveSeasons_DefaultSourceStaysInRange(t *testing.T) {
	podcasts := []models.Podcast{{ID: "a", Seasons: 50}}
	for _, s := range DeriveSeasons(podcasts, nil)["a"] {
		assert.GreaterOrEqual(t, s.Episodes, 5)
		assert.LessOrEqual(t, s.Episodes, 14)
	}
}
