package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podcatalog/models"
)

func loadedState() State {
	return Reduce(InitialState(), CatalogLoaded{
		Podcasts: samplePodcasts(),
		Genres:   []models.Genre{{ID: 1, Name: "Genre 1"}, {ID: 2, Name: "Genre 2"}, {ID: 3, Name: "Genre 3"}},
		Seasons:  map[string][]models.Season{"a": {{Title: "Season 1", Episodes: 7}, {Title: "Season 2", Episodes: 9}}},
	})
}

func TestInitialState(t *testing.T) {
	s := InitialState()
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.Equal(t, DefaultParams(), s.Params)
	assert.Empty(t, s.View())
}

func TestReduce_CatalogLoaded(t *testing.T) {
	s := loadedState()
	assert.Equal(t, PhaseReady, s.Phase())
	assert.Len(t, s.View(), 4)
	assert.Equal(t, "b", s.View()[0].ID)
}

func TestReduce_CatalogFailed(t *testing.T) {
	s := Reduce(loadedState(), CatalogFailed{Message: "Failed to fetch"})
	assert.Equal(t, PhaseError, s.Phase())
	assert.Empty(t, s.Podcasts)
	assert.Equal(t, "Failed to fetch", s.Error)
}

func TestReduce_FilterToNothingIsEmptyPhase(t *testing.T) {
	s := Reduce(loadedState(), GenreSelected{Genre: "genre-42"})
	assert.Equal(t, PhaseEmpty, s.Phase())
	assert.Equal(t, "genre-42", s.Params.Genre)
}

func TestReduce_DoesNotMutatePrevious(t *testing.T) {
	before := loadedState()
	after := Reduce(before, GenreSelected{Genre: "genre-3"}, SortSelected{Sort: SortPopularDesc}, PodcastOpened{ID: "a"})

	assert.Equal(t, DefaultParams(), before.Params)
	assert.Nil(t, before.Selected)
	assert.Equal(t, Params{Genre: "genre-3", Sort: SortPopularDesc}, after.Params)
	require.NotNil(t, after.Selected)
	assert.Equal(t, "a", after.Selected.ID)
}

func TestReduce_SortSelectedEmptyUsesDefault(t *testing.T) {
	s := Reduce(loadedState(), SortSelected{Sort: SortPopularDesc}, SortSelected{})
	assert.Equal(t, DefaultSort, s.Params.Sort)
}

func TestReduce_ModalOpenClose(t *testing.T) {
	s := Reduce(loadedState(), PodcastOpened{ID: "missing"})
	assert.Nil(t, s.Selected)

	s = Reduce(s, PodcastOpened{ID: "b"})
	require.NotNil(t, s.Selected)
	assert.Equal(t, "Bravo", s.Selected.Title)

	s = Reduce(s, ModalClosed{})
	assert.Nil(t, s.Selected)
}

func TestReduce_NilEventIgnored(t *testing.T) {
	s := Reduce(loadedState(), nil)
	assert.Equal(t, PhaseReady, s.Phase())
}

func TestState_SeasonsOf(t *testing.T) {
	s := loadedState()
	assert.Len(t, s.SeasonsOf("a"), 2)
	assert.NotNil(t, s.SeasonsOf("zzz"))
	assert.Empty(t, s.SeasonsOf("zzz"))
}
