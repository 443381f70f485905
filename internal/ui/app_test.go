package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesavant42/cinesearch/internal/api"
	"github.com/thesavant42/cinesearch/internal/browse"
	"github.com/thesavant42/cinesearch/internal/library"
	"github.com/thesavant42/cinesearch/internal/models"
)

type stubSource struct{}

func (stubSource) Search(ctx context.Context, term string, page int) (*models.SearchResult, error) {
	return nil, fmt.Errorf("not used")
}

func (stubSource) Detail(ctx context.Context, id string) (*models.MovieDetail, error) {
	return nil, fmt.Errorf("not used")
}

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) AppModel {
	t.Helper()
	lib := library.Open(
		library.NewMemoryRepository[models.FavoriteEntry](),
		library.NewMemoryRepository[models.HistoryEntry](),
		nil,
	)
	lib.SetClock(func() time.Time { return testNow })
	m := NewAppModel(stubSource{}, lib, nil, time.Second)
	m.now = func() time.Time { return testNow }
	return m
}

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(AppModel)
	require.True(t, ok)
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+f":
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	case "ctrl+h":
		return tea.KeyMsg{Type: tea.KeyCtrlH}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func search(t *testing.T, m AppModel, term string) AppModel {
	t.Helper()
	m.focusInput()
	m.input.SetValue(term)
	m = update(t, m, key("enter"))
	require.True(t, m.loading)
	return m
}

func movies(n int) []models.MovieSummary {
	out := make([]models.MovieSummary, n)
	for i := range out {
		out[i] = models.MovieSummary{IMDbID: fmt.Sprintf("tt%03d", i), Title: fmt.Sprintf("Movie %d", i), Year: "2000", Poster: "N/A"}
	}
	return out
}

func TestSearchShowsResults(t *testing.T) {
	m := search(t, newTestApp(t), "alien")
	assert.Equal(t, []string{"alien"}, []string{m.lib.History()[0].Term})

	q := browse.Query{Term: "alien", Page: 1, Generation: 1}
	m = update(t, m, searchResultMsg{query: q, result: &models.SearchResult{Term: "alien", Page: 1, TotalResults: 23, Movies: movies(10)}})

	assert.False(t, m.loading)
	assert.Len(t, m.items(), 10)
	assert.Equal(t, 3, m.state.TotalPages)
	assert.Contains(t, m.View(), "Page 1 of 3")
}

func TestSearchErrorShowsBannerAndClearsResults(t *testing.T) {
	m := search(t, newTestApp(t), "alien")
	m = update(t, m, searchResultMsg{query: browse.Query{Term: "alien", Page: 1, Generation: 1}, result: &models.SearchResult{TotalResults: 5, Movies: movies(5)}})
	require.Len(t, m.items(), 5)

	m = search(t, m, "qwertyuiop")
	m = update(t, m, searchResultMsg{
		query: browse.Query{Term: "qwertyuiop", Page: 1, Generation: 2},
		err:   &api.APIError{Message: "Movie not found!"},
	})

	assert.Equal(t, "Movie not found!", m.StatusMsg)
	assert.True(t, m.StatusIsErr)
	assert.Empty(t, m.items())
	assert.Empty(t, m.table.Rows())
	assert.Contains(t, m.View(), "Movie not found!")
}

func TestBannerExpires(t *testing.T) {
	m := newTestApp(t)
	m.input.SetValue("   ")
	m = update(t, m, key("enter"))
	assert.Equal(t, browse.MsgEmptyTerm, m.StatusMsg)

	m.now = func() time.Time { return testNow.Add(StatusDuration - time.Second) }
	m = update(t, m, statusExpiredMsg{})
	assert.True(t, m.HasStatus())

	m.now = func() time.Time { return testNow.Add(StatusDuration) }
	m = update(t, m, statusExpiredMsg{})
	assert.False(t, m.HasStatus())
}

func TestStaleResponseIgnored(t *testing.T) {
	m := search(t, newTestApp(t), "alien")
	m = search(t, m, "aliens")

	m = update(t, m, searchResultMsg{query: browse.Query{Term: "alien", Page: 1, Generation: 1}, result: &models.SearchResult{TotalResults: 99, Movies: movies(10)}})
	assert.True(t, m.loading)
	assert.Empty(t, m.items())

	m = update(t, m, searchResultMsg{query: browse.Query{Term: "aliens", Page: 1, Generation: 2}, result: &models.SearchResult{TotalResults: 2, Movies: movies(2)}})
	assert.False(t, m.loading)
	assert.Len(t, m.items(), 2)
}

func TestToggleFavoriteFromResultsUpdatesBadge(t *testing.T) {
	m := search(t, newTestApp(t), "alien")
	m = update(t, m, searchResultMsg{query: browse.Query{Term: "alien", Page: 1, Generation: 1}, result: &models.SearchResult{TotalResults: 3, Movies: movies(3)}})

	m = update(t, m, key("f"))
	assert.True(t, m.lib.IsFavorite("tt000"))
	assert.Contains(t, m.renderHeader(), FavoriteGlyph+" 1")

	m = update(t, m, key("f"))
	assert.False(t, m.lib.IsFavorite("tt000"))
}

func TestFavoritesViewPagination(t *testing.T) {
	m := newTestApp(t)
	for _, mv := range movies(15) {
		_, err := m.lib.ToggleFavorite(mv.IMDbID, models.MovieDetail{Title: mv.Title})
		require.NoError(t, err)
	}

	m = update(t, m, key("ctrl+f"))
	assert.Equal(t, browse.ViewFavorites, m.state.View)
	assert.Len(t, m.items(), 10)

	m = update(t, m, key("n"))
	assert.Equal(t, 2, m.state.Page)
	assert.Len(t, m.items(), 5)
	assert.Contains(t, m.View(), "Page 2 of 2")

	// Last page: next is a no-op
	m = update(t, m, key("n"))
	assert.Equal(t, 2, m.state.Page)
}

func TestGridListToggle(t *testing.T) {
	m := search(t, newTestApp(t), "alien")
	m = update(t, m, searchResultMsg{query: browse.Query{Term: "alien", Page: 1, Generation: 1}, result: &models.SearchResult{TotalResults: 3, Movies: movies(3)}})
	assert.True(t, m.state.Grid)
	assert.Contains(t, m.View(), PlaceholderGlyph)

	m = update(t, m, key("l"))
	assert.False(t, m.state.Grid)
	assert.Contains(t, m.View(), "IMDb ID")
}

func TestHistoryOverlayRemove(t *testing.T) {
	m := newTestApp(t)
	require.NoError(t, m.lib.RecordSearch("alien"))
	require.NoError(t, m.lib.RecordSearch("dune"))

	m = update(t, m, key("ctrl+h"))
	assert.Equal(t, overlayHistory, m.overlay)
	view := m.View()
	assert.Contains(t, view, "dune")
	assert.Contains(t, view, "Today")

	m = update(t, m, key("d"))
	require.Len(t, m.lib.History(), 1)
	assert.Equal(t, "alien", m.lib.History()[0].Term)

	m = update(t, m, key("c"))
	assert.Equal(t, overlayConfirm, m.overlay)
	m = update(t, m, key("esc"))
	assert.Equal(t, overlayHistory, m.overlay)
	assert.Len(t, m.lib.History(), 1)

	m = update(t, m, key("esc"))
	assert.Equal(t, overlayNone, m.overlay)
}

func TestDetailStaleResponseIgnored(t *testing.T) {
	m := search(t, newTestApp(t), "alien")
	m = update(t, m, searchResultMsg{query: browse.Query{Term: "alien", Page: 1, Generation: 1}, result: &models.SearchResult{TotalResults: 2, Movies: movies(2)}})

	m = update(t, m, key("enter"))
	require.Equal(t, overlayDetail, m.overlay)
	m = update(t, m, key("esc"))

	m = update(t, m, detailResultMsg{query: browse.DetailQuery{ID: "tt000", Generation: 1}, detail: &models.MovieDetail{IMDbID: "tt000", Title: "Late"}})
	assert.Nil(t, m.detail)
	assert.Equal(t, overlayNone, m.overlay)
}

func TestDetailShowsFallbacks(t *testing.T) {
	out := RenderDetail(models.MovieDetail{IMDbID: "tt1", Title: "Alien", Plot: "N/A"}, true, 80)
	assert.Contains(t, out, "No description available")
	assert.Contains(t, out, PlaceholderGlyph)
	assert.Contains(t, out, "In favorites")
	assert.True(t, strings.Contains(out, "N/A"))
}

func TestDetailFailureKeepsResults(t *testing.T) {
	m := search(t, newTestApp(t), "alien")
	m = update(t, m, searchResultMsg{query: browse.Query{Term: "alien", Page: 1, Generation: 1}, result: &models.SearchResult{Term: "alien", Page: 1, TotalResults: 23, Movies: movies(10)}})
	m = update(t, m, key("l"))
	before := m.state
	moviesBefore := m.items()

	m = update(t, m, key("enter"))
	require.Equal(t, overlayDetail, m.overlay)
	m = update(t, m, detailResultMsg{
		query: browse.DetailQuery{ID: "tt000", Generation: 1},
		err:   &api.APIError{Message: "Incorrect IMDb ID."},
	})

	assert.Equal(t, overlayNone, m.overlay)
	assert.False(t, m.detailLoading)
	assert.Nil(t, m.detail)
	assert.Equal(t, "Incorrect IMDb ID.", m.StatusMsg)
	assert.True(t, m.StatusIsErr)

	assert.Equal(t, before.Term, m.state.Term)
	assert.Equal(t, before.Page, m.state.Page)
	assert.Equal(t, before.TotalResults, m.state.TotalResults)
	assert.Equal(t, before.TotalPages, m.state.TotalPages)
	assert.Equal(t, before.Grid, m.state.Grid)
	assert.Equal(t, before.View, m.state.View)
	assert.Equal(t, moviesBefore, m.items())
	assert.Len(t, m.table.Rows(), 10)

	view := m.View()
	assert.Contains(t, view, "Incorrect IMDb ID.")
	assert.Contains(t, view, "Page 1 of 3")
}

func TestDetailTransportFailureShowsGenericBanner(t *testing.T) {
	m := search(t, newTestApp(t), "alien")
	m = update(t, m, searchResultMsg{query: browse.Query{Term: "alien", Page: 1, Generation: 1}, result: &models.SearchResult{TotalResults: 2, Movies: movies(2)}})

	m = update(t, m, key("enter"))
	m = update(t, m, detailResultMsg{
		query: browse.DetailQuery{ID: "tt000", Generation: 1},
		err:   fmt.Errorf("%w: connection refused", api.ErrTransport),
	})

	assert.Equal(t, overlayNone, m.overlay)
	assert.Equal(t, browse.MsgDetailFailed, m.StatusMsg)
	assert.Len(t, m.items(), 2)
}
