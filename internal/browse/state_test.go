package browse

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesavant42/cinesearch/internal/api"
	"github.com/thesavant42/cinesearch/internal/models"
)

func result(total int) *models.SearchResult {
	return &models.SearchResult{TotalResults: total}
}

func TestStartSearchResetsPage(t *testing.T) {
	s := New()
	s.Page = 4

	s, q, err := s.StartSearch("  star\twars\n ")
	require.NoError(t, err)
	assert.Equal(t, "star wars", s.Term)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, Query{Term: "star wars", Page: 1, Generation: 1}, q)
}

func TestNormalizeTerm(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"alien", "alien"},
		{"  alien  ", "alien"},
		{"star\twars", "star wars"},
		{"star\r\nwars", "star  wars"},
		{"ali\x00en\x7f", "alien"},
		{"\t\n", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTerm(tt.in), "%q", tt.in)
	}
}

func TestStartSearchRejectsEmptyTerm(t *testing.T) {
	s := New()
	next, _, err := s.StartSearch("   ")
	assert.True(t, errors.Is(err, ErrEmptyTerm))
	assert.Equal(t, s, next)
}

func TestPagination(t *testing.T) {
	s, q, err := New().StartSearch("alien")
	require.NoError(t, err)

	s, ok := s.ApplySearch(q, result(23))
	require.True(t, ok)
	assert.Equal(t, 3, s.TotalPages)
	assert.Equal(t, "Page 1 of 3", s.PageInfo())
	assert.False(t, s.HasPrev())

	_, _, ok = s.PrevPage()
	assert.False(t, ok)

	s, next, ok := s.NextPage()
	require.True(t, ok)
	require.NotNil(t, next)
	assert.Equal(t, 2, next.Page)

	s, next, _ = s.NextPage()
	assert.Equal(t, 3, next.Page)
	s, _ = s.ApplySearch(*next, result(23))
	assert.False(t, s.HasNext())

	_, _, ok = s.NextPage()
	assert.False(t, ok)
}

func TestSinglePageHasNoPageInfo(t *testing.T) {
	s, q, _ := New().StartSearch("alien")
	s, _ = s.ApplySearch(q, result(7))
	assert.Equal(t, 1, s.TotalPages)
	assert.Empty(t, s.PageInfo())
}

func TestStaleSearchResponseIsDropped(t *testing.T) {
	s, first, _ := New().StartSearch("alien")
	s, second, _ := s.StartSearch("aliens")

	next, ok := s.ApplySearch(first, result(500))
	assert.False(t, ok)
	assert.Equal(t, s, next)

	_, ok = s.FailSearch(first)
	assert.False(t, ok)

	s, ok = s.ApplySearch(second, result(12))
	require.True(t, ok)
	assert.Equal(t, 12, s.TotalResults)
}

func TestSearchResponseIgnoredInFavoritesView(t *testing.T) {
	s, q, _ := New().StartSearch("alien")
	s = s.ShowFavorites(3)

	_, ok := s.ApplySearch(q, result(40))
	assert.False(t, ok)
	assert.Equal(t, 3, s.TotalResults)
	assert.Equal(t, 1, s.TotalPages)
}

func TestFailSearchClearsTotals(t *testing.T) {
	s, q, _ := New().StartSearch("alien")
	s, _ = s.ApplySearch(q, result(40))
	s, q, _ = s.StartSearch("qwertyuiop")

	s, ok := s.FailSearch(q)
	require.True(t, ok)
	assert.Zero(t, s.TotalResults)
	assert.Zero(t, s.TotalPages)
	assert.False(t, s.HasNext())
}

func TestFavoritesViewPagesLocally(t *testing.T) {
	s := New().ShowFavorites(15)
	assert.Equal(t, ViewFavorites, s.View)
	assert.Equal(t, 2, s.TotalPages)

	s, q, ok := s.NextPage()
	require.True(t, ok)
	assert.Nil(t, q)
	assert.Equal(t, 2, s.Page)

	// Removing favorites from the last page pulls the page back
	s = s.RefreshFavorites(10)
	assert.Equal(t, 1, s.Page)
	s = s.RefreshFavorites(0)
	assert.Equal(t, 1, s.Page)
	assert.Zero(t, s.TotalPages)
}

func TestShowSearchRefetchesCurrentTerm(t *testing.T) {
	s, _, _ := New().StartSearch("alien")
	s = s.ShowFavorites(2)

	s, q := s.ShowSearch()
	require.NotNil(t, q)
	assert.Equal(t, "alien", q.Term)
	assert.True(t, s.IsCurrent(*q))

	empty, q := New().ShowFavorites(1).ShowSearch()
	assert.Nil(t, q)
	assert.Equal(t, ViewSearch, empty.View)
}

func TestDetailGenerations(t *testing.T) {
	s, first := New().StartDetail("tt1")
	s, second := s.StartDetail("tt2")
	assert.False(t, s.AcceptDetail(first))
	assert.True(t, s.AcceptDetail(second))

	s = s.CancelDetail()
	assert.False(t, s.AcceptDetail(second))
}

func TestSetGrid(t *testing.T) {
	s := New()
	assert.True(t, s.Grid)
	assert.False(t, s.SetGrid(false).Grid)
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		search string
		detail string
	}{
		{"api message", &api.APIError{Message: "Movie not found!"}, "Movie not found!", "Movie not found!"},
		{"api without message", &api.APIError{}, MsgNoResults, MsgDetailNotFound},
		{"wrapped api", fmt.Errorf("search: %w", &api.APIError{Message: "Too many results."}), "Too many results.", "Too many results."},
		{"transport", fmt.Errorf("%w: dial tcp", api.ErrTransport), MsgSearchFailed, MsgDetailFailed},
		{"empty term", ErrEmptyTerm, MsgEmptyTerm, MsgEmptyTerm},
		{"nil", nil, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.search, SearchErrorMessage(tt.err))
			assert.Equal(t, tt.detail, DetailErrorMessage(tt.err))
		})
	}
}
