package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesavant42/cinesearch/internal/models"
)

func TestPrintSearchResult(t *testing.T) {
	var buf bytes.Buffer
	res := &models.SearchResult{Term: "alien", Page: 2, TotalResults: 23, Movies: movies(3)}
	PrintSearchResult(&buf, res, map[string]bool{"tt001": true})

	out := buf.String()
	assert.Contains(t, out, `Results for "alien" (23 found)`)
	assert.Contains(t, out, "Movie 2")
	assert.Contains(t, out, "Page 2 of 3")
	// Header plus the one favorite row
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(FavoriteGlyph)))
}

func TestPrintEmptyCollections(t *testing.T) {
	var buf bytes.Buffer
	PrintFavorites(&buf, nil)
	PrintHistory(&buf, nil, testNow)
	assert.Contains(t, buf.String(), "Favorites (0)")
	assert.Contains(t, buf.String(), "No search history")
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	entries := []models.HistoryEntry{
		models.NewHistoryEntry("dune", testNow),
		models.NewHistoryEntry("alien", testNow.Add(-24*time.Hour)),
	}
	PrintHistory(&buf, entries, testNow)
	assert.Contains(t, buf.String(), "dune")
	assert.Contains(t, buf.String(), "Yesterday")
}

func TestHistoryRows(t *testing.T) {
	rows := HistoryRows([]models.HistoryEntry{models.NewHistoryEntry("dune", testNow)}, testNow)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"1", "dune", "Today"}, []string(rows[0]))
}

func TestCalculateColumnsFitsWidth(t *testing.T) {
	cols := CalculateColumns(MovieColumns(), 100)
	total := 0
	for _, c := range cols {
		total += c.Width + 2
	}
	assert.LessOrEqual(t, total, 100)
	assert.Equal(t, "Title", cols[1].Title)
}

func TestExportFavoritesHTML(t *testing.T) {
	dir := t.TempDir()
	entries := []models.FavoriteEntry{{IMDbID: "tt0078748", Title: "Alien", Year: "1979", Poster: "N/A"}}

	path, err := ExportFavoritesHTML(filepath.Join(dir, "favs"), entries, testNow)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "favs.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Alien")

	assert.Equal(t, "favorites-2024-05-01.html", DefaultExportName(testNow))
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Alien", "Alien"},
		{"Alien\x1b]0;pwned\x07\x1b[2J", "Alien"},
		{"\x1b[31mRed\x1b[0m", "Red"},
		{"star\twars\r\n", "star wars  "},
		{"bell\x07 and \x00nul\x7f", "bell and nul"},
		{"Amélie ★", "Amélie ★"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanText(tt.in), "%q", tt.in)
	}
}

func TestExternalTextCannotDriveTerminal(t *testing.T) {
	hostile := "Alien\x1b]0;pwned\x07\x1b[2J"
	movie := models.MovieSummary{IMDbID: "tt0078748", Title: hostile, Year: "1979", Type: "movie", Poster: "N/A"}
	detail := models.MovieDetail{IMDbID: "tt0078748", Title: hostile, Year: "1979", Plot: hostile, Actors: hostile, Poster: "N/A"}

	var buf bytes.Buffer
	PrintSearchResult(&buf, &models.SearchResult{Term: hostile, Page: 1, TotalResults: 1, Movies: []models.MovieSummary{movie}}, nil)

	outputs := map[string]string{
		"card":   renderCard(movie, false, false),
		"detail": RenderDetail(detail, false, 80),
		"report": buf.String(),
		"row":    strings.Join(MovieRows([]models.MovieSummary{movie}, nil)[0], " "),
	}
	for name, out := range outputs {
		assert.Contains(t, out, "Alien", name)
		assert.NotContains(t, out, "pwned", name)
		assert.NotContains(t, out, "\x1b[2J", name)
		assert.NotContains(t, out, "\x07", name)
	}
}
