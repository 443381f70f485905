package ui

// columns.go provides column width calculation for bubbles/table.
// Use ColumnSpec and CalculateColumns() instead of duplicating percentage-based math.

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"github.com/thesavant42/cinesearch/internal/models"
	"github.com/thesavant42/cinesearch/internal/render"
)

// ColumnSpec defines a table column with flexible or fixed width.
// Use FlexRatio for columns that should expand/contract with terminal width.
// Use FixedWidth for columns that should maintain constant width.
type ColumnSpec struct {
	Title      string
	MinWidth   int // Minimum width (0 = no minimum)
	FixedWidth int // If > 0, use this exact width (ignores FlexRatio)
	FlexRatio  int // Relative ratio for flexible columns (0 = fixed-only)
}

// CalculateColumns computes column widths from specs.
// Flexible columns split remaining space by ratio after fixed columns are allocated.
func CalculateColumns(specs []ColumnSpec, totalWidth int) []table.Column {
	if totalWidth < 50 {
		totalWidth = 50
	}

	fixedTotal := 0
	flexTotal := 0
	for _, s := range specs {
		if s.FixedWidth > 0 {
			fixedTotal += s.FixedWidth
		} else {
			flexTotal += s.FlexRatio
		}
	}

	// bubbles/table pads each cell by one on both sides
	remaining := totalWidth - fixedTotal - 2*len(specs)
	if remaining < 0 {
		remaining = 0
	}

	columns := make([]table.Column, len(specs))
	for i, s := range specs {
		var width int
		if s.FixedWidth > 0 {
			width = s.FixedWidth
		} else if flexTotal > 0 {
			width = remaining * s.FlexRatio / flexTotal
		}
		if s.MinWidth > 0 && width < s.MinWidth {
			width = s.MinWidth
		}
		columns[i] = table.Column{Title: s.Title, Width: width}
	}

	return columns
}

// MovieColumns returns column specs for search results and favorites in list mode
func MovieColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: FavoriteGlyph, FixedWidth: 2},
		{Title: "Title", FlexRatio: 70, MinWidth: 20},
		{Title: "Year", FixedWidth: 11},
		{Title: "Type", FixedWidth: 8},
		{Title: "Poster", FixedWidth: 6},
		{Title: "IMDb ID", FixedWidth: 11},
	}
}

// HistoryColumns returns column specs for the search history overlay
func HistoryColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "#", FixedWidth: 3},
		{Title: "Search Term", FlexRatio: 100, MinWidth: 20},
		{Title: "When", FixedWidth: 12},
	}
}

// MovieRows builds one table row per movie, marking favorites
func MovieRows(movies []models.MovieSummary, favorites map[string]bool) []table.Row {
	rows := make([]table.Row, len(movies))
	for i, m := range movies {
		mark := ""
		if favorites[m.IMDbID] {
			mark = FavoriteGlyph
		}
		poster := PlaceholderGlyph
		if m.PosterURL() != "" {
			poster = "yes"
		}
		rows[i] = table.Row{
			mark,
			cleanText(m.Title),
			cleanText(models.OrNA(m.Year)),
			cleanText(models.OrNA(m.Type)),
			poster,
			cleanText(m.IMDbID),
		}
	}
	return rows
}

// HistoryRows builds one table row per history entry
func HistoryRows(entries []models.HistoryEntry, now time.Time) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			cleanText(e.Term),
			render.RelativeDate(e.When(), now),
		}
	}
	return rows
}
