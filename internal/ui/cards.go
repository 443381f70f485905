package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thesavant42/cinesearch/internal/models"
	"github.com/thesavant42/cinesearch/internal/render"
)

// renderCard draws one grid tile
func renderCard(m models.MovieSummary, favorite, selected bool) string {
	inner := CardWidth - 2

	poster := DimStyle.Render(PlaceholderGlyph + " no poster")
	if m.PosterURL() != "" {
		poster = DimStyle.Render("▣ poster")
	}
	mark := NotFavoriteGlyph
	if favorite {
		mark = AccentStyle.Render(FavoriteGlyph)
	}

	lines := []string{
		poster,
		TitleStyle.Render(truncateToWidth(cleanText(m.Title), inner)),
		NormalStyle.Render(cleanText(models.OrNA(m.Year))),
		DimStyle.Render(cleanText(models.OrNA(m.Type))),
		mark,
	}

	style := CardStyle
	if selected {
		style = CardSelectedStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

// RenderGrid lays movies out as cards, scrolled so the cursor is visible
func RenderGrid(movies []models.MovieSummary, favorites map[string]bool, cursor int, layout Layout) string {
	if len(movies) == 0 {
		return DimStyle.Render(render.NoMovies)
	}

	cols := layout.GridColumns
	totalRows := (len(movies) + cols - 1) / cols
	visible := layout.TableHeight / (CardHeight + 2)
	if visible < 1 {
		visible = 1
	}
	start := 0
	if cursorRow := cursor / cols; cursorRow >= visible {
		start = cursorRow - visible + 1
	}
	end := min(start+visible, totalRows)

	var rows []string
	for r := start; r < end; r++ {
		var cards []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(movies) {
				break
			}
			cards = append(cards, renderCard(movies[i], favorites[movies[i].IMDbID], i == cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	out := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if totalRows > visible {
		out += "\n" + DimStyle.Render(fmt.Sprintf("rows %d-%d of %d", start+1, end, totalRows))
	}
	return out
}

// RenderDetail draws the full record of one movie
func RenderDetail(d models.MovieDetail, favorite bool, width int) string {
	var b strings.Builder

	b.WriteString(ViewHeader(fmt.Sprintf("%s (%s)", cleanText(models.OrNA(d.Title)), cleanText(models.OrNA(d.Year))), width))

	if d.PosterURL() == "" {
		b.WriteString(DimStyle.Render(PlaceholderGlyph+" no poster") + "\n\n")
	} else {
		b.WriteString(DimStyle.Render("Poster: "+cleanText(d.PosterURL())) + "\n\n")
	}

	field := func(name, value string) {
		b.WriteString(AccentStyle.Render(fmt.Sprintf("%-12s", name)))
		b.WriteString(NormalStyle.Render(cleanText(models.OrNA(value))))
		b.WriteString("\n")
	}
	field("Runtime", d.Runtime)
	field("IMDb Rating", d.IMDbRating)
	field("Genre", d.Genre)
	field("Director", d.Director)
	field("Actors", d.Actors)

	plot := render.NoPlot
	if models.Available(d.Plot) {
		plot = cleanText(d.Plot)
	}
	b.WriteString("\n")
	b.WriteString(NormalStyle.Width(width).Render(plot))
	b.WriteString("\n\n")

	if favorite {
		b.WriteString(AccentStyle.Render(FavoriteGlyph + " In favorites"))
	} else {
		b.WriteString(DimStyle.Render(NotFavoriteGlyph + " Not in favorites"))
	}
	return b.String()
}
