package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/thesavant42/cinesearch/internal/models"
	"github.com/thesavant42/cinesearch/internal/render"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	borderLineStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	successStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)
)

// Report column widths: favorite mark, title, year, type, IMDb id
var reportWidths = []int{2, 40, 11, 8, 11}

// This is a CLI report (non-interactive), so rows are formatted with
// strings. Lipgloss is used only for colors.
func reportRow(cols ...string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		w := reportWidths[i]
		if StringWidth(c) > w {
			c = truncateToWidth(c, w)
		}
		parts[i] = c + strings.Repeat(" ", w-StringWidth(c))
	}
	return "│ " + strings.Join(parts, " │ ") + " │"
}

func reportBorder(left, right string) string {
	total := 0
	for _, w := range reportWidths {
		total += w + 3
	}
	return borderLineStyle.Render(left + strings.Repeat("─", total-1) + right)
}

// PrintMovieTable writes movies as a bordered table, marking favorites
func PrintMovieTable(w io.Writer, title string, movies []models.MovieSummary, favorites map[string]bool) {
	fmt.Fprintln(w, TitleStyle.Render(title))
	if len(movies) == 0 {
		fmt.Fprintln(w, DimStyle.Render(render.NoMovies))
		return
	}

	fmt.Fprintln(w, reportBorder("┌", "┐"))
	fmt.Fprintln(w, headerStyle.Render(reportRow(FavoriteGlyph, "Title", "Year", "Type", "IMDb ID")))
	fmt.Fprintln(w, reportBorder("├", "┤"))
	for _, m := range movies {
		mark := ""
		if favorites[m.IMDbID] {
			mark = FavoriteGlyph
		}
		fmt.Fprintln(w, NormalStyle.Render(reportRow(mark, cleanText(m.Title), cleanText(models.OrNA(m.Year)), cleanText(models.OrNA(m.Type)), cleanText(m.IMDbID))))
	}
	fmt.Fprintln(w, reportBorder("└", "┘"))
}

// PrintSearchResult writes one page of search results with its page info
func PrintSearchResult(w io.Writer, res *models.SearchResult, favorites map[string]bool) {
	title := fmt.Sprintf("Results for %q (%d found)", cleanText(res.Term), res.TotalResults)
	PrintMovieTable(w, title, res.Movies, favorites)
	if pages := res.TotalPages(); pages > 1 {
		fmt.Fprintln(w, HintStyle.Render(fmt.Sprintf("Page %d of %d", res.Page, pages)))
	}
}

// PrintFavorites writes the favorites collection
func PrintFavorites(w io.Writer, entries []models.FavoriteEntry) {
	movies := make([]models.MovieSummary, len(entries))
	ids := make(map[string]bool, len(entries))
	for i, e := range entries {
		movies[i] = e.Summary()
		ids[e.IMDbID] = true
	}
	PrintMovieTable(w, fmt.Sprintf("Favorites (%d)", len(entries)), movies, ids)
}

// PrintHistory writes the search history, most recent first
func PrintHistory(w io.Writer, entries []models.HistoryEntry, now time.Time) {
	fmt.Fprintln(w, TitleStyle.Render("Search History"))
	if len(entries) == 0 {
		fmt.Fprintln(w, DimStyle.Render(render.NoHistory))
		return
	}
	for i, e := range entries {
		fmt.Fprintf(w, "%s %s %s\n",
			AccentStyle.Render(fmt.Sprintf("%2d.", i+1)),
			NormalStyle.Render(cleanText(e.Term)),
			DimStyle.Render("("+render.RelativeDate(e.When(), now)+")"))
	}
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(successStyle.Render(message))
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Println(errorStyle.Render("Error: " + message))
}
