// Package render builds HTML markup for movie records. Every value that came
// from OMDb or from the user is escaped before it reaches the markup.
package render

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/thesavant42/cinesearch/internal/models"
)

// PosterPlaceholder is shown in place of a missing poster image
const PosterPlaceholder = `<i class="fas fa-film"></i>`

// Empty-state texts
const (
	NoMovies    = "No movies found"
	NoFavorites = "No favorites yet"
	NoHistory   = "No search history"
	NoPlot      = "No description available"
)

// Card is one result tile
type Card struct {
	Movie    models.MovieSummary
	Favorite bool
}

// CardsFromFavorites builds cards for favorite entries
func CardsFromFavorites(entries []models.FavoriteEntry) []Card {
	cards := make([]Card, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, Card{Movie: e.Summary(), Favorite: true})
	}
	return cards
}

// CardsFromResults builds cards for a search page, marking favorites
func CardsFromResults(movies []models.MovieSummary, favorites map[string]bool) []Card {
	cards := make([]Card, 0, len(movies))
	for _, m := range movies {
		cards = append(cards, Card{Movie: m, Favorite: favorites[m.IMDbID]})
	}
	return cards
}

func esc(s string) string {
	return html.EscapeString(s)
}

func poster(src, title string) string {
	if src == "" {
		return `<div class="poster-placeholder">` + PosterPlaceholder + `</div>`
	}
	return fmt.Sprintf(`<img class="poster" src="%s" alt="%s" loading="lazy">`, esc(src), esc(title))
}

// Cards renders result tiles in grid or list layout
func Cards(items []Card, grid bool) string {
	if len(items) == 0 {
		return `<p class="empty">` + NoMovies + `</p>`
	}

	layout := "list"
	if grid {
		layout = "grid"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="movies %s">`, layout)
	for _, c := range items {
		m := c.Movie
		class := "movie-card"
		if c.Favorite {
			class += " favorite"
		}
		fmt.Fprintf(&sb, `<div class="%s" data-id="%s">`, class, esc(m.IMDbID))
		fmt.Fprintf(&sb, `<a href="/movie/%s">`, esc(url.PathEscape(m.IMDbID)))
		sb.WriteString(poster(m.PosterURL(), m.Title))
		sb.WriteString(`</a><div class="movie-info">`)
		fmt.Fprintf(&sb, `<h3>%s</h3>`, esc(m.Title))
		fmt.Fprintf(&sb, `<span class="year">%s</span>`, esc(models.OrNA(m.Year)))
		if models.Available(m.Type) {
			fmt.Fprintf(&sb, `<span class="type">%s</span>`, esc(m.Type))
		}
		if c.Favorite {
			sb.WriteString(`<span class="fav-mark" title="Favorite">&#9733;</span>`)
		}
		sb.WriteString(`</div></div>`)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

// Detail renders the full record of one movie
func Detail(d models.MovieDetail, favorite bool) string {
	plot := NoPlot
	if models.Available(d.Plot) {
		plot = d.Plot
	}

	label := "Add to Favorites"
	if favorite {
		label = "Remove from Favorites"
	}

	var sb strings.Builder
	sb.WriteString(`<div class="movie-detail">`)
	sb.WriteString(poster(d.PosterURL(), d.Title))
	sb.WriteString(`<div class="detail-info">`)
	fmt.Fprintf(&sb, `<h2>%s <span class="year">(%s)</span></h2>`, esc(models.OrNA(d.Title)), esc(models.OrNA(d.Year)))
	sb.WriteString(`<dl>`)
	field(&sb, "Runtime", d.Runtime)
	field(&sb, "IMDb Rating", d.IMDbRating)
	field(&sb, "Genre", d.Genre)
	field(&sb, "Director", d.Director)
	field(&sb, "Actors", d.Actors)
	sb.WriteString(`</dl>`)
	fmt.Fprintf(&sb, `<p class="plot">%s</p>`, esc(plot))
	fmt.Fprintf(&sb, `<form method="post" action="/favorites/%s">`, esc(url.PathEscape(d.IMDbID)))
	// Snapshot for when the lookup at toggle time fails
	hidden(&sb, "title", d.Title)
	hidden(&sb, "year", d.Year)
	hidden(&sb, "poster", d.Poster)
	hidden(&sb, "type", d.Type)
	fmt.Fprintf(&sb, `<button type="submit" class="fav-toggle">%s</button></form>`, label)
	sb.WriteString(`</div></div>`)
	return sb.String()
}

func hidden(sb *strings.Builder, name, value string) {
	fmt.Fprintf(sb, `<input type="hidden" name="%s" value="%s">`, name, esc(value))
}

func field(sb *strings.Builder, name, value string) {
	fmt.Fprintf(sb, `<dt>%s</dt><dd>%s</dd>`, name, esc(models.OrNA(value)))
}

// RelativeDate describes when relative to now: Today, Yesterday,
// "N days ago" within a week, otherwise a short date
func RelativeDate(when, now time.Time) string {
	if when.IsZero() {
		return ""
	}
	y1, m1, d1 := when.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	days := int(b.Sub(a).Hours() / 24)

	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return when.In(now.Location()).Format("2 Jan 2006")
	}
}

// History renders the search history, most recent first
func History(entries []models.HistoryEntry, now time.Time) string {
	if len(entries) == 0 {
		return `<p class="empty">` + NoHistory + `</p>`
	}

	var sb strings.Builder
	sb.WriteString(`<ul class="history">`)
	for i, e := range entries {
		sb.WriteString(`<li class="history-item">`)
		fmt.Fprintf(&sb, `<a class="term" href="/?q=%s">%s</a>`, url.QueryEscape(e.Term), esc(e.Term))
		fmt.Fprintf(&sb, `<span class="date">%s</span>`, esc(RelativeDate(e.When(), now)))
		fmt.Fprintf(&sb, `<form method="post" action="/history/%d/delete"><button type="submit" class="remove" title="Remove">&times;</button></form>`, i)
		sb.WriteString(`</li>`)
	}
	sb.WriteString(`</ul>`)
	sb.WriteString(`<form method="post" action="/history/clear"><input type="hidden" name="confirm" value="yes"><button type="submit" class="clear" onclick="return confirm('Clear all search history?')">Clear History</button></form>`)
	return sb.String()
}

// Pager renders previous/next links. Ends are disabled.
func Pager(baseHref string, page, totalPages int) string {
	if totalPages <= 1 {
		return ""
	}
	sep := "?"
	if strings.Contains(baseHref, "?") {
		sep = "&"
	}
	link := func(label string, target int, enabled bool) string {
		if !enabled {
			return fmt.Sprintf(`<span class="disabled">%s</span>`, label)
		}
		return fmt.Sprintf(`<a href="%s%spage=%d">%s</a>`, esc(baseHref), sep, target, label)
	}

	return fmt.Sprintf(`<nav class="pager">%s<span class="page-info">Page %d of %d</span>%s</nav>`,
		link("Previous", page-1, page > 1), page, totalPages, link("Next", page+1, page < totalPages))
}
