package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thesavant42/cinesearch/internal/models"
)

const stylesheet = `
body { font-family: system-ui, sans-serif; background: #14141f; color: #eee; margin: 0 auto; max-width: 1100px; padding: 1rem; }
a { color: #ff5fd7; }
header { display: flex; gap: 1rem; align-items: center; justify-content: space-between; }
.badge { background: #875fff; border-radius: 1rem; padding: 0 .5rem; font-size: .8rem; }
.banner { background: #5f0000; padding: .5rem 1rem; border-radius: .25rem; }
.movies.grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(160px, 1fr)); gap: 1rem; }
.movies.list .movie-card { display: flex; gap: 1rem; }
.movies.list .poster, .movies.list .poster-placeholder { width: 60px; }
.movie-card.favorite { outline: 2px solid #ffd700; }
.poster { width: 100%; }
.poster-placeholder { display: flex; align-items: center; justify-content: center; aspect-ratio: 2/3; background: #262637; font-size: 2rem; }
.movie-detail { display: flex; gap: 2rem; }
.movie-detail .poster, .movie-detail .poster-placeholder { width: 300px; }
.history-item { display: flex; gap: 1rem; align-items: center; }
.history-item form { display: inline; }
.pager { display: flex; gap: 1rem; margin-top: 1rem; }
.disabled { opacity: .4; }
.empty { opacity: .7; }
`

// Document wraps body in a complete HTML page. body must already be markup.
func Document(title, body string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", esc(title))
	sb.WriteString(`<link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css">` + "\n")
	sb.WriteString("<style>" + stylesheet + "</style>\n</head>\n<body>\n")
	sb.WriteString(body)
	sb.WriteString("\n</body>\n</html>\n")
	return sb.String()
}

// FavoritesPage renders a standalone page listing favorites with the
// date each was added
func FavoritesPage(entries []models.FavoriteEntry, generated time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<h1>My Favorites</h1>\n<p>%d movies, exported %s</p>\n", len(entries), generated.Format("2006-01-02 15:04"))
	if len(entries) == 0 {
		sb.WriteString(`<p class="empty">` + NoFavorites + `</p>`)
	} else {
		sb.WriteString(Cards(CardsFromFavorites(entries), true))
	}
	return Document("My Favorites", sb.String())
}

// ExportFavorites writes the favorites page to path, creating parent
// directories as needed
func ExportFavorites(path string, entries []models.FavoriteEntry) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(FavoritesPage(entries, time.Now())), 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
