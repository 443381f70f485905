package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/thesavant42/cinesearch/internal/models"
	"github.com/thesavant42/cinesearch/internal/render"
)

// DefaultExportName returns a timestamped file name for a favorites export
func DefaultExportName(now time.Time) string {
	return fmt.Sprintf("favorites-%s.html", now.Format("2006-01-02"))
}

// ExportFavoritesHTML writes favorites to path as a standalone HTML page.
// An empty path uses DefaultExportName in the working directory; a missing
// .html extension is added. Returns the path written.
func ExportFavoritesHTML(path string, entries []models.FavoriteEntry, now time.Time) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultExportName(now)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".html" && ext != ".htm" {
		path += ".html"
	}
	if err := render.ExportFavorites(path, entries); err != nil {
		return "", err
	}
	return path, nil
}
