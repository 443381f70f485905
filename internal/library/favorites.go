package library

import (
	"time"

	"github.com/thesavant42/cinesearch/internal/models"
)

// DefaultPageSize is the number of favorites shown per page
const DefaultPageSize = 10

// Fallback values for snapshot fields that are missing
const (
	unknownTitle = "Unknown"
	unknownYear  = models.NotAvailable
)

// Favorites is an ordered collection of favorite movies, unique by IMDb id.
// Order is insertion order.
type Favorites struct {
	items []models.FavoriteEntry
}

// NewFavorites builds a collection from stored entries, dropping duplicate ids
func NewFavorites(entries []models.FavoriteEntry) *Favorites {
	f := &Favorites{items: make([]models.FavoriteEntry, 0, len(entries))}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.IMDbID == "" || seen[e.IMDbID] {
			continue
		}
		seen[e.IMDbID] = true
		f.items = append(f.items, e)
	}
	return f
}

// Page is one slice of the favorites collection
type Page struct {
	Items      []models.FavoriteEntry
	Page       int
	TotalPages int
	Total      int
}

// Toggle removes id when present, otherwise appends a normalized entry built
// from snapshot. Returns true when the movie was added.
func (f *Favorites) Toggle(id string, snapshot models.MovieDetail, now time.Time) bool {
	if i := f.index(id); i >= 0 {
		f.items = append(f.items[:i], f.items[i+1:]...)
		return false
	}
	f.items = append(f.items, newFavoriteEntry(id, snapshot, now))
	return true
}

// Contains reports whether id is a favorite
func (f *Favorites) Contains(id string) bool {
	return f.index(id) >= 0
}

// Len returns the number of favorites
func (f *Favorites) Len() int {
	return len(f.items)
}

// All returns a copy of the collection in insertion order
func (f *Favorites) All() []models.FavoriteEntry {
	out := make([]models.FavoriteEntry, len(f.items))
	copy(out, f.items)
	return out
}

// List returns the 1-based page of favorites. pageSize <= 0 means DefaultPageSize.
// Pages past the end come back empty with the correct totals.
func (f *Favorites) List(page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(f.items)
	p := Page{
		Page:       page,
		TotalPages: models.TotalPages(total, pageSize),
		Total:      total,
		Items:      []models.FavoriteEntry{},
	}

	start := (page - 1) * pageSize
	if start >= total {
		return p
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	p.Items = append(p.Items, f.items[start:end]...)
	return p
}

func (f *Favorites) index(id string) int {
	for i, e := range f.items {
		if e.IMDbID == id {
			return i
		}
	}
	return -1
}

// newFavoriteEntry normalizes a snapshot; missing fields degrade to fallbacks
func newFavoriteEntry(id string, snapshot models.MovieDetail, now time.Time) models.FavoriteEntry {
	entry := models.FavoriteEntry{
		IMDbID:    id,
		Title:     snapshot.Title,
		Year:      snapshot.Year,
		Poster:    snapshot.Poster,
		Type:      snapshot.Type,
		AddedDate: now.UTC().Format(time.RFC3339),
	}
	if entry.Title == "" {
		entry.Title = unknownTitle
	}
	if entry.Year == "" {
		entry.Year = unknownYear
	}
	return entry
}
