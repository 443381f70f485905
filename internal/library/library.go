package library

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/cinesearch/internal/models"
)

// Library owns the persisted favorites and search history.
// Every mutation writes the whole collection back to its repository.
// It is safe for concurrent use.
type Library struct {
	mu        sync.Mutex
	favorites *Favorites
	history   *History
	favRepo   Repository[models.FavoriteEntry]
	histRepo  Repository[models.HistoryEntry]
	logger    *log.Logger
	now       func() time.Time
}

// Open loads both collections once. A collection that cannot be read
// (missing table, malformed JSON) starts empty and a warning is logged.
func Open(favRepo Repository[models.FavoriteEntry], histRepo Repository[models.HistoryEntry], logger *log.Logger) *Library {
	l := &Library{
		favRepo:  favRepo,
		histRepo: histRepo,
		logger:   logger,
		now:      time.Now,
	}

	favs, err := favRepo.Load()
	if err != nil {
		l.warn("Failed to load favorites, starting empty", "error", err)
		favs = nil
	}
	l.favorites = NewFavorites(favs)

	hist, err := histRepo.Load()
	if err != nil {
		l.warn("Failed to load search history, starting empty", "error", err)
		hist = nil
	}
	l.history = NewHistory(hist)

	return l
}

// SetClock replaces the time source (tests)
func (l *Library) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// ToggleFavorite adds or removes id, using snapshot to fill a new entry.
// Returns true when the movie is now a favorite.
func (l *Library) ToggleFavorite(id string, snapshot models.MovieDetail) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	added := l.favorites.Toggle(id, snapshot, l.now())
	if l.logger != nil {
		if added {
			l.logger.Info("Added to favorites", "id", id, "title", snapshot.Title)
		} else {
			l.logger.Info("Removed from favorites", "id", id, "title", snapshot.Title)
		}
	}

	if err := l.favRepo.Save(l.favorites.All()); err != nil {
		return added, fmt.Errorf("failed to save favorites: %w", err)
	}
	return added, nil
}

// IsFavorite reports whether id is a favorite
func (l *Library) IsFavorite(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.favorites.Contains(id)
}

// FavoriteCount returns the number of favorites
func (l *Library) FavoriteCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.favorites.Len()
}

// Favorites returns every favorite in insertion order
func (l *Library) Favorites() []models.FavoriteEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.favorites.All()
}

// FavoritesPage returns one page of favorites
func (l *Library) FavoritesPage(page, pageSize int) Page {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.favorites.List(page, pageSize)
}

// FavoriteIDs returns the set of favorite ids, for marking result cards
func (l *Library) FavoriteIDs() map[string]bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make(map[string]bool, l.favorites.Len())
	for _, e := range l.favorites.items {
		ids[e.IMDbID] = true
	}
	return ids
}

// RecordSearch remembers an executed search term
func (l *Library) RecordSearch(term string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.history.Record(term, l.now())
	if err := l.histRepo.Save(l.history.All()); err != nil {
		return fmt.Errorf("failed to save search history: %w", err)
	}
	return nil
}

// RemoveHistory deletes the history entry at index
func (l *Library) RemoveHistory(index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.history.Remove(index); err != nil {
		return err
	}
	if err := l.histRepo.Save(l.history.All()); err != nil {
		return fmt.Errorf("failed to save search history: %w", err)
	}
	return nil
}

// ClearHistory empties the history. Callers confirm with the user first.
func (l *Library) ClearHistory() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.history.Clear()
	if l.logger != nil {
		l.logger.Info("Search history cleared")
	}
	if err := l.histRepo.Save(l.history.All()); err != nil {
		return fmt.Errorf("failed to save search history: %w", err)
	}
	return nil
}

// History returns the search history, most recent first
func (l *Library) History() []models.HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.history.All()
}

func (l *Library) warn(msg string, keyvals ...interface{}) {
	if l.logger != nil {
		l.logger.Warn(msg, keyvals...)
	}
}
