package library

import (
	"errors"
	"time"

	"github.com/thesavant42/cinesearch/internal/models"
)

// MaxHistory caps the number of remembered searches
const MaxHistory = 20

// ErrIndexOutOfRange is returned when removing a history entry that does not exist
var ErrIndexOutOfRange = errors.New("history index out of range")

// History holds executed searches, most recent first, unique by term
type History struct {
	items []models.HistoryEntry
}

// NewHistory builds a history from stored entries, enforcing uniqueness and the cap
func NewHistory(entries []models.HistoryEntry) *History {
	h := &History{items: make([]models.HistoryEntry, 0, len(entries))}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Term == "" || seen[e.Term] {
			continue
		}
		seen[e.Term] = true
		h.items = append(h.items, e)
		if len(h.items) == MaxHistory {
			break
		}
	}
	return h
}

// Record moves term to the front, inserting it when new, and evicts the oldest
// entries beyond MaxHistory. Matching is exact.
func (h *History) Record(term string, now time.Time) {
	kept := make([]models.HistoryEntry, 0, len(h.items)+1)
	kept = append(kept, models.NewHistoryEntry(term, now))
	for _, e := range h.items {
		if e.Term != term {
			kept = append(kept, e)
		}
	}
	if len(kept) > MaxHistory {
		kept = kept[:MaxHistory]
	}
	h.items = kept
}

// Remove deletes the entry at index
func (h *History) Remove(index int) error {
	if index < 0 || index >= len(h.items) {
		return ErrIndexOutOfRange
	}
	h.items = append(h.items[:index], h.items[index+1:]...)
	return nil
}

// Clear empties the history
func (h *History) Clear() {
	h.items = []models.HistoryEntry{}
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.items)
}

// All returns a copy of the entries, most recent first
func (h *History) All() []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(h.items))
	copy(out, h.items)
	return out
}
