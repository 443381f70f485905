package models

import "time"

// FavoriteEntry is a movie the user marked as favorite.
// JSON names match the blob format written by earlier releases.
type FavoriteEntry struct {
	IMDbID    string `json:"imdbID"`
	Title     string `json:"Title"`
	Year      string `json:"Year"`
	Poster    string `json:"Poster"`
	Type      string `json:"Type"`
	AddedDate string `json:"addedDate"`
}

// Summary converts the favorite back into a search-result shaped record
func (f FavoriteEntry) Summary() MovieSummary {
	return MovieSummary{
		IMDbID: f.IMDbID,
		Title:  f.Title,
		Year:   f.Year,
		Poster: f.Poster,
		Type:   f.Type,
	}
}

// AddedAt parses AddedDate, returning the zero time when it is malformed
func (f FavoriteEntry) AddedAt() time.Time {
	t, err := time.Parse(time.RFC3339, f.AddedDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// HistoryEntry records one executed search
type HistoryEntry struct {
	Term      string `json:"term"`
	Date      string `json:"date"`      // ISO 8601
	Timestamp int64  `json:"timestamp"` // unix millis
}

// NewHistoryEntry creates a history entry stamped with now
func NewHistoryEntry(term string, now time.Time) HistoryEntry {
	return HistoryEntry{
		Term:      term,
		Date:      now.UTC().Format(time.RFC3339Nano),
		Timestamp: now.UnixMilli(),
	}
}

// When returns the time the search was executed
func (h HistoryEntry) When() time.Time {
	if h.Timestamp > 0 {
		return time.UnixMilli(h.Timestamp)
	}
	t, err := time.Parse(time.RFC3339Nano, h.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
