package models

import "strings"

// NotAvailable is the OMDb sentinel for a missing field
const NotAvailable = "N/A"

// OMDbPageSize is the fixed number of results OMDb returns per search page
const OMDbPageSize = 10

// MovieSummary represents a single entry of an OMDb search response
type MovieSummary struct {
	IMDbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
	Type   string `json:"Type"`
}

// MovieDetail represents the OMDb lookup-by-id response
type MovieDetail struct {
	IMDbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	Type       string `json:"Type"`
	Plot       string `json:"Plot"`
	Runtime    string `json:"Runtime"`
	IMDbRating string `json:"imdbRating"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
}

// SearchResult is one page of search results
type SearchResult struct {
	Term         string
	Page         int
	TotalResults int
	Movies       []MovieSummary
}

// TotalPages returns the number of result pages for this search
func (r *SearchResult) TotalPages() int {
	return TotalPages(r.TotalResults, OMDbPageSize)
}

// Available reports whether an OMDb field carries a real value
func Available(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != NotAvailable
}

// OrNA returns s, or the "N/A" sentinel when s is missing
func OrNA(s string) string {
	if Available(s) {
		return s
	}
	return NotAvailable
}

// PosterURL returns the poster URL, or "" when there is none
func (m MovieSummary) PosterURL() string {
	if Available(m.Poster) {
		return m.Poster
	}
	return ""
}

// PosterURL returns the poster URL, or "" when there is none
func (d MovieDetail) PosterURL() string {
	if Available(d.Poster) {
		return d.Poster
	}
	return ""
}

// Summary narrows a detail record to its search-result fields
func (d MovieDetail) Summary() MovieSummary {
	return MovieSummary{
		IMDbID: d.IMDbID,
		Title:  d.Title,
		Year:   d.Year,
		Poster: d.Poster,
		Type:   d.Type,
	}
}

// TotalPages computes ceil(total/pageSize); zero or negative totals yield 0
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
