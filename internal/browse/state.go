// Package browse holds the view state of a search session: the current term
// and page, grid or list display, and which view is active.
//
// State is a plain value. Every transition returns the next State, so callers
// (the TUI model, the CLI) own exactly one copy and there is no shared mutable
// state. Each outgoing request carries the generation it was issued with; a
// response whose generation is no longer the latest is dropped, so a slow
// response can never overwrite a newer view.
package browse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thesavant42/cinesearch/internal/models"
)

// PageSize is the number of entries per page in both views
const PageSize = models.OMDbPageSize

// ErrEmptyTerm is returned when a search is started without a term
var ErrEmptyTerm = errors.New("search term is empty")

// View identifies the active result view
type View int

const (
	ViewSearch View = iota
	ViewFavorites
)

func (v View) String() string {
	switch v {
	case ViewFavorites:
		return "favorites"
	default:
		return "search"
	}
}

// Query is a tagged search request
type Query struct {
	Term       string
	Page       int
	Generation uint64
}

// DetailQuery is a tagged lookup-by-id request
type DetailQuery struct {
	ID         string
	Generation uint64
}

// State is the in-memory view state. It is never persisted.
type State struct {
	Page         int
	Term         string
	TotalResults int
	TotalPages   int
	Grid         bool
	View         View

	searchGen uint64
	detailGen uint64
}

// New returns the initial state: grid display, search view, page 1
func New() State {
	return State{Page: 1, Grid: true, View: ViewSearch}
}

// NormalizeTerm trims the term. Tabs and newlines inside it become spaces;
// other control characters are dropped.
func NormalizeTerm(term string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case r < 32 || r == 127:
			return -1
		}
		return r
	}, term)
	return strings.TrimSpace(clean)
}

// StartSearch begins a new search for term at page 1
func (s State) StartSearch(term string) (State, Query, error) {
	term = NormalizeTerm(term)
	if term == "" {
		return s, Query{}, ErrEmptyTerm
	}
	s.Term = term
	s.Page = 1
	s.View = ViewSearch
	return s.issue()
}

// NextPage moves one page forward. In search view it returns the query that
// fetches the new page; ok is false when already on the last page.
func (s State) NextPage() (next State, q *Query, ok bool) {
	if !s.HasNext() {
		return s, nil, false
	}
	s.Page++
	return s.afterPageChange()
}

// PrevPage moves one page back; ok is false on the first page
func (s State) PrevPage() (next State, q *Query, ok bool) {
	if !s.HasPrev() {
		return s, nil, false
	}
	s.Page--
	return s.afterPageChange()
}

func (s State) afterPageChange() (State, *Query, bool) {
	if s.View != ViewSearch {
		return s, nil, true
	}
	next, q, _ := s.issue()
	return next, &q, true
}

func (s State) issue() (State, Query, error) {
	s.searchGen++
	return s, Query{Term: s.Term, Page: s.Page, Generation: s.searchGen}, nil
}

// IsCurrent reports whether q is the latest search issued and still relevant
func (s State) IsCurrent(q Query) bool {
	return q.Generation == s.searchGen && s.View == ViewSearch
}

// ApplySearch stores the totals of a search response. Stale responses are
// rejected and leave the state untouched.
func (s State) ApplySearch(q Query, res *models.SearchResult) (State, bool) {
	if !s.IsCurrent(q) || res == nil {
		return s, false
	}
	s.TotalResults = res.TotalResults
	s.TotalPages = models.TotalPages(res.TotalResults, PageSize)
	return s, true
}

// FailSearch clears the totals after the latest search failed
func (s State) FailSearch(q Query) (State, bool) {
	if !s.IsCurrent(q) {
		return s, false
	}
	s.TotalResults = 0
	s.TotalPages = 0
	return s, true
}

// ShowSearch switches back to the search view. When a term exists the
// current page is fetched again.
func (s State) ShowSearch() (State, *Query) {
	s.View = ViewSearch
	if s.Term == "" {
		s.TotalResults = 0
		s.TotalPages = 0
		return s, nil
	}
	next, q, _ := s.issue()
	return next, &q
}

// ShowFavorites switches to the favorites view at page 1
func (s State) ShowFavorites(count int) State {
	s.View = ViewFavorites
	s.Page = 1
	// Pending search responses belong to the other view now
	s.searchGen++
	return s.RefreshFavorites(count)
}

// RefreshFavorites recomputes totals after the collection changed,
// clamping the page when it no longer exists
func (s State) RefreshFavorites(count int) State {
	if s.View != ViewFavorites {
		return s
	}
	s.TotalResults = count
	s.TotalPages = models.TotalPages(count, PageSize)
	if s.TotalPages > 0 && s.Page > s.TotalPages {
		s.Page = s.TotalPages
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

// SetGrid selects grid (true) or list (false) display
func (s State) SetGrid(grid bool) State {
	s.Grid = grid
	return s
}

// StartDetail issues a tagged detail lookup
func (s State) StartDetail(id string) (State, DetailQuery) {
	s.detailGen++
	return s, DetailQuery{ID: id, Generation: s.detailGen}
}

// AcceptDetail reports whether a detail response is for the latest lookup
func (s State) AcceptDetail(q DetailQuery) bool {
	return q.Generation == s.detailGen
}

// CancelDetail invalidates any outstanding detail lookup (view closed)
func (s State) CancelDetail() State {
	s.detailGen++
	return s
}

// HasNext reports whether a next page exists
func (s State) HasNext() bool {
	return s.Page < s.TotalPages
}

// HasPrev reports whether a previous page exists
func (s State) HasPrev() bool {
	return s.Page > 1
}

// PageInfo renders "Page X of Y", or "" when there is a single page
func (s State) PageInfo() string {
	if s.TotalPages <= 1 {
		return ""
	}
	return fmt.Sprintf("Page %d of %d", s.Page, s.TotalPages)
}
