package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/html"

	"github.com/thesavant42/cinesearch/internal/api"
	"github.com/thesavant42/cinesearch/internal/browse"
	"github.com/thesavant42/cinesearch/internal/library"
	"github.com/thesavant42/cinesearch/internal/models"
	"github.com/thesavant42/cinesearch/internal/render"
)

// page wraps body with the navigation header and an optional banner
func (s *Server) page(w http.ResponseWriter, status int, title, term string, grid bool, banner, body string) {
	view := "list"
	if grid {
		view = "grid"
	}

	var sb strings.Builder
	sb.WriteString(`<header><a href="/"><h1>CineSearch</h1></a>`)
	fmt.Fprintf(&sb, `<form method="get" action="/"><input type="search" name="q" value="%s" placeholder="Search movies..." autofocus>`, html.EscapeString(term))
	fmt.Fprintf(&sb, `<input type="hidden" name="view" value="%s"><button type="submit">Search</button></form>`, view)
	fmt.Fprintf(&sb, `<nav><a href="/favorites">Favorites <span class="badge">%d</span></a> <a href="/history">History</a></nav></header>`, s.lib.FavoriteCount())
	if banner != "" {
		fmt.Fprintf(&sb, `<div class="banner" role="alert">%s</div>`, html.EscapeString(banner))
	}
	sb.WriteString("<main>")
	sb.WriteString(body)
	sb.WriteString("</main>")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(render.Document(title, sb.String())))
}

func pageParam(r *http.Request) int {
	p, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || p < 1 {
		return 1
	}
	return p
}

// gridParam reads view=grid|list; grid is the default
func gridParam(r *http.Request) bool {
	return r.URL.Query().Get("view") != "list"
}

func viewToggle(base url.Values, grid bool) string {
	q := url.Values{}
	for k, v := range base {
		q[k] = v
	}
	label, next := "List view", "list"
	if !grid {
		label, next = "Grid view", "grid"
	}
	q.Set("view", next)
	return fmt.Sprintf(`<p class="view-toggle"><a href="?%s">%s</a></p>`, html.EscapeString(q.Encode()), label)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	grid := gridParam(r)
	raw := r.URL.Query().Get("q")
	term := browse.NormalizeTerm(raw)
	if term == "" {
		banner := ""
		if raw != "" {
			banner = browse.MsgEmptyTerm
		}
		s.page(w, http.StatusOK, "CineSearch", "", grid, banner, `<p class="empty">Type a title to search OMDb.</p>`)
		return
	}

	page := pageParam(r)
	if page == 1 {
		if err := s.lib.RecordSearch(term); err != nil {
			s.warn("Failed to save search history", "error", err)
		}
	}

	res, err := s.source.Search(r.Context(), term, page)
	if err != nil {
		s.warn("Search failed", "term", term, "page", page, "error", err)
		s.page(w, http.StatusOK, "CineSearch", term, grid, browse.SearchErrorMessage(err), "")
		return
	}

	base := url.Values{"q": {term}}
	if !grid {
		base.Set("view", "list")
	}

	var body strings.Builder
	fmt.Fprintf(&body, `<p class="summary">%d results for &quot;%s&quot;</p>`, res.TotalResults, html.EscapeString(term))
	body.WriteString(viewToggle(base, grid))
	body.WriteString(render.Cards(render.CardsFromResults(res.Movies, s.lib.FavoriteIDs()), grid))
	body.WriteString(render.Pager("/?"+base.Encode(), res.Page, res.TotalPages()))

	s.page(w, http.StatusOK, term+" - CineSearch", term, grid, "", body.String())
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := s.source.Detail(r.Context(), id)
	if err != nil {
		s.warn("Detail lookup failed", "id", id, "error", err)
		status := http.StatusBadGateway
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			status = http.StatusNotFound
		}
		s.page(w, status, "CineSearch", "", true, browse.DetailErrorMessage(err), "")
		return
	}
	s.page(w, http.StatusOK, d.Title+" - CineSearch", "", true, "", render.Detail(*d, s.lib.IsFavorite(d.IMDbID)))
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var snapshot models.MovieDetail
	if !s.lib.IsFavorite(id) {
		d, err := s.source.Detail(r.Context(), id)
		if err != nil {
			s.warn("Detail lookup for favorite failed, using form values", "id", id, "error", err)
			snapshot = models.MovieDetail{
				IMDbID: id,
				Title:  r.FormValue("title"),
				Year:   r.FormValue("year"),
				Poster: r.FormValue("poster"),
				Type:   r.FormValue("type"),
			}
		} else {
			snapshot = *d
		}
	}

	if _, err := s.lib.ToggleFavorite(id, snapshot); err != nil {
		s.warn("Failed to save favorites", "error", err)
		http.Error(w, "could not save favorites", http.StatusInternalServerError)
		return
	}

	target := "/movie/" + url.PathEscape(id)
	if ref := r.Header.Get("Referer"); ref != "" {
		if u, err := url.Parse(ref); err == nil && u.Host == r.Host {
			target = u.RequestURI()
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	grid := gridParam(r)
	p := s.lib.FavoritesPage(pageParam(r), browse.PageSize)

	base := url.Values{}
	if !grid {
		base.Set("view", "list")
	}
	href := "/favorites"
	if len(base) > 0 {
		href += "?" + base.Encode()
	}

	var body strings.Builder
	fmt.Fprintf(&body, `<h2>Favorites (%d)</h2>`, p.Total)
	if p.Total == 0 {
		body.WriteString(`<p class="empty">` + render.NoFavorites + `</p>`)
	} else {
		body.WriteString(viewToggle(base, grid))
		body.WriteString(render.Cards(render.CardsFromFavorites(p.Items), grid))
		body.WriteString(render.Pager(href, p.Page, p.TotalPages))
	}
	s.page(w, http.StatusOK, "Favorites - CineSearch", "", grid, "", body.String())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	body := `<h2>Search History</h2>` + render.History(s.lib.History(), s.now())
	s.page(w, http.StatusOK, "History - CineSearch", "", true, "", body)
}

func (s *Server) handleRemoveHistory(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid history index", http.StatusBadRequest)
		return
	}
	if err := s.lib.RemoveHistory(index); err != nil {
		if errors.Is(err, library.ErrIndexOutOfRange) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.warn("Failed to save search history", "error", err)
		http.Error(w, "could not save history", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/history", http.StatusSeeOther)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if r.FormValue("confirm") != "yes" {
		http.Error(w, "clearing history requires confirm=yes", http.StatusBadRequest)
		return
	}
	if err := s.lib.ClearHistory(); err != nil {
		s.warn("Failed to clear search history", "error", err)
		http.Error(w, "could not save history", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/history", http.StatusSeeOther)
}
