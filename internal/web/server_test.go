package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesavant42/cinesearch/internal/api"
	"github.com/thesavant42/cinesearch/internal/browse"
	"github.com/thesavant42/cinesearch/internal/library"
	"github.com/thesavant42/cinesearch/internal/models"
)

// fakeOMDb answers like the real service for a few fixed queries
func fakeOMDb(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	w.Header().Set("Content-Type", "application/json")
	switch {
	case q.Get("s") == "alien":
		w.Write([]byte(`{"Search":[
			{"Title":"Alien","Year":"1979","imdbID":"tt0078748","Type":"movie","Poster":"https://example.com/alien.jpg"},
			{"Title":"<script>alert(1)</script>","Year":"1986","imdbID":"tt0090605","Type":"movie","Poster":"N/A"}
		],"totalResults":"23","Response":"True"}`))
	case q.Get("s") != "":
		w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	case q.Get("i") == "tt5000000":
		w.WriteHeader(http.StatusInternalServerError)
	case q.Get("i") == "tt0078748":
		w.Write([]byte(`{"Title":"Alien","Year":"1979","Runtime":"117 min","Plot":"In space.","Poster":"N/A","imdbRating":"8.5","imdbID":"tt0078748","Type":"movie","Response":"True"}`))
	default:
		w.Write([]byte(`{"Response":"False","Error":"Incorrect IMDb ID."}`))
	}
}

type testEnv struct {
	srv *httptest.Server
	lib *library.Library
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	omdb := httptest.NewServer(http.HandlerFunc(fakeOMDb))
	t.Cleanup(omdb.Close)

	client := api.NewOMDbClient("key", nil, api.WithBaseURL(omdb.URL), api.WithRetryDelay(time.Millisecond))
	lib := library.Open(
		library.NewMemoryRepository[models.FavoriteEntry](),
		library.NewMemoryRepository[models.HistoryEntry](),
		nil,
	)
	srv := httptest.NewServer(NewServer(client, lib, nil).Router())
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, lib: lib}
}

// noRedirect keeps 303 responses visible to the test
var noRedirect = &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}

func get(t *testing.T, target string) (int, string) {
	t.Helper()
	resp, err := http.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func post(t *testing.T, target string, form url.Values) *http.Response {
	t.Helper()
	resp, err := noRedirect.PostForm(target, form)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	code, body := get(t, env.srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)
}

func TestSearchPage(t *testing.T) {
	env := newTestEnv(t)
	code, body := get(t, env.srv.URL+"/?q=alien")
	require.Equal(t, http.StatusOK, code)

	assert.Contains(t, body, "23 results")
	assert.Contains(t, body, "Page 1 of 3")
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, body, "<script>alert(1)")
	assert.Contains(t, body, `<i class="fas fa-film"></i>`)
	assert.Contains(t, body, `class="movies grid"`)

	require.Len(t, env.lib.History(), 1)
	assert.Equal(t, "alien", env.lib.History()[0].Term)

	_, list := get(t, env.srv.URL+"/?q=alien&view=list&page=2")
	assert.Contains(t, list, `class="movies list"`)
	// Later pages don't record history again
	assert.Len(t, env.lib.History(), 1)
}

func TestSearchErrorBanner(t *testing.T) {
	env := newTestEnv(t)
	_, body := get(t, env.srv.URL+"/?q=qwertyuiop")
	assert.Contains(t, body, `<div class="banner" role="alert">Movie not found!</div>`)
	assert.NotContains(t, body, `class="movie-card`)
}

func TestDetailPage(t *testing.T) {
	env := newTestEnv(t)
	code, body := get(t, env.srv.URL+"/movie/tt0078748")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "117 min")
	assert.Contains(t, body, "Add to Favorites")

	assert.Contains(t, body, `<input type="hidden" name="title" value="Alien">`)
	assert.Contains(t, body, `action="/favorites/tt0078748"`)
}

func TestDetailPageErrors(t *testing.T) {
	env := newTestEnv(t)

	code, body := get(t, env.srv.URL+"/movie/tt9999999")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, `<div class="banner" role="alert">Incorrect IMDb ID.</div>`)
	assert.NotContains(t, body, `class="movie-detail"`)

	code, body = get(t, env.srv.URL+"/movie/tt5000000")
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Contains(t, body, browse.MsgDetailFailed)
	assert.NotContains(t, body, `class="movie-detail"`)

	// The library is untouched by a failed lookup
	assert.Zero(t, env.lib.FavoriteCount())
	assert.Empty(t, env.lib.History())
}

func TestToggleFavorite(t *testing.T) {
	env := newTestEnv(t)

	resp := post(t, env.srv.URL+"/favorites/tt0078748", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/movie/tt0078748", resp.Header.Get("Location"))
	require.True(t, env.lib.IsFavorite("tt0078748"))
	assert.Equal(t, "Alien", env.lib.Favorites()[0].Title)

	_, body := get(t, env.srv.URL+"/favorites")
	assert.Contains(t, body, "Favorites (1)")
	assert.Contains(t, body, "movie-card favorite")

	post(t, env.srv.URL+"/favorites/tt0078748", nil)
	assert.False(t, env.lib.IsFavorite("tt0078748"))
}

func TestToggleFavoriteFallsBackToFormValues(t *testing.T) {
	env := newTestEnv(t)
	post(t, env.srv.URL+"/favorites/tt404", url.Values{"title": {"Lost"}, "year": {"2004"}})
	favs := env.lib.Favorites()
	require.Len(t, favs, 1)
	assert.Equal(t, "Lost", favs[0].Title)
	assert.Equal(t, "2004", favs[0].Year)
}

func TestHistoryRemoveAndClear(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.lib.RecordSearch("alien"))
	require.NoError(t, env.lib.RecordSearch("dune"))

	_, body := get(t, env.srv.URL+"/history")
	assert.Contains(t, body, "dune")
	assert.Contains(t, body, "Today")

	resp := post(t, env.srv.URL+"/history/0/delete", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Len(t, env.lib.History(), 1)
	assert.Equal(t, "alien", env.lib.History()[0].Term)

	resp = post(t, env.srv.URL+"/history/5/delete", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = post(t, env.srv.URL+"/history/clear", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, env.lib.History(), 1)

	resp = post(t, env.srv.URL+"/history/clear", url.Values{"confirm": {"yes"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Empty(t, env.lib.History())
}

func TestEmptyQueryShowsPrompt(t *testing.T) {
	env := newTestEnv(t)
	_, body := get(t, env.srv.URL+"/")
	assert.True(t, strings.Contains(body, "Type a title"))
	assert.Empty(t, env.lib.History())
}
