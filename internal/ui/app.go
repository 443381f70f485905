package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/thesavant42/cinesearch/internal/browse"
	"github.com/thesavant42/cinesearch/internal/library"
	"github.com/thesavant42/cinesearch/internal/models"
)

// MovieSource is the lookup surface the TUI needs from OMDb
type MovieSource interface {
	Search(ctx context.Context, term string, page int) (*models.SearchResult, error)
	Detail(ctx context.Context, id string) (*models.MovieDetail, error)
}

type overlay int

const (
	overlayNone overlay = iota
	overlayDetail
	overlayHistory
	overlayConfirm
)

type searchResultMsg struct {
	query  browse.Query
	result *models.SearchResult
	err    error
}

type detailResultMsg struct {
	query  browse.DetailQuery
	detail *models.MovieDetail
	err    error
}

// AppModel is the interactive movie browser
type AppModel struct {
	PageState

	source  MovieSource
	lib     *library.Library
	logger  *log.Logger
	timeout time.Duration
	now     func() time.Time

	state   browse.State
	input   textinput.Model
	table   table.Model
	spinner spinner.Model

	movies     []models.MovieSummary // current search page
	gridCursor int
	loading    bool

	overlay       overlay
	detail        *models.MovieDetail
	detailLoading bool
	historyTable  table.Model
	confirm       *huh.Form
	confirmValue  *bool
}

// NewAppModel creates the TUI model
func NewAppModel(source MovieSource, lib *library.Library, logger *log.Logger, timeout time.Duration) AppModel {
	layout := DefaultLayout()

	input := textinput.New()
	input.Placeholder = "Search movies..."
	input.Prompt = "🔍 "
	input.CharLimit = 100
	input.Width = layout.InnerWidth - 6
	input.Focus()

	t := InitTable(MovieColumns(), nil, layout)
	t.Blur()

	return AppModel{
		PageState:    NewPageState(layout),
		source:       source,
		lib:          lib,
		logger:       logger,
		timeout:      timeout,
		now:          time.Now,
		state:        browse.New(),
		input:        input,
		table:        t,
		spinner:      NewAppSpinner(),
		historyTable: InitTable(HistoryColumns(), nil, layout),
	}
}

// Init implements tea.Model
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.WindowSize())
}

// Update implements tea.Model
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.UpdateLayout(msg.Width, msg.Height) {
			ResizeTable(&m.table, MovieColumns(), m.Layout)
			ResizeTable(&m.historyTable, HistoryColumns(), m.Layout)
			m.input.Width = m.Layout.InnerWidth - 6
		}
		return m, nil

	case statusExpiredMsg:
		m.ClearExpiredStatus(m.now())
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.detailLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case searchResultMsg:
		return m.handleSearchResult(msg)

	case detailResultMsg:
		return m.handleDetailResult(msg)
	}

	if m.overlay == overlayConfirm {
		return m.updateConfirm(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(key)
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global shortcuts
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	case "ctrl+k":
		m.closeOverlay()
		cmd := m.focusInput()
		return m, cmd
	case "ctrl+f":
		m.closeOverlay()
		return m.showFavorites()
	case "ctrl+h":
		m.closeOverlay()
		m.openHistory()
		return m, nil
	}

	switch m.overlay {
	case overlayDetail:
		return m.handleDetailKey(msg)
	case overlayHistory:
		return m.handleHistoryKey(msg)
	}

	if m.input.Focused() {
		return m.handleInputKey(msg)
	}
	return m.handleResultsKey(msg)
}

func (m AppModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.startSearch(m.input.Value())
	case "esc", "tab":
		m.focusResults()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m AppModel) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if quit, cmd := HandleQuitKeysNoEsc(key); quit {
		m.Quitting = true
		return m, cmd
	}

	switch key {
	case "/", "tab":
		cmd := m.focusInput()
		return m, cmd
	case "n", "pgdown":
		next, q, ok := m.state.NextPage()
		if !ok {
			return m, nil
		}
		return m.changePage(next, q)
	case "p", "pgup":
		next, q, ok := m.state.PrevPage()
		if !ok {
			return m, nil
		}
		return m.changePage(next, q)
	case "g":
		m.state = m.state.SetGrid(true)
		m.gridCursor = m.table.Cursor()
		return m, nil
	case "l":
		m.state = m.state.SetGrid(false)
		m.table.SetCursor(m.gridCursor)
		return m, nil
	case "s":
		return m.showSearch()
	case "f":
		if movie, ok := m.selected(); ok {
			snapshot := models.MovieDetail{IMDbID: movie.IMDbID, Title: movie.Title, Year: movie.Year, Poster: movie.Poster, Type: movie.Type}
			cmd := m.toggleFavorite(movie.IMDbID, snapshot)
			return m, cmd
		}
		return m, nil
	case "enter":
		if movie, ok := m.selected(); ok {
			return m.openDetail(movie.IMDbID)
		}
		return m, nil
	}

	if m.state.Grid {
		m.gridCursor = HandleGridKeys(key, m.gridCursor, len(m.items()), m.Layout.GridColumns)
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m AppModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.closeOverlay()
		return m, nil
	case "q":
		m.Quitting = true
		return m, tea.Quit
	case "f":
		if m.detail != nil {
			cmd := m.toggleFavorite(m.detail.IMDbID, *m.detail)
			return m, cmd
		}
	}
	return m, nil
}

func (m AppModel) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.lib.History()
	switch msg.String() {
	case "esc":
		m.closeOverlay()
		return m, nil
	case "q":
		m.Quitting = true
		return m, tea.Quit
	case "enter":
		i := m.historyTable.Cursor()
		if i < 0 || i >= len(entries) {
			return m, nil
		}
		m.closeOverlay()
		m.input.SetValue(entries[i].Term)
		return m.startSearch(entries[i].Term)
	case "d", "delete":
		if len(entries) == 0 {
			return m, nil
		}
		if err := m.lib.RemoveHistory(m.historyTable.Cursor()); err != nil {
			cmd := m.fail("Could not remove history entry", err)
			return m, cmd
		}
		m.refreshHistory()
		return m, nil
	case "c":
		if len(entries) == 0 {
			return m, nil
		}
		value := false
		m.confirmValue = &value
		m.confirm = newClearHistoryForm(m.confirmValue)
		m.overlay = overlayConfirm
		return m, m.confirm.Init()
	}

	var cmd tea.Cmd
	m.historyTable, cmd = m.historyTable.Update(msg)
	return m, cmd
}

func (m AppModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.openHistory()
		return m, nil
	}

	model, cmd := m.confirm.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.confirm = f
	}

	switch m.confirm.State {
	case huh.StateCompleted:
		if *m.confirmValue {
			if err := m.lib.ClearHistory(); err != nil {
				m.openHistory()
				cmd := m.fail("Could not clear history", err)
				return m, cmd
			}
		}
		m.openHistory()
		return m, nil
	case huh.StateAborted:
		m.openHistory()
		return m, nil
	}
	return m, cmd
}

// startSearch validates the term, records it and issues page 1
func (m AppModel) startSearch(term string) (tea.Model, tea.Cmd) {
	next, q, err := m.state.StartSearch(term)
	if err != nil {
		cmd := m.SetStatus(browse.SearchErrorMessage(err), true, StatusDuration, m.now())
		return m, cmd
	}
	m.state = next
	m.ClearStatus()
	if err := m.lib.RecordSearch(q.Term); err != nil && m.logger != nil {
		m.logger.Warn("Failed to save search history", "error", err)
	}
	m.focusResults()
	cmd := m.fetch(q)
	return m, cmd
}

func (m AppModel) changePage(next browse.State, q *browse.Query) (tea.Model, tea.Cmd) {
	m.state = next
	m.gridCursor = 0
	if q != nil {
		cmd := m.fetch(*q)
		return m, cmd
	}
	m.rebuildRows()
	return m, nil
}

func (m AppModel) showFavorites() (tea.Model, tea.Cmd) {
	m.state = m.state.ShowFavorites(m.lib.FavoriteCount())
	m.loading = false
	m.gridCursor = 0
	m.rebuildRows()
	m.focusResults()
	return m, nil
}

func (m AppModel) showSearch() (tea.Model, tea.Cmd) {
	next, q := m.state.ShowSearch()
	m.state = next
	m.gridCursor = 0
	if q == nil {
		m.movies = nil
		m.rebuildRows()
		return m, nil
	}
	cmd := m.fetch(*q)
	return m, cmd
}

func (m *AppModel) fetch(q browse.Query) tea.Cmd {
	m.loading = true
	source, timeout, logger := m.source, m.timeout, m.logger
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if logger != nil {
			logger.Debug("Searching", "term", q.Term, "page", q.Page, "generation", q.Generation)
		}
		res, err := source.Search(ctx, q.Term, q.Page)
		return searchResultMsg{query: q, result: res, err: err}
	})
}

func (m AppModel) handleSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if !m.state.IsCurrent(msg.query) {
		if m.logger != nil {
			m.logger.Debug("Dropping stale search response", "term", msg.query.Term, "generation", msg.query.Generation)
		}
		return m, nil
	}
	m.loading = false

	if msg.err != nil {
		m.state, _ = m.state.FailSearch(msg.query)
		m.movies = nil
		m.rebuildRows()
		if m.logger != nil {
			m.logger.Warn("Search failed", "term", msg.query.Term, "error", msg.err)
		}
		cmd := m.SetStatus(browse.SearchErrorMessage(msg.err), true, StatusDuration, m.now())
		return m, cmd
	}

	m.state, _ = m.state.ApplySearch(msg.query, msg.result)
	m.movies = msg.result.Movies
	m.gridCursor = 0
	m.rebuildRows()
	return m, nil
}

func (m AppModel) openDetail(id string) (tea.Model, tea.Cmd) {
	next, q := m.state.StartDetail(id)
	m.state = next
	m.overlay = overlayDetail
	m.detail = nil
	m.detailLoading = true

	source, timeout := m.source, m.timeout
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		d, err := source.Detail(ctx, q.ID)
		return detailResultMsg{query: q, detail: d, err: err}
	})
}

func (m AppModel) handleDetailResult(msg detailResultMsg) (tea.Model, tea.Cmd) {
	if !m.state.AcceptDetail(msg.query) {
		return m, nil
	}
	m.detailLoading = false
	if msg.err != nil {
		m.overlay = overlayNone
		if m.logger != nil {
			m.logger.Warn("Detail lookup failed", "id", msg.query.ID, "error", msg.err)
		}
		cmd := m.SetStatus(browse.DetailErrorMessage(msg.err), true, StatusDuration, m.now())
		return m, cmd
	}
	m.detail = msg.detail
	return m, nil
}

func (m *AppModel) toggleFavorite(id string, snapshot models.MovieDetail) tea.Cmd {
	added, err := m.lib.ToggleFavorite(id, snapshot)
	m.state = m.state.RefreshFavorites(m.lib.FavoriteCount())
	m.rebuildRows()
	if err != nil {
		return m.fail("Could not save favorites", err)
	}
	title := models.OrNA(snapshot.Title)
	if added {
		return m.SetStatus(fmt.Sprintf("Added %s to favorites", title), false, StatusDuration, m.now())
	}
	return m.SetStatus(fmt.Sprintf("Removed %s from favorites", title), false, StatusDuration, m.now())
}

func (m *AppModel) fail(msg string, err error) tea.Cmd {
	if m.logger != nil {
		m.logger.Error(msg, "error", err)
	}
	return m.SetStatus(msg, true, StatusDuration, m.now())
}

func (m *AppModel) openHistory() {
	m.overlay = overlayHistory
	m.confirm = nil
	m.confirmValue = nil
	m.refreshHistory()
	m.historyTable.Focus()
}

func (m *AppModel) refreshHistory() {
	entries := m.lib.History()
	m.historyTable.SetRows(HistoryRows(entries, m.now()))
	if c := m.historyTable.Cursor(); c >= len(entries) && len(entries) > 0 {
		m.historyTable.SetCursor(len(entries) - 1)
	}
}

func (m *AppModel) closeOverlay() {
	if m.overlay == overlayDetail {
		m.state = m.state.CancelDetail()
		m.detailLoading = false
		m.detail = nil
	}
	m.overlay = overlayNone
	m.confirm = nil
	m.confirmValue = nil
}

func (m *AppModel) focusInput() tea.Cmd {
	m.table.Blur()
	return m.input.Focus()
}

func (m *AppModel) focusResults() {
	m.input.Blur()
	m.table.Focus()
}

// items returns the entries of the active view's current page
func (m AppModel) items() []models.MovieSummary {
	if m.state.View == browse.ViewFavorites {
		page := m.lib.FavoritesPage(m.state.Page, browse.PageSize)
		out := make([]models.MovieSummary, len(page.Items))
		for i, e := range page.Items {
			out[i] = e.Summary()
		}
		return out
	}
	return m.movies
}

func (m AppModel) selected() (models.MovieSummary, bool) {
	items := m.items()
	i := m.table.Cursor()
	if m.state.Grid {
		i = m.gridCursor
	}
	if i < 0 || i >= len(items) {
		return models.MovieSummary{}, false
	}
	return items[i], true
}

func (m *AppModel) rebuildRows() {
	items := m.items()
	m.table.SetRows(MovieRows(items, m.lib.FavoriteIDs()))
	if len(items) == 0 {
		m.gridCursor = 0
		m.table.SetCursor(0)
		return
	}
	if m.gridCursor >= len(items) {
		m.gridCursor = len(items) - 1
	}
	if m.table.Cursor() >= len(items) {
		m.table.SetCursor(len(items) - 1)
	}
}

// View implements tea.Model
func (m AppModel) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(FullWidthDivider(m.Layout.InnerWidth))
	b.WriteString("\n")

	if m.HasStatus() {
		if m.StatusIsErr {
			b.WriteString(ErrorBannerStyle.Render(cleanText(m.StatusMsg)))
		} else {
			b.WriteString(AccentStyle.Render(cleanText(m.StatusMsg)))
		}
		b.WriteString("\n")
	}

	switch m.overlay {
	case overlayDetail:
		b.WriteString(m.renderDetail())
	case overlayHistory:
		b.WriteString(m.renderHistory())
	case overlayConfirm:
		b.WriteString(m.confirm.View())
	default:
		b.WriteString(m.renderResults())
	}

	content := PadContentToHeight(b.String(), m.Layout.TableHeight+6)
	return BuildTwoBoxView(content, m.helpText(), m.Layout)
}

func (m AppModel) renderHeader() string {
	title := RenderTitle("CineSearch")
	view := "Search"
	if m.state.View == browse.ViewFavorites {
		view = "Favorites"
	}
	badge := BadgeStyle.Render(fmt.Sprintf("%s %d", FavoriteGlyph, m.lib.FavoriteCount()))
	return SpreadLine(title, HintStyle.Render(view), badge, m.Layout.InnerWidth)
}

func (m AppModel) renderResults() string {
	if m.loading {
		return m.spinner.View() + " " + RenderNormal(fmt.Sprintf("Searching for %q...", m.state.Term))
	}

	items := m.items()
	var body string
	switch {
	case len(items) == 0 && m.state.View == browse.ViewFavorites:
		body = RenderDim("No favorites yet. Press f on a movie to add it.")
	case len(items) == 0 && m.state.Term == "":
		body = RenderDim("Type a title and press enter to search.")
	case m.state.Grid:
		body = RenderGrid(items, m.lib.FavoriteIDs(), m.gridCursor, m.Layout)
	default:
		body = RenderTableWithSelection(m.table, m.Layout)
		if len(items) == 0 {
			body += "\n" + RenderDim("No movies found")
		}
	}
	return body + "\n" + m.renderPager()
}

func (m AppModel) renderPager() string {
	info := m.state.PageInfo()
	if info == "" {
		return ""
	}
	prev, next := DisabledArrowStyle.Render("◀ prev"), DisabledArrowStyle.Render("next ▶")
	if m.state.HasPrev() {
		prev = ArrowStyle.Render("◀ prev")
	}
	if m.state.HasNext() {
		next = ArrowStyle.Render("next ▶")
	}
	return CenterText(prev+"  "+RenderNormal(info)+"  "+next, m.Layout.InnerWidth)
}

func (m AppModel) renderDetail() string {
	if m.detailLoading {
		return m.spinner.View() + " " + RenderNormal("Loading details...")
	}
	if m.detail == nil {
		return ""
	}
	return RenderDetail(*m.detail, m.lib.IsFavorite(m.detail.IMDbID), m.Layout.InnerWidth)
}

func (m AppModel) renderHistory() string {
	header := ViewHeader("Search History", m.Layout.InnerWidth)
	if len(m.lib.History()) == 0 {
		return header + RenderDim("No search history")
	}
	return header + RenderTableWithSelection(m.historyTable, m.Layout)
}

func (m AppModel) helpText() string {
	switch m.overlay {
	case overlayDetail:
		return "f: toggle favorite | esc: close | q: quit"
	case overlayHistory:
		return "enter: search again | d: remove | c: clear all | esc: close"
	case overlayConfirm:
		return "left/right: choose | enter: confirm | esc: cancel"
	}
	if m.input.Focused() {
		return "enter: search | tab/esc: results | ctrl+f: favorites | ctrl+h: history | ctrl+c: quit"
	}
	return "enter: details | f: favorite | n/p: page | g/l: grid/list | s: search | ctrl+k: input | ctrl+f: favorites | ctrl+h: history | q: quit"
}

// RunApp starts the TUI
func RunApp(source MovieSource, lib *library.Library, logger *log.Logger, timeout time.Duration) error {
	p := tea.NewProgram(NewAppModel(source, lib, logger, timeout), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
