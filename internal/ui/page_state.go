package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusDuration is how long a transient banner stays visible
const StatusDuration = 5 * time.Second

// PageState contains common state that all pages need.
// Embed this in your page model to avoid duplicating these fields.
type PageState struct {
	Layout       Layout
	StatusMsg    string
	StatusIsErr  bool
	StatusExpiry time.Time
	Quitting     bool
}

// NewPageState creates a new PageState with the given layout.
func NewPageState(layout Layout) PageState {
	return PageState{Layout: layout}
}

// statusExpiredMsg is delivered when a banner may have expired
type statusExpiredMsg struct{}

// SetStatus sets a status message that will expire after the given duration.
// If duration is 0, the status message will not expire. The returned command
// wakes the update loop when the message should disappear.
func (p *PageState) SetStatus(msg string, isErr bool, duration time.Duration, now time.Time) tea.Cmd {
	p.StatusMsg = msg
	p.StatusIsErr = isErr
	if duration <= 0 {
		p.StatusExpiry = time.Time{} // Zero time = no expiry
		return nil
	}
	p.StatusExpiry = now.Add(duration)
	return tea.Tick(duration, func(time.Time) tea.Msg { return statusExpiredMsg{} })
}

// ClearExpiredStatus clears the status message if it has expired.
func (p *PageState) ClearExpiredStatus(now time.Time) {
	if !p.StatusExpiry.IsZero() && !now.Before(p.StatusExpiry) {
		p.ClearStatus()
	}
}

// ClearStatus removes the banner immediately
func (p *PageState) ClearStatus() {
	p.StatusMsg = ""
	p.StatusIsErr = false
	p.StatusExpiry = time.Time{}
}

// HasStatus returns true if there is a non-empty status message.
func (p *PageState) HasStatus() bool {
	return p.StatusMsg != ""
}

// UpdateLayout updates the layout and returns true if it changed.
// Use this in your WindowSizeMsg handler.
func (p *PageState) UpdateLayout(width, height int) bool {
	newLayout := NewLayout(width, height)
	if newLayout != p.Layout {
		p.Layout = newLayout
		return true
	}
	return false
}
