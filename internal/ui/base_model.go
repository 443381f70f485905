package ui

// base_model.go provides common helpers for Bubble Tea models.

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// InitTable creates and configures a table with proper styling and dimensions.
// Use this instead of manually calling table.New() to ensure consistent setup.
func InitTable(specs []ColumnSpec, rows []table.Row, layout Layout) table.Model {
	t := table.New(
		table.WithColumns(CalculateColumns(specs, layout.TableWidth)),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(layout.TableHeight),
	)
	ApplyTableStyles(&t)
	t.GotoTop()
	return t
}

// ResizeTable reapplies column widths and height after a window resize
func ResizeTable(t *table.Model, specs []ColumnSpec, layout Layout) {
	t.SetColumns(CalculateColumns(specs, layout.TableWidth))
	t.SetHeight(layout.TableHeight)
}

// HandleQuitKeysNoEsc returns true and Quit cmd for q/ctrl+c keys (not esc).
// Use when esc has special meaning (e.g., close overlay).
func HandleQuitKeysNoEsc(key string) (bool, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		return true, tea.Quit
	}
	return false, nil
}

// HandleGridKeys moves a cursor over a grid of count items laid out in
// columns per row. Returns the new cursor.
func HandleGridKeys(key string, cursor, count, columns int) int {
	if count == 0 {
		return 0
	}
	if columns < 1 {
		columns = 1
	}
	next := cursor
	switch key {
	case "left", "h":
		next = cursor - 1
	case "right":
		next = cursor + 1
	case "up", "k":
		next = cursor - columns
	case "down", "j":
		next = cursor + columns
	case "home":
		next = 0
	case "end":
		next = count - 1
	}
	if next < 0 || next >= count {
		return cursor
	}
	return next
}
