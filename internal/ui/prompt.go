package ui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

const (
	clearHistoryTitle       = "Clear search history?"
	clearHistoryDescription = "All saved search terms will be removed"
)

// newClearHistoryForm builds the confirmation used before wiping history.
// confirm receives the answer.
func newClearHistoryForm(confirm *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(clearHistoryTitle).
				Description(clearHistoryDescription).
				Affirmative("Yes, clear").
				Negative("Cancel").
				Value(confirm),
		),
	).WithTheme(NewAppTheme()).WithShowHelp(false)
}

// ConfirmClearHistory asks on the terminal before clearing history
func ConfirmClearHistory() (bool, error) {
	var confirm bool
	if err := newClearHistoryForm(&confirm).Run(); err != nil {
		return false, fmt.Errorf("prompt cancelled: %w", err)
	}
	return confirm, nil
}
