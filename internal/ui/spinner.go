package ui

import (
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner executes an action while displaying a spinner.
// Used by the non-interactive commands; the TUI draws its own spinner.
//
// Example:
//
//	var result *models.SearchResult
//	var fetchErr error
//	err := RunWithSpinner("Searching...", func() {
//	    result, fetchErr = client.Search(ctx, term, 1)
//	})
func RunWithSpinner(title string, action func()) error {
	if err := spinner.New().Title(title).Action(action).Run(); err != nil {
		return fmt.Errorf("spinner error: %w", err)
	}
	return nil
}
