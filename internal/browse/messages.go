package browse

import (
	"errors"

	"github.com/thesavant42/cinesearch/internal/api"
)

// User-facing messages
const (
	MsgEmptyTerm      = "Enter a search term"
	MsgNoResults      = "No movies found"
	MsgSearchFailed   = "Something went wrong while searching for movies"
	MsgDetailNotFound = "Could not load movie details"
	MsgDetailFailed   = "Something went wrong while loading movie details"
	MsgOffline        = "No internet connection"
)

// SearchErrorMessage maps a search failure to the banner text.
// OMDb's own message is shown verbatim when it sent one.
func SearchErrorMessage(err error) string {
	return errorMessage(err, MsgNoResults, MsgSearchFailed)
}

// DetailErrorMessage maps a detail lookup failure to the banner text
func DetailErrorMessage(err error) string {
	return errorMessage(err, MsgDetailNotFound, MsgDetailFailed)
}

func errorMessage(err error, apiFallback, generic string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrEmptyTerm) {
		return MsgEmptyTerm
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return apiFallback
	}
	return generic
}
