package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrSubmitBlocked is returned when the form still has errors after the
	// configured number of correction rounds.
	ErrSubmitBlocked = errors.New("tui: submit blocked by validation errors")
)
