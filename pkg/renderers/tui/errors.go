package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoOptions is reported when a choice widget has nothing to pick from.
	ErrNoOptions = errors.New("tui: control has no options")
)
