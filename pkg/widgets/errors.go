package widgets

import "errors"

var (
	// ErrMissingItems is returned when a radio or checkbox group declares no
	// option list.
	ErrMissingItems = errors.New("widgets: control must have items defined")
	// ErrNotArray is returned when a checkbox group is bound to a configuration
	// value that is not a list.
	ErrNotArray = errors.New("widgets: bound value is not a list")
)
