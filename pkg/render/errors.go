package render

import "errors"

var (
	// ErrRendererNotFound is returned when no renderer is registered under a name.
	ErrRendererNotFound = errors.New("render: renderer not found")
	// ErrDuplicateRenderer is returned when a name is registered twice.
	ErrDuplicateRenderer = errors.New("render: renderer already registered")
)
