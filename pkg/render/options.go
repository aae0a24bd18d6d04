package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardeditor/pkg/model"
)

// RenderOptions describe per-request data renderers can use without touching
// the widget tree.
type RenderOptions struct {
	// Config is the configuration the form was built from. Interactive
	// renderers start editing from it.
	Config model.Config
	// Title is shown above the form when set.
	Title string
	// Endpoint is the WebSocket URL the HTML runtime reports widget changes
	// to. No runtime script is emitted when it is empty.
	Endpoint string
	// Theme carries resolved theme tokens; the vanilla renderer turns its CSS
	// variables into a style block.
	Theme *theme.RendererConfig
}
