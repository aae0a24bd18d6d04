package render

import (
	"context"

	"github.com/goliatone/go-cardeditor/pkg/widgets"
)

// Renderer converts a widget form into a byte representation (HTML, a
// terminal session transcript, JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form widgets.Form, options RenderOptions) ([]byte, error)
}
