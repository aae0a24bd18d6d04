// Package cardeditor renders dashboard card editors from declarative
// descriptors and binds widget changes back into the card configuration.
//
// The root package re-exports the common entry points; the pipeline lives in
// pkg/orchestrator and the building blocks under pkg/.
package cardeditor

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-cardeditor/pkg/descriptor"
	"github.com/goliatone/go-cardeditor/pkg/editor"
	"github.com/goliatone/go-cardeditor/pkg/entity"
	"github.com/goliatone/go-cardeditor/pkg/model"
	"github.com/goliatone/go-cardeditor/pkg/orchestrator"
	"github.com/goliatone/go-cardeditor/pkg/render"
	"github.com/goliatone/go-cardeditor/pkg/renderers/vanilla"
)

// RenderOptions describes per-request presentation settings.
type RenderOptions = render.RenderOptions

// Config is a card configuration.
type Config = model.Config

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewEditor exposes the editor constructor from the top-level module.
func NewEditor(options ...editor.Option) *editor.Editor {
	return editor.New(options...)
}

// GenerateHTML renders the editor registered under editorID in store with the
// vanilla renderer. states may be nil when no control uses itemsFrom.
func GenerateHTML(ctx context.Context, store *descriptor.Store, editorID string, cfg Config, states entity.Registry, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Store:    store,
		EditorID: editorID,
		Config:   cfg,
		States:   states,
	})
}

// GenerateHTMLFromRows renders rows directly, bypassing the descriptor store.
func GenerateHTMLFromRows(ctx context.Context, rows []model.FormControlRow, cfg Config, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Rows:   rows,
		Config: cfg,
	})
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
