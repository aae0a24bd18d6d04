package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-cardeditor/pkg/descriptor"
	"github.com/goliatone/go-cardeditor/pkg/entity"
	"github.com/goliatone/go-cardeditor/pkg/model"
	"github.com/goliatone/go-cardeditor/pkg/render"
	"github.com/goliatone/go-cardeditor/pkg/renderers/vanilla"
	"github.com/goliatone/go-cardeditor/pkg/widgets"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that rewrites descriptor rows
// before the widget tree is built.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from descriptor to rendered output.
// It applies sensible defaults (vanilla renderer, embedded templates) while
// remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render one editor.
type Request struct {
	// Store and EditorID select a descriptor. Ignored when Rows is set.
	Store    *descriptor.Store
	EditorID string

	// Rows allows callers to bypass the descriptor store.
	Rows []model.FormControlRow

	// Config is the card configuration the widgets display.
	Config model.Config

	// States feeds itemsFrom lookups. Optional.
	States entity.Registry

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request presentation settings. Config is
	// filled from the request when left empty.
	RenderOptions render.RenderOptions
}

// Form resolves the request into a widget tree without rendering it.
func (o *Orchestrator) Form(ctx context.Context, req Request) (widgets.Form, error) {
	if ctx == nil {
		return widgets.Form{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return widgets.Form{}, err
	}

	rows, err := o.resolveRows(req)
	if err != nil {
		return widgets.Form{}, err
	}
	rows = descriptor.Resolve(rows, req.States)

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &rows); err != nil {
			return widgets.Form{}, fmt.Errorf("orchestrator: transform rows: %w", err)
		}
	}

	form, err := widgets.BuildForm(rows, req.Config)
	if err != nil {
		return widgets.Form{}, fmt.Errorf("orchestrator: build widgets: %w", err)
	}
	return form, nil
}

// Generate executes the descriptor → widgets → renderer sequence and returns
// the rendered bytes (HTML for the default vanilla renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	form, err := o.Form(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Config == nil {
		opts.Config = req.Config
	}
	if opts.Title == "" && req.Store != nil && len(req.Rows) == 0 {
		if ed, err := req.Store.Editor(req.EditorID); err == nil {
			opts.Title = ed.Title
		}
	}

	o.logger.Debug("rendering editor",
		zap.String("editor", req.EditorID),
		zap.String("renderer", renderer.Name()),
		zap.Int("rows", len(form.Rows)),
	)
	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveRows(req Request) ([]model.FormControlRow, error) {
	if len(req.Rows) > 0 {
		return req.Rows, nil
	}
	if req.Store == nil {
		return nil, errors.New("orchestrator: store or rows are required")
	}
	ed, err := req.Store.Editor(req.EditorID)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return ed.Rows, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
