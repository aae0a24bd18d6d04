package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardeditor/pkg/render"
	rendertemplate "github.com/goliatone/go-cardeditor/pkg/render/template"
	gotemplate "github.com/goliatone/go-cardeditor/pkg/render/template/gotemplate"
	"github.com/goliatone/go-cardeditor/pkg/widgets"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/editor.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet links an external stylesheet ahead of the form.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

// WithoutInlineStyles drops the embedded style block, for hosts that ship the
// stylesheet themselves.
func WithoutInlineStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = false
	}
}

// Renderer writes the widget tree as HTML using the host's custom elements.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	stylesheet   string
	inlineStyles bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), inlineStyles: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		stylesheet:   cfg.stylesheet,
		inlineStyles: cfg.inlineStyles,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, form widgets.Form, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	formClass := strings.TrimSpace(form.Class)
	if formClass == "" {
		formClass = widgets.ClassCardConfig
	}

	data := map[string]any{
		"form_class": formClass,
		"rows":       renderRows(form.Rows),
		"title":      opts.Title,
		"stylesheet": r.stylesheet,
		"endpoint":   opts.Endpoint,
	}
	if r.inlineStyles {
		data["styles"] = readAsset(StylesheetName)
	}
	if opts.Endpoint != "" {
		data["runtime"] = readAsset(RuntimeScriptName)
	}
	if cfg := opts.Theme; cfg != nil {
		data["theme_name"] = cfg.Theme
		data["theme_variant"] = cfg.Variant
		data["theme_style"] = themeStyle(formClass, cfg)
	}

	result, err := r.templates.RenderTemplate("templates/editor.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// themeStyle scopes the theme's CSS variables to the form root.
func themeStyle(formClass string, cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		if strings.HasPrefix(key, "--") && safeCSS(key) && safeCSS(cfg.CSSVars[key]) {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	selector := widgets.ClassCardConfig
	if classes := strings.Fields(formClass); len(classes) > 0 {
		selector = classes[0]
	}

	var b strings.Builder
	b.WriteString(".")
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, key := range keys {
		b.WriteString("    ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func safeCSS(value string) bool {
	return !strings.ContainsAny(value, "<>{};")
}
