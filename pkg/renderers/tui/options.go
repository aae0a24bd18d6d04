package tui

import (
	"github.com/goliatone/go-cardeditor/pkg/binder"
)

// OutputFormat controls how the edited configuration is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML emits the configuration as a YAML document.
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional prefixes the renderer applies to messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithBinder routes every answer through b, so its notifier sees each
// intermediate configuration.
func WithBinder(b *binder.Binder) Option {
	return func(r *Renderer) {
		if b != nil {
			r.binder = b
		}
	}
}

// WithEditor sends answers to sink instead of a private binder. The sink's
// attached configuration is the starting point and the cfg passed to Edit is
// ignored.
func WithEditor(sink ChangeSink) Option {
	return func(r *Renderer) {
		r.sink = sink
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
