package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cardeditor/pkg/binder"
	"github.com/goliatone/go-cardeditor/pkg/model"
	"github.com/goliatone/go-cardeditor/pkg/render"
	"github.com/goliatone/go-cardeditor/pkg/widgets"
)

// Renderer implements render.Renderer for terminal sessions. Each widget of
// the form becomes a prompt and each answer a change event; the output is the
// final configuration.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	binder       *binder.Binder
	sink         ChangeSink
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.binder == nil {
		r.binder = binder.New()
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatYAML, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatYAML:
		return "application/yaml"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every control in form, starting from opts.Config.
func (r *Renderer) Render(ctx context.Context, form widgets.Form, opts render.RenderOptions) ([]byte, error) {
	cfg, err := r.Edit(ctx, form, opts.Config)
	if err != nil {
		return nil, err
	}
	return r.serialize(cfg)
}

// Edit runs the prompt session and returns the resulting configuration
// without serializing it.
func (r *Renderer) Edit(ctx context.Context, form widgets.Form, cfg model.Config) (model.Config, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	state := NewState(r.binder, cfg)
	if r.sink != nil {
		state = NewEditorState(r.sink)
	}
	for _, row := range form.Rows {
		if row.Label != "" {
			if err := r.info(ctx, row.Label); err != nil {
				return nil, err
			}
		}
		for _, node := range row.Controls {
			if err := r.promptNode(ctx, node, state); err != nil {
				return nil, err
			}
		}
	}
	return state.Config(), nil
}

func (r *Renderer) promptNode(ctx context.Context, node widgets.Node, state *State) error {
	labels := labelIndex(node)
	controls := controlsOf(node)
	if len(controls) == 0 {
		return nil
	}

	first := controls[0]
	switch first.Kind {
	case widgets.KindComboBox:
		return r.promptCombo(ctx, first, state)
	case widgets.KindRadio:
		return r.promptRadio(ctx, labels, controls, state)
	case widgets.KindCheckbox:
		return r.promptCheckboxes(ctx, labels, controls, state)
	case widgets.KindSwitch:
		return r.promptSwitch(ctx, labels, first, state)
	case widgets.KindTextField:
		return r.promptText(ctx, first, state)
	}
	return nil
}

func (r *Renderer) promptCombo(ctx context.Context, node widgets.Node, state *State) error {
	if len(node.Items) == 0 {
		return r.warn(ctx, fmt.Errorf("%s: %w", displayLabel(node.Label, node.ConfigValue), ErrNoOptions))
	}
	options := make([]string, len(node.Items))
	current := -1
	for i, item := range node.Items {
		options[i] = optionLabel(item.Label, item.Value)
		if item.Value == node.Value {
			current = i
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(node.Label, node.ConfigValue),
		Options:      options,
		DefaultIndex: current,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(node.Items) || idx == current {
		return nil
	}
	picked := node.Items[idx].Value
	return state.Apply(ctx, binder.CompositeChange{
		Source: binder.Source{Tag: binder.TagComboBox, ConfigValue: node.ConfigValue},
		Value:  node.Value,
		Detail: picked,
	})
}

func (r *Renderer) promptRadio(ctx context.Context, labels map[string]string, radios []widgets.Node, state *State) error {
	options := make([]string, len(radios))
	current := -1
	for i, radio := range radios {
		options[i] = optionLabel(labels[radio.ID], radio.Value)
		if radio.Checked {
			current = i
		}
	}

	key := radios[0].ConfigValue
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(labels[""], key),
		Options:      options,
		DefaultIndex: current,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(radios) || idx == current {
		return nil
	}
	return state.Apply(ctx, binder.PlainChange{
		Source:  binder.Source{Tag: binder.TagRadio, ConfigValue: key},
		Value:   radios[idx].Value,
		Checked: binder.Checked(true),
	})
}

func (r *Renderer) promptCheckboxes(ctx context.Context, labels map[string]string, boxes []widgets.Node, state *State) error {
	options := make([]string, len(boxes))
	var defaults []int
	for i, box := range boxes {
		options[i] = optionLabel(labels[box.ID], box.Value)
		if box.Checked {
			defaults = append(defaults, i)
		}
	}

	key := boxes[0].ConfigValue
	picked, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  displayLabel(labels[""], key),
		Options:  options,
		Defaults: defaults,
	})
	if err != nil {
		return err
	}

	for i, box := range boxes {
		checked := slices.Contains(picked, i)
		if checked == box.Checked {
			continue
		}
		if err := state.Apply(ctx, binder.Toggle(key, box.Value, checked)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptSwitch(ctx context.Context, labels map[string]string, node widgets.Node, state *State) error {
	answer, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(labels[node.ID], node.ConfigValue),
		Default: node.Checked,
	})
	if err != nil {
		return err
	}
	if answer == node.Checked {
		return nil
	}
	return state.Apply(ctx, binder.PlainChange{
		Source:  binder.Source{Tag: binder.TagSwitch, ConfigValue: node.ConfigValue},
		Checked: binder.Checked(answer),
	})
}

func (r *Renderer) promptText(ctx context.Context, node widgets.Node, state *State) error {
	answer, err := r.driver.Input(ctx, InputConfig{
		Message: displayLabel(node.Label, node.ConfigValue),
		Default: node.Value,
		Help:    "Leave empty to remove the setting.",
	})
	if err != nil {
		return err
	}
	answer = strings.TrimSpace(answer)
	if answer == node.Value {
		return nil
	}
	return state.Apply(ctx, binder.PlainChange{
		Source: binder.Source{Tag: binder.TagTextField, ConfigValue: node.ConfigValue},
		Value:  answer,
	})
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) warn(ctx context.Context, err error) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+err.Error())
}

func (r *Renderer) serialize(cfg model.Config) ([]byte, error) {
	if cfg == nil {
		cfg = model.Config{}
	}
	switch r.outputFormat {
	case OutputFormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any(cfg)); err != nil {
			return nil, fmt.Errorf("tui: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("tui: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(cfg)), nil
	default:
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return out, nil
	}
}

// labelIndex maps control IDs to the text of the label pointing at them. The
// empty key holds the caption of the whole group.
func labelIndex(node widgets.Node) map[string]string {
	labels := make(map[string]string)
	node.Walk(func(n widgets.Node) bool {
		if n.Kind != widgets.KindLabel {
			return true
		}
		if _, seen := labels[n.For]; !seen {
			labels[n.For] = n.Label
		}
		return false
	})
	return labels
}

func controlsOf(node widgets.Node) []widgets.Node {
	var out []widgets.Node
	node.Walk(func(n widgets.Node) bool {
		if n.IsControl() {
			out = append(out, n)
		}
		return true
	})
	return out
}

func displayLabel(label, key string) string {
	if strings.TrimSpace(label) != "" {
		return label
	}
	return key
}

func optionLabel(label, value string) string {
	if label == "" || label == value {
		return value
	}
	return fmt.Sprintf("%s (%s)", label, value)
}

func prettyPrint(cfg model.Config) string {
	keys := make([]string, 0, len(cfg))
	for key := range cfg {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s: %v\n", key, cfg[key])
	}
	return b.String()
}
