package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/goliatone/go-cardeditor/pkg/model"
)

// Transformer rewrites descriptor rows after item resolution and before the
// widget tree is built. It receives a private copy of the rows.
type Transformer interface {
	Transform(ctx context.Context, rows *[]model.FormControlRow) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, rows *[]model.FormControlRow) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, rows *[]model.FormControlRow) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, rows)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file.
// Controls are addressed by their configuration key:
//
//	{
//	  "controls": {
//	    "entity": {"label": "Light", "items": [{"label": "Porch", "value": "light.porch"}]}
//	  },
//	  "hide": ["debug"]
//	}
type JSONPresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Controls map[string]controlPatch `json:"controls"`
	Hide     []string                `json:"hide"`
}

type controlPatch struct {
	Label    string                  `json:"label"`
	CSSClass string                  `json:"cssClass"`
	Type     model.FormControlType   `json:"type"`
	Items    *[]model.DropdownOption `json:"items"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the patches. Patching a key no control uses is an error;
// hiding one is not.
func (t *JSONPresetTransformer) Transform(ctx context.Context, rows *[]model.FormControlRow) error {
	if rows == nil {
		return errors.New("json preset transformer: rows are nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(t.document.Controls))
	out := (*rows)[:0]
	for _, row := range *rows {
		controls := row.Controls[:0]
		for _, control := range row.Controls {
			if slices.Contains(t.document.Hide, control.ConfigValue) {
				continue
			}
			if patch, ok := t.document.Controls[control.ConfigValue]; ok {
				applyControlPatch(&control, patch)
				seen[control.ConfigValue] = true
			}
			controls = append(controls, control)
		}
		if len(controls) == 0 && len(row.Controls) > 0 {
			continue
		}
		row.Controls = controls
		out = append(out, row)
	}
	*rows = out

	for key := range t.document.Controls {
		if !seen[key] {
			return fmt.Errorf("json preset transformer: control %q not found", key)
		}
	}
	return nil
}

func applyControlPatch(control *model.FormControl, patch controlPatch) {
	if patch.Label != "" {
		control.Label = patch.Label
	}
	if patch.CSSClass != "" {
		control.CSSClass = patch.CSSClass
	}
	if patch.Type != "" {
		control.Type = patch.Type
	}
	if patch.Items != nil {
		control.Items = slices.Clone(*patch.Items)
		if control.Items == nil {
			control.Items = []model.DropdownOption{}
		}
	}
}
