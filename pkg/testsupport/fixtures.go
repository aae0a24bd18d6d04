package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cardeditor/pkg/descriptor"
	"github.com/goliatone/go-cardeditor/pkg/entity"
	"github.com/goliatone/go-cardeditor/pkg/model"
)

// MustLoadStore reads a descriptor file or directory into a Store.
func MustLoadStore(t *testing.T, path string) *descriptor.Store {
	t.Helper()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat descriptor: %v", err)
	}
	var store *descriptor.Store
	if info.IsDir() {
		store, err = descriptor.LoadFS(os.DirFS(path))
	} else {
		store, err = descriptor.LoadFile(path)
	}
	if err != nil {
		t.Fatalf("load descriptor: %v", err)
	}
	return store
}

// MustLoadRows returns the rows of editor id from the descriptor at path.
func MustLoadRows(t *testing.T, path, id string) []model.FormControlRow {
	t.Helper()

	ed, err := MustLoadStore(t, path).Editor(id)
	if err != nil {
		t.Fatalf("editor %s: %v", id, err)
	}
	return ed.Rows
}

// LoadRows decodes a bare row list from JSON or YAML, returning an error for
// callers managing setup outside of *testing.T.
func LoadRows(path string) ([]model.FormControlRow, error) {
	if path == "" {
		return nil, errors.New("testsupport: rows path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read rows: %w", err)
	}
	var rows []model.FormControlRow
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("testsupport: decode rows: %w", err)
	}
	return rows, nil
}

// SampleStates returns a small entity registry covering climate, light and
// binary_sensor domains.
func SampleStates() entity.Registry {
	state := func(id, name, class string) entity.State {
		attrs := map[string]any{entity.AttrFriendlyName: name}
		if class != "" {
			attrs[entity.AttrDeviceClass] = class
		}
		return entity.State{EntityID: id, State: "on", Attributes: attrs}
	}
	return entity.Registry{
		"climate.hall":                 state("climate.hall", "Hall", ""),
		"climate.office":               state("climate.office", "Office", ""),
		"light.kitchen":                state("light.kitchen", "Kitchen", ""),
		"binary_sensor.kitchen_window": state("binary_sensor.kitchen_window", "Kitchen window", "window"),
		"binary_sensor.front_door":     state("binary_sensor.front_door", "Front door", "door"),
	}
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	writeFile(t, path, payload)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	writeFile(t, path, data)
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureRenderOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureRenderOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out, buf.String()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}
