package descriptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cardeditor/pkg/model"
)

// ErrEditorNotFound is returned when a store has no editor with the given id.
var ErrEditorNotFound = errors.New("descriptor: editor not found")

// Editor is one named descriptor.
type Editor struct {
	ID    string                 `json:"id" yaml:"id"`
	Title string                 `json:"title,omitempty" yaml:"title,omitempty"`
	Rows  []model.FormControlRow `json:"rows" yaml:"rows"`
}

// Store indexes editors by id.
type Store struct {
	editors map[string]Editor
}

type documentFile struct {
	Editors map[string]editorFile `json:"editors" yaml:"editors"`
}

type editorFile struct {
	Title string                 `json:"title" yaml:"title"`
	Rows  []model.FormControlRow `json:"rows" yaml:"rows"`
}

// LoadFS walks fsys and parses every JSON/YAML descriptor document. A nil fsys
// yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{editors: make(map[string]Editor)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDescriptorFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("descriptor: read %s: %w", path, err)
		}
		return store.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile parses a single descriptor document from disk.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("descriptor: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a single document. name selects the decoder by extension and
// is used in error messages.
func Parse(data []byte, name string) (*Store, error) {
	store := &Store{editors: make(map[string]Editor)}
	if err := store.add(data, name); err != nil {
		return nil, err
	}
	return store, nil
}

// Editor returns the descriptor registered under id.
func (s *Store) Editor(id string) (Editor, error) {
	if s != nil {
		if ed, ok := s.editors[strings.TrimSpace(id)]; ok {
			return ed, nil
		}
	}
	return Editor{}, fmt.Errorf("%w: %q", ErrEditorNotFound, id)
}

// IDs lists the editor ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.editors))
	for id := range s.editors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any editors.
func (s *Store) Empty() bool {
	return s == nil || len(s.editors) == 0
}

func (s *Store) add(data []byte, path string) error {
	doc, err := parseDocument(data, path)
	if err != nil {
		return err
	}
	for rawID, raw := range doc.Editors {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("descriptor: file %s defines an empty editor id", path)
		}
		if _, exists := s.editors[id]; exists {
			return fmt.Errorf("descriptor: duplicate editor %q (file %s)", id, path)
		}
		s.editors[id] = Editor{
			ID:    id,
			Title: sanitizeLabel(raw.Title),
			Rows:  normaliseRows(raw.Rows),
		}
	}
	return nil
}

func parseDocument(data []byte, path string) (documentFile, error) {
	var doc documentFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("descriptor: decode %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("descriptor: decode %s: %w", path, err)
		}
	}
	return doc, nil
}

func normaliseRows(rows []model.FormControlRow) []model.FormControlRow {
	out := make([]model.FormControlRow, 0, len(rows))
	for _, row := range rows {
		row.Label = sanitizeLabel(row.Label)
		row.CSSClass = strings.TrimSpace(row.CSSClass)
		controls := make([]model.FormControl, 0, len(row.Controls))
		for _, control := range row.Controls {
			control.Label = sanitizeLabel(control.Label)
			control.ConfigValue = strings.TrimSpace(control.ConfigValue)
			control.Type = model.FormControlType(strings.ToLower(strings.TrimSpace(string(control.Type))))
			if control.Items != nil {
				items := make([]model.DropdownOption, len(control.Items))
				for i, item := range control.Items {
					items[i] = model.DropdownOption{Label: sanitizeLabel(item.Label), Value: item.Value}
				}
				control.Items = items
			}
			controls = append(controls, control)
		}
		row.Controls = controls
		out = append(out, row)
	}
	return out
}

func isDescriptorFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
