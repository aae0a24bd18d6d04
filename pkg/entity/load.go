package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmptyEntityID is returned when a state snapshot lists an entity without
// an identifier.
var ErrEmptyEntityID = errors.New("entity: state without entity_id")

// LoadStates decodes a state snapshot. Both the /api/states array form and an
// object keyed by entity id are accepted.
func LoadStates(r io.Reader) (Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("entity: read states: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Registry{}, nil
	}

	if trimmed[0] == '[' {
		var list []State
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("entity: decode state list: %w", err)
		}
		reg := make(Registry, len(list))
		for _, state := range list {
			id := strings.TrimSpace(state.EntityID)
			if id == "" {
				return nil, ErrEmptyEntityID
			}
			state.EntityID = id
			reg[id] = state
		}
		return reg, nil
	}

	var keyed map[string]State
	if err := json.Unmarshal(trimmed, &keyed); err != nil {
		return nil, fmt.Errorf("entity: decode state map: %w", err)
	}
	reg := make(Registry, len(keyed))
	for id, state := range keyed {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, ErrEmptyEntityID
		}
		if state.EntityID == "" {
			state.EntityID = id
		}
		reg[id] = state
	}
	return reg, nil
}

// LoadStatesFile reads a state snapshot from disk.
func LoadStatesFile(path string) (Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("entity: open states: %w", err)
	}
	defer f.Close()
	return LoadStates(f)
}
