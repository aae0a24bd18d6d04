package binder

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goliatone/go-cardeditor/pkg/model"
)

// ErrNotArray is returned when a checkbox list item is bound to a configuration
// value that is missing or is not a list.
var ErrNotArray = errors.New("binder: bound value is not a list")

// Apply computes the configuration that results from ev. The input is never
// modified; the returned map is always a new shallow copy.
func Apply(cfg model.Config, ev ChangeEvent) (model.Config, error) {
	if ev == nil {
		return nil, fmt.Errorf("%w: nil event", ErrInvalidEvent)
	}

	source := ev.EventSource()
	if source.IsCheckboxItem() {
		value, checked, _ := fields(ev)
		return toggle(cfg, source.ConfigValue, value, checked)
	}

	next := cfg.Clone()
	if source.ConfigValue == "" {
		return next, nil
	}

	value, defined := resolve(ev)
	if !defined {
		delete(next, source.ConfigValue)
		return next, nil
	}
	next[source.ConfigValue] = value
	return next, nil
}

// resolve picks the new value for non-list widgets. When the widget has a
// checked state, or the detail value is not truthy, the widget value wins and
// the checked state is the fallback. Otherwise the detail value is used.
func resolve(ev ChangeEvent) (any, bool) {
	value, checked, detail := fields(ev)
	if checked != nil || !model.Truthy(detail) {
		if value != "" {
			return value, true
		}
		if checked != nil {
			return *checked, true
		}
		return nil, false
	}
	return detail, true
}

func toggle(cfg model.Config, key, value string, checkedState *bool) (model.Config, error) {
	raw, ok := cfg.Lookup(key)
	if !ok || raw == nil {
		return nil, fmt.Errorf("%w: %q is unset", ErrNotArray, key)
	}
	current, err := model.AsStringList(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrNotArray, key, err)
	}

	checked := checkedState != nil && *checkedState
	idx := slices.Index(current, value)

	next := cfg.Clone()
	switch {
	case checked && idx < 0:
		current = append(current, value)
	case !checked && idx >= 0:
		current = slices.Delete(current, idx, idx+1)
	default:
		return next, nil
	}

	if _, isAny := raw.([]any); isAny {
		list := make([]any, len(current))
		for i, v := range current {
			list[i] = v
		}
		next[key] = list
		return next, nil
	}
	next[key] = current
	return next, nil
}
