package binder

import "strings"

// Tag names reported by the host widget library.
const (
	TagCheckbox  = "HA-CHECKBOX"
	TagComboBox  = "HA-COMBO-BOX"
	TagRadio     = "HA-RADIO"
	TagSwitch    = "HA-SWITCH"
	TagTextField = "HA-TEXTFIELD"
)

// Source identifies the widget that fired a change.
type Source struct {
	Tag         string `json:"tagName,omitempty"`
	ConfigValue string `json:"configValue,omitempty"`
}

// IsCheckboxItem reports whether the source is one entry of a checkbox list.
func (s Source) IsCheckboxItem() bool {
	return strings.EqualFold(strings.TrimSpace(s.Tag), TagCheckbox)
}

// ChangeEvent is the closed set of change notifications the binder accepts:
// PlainChange and CompositeChange.
type ChangeEvent interface {
	EventSource() Source
	isChangeEvent()
}

// PlainChange is a native change event: the widget reports its own value and,
// for toggles, its checked state. Checked is nil when the widget has none.
type PlainChange struct {
	Source
	Value   string
	Checked *bool
}

// CompositeChange is a value-changed event from a composite widget such as the
// combo box, which nests the new value under the event detail. Value and
// Checked are the widget's own state at dispatch time.
type CompositeChange struct {
	Source
	Value   string
	Checked *bool
	Detail  any
}

func (e PlainChange) EventSource() Source     { return e.Source }
func (e CompositeChange) EventSource() Source { return e.Source }

func (PlainChange) isChangeEvent()     {}
func (CompositeChange) isChangeEvent() {}

// fields flattens an event into the widget value, checked state and detail.
func fields(ev ChangeEvent) (value string, checked *bool, detail any) {
	switch e := ev.(type) {
	case PlainChange:
		return e.Value, e.Checked, nil
	case CompositeChange:
		return e.Value, e.Checked, e.Detail
	}
	return "", nil, nil
}

// Checked is a helper for building PlainChange values.
func Checked(v bool) *bool {
	return &v
}

// Toggle builds the change a checkbox list item fires when flipped.
func Toggle(configValue, value string, checked bool) PlainChange {
	return PlainChange{
		Source:  Source{Tag: TagCheckbox, ConfigValue: configValue},
		Value:   value,
		Checked: Checked(checked),
	}
}
