package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Wire event type names.
const (
	EventChange       = "change"
	EventValueChanged = "value-changed"
	// EventConfigChanged names the outbound notification sent to the host.
	EventConfigChanged = "config-changed"
)

// ErrInvalidEvent is returned by Decode for payloads that cannot be mapped to
// a ChangeEvent.
var ErrInvalidEvent = errors.New("binder: invalid change event")

// WireEvent is the JSON shape a browser runtime sends for a widget event.
type WireEvent struct {
	Type   string      `json:"type,omitempty"`
	Target WireTarget  `json:"target"`
	Detail *WireDetail `json:"detail,omitempty"`
}

// WireTarget mirrors the event target properties the binder reads.
type WireTarget struct {
	TagName     string `json:"tagName,omitempty"`
	ConfigValue string `json:"configValue,omitempty"`
	Value       any    `json:"value,omitempty"`
	Checked     *bool  `json:"checked,omitempty"`
}

// WireDetail carries the nested value of composite events.
type WireDetail struct {
	Value any `json:"value,omitempty"`
}

// Decode parses a JSON wire event into a ChangeEvent.
func Decode(data []byte) (ChangeEvent, error) {
	var wire WireEvent
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return wire.ChangeEvent()
}

// ChangeEvent classifies the wire event by the fields it carries: a detail
// payload makes it a CompositeChange, anything else a PlainChange. The type
// name is only checked against the known event names.
func (w WireEvent) ChangeEvent() (ChangeEvent, error) {
	switch kind := strings.TrimSpace(w.Type); kind {
	case "", EventChange, EventValueChanged:
	default:
		return nil, fmt.Errorf("%w: unsupported type %q", ErrInvalidEvent, kind)
	}

	source := Source{
		Tag:         strings.ToUpper(strings.TrimSpace(w.Target.TagName)),
		ConfigValue: strings.TrimSpace(w.Target.ConfigValue),
	}
	value, err := wireString(w.Target.Value)
	if err != nil {
		return nil, err
	}

	if w.Detail != nil {
		return CompositeChange{
			Source:  source,
			Value:   value,
			Checked: w.Target.Checked,
			Detail:  w.Detail.Value,
		}, nil
	}
	return PlainChange{Source: source, Value: value, Checked: w.Target.Checked}, nil
}

func wireString(value any) (string, error) {
	switch typed := value.(type) {
	case nil:
		return "", nil
	case string:
		return typed, nil
	case bool, float64:
		return fmt.Sprint(typed), nil
	default:
		return "", fmt.Errorf("%w: target value is %T", ErrInvalidEvent, value)
	}
}

// ConfigChangedMessage is the outbound payload announced to the host.
type ConfigChangedMessage struct {
	Type   string         `json:"type"`
	Config map[string]any `json:"config"`
}
