package entity

import (
	"fmt"
	"strings"
)

// Attribute keys read by the lookup helpers.
const (
	AttrFriendlyName = "friendly_name"
	AttrDeviceClass  = "device_class"
)

// State is a single entity as reported by the host platform.
type State struct {
	EntityID    string         `json:"entity_id"`
	State       string         `json:"state"`
	Attributes  map[string]any `json:"attributes,omitempty"`
	LastChanged string         `json:"last_changed,omitempty"`
	LastUpdated string         `json:"last_updated,omitempty"`
}

// FriendlyName returns the friendly_name attribute, or "" when it is unset.
func (s State) FriendlyName() string {
	return s.attribute(AttrFriendlyName)
}

// DeviceClass returns the device_class attribute, or "" when it is unset.
func (s State) DeviceClass() string {
	return s.attribute(AttrDeviceClass)
}

func (s State) attribute(key string) string {
	value, ok := s.Attributes[key]
	if !ok || value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	return fmt.Sprint(value)
}

// Registry maps entity identifiers to their state.
type Registry map[string]State

// Host is the read-only state accessor exposed by the dashboard platform.
type Host interface {
	States() Registry
}

// StaticHost serves a fixed registry snapshot.
type StaticHost Registry

// States implements Host.
func (h StaticHost) States() Registry {
	return Registry(h)
}

// Domain returns the identifier prefix before the first ".". Identifiers
// without a separator have an empty domain.
func Domain(entityID string) string {
	idx := strings.Index(entityID, ".")
	if idx < 0 {
		return ""
	}
	return entityID[:idx]
}
