// Package model defines the declarative form descriptor consumed by the card
// editor. A descriptor is an ordered list of FormControlRow values, each one
// holding labelled controls bound to a key of the card configuration through
// ConfigValue. Renderers translate rows into widgets (see pkg/widgets) and the
// binder (see pkg/binder) maps widget changes back onto the Config bag.
//
// Items follow the host semantics: a nil slice means the control declared no
// options at all, which is an authoring error for radio and checkbox groups,
// while an empty non-nil slice is a valid, empty option list.
package model
