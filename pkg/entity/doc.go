// Package entity models the host's read-only entity registry and projects it
// into dropdown options. Entity identifiers use the "<domain>.<object_id>"
// format; the domain is everything before the first dot.
package entity
