package model

import (
	"fmt"
	"reflect"
)

// Config is the schema-less card configuration owned by the host. Values are
// primitives or string lists; the editor only ever replaces it with copies.
type Config map[string]any

// Clone returns a shallow copy. A nil receiver yields an empty, non-nil map.
func (c Config) Clone() Config {
	out := make(Config, len(c)+1)
	for key, value := range c {
		out[key] = value
	}
	return out
}

// Lookup returns the raw value stored under key.
func (c Config) Lookup(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	value, ok := c[key]
	return value, ok
}

// StringValue renders the value under key for text-like widgets. Missing and
// nil values yield "".
func (c Config) StringValue(key string) string {
	value, ok := c.Lookup(key)
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// Truthy reports whether the value under key counts as set.
func (c Config) Truthy(key string) bool {
	value, _ := c.Lookup(key)
	return Truthy(value)
}

// StringList returns the array view of the value under key. The second result
// is false when the value is missing; the error is non-nil when the value is
// present but is not a list of strings.
func (c Config) StringList(key string) ([]string, bool, error) {
	value, ok := c.Lookup(key)
	if !ok || value == nil {
		return nil, false, nil
	}
	list, err := AsStringList(value)
	if err != nil {
		return nil, true, err
	}
	return list, true, nil
}

// AsStringList converts []string and []any (of strings) values into a fresh
// []string.
func AsStringList(value any) ([]string, error) {
	switch typed := value.(type) {
	case []string:
		return append([]string(nil), typed...), nil
	case []any:
		out := make([]string, 0, len(typed))
		for i, item := range typed {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("element %d is %T, not string", i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("value is %T, not a list", value)
	}
}

// Truthy mirrors the host's notion of a set value: false, zero numbers, the
// empty string and nil are unset; every list or map is set, even when empty.
func Truthy(value any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		return typed != ""
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		rv := reflect.ValueOf(typed)
		if rv.CanFloat() {
			f := rv.Float()
			return f != 0 && f == f
		}
		if rv.CanInt() {
			return rv.Int() != 0
		}
		return rv.Uint() != 0
	default:
		return true
	}
}
