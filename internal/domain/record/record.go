package record

import (
	"strings"

	"github.com/wardrobe-assistant/wardrobe/internal/domain/attribute"
)

// Record is an immutable categorical record. An absent key means the value is missing.
type Record struct {
	values map[attribute.Name]string
}

// New creates a Record. Values are trimmed; empty values and pandas-style
// null markers ("nan", "NaN", "null", "None") are treated as missing.
func New(values map[attribute.Name]string) Record {
	r := Record{values: make(map[attribute.Name]string, len(values))}
	for k, v := range values {
		if v, ok := clean(v); ok {
			r.values[k] = v
		}
	}
	return r
}

// Get returns the value of a field and whether it is present.
func (r Record) Get(name attribute.Name) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Value returns the value of a field, or "" when missing.
func (r Record) Value(name attribute.Name) string { return r.values[name] }

// Has reports whether the field is present.
func (r Record) Has(name attribute.Name) bool {
	_, ok := r.values[name]
	return ok
}

// HasAll reports whether every given field is present.
func (r Record) HasAll(names []attribute.Name) bool {
	for _, n := range names {
		if !r.Has(n) {
			return false
		}
	}
	return true
}

// Len returns the number of present fields.
func (r Record) Len() int { return len(r.values) }

// With returns a copy with the field set. An empty value removes the field.
func (r Record) With(name attribute.Name, value string) Record {
	c := Record{values: make(map[attribute.Name]string, len(r.values)+1)}
	for k, v := range r.values {
		c.values[k] = v
	}
	if v, ok := clean(value); ok {
		c.values[name] = v
	} else {
		delete(c.values, name)
	}
	return c
}

// Map returns a copy of the present fields.
func (r Record) Map() map[attribute.Name]string {
	m := make(map[attribute.Name]string, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

var nullMarkers = map[string]bool{"nan": true, "null": true, "none": true, "<na>": true}

func clean(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" || nullMarkers[strings.ToLower(v)] {
		return "", false
	}
	return v, true
}
