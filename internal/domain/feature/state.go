package feature

import (
	"slices"

	"github.com/wardrobe-assistant/wardrobe/internal/domain/attribute"
)

// StateVersion is bumped when the State layout changes.
const StateVersion = 1

// State is the serializable form of a fitted Encoder.
type State struct {
	Version int          `json:"version"`
	Fields  []FieldState `json:"fields"`
}

// FieldState is the vocabulary of one field.
type FieldState struct {
	Name   attribute.Name `json:"name"`
	Values []string       `json:"values"`
}

// Equal reports whether two states describe the same encoding.
func (s State) Equal(o State) bool {
	if len(s.Fields) != len(o.Fields) {
		return false
	}
	for i := range s.Fields {
		if s.Fields[i].Name != o.Fields[i].Name {
			return false
		}
		if !slices.Equal(sortedCopy(s.Fields[i].Values), sortedCopy(o.Fields[i].Values)) {
			return false
		}
	}
	return true
}

// Covers reports whether the state encodes exactly the given fields, in order.
func (s State) Covers(fields []attribute.Name) bool {
	if len(s.Fields) != len(fields) {
		return false
	}
	for i, f := range fields {
		if s.Fields[i].Name != f {
			return false
		}
	}
	return true
}

func sortedCopy(v []string) []string {
	c := slices.Clone(v)
	slices.Sort(c)
	return c
}
