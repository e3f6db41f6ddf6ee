package query

import (
	"github.com/wardrobe-assistant/wardrobe/internal/domain/attribute"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/record"
)

// DefaultPlaceholderColor fills color_category for every query. It is not a
// color family, so it normally falls outside the fitted vocabulary.
const DefaultPlaceholderColor = "Default"

// Query is a recommendation request. Owned by the request, never retained.
type Query struct {
	values record.Record
}

// New creates a Query from the caller-supplied fields.
// Fields other than attribute.QueryFields are ignored; missing fields are
// kept missing and surface later as an encoding error.
func New(values map[attribute.Name]string) Query {
	kept := make(map[attribute.Name]string, len(attribute.QueryFields))
	for _, f := range attribute.QueryFields {
		if v, ok := values[f]; ok {
			kept[f] = v
		}
	}
	return Query{values: record.New(kept)}
}

// Gender returns the requested gender, or "" when missing.
func (q Query) Gender() string { return q.values.Value(attribute.Gender) }

// Get returns a query field.
func (q Query) Get(name attribute.Name) (string, bool) { return q.values.Get(name) }

// Missing lists the query fields the caller did not supply.
func (q Query) Missing() []attribute.Name {
	var out []attribute.Name
	for _, f := range attribute.QueryFields {
		if !q.values.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Record returns the full feature record with the placeholder color injected.
func (q Query) Record(placeholder string) record.Record {
	if placeholder == "" {
		placeholder = DefaultPlaceholderColor
	}
	return q.values.With(attribute.ColorCategory, placeholder)
}

// Key returns a stable string identifying the query, for logging.
func (q Query) Key() string {
	var b []byte
	for i, f := range attribute.QueryFields {
		if i > 0 {
			b = append(b, '|')
		}
		b = append(b, q.values.Value(f)...)
	}
	return string(b)
}
