// Package feature turns categorical records into fixed-length one-hot vectors.
//
// An Encoder is fitted once against the whole catalog and never changes
// afterwards, so it can be shared by concurrent readers without locking.
// Each field owns a block of the vector holding one slot per value seen at
// fit time, in sorted order. A value that was not seen at fit time leaves
// its block all-zero and is reported back as unseen; the request placeholder
// color ("Default") normally takes this path.
package feature

import (
	"fmt"
	"sort"

	"github.com/wardrobe-assistant/wardrobe/internal/domain"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/attribute"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/record"
)

// Vector is an encoded record.
type Vector []float32

// Encoding is the result of a strict transform.
type Encoding struct {
	Vector Vector
	// Unseen lists fields whose value was not in the fitted vocabulary.
	Unseen []attribute.Name
}

type vocabulary struct {
	field  attribute.Name
	values []string
	index  map[string]int
	offset int
}

// Encoder holds the frozen per-field vocabularies.
type Encoder struct {
	vocabs []vocabulary
	dim    int
}

// Fit builds the vocabularies for fields over records.
// Fails if records is empty or a field never appears in any record.
func Fit(fields []attribute.Name, records []record.Record) (*Encoder, error) {
	if len(records) == 0 {
		return nil, domain.NewEncodingError("*", "no records to fit")
	}
	if err := checkFields(fields); err != nil {
		return nil, err
	}

	state := State{Fields: make([]FieldState, len(fields))}
	for i, f := range fields {
		seen := make(map[string]struct{})
		for _, r := range records {
			if v, ok := r.Get(f); ok {
				seen[v] = struct{}{}
			}
		}
		if len(seen) == 0 {
			return nil, domain.NewEncodingError(f.String(), "field absent from every record")
		}
		values := make([]string, 0, len(seen))
		for v := range seen {
			values = append(values, v)
		}
		sort.Strings(values)
		state.Fields[i] = FieldState{Name: f, Values: values}
	}

	return FromState(state)
}

// FromState rebuilds an Encoder from a previously captured State.
func FromState(s State) (*Encoder, error) {
	fields := make([]attribute.Name, len(s.Fields))
	for i, fs := range s.Fields {
		fields[i] = fs.Name
	}
	if err := checkFields(fields); err != nil {
		return nil, err
	}

	e := &Encoder{vocabs: make([]vocabulary, len(s.Fields))}
	for i, fs := range s.Fields {
		if len(fs.Values) == 0 {
			return nil, domain.NewEncodingError(fs.Name.String(), "empty vocabulary")
		}
		values := append([]string(nil), fs.Values...)
		sort.Strings(values)
		idx := make(map[string]int, len(values))
		for j, v := range values {
			if _, dup := idx[v]; dup {
				return nil, domain.NewEncodingError(fs.Name.String(), fmt.Sprintf("duplicate value %q", v))
			}
			idx[v] = j
		}
		e.vocabs[i] = vocabulary{field: fs.Name, values: values, index: idx, offset: e.dim}
		e.dim += len(values)
	}
	return e, nil
}

func checkFields(fields []attribute.Name) error {
	if len(fields) == 0 {
		return domain.NewEncodingError("*", "no fields")
	}
	seen := make(map[attribute.Name]bool, len(fields))
	for _, f := range fields {
		if seen[f] {
			return domain.NewEncodingError(f.String(), "duplicate field")
		}
		seen[f] = true
	}
	return nil
}

// Dim returns the vector length.
func (e *Encoder) Dim() int { return e.dim }

// Fields returns the encoded fields in block order.
func (e *Encoder) Fields() []attribute.Name {
	out := make([]attribute.Name, len(e.vocabs))
	for i, v := range e.vocabs {
		out[i] = v.field
	}
	return out
}

// Vocabulary returns the fitted values of a field.
func (e *Encoder) Vocabulary(field attribute.Name) ([]string, bool) {
	for _, v := range e.vocabs {
		if v.field == field {
			return append([]string(nil), v.values...), true
		}
	}
	return nil, false
}

// Transform encodes a record. Every fitted field must be present in rec;
// unseen values are tolerated and reported in Encoding.Unseen.
func (e *Encoder) Transform(rec record.Record) (Encoding, error) {
	vec := make(Vector, e.dim)
	var unseen []attribute.Name
	for _, v := range e.vocabs {
		val, ok := rec.Get(v.field)
		if !ok {
			return Encoding{}, domain.NewEncodingError(v.field.String(), "required field missing")
		}
		if j, ok := v.index[val]; ok {
			vec[v.offset+j] = 1
		} else {
			unseen = append(unseen, v.field)
		}
	}
	return Encoding{Vector: vec, Unseen: unseen}, nil
}

// TransformCatalog encodes a catalog record. Missing and unseen values
// both leave their block all-zero.
func (e *Encoder) TransformCatalog(rec record.Record) Vector {
	vec := make(Vector, e.dim)
	for _, v := range e.vocabs {
		if j, ok := v.index[rec.Value(v.field)]; ok {
			vec[v.offset+j] = 1
		}
	}
	return vec
}

// State captures the vocabularies for persistence.
func (e *Encoder) State() State {
	s := State{Version: StateVersion, Fields: make([]FieldState, len(e.vocabs))}
	for i, v := range e.vocabs {
		s.Fields[i] = FieldState{Name: v.field, Values: append([]string(nil), v.values...)}
	}
	return s
}
