package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEncoding signals a record that cannot be encoded into a feature vector.
	ErrEncoding = errors.New("encoding error")
	// ErrIndexUnavailable signals a query issued before the catalog index was published.
	ErrIndexUnavailable = errors.New("index unavailable")
	// ErrInvalidCatalog signals an unreadable or malformed catalog dataset.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrInvalidQuery signals a malformed recommendation query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrDimensionMismatch signals a query vector of the wrong length.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrStateMismatch signals a persisted encoder state incompatible with the configured features.
	ErrStateMismatch = errors.New("encoder state mismatch")
)

// EncodingError wraps ErrEncoding with the offending field.
type EncodingError struct {
	Field  string
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: field %q: %s", ErrEncoding.Error(), e.Field, e.Reason)
}

func (e *EncodingError) Unwrap() error { return ErrEncoding }

// NewEncodingError creates an encoding error for a field.
func NewEncodingError(field, reason string) error {
	return &EncodingError{Field: field, Reason: reason}
}
