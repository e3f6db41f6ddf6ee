// Package encstate persists fitted encoder vocabularies in a key-value store.
package encstate

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/wardrobe-assistant/wardrobe/internal/db"
	"github.com/wardrobe-assistant/wardrobe/internal/domain"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/feature"
)

var keyPrefix = domain.KeyPrefix + "encoder_state:"

// store is the consumer interface for encoder state persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// Repo loads and saves encoder state under a named key.
type Repo struct {
	store store
	key   string
}

// New creates a repo. name scopes the key, e.g. the catalog name.
func New(s store, name string) *Repo {
	return &Repo{store: s, key: keyPrefix + name}
}

// Key returns the storage key.
func (r *Repo) Key() string { return r.key }

// Load returns the stored state. found is false when nothing is stored.
// A state written by another layout version fails with ErrStateMismatch.
func (r *Repo) Load(ctx context.Context) (feature.State, bool, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return feature.State{}, false, nil
		}
		return feature.State{}, false, fmt.Errorf("get encoder state: %w", err)
	}

	var s feature.State
	if err := json.Unmarshal(data, &s); err != nil {
		return feature.State{}, false, fmt.Errorf("%w: decode: %w", domain.ErrStateMismatch, err)
	}
	if s.Version != feature.StateVersion {
		return feature.State{}, false, fmt.Errorf("%w: version %d, want %d",
			domain.ErrStateMismatch, s.Version, feature.StateVersion)
	}
	return s, true, nil
}

// Save stores the state.
func (r *Repo) Save(ctx context.Context, s feature.State) error {
	if s.Version == 0 {
		s.Version = feature.StateVersion
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode encoder state: %w", err)
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("set encoder state: %w", err)
	}
	return nil
}

// Clear removes the stored state. Clearing an absent key is not an error.
func (r *Repo) Clear(ctx context.Context) error {
	if err := r.store.Del(ctx, r.key); err != nil && !errors.Is(err, db.ErrKeyNotFound) {
		return fmt.Errorf("del encoder state: %w", err)
	}
	return nil
}
