package catalog

import (
	"context"

	domcat "github.com/wardrobe-assistant/wardrobe/internal/domain/catalog"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/feature"
)

// Loader reads the catalog dataset.
type Loader interface {
	Load(ctx context.Context) ([]domcat.Item, error)
}

// StateStore persists fitted encoder vocabularies.
type StateStore interface {
	Load(ctx context.Context) (feature.State, bool, error)
	Save(ctx context.Context, s feature.State) error
}
