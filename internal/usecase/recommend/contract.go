package recommend

import (
	"github.com/wardrobe-assistant/wardrobe/internal/domain/catalog"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/feature"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/record"
)

// Encoder turns a query record into a feature vector.
type Encoder interface {
	Transform(rec record.Record) (feature.Encoding, error)
}

// Searcher finds the nearest catalog items to a vector.
type Searcher interface {
	Query(v feature.Vector, k int) ([]catalog.Neighbor, error)
}
