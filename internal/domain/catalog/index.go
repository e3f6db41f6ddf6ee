package catalog

import (
	"fmt"
	"math"
	"slices"

	"github.com/wardrobe-assistant/wardrobe/internal/domain"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/feature"
)

// Neighbor is a catalog item with its distance to a query vector.
type Neighbor struct {
	item     Item
	distance float64
}

// NewNeighbor creates a Neighbor.
func NewNeighbor(item Item, distance float64) Neighbor {
	return Neighbor{item: item, distance: distance}
}

// Item returns the catalog item.
func (n *Neighbor) Item() Item { return n.item }

// Distance returns the Euclidean distance to the query.
func (n *Neighbor) Distance() float64 { return n.distance }

// Index is an exact nearest-neighbor index over the encoded catalog.
// It is read-only after BuildIndex and safe for concurrent queries.
type Index struct {
	items   []Item
	vectors []feature.Vector
	dim     int
}

// BuildIndex encodes every item and builds the index. Items keep their slice order,
// which is also the tie-break order for equal distances.
func BuildIndex(items []Item, encode func(Item) feature.Vector) (*Index, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty catalog", domain.ErrInvalidCatalog)
	}

	idx := &Index{
		items:   slices.Clone(items),
		vectors: make([]feature.Vector, len(items)),
	}
	for i := range idx.items {
		v := encode(idx.items[i])
		if i == 0 {
			idx.dim = len(v)
		}
		if len(v) != idx.dim {
			return nil, fmt.Errorf("%w: item %d has %d dims, want %d",
				domain.ErrDimensionMismatch, i, len(v), idx.dim)
		}
		idx.vectors[i] = v
	}
	return idx, nil
}

// Len returns the number of indexed items.
func (x *Index) Len() int { return len(x.items) }

// Dim returns the indexed vector length.
func (x *Index) Dim() int { return x.dim }

// Items returns the indexed items in insertion order.
func (x *Index) Items() []Item { return slices.Clone(x.items) }

// Query returns the k items closest to v, ascending by distance, ties by insertion order.
// Fewer than k items are returned when the catalog is smaller.
func (x *Index) Query(v feature.Vector, k int) ([]Neighbor, error) {
	if len(v) != x.dim {
		return nil, fmt.Errorf("%w: query has %d dims, want %d", domain.ErrDimensionMismatch, len(v), x.dim)
	}
	if k <= 0 {
		return nil, nil
	}

	type scored struct {
		pos  int
		dist float64
	}
	all := make([]scored, len(x.vectors))
	for i, vec := range x.vectors {
		all[i] = scored{pos: i, dist: euclidean(v, vec)}
	}
	slices.SortStableFunc(all, func(a, b scored) int {
		switch {
		case a.dist < b.dist:
			return -1
		case a.dist > b.dist:
			return 1
		}
		return a.pos - b.pos
	})

	if k > len(all) {
		k = len(all)
	}
	out := make([]Neighbor, k)
	for i := range out {
		out[i] = NewNeighbor(x.items[all[i].pos], all[i].dist)
	}
	return out, nil
}

func euclidean(a, b feature.Vector) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
