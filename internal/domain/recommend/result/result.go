package result

import (
	"github.com/wardrobe-assistant/wardrobe/internal/domain/attribute"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/catalog"
)

// Item is a returned recommendation. Every output field is set.
type Item struct {
	id       string
	distance float64
	fields   map[attribute.Name]string
}

// FromNeighbor projects a neighbor onto the output fields.
// ok is false when the item is missing any output field.
func FromNeighbor(n catalog.Neighbor) (Item, bool) {
	it := n.Item()
	if !it.Complete() {
		return Item{}, false
	}
	fields := make(map[attribute.Name]string, len(attribute.Output))
	for _, f := range attribute.Output {
		fields[f], _ = it.Get(f)
	}
	return Item{id: it.ID(), distance: n.Distance(), fields: fields}, true
}

// ID returns the catalog item identifier.
func (r *Item) ID() string { return r.id }

// Distance returns the neighbor distance.
func (r *Item) Distance() float64 { return r.distance }

// Get returns an output field.
func (r *Item) Get(name attribute.Name) string { return r.fields[name] }

// Fields returns a copy of the output fields.
func (r *Item) Fields() map[attribute.Name]string {
	c := make(map[attribute.Name]string, len(r.fields))
	for k, v := range r.fields {
		c[k] = v
	}
	return c
}
