package catalog

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/wardrobe-assistant/wardrobe/internal/domain/attribute"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/record"
)

// itemNamespace scopes item IDs derived from product links.
var itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("wardrobe-assistant/catalog-item"))

// Item is one immutable catalog product.
type Item struct {
	id       string
	position int
	attrs    record.Record
}

// New creates an Item at the given catalog position.
// The ID is derived from the product link, or from the position when there is none.
func New(position int, attrs record.Record) Item {
	key, ok := attrs.Get(attribute.ProductLink)
	if !ok {
		key = "position:" + strconv.Itoa(position)
	}
	return Item{
		id:       uuid.NewSHA1(itemNamespace, []byte(key)).String(),
		position: position,
		attrs:    attrs,
	}
}

// ID returns the stable item identifier.
func (i *Item) ID() string { return i.id }

// Position returns the insertion order of the item in the catalog.
func (i *Item) Position() int { return i.position }

// Attributes returns the item record.
func (i *Item) Attributes() record.Record { return i.attrs }

// Get returns an attribute value and whether it is present.
func (i *Item) Get(name attribute.Name) (string, bool) { return i.attrs.Get(name) }

// Gender returns the item gender, or "" when missing.
func (i *Item) Gender() string { return i.attrs.Value(attribute.Gender) }

// Complete reports whether every output field is present.
func (i *Item) Complete() bool { return i.attrs.HasAll(attribute.Output) }
