package tile

// ItemID is a catalog item identifier.
type ItemID uint16

// Item is a single item instance on a tile. The zero value of every optional
// attribute means "not set"; an Item with only ID set is a plain instance.
type Item struct {
	ID ItemID

	// Optional per-instance attributes.
	ActionID uint16
	UniqueID uint16
	Text     string
	Count    uint8
}

// NewItem creates a plain item instance with no attributes.
func NewItem(id ItemID) Item {
	return Item{ID: id}
}

// IsComplex reports whether the item carries per-instance attributes that an
// eraser should preserve (scripted ids, signs, stacked counts).
func (it Item) IsComplex() bool {
	return it.ActionID != 0 || it.UniqueID != 0 || it.Text != "" || it.Count != 0
}

// Equal reports whether two items are identical including attributes.
func (it Item) Equal(other Item) bool {
	return it == other
}
