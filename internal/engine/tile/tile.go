// Package tile defines the map data model: positions, items, and tiles.
//
// Tiles are treated as immutable values. Every mutation helper returns a new
// Tile, which keeps undo/redo snapshots safe to share: a snapshot held by a
// transaction can never be changed by a later stroke.
package tile

// Flags are per-tile state bits.
type Flags uint8

const (
	// FlagBlocking marks the tile as not walkable.
	FlagBlocking Flags = 1 << iota
	// FlagHouse marks the tile as belonging to a house.
	FlagHouse
	// FlagProtectionZone marks the tile as a protection zone.
	FlagProtectionZone
)

// Has reports whether all bits in mask are set.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// Tile is a single map cell: an optional ground item, an ordered item stack
// (bottom to top), and flags. Borders are inserted at the bottom of the
// stack so decorations render above them.
type Tile struct {
	Pos    Position
	Ground *Item
	Items  []Item
	Flags  Flags
}

// New creates an empty tile at the given position.
func New(pos Position) *Tile {
	return &Tile{Pos: pos}
}

// IsEmpty reports whether the tile has no ground, no items, and no flags.
// Empty tiles are removed from the store.
func (t *Tile) IsEmpty() bool {
	return t.Ground == nil && len(t.Items) == 0 && t.Flags == 0
}

// Clone returns a deep copy of the tile.
func (t *Tile) Clone() *Tile {
	if t == nil {
		return nil
	}
	c := &Tile{Pos: t.Pos, Flags: t.Flags}
	if t.Ground != nil {
		g := *t.Ground
		c.Ground = &g
	}
	if len(t.Items) > 0 {
		c.Items = make([]Item, len(t.Items))
		copy(c.Items, t.Items)
	}
	return c
}

// Equal reports whether two tiles hold identical content. Either side may be
// nil; two nils are equal.
func Equal(a, b *Tile) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Pos != b.Pos || a.Flags != b.Flags {
		return false
	}
	if (a.Ground == nil) != (b.Ground == nil) {
		return false
	}
	if a.Ground != nil && *a.Ground != *b.Ground {
		return false
	}
	if len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if a.Items[i] != b.Items[i] {
			return false
		}
	}
	return true
}

// WithGround returns a copy with the ground replaced. A nil ground clears it.
func (t *Tile) WithGround(ground *Item) *Tile {
	c := t.Clone()
	if ground != nil {
		g := *ground
		c.Ground = &g
	} else {
		c.Ground = nil
	}
	return c
}

// WithFlags returns a copy with the flag bits replaced.
func (t *Tile) WithFlags(flags Flags) *Tile {
	c := t.Clone()
	c.Flags = flags
	return c
}

// WithItems returns a copy with the item stack replaced.
func (t *Tile) WithItems(items []Item) *Tile {
	c := t.Clone()
	if len(items) == 0 {
		c.Items = nil
		return c
	}
	c.Items = make([]Item, len(items))
	copy(c.Items, items)
	return c
}

// AddItemTop returns a copy with item appended to the top of the stack.
func (t *Tile) AddItemTop(item Item) *Tile {
	c := t.Clone()
	c.Items = append(c.Items, item)
	return c
}

// AddItemBottom returns a copy with item inserted at the bottom of the stack,
// below existing items. Border items use this placement.
func (t *Tile) AddItemBottom(item Item) *Tile {
	c := t.Clone()
	c.Items = append([]Item{item}, c.Items...)
	return c
}

// RemoveItems returns a copy with every item for which keep returns false
// removed. The ground is untouched.
func (t *Tile) RemoveItems(keep func(Item) bool) *Tile {
	c := t.Clone()
	if len(c.Items) == 0 {
		return c
	}
	kept := c.Items[:0]
	for _, it := range c.Items {
		if keep(it) {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 {
		c.Items = nil
	} else {
		c.Items = kept
	}
	return c
}

// TopItem returns the topmost stacked item, or nil if the stack is empty.
func (t *Tile) TopItem() *Item {
	if len(t.Items) == 0 {
		return nil
	}
	it := t.Items[len(t.Items)-1]
	return &it
}

// HasItemID reports whether any stacked item has the given id.
func (t *Tile) HasItemID(id ItemID) bool {
	for _, it := range t.Items {
		if it.ID == id {
			return true
		}
	}
	return false
}
