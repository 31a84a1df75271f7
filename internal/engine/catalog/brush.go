// Package catalog holds brush definitions and the versioned registry the
// paint engine resolves brushes from. Definitions are immutable after load;
// strokes only ever read them.
package catalog

import (
	"github.com/mapsmith/mapsmith/internal/engine/border"
	"github.com/mapsmith/mapsmith/internal/engine/tile"
)

// Kind is the closed set of brush families. Each kind paints differently,
// but the set is fixed at compile time.
type Kind uint8

const (
	KindGround Kind = iota
	KindWall
	KindCarpet
	KindTable
	KindBorder
	KindDoodad
	KindDoor
	KindEraser
)

var kindNames = map[Kind]string{
	KindGround: "ground",
	KindWall:   "wall",
	KindCarpet: "carpet",
	KindTable:  "table",
	KindBorder: "border",
	KindDoodad: "doodad",
	KindDoor:   "door",
	KindEraser: "eraser",
}

// String returns the catalog name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind parses a catalog kind name.
func ParseKind(name string) (Kind, bool) {
	for k, s := range kindNames {
		if s == name {
			return k, true
		}
	}
	return 0, false
}

// IsWallFamily reports whether the kind aligns by the 4-direction wall
// logic rather than the 8-neighbor ground logic.
func (k Kind) IsWallFamily() bool {
	return k == KindWall || k == KindCarpet || k == KindTable
}

// WeightedItem is one candidate in a brush's weighted selection set.
type WeightedItem struct {
	ID     tile.ItemID
	Weight int
}

// BrushDefinition describes one brush. Immutable after load.
type BrushDefinition struct {
	Name     string
	ServerID tile.ItemID // primary painted item id
	Kind     Kind
	Group    string // border group; "" for brushes that never border

	// Candidates is the weighted item set a paint picks from. When empty,
	// ServerID is painted directly.
	Candidates []WeightedItem

	// DiagonalEnabled controls whether diagonal neighbors count during
	// border resolution.
	DiagonalEnabled bool

	// Draggable brushes repeat over every tile of a drag; others apply only
	// at the stroke origin.
	Draggable bool

	// Thickness is the doodad placement density in percent (1..100).
	// Zero means always place.
	Thickness int

	// Rules is the ground border rule table, nil for brushes without
	// borders.
	Rules *border.RuleTable

	// Transitions maps a target border group to the inner transition rule
	// table used where this terrain touches that group.
	Transitions map[string]*border.RuleTable

	// Align maps wall-family alignments to item ids.
	Align map[border.Orientation]tile.ItemID

	// family is every item id owned by this brush: the primary id, all
	// candidates, and all alignment pieces. Built once at load.
	family map[tile.ItemID]struct{}
}

// Owns reports whether the brush owns the given item id.
func (b *BrushDefinition) Owns(id tile.ItemID) bool {
	_, ok := b.family[id]
	return ok
}

// FamilyIDs returns the set of item ids owned by this brush.
func (b *BrushDefinition) FamilyIDs() map[tile.ItemID]struct{} {
	return b.family
}

// Seal builds the definition's owned-item index from its fields and rule
// tables. The loader seals every parsed brush; hand-built definitions must
// be sealed before registration.
func (b *BrushDefinition) Seal() {
	ids := b.Rules.ItemIDs()
	for _, t := range b.Transitions {
		ids = append(ids, t.ItemIDs()...)
	}
	b.buildFamily(ids)
}

// buildFamily populates the family index from the definition's fields.
// Border rule item ids are owned too, so repainting can clean stale borders.
func (b *BrushDefinition) buildFamily(ruleItems []tile.ItemID) {
	b.family = make(map[tile.ItemID]struct{})
	if b.ServerID != 0 {
		b.family[b.ServerID] = struct{}{}
	}
	for _, c := range b.Candidates {
		if c.ID != 0 {
			b.family[c.ID] = struct{}{}
		}
	}
	for _, id := range b.Align {
		if id != 0 {
			b.family[id] = struct{}{}
		}
	}
	for _, id := range ruleItems {
		if id != 0 {
			b.family[id] = struct{}{}
		}
	}
}
