package border

import "github.com/mapsmith/mapsmith/internal/engine/tile"

// TileGetter is the read surface the analyzer needs. Both *store.TileStore
// and *store.Snapshot satisfy it.
type TileGetter interface {
	Get(pos tile.Position) *tile.Tile
}

// Grouper maps tile content to a border group. The catalog provides the
// data-driven implementation; the analyzer never hardcodes item ids.
type Grouper interface {
	// GroupOf returns the border group of the tile's topmost relevant
	// content (border/wall item, else ground), or "" when the tile belongs
	// to no group. A nil tile must return "".
	GroupOf(t *tile.Tile) string
}

// Analyze computes the 8-neighbor occupancy mask of pos for the given
// group. Out-of-bounds and missing neighbors contribute 0. The function is
// pure: it only reads, and may run concurrently for different tiles against
// a read-consistent snapshot.
func Analyze(g TileGetter, pos tile.Position, group string, grouper Grouper) Mask {
	if group == "" {
		return 0
	}
	var mask Mask
	for bit, off := range NeighborOffsets {
		neighbor := g.Get(pos.Translate(off[0], off[1]))
		if neighbor == nil {
			continue
		}
		if grouper.GroupOf(neighbor) == group {
			mask |= 1 << bit
		}
	}
	return mask
}

// AnalyzeCardinal computes the 4-direction occupancy mask used by
// wall-family alignment: bit 0 north, 1 east, 2 south, 3 west.
func AnalyzeCardinal(g TileGetter, pos tile.Position, group string, grouper Grouper) CardinalMask {
	var mask CardinalMask
	if group == "" {
		return 0
	}
	for i, off := range cardinalOffsets {
		neighbor := g.Get(pos.Translate(off[0], off[1]))
		if neighbor == nil {
			continue
		}
		if grouper.GroupOf(neighbor) == group {
			mask |= 1 << i
		}
	}
	return mask
}
