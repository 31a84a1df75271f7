package border

// CardinalMask is a 4-bit occupancy mask over the orthogonal neighbors,
// used by wall, carpet, and table alignment: bit 0 north, bit 1 east,
// bit 2 south, bit 3 west.
type CardinalMask uint8

const (
	CardinalN CardinalMask = 1 << iota
	CardinalE
	CardinalS
	CardinalW
)

var cardinalOffsets = [4][2]int{
	{0, -1}, // N
	{1, 0},  // E
	{0, 1},  // S
	{-1, 0}, // W
}

// wallAlignments maps each of the 16 cardinal masks to the wall piece
// orientation. The table reproduces the classic editor mapping: an "end"
// piece points away from its single neighbor, a T piece is named after its
// missing arm's opposite.
var wallAlignments = [16]Orientation{
	OrientSolitary,   // 0000
	OrientEndSouth,   // N
	OrientEndWest,    // E
	OrientCornerNE,   // N|E
	OrientEndNorth,   // S
	OrientVertical,   // N|S
	OrientCornerSE,   // E|S
	OrientTWest,      // N|E|S
	OrientEndEast,    // W
	OrientCornerNW,   // N|W
	OrientHorizontal, // E|W
	OrientTSouth,     // N|E|W
	OrientCornerSW,   // S|W
	OrientTEast,      // N|S|W
	OrientTNorth,     // E|S|W
	OrientCross,      // N|E|S|W
}

// WallAlignment returns the wall piece orientation for a cardinal mask.
func WallAlignment(mask CardinalMask) Orientation {
	return wallAlignments[mask&0x0F]
}

// endAliases maps end pieces to the edge key naming the neighbor that
// exists; some catalogs use direction keys instead of END_* keys.
var endAliases = map[Orientation]Orientation{
	OrientEndSouth: OrientNorth,
	OrientEndWest:  OrientEast,
	OrientEndNorth: OrientSouth,
	OrientEndEast:  OrientWest,
}

// FallbackOrientations returns the ordered list of orientations to try when
// a brush does not define a piece for the computed alignment. The order is
// part of the engine contract: catalogs written against it rely on the exact
// degradation sequence, ending in the solitary piece.
func FallbackOrientations(o Orientation) []Orientation {
	out := make([]Orientation, 0, 12)
	add := func(c Orientation) {
		for _, have := range out {
			if have == c {
				return
			}
		}
		out = append(out, c)
	}

	add(o)
	if alias, ok := endAliases[o]; ok {
		add(alias)
	}

	switch {
	case o == OrientCross:
		for _, c := range []Orientation{OrientTNorth, OrientTEast, OrientTSouth, OrientTWest} {
			add(c)
		}
		add(OrientHorizontal)
		add(OrientVertical)
		for _, c := range []Orientation{OrientNorth, OrientEast, OrientSouth, OrientWest} {
			add(c)
		}

	case o == OrientTNorth || o == OrientTEast || o == OrientTSouth || o == OrientTWest:
		add(OrientHorizontal)
		add(OrientVertical)
		for _, c := range []Orientation{OrientNorth, OrientEast, OrientSouth, OrientWest} {
			add(c)
		}

	case o == OrientCornerNE:
		add(OrientHorizontal)
		add(OrientVertical)
		add(OrientNorth)
		add(OrientEast)
	case o == OrientCornerNW:
		add(OrientHorizontal)
		add(OrientVertical)
		add(OrientNorth)
		add(OrientWest)
	case o == OrientCornerSE:
		add(OrientHorizontal)
		add(OrientVertical)
		add(OrientSouth)
		add(OrientEast)
	case o == OrientCornerSW:
		add(OrientHorizontal)
		add(OrientVertical)
		add(OrientSouth)
		add(OrientWest)

	case o == OrientEndNorth || o == OrientEndSouth:
		add(OrientVertical)
	case o == OrientEndEast || o == OrientEndWest:
		add(OrientHorizontal)
	}

	add(OrientSolitary)
	return out
}
