package border

// Orientation names the visual alignment of a border or wall piece.
type Orientation uint8

// Orientations. The names follow the alignment keys used by the brush
// catalog files.
const (
	OrientNone Orientation = iota
	OrientNorth
	OrientEast
	OrientSouth
	OrientWest
	OrientCornerNW
	OrientCornerNE
	OrientCornerSE
	OrientCornerSW
	OrientInnerNW
	OrientInnerNE
	OrientInnerSE
	OrientInnerSW
	OrientHorizontal
	OrientVertical
	OrientTNorth
	OrientTEast
	OrientTSouth
	OrientTWest
	OrientEndNorth
	OrientEndEast
	OrientEndSouth
	OrientEndWest
	OrientCross
	OrientSolitary
)

var orientNames = map[Orientation]string{
	OrientNone:       "NONE",
	OrientNorth:      "NORTH",
	OrientEast:       "EAST",
	OrientSouth:      "SOUTH",
	OrientWest:       "WEST",
	OrientCornerNW:   "CORNER_NW",
	OrientCornerNE:   "CORNER_NE",
	OrientCornerSE:   "CORNER_SE",
	OrientCornerSW:   "CORNER_SW",
	OrientInnerNW:    "INNER_NW",
	OrientInnerNE:    "INNER_NE",
	OrientInnerSE:    "INNER_SE",
	OrientInnerSW:    "INNER_SW",
	OrientHorizontal: "HORIZONTAL",
	OrientVertical:   "VERTICAL",
	OrientTNorth:     "T_NORTH",
	OrientTEast:      "T_EAST",
	OrientTSouth:     "T_SOUTH",
	OrientTWest:      "T_WEST",
	OrientEndNorth:   "END_NORTH",
	OrientEndEast:    "END_EAST",
	OrientEndSouth:   "END_SOUTH",
	OrientEndWest:    "END_WEST",
	OrientCross:      "CROSS",
	OrientSolitary:   "SOLITARY",
}

var orientByName map[string]Orientation

func init() {
	orientByName = make(map[string]Orientation, len(orientNames))
	for o, name := range orientNames {
		orientByName[name] = o
	}
}

// String returns the catalog name of the orientation.
func (o Orientation) String() string {
	if s, ok := orientNames[o]; ok {
		return s
	}
	return "NONE"
}

// ParseOrientation parses a catalog alignment key.
func ParseOrientation(name string) (Orientation, bool) {
	o, ok := orientByName[name]
	return o, ok
}

// rotate90 maps each orientation to its 90° clockwise counterpart.
var rotate90 = map[Orientation]Orientation{
	OrientNorth:      OrientEast,
	OrientEast:       OrientSouth,
	OrientSouth:      OrientWest,
	OrientWest:       OrientNorth,
	OrientCornerNW:   OrientCornerNE,
	OrientCornerNE:   OrientCornerSE,
	OrientCornerSE:   OrientCornerSW,
	OrientCornerSW:   OrientCornerNW,
	OrientInnerNW:    OrientInnerNE,
	OrientInnerNE:    OrientInnerSE,
	OrientInnerSE:    OrientInnerSW,
	OrientInnerSW:    OrientInnerNW,
	OrientHorizontal: OrientVertical,
	OrientVertical:   OrientHorizontal,
	OrientTNorth:     OrientTEast,
	OrientTEast:      OrientTSouth,
	OrientTSouth:     OrientTWest,
	OrientTWest:      OrientTNorth,
	OrientEndNorth:   OrientEndEast,
	OrientEndEast:    OrientEndSouth,
	OrientEndSouth:   OrientEndWest,
	OrientEndWest:    OrientEndNorth,
}

// mirror maps each orientation to its east-west mirrored counterpart.
var mirror = map[Orientation]Orientation{
	OrientEast:     OrientWest,
	OrientWest:     OrientEast,
	OrientCornerNW: OrientCornerNE,
	OrientCornerNE: OrientCornerNW,
	OrientCornerSE: OrientCornerSW,
	OrientCornerSW: OrientCornerSE,
	OrientInnerNW:  OrientInnerNE,
	OrientInnerNE:  OrientInnerNW,
	OrientInnerSE:  OrientInnerSW,
	OrientInnerSW:  OrientInnerSE,
	OrientTEast:    OrientTWest,
	OrientTWest:    OrientTEast,
	OrientEndEast:  OrientEndWest,
	OrientEndWest:  OrientEndEast,
}

// Rotate rotates the orientation clockwise by quarter*90 degrees.
// Symmetric orientations (cross, solitary, none) are unchanged.
func (o Orientation) Rotate(quarter int) Orientation {
	quarter &= 3
	for i := 0; i < quarter; i++ {
		if next, ok := rotate90[o]; ok {
			o = next
		}
	}
	return o
}

// Mirror mirrors the orientation east-west.
func (o Orientation) Mirror() Orientation {
	if m, ok := mirror[o]; ok {
		return m
	}
	return o
}

// AlignmentWeight ranks orientations for transition-border scoring: corner
// pieces beat straight edges, which beat everything else.
func AlignmentWeight(o Orientation) int {
	switch o {
	case OrientCornerNW, OrientCornerNE, OrientCornerSE, OrientCornerSW,
		OrientInnerNW, OrientInnerNE, OrientInnerSE, OrientInnerSW:
		return 3
	case OrientNorth, OrientEast, OrientSouth, OrientWest:
		return 2
	default:
		return 1
	}
}
