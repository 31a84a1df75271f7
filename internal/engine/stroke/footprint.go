package stroke

import (
	"github.com/mapsmith/mapsmith/internal/engine/store"
	"github.com/mapsmith/mapsmith/internal/engine/tile"
)

// Shape selects how a stroke's size expands around its center.
type Shape uint8

const (
	ShapeSquare Shape = iota
	ShapeCircle
)

// String returns the shape's catalog name.
func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// ParseShape parses a shape name.
func ParseShape(name string) (Shape, bool) {
	switch name {
	case "square":
		return ShapeSquare, true
	case "circle":
		return ShapeCircle, true
	default:
		return 0, false
	}
}

// FloorScope selects which floors a stroke touches. The zero value means
// the center's floor only.
type FloorScope struct {
	Mode FloorMode
	Low  int
	High int
}

// FloorMode is the floor expansion policy.
type FloorMode uint8

const (
	FloorModeCurrent FloorMode = iota
	FloorModeAll
	FloorModeRange
)

// CurrentFloor scopes a stroke to the center's floor.
func CurrentFloor() FloorScope {
	return FloorScope{Mode: FloorModeCurrent}
}

// AllFloors scopes a stroke to every floor of the map.
func AllFloors() FloorScope {
	return FloorScope{Mode: FloorModeAll}
}

// FloorRange scopes a stroke to the inclusive floor range [low, high].
func FloorRange(low, high int) FloorScope {
	if low > high {
		low, high = high, low
	}
	return FloorScope{Mode: FloorModeRange, Low: low, High: high}
}

// floors returns the concrete floor list for a stroke centered at z.
func (f FloorScope) floors(z int) []int {
	var low, high int
	switch f.Mode {
	case FloorModeAll:
		low, high = tile.MinFloor, tile.MaxFloor
	case FloorModeRange:
		low, high = f.Low, f.High
	default:
		low, high = z, z
	}
	if low < tile.MinFloor {
		low = tile.MinFloor
	}
	if high > tile.MaxFloor {
		high = tile.MaxFloor
	}
	out := make([]int, 0, high-low+1)
	for fl := low; fl <= high; fl++ {
		out = append(out, fl)
	}
	return out
}

// Footprint expands a gesture into the sorted set of target positions.
// Positions outside the map bounds or, when selection is non-nil, outside
// the selection are dropped rather than reported as errors: a brush dragged
// against the map edge simply paints less.
func Footprint(center tile.Position, shape Shape, size int, floors FloorScope, bounds store.Bounds, selection map[tile.Position]struct{}) []tile.Position {
	if size < 0 {
		size = 0
	}
	var out []tile.Position
	for _, z := range floors.floors(center.Z) {
		for dy := -size; dy <= size; dy++ {
			for dx := -size; dx <= size; dx++ {
				if shape == ShapeCircle && dx*dx+dy*dy > size*size {
					continue
				}
				pos := tile.Pos(center.X+dx, center.Y+dy, z)
				if !bounds.Contains(pos) {
					continue
				}
				if selection != nil {
					if _, ok := selection[pos]; !ok {
						continue
					}
				}
				out = append(out, pos)
			}
		}
	}
	tile.SortPositions(out)
	return out
}

// withNeighbors returns positions plus every in-bounds tile adjacent to one
// of them, deduplicated and sorted. This is the set a border pass must
// re-resolve after a paint.
func withNeighbors(positions []tile.Position, bounds store.Bounds) []tile.Position {
	seen := make(map[tile.Position]struct{}, len(positions)*3)
	for _, pos := range positions {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				p := pos.Translate(dx, dy)
				if bounds.Contains(p) {
					seen[p] = struct{}{}
				}
			}
		}
	}
	out := make([]tile.Position, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	tile.SortPositions(out)
	return out
}
