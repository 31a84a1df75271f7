package tile

import (
	"fmt"
	"sort"
)

// Floor bounds for a map. Floor 7 is the conventional ground floor.
const (
	MinFloor = 0
	MaxFloor = 15
)

// Position identifies a tile by map coordinates. Z is the floor index.
type Position struct {
	X int
	Y int
	Z int
}

// Pos is shorthand for constructing a Position.
func Pos(x, y, z int) Position {
	return Position{X: x, Y: y, Z: z}
}

// Translate returns the position offset by (dx, dy) on the same floor.
func (p Position) Translate(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy, Z: p.Z}
}

// WithFloor returns the same map coordinates on a different floor.
func (p Position) WithFloor(z int) Position {
	return Position{X: p.X, Y: p.Y, Z: z}
}

// Less defines a stable total ordering: floor, then row, then column.
// Snapshot replay and perimeter passes iterate positions in this order so
// results are reproducible.
func (p Position) Less(other Position) bool {
	if p.Z != other.Z {
		return p.Z < other.Z
	}
	if p.Y != other.Y {
		return p.Y < other.Y
	}
	return p.X < other.X
}

// String returns the position as "(x, y, z)".
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// SortPositions sorts positions in place using Position.Less.
func SortPositions(positions []Position) {
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Less(positions[j])
	})
}
