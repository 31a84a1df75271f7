// Package border implements the neighbor analyzer and the border resolver:
// given the 8-neighbor occupancy of a tile, it decides which border piece
// (if any) the tile should carry.
package border

import (
	"math/bits"
	"strings"
)

// Mask is an 8-bit neighbor occupancy mask. A set bit means the neighbor in
// that direction belongs to the same border group as the center tile.
//
// Bit order matches the legacy editors this format descends from:
//
//	bit 0: NW   bit 1: N    bit 2: NE
//	bit 3: W                bit 4: E
//	bit 5: SW   bit 6: S    bit 7: SE
type Mask uint8

// Direction bits.
const (
	BitNW Mask = 1 << iota
	BitN
	BitNE
	BitW
	BitE
	BitSW
	BitS
	BitSE
)

// MaskFull has all eight neighbors set.
const MaskFull Mask = 0xFF

// maskCardinal selects the four orthogonal directions.
const maskCardinal = BitN | BitW | BitE | BitS

// NeighborOffsets lists the (dx, dy) offset for each bit, in bit order.
var NeighborOffsets = [8][2]int{
	{-1, -1}, // NW
	{0, -1},  // N
	{1, -1},  // NE
	{-1, 0},  // W
	{1, 0},   // E
	{-1, 1},  // SW
	{0, 1},   // S
	{1, 1},   // SE
}

// Has reports whether all bits in b are set.
func (m Mask) Has(b Mask) bool {
	return m&b == b
}

// Count returns the number of set bits.
func (m Mask) Count() int {
	return bits.OnesCount8(uint8(m))
}

// Cardinal returns the mask with diagonal bits cleared. Used when a brush
// has diagonal matching disabled.
func (m Mask) Cardinal() Mask {
	return m & maskCardinal
}

// rot90 maps each destination bit to its source bit under a 90° clockwise
// rotation of the neighborhood.
var rot90src = [8]Mask{
	BitSW, // NW <- SW
	BitW,  // N  <- W
	BitNW, // NE <- NW
	BitS,  // W  <- S
	BitN,  // E  <- N
	BitSE, // SW <- SE
	BitE,  // S  <- E
	BitNE, // SE <- NE
}

// mirrorsrc maps each destination bit to its source bit under an east-west
// mirror.
var mirrorsrc = [8]Mask{
	BitNE, // NW <- NE
	BitN,
	BitNW, // NE <- NW
	BitE,  // W <- E
	BitW,  // E <- W
	BitSE, // SW <- SE
	BitS,
	BitSW, // SE <- SW
}

func (m Mask) permute(src *[8]Mask) Mask {
	var out Mask
	for i := 0; i < 8; i++ {
		if m&src[i] != 0 {
			out |= 1 << i
		}
	}
	return out
}

// Rotate90 returns the mask rotated 90° clockwise.
func (m Mask) Rotate90() Mask {
	return m.permute(&rot90src)
}

// Rotate rotates the mask clockwise by quarter*90 degrees.
func (m Mask) Rotate(quarter int) Mask {
	quarter &= 3
	for i := 0; i < quarter; i++ {
		m = m.Rotate90()
	}
	return m
}

// Mirror returns the mask mirrored east-west.
func (m Mask) Mirror() Mask {
	return m.permute(&mirrorsrc)
}

var bitNames = [8]string{"NW", "N", "NE", "W", "E", "SW", "S", "SE"}

// String renders the mask as "N|E|SW" style, or "none".
func (m Mask) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for i := 0; i < 8; i++ {
		if m&(1<<i) != 0 {
			parts = append(parts, bitNames[i])
		}
	}
	return strings.Join(parts, "|")
}

// ParseMask parses a "N|E|SW" style mask string. Unknown direction
// names are an error.
func ParseMask(spec string) (Mask, bool) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "none" {
		return 0, true
	}
	var m Mask
	for _, part := range strings.Split(spec, "|") {
		part = strings.TrimSpace(part)
		found := false
		for i, name := range bitNames {
			if part == name {
				m |= 1 << i
				found = true
				break
			}
		}
		if !found {
			return 0, false
		}
	}
	return m, true
}
