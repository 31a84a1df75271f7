package stroke

import (
	"fmt"
	"hash/crc32"

	"github.com/mapsmith/mapsmith/internal/engine/catalog"
	"github.com/mapsmith/mapsmith/internal/engine/tile"
)

// hash32 is the deterministic seed hash behind candidate picks and doodad
// density. CRC32 keeps repainting the same position with the same brush and
// variation stable across runs.
func hash32(payload string) uint32 {
	return crc32.ChecksumIEEE([]byte(payload))
}

// pickCandidate selects the concrete item id a paint writes at pos. Brushes
// without candidates paint their primary id; weighted sets pick by a hash of
// (position, brush, variation) so a drag over the same tiles re-picks the
// same items.
func pickCandidate(def *catalog.BrushDefinition, pos tile.Position, variation int) tile.ItemID {
	if len(def.Candidates) == 0 {
		return def.ServerID
	}

	total := 0
	for _, c := range def.Candidates {
		if c.Weight > 0 {
			total += c.Weight
		}
	}
	if total <= 0 {
		return def.Candidates[0].ID
	}

	seed := fmt.Sprintf("%d,%d,%d:%d:%d", pos.X, pos.Y, pos.Z, def.ServerID, variation)
	roll := int(hash32(seed) % uint32(total))

	acc := 0
	for _, c := range def.Candidates {
		if c.Weight <= 0 {
			continue
		}
		acc += c.Weight
		if roll < acc {
			return c.ID
		}
	}
	return def.Candidates[len(def.Candidates)-1].ID
}

// placeAt reports whether a doodad paint lands on pos. Thickness is a
// density percentage over the footprint; the stroke origin always places so
// a single click is never a no-op. The decision hashes the position, so a
// drag revisiting a tile makes the same call every time.
func placeAt(def *catalog.BrushDefinition, pos, origin tile.Position, variation int) bool {
	if pos == origin {
		return true
	}
	th := def.Thickness
	if th <= 0 || th >= 100 {
		return true
	}
	seed := fmt.Sprintf("%d,%d,%d:%d:%d:%d", pos.X, pos.Y, pos.Z, def.ServerID, variation, th)
	return int(hash32(seed)%10000) < th*100
}
