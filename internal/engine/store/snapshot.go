package store

import "github.com/mapsmith/mapsmith/internal/engine/tile"

// Snapshot is a read-only, point-in-time view of a TileStore. It implements
// the same read surface as the store, so the neighbor analyzer can run
// against either.
type Snapshot struct {
	bounds Bounds
	tiles  map[tile.Position]*tile.Tile
}

// Get returns the tile at pos, or nil if none existed at snapshot time.
func (s *Snapshot) Get(pos tile.Position) *tile.Tile {
	return s.tiles[pos]
}

// Bounds returns the map extents.
func (s *Snapshot) Bounds() Bounds {
	return s.bounds
}

// Count returns the number of tiles in the snapshot.
func (s *Snapshot) Count() int {
	return len(s.tiles)
}
