// Package store owns the in-memory tile grid for one open map.
//
// Tiles are stored sparsely by position and created lazily on first write.
// The store is safe for concurrent readers, but Get and Snapshot read the
// live grid, which an in-flight stroke mutates tile by tile. Renderers and
// other concurrent readers use Committed instead: the stroke path calls
// Publish at commit, undo, and redo boundaries, so a committed view never
// shows a half-applied stroke (snapshots copy the tile map, and tiles
// themselves are immutable values).
package store

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/mapsmith/mapsmith/internal/engine/tile"
)

// ErrOutOfBounds is returned when a write targets a position outside the map.
var ErrOutOfBounds = errors.New("position out of map bounds")

// Bounds describes the map extents. X in [0,Width), Y in [0,Height), Z in
// [0,MaxFloor].
type Bounds struct {
	Width  int
	Height int
}

// Contains reports whether pos lies inside the map.
func (b Bounds) Contains(pos tile.Position) bool {
	return pos.X >= 0 && pos.X < b.Width &&
		pos.Y >= 0 && pos.Y < b.Height &&
		pos.Z >= tile.MinFloor && pos.Z <= tile.MaxFloor
}

// TileStore is the mutable tile grid. The zero value is not usable; use New.
type TileStore struct {
	mu     sync.RWMutex
	bounds Bounds
	tiles  map[tile.Position]*tile.Tile

	// committed is the last published snapshot, the read surface for
	// renderers. Writes between Publish calls are invisible through it.
	committed atomic.Pointer[Snapshot]
}

// New creates an empty store with the given bounds.
func New(bounds Bounds) *TileStore {
	s := &TileStore{
		bounds: bounds,
		tiles:  make(map[tile.Position]*tile.Tile),
	}
	s.Publish()
	return s
}

// Bounds returns the map extents.
func (s *TileStore) Bounds() Bounds {
	return s.bounds
}

// Get returns the tile at pos, or nil if none exists. The returned tile is
// an immutable value; callers must not modify it.
func (s *TileStore) Get(pos tile.Position) *tile.Tile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tiles[pos]
}

// Set stores t at pos. Setting an empty tile removes it, keeping the grid
// sparse. Returns ErrOutOfBounds for positions outside the map.
func (s *TileStore) Set(pos tile.Position, t *tile.Tile) error {
	if !s.bounds.Contains(pos) {
		return ErrOutOfBounds
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t == nil || t.IsEmpty() {
		delete(s.tiles, pos)
		return nil
	}
	t.Pos = pos
	s.tiles[pos] = t
	return nil
}

// Remove deletes the tile at pos if present.
func (s *TileStore) Remove(pos tile.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tiles, pos)
}

// Restore puts a snapshot back verbatim: nil removes the tile, non-nil
// replaces it even when empty-looking flags were the only content. Used by
// undo/redo replay.
func (s *TileStore) Restore(pos tile.Position, t *tile.Tile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t == nil {
		delete(s.tiles, pos)
		return
	}
	c := t.Clone()
	c.Pos = pos
	s.tiles[pos] = c
}

// Count returns the number of existing tiles.
func (s *TileStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tiles)
}

// Snapshot returns a read-only view of the live grid at call time. During a
// stroke it can capture half-applied state; readers that must only ever see
// whole strokes use Committed.
func (s *TileStore) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tiles := make(map[tile.Position]*tile.Tile, len(s.tiles))
	for pos, t := range s.tiles {
		tiles[pos] = t // tiles are immutable values, safe to share
	}
	return &Snapshot{bounds: s.bounds, tiles: tiles}
}

// Publish captures the current state as the committed view. The stroke
// engine calls it after a commit, and the editor after undo and redo; the
// grid holds no half-applied stroke at those points.
func (s *TileStore) Publish() *Snapshot {
	snap := s.Snapshot()
	s.committed.Store(snap)
	return snap
}

// Committed returns the last published snapshot. It only ever changes at
// stroke boundaries, so concurrent readers never observe a stroke half
// applied or half rolled back.
func (s *TileStore) Committed() *Snapshot {
	return s.committed.Load()
}
