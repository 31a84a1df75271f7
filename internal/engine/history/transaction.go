package history

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mapsmith/mapsmith/internal/engine/tile"
)

// Record is one per-position snapshot pair inside a transaction. A nil
// snapshot means the tile did not exist on that side of the change.
type Record struct {
	Pos    tile.Position
	Before *tile.Tile
	After  *tile.Tile
}

// IsNoop reports whether the record carries no net change.
func (r Record) IsNoop() bool {
	return tile.Equal(r.Before, r.After)
}

// TileRestorer is the store surface transactions replay against.
type TileRestorer interface {
	Restore(pos tile.Position, t *tile.Tile)
}

// Transaction is one atomic, named unit of tile mutation.
type Transaction struct {
	ID      uuid.UUID
	Label   string
	Started time.Time

	records map[tile.Position]*Record
}

// newTransaction creates an empty transaction. Transactions are only
// created through History.Begin.
func newTransaction(label string) *Transaction {
	return &Transaction{
		ID:      uuid.New(),
		Label:   label,
		Started: time.Now(),
		records: make(map[tile.Position]*Record),
	}
}

// Record notes a tile change. The first touch of a position fixes the
// before-snapshot; later touches only move the after-snapshot, so a tile
// written five times in one stroke still undoes in a single step.
// Snapshots are cloned on the way in; callers may keep mutating their
// copies.
func (t *Transaction) Record(pos tile.Position, before, after *tile.Tile) {
	if r, ok := t.records[pos]; ok {
		r.After = after.Clone()
		return
	}
	t.records[pos] = &Record{
		Pos:    pos,
		Before: before.Clone(),
		After:  after.Clone(),
	}
}

// BeforeAt returns the recorded before-snapshot for pos, if any.
func (t *Transaction) BeforeAt(pos tile.Position) (*tile.Tile, bool) {
	r, ok := t.records[pos]
	if !ok {
		return nil, false
	}
	return r.Before, true
}

// Len returns the number of touched positions, including no-ops.
func (t *Transaction) Len() int {
	return len(t.records)
}

// NetChanges returns the number of positions whose before and after
// snapshots differ.
func (t *Transaction) NetChanges() int {
	n := 0
	for _, r := range t.records {
		if !r.IsNoop() {
			n++
		}
	}
	return n
}

// Records returns the net-change records sorted by position. No-op records
// are dropped; they carry no information worth replaying.
func (t *Transaction) Records() []Record {
	out := make([]Record, 0, len(t.records))
	for _, r := range t.records {
		if r.IsNoop() {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Pos.Less(out[j].Pos)
	})
	return out
}

// Undo restores every before-snapshot in position order.
func (t *Transaction) Undo(store TileRestorer) {
	for _, r := range t.Records() {
		store.Restore(r.Pos, r.Before)
	}
}

// Redo restores every after-snapshot in position order.
func (t *Transaction) Redo(store TileRestorer) {
	for _, r := range t.Records() {
		store.Restore(r.Pos, r.After)
	}
}

// Rollback restores every before-snapshot, including no-op records. Used
// when a stroke fails mid-way and the store must return to its exact
// pre-stroke state.
func (t *Transaction) Rollback(store TileRestorer) {
	positions := make([]tile.Position, 0, len(t.records))
	for pos := range t.records {
		positions = append(positions, pos)
	}
	tile.SortPositions(positions)
	for _, pos := range positions {
		store.Restore(pos, t.records[pos].Before)
	}
}
