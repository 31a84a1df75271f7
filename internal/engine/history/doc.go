// Package history provides transactional undo/redo for tile mutations.
//
// One user stroke becomes one Transaction: an ordered set of per-position
// before/after tile snapshots plus a label. The transaction state machine is
//
//	Idle -> Recording -> {Committed, Discarded}
//
// with at most one transaction open at a time; strokes do not nest.
//
// # Recording
//
// Every tile write performed during a stroke is recorded with the tile
// state before the first touch and after the last. Snapshots are whole
// tiles (ground, items with per-instance attributes, flags), so undo
// restores state byte for byte.
//
// # Commit semantics
//
// Commit pushes the transaction onto the bounded undo stack and clears the
// redo stack. A transaction with zero net changes is discarded silently, so
// repainting an already correct area never pollutes history.
//
// # Undo and redo
//
// Undo replays before-snapshots, redo replays after-snapshots, both in
// position order so replay is deterministic.
package history
