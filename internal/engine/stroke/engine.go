// Package stroke turns paint gestures into transactional tile mutations.
//
// A gesture names a brush, a footprint, and a floor scope. Applying it
// expands the footprint, paints every target tile, re-resolves borders on
// the painted area and its perimeter, and records the whole thing as one
// undoable transaction. A stroke either commits completely or rolls the
// store back to its pre-stroke state.
package stroke

import (
	"context"
	"fmt"

	"github.com/mapsmith/mapsmith/internal/engine/catalog"
	"github.com/mapsmith/mapsmith/internal/engine/history"
	"github.com/mapsmith/mapsmith/internal/engine/store"
	"github.com/mapsmith/mapsmith/internal/engine/tile"
)

// Logger is the logging surface the engine needs.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any) {}
func (nopLogger) Warnf(string, ...any) {}

// Engine applies strokes against one tile store. Exactly one stroke may be
// in flight at a time; the history's transaction gate enforces it.
type Engine struct {
	store   *store.TileStore
	catalog *catalog.Catalog
	history *history.History
	log     Logger

	autoBorder  bool
	leaveUnique bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. The default discards everything.
func WithLogger(log Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithAutoBorder enables or disables the border pass after each paint.
// It is on by default.
func WithAutoBorder(enabled bool) Option {
	return func(e *Engine) { e.autoBorder = enabled }
}

// WithEraserLeaveUnique controls whether the eraser preserves items
// carrying action ids, unique ids, or text. It is on by default.
func WithEraserLeaveUnique(enabled bool) Option {
	return func(e *Engine) { e.leaveUnique = enabled }
}

// New creates a stroke engine over the given store, catalog, and history.
func New(s *store.TileStore, c *catalog.Catalog, h *history.History, opts ...Option) *Engine {
	e := &Engine{
		store:       s,
		catalog:     c,
		history:     h,
		log:         nopLogger{},
		autoBorder:  true,
		leaveUnique: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stroke is one paint gesture. It is a plain value the host constructs per
// gesture; the engine keeps no current-brush state between strokes.
type Stroke struct {
	BrushID tile.ItemID
	Label   string // transaction label; derived from the brush when empty

	Center tile.Position
	Shape  Shape
	Size   int // radius; 0 paints a single tile
	Floors FloorScope

	// Selection, when non-nil, restricts the footprint to these positions.
	Selection map[tile.Position]struct{}

	// Variation seeds candidate picks so identical drags repaint
	// identically.
	Variation int

	// Erase removes the brush's content instead of painting it.
	Erase bool

	// Override allows painting over protected and house tiles.
	Override bool
}

// Apply paints one stroke as a single transaction.
//
// An unknown brush or an out-of-bounds center fails before any write. A
// mid-stroke failure or context cancellation rolls back every write made so
// far and discards the transaction. A stroke whose net effect is zero, such
// as repainting an already-correct area, is discarded silently and returns
// a nil transaction.
func (e *Engine) Apply(ctx context.Context, st Stroke) (*history.Transaction, error) {
	def, ok := e.catalog.Get(st.BrushID)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrInvalidBrush, st.BrushID)
	}
	bounds := e.store.Bounds()
	if !bounds.Contains(st.Center) {
		return nil, errAt(st.Center, ErrOutOfBounds)
	}

	targets := Footprint(st.Center, st.Shape, st.Size, st.Floors, bounds, st.Selection)
	if def.Kind == catalog.KindDoodad && !def.Draggable {
		targets = targets[:0]
		if st.Selection == nil {
			targets = append(targets, st.Center)
		} else if _, sel := st.Selection[st.Center]; sel {
			targets = append(targets, st.Center)
		}
	}

	txn, err := e.history.Begin(st.label(def))
	if err != nil {
		return nil, err
	}

	for _, pos := range targets {
		if err := ctx.Err(); err != nil {
			return nil, e.abort(txn, err)
		}
		if err := e.paintTile(def, pos, st); err != nil {
			return nil, e.abort(txn, errAt(pos, err))
		}
	}

	if e.autoBorder {
		if err := e.borderize(ctx, withNeighbors(targets, bounds)); err != nil {
			return nil, e.abort(txn, err)
		}
	}

	return e.commit()
}

// BorderizeSelection re-runs border resolution over a selection and its
// perimeter as its own transaction. Tiles already carrying correct borders
// produce no records, so a fully-correct selection commits to nothing.
func (e *Engine) BorderizeSelection(ctx context.Context, selection []tile.Position) (*history.Transaction, error) {
	txn, err := e.history.Begin("borderize selection")
	if err != nil {
		return nil, err
	}
	if err := e.borderize(ctx, withNeighbors(selection, e.store.Bounds())); err != nil {
		return nil, e.abort(txn, err)
	}
	return e.commit()
}

// commit closes the open transaction. A real commit publishes the new
// committed snapshot for concurrent readers; a zero-net-change discard
// leaves the published view untouched, since nothing changed.
func (e *Engine) commit() (*history.Transaction, error) {
	txn, err := e.history.Commit()
	if err != nil || txn == nil {
		return txn, err
	}
	e.store.Publish()
	e.log.Infof("committed %q: %d tiles (txn %s)", txn.Label, txn.NetChanges(), txn.ID)
	return txn, nil
}

func (st Stroke) label(def *catalog.BrushDefinition) string {
	if st.Label != "" {
		return st.Label
	}
	if st.Erase {
		return "erase " + def.Name
	}
	return "paint " + def.Name
}

// abort rolls back every write of the open transaction and discards it.
// The store is back to its pre-stroke state when abort returns.
func (e *Engine) abort(txn *history.Transaction, err error) error {
	txn.Rollback(e.store)
	e.history.Discard()
	return err
}

// paintTile applies the brush's base content at pos and records the change.
// Border items are not touched here; the border pass owns them.
func (e *Engine) paintTile(def *catalog.BrushDefinition, pos tile.Position, st Stroke) error {
	before := e.store.Get(pos)

	if before != nil && !st.Override {
		protected := before.Flags.Has(tile.FlagProtectionZone) || before.Flags.Has(tile.FlagHouse)
		if protected && (def.Kind == catalog.KindGround || def.Kind == catalog.KindEraser) {
			return ErrIncompatibleTile
		}
	}

	var after *tile.Tile
	switch {
	case def.Kind == catalog.KindEraser:
		after = e.eraseAll(before)
	case st.Erase:
		after = eraseFamily(before, def)
	default:
		after = e.paintContent(def, pos, before, st)
	}

	return e.writeTile(pos, before, after)
}

// paintContent builds the painted tile for a non-erase gesture.
func (e *Engine) paintContent(def *catalog.BrushDefinition, pos tile.Position, before *tile.Tile, st Stroke) *tile.Tile {
	base := before
	if base == nil {
		base = tile.New(pos)
	}
	id := pickCandidate(def, pos, st.Variation)

	switch def.Kind {
	case catalog.KindGround:
		ground := tile.NewItem(id)
		return base.WithGround(&ground)

	case catalog.KindWall, catalog.KindDoor, catalog.KindTable:
		return withoutFamily(base, def).AddItemTop(tile.NewItem(id))

	case catalog.KindCarpet, catalog.KindBorder:
		return withoutFamily(base, def).AddItemBottom(tile.NewItem(id))

	case catalog.KindDoodad:
		if !placeAt(def, pos, st.Center, st.Variation) {
			return before
		}
		if base.HasItemID(id) {
			return before
		}
		return base.AddItemTop(tile.NewItem(id))

	default:
		return withoutFamily(base, def).AddItemTop(tile.NewItem(id))
	}
}

// eraseAll clears a tile the way the eraser brush does: everything goes,
// except items carrying action ids, unique ids, or text when leave-unique
// protection is on.
func (e *Engine) eraseAll(before *tile.Tile) *tile.Tile {
	if before == nil {
		return nil
	}
	after := before.RemoveItems(func(it tile.Item) bool {
		return e.leaveUnique && it.IsComplex()
	})
	if after.Ground != nil && !(e.leaveUnique && after.Ground.IsComplex()) {
		after = after.WithGround(nil)
	}
	return after
}

// eraseFamily removes only the brush's own content from a tile.
func eraseFamily(before *tile.Tile, def *catalog.BrushDefinition) *tile.Tile {
	if before == nil {
		return nil
	}
	after := withoutFamily(before, def)
	if after.Ground != nil && def.Owns(after.Ground.ID) {
		after = after.WithGround(nil)
	}
	return after
}

func withoutFamily(t *tile.Tile, def *catalog.BrushDefinition) *tile.Tile {
	return t.RemoveItems(func(it tile.Item) bool {
		return !def.Owns(it.ID)
	})
}

// writeTile records a before/after pair into the open transaction and
// applies it to the store. Unchanged tiles are skipped entirely, which is
// what makes repainting a correct area a zero-record transaction.
func (e *Engine) writeTile(pos tile.Position, before, after *tile.Tile) error {
	if tile.Equal(before, after) {
		return nil
	}
	if err := e.history.Record(pos, before, after); err != nil {
		return err
	}
	if after == nil || after.IsEmpty() {
		e.store.Remove(pos)
		return nil
	}
	return e.store.Set(pos, after)
}
