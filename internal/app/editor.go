// Package app wires the map editor together: the tile store, the brush
// catalog, the undo history, and the stroke engine, configured from one
// Config value.
package app

import (
	"context"
	"fmt"

	"github.com/mapsmith/mapsmith/internal/config"
	"github.com/mapsmith/mapsmith/internal/engine/catalog"
	"github.com/mapsmith/mapsmith/internal/engine/history"
	"github.com/mapsmith/mapsmith/internal/engine/store"
	"github.com/mapsmith/mapsmith/internal/engine/stroke"
	"github.com/mapsmith/mapsmith/internal/engine/tile"
)

// Editor is the assembled editing core. One Editor owns one open map.
type Editor struct {
	log     *Logger
	store   *store.TileStore
	catalog *catalog.Catalog
	history *history.History
	engine  *stroke.Engine
}

// NewEditor builds an editor from configuration. The catalog starts empty;
// load it with LoadCatalog.
func NewEditor(cfg config.Config, log *Logger) *Editor {
	if log == nil {
		log = NullLogger
	}
	s := store.New(store.Bounds{Width: cfg.Map.Width, Height: cfg.Map.Height})
	c := catalog.New()
	h := history.New(cfg.History.MaxEntries)
	e := stroke.New(s, c, h,
		stroke.WithLogger(log.WithComponent("stroke")),
		stroke.WithAutoBorder(cfg.Editor.AutoBorder),
		stroke.WithEraserLeaveUnique(cfg.Editor.EraserLeaveUnique),
	)
	return &Editor{
		log:     log,
		store:   s,
		catalog: c,
		history: h,
		engine:  e,
	}
}

// Store returns the editor's tile store.
func (e *Editor) Store() *store.TileStore { return e.store }

// Catalog returns the editor's brush catalog.
func (e *Editor) Catalog() *catalog.Catalog { return e.catalog }

// History returns the editor's undo history.
func (e *Editor) History() *history.History { return e.history }

// LoadCatalog loads or replaces the brush catalog from a JSON file.
func (e *Editor) LoadCatalog(path string) error {
	if err := e.catalog.LoadFile(path); err != nil {
		return err
	}
	e.log.Infof("catalog loaded: %d brushes from %s", e.catalog.Len(), path)
	return nil
}

// WatchCatalog starts hot-reloading the catalog file. The caller closes
// the returned watcher on shutdown.
func (e *Editor) WatchCatalog(path string) (*catalog.Watcher, error) {
	return catalog.NewWatcher(e.catalog, path, e.log.WithComponent("catalog"))
}

// Paint applies one stroke. See stroke.Engine.Apply for semantics.
func (e *Editor) Paint(ctx context.Context, st stroke.Stroke) (*history.Transaction, error) {
	return e.engine.Apply(ctx, st)
}

// PaintByName applies a stroke looked up by brush name.
func (e *Editor) PaintByName(ctx context.Context, name string, st stroke.Stroke) (*history.Transaction, error) {
	def, ok := e.catalog.GetByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownBrush, name)
	}
	st.BrushID = def.ServerID
	return e.engine.Apply(ctx, st)
}

// Borderize re-resolves borders over a selection as one transaction.
func (e *Editor) Borderize(ctx context.Context, selection []tile.Position) (*history.Transaction, error) {
	return e.engine.BorderizeSelection(ctx, selection)
}

// Undo reverts the most recent committed stroke and republishes the
// committed view.
func (e *Editor) Undo() (*history.Transaction, error) {
	txn, err := e.history.Undo(e.store)
	if err != nil {
		return nil, err
	}
	e.store.Publish()
	e.log.Infof("undone %q (txn %s)", txn.Label, txn.ID)
	return txn, nil
}

// Redo reapplies the most recently undone stroke and republishes the
// committed view.
func (e *Editor) Redo() (*history.Transaction, error) {
	txn, err := e.history.Redo(e.store)
	if err != nil {
		return nil, err
	}
	e.store.Publish()
	e.log.Infof("redone %q (txn %s)", txn.Label, txn.ID)
	return txn, nil
}
