// Package script embeds a Lua interpreter over the editor core. Scripts
// drive the same stroke engine as interactive editing, so everything they
// paint is undoable and border-correct.
//
// The exposed API lives in the global `map` table:
//
//	map.paint(name, x, y, z [, size [, shape]]) -> records
//	map.erase(name, x, y, z [, size])           -> records
//	map.undo() / map.redo()                     -> records
//	map.undo_count() / map.redo_count()         -> number
//	map.tile(x, y, z)                           -> table or nil
//	map.brushes()                               -> array of names
//	map.borderize(x1, y1, x2, y2, z)            -> records
package script

import (
	"context"
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/mapsmith/mapsmith/internal/app"
	"github.com/mapsmith/mapsmith/internal/engine/history"
	"github.com/mapsmith/mapsmith/internal/engine/stroke"
	"github.com/mapsmith/mapsmith/internal/engine/tile"
)

// Engine runs Lua scripts against one editor.
type Engine struct {
	editor *app.Editor
}

// New creates a script engine over the editor.
func New(editor *app.Editor) *Engine {
	return &Engine{editor: editor}
}

// RunFile executes a script file. The context cancels long-running scripts
// between Lua instructions that call back into Go.
func (e *Engine) RunFile(ctx context.Context, path string) error {
	L := e.newState(ctx)
	defer L.Close()
	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

// RunString executes script source text.
func (e *Engine) RunString(ctx context.Context, src string) error {
	L := e.newState(ctx)
	defer L.Close()
	if err := L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

func (e *Engine) newState(ctx context.Context) *lua.LState {
	L := lua.NewState()
	L.SetContext(ctx)
	e.register(L)
	return L
}

func (e *Engine) register(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "paint", L.NewFunction(e.paint))
	L.SetField(mod, "erase", L.NewFunction(e.erase))
	L.SetField(mod, "undo", L.NewFunction(e.undo))
	L.SetField(mod, "redo", L.NewFunction(e.redo))
	L.SetField(mod, "undo_count", L.NewFunction(e.undoCount))
	L.SetField(mod, "redo_count", L.NewFunction(e.redoCount))
	L.SetField(mod, "tile", L.NewFunction(e.tile))
	L.SetField(mod, "brushes", L.NewFunction(e.brushes))
	L.SetField(mod, "borderize", L.NewFunction(e.borderize))
	L.SetGlobal("map", mod)
}

// strokeArgs reads the shared (name, x, y, z [, size [, shape]]) argument
// shape of paint and erase.
func strokeArgs(L *lua.LState) (string, stroke.Stroke) {
	name := L.CheckString(1)
	st := stroke.Stroke{
		Center: tile.Pos(L.CheckInt(2), L.CheckInt(3), L.CheckInt(4)),
		Size:   L.OptInt(5, 0),
	}
	if shapeName := L.OptString(6, "square"); shapeName != "" {
		shape, ok := stroke.ParseShape(shapeName)
		if !ok {
			L.ArgError(6, "unknown shape "+shapeName)
		}
		st.Shape = shape
	}
	return name, st
}

// pushRecords pushes the record count of a transaction; a discarded
// zero-change transaction counts as zero.
func pushRecords(L *lua.LState, txn *history.Transaction) int {
	if txn == nil {
		L.Push(lua.LNumber(0))
		return 1
	}
	L.Push(lua.LNumber(len(txn.Records())))
	return 1
}

// paint(name, x, y, z [, size [, shape]]) -> records
func (e *Engine) paint(L *lua.LState) int {
	name, st := strokeArgs(L)
	txn, err := e.editor.PaintByName(L.Context(), name, st)
	if err != nil {
		L.RaiseError("paint: %v", err)
		return 0
	}
	return pushRecords(L, txn)
}

// erase(name, x, y, z [, size]) -> records
func (e *Engine) erase(L *lua.LState) int {
	name, st := strokeArgs(L)
	st.Erase = true
	txn, err := e.editor.PaintByName(L.Context(), name, st)
	if err != nil {
		L.RaiseError("erase: %v", err)
		return 0
	}
	return pushRecords(L, txn)
}

// undo() -> records
func (e *Engine) undo(L *lua.LState) int {
	txn, err := e.editor.Undo()
	if err != nil {
		L.RaiseError("undo: %v", err)
		return 0
	}
	return pushRecords(L, txn)
}

// redo() -> records
func (e *Engine) redo(L *lua.LState) int {
	txn, err := e.editor.Redo()
	if err != nil {
		L.RaiseError("redo: %v", err)
		return 0
	}
	return pushRecords(L, txn)
}

func (e *Engine) undoCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.editor.History().UndoCount()))
	return 1
}

func (e *Engine) redoCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.editor.History().RedoCount()))
	return 1
}

// tile(x, y, z) -> { x, y, z, ground, flags, items = {...} } or nil
func (e *Engine) tile(L *lua.LState) int {
	pos := tile.Pos(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3))
	t := e.editor.Store().Get(pos)
	if t == nil {
		L.Push(lua.LNil)
		return 1
	}

	tbl := L.NewTable()
	L.SetField(tbl, "x", lua.LNumber(pos.X))
	L.SetField(tbl, "y", lua.LNumber(pos.Y))
	L.SetField(tbl, "z", lua.LNumber(pos.Z))
	L.SetField(tbl, "flags", lua.LNumber(t.Flags))
	if t.Ground != nil {
		L.SetField(tbl, "ground", lua.LNumber(t.Ground.ID))
	}
	items := L.NewTable()
	for _, it := range t.Items {
		items.Append(lua.LNumber(it.ID))
	}
	L.SetField(tbl, "items", items)

	L.Push(tbl)
	return 1
}

// brushes() -> sorted array of brush names
func (e *Engine) brushes(L *lua.LState) int {
	names := e.editor.Catalog().Names()
	sort.Strings(names)
	tbl := L.NewTable()
	for _, name := range names {
		tbl.Append(lua.LString(name))
	}
	L.Push(tbl)
	return 1
}

// borderize(x1, y1, x2, y2, z) -> records
func (e *Engine) borderize(L *lua.LState) int {
	x1, y1 := L.CheckInt(1), L.CheckInt(2)
	x2, y2 := L.CheckInt(3), L.CheckInt(4)
	z := L.CheckInt(5)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}

	var sel []tile.Position
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			sel = append(sel, tile.Pos(x, y, z))
		}
	}
	txn, err := e.editor.Borderize(L.Context(), sel)
	if err != nil {
		L.RaiseError("borderize: %v", err)
		return 0
	}
	return pushRecords(L, txn)
}
