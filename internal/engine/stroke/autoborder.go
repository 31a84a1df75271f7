package stroke

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/mapsmith/mapsmith/internal/engine/border"
	"github.com/mapsmith/mapsmith/internal/engine/catalog"
	"github.com/mapsmith/mapsmith/internal/engine/tile"
)

// corruptRuleError translates the resolver's corrupt-rule report into the
// engine's own sentinel, so callers watching the log match one error kind.
func corruptRuleError(err error) error {
	if errors.Is(err, border.ErrRuleCorrupt) {
		return fmt.Errorf("%w: %v", ErrRuleTableCorrupt, err)
	}
	return err
}

// borderize re-resolves borders and alignments over the given positions.
// The position list must already be sorted; the pass walks it in order and
// records every change into the open transaction, so undo replay sees a
// reproducible sequence.
//
// The pass is order-independent by construction: ground masks are computed
// from ground items only, which this pass never writes, and wall alignment
// masks are computed from brush families, which replacement within a family
// never changes.
func (e *Engine) borderize(ctx context.Context, positions []tile.Position) error {
	for _, pos := range positions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.borderizeTile(pos); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) borderizeTile(pos tile.Position) error {
	before := e.store.Get(pos)
	if before == nil {
		return nil
	}

	after := before
	if before.Ground != nil {
		if def, ok := e.catalog.Owner(before.Ground.ID); ok && def.Kind == catalog.KindGround {
			after = e.resolveGroundBorders(pos, after, def)
		}
	}
	after = e.resolveWallAlignment(pos, after)

	return e.writeTile(pos, before, after)
}

// resolveGroundBorders recomputes the border item of a ground tile.
//
// Transition rules win over the default border set: when any neighbor of a
// configured target group is present, the strongest transition outcome is
// scored by neighbor count first and piece weight second, and the best one
// is placed. Otherwise the default rule set resolves against the same-group
// mask. Either way, the tile's stale border items are stripped and the
// selected piece, if any, goes to the bottom of the stack.
func (e *Engine) resolveGroundBorders(pos tile.Position, t *tile.Tile, def *catalog.BrushDefinition) *tile.Tile {
	if def.Rules.Len() == 0 && len(def.Transitions) == 0 {
		return t
	}
	grouper := e.catalog.GroundGrouper()

	var selected tile.ItemID
	bestScore := -1

	groups := make([]string, 0, len(def.Transitions))
	for g := range def.Transitions {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		mask := border.Analyze(e.store, pos, g, grouper)
		if mask == 0 {
			continue
		}
		out, ok, err := border.Resolve(mask, g, def.Transitions[g], def.DiagonalEnabled)
		if err != nil {
			e.log.Warnf("border: %s transition %s at %s: %v", def.Name, g, pos, corruptRuleError(err))
			continue
		}
		if !ok {
			continue
		}
		score := mask.Count()*10 + border.AlignmentWeight(out.Orientation)
		if score > bestScore {
			selected = out.ItemID
			bestScore = score
		}
	}

	if selected == 0 {
		mask := border.Analyze(e.store, pos, def.Group, grouper)
		out, ok, err := border.Resolve(mask, def.Group, def.Rules, def.DiagonalEnabled)
		if err != nil {
			e.log.Warnf("border: %s at %s: %v", def.Name, pos, corruptRuleError(err))
		}
		if ok {
			selected = out.ItemID
		}
	}

	after := t.RemoveItems(func(it tile.Item) bool {
		return !isBorderPiece(def, it.ID)
	})
	if selected != 0 {
		after = after.AddItemBottom(tile.NewItem(selected))
	}
	return after
}

// isBorderPiece reports whether id is one of the brush's border items: an
// owned id that is neither the primary ground nor a ground candidate.
func isBorderPiece(def *catalog.BrushDefinition, id tile.ItemID) bool {
	if !def.Owns(id) {
		return false
	}
	if id == def.ServerID {
		return false
	}
	for _, c := range def.Candidates {
		if c.ID == id {
			return false
		}
	}
	return true
}

// resolveWallAlignment realigns the topmost wall-family item on a tile.
// The 4-neighbor mask maps to an alignment; when the brush has no piece for
// it, the fallback chain walks progressively simpler alignments and always
// terminates at solitary.
func (e *Engine) resolveWallAlignment(pos tile.Position, t *tile.Tile) *tile.Tile {
	var def *catalog.BrushDefinition
	var current tile.ItemID
	for i := len(t.Items) - 1; i >= 0; i-- {
		owner, ok := e.catalog.Owner(t.Items[i].ID)
		if ok && owner.Kind.IsWallFamily() {
			def = owner
			current = t.Items[i].ID
			break
		}
	}
	if def == nil || def.Group == "" || len(def.Align) == 0 {
		return t
	}

	mask := border.AnalyzeCardinal(e.store, pos, def.Group, e.catalog)
	want := border.WallAlignment(mask)

	var selected tile.ItemID
	for _, cand := range border.FallbackOrientations(want) {
		if id, ok := def.Align[cand]; ok && id != 0 {
			selected = id
			break
		}
	}
	if selected == 0 || selected == current {
		return t
	}

	after := withoutFamily(t, def)
	if def.Kind == catalog.KindCarpet {
		return after.AddItemBottom(tile.NewItem(selected))
	}
	return after.AddItemTop(tile.NewItem(selected))
}
