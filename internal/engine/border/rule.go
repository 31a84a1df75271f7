package border

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mapsmith/mapsmith/internal/engine/tile"
)

// ErrRuleCorrupt reports a rule table entry that cannot produce a valid
// outcome. The resolver never aborts on it; callers log it and place no
// border on the affected tile.
var ErrRuleCorrupt = errors.New("corrupt border rule")

// Rule maps a neighbor mask to a border piece.
//
// An exact rule (Wildcard false) matches only its precise mask. A wildcard
// rule matches any mask that contains all Required bits and none of the
// Forbidden bits; the most specific wildcard rule wins, where specificity is
// the total number of constrained bits. Ties keep table insertion order, so
// equally specific rules resolve the same way on every run.
type Rule struct {
	Mask      Mask // exact mask, or required bits for wildcard rules
	Forbidden Mask // wildcard only: bits that must be absent
	Wildcard  bool

	ItemID      tile.ItemID
	Orientation Orientation
}

func (r Rule) specificity() int {
	return r.Mask.Count() + r.Forbidden.Count()
}

// matches reports whether a wildcard rule applies to mask.
func (r Rule) matches(m Mask) bool {
	return m&r.Mask == r.Mask && m&r.Forbidden == 0
}

// Outcome is a resolved border piece.
type Outcome struct {
	ItemID      tile.ItemID
	Orientation Orientation
}

// RuleTable holds the border rules of one brush group, split into exact
// lookups and an ordered wildcard list.
type RuleTable struct {
	exact    map[Mask]Rule
	wildcard []Rule
}

// NewRuleTable builds a table from rules. Wildcard rules are ordered by
// descending specificity with a stable sort, so insertion order breaks ties.
// The first exact rule for a given mask wins; duplicates are ignored.
func NewRuleTable(rules []Rule) *RuleTable {
	t := &RuleTable{exact: make(map[Mask]Rule)}
	for _, r := range rules {
		if r.Wildcard {
			t.wildcard = append(t.wildcard, r)
			continue
		}
		if _, dup := t.exact[r.Mask]; !dup {
			t.exact[r.Mask] = r
		}
	}
	sort.SliceStable(t.wildcard, func(i, j int) bool {
		return t.wildcard[i].specificity() > t.wildcard[j].specificity()
	})
	return t
}

// Len returns the number of rules in the table.
func (t *RuleTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.exact) + len(t.wildcard)
}

// ItemIDs returns every item id the table can produce, unordered.
func (t *RuleTable) ItemIDs() []tile.ItemID {
	if t == nil {
		return nil
	}
	ids := make([]tile.ItemID, 0, t.Len())
	for _, r := range t.exact {
		ids = append(ids, r.ItemID)
	}
	for _, r := range t.wildcard {
		ids = append(ids, r.ItemID)
	}
	return ids
}

// symmetry transforms tried during canonicalization, in fixed order:
// the three remaining rotations, then the mirror, then mirrored rotations.
var symmetries = []struct {
	rotate int  // quarters applied to the mask
	mirror bool // mirror applied after rotation
}{
	{1, false},
	{2, false},
	{3, false},
	{0, true},
	{1, true},
	{2, true},
	{3, true},
}

// Resolve maps a neighbor mask to a border outcome for the given group.
//
// Lookup tiers, in order:
//  1. Exact rule for the precise mask.
//  2. Symmetry: rotations and mirrors of the mask against exact rules, with
//     the outcome orientation transformed back.
//  3. Wildcard rules, most specific first, insertion order on ties.
//  4. No border.
//
// A fully isolated (0x00) or fully surrounded (0xFF) mask never produces a
// border. When diagonal is false, diagonal bits are ignored.
//
// The returned error is non-nil only for a corrupt rule entry; it is
// informational, and the outcome is "no border".
func Resolve(mask Mask, group string, table *RuleTable, diagonal bool) (Outcome, bool, error) {
	if table == nil || table.Len() == 0 {
		return Outcome{}, false, nil
	}
	if mask == 0 || mask == MaskFull {
		return Outcome{}, false, nil
	}
	if !diagonal {
		mask = mask.Cardinal()
		if mask == 0 {
			return Outcome{}, false, nil
		}
	}

	// Tier 1: exact match.
	if r, ok := table.exact[mask]; ok {
		return outcomeOf(r, group, 0, false)
	}

	// Tier 2: canonicalization by symmetry.
	for _, sym := range symmetries {
		m := mask.Rotate(sym.rotate)
		if sym.mirror {
			m = m.Mirror()
		}
		if r, ok := table.exact[m]; ok {
			return outcomeOf(r, group, sym.rotate, sym.mirror)
		}
	}

	// Tier 3: wildcard fallback.
	for _, r := range table.wildcard {
		if r.matches(mask) {
			return outcomeOf(r, group, 0, false)
		}
	}

	// Tier 4: no border.
	return Outcome{}, false, nil
}

// outcomeOf validates a matched rule and undoes the symmetry transform on
// its orientation. The rule was found for the transformed mask, so the
// orientation is mirrored back first, then rotated by the inverse quarter.
func outcomeOf(r Rule, group string, rotated int, mirrored bool) (Outcome, bool, error) {
	if r.ItemID == 0 {
		return Outcome{}, false, fmt.Errorf("%w: group %q mask %s has no item", ErrRuleCorrupt, group, r.Mask)
	}
	o := r.Orientation
	if mirrored {
		o = o.Mirror()
	}
	o = o.Rotate(4 - rotated)
	return Outcome{ItemID: r.ItemID, Orientation: o}, true, nil
}
