package border

import (
	"errors"
	"testing"
)

func TestResolveExactMatch(t *testing.T) {
	table := NewRuleTable([]Rule{
		{Mask: BitN, ItemID: 10, Orientation: OrientNorth},
	})

	out, ok, err := Resolve(BitN, "grass", table, true)
	if err != nil || !ok {
		t.Fatalf("Resolve = %v, %v", ok, err)
	}
	if out.ItemID != 10 || out.Orientation != OrientNorth {
		t.Errorf("out = %+v", out)
	}
}

func TestResolveSymmetry(t *testing.T) {
	// Only the north rule exists; the other edges resolve through
	// canonicalization with the orientation transformed back.
	table := NewRuleTable([]Rule{
		{Mask: BitN, ItemID: 10, Orientation: OrientNorth},
	})

	tests := []struct {
		mask   Mask
		orient Orientation
	}{
		{BitE, OrientEast},
		{BitS, OrientSouth},
		{BitW, OrientWest},
	}
	for _, tt := range tests {
		out, ok, err := Resolve(tt.mask, "grass", table, true)
		if err != nil || !ok {
			t.Fatalf("Resolve(%s) = %v, %v", tt.mask, ok, err)
		}
		if out.ItemID != 10 {
			t.Errorf("Resolve(%s) item = %d", tt.mask, out.ItemID)
		}
		if out.Orientation != tt.orient {
			t.Errorf("Resolve(%s) orientation = %s, want %s", tt.mask, out.Orientation, tt.orient)
		}
	}
}

func TestResolveMirrorSymmetry(t *testing.T) {
	// N|NE has no pure rotation onto N|NW; only the mirrored lookups find
	// it, and the orientation mirrors back.
	table := NewRuleTable([]Rule{
		{Mask: BitN | BitNE, ItemID: 20, Orientation: OrientCornerNE},
	})

	out, ok, err := Resolve(BitN|BitNW, "grass", table, true)
	if err != nil || !ok {
		t.Fatalf("Resolve = %v, %v", ok, err)
	}
	if out.ItemID != 20 || out.Orientation != OrientCornerNW {
		t.Errorf("out = %+v, want mirrored corner NW", out)
	}
}

func TestResolveWildcardSpecificity(t *testing.T) {
	table := NewRuleTable([]Rule{
		{Mask: BitN, Wildcard: true, ItemID: 1, Orientation: OrientNorth},
		{Mask: BitN | BitE, Wildcard: true, ItemID: 2, Orientation: OrientCornerNE},
	})

	out, ok, err := Resolve(BitN|BitE|BitS, "grass", table, true)
	if err != nil || !ok {
		t.Fatalf("Resolve = %v, %v", ok, err)
	}
	if out.ItemID != 2 {
		t.Errorf("item = %d, want the more specific rule", out.ItemID)
	}
}

func TestResolveWildcardTieKeepsInsertionOrder(t *testing.T) {
	table := NewRuleTable([]Rule{
		{Mask: BitN, Wildcard: true, ItemID: 1, Orientation: OrientNorth},
		{Mask: BitE, Wildcard: true, ItemID: 2, Orientation: OrientEast},
	})

	// Both rules have specificity 1 and both match; the first inserted
	// must win every time.
	for i := 0; i < 20; i++ {
		out, ok, err := Resolve(BitN|BitE, "grass", table, true)
		if err != nil || !ok {
			t.Fatalf("Resolve = %v, %v", ok, err)
		}
		if out.ItemID != 1 {
			t.Fatalf("run %d picked item %d, want 1", i, out.ItemID)
		}
	}
}

func TestResolveForbiddenBits(t *testing.T) {
	table := NewRuleTable([]Rule{
		{Mask: BitN | BitE, Forbidden: BitNE, Wildcard: true, ItemID: 5, Orientation: OrientInnerNE},
	})

	if _, ok, _ := Resolve(BitN|BitE|BitNE, "grass", table, true); ok {
		t.Error("rule matched despite a forbidden bit")
	}
	out, ok, _ := Resolve(BitN|BitE, "grass", table, true)
	if !ok || out.ItemID != 5 {
		t.Errorf("out = %+v, %v", out, ok)
	}
}

func TestResolveIsolatedAndSurroundedNeverBorder(t *testing.T) {
	// Even explicit rules for 0x00 and 0xFF must not fire.
	table := NewRuleTable([]Rule{
		{Mask: 0, Wildcard: true, ItemID: 1},
		{Mask: MaskFull, ItemID: 2},
	})

	for _, diagonal := range []bool{true, false} {
		if _, ok, _ := Resolve(0, "grass", table, diagonal); ok {
			t.Errorf("isolated tile bordered (diagonal=%v)", diagonal)
		}
		if _, ok, _ := Resolve(MaskFull, "grass", table, diagonal); ok {
			t.Errorf("surrounded tile bordered (diagonal=%v)", diagonal)
		}
	}
}

func TestResolveDiagonalDisabled(t *testing.T) {
	table := NewRuleTable([]Rule{
		{Mask: BitN, ItemID: 10, Orientation: OrientNorth},
	})

	// Diagonal bits are ignored, so N|NW|SE reduces to the exact N rule.
	out, ok, err := Resolve(BitN|BitNW|BitSE, "grass", table, false)
	if err != nil || !ok || out.ItemID != 10 {
		t.Fatalf("Resolve = %+v, %v, %v", out, ok, err)
	}

	// Diagonal-only contact reduces to isolation.
	if _, ok, _ := Resolve(BitNW|BitSE, "grass", table, false); ok {
		t.Error("diagonal-only mask bordered with diagonal disabled")
	}
}

func TestResolveCorruptRule(t *testing.T) {
	table := NewRuleTable([]Rule{
		{Mask: BitN, ItemID: 0, Orientation: OrientNorth},
	})

	out, ok, err := Resolve(BitN, "grass", table, true)
	if !errors.Is(err, ErrRuleCorrupt) {
		t.Fatalf("err = %v, want ErrRuleCorrupt", err)
	}
	if ok || out.ItemID != 0 {
		t.Errorf("corrupt rule produced an outcome: %+v", out)
	}
}

func TestResolveEmptyTable(t *testing.T) {
	if _, ok, err := Resolve(BitN, "grass", nil, true); ok || err != nil {
		t.Errorf("nil table resolved: %v, %v", ok, err)
	}
	if _, ok, err := Resolve(BitN, "grass", NewRuleTable(nil), true); ok || err != nil {
		t.Errorf("empty table resolved: %v, %v", ok, err)
	}
}

func TestRuleTableItemIDs(t *testing.T) {
	table := NewRuleTable([]Rule{
		{Mask: BitN, ItemID: 1},
		{Mask: BitE, Wildcard: true, ItemID: 2},
	})
	ids := table.ItemIDs()
	if len(ids) != 2 {
		t.Fatalf("ids = %v", ids)
	}
	seen := map[int]bool{}
	for _, id := range ids {
		seen[int(id)] = true
	}
	if !seen[1] || !seen[2] {
		t.Errorf("ids = %v", ids)
	}
}
