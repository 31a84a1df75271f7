package catalog

import (
	"errors"
	"sort"
	"testing"

	"github.com/mapsmith/mapsmith/internal/engine/border"
	"github.com/mapsmith/mapsmith/internal/engine/tile"
)

func groundDef(name string, id tile.ItemID, group string) *BrushDefinition {
	def := &BrushDefinition{
		Name:     name,
		ServerID: id,
		Kind:     KindGround,
		Group:    group,
	}
	def.Seal()
	return def
}

func TestReplaceAndLookups(t *testing.T) {
	c := New()
	if c.Version() != 0 || c.Len() != 0 {
		t.Fatalf("fresh catalog: version %d, len %d", c.Version(), c.Len())
	}

	defs := []*BrushDefinition{
		groundDef("grass", 100, "grass"),
		groundDef("dirt", 200, "dirt"),
	}
	if err := c.Replace(defs); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if c.Version() != 1 || c.Len() != 2 {
		t.Errorf("after replace: version %d, len %d", c.Version(), c.Len())
	}

	if def, ok := c.Get(100); !ok || def.Name != "grass" {
		t.Errorf("Get(100) = %v, %v", def, ok)
	}
	if def, ok := c.GetByName("dirt"); !ok || def.ServerID != 200 {
		t.Errorf("GetByName(dirt) = %v, %v", def, ok)
	}
	if _, ok := c.Get(999); ok {
		t.Error("Get(999) found a brush")
	}
	if _, ok := c.GetByName("lava"); ok {
		t.Error("GetByName(lava) found a brush")
	}

	names := c.Names()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "dirt" || names[1] != "grass" {
		t.Errorf("Names = %v", names)
	}

	// A second replace swaps the whole set and bumps the version again.
	if err := c.Replace([]*BrushDefinition{groundDef("sand", 300, "sand")}); err != nil {
		t.Fatal(err)
	}
	if c.Version() != 2 || c.Len() != 1 {
		t.Errorf("after second replace: version %d, len %d", c.Version(), c.Len())
	}
	if _, ok := c.Get(100); ok {
		t.Error("old definition survived the replace")
	}
}

func TestReplaceRejectsDuplicates(t *testing.T) {
	c := New()
	if err := c.Replace([]*BrushDefinition{groundDef("grass", 100, "grass")}); err != nil {
		t.Fatal(err)
	}

	dupName := []*BrushDefinition{groundDef("grass", 100, "grass"), groundDef("grass", 200, "x")}
	if err := c.Replace(dupName); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate name: %v, want ErrDuplicate", err)
	}
	dupID := []*BrushDefinition{groundDef("a", 100, "x"), groundDef("b", 100, "y")}
	if err := c.Replace(dupID); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate id: %v, want ErrDuplicate", err)
	}

	// A failed replace leaves the previous set intact.
	if c.Version() != 1 || c.Len() != 1 {
		t.Errorf("after failed replace: version %d, len %d", c.Version(), c.Len())
	}
	if _, ok := c.GetByName("grass"); !ok {
		t.Error("previous definitions lost after failed replace")
	}
}

func TestReplaceRejectsIncompleteDefs(t *testing.T) {
	c := New()
	noName := &BrushDefinition{ServerID: 1, Kind: KindGround}
	noName.Seal()
	if err := c.Replace([]*BrushDefinition{noName}); err == nil {
		t.Error("accepted a brush without a name")
	}
	noID := &BrushDefinition{Name: "x", Kind: KindGround}
	noID.Seal()
	if err := c.Replace([]*BrushDefinition{noID}); err == nil {
		t.Error("accepted a brush without a server id")
	}
}

func TestOwnerAndGroups(t *testing.T) {
	grass := &BrushDefinition{
		Name:     "grass",
		ServerID: 100,
		Kind:     KindGround,
		Group:    "grass",
		Candidates: []WeightedItem{
			{ID: 100, Weight: 10},
			{ID: 101, Weight: 1},
		},
		Rules: border.NewRuleTable([]border.Rule{
			{Mask: 0, Forbidden: border.BitN, Wildcard: true, ItemID: 140, Orientation: border.OrientNorth},
		}),
	}
	grass.Seal()
	wall := &BrushDefinition{
		Name:     "stone wall",
		ServerID: 300,
		Kind:     KindWall,
		Group:    "stone-wall",
		Align: map[border.Orientation]tile.ItemID{
			border.OrientHorizontal: 310,
			border.OrientSolitary:   312,
		},
	}
	wall.Seal()

	c := New()
	if err := c.Replace([]*BrushDefinition{grass, wall}); err != nil {
		t.Fatal(err)
	}

	for _, id := range []tile.ItemID{100, 101, 140} {
		if def, ok := c.Owner(id); !ok || def != grass {
			t.Errorf("Owner(%d) = %v, %v", id, def, ok)
		}
	}
	if def, ok := c.Owner(310); !ok || def != wall {
		t.Errorf("Owner(310) = %v, %v", def, ok)
	}
	if _, ok := c.Owner(999); ok {
		t.Error("Owner(999) found a brush")
	}

	if g := c.GroupOfID(140); g != "grass" {
		t.Errorf("GroupOfID(140) = %q", g)
	}
	if g := c.GroupOfID(312); g != "stone-wall" {
		t.Errorf("GroupOfID(312) = %q", g)
	}
	if g := c.GroupOfID(999); g != "" {
		t.Errorf("GroupOfID(999) = %q", g)
	}
}

func TestGroupOfPrefersTopmostStackItem(t *testing.T) {
	grass := groundDef("grass", 100, "grass")
	wall := &BrushDefinition{
		Name:     "stone wall",
		ServerID: 300,
		Kind:     KindWall,
		Group:    "stone-wall",
	}
	wall.Seal()

	c := New()
	if err := c.Replace([]*BrushDefinition{grass, wall}); err != nil {
		t.Fatal(err)
	}

	pos := tile.Pos(0, 0, 7)
	bare := tile.New(pos).WithGround(&tile.Item{ID: 100})
	if g := c.GroupOf(bare); g != "grass" {
		t.Errorf("GroupOf(ground only) = %q", g)
	}

	walled := bare.AddItemTop(tile.Item{ID: 300})
	if g := c.GroupOf(walled); g != "stone-wall" {
		t.Errorf("GroupOf(ground+wall) = %q", g)
	}

	// Items outside any group fall through to the ground.
	decorated := bare.AddItemTop(tile.Item{ID: 9999})
	if g := c.GroupOf(decorated); g != "grass" {
		t.Errorf("GroupOf(ground+unknown item) = %q", g)
	}

	if g := c.GroupOf(nil); g != "" {
		t.Errorf("GroupOf(nil) = %q", g)
	}

	// The ground grouper never looks at the stack.
	gg := c.GroundGrouper()
	if g := gg.GroupOf(walled); g != "grass" {
		t.Errorf("GroundGrouper(ground+wall) = %q", g)
	}
	if g := gg.GroupOf(tile.New(pos).AddItemTop(tile.Item{ID: 300})); g != "" {
		t.Errorf("GroundGrouper(wall only) = %q", g)
	}
}
