package border

import (
	"testing"

	"github.com/mapsmith/mapsmith/internal/engine/tile"
)

// gridGetter backs the analyzer with a plain map for tests.
type gridGetter map[tile.Position]*tile.Tile

func (g gridGetter) Get(pos tile.Position) *tile.Tile { return g[pos] }

// idGrouper assigns groups by ground item id.
type idGrouper map[tile.ItemID]string

func (g idGrouper) GroupOf(t *tile.Tile) string {
	if t == nil || t.Ground == nil {
		return ""
	}
	return g[t.Ground.ID]
}

func groundTile(pos tile.Position, id tile.ItemID) *tile.Tile {
	return tile.New(pos).WithGround(&tile.Item{ID: id})
}

func TestAnalyze(t *testing.T) {
	grouper := idGrouper{100: "grass", 200: "dirt"}
	center := tile.Position{X: 5, Y: 5, Z: 7}

	grid := gridGetter{}
	put := func(dx, dy int, id tile.ItemID) {
		pos := center.Translate(dx, dy)
		grid[pos] = groundTile(pos, id)
	}

	put(0, -1, 100) // N
	put(1, -1, 100) // NE
	put(-1, 0, 200) // W, other group
	put(1, 1, 100)  // SE
	// SW is a tile with no ground group at all.
	swPos := center.Translate(-1, 1)
	grid[swPos] = tile.New(swPos).WithFlags(tile.FlagBlocking)

	got := Analyze(grid, center, "grass", grouper)
	want := BitN | BitNE | BitSE
	if got != want {
		t.Errorf("Analyze = %s, want %s", got, want)
	}

	if got := Analyze(grid, center, "dirt", grouper); got != BitW {
		t.Errorf("Analyze(dirt) = %s, want %s", got, BitW)
	}

	if got := Analyze(grid, center, "", grouper); got != 0 {
		t.Errorf("Analyze with empty group = %s, want none", got)
	}

	// Missing neighbors on an empty grid contribute nothing.
	if got := Analyze(gridGetter{}, center, "grass", grouper); got != 0 {
		t.Errorf("Analyze on empty grid = %s, want none", got)
	}
}

func TestAnalyzeCardinal(t *testing.T) {
	grouper := idGrouper{300: "stone-wall"}
	center := tile.Position{X: 10, Y: 10, Z: 7}

	grid := gridGetter{}
	for _, off := range [][2]int{{0, -1}, {1, 0}, {-1, -1}, {1, 1}} {
		pos := center.Translate(off[0], off[1])
		grid[pos] = groundTile(pos, 300)
	}

	// Diagonal neighbors never contribute to a cardinal mask.
	got := AnalyzeCardinal(grid, center, "stone-wall", grouper)
	want := CardinalN | CardinalE
	if got != want {
		t.Errorf("AnalyzeCardinal = %04b, want %04b", got, want)
	}

	if got := AnalyzeCardinal(grid, center, "", grouper); got != 0 {
		t.Errorf("AnalyzeCardinal with empty group = %04b, want 0", got)
	}
}
