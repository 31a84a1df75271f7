package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mapsmith/mapsmith/internal/engine/border"
	"github.com/mapsmith/mapsmith/internal/engine/tile"
)

// Errors returned by catalog lookups.
var (
	ErrUnknownBrush = errors.New("unknown brush")
	ErrDuplicate    = errors.New("duplicate brush")
)

// Catalog is the versioned brush registry. Loading replaces the whole
// definition set atomically and bumps the version; paint-time callers only
// read.
type Catalog struct {
	mu      sync.RWMutex
	version uint64

	byID   map[tile.ItemID]*BrushDefinition
	byName map[string]*BrushDefinition

	// groupIndex maps every owned item id to its brush's border group.
	// This is what makes neighbor analysis data-driven.
	groupIndex map[tile.ItemID]string

	// ownerIndex maps every owned item id back to its brush, so a border
	// pass can recover the brush from whatever a tile already holds.
	ownerIndex map[tile.ItemID]*BrushDefinition
}

// New creates an empty catalog at version 0.
func New() *Catalog {
	return &Catalog{
		byID:       make(map[tile.ItemID]*BrushDefinition),
		byName:     make(map[string]*BrushDefinition),
		groupIndex: make(map[tile.ItemID]string),
		ownerIndex: make(map[tile.ItemID]*BrushDefinition),
	}
}

// Replace swaps in a complete definition set and bumps the version.
// Duplicate names or primary ids are an error and leave the catalog
// unchanged.
func (c *Catalog) Replace(defs []*BrushDefinition) error {
	byID := make(map[tile.ItemID]*BrushDefinition, len(defs))
	byName := make(map[string]*BrushDefinition, len(defs))
	groups := make(map[tile.ItemID]string)
	owners := make(map[tile.ItemID]*BrushDefinition)

	for _, def := range defs {
		if def.Name == "" || def.ServerID == 0 {
			return fmt.Errorf("brush %q: missing name or server id", def.Name)
		}
		if _, dup := byName[def.Name]; dup {
			return fmt.Errorf("%w: name %q", ErrDuplicate, def.Name)
		}
		if _, dup := byID[def.ServerID]; dup {
			return fmt.Errorf("%w: server id %d", ErrDuplicate, def.ServerID)
		}
		byName[def.Name] = def
		byID[def.ServerID] = def
		for id := range def.family {
			if def.Group != "" {
				groups[id] = def.Group
			}
			if _, taken := owners[id]; !taken {
				owners[id] = def
			}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID = byID
	c.byName = byName
	c.groupIndex = groups
	c.ownerIndex = owners
	c.version++
	return nil
}

// Version returns the current catalog version. It increments on every
// successful Replace.
func (c *Catalog) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Get returns the brush whose primary id is id.
func (c *Catalog) Get(id tile.ItemID) (*BrushDefinition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.byID[id]
	return def, ok
}

// GetByName returns the brush with the given name.
func (c *Catalog) GetByName(name string) (*BrushDefinition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.byName[name]
	return def, ok
}

// Names returns all brush names. The order is unspecified.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	return names
}

// Len returns the number of registered brushes.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

// Owner returns the brush owning the item id, whether it is the brush's
// primary id, a weighted candidate, an alignment piece, or a border piece.
// When two brushes claim the same id the first registered wins.
func (c *Catalog) Owner(id tile.ItemID) (*BrushDefinition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.ownerIndex[id]
	return def, ok
}

// GroupOfID returns the border group owning the item id, or "".
func (c *Catalog) GroupOfID(id tile.ItemID) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.groupIndex[id]
}

// GroupOf returns the border group of a tile's topmost relevant content:
// the highest stacked item that belongs to any group, else the ground.
// Implements border.Grouper.
func (c *Catalog) GroupOf(t *tile.Tile) string {
	if t == nil {
		return ""
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := len(t.Items) - 1; i >= 0; i-- {
		if g, ok := c.groupIndex[t.Items[i].ID]; ok {
			return g
		}
	}
	if t.Ground != nil {
		return c.groupIndex[t.Ground.ID]
	}
	return ""
}

// groundGrouper resolves groups from ground items only, ignoring the item
// stack. Ground border analysis uses it so that border items laid down
// during a perimeter pass can never change the masks of later tiles: the
// pass stays order-independent.
type groundGrouper struct{ c *Catalog }

func (g groundGrouper) GroupOf(t *tile.Tile) string {
	if t == nil || t.Ground == nil {
		return ""
	}
	g.c.mu.RLock()
	defer g.c.mu.RUnlock()
	return g.c.groupIndex[t.Ground.ID]
}

// GroundGrouper returns a grouper that only considers ground items.
func (c *Catalog) GroundGrouper() border.Grouper {
	return groundGrouper{c: c}
}
