package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/mapsmith/mapsmith/internal/engine/border"
	"github.com/mapsmith/mapsmith/internal/engine/tile"
)

// ErrInvalidCatalog reports a catalog file the parser cannot accept.
var ErrInvalidCatalog = errors.New("invalid brush catalog")

// LoadFile parses a brush catalog JSON file and replaces the catalog's
// contents.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading catalog %s: %w", path, err)
	}
	defs, err := Parse(data)
	if err != nil {
		return fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return c.Replace(defs)
}

// Parse parses catalog JSON into brush definitions.
//
// Layout:
//
//	{
//	  "brushes": [
//	    {
//	      "name": "grass", "kind": "ground", "server_id": 4526,
//	      "group": "grass", "diagonal": true, "draggable": true,
//	      "candidates": [{"id": 4526, "weight": 10}],
//	      "borders": {"NORTH": 4528, "CORNER_NE": 4531, ...},
//	      "border_rules": [{"mask": "N|E", "item": 4610, "orientation": "INNER_NE"}],
//	      "transitions": {"water": {"NORTH": 4632, ...}},
//	      "align": {"HORIZONTAL": 5046, ...}
//	    }
//	  ]
//	}
//
// "borders" expands into the standard ground rule set; "border_rules" adds
// explicit override rules, which take precedence because exact rules are
// matched before wildcards and earlier wildcard rules win ties.
func Parse(data []byte) ([]*BrushDefinition, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidCatalog)
	}
	root := gjson.ParseBytes(data)
	brushes := root.Get("brushes")
	if !brushes.IsArray() {
		return nil, fmt.Errorf("%w: missing brushes array", ErrInvalidCatalog)
	}

	var defs []*BrushDefinition
	var parseErr error
	brushes.ForEach(func(_, b gjson.Result) bool {
		def, err := parseBrush(b)
		if err != nil {
			parseErr = err
			return false
		}
		defs = append(defs, def)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return defs, nil
}

func parseBrush(b gjson.Result) (*BrushDefinition, error) {
	name := b.Get("name").String()
	if name == "" {
		return nil, fmt.Errorf("%w: brush without name", ErrInvalidCatalog)
	}

	kind, ok := ParseKind(b.Get("kind").String())
	if !ok {
		return nil, fmt.Errorf("%w: brush %q: unknown kind %q", ErrInvalidCatalog, name, b.Get("kind").String())
	}

	def := &BrushDefinition{
		Name:            name,
		ServerID:        tile.ItemID(b.Get("server_id").Uint()),
		Kind:            kind,
		Group:           b.Get("group").String(),
		DiagonalEnabled: b.Get("diagonal").Bool(),
		Draggable:       b.Get("draggable").Bool(),
		Thickness:       int(b.Get("thickness").Int()),
	}
	if def.ServerID == 0 {
		return nil, fmt.Errorf("%w: brush %q: missing server_id", ErrInvalidCatalog, name)
	}

	b.Get("candidates").ForEach(func(_, c gjson.Result) bool {
		def.Candidates = append(def.Candidates, WeightedItem{
			ID:     tile.ItemID(c.Get("id").Uint()),
			Weight: int(c.Get("weight").Int()),
		})
		return true
	})

	// Explicit override rules come first so they win wildcard ties.
	var rules []border.Rule
	var ruleErr error
	b.Get("border_rules").ForEach(func(_, r gjson.Result) bool {
		rule, err := parseRule(name, r)
		if err != nil {
			ruleErr = err
			return false
		}
		rules = append(rules, rule)
		return true
	})
	if ruleErr != nil {
		return nil, ruleErr
	}

	if borders := b.Get("borders"); borders.IsObject() {
		pieces, err := parsePieces(name, borders)
		if err != nil {
			return nil, err
		}
		rules = append(rules, border.StandardGroundRules(pieces)...)
	}
	if len(rules) > 0 {
		def.Rules = border.NewRuleTable(rules)
	}

	if transitions := b.Get("transitions"); transitions.IsObject() {
		def.Transitions = make(map[string]*border.RuleTable)
		var tErr error
		transitions.ForEach(func(group, t gjson.Result) bool {
			pieces, err := parsePieces(name, t)
			if err != nil {
				tErr = err
				return false
			}
			def.Transitions[group.String()] = border.NewRuleTable(border.StandardTransitionRules(pieces))
			return true
		})
		if tErr != nil {
			return nil, tErr
		}
	}

	if align := b.Get("align"); align.IsObject() {
		def.Align = make(map[border.Orientation]tile.ItemID)
		var aErr error
		align.ForEach(func(key, v gjson.Result) bool {
			o, ok := border.ParseOrientation(key.String())
			if !ok {
				aErr = fmt.Errorf("%w: brush %q: unknown alignment %q", ErrInvalidCatalog, name, key.String())
				return false
			}
			def.Align[o] = tile.ItemID(v.Uint())
			return true
		})
		if aErr != nil {
			return nil, aErr
		}
	}

	def.Seal()
	return def, nil
}

// parsePieces reads an {"ALIGNMENT": item_id} object.
func parsePieces(brush string, obj gjson.Result) (map[border.Orientation]tile.ItemID, error) {
	pieces := make(map[border.Orientation]tile.ItemID)
	var err error
	obj.ForEach(func(key, v gjson.Result) bool {
		o, ok := border.ParseOrientation(key.String())
		if !ok {
			err = fmt.Errorf("%w: brush %q: unknown alignment %q", ErrInvalidCatalog, brush, key.String())
			return false
		}
		pieces[o] = tile.ItemID(v.Uint())
		return true
	})
	if err != nil {
		return nil, err
	}
	return pieces, nil
}

func parseRule(brush string, r gjson.Result) (border.Rule, error) {
	mask, ok := border.ParseMask(r.Get("mask").String())
	if !ok {
		return border.Rule{}, fmt.Errorf("%w: brush %q: bad rule mask %q", ErrInvalidCatalog, brush, r.Get("mask").String())
	}
	forbidden, ok := border.ParseMask(r.Get("forbidden").String())
	if !ok {
		return border.Rule{}, fmt.Errorf("%w: brush %q: bad forbidden mask %q", ErrInvalidCatalog, brush, r.Get("forbidden").String())
	}
	orient := border.OrientNone
	if o := r.Get("orientation"); o.Exists() {
		orient, ok = border.ParseOrientation(o.String())
		if !ok {
			return border.Rule{}, fmt.Errorf("%w: brush %q: unknown orientation %q", ErrInvalidCatalog, brush, o.String())
		}
	}
	return border.Rule{
		Mask:        mask,
		Forbidden:   forbidden,
		Wildcard:    r.Get("wildcard").Bool(),
		ItemID:      tile.ItemID(r.Get("item").Uint()),
		Orientation: orient,
	}, nil
}
