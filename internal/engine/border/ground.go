package border

import "github.com/mapsmith/mapsmith/internal/engine/tile"

// StandardGroundRules builds the rules for a classic ground border set
// from its alignment pieces. Bits mean "same terrain present there"; a
// border piece is drawn toward the sides where the terrain is absent.
//
// Precedence, most specific first: inner corners (two sides present,
// diagonal between them missing), outer corners (two adjacent sides
// missing), then single edges. The emission order below is the tie-break
// order and must stay stable.
func StandardGroundRules(pieces map[Orientation]tile.ItemID) []Rule {
	var rules []Rule
	add := func(o Orientation, required, forbidden Mask) {
		id, ok := pieces[o]
		if !ok {
			return
		}
		rules = append(rules, Rule{
			Mask:        required,
			Forbidden:   forbidden,
			Wildcard:    true,
			ItemID:      id,
			Orientation: o,
		})
	}

	add(OrientInnerNE, BitN|BitE, BitNE)
	add(OrientInnerNW, BitN|BitW, BitNW)
	add(OrientInnerSE, BitS|BitE, BitSE)
	add(OrientInnerSW, BitS|BitW, BitSW)

	add(OrientCornerNE, 0, BitN|BitE)
	add(OrientCornerNW, 0, BitN|BitW)
	add(OrientCornerSE, 0, BitS|BitE)
	add(OrientCornerSW, 0, BitS|BitW)

	add(OrientNorth, 0, BitN)
	add(OrientEast, 0, BitE)
	add(OrientSouth, 0, BitS)
	add(OrientWest, 0, BitW)

	return rules
}

// StandardTransitionRules builds the rules for an inner transition
// border toward another terrain. Here bits mean "transition target present
// there", so pieces are chosen toward present neighbors: corners when two
// adjacent sides match, then single edges, then any corner piece for
// diagonal-only contact.
func StandardTransitionRules(pieces map[Orientation]tile.ItemID) []Rule {
	var rules []Rule
	add := func(o Orientation, required Mask) {
		id, ok := pieces[o]
		if !ok {
			return
		}
		rules = append(rules, Rule{
			Mask:        required,
			Wildcard:    true,
			ItemID:      id,
			Orientation: o,
		})
	}

	add(OrientCornerNE, BitN|BitE)
	add(OrientCornerNW, BitN|BitW)
	add(OrientCornerSE, BitS|BitE)
	add(OrientCornerSW, BitS|BitW)

	add(OrientNorth, BitN)
	add(OrientEast, BitE)
	add(OrientSouth, BitS)
	add(OrientWest, BitW)

	// Diagonal-only contact degrades to the first corner piece the set
	// defines, regardless of which diagonal matched.
	for _, o := range []Orientation{OrientCornerNE, OrientCornerNW, OrientCornerSE, OrientCornerSW} {
		id, ok := pieces[o]
		if !ok {
			continue
		}
		for _, diag := range []Mask{BitNE, BitNW, BitSE, BitSW} {
			rules = append(rules, Rule{
				Mask:        diag,
				Wildcard:    true,
				ItemID:      id,
				Orientation: o,
			})
		}
		break
	}

	return rules
}
