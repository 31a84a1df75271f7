package stroke

import (
	"errors"
	"fmt"

	"github.com/mapsmith/mapsmith/internal/engine/tile"
)

// Error kinds for stroke application. InvalidBrush and OutOfBounds are
// caught before any write; IncompatibleTile aborts mid-stroke and rolls the
// store back; RuleTableCorrupt never aborts a stroke and only appears in
// logs.
var (
	ErrInvalidBrush     = errors.New("invalid brush")
	ErrOutOfBounds      = errors.New("position out of bounds")
	ErrIncompatibleTile = errors.New("brush incompatible with tile")
	ErrRuleTableCorrupt = errors.New("rule table corrupt")
)

// Error is a stroke failure pinned to the position it happened at.
type Error struct {
	Pos tile.Position
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("stroke at %s: %v", e.Pos, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errAt(pos tile.Position, err error) *Error {
	return &Error{Pos: pos, Err: err}
}
