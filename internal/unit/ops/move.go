package ops

import (
	"fmt"

	"github.com/eykd/unitree-go/internal/unit"
)

// MoveUnitToPosition relocates the unit id (with its subtree) to pos.
//
// The move is a remove followed by an insert, run as one chain, so no
// intermediate state escapes. It is a silent no-op when id is its own target
// parent, when id or pos.RootID does not resolve, or when the unit already
// sits at pos. Moving a unit into its own subtree and policy violations emit
// unitMoveFailed. The moved unit is selected. A nil pos appends to the root list but is validated as an
// unspecified target.
func MoveUnitToPosition(h unit.Host, id string, pos *unit.Position) (unit.State, error) {
	st := h.State()
	target := pos
	if target == nil {
		target = unit.Append("")
	}
	if id == target.RootID {
		return st, nil
	}
	n, ok := unit.FindUnitByID(st, id)
	if !ok {
		return st, nil
	}
	if target.RootID != "" {
		if _, ok := unit.FindUnitByID(st, target.RootID); !ok {
			return st, nil
		}
	}
	if target.Index != nil && *target.Index < 0 {
		return st, fmt.Errorf("move unit %q to index %d: %w", id, *target.Index, unit.ErrIndexOutOfRange)
	}
	if atLocation(st, id, target) {
		return st, nil
	}
	if unit.IsDescendant(st, id, target.RootID) {
		return deny(h, unit.CodeUnitMoveFailed, unit.Result{Reason: unit.ReasonMoveIntoDescendant}, n), nil
	}
	if r := unit.ValidateUnitMove(h, n, pos); !r.Valid {
		return deny(h, unit.CodeUnitMoveFailed, r, n), nil
	}
	return NewChain(h).
		ReportAs(unit.CodeUnitMoveFailed).
		RemoveUnit(id).
		InsertUnit([]*unit.Node{n}, target).
		SelectUnit(id).
		Run()
}

// atLocation reports whether moving id to target would leave it where it is.
func atLocation(st unit.State, id string, target *unit.Position) bool {
	loc, ok := unit.FindUnitPosition(st, id)
	if !ok || loc.RootID != target.RootID {
		return false
	}
	if target.Index != nil {
		return *target.Index == loc.Index
	}
	return unit.IsLastIndexUnit(st, id)
}

// MoveUpUnit moves id one slot towards the start of its list. At index 0
// the move fails with unit.ErrIndexOutOfRange.
func MoveUpUnit(h unit.Host, id string) (unit.State, error) {
	loc, ok := unit.FindUnitPosition(h.State(), id)
	if !ok {
		return h.State(), nil
	}
	return MoveUnitToPosition(h, id, unit.At(loc.Index-1, loc.RootID))
}

// MoveDownUnit moves id one slot towards the end of its list. For the last
// unit the move fails with unit.ErrIndexOutOfRange.
func MoveDownUnit(h unit.Host, id string) (unit.State, error) {
	loc, ok := unit.FindUnitPosition(h.State(), id)
	if !ok {
		return h.State(), nil
	}
	return MoveUnitToPosition(h, id, unit.At(loc.Index+1, loc.RootID))
}
