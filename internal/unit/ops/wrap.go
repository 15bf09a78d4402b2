package ops

import (
	"github.com/eykd/unitree-go/internal/unit"
)

// WrapUnits moves the units ids into wrapper and puts wrapper where the
// first of them was. The wrapped units keep their tree order regardless of
// the order of ids; wrapper's own children are replaced.
//
// Empty ids and ids that do not resolve are silent no-ops. Units that do
// not share a parent, are not contiguous, or may not be nested or moved
// emit wrapUnitsFailed. The wrapper is selected.
func WrapUnits(h unit.Host, wrapper *unit.Node, ids []string) (unit.State, error) {
	st := h.State()
	ids = unit.UniqueIDs(ids)
	if len(ids) == 0 {
		return st, nil
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := unit.FindUnitByID(st, id); !ok {
			return st, nil
		}
		wanted[id] = struct{}{}
	}
	if r := unit.ValidateUnitWrap(h, ids); !r.Valid {
		return deny(h, unit.CodeWrapUnitsFailed, r, wrapper), nil
	}

	first, _ := unit.FindUnitPosition(st, ids[0])
	siblings := st.Units
	if first.RootID != "" {
		parent, _ := unit.FindUnitByID(st, first.RootID)
		siblings = parent.Children
	}
	children := make([]*unit.Node, 0, len(ids))
	start := -1
	for i, n := range siblings {
		if _, ok := wanted[n.ID]; ok {
			if start < 0 {
				start = i
			}
			children = append(children, n)
		}
	}

	pos := unit.At(start, first.RootID)
	if r := unit.ValidateUnitInsert(h, wrapper, pos); !r.Valid {
		return deny(h, unit.CodeWrapUnitsFailed, r, wrapper), nil
	}

	w := *wrapper
	w.Children = children
	return NewChain(h).
		ReportAs(unit.CodeWrapUnitsFailed).
		RemoveUnit(ids...).
		InsertUnit([]*unit.Node{&w}, pos).
		SelectUnit(w.ID).
		Run()
}

// WrapSelectedUnits wraps the current selection into wrapper.
func WrapSelectedUnits(h unit.Host, wrapper *unit.Node) (unit.State, error) {
	return WrapUnits(h, wrapper, unit.GetSelectedUnitIDs(h.State()))
}

// UnwrapUnit replaces the unit id by its children, in order, at id's
// former position. A missing id is a silent no-op; a unit without children
// or whose children may not change hierarchy emits unwrapUnitFailed. The
// first former child is selected.
func UnwrapUnit(h unit.Host, id string) (unit.State, error) {
	st := h.State()
	n, ok := unit.FindUnitByID(st, id)
	if !ok {
		return st, nil
	}
	if r := unit.ValidateUnitUnwrap(h, n); !r.Valid {
		return deny(h, unit.CodeUnwrapUnitFailed, r, n), nil
	}
	loc, _ := unit.FindUnitPosition(st, id)
	return NewChain(h).
		ReportAs(unit.CodeUnwrapUnitFailed).
		RemoveUnit(id).
		InsertUnit(n.Children, loc.Position()).
		SelectUnit(n.Children[0].ID).
		Run()
}
