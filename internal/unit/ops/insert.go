package ops

import (
	"fmt"

	"github.com/eykd/unitree-go/internal/unit"
)

// InsertUnit inserts units at pos (nil appends to the root list) and selects
// the first inserted unit.
//
// The batch is all-or-nothing: if a top-level unit fails nesting, or any
// unit of the inserted subtrees fails multiplicity, a unitInsertFailed event
// is emitted and the current state is returned. A negative index is rejected before validation and an index past
// the end of the target list is rejected at splice time, both with
// unit.ErrIndexOutOfRange. An unresolvable pos.RootID is a silent no-op and
// is checked before ids are tested for collisions.
func InsertUnit(h unit.Host, units []*unit.Node, pos *unit.Position) (unit.State, error) {
	st := h.State()
	if len(units) == 0 {
		return st, nil
	}
	if pos != nil && pos.Index != nil && *pos.Index < 0 {
		return st, fmt.Errorf("insert unit at index %d: %w", *pos.Index, unit.ErrIndexOutOfRange)
	}

	var (
		rootID string
		index  *int
	)
	if pos != nil {
		rootID, index = pos.RootID, pos.Index
	}
	if rootID != "" {
		if _, ok := unit.FindUnitByID(st, rootID); !ok {
			return st, nil
		}
	}

	nodes := unit.CloneNodes(units)
	for _, n := range nodes {
		if r := unit.ValidateUnitInsert(h, n, pos); !r.Valid {
			return deny(h, unit.CodeUnitInsertFailed, r, n), nil
		}
	}
	if n := repeatedSingleton(h, st.Units, nodes); n != nil {
		return deny(h, unit.CodeUnitInsertFailed, unit.Result{Reason: unit.ReasonMultipleNotAllowed}, n), nil
	}

	if err := checkFreshIDs(st.Units, nodes); err != nil {
		return st, err
	}

	out, found, err := spliceInto(st.Units, rootID, index, nodes)
	if err != nil {
		return st, err
	}
	if !found {
		return st, nil
	}
	return unit.State{Units: out, SelectedUnitIDs: []string{nodes[0].ID}}, nil
}

// InsertAfterUnit inserts units directly after the unit id, under the same
// parent. A missing id is a silent no-op.
func InsertAfterUnit(h unit.Host, id string, units []*unit.Node) (unit.State, error) {
	loc, ok := unit.FindUnitPosition(h.State(), id)
	if !ok {
		return h.State(), nil
	}
	return InsertUnit(h, units, unit.At(loc.Index+1, loc.RootID))
}

// InsertBeforeUnit inserts units directly before the unit id, under the same
// parent. A missing id is a silent no-op.
func InsertBeforeUnit(h unit.Host, id string, units []*unit.Node) (unit.State, error) {
	loc, ok := unit.FindUnitPosition(h.State(), id)
	if !ok {
		return h.State(), nil
	}
	return InsertUnit(h, units, unit.At(loc.Index, loc.RootID))
}

// repeatedSingleton returns the first node, at any depth of the batch, whose
// type allows a single instance that already exists in tree or earlier in
// the batch.
func repeatedSingleton(h unit.Host, tree, nodes []*unit.Node) *unit.Node {
	var repeated *unit.Node
	seen := make(map[string]bool)
	unit.Walk(nodes, func(n *unit.Node, _ string, _ int) bool {
		def, ok := h.FindUnitDef(n.Type)
		if !ok || def.Multiple.Resolve(n, h) {
			return true
		}
		if seen[n.Type] || unit.ContainsUnitType(tree, n.Type) {
			repeated = n
			return false
		}
		seen[n.Type] = true
		return true
	})
	return repeated
}

// checkFreshIDs fails when any id in nodes (all depths) is already present
// in the tree or repeated within the batch.
func checkFreshIDs(tree []*unit.Node, nodes []*unit.Node) error {
	existing := unit.CollectIDs(tree)
	var dup string
	fresh := unit.Walk(nodes, func(n *unit.Node, _ string, _ int) bool {
		if _, taken := existing[n.ID]; taken {
			dup = n.ID
			return false
		}
		existing[n.ID] = struct{}{}
		return true
	})
	if !fresh {
		return fmt.Errorf("insert unit %q: %w", dup, unit.ErrDuplicateUnitID)
	}
	return nil
}
