package unit

import (
	"fmt"
	"slices"
)

// FindUnitByID returns the unit with the given id, searching depth-first
// from the root.
func FindUnitByID(st State, id string) (*Node, bool) {
	return findInList(st.Units, id)
}

func findInList(list []*Node, id string) (*Node, bool) {
	for _, n := range list {
		if n.ID == id {
			return n, true
		}
		if found, ok := findInList(n.Children, id); ok {
			return found, true
		}
	}
	return nil, false
}

// FindUnitPosition returns the index of id within its containing list and
// the id of that list's owner ("" at root level). The root list is searched
// before any nested list.
func FindUnitPosition(st State, id string) (Location, bool) {
	return findPositionInList(st.Units, "", id)
}

func findPositionInList(list []*Node, rootID, id string) (Location, bool) {
	for i, n := range list {
		if n.ID == id {
			return Location{Index: i, RootID: rootID}, true
		}
	}
	for _, n := range list {
		if loc, ok := findPositionInList(n.Children, n.ID, id); ok {
			return loc, true
		}
	}
	return Location{}, false
}

// FindUnitIndex returns the index of id within its containing list.
// Unlike FindUnitPosition it fails with ErrUnitNotFound when id is absent.
func FindUnitIndex(st State, id string) (int, error) {
	loc, ok := FindUnitPosition(st, id)
	if !ok {
		return 0, fmt.Errorf("find unit index %q: %w", id, ErrUnitNotFound)
	}
	return loc.Index, nil
}

// FindParentUnit returns the immediate parent of id. It reports false both
// when id is at root level and when id does not exist.
func FindParentUnit(st State, id string) (*Node, bool) {
	loc, ok := FindUnitPosition(st, id)
	if !ok || loc.RootID == "" {
		return nil, false
	}
	return FindUnitByID(st, loc.RootID)
}

// siblingsOf returns the list that contains id.
func siblingsOf(st State, id string) ([]*Node, bool) {
	loc, ok := FindUnitPosition(st, id)
	if !ok {
		return nil, false
	}
	if loc.RootID == "" {
		return st.Units, true
	}
	parent, ok := FindUnitByID(st, loc.RootID)
	if !ok {
		return nil, false
	}
	return parent.Children, true
}

// IsFirstIndexUnit reports whether id is the first of its siblings.
func IsFirstIndexUnit(st State, id string) bool {
	siblings, ok := siblingsOf(st, id)
	return ok && len(siblings) > 0 && siblings[0].ID == id
}

// IsLastIndexUnit reports whether id is the last of its siblings.
func IsLastIndexUnit(st State, id string) bool {
	siblings, ok := siblingsOf(st, id)
	return ok && len(siblings) > 0 && siblings[len(siblings)-1].ID == id
}

// IsFirstPositionUnit reports whether id is the first unit of the whole
// document. Nested units are never at the first position, even when they
// are first among their siblings.
func IsFirstPositionUnit(st State, id string) bool {
	loc, ok := FindUnitPosition(st, id)
	return ok && loc.RootID == "" && loc.Index == 0
}

// IsLastPositionUnit reports whether id is the last root-level unit.
// Nested units always report false.
func IsLastPositionUnit(st State, id string) bool {
	loc, ok := FindUnitPosition(st, id)
	return ok && loc.RootID == "" && loc.Index == len(st.Units)-1
}

// GetSelectedUnitIDs returns the selected ids in selection order.
func GetSelectedUnitIDs(st State) []string {
	return st.SelectedUnitIDs
}

// IsSelectedUnit reports whether id is part of the selection.
func IsSelectedUnit(st State, id string) bool {
	return slices.Contains(st.SelectedUnitIDs, id)
}

// GetSelectedUnits resolves the selection to nodes, silently dropping ids
// that no longer exist.
func GetSelectedUnits(st State) []*Node {
	out := make([]*Node, 0, len(st.SelectedUnitIDs))
	for _, id := range st.SelectedUnitIDs {
		if n, ok := FindUnitByID(st, id); ok {
			out = append(out, n)
		}
	}
	return out
}

// GetNextUnit returns the unit after the first selected unit in flattened
// order, wrapping from the last unit to the first. With no (resolvable)
// selection it returns the first unit. It reports false only for an empty
// tree.
func GetNextUnit(h Host) (*Node, bool) {
	return stepUnit(h, 1)
}

// GetPreviousUnit is the mirror of GetNextUnit: it wraps from the first
// unit to the last and returns the last unit when nothing is selected.
func GetPreviousUnit(h Host) (*Node, bool) {
	return stepUnit(h, -1)
}

func stepUnit(h Host, step int) (*Node, bool) {
	st := h.State()
	flat := h.Flatten(st.Units)
	if len(flat) == 0 {
		return nil, false
	}
	current := -1
	if len(st.SelectedUnitIDs) > 0 {
		current = slices.IndexFunc(flat, func(n *Node) bool { return n.ID == st.SelectedUnitIDs[0] })
	}
	if current < 0 {
		if step > 0 {
			return flat[0], true
		}
		return flat[len(flat)-1], true
	}
	next := (current + step + len(flat)) % len(flat)
	return flat[next], true
}

// IsDescendant reports whether id lies strictly inside the subtree rooted
// at ancestorID.
func IsDescendant(st State, ancestorID, id string) bool {
	ancestor, ok := FindUnitByID(st, ancestorID)
	if !ok {
		return false
	}
	_, found := findInList(ancestor.Children, id)
	return found
}

// CanInsertUnit reports whether n could be inserted at pos.
func CanInsertUnit(h Host, n *Node, pos *Position) bool {
	return ValidateUnitInsert(h, n, pos).Valid
}

// CanDuplicateUnit reports whether the unit id could be duplicated.
func CanDuplicateUnit(h Host, id string) bool {
	n, ok := FindUnitByID(h.State(), id)
	return ok && ValidateUnitDuplicate(h, n).Valid
}

// CanMoveUnit reports whether the unit id could be moved to pos.
func CanMoveUnit(h Host, id string, pos *Position) bool {
	n, ok := FindUnitByID(h.State(), id)
	return ok && ValidateUnitMove(h, n, pos).Valid
}

// CanUnwrapUnit reports whether the unit id could be unwrapped.
func CanUnwrapUnit(h Host, id string) bool {
	n, ok := FindUnitByID(h.State(), id)
	return ok && ValidateUnitUnwrap(h, n).Valid
}

// CanWrapUnit reports whether ids could be wrapped into a new group.
func CanWrapUnit(h Host, ids []string) bool {
	return ValidateUnitWrap(h, ids).Valid
}
