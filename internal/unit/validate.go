package unit

import "slices"

// Result is the outcome of a validator: either valid, or invalid with a
// human-readable reason.
type Result struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func allow() Result { return Result{Valid: true} }

func deny(reason string) Result { return Result{Reason: reason} }

// Denial reasons.
const (
	ReasonDefinitionNotFound                = "unit definition not found"
	ReasonNestingNotAllowed                 = "this unit cannot be nested"
	ReasonMultipleNotAllowed                = "only one unit of this type can exist"
	ReasonDuplicateNotAllowed               = "this unit cannot be duplicated"
	ReasonDescendantDuplicateNotAllowed     = "a unit inside this unit cannot be duplicated"
	ReasonMoveHierarchyNotAllowed           = "this unit cannot be moved to a different hierarchy"
	ReasonDescendantMoveHierarchyNotAllowed = "a unit inside this unit cannot be moved to a different hierarchy"
	ReasonMoveIntoDescendant                = "a unit cannot be moved into itself or its descendants"
	ReasonWrapEmpty                         = "no units to wrap"
	ReasonWrapUnitNotFound                  = "a unit to wrap does not exist"
	ReasonWrapDifferentParents              = "units to wrap must share the same parent"
	ReasonWrapNotContiguous                 = "units to wrap must be contiguous"
	ReasonUnwrapNoChildren                  = "unit has no children to unwrap"
)

// ValidateUnitNesting denies n when its policy forbids it from being a child
// of another unit.
func ValidateUnitNesting(h Host, n *Node) Result {
	def, ok := h.FindUnitDef(n.Type)
	if !ok {
		return deny(ReasonDefinitionNotFound)
	}
	if !def.Nested.Resolve(n, h) {
		return deny(ReasonNestingNotAllowed)
	}
	return allow()
}

// ValidateUnitMultiple denies n when its policy forbids multiple instances
// and a unit of the same type already exists anywhere in the tree.
func ValidateUnitMultiple(h Host, n *Node) Result {
	def, ok := h.FindUnitDef(n.Type)
	if !ok {
		return deny(ReasonDefinitionNotFound)
	}
	if !def.Multiple.Resolve(n, h) && ContainsUnitType(h.State().Units, n.Type) {
		return deny(ReasonMultipleNotAllowed)
	}
	return allow()
}

// ValidateUnitInsert checks nesting (only for a nested target) and then
// multiplicity.
func ValidateUnitInsert(h Host, n *Node, pos *Position) Result {
	if pos != nil && pos.RootID != "" {
		if r := ValidateUnitNesting(h, n); !r.Valid {
			return r
		}
	}
	return ValidateUnitMultiple(h, n)
}

// ValidateUnitDuplicate checks that n and every descendant may be
// duplicated. Duplication is all-or-nothing for a subtree.
func ValidateUnitDuplicate(h Host, n *Node) Result {
	def, ok := h.FindUnitDef(n.Type)
	if !ok {
		return deny(ReasonDefinitionNotFound)
	}
	if !def.Duplicate.Resolve(n, h) {
		return deny(ReasonDuplicateNotAllowed)
	}
	for _, child := range n.Children {
		if r := ValidateUnitDuplicate(h, child); !r.Valid {
			if r.Reason == ReasonDefinitionNotFound {
				return r
			}
			return deny(ReasonDescendantDuplicateNotAllowed)
		}
	}
	return allow()
}

// ValidateUnitMoveHierarchy checks whether n may be relocated to pos.
//
// A move that keeps n under its current parent is a reorder and is always
// permitted. Any other relocation, including one with no position at all,
// requires the moveHierarchy capability on n and on every descendant.
func ValidateUnitMoveHierarchy(h Host, n *Node, pos *Position) Result {
	if _, ok := h.FindUnitDef(n.Type); !ok {
		return deny(ReasonDefinitionNotFound)
	}
	if pos != nil {
		loc, _ := FindUnitPosition(h.State(), n.ID)
		if loc.RootID == pos.RootID {
			return allow()
		}
	}
	return validateCrossHierarchy(h, n, ReasonMoveHierarchyNotAllowed)
}

func validateCrossHierarchy(h Host, n *Node, reason string) Result {
	def, ok := h.FindUnitDef(n.Type)
	if !ok {
		return deny(ReasonDefinitionNotFound)
	}
	if !def.MoveHierarchy.Resolve(n, h) {
		return deny(reason)
	}
	for _, child := range n.Children {
		if r := validateCrossHierarchy(h, child, ReasonDescendantMoveHierarchyNotAllowed); !r.Valid {
			return r
		}
	}
	return allow()
}

// ValidateUnitMove checks nesting (only for a nested target) and then
// moveHierarchy.
func ValidateUnitMove(h Host, n *Node, pos *Position) Result {
	if pos != nil && pos.RootID != "" {
		if r := ValidateUnitNesting(h, n); !r.Valid {
			return r
		}
	}
	return ValidateUnitMoveHierarchy(h, n, pos)
}

// ValidateUnitWrap checks that ids exist, share one parent and form a
// contiguous run in that parent's list, and that every unit may be nested
// and moved across hierarchies.
func ValidateUnitWrap(h Host, ids []string) Result {
	ids = UniqueIDs(ids)
	if len(ids) == 0 {
		return deny(ReasonWrapEmpty)
	}
	st := h.State()
	indices := make([]int, 0, len(ids))
	nodes := make([]*Node, 0, len(ids))
	rootID := ""
	for i, id := range ids {
		loc, ok := FindUnitPosition(st, id)
		if !ok {
			return deny(ReasonWrapUnitNotFound)
		}
		if i == 0 {
			rootID = loc.RootID
		} else if loc.RootID != rootID {
			return deny(ReasonWrapDifferentParents)
		}
		n, _ := FindUnitByID(st, id)
		indices = append(indices, loc.Index)
		nodes = append(nodes, n)
	}
	slices.Sort(indices)
	for i := 1; i < len(indices); i++ {
		if indices[i] != indices[i-1]+1 {
			return deny(ReasonWrapNotContiguous)
		}
	}
	for _, n := range nodes {
		if r := ValidateUnitNesting(h, n); !r.Valid {
			return r
		}
		if r := ValidateUnitMoveHierarchy(h, n, nil); !r.Valid {
			return r
		}
	}
	return allow()
}

// ValidateUnitUnwrap checks that n has children and that they may be
// relocated to n's level.
func ValidateUnitUnwrap(h Host, n *Node) Result {
	if len(n.Children) == 0 {
		return deny(ReasonUnwrapNoChildren)
	}
	return ValidateUnitMoveHierarchy(h, n, nil)
}

// UniqueIDs drops repeated ids, keeping first occurrences in order.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
