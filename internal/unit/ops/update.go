package ops

import "github.com/eykd/unitree-go/internal/unit"

// Patch lists the fields UpdateUnit merges onto a unit. Nil fields are left
// untouched. Attributes replaces the whole mapping; use SetUnitAttributes to
// merge keys instead.
type Patch struct {
	Status     *unit.Status
	Collapsed  *bool
	Align      *string
	Group      *string
	Anker      *string
	Attributes map[string]any
}

// UpdateUnit shallow-merges p onto the unit id. The tree shape and the
// selection are unchanged; a missing id leaves the state as it is.
func UpdateUnit(h unit.Host, id string, p Patch) unit.State {
	st := h.State()
	out, found := rewriteNode(st.Units, id, func(n *unit.Node) *unit.Node {
		c := *n
		if p.Status != nil {
			c.Status = *p.Status
		}
		if p.Collapsed != nil {
			c.Collapsed = *p.Collapsed
		}
		if p.Align != nil {
			c.Align = *p.Align
		}
		if p.Group != nil {
			c.Group = *p.Group
		}
		if p.Anker != nil {
			c.Anker = *p.Anker
		}
		if p.Attributes != nil {
			c.Attributes = unit.CloneAttributes(p.Attributes)
		}
		return &c
	})
	if !found {
		return st
	}
	return unit.State{Units: out, SelectedUnitIDs: st.SelectedUnitIDs}
}

// SetUnitStatus sets the open/close flag of id.
func SetUnitStatus(h unit.Host, id string, status unit.Status) unit.State {
	return UpdateUnit(h, id, Patch{Status: &status})
}

// SetUnitAlign sets the alignment metadata of id.
func SetUnitAlign(h unit.Host, id, align string) unit.State {
	return UpdateUnit(h, id, Patch{Align: &align})
}

// SetUnitGroup sets the group metadata of id.
func SetUnitGroup(h unit.Host, id, group string) unit.State {
	return UpdateUnit(h, id, Patch{Group: &group})
}

// SetUnitCollapsed sets the collapsed UI flag of id.
func SetUnitCollapsed(h unit.Host, id string, collapsed bool) unit.State {
	return UpdateUnit(h, id, Patch{Collapsed: &collapsed})
}

// SetUnitAnker sets the anchor metadata of id.
func SetUnitAnker(h unit.Host, id, anker string) unit.State {
	return UpdateUnit(h, id, Patch{Anker: &anker})
}

// SetUnitAttributes merges attrs into the existing attributes of id.
func SetUnitAttributes(h unit.Host, id string, attrs map[string]any) unit.State {
	n, ok := unit.FindUnitByID(h.State(), id)
	if !ok {
		return h.State()
	}
	merged := unit.CloneAttributes(n.Attributes)
	for k, v := range attrs {
		merged[k] = unit.CloneValue(v)
	}
	return UpdateUnit(h, id, Patch{Attributes: merged})
}

// ToggleUnitStatus flips id between open and close.
func ToggleUnitStatus(h unit.Host, id string) unit.State {
	n, ok := unit.FindUnitByID(h.State(), id)
	if !ok {
		return h.State()
	}
	next := unit.StatusClose
	if n.Status == unit.StatusClose {
		next = unit.StatusOpen
	}
	return SetUnitStatus(h, id, next)
}

// ToggleUnitCollapsed flips the collapsed flag of id.
func ToggleUnitCollapsed(h unit.Host, id string) unit.State {
	n, ok := unit.FindUnitByID(h.State(), id)
	if !ok {
		return h.State()
	}
	return SetUnitCollapsed(h, id, !n.Collapsed)
}
