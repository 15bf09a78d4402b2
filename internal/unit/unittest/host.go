// Package unittest provides an in-memory unit.Host and tree builders for
// tests of the unit packages.
package unittest

import (
	"fmt"

	"github.com/eykd/unitree-go/internal/unit"
)

// Host is a recording unit.Host. Unknown unit types resolve to a permissive
// policy unless Strict is set.
type Host struct {
	St     unit.State
	Defs   map[string]unit.Policy
	Events []unit.ErrorEvent
	Strict bool

	nextID int
}

// New returns a Host whose tree is units with an empty selection.
func New(units ...*unit.Node) *Host {
	if units == nil {
		units = []*unit.Node{}
	}
	return &Host{
		St:   unit.State{Units: units, SelectedUnitIDs: []string{}},
		Defs: make(map[string]unit.Policy),
	}
}

// Define registers policies and returns h for chaining.
func (h *Host) Define(policies ...unit.Policy) *Host {
	for _, p := range policies {
		h.Defs[p.Type] = p
	}
	return h
}

// Select sets the selection and returns h for chaining.
func (h *Host) Select(ids ...string) *Host {
	h.St.SelectedUnitIDs = ids
	return h
}

// Commit makes st the current state.
func (h *Host) Commit(st unit.State) {
	h.St = st
}

// State implements unit.Host.
func (h *Host) State() unit.State { return h.St }

// FindUnitDef implements unit.Host.
func (h *Host) FindUnitDef(unitType string) (unit.Policy, bool) {
	if p, ok := h.Defs[unitType]; ok {
		return p, true
	}
	if h.Strict {
		return unit.Policy{}, false
	}
	return unit.Policy{Type: unitType}, true
}

// GenerateUnitID implements unit.Host, returning "gen-1", "gen-2", ...
func (h *Host) GenerateUnitID() string {
	h.nextID++
	return fmt.Sprintf("gen-%d", h.nextID)
}

// Emit implements unit.Host by recording error events.
func (h *Host) Emit(_ string, payload unit.ErrorEvent) {
	h.Events = append(h.Events, payload)
}

// Flatten implements unit.Host.
func (h *Host) Flatten(units []*unit.Node) []*unit.Node {
	return unit.Flatten(units)
}

// LastCode returns the code of the most recent event, or "".
func (h *Host) LastCode() string {
	if len(h.Events) == 0 {
		return ""
	}
	return h.Events[len(h.Events)-1].Code
}

// N builds a node of the given type with children. The children slice is
// never nil.
func N(id, unitType string, children ...*unit.Node) *unit.Node {
	if children == nil {
		children = []*unit.Node{}
	}
	return &unit.Node{ID: id, Type: unitType, Status: unit.StatusOpen, Children: children}
}

// IDs returns the ids of list in order.
func IDs(list []*unit.Node) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.ID
	}
	return out
}

// Outline renders the tree as "a(b,c),d" for compact assertions.
func Outline(list []*unit.Node) string {
	s := ""
	for i, n := range list {
		if i > 0 {
			s += ","
		}
		s += n.ID
		if len(n.Children) > 0 {
			s += "(" + Outline(n.Children) + ")"
		}
	}
	return s
}
