package ops

import (
	"fmt"
	"slices"

	"github.com/eykd/unitree-go/internal/unit"
)

// rewriteNode replaces the node with the given id by fn(node). Every
// ancestor on the path is copied; untouched subtrees are shared. Returns the
// input list unchanged and false when id is not present.
func rewriteNode(list []*unit.Node, id string, fn func(n *unit.Node) *unit.Node) ([]*unit.Node, bool) {
	for i, n := range list {
		if n.ID == id {
			out := slices.Clone(list)
			out[i] = fn(n)
			return out, true
		}
		if children, ok := rewriteNode(n.Children, id, fn); ok {
			c := *n
			c.Children = children
			out := slices.Clone(list)
			out[i] = &c
			return out, true
		}
	}
	return list, false
}

// spliceInto inserts nodes into the children of rootID ("" = root list) at
// index (nil = append). The bool result is false when rootID does not
// resolve; the error wraps unit.ErrIndexOutOfRange for an overflowing index.
func spliceInto(list []*unit.Node, rootID string, index *int, nodes []*unit.Node) ([]*unit.Node, bool, error) {
	if rootID == "" {
		out, err := spliceList(list, index, nodes)
		if err != nil {
			return list, true, err
		}
		return out, true, nil
	}
	var spliceErr error
	out, found := rewriteNode(list, rootID, func(parent *unit.Node) *unit.Node {
		children, err := spliceList(parent.Children, index, nodes)
		if err != nil {
			spliceErr = err
			return parent
		}
		c := *parent
		c.Children = children
		return &c
	})
	if spliceErr != nil {
		return list, true, spliceErr
	}
	return out, found, nil
}

// spliceList returns a new list with nodes inserted at index.
func spliceList(list []*unit.Node, index *int, nodes []*unit.Node) ([]*unit.Node, error) {
	at := len(list)
	if index != nil {
		at = *index
	}
	if at < 0 || at > len(list) {
		return nil, fmt.Errorf("insert at index %d into %d units: %w", at, len(list), unit.ErrIndexOutOfRange)
	}
	out := make([]*unit.Node, 0, len(list)+len(nodes))
	out = append(out, list[:at]...)
	out = append(out, nodes...)
	out = append(out, list[at:]...)
	return out, nil
}

// filterTree drops every node whose id is in ids, together with its
// subtree. Lists without removals are returned as-is.
func filterTree(list []*unit.Node, ids map[string]struct{}) ([]*unit.Node, bool) {
	out := make([]*unit.Node, 0, len(list))
	changed := false
	for _, n := range list {
		if _, drop := ids[n.ID]; drop {
			changed = true
			continue
		}
		if children, childChanged := filterTree(n.Children, ids); childChanged {
			c := *n
			c.Children = children
			n = &c
			changed = true
		}
		out = append(out, n)
	}
	if !changed {
		return list, false
	}
	return out, true
}

// deny reports a policy denial through the host and returns the unchanged
// state.
func deny(h unit.Host, code string, r unit.Result, n *unit.Node) unit.State {
	h.Emit(unit.EventError, unit.ErrorEvent{
		Editor:  h,
		Code:    code,
		Message: r.Reason,
		Unit:    n,
	})
	return h.State()
}
