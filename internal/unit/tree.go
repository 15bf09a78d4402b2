package unit

import "slices"

// Flatten returns units linearised depth-first, parent before children.
func Flatten(units []*Node) []*Node {
	out := make([]*Node, 0, len(units))
	var walk func([]*Node)
	walk = func(list []*Node) {
		for _, n := range list {
			out = append(out, n)
			walk(n.Children)
		}
	}
	walk(units)
	return out
}

// Walk visits every node depth-first, parent before children. parentID is
// "" for root-level nodes. Walk stops as soon as fn returns false and
// reports whether the walk ran to completion.
func Walk(units []*Node, fn func(n *Node, parentID string, index int) bool) bool {
	return walkList(units, "", fn)
}

func walkList(list []*Node, parentID string, fn func(*Node, string, int) bool) bool {
	for i, n := range list {
		if !fn(n, parentID, i) {
			return false
		}
		if !walkList(n.Children, n.ID, fn) {
			return false
		}
	}
	return true
}

// CollectIDs returns the set of ids present in units (all depths).
func CollectIDs(units []*Node) map[string]struct{} {
	ids := make(map[string]struct{})
	Walk(units, func(n *Node, _ string, _ int) bool {
		ids[n.ID] = struct{}{}
		return true
	})
	return ids
}

// ContainsUnitType reports whether any node in units (all depths) has the
// given type.
func ContainsUnitType(units []*Node, unitType string) bool {
	return !Walk(units, func(n *Node, _ string, _ int) bool {
		return n.Type != unitType
	})
}

// Clone returns a deep copy of n with identical ids. Nil Children and
// Attributes are normalised to empty values.
func (n *Node) Clone() *Node {
	c := *n
	c.Attributes = CloneAttributes(n.Attributes)
	c.Children = make([]*Node, len(n.Children))
	for i, child := range n.Children {
		c.Children[i] = child.Clone()
	}
	return &c
}

// CloneNodes deep-copies every node in list.
func CloneNodes(list []*Node) []*Node {
	out := make([]*Node, len(list))
	for i, n := range list {
		out[i] = n.Clone()
	}
	return out
}

// CloneAttributes deep-copies an attribute mapping. Nested maps and lists
// are copied; scalars are shared.
func CloneAttributes(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies a single attribute value.
func CloneValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return CloneAttributes(tv)
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = CloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), tv...)
	default:
		return v
	}
}

// Normalize returns st with nil Units, SelectedUnitIDs and Children
// replaced by empty slices. Nodes that need no change are shared.
func Normalize(st State) State {
	if st.Units == nil {
		st.Units = []*Node{}
	}
	if st.SelectedUnitIDs == nil {
		st.SelectedUnitIDs = []string{}
	}
	st.Units, _ = normalizeList(st.Units)
	return st
}

func normalizeList(list []*Node) ([]*Node, bool) {
	var out []*Node
	for i, n := range list {
		children, changed := normalizeList(n.Children)
		if n.Children == nil {
			children, changed = []*Node{}, true
		}
		if !changed {
			continue
		}
		if out == nil {
			out = slices.Clone(list)
		}
		c := *n
		c.Children = children
		out[i] = &c
	}
	if out == nil {
		return list, false
	}
	return out, true
}
