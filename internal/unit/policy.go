package unit

// Capability is a per-type structural permission. It is either a static
// boolean or a predicate evaluated against a concrete unit. The zero value
// is an unspecified capability and resolves to true.
type Capability struct {
	fn     func(n *Node, h Host) bool
	value  bool
	static bool
}

// Static returns a Capability that always resolves to v.
func Static(v bool) Capability {
	return Capability{value: v, static: true}
}

// Dynamic returns a Capability that resolves by calling fn.
// A nil fn behaves like an unspecified capability.
func Dynamic(fn func(n *Node, h Host) bool) Capability {
	return Capability{fn: fn}
}

// Resolve evaluates the capability for n.
func (c Capability) Resolve(n *Node, h Host) bool {
	switch {
	case c.static:
		return c.value
	case c.fn != nil:
		return c.fn(n, h)
	default:
		return true
	}
}

// IsDynamic reports whether the capability depends on the unit instance.
func (c Capability) IsDynamic() bool {
	return !c.static && c.fn != nil
}

// Policy declares the structural capabilities of one unit type.
type Policy struct {
	Type          string
	Nested        Capability // may be placed as a child of another unit
	Multiple      Capability // may occur more than once in the tree
	Duplicate     Capability // may be duplicated
	MoveHierarchy Capability // may move to a different parent
}
