package ops

import (
	"fmt"
	"strings"

	"github.com/eykd/unitree-go/internal/unit"
)

// DuplicateUnit inserts a deep copy of id directly after it. Every node of
// the copy receives a fresh id from the host, parent first, and attribute
// keys and string values that embed an old id are rewritten to the new one.
//
// A missing id fails with unit.ErrUnitNotFound. A subtree containing any
// unit that may not be duplicated emits unitDuplicateFailed.
func DuplicateUnit(h unit.Host, id string) (unit.State, error) {
	st := h.State()
	n, ok := unit.FindUnitByID(st, id)
	if !ok {
		return st, fmt.Errorf("duplicate unit %q: %w", id, unit.ErrUnitNotFound)
	}
	if r := unit.ValidateUnitDuplicate(h, n); !r.Valid {
		return deny(h, unit.CodeUnitDuplicateFailed, r, n), nil
	}
	return InsertAfterUnit(h, id, []*unit.Node{cloneWithNewIDs(h, n)})
}

// cloneWithNewIDs deep-copies n, assigning new ids depth-first.
func cloneWithNewIDs(h unit.Host, n *unit.Node) *unit.Node {
	c := *n
	c.ID = h.GenerateUnitID()
	c.Attributes = rekeyAttributes(n.Attributes, n.ID, c.ID)
	c.Children = make([]*unit.Node, len(n.Children))
	for i, child := range n.Children {
		c.Children[i] = cloneWithNewIDs(h, child)
	}
	return &c
}

// rekeyAttributes copies attrs, replacing the last occurrence of oldID with
// newID in every key, string value and string list element. Nested objects
// are copied verbatim.
func rekeyAttributes(attrs map[string]any, oldID, newID string) map[string]any {
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[replaceLast(k, oldID, newID)] = rekeyValue(v, oldID, newID)
	}
	return out
}

func rekeyValue(v any, oldID, newID string) any {
	switch tv := v.(type) {
	case string:
		return replaceLast(tv, oldID, newID)
	case []string:
		out := make([]string, len(tv))
		for i, s := range tv {
			out[i] = replaceLast(s, oldID, newID)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			if s, ok := e.(string); ok {
				out[i] = replaceLast(s, oldID, newID)
				continue
			}
			out[i] = unit.CloneValue(e)
		}
		return out
	default:
		return unit.CloneValue(v)
	}
}

// replaceLast replaces only the last occurrence of old in s.
func replaceLast(s, old, repl string) string {
	if old == "" {
		return s
	}
	i := strings.LastIndex(s, old)
	if i < 0 {
		return s
	}
	return s[:i] + repl + s[i+len(old):]
}
