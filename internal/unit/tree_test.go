package unit_test

import (
	"testing"

	"github.com/eykd/unitree-go/internal/unit"
	"github.com/eykd/unitree-go/internal/unit/unittest"
)

func TestClone_IsDeep(t *testing.T) {
	n := unittest.N("G", "group", unittest.N("a", "text"))
	n.Attributes = map[string]any{
		"list":   []any{"x", map[string]any{"k": "v"}},
		"nested": map[string]any{"k": "v"},
		"tags":   []string{"t"},
	}
	c := n.Clone()

	c.Children[0].ID = "changed"
	c.Attributes["nested"].(map[string]any)["k"] = "changed"
	c.Attributes["list"].([]any)[1].(map[string]any)["k"] = "changed"
	c.Attributes["tags"].([]string)[0] = "changed"

	if n.Children[0].ID != "a" {
		t.Error("children are shared")
	}
	if n.Attributes["nested"].(map[string]any)["k"] != "v" {
		t.Error("nested map is shared")
	}
	if n.Attributes["list"].([]any)[1].(map[string]any)["k"] != "v" {
		t.Error("map inside list is shared")
	}
	if n.Attributes["tags"].([]string)[0] != "t" {
		t.Error("string list is shared")
	}
}

func TestClone_NormalisesNil(t *testing.T) {
	c := (&unit.Node{ID: "x", Type: "text"}).Clone()
	if c.Children == nil || c.Attributes == nil {
		t.Errorf("clone = %+v, want non-nil children and attributes", c)
	}
}

func TestContainsUnitType(t *testing.T) {
	units := sampleTree().State().Units
	if !unit.ContainsUnitType(units, "text") {
		t.Error("expected text")
	}
	if unit.ContainsUnitType(units, "media") {
		t.Error("no media in tree")
	}
	if unit.ContainsUnitType(nil, "text") {
		t.Error("empty tree contains nothing")
	}
}

func TestWalk_StopsEarly(t *testing.T) {
	var visited []string
	done := unit.Walk(sampleTree().State().Units, func(n *unit.Node, parentID string, index int) bool {
		visited = append(visited, n.ID+"@"+parentID)
		return n.ID != "b"
	})
	if done {
		t.Error("walk should report early stop")
	}
	want := "a@,g1@,b@g1"
	got := ""
	for i, v := range visited {
		if i > 0 {
			got += ","
		}
		got += v
	}
	if got != want {
		t.Errorf("visited %s, want %s", got, want)
	}
}

func TestNormalize(t *testing.T) {
	leaf := &unit.Node{ID: "b", Type: "text"}
	ok := unittest.N("c", "text")
	st := unit.Normalize(unit.State{Units: []*unit.Node{{ID: "a", Type: "group", Children: []*unit.Node{leaf}}, ok}})

	if st.SelectedUnitIDs == nil {
		t.Error("selection should be an empty list")
	}
	if st.Units[0].Children[0].Children == nil {
		t.Error("leaf children should be an empty list")
	}
	if leaf.Children != nil {
		t.Error("input node was mutated")
	}
	if st.Units[1] != ok {
		t.Error("normalised node should be shared")
	}
}
