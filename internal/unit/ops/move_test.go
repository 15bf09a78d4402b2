package ops_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/eykd/unitree-go/internal/unit"
	"github.com/eykd/unitree-go/internal/unit/ops"
	"github.com/eykd/unitree-go/internal/unit/unittest"
)

func twoParents() *unittest.Host {
	return unittest.New(
		N("P1", "group", N("A", "text"), N("B", "text")),
		N("P2", "group", N("C", "text"), N("D", "text")),
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// MoveUnitToPosition
// ──────────────────────────────────────────────────────────────────────────────

func TestMoveUnitToPosition_AcrossParents(t *testing.T) {
	h := twoParents()
	st, err := ops.MoveUnitToPosition(h, "B", unit.At(1, "P2"))
	mustApply(t, h, st, err)
	assertOutline(t, h, "P1(A),P2(C,B,D)")
	assertSelection(t, h, "B")
}

func TestMoveUnitToPosition_Targets(t *testing.T) {
	tests := []struct {
		name string
		id   string
		pos  *unit.Position
		want string
	}{
		{"to root front", "C", unit.At(0, ""), "C,P1(A,B),P2(D)"},
		{"nil appends to root", "A", nil, "P1(B),P2(C,D),A"},
		{"append to parent", "A", unit.Append("P2"), "P1(B),P2(C,D,A)"},
		{"reorder within parent", "A", unit.At(1, "P1"), "P1(B,A),P2(C,D)"},
		{"whole subtree", "P1", unit.At(1, "P2"), "P2(C,P1(A,B),D)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := twoParents()
			st, err := ops.MoveUnitToPosition(h, tt.id, tt.pos)
			mustApply(t, h, st, err)
			assertOutline(t, h, tt.want)
		})
	}
}

func TestMoveUnitToPosition_SilentNoops(t *testing.T) {
	tests := []struct {
		name string
		id   string
		pos  *unit.Position
	}{
		{"same position", "A", unit.At(0, "P1")},
		{"last unit appended to own parent", "B", unit.Append("P1")},
		{"own parent as target", "P1", unit.At(0, "P1")},
		{"missing unit", "nope", unit.At(0, "")},
		{"missing target parent", "A", unit.At(0, "nope")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := twoParents().Select("C")
			before := h.State()
			st, err := ops.MoveUnitToPosition(h, tt.id, tt.pos)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(st, before) {
				t.Error("state changed")
			}
			if len(h.Events) != 0 {
				t.Errorf("unexpected events: %+v", h.Events)
			}
		})
	}
}

func TestMoveUnitToPosition_IntoOwnSubtreeDenied(t *testing.T) {
	h := unittest.New(N("G", "group", N("Inner", "group")))
	before := h.State()
	st, err := ops.MoveUnitToPosition(h, "G", unit.At(0, "Inner"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(st, before) {
		t.Error("state changed")
	}
	if h.LastCode() != unit.CodeUnitMoveFailed || h.Events[0].Message != unit.ReasonMoveIntoDescendant {
		t.Errorf("events = %+v", h.Events)
	}
}

func TestMoveUnitToPosition_PolicyDenied(t *testing.T) {
	h := twoParents().Define(unit.Policy{Type: "text", MoveHierarchy: unit.Static(false)})
	before := h.State()

	st, err := ops.MoveUnitToPosition(h, "B", unit.At(1, "P2"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(st, before) {
		t.Error("denied move must not change the state")
	}
	if h.LastCode() != unit.CodeUnitMoveFailed {
		t.Errorf("code = %q", h.LastCode())
	}

	// Reordering under the same parent is not a hierarchy change.
	st, err = ops.MoveUnitToPosition(h, "B", unit.At(0, "P1"))
	mustApply(t, h, st, err)
	assertOutline(t, h, "P1(B,A),P2(C,D)")
}

func TestMoveUnitToPosition_IndexOutOfRange(t *testing.T) {
	for _, pos := range []*unit.Position{unit.At(-1, "P2"), unit.At(5, "P2")} {
		h := twoParents()
		before := h.State()
		st, err := ops.MoveUnitToPosition(h, "A", pos)
		if !errors.Is(err, unit.ErrIndexOutOfRange) {
			t.Errorf("index %d: expected ErrIndexOutOfRange, got %v", *pos.Index, err)
		}
		if !reflect.DeepEqual(st, before) {
			t.Errorf("index %d: partial move escaped", *pos.Index)
		}
	}
}

func TestMoveUnitToPosition_IsIdempotent(t *testing.T) {
	h := twoParents()
	st, err := ops.MoveUnitToPosition(h, "A", unit.At(1, "P2"))
	mustApply(t, h, st, err)
	first := h.State()

	st, err = ops.MoveUnitToPosition(h, "A", unit.At(1, "P2"))
	mustApply(t, h, st, err)
	if !reflect.DeepEqual(h.State().Units, first.Units) {
		t.Error("repeating a move changed the tree")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// MoveUpUnit / MoveDownUnit
// ──────────────────────────────────────────────────────────────────────────────

func TestMoveUpAndDown(t *testing.T) {
	h := unittest.New(N("A", "text"), N("B", "text"), N("C", "text"))

	st, err := ops.MoveDownUnit(h, "A")
	mustApply(t, h, st, err)
	assertOutline(t, h, "B,A,C")

	st, err = ops.MoveUpUnit(h, "C")
	mustApply(t, h, st, err)
	assertOutline(t, h, "B,C,A")
	assertSelection(t, h, "C")
}

func TestMoveUpAndDown_AtEdges(t *testing.T) {
	h := unittest.New(N("A", "text"), N("B", "text"))
	before := h.State()

	if _, err := ops.MoveUpUnit(h, "A"); !errors.Is(err, unit.ErrIndexOutOfRange) {
		t.Errorf("move up at start: got %v", err)
	}
	if _, err := ops.MoveDownUnit(h, "B"); !errors.Is(err, unit.ErrIndexOutOfRange) {
		t.Errorf("move down at end: got %v", err)
	}
	st, err := ops.MoveUpUnit(h, "missing")
	if err != nil || !reflect.DeepEqual(st, before) {
		t.Errorf("missing unit: %v", err)
	}
}
