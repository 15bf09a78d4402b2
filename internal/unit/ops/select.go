package ops

import (
	"slices"

	"github.com/eykd/unitree-go/internal/unit"
)

// SelectUnit replaces the whole selection with id.
func SelectUnit(h unit.Host, id string) unit.State {
	st := h.State()
	return unit.State{Units: st.Units, SelectedUnitIDs: []string{id}}
}

// DeselectUnit removes id from the selection.
func DeselectUnit(h unit.Host, id string) unit.State {
	st := h.State()
	ids := slices.DeleteFunc(slices.Clone(st.SelectedUnitIDs), func(s string) bool { return s == id })
	return unit.State{Units: st.Units, SelectedUnitIDs: ids}
}

// DeselectAll clears the selection.
func DeselectAll(h unit.Host) unit.State {
	return unit.State{Units: h.State().Units, SelectedUnitIDs: []string{}}
}

// SelectNextUnit selects the unit after the current one in flattened order,
// wrapping around. An empty tree clears the selection.
func SelectNextUnit(h unit.Host) unit.State {
	n, ok := unit.GetNextUnit(h)
	if !ok {
		return DeselectAll(h)
	}
	return SelectUnit(h, n.ID)
}

// SelectPreviousUnit selects the unit before the current one in flattened
// order, wrapping around. An empty tree clears the selection.
func SelectPreviousUnit(h unit.Host) unit.State {
	n, ok := unit.GetPreviousUnit(h)
	if !ok {
		return DeselectAll(h)
	}
	return SelectUnit(h, n.ID)
}
