package ops

import "github.com/eykd/unitree-go/internal/unit"

// RemoveUnit removes every unit in ids together with its subtree. The
// selection is always cleared, whether or not any id was found.
func RemoveUnit(h unit.Host, ids ...string) unit.State {
	st := h.State()
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out, _ := filterTree(st.Units, drop)
	return unit.State{Units: out, SelectedUnitIDs: []string{}}
}
