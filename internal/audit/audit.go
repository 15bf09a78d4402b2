// Package audit checks a unit tree against the policies of its host and
// reports integrity findings.
package audit

import (
	"fmt"
	"sort"

	"github.com/eykd/unitree-go/internal/unit"
)

// Code identifies the rule that produced a Diagnostic.
type Code string

const (
	// AUD001 indicates a unit id appears more than once in the tree.
	AUD001 Code = "AUD001"
	// AUD002 indicates a unit has a type with no registered definition.
	AUD002 Code = "AUD002"
	// AUD003 indicates more than one unit of a single-instance type.
	AUD003 Code = "AUD003"
	// AUD004 indicates a unit that may not be nested has a parent.
	AUD004 Code = "AUD004"
	// AUD005 indicates a unit with an empty id.
	AUD005 Code = "AUD005"
	// AUDW001 is a warning for a selected id that is not in the tree.
	AUDW001 Code = "AUDW001"
)

// Severity classifies the impact of a Diagnostic.
type Severity string

const (
	// SeverityError indicates a condition that must be resolved.
	SeverityError Severity = "error"
	// SeverityWarning indicates a condition that should be reviewed.
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single audit finding.
type Diagnostic struct {
	Code     Code     `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	// UnitID is the unit the finding is about; empty for tree-wide findings.
	UnitID string `json:"unitId,omitempty"`
}

// Run audits the current state of h and returns diagnostics sorted by
// severity (errors first) then unit id. It performs no I/O.
func Run(h unit.Host) []Diagnostic {
	st := h.State()
	var diags []Diagnostic

	seen := make(map[string]bool)
	reported := make(map[string]bool)
	singles := make(map[string]string)
	unknown := make(map[string]bool)

	unit.Walk(st.Units, func(n *unit.Node, parentID string, _ int) bool {
		if n.ID == "" {
			diags = append(diags, errDiag(AUD005, "", fmt.Sprintf("unit of type %q has an empty id", n.Type)))
		} else if seen[n.ID] && !reported[n.ID] {
			reported[n.ID] = true
			diags = append(diags, errDiag(AUD001, n.ID, fmt.Sprintf("unit id appears more than once: %s", n.ID)))
		}
		seen[n.ID] = true

		def, ok := h.FindUnitDef(n.Type)
		if !ok {
			if !unknown[n.Type] {
				unknown[n.Type] = true
				diags = append(diags, errDiag(AUD002, n.ID, fmt.Sprintf("unknown unit type: %s", n.Type)))
			}
			return true
		}
		if parentID != "" && !def.Nested.Resolve(n, h) {
			diags = append(diags, errDiag(AUD004, n.ID, fmt.Sprintf("%s unit cannot be nested but is inside %s", n.Type, parentID)))
		}
		if !def.Multiple.Resolve(n, h) {
			if first, dup := singles[n.Type]; dup {
				diags = append(diags, errDiag(AUD003, n.ID, fmt.Sprintf("only one %s unit may exist, first is %s", n.Type, first)))
			} else {
				singles[n.Type] = n.ID
			}
		}
		return true
	})

	for _, id := range st.SelectedUnitIDs {
		if !seen[id] {
			diags = append(diags, warnDiag(AUDW001, id, fmt.Sprintf("selected unit does not exist: %s", id)))
		}
	}

	sort.SliceStable(diags, func(i, j int) bool {
		si, sj := severityRank(diags[i].Severity), severityRank(diags[j].Severity)
		if si != sj {
			return si < sj
		}
		return diags[i].UnitID < diags[j].UnitID
	})
	return diags
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func severityRank(s Severity) int {
	if s == SeverityError {
		return 0
	}
	return 1
}

func errDiag(code Code, unitID, message string) Diagnostic {
	return Diagnostic{Code: code, Severity: SeverityError, Message: message, UnitID: unitID}
}

func warnDiag(code Code, unitID, message string) Diagnostic {
	return Diagnostic{Code: code, Severity: SeverityWarning, Message: message, UnitID: unitID}
}
