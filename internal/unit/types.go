// Package unit provides the domain types, selectors and validators for the
// hierarchical unit tree.
package unit

// Status is the open/closed display flag of a unit.
type Status string

const (
	// StatusOpen marks a unit as visible/published.
	StatusOpen Status = "open"
	// StatusClose marks a unit as hidden.
	StatusClose Status = "close"
)

// Node is a single unit in the content tree.
// Nodes are treated as immutable once they are part of a State: commands
// copy every node on the path to a change and share everything else.
type Node struct {
	ID         string         `json:"id" yaml:"id"`                                     // unique across the whole tree
	Type       string         `json:"type" yaml:"type"`                                 // selects the governing Policy
	Status     Status         `json:"status,omitempty" yaml:"status,omitempty"`         // presentation only
	Collapsed  bool           `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`   // UI state
	Align      string         `json:"align,omitempty" yaml:"align,omitempty"`           // opaque metadata
	Group      string         `json:"group,omitempty" yaml:"group,omitempty"`           // opaque metadata
	Anker      string         `json:"anker,omitempty" yaml:"anker,omitempty"`           // opaque metadata
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"` // keys may embed ID
	Children   []*Node        `json:"children" yaml:"children"`                         // ordered; never nil after Normalize
}

// Position addresses an insert or move target.
// RootID == "" targets the root list. A nil Index appends to the end of the
// target list. Index is interpreted after any node being relocated has been
// detached from that list.
type Position struct {
	Index  *int   `json:"index,omitempty"`
	RootID string `json:"rootId,omitempty"`
}

// At returns a Position at index within the children of rootID
// (or the root list when rootID is empty).
func At(index int, rootID string) *Position {
	return &Position{Index: &index, RootID: rootID}
}

// Append returns a Position at the end of rootID's children.
func Append(rootID string) *Position {
	return &Position{RootID: rootID}
}

// Location is the resolved address of an existing unit.
type Location struct {
	Index  int    `json:"index"`
	RootID string `json:"rootId,omitempty"` // "" when the unit is at root level
}

// Position converts l into an insert/move target.
func (l Location) Position() *Position {
	return At(l.Index, l.RootID)
}

// State is an immutable snapshot of the tree and the current selection.
type State struct {
	Units           []*Node  `json:"units" yaml:"units"`
	SelectedUnitIDs []string `json:"selectedUnitIds" yaml:"selectedUnitIds"` // insertion order is significant
}

// Event names emitted through Host.Emit.
const (
	EventError = "error"
)

// Error event codes.
const (
	CodeUnitInsertFailed    = "unitInsertFailed"
	CodeUnitMoveFailed      = "unitMoveFailed"
	CodeUnitDuplicateFailed = "unitDuplicateFailed"
	CodeWrapUnitsFailed     = "wrapUnitsFailed"
	CodeUnwrapUnitFailed    = "unwrapUnitFailed"
)

// ErrorEvent is the payload of an EventError notification. It reports a
// policy denial; the command that emitted it returned the prior state.
type ErrorEvent struct {
	Editor  Host   `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Unit    *Node  `json:"unit,omitempty"`
}

// Host is the editor context consumed by selectors, validators and commands.
type Host interface {
	// State returns the current tree and selection.
	State() State
	// FindUnitDef looks up the policy for a unit type. A false result is a
	// normal outcome that validators turn into a denial.
	FindUnitDef(unitType string) (Policy, bool)
	// GenerateUnitID returns a fresh identifier that collides with nothing.
	GenerateUnitID() string
	// Emit delivers a fire-and-forget notification.
	Emit(event string, payload ErrorEvent)
	// Flatten linearises a tree depth-first, parent before children.
	Flatten(units []*Node) []*Node
}
