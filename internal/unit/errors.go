package unit

import "errors"

// Contract errors. These indicate a malformed request from the caller and
// are returned as Go errors; policy denials are reported as ErrorEvent
// notifications instead.
var (
	// ErrUnitNotFound is returned when an operation requires an existing unit.
	ErrUnitNotFound = errors.New("unit not found")
	// ErrIndexOutOfRange is returned for a negative or overflowing index.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrDuplicateUnitID is returned when an insert would introduce an id
	// that is already present in the tree.
	ErrDuplicateUnitID = errors.New("duplicate unit id")
)
