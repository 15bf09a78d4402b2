package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/unitree-go/internal/unit"
)

// Diagnostic is a structured error or warning record in command output.
type Diagnostic struct {
	Severity string `json:"severity"` // "error" | "warning"
	Code     string `json:"code"`     // e.g. "unitMoveFailed", "OPE002"
	Message  string `json:"message"`
	UnitID   string `json:"unitId,omitempty"`
}

// OpResult is the JSON output of a mutating command.
type OpResult struct {
	Version     string       `json:"version"` // "1"
	Changed     bool         `json:"changed"` // true if the document was rewritten
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Contract error codes. Policy denials use the event code of the command
// (unitInsertFailed, unitMoveFailed, ...).
const (
	CodeUnitNotFound     = "OPE001"
	CodeIndexOutOfRange  = "OPE002"
	CodeDuplicateUnitID  = "OPE003"
	CodeInvalidArguments = "OPE004"
	CodeIOOrParseFailure = "OPE009"
)

const severityError = "error"

// errInvalidArguments marks flag or argument combinations a command rejects
// before touching the document.
var errInvalidArguments = errors.New("invalid arguments")

// eventDiagnostics converts policy denials to diagnostics.
func eventDiagnostics(events []unit.ErrorEvent) []Diagnostic {
	diags := make([]Diagnostic, 0, len(events))
	for _, ev := range events {
		d := Diagnostic{Severity: severityError, Code: ev.Code, Message: ev.Message}
		if ev.Unit != nil {
			d.UnitID = ev.Unit.ID
		}
		diags = append(diags, d)
	}
	return diags
}

// errorDiagnostic maps a command error to a diagnostic code.
func errorDiagnostic(err error) Diagnostic {
	code := CodeIOOrParseFailure
	switch {
	case errors.Is(err, unit.ErrUnitNotFound):
		code = CodeUnitNotFound
	case errors.Is(err, unit.ErrIndexOutOfRange):
		code = CodeIndexOutOfRange
	case errors.Is(err, unit.ErrDuplicateUnitID):
		code = CodeDuplicateUnitID
	case errors.Is(err, errInvalidArguments):
		code = CodeInvalidArguments
	}
	return Diagnostic{Severity: severityError, Code: code, Message: err.Error()}
}

// hasDiagnosticError reports whether any diagnostic has error severity.
func hasDiagnosticError(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == severityError {
			return true
		}
	}
	return false
}

// printDiagnostics writes each diagnostic to stderr in human-readable form.
func printDiagnostics(cmd *cobra.Command, diags []Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s (%s)\n", d.Severity, sanitizeText(d.Message), d.Code)
	}
}

// writeResult emits diagnostics either as an OpResult on stdout or as
// lines on stderr.
func writeResult(cmd *cobra.Command, jsonMode bool, changed bool, diags []Diagnostic) error {
	if diags == nil {
		diags = []Diagnostic{}
	}
	if jsonMode {
		out := OpResult{Version: "1", Changed: changed, Diagnostics: diags}
		if err := json.NewEncoder(cmd.OutOrStdout()).Encode(out); err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
		return nil
	}
	printDiagnostics(cmd, diags)
	return nil
}

// emitOPE009AndError reports an I/O, parse or configuration failure and
// returns a non-nil error so the process exits non-zero.
func emitOPE009AndError(cmd *cobra.Command, jsonMode bool, origErr error) error {
	if jsonMode {
		diags := []Diagnostic{{Severity: severityError, Code: CodeIOOrParseFailure, Message: origErr.Error()}}
		_ = writeResult(cmd, true, false, diags)
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: I/O or parse failure: %v (%s)\n", sanitizeText(origErr.Error()), CodeIOOrParseFailure)
	}
	return fmt.Errorf("operation failed: %w", origErr)
}
