package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/unitree-go/internal/audit"
)

// CheckDiagnosticJSON is the JSON output type for a single check finding.
type CheckDiagnosticJSON struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	UnitID   string `json:"unitId,omitempty"`
}

// NewCheckCmd creates the check subcommand.
func NewCheckCmd(io DocumentIO) *cobra.Command {
	var jsonMode bool

	cmd := &cobra.Command{
		Use:   "check <document>",
		Short: "Audit a document against the unit definitions",
		Long: `Check reports duplicate or empty ids, unknown types, extra instances of
single-instance types, units nested where their type forbids it, and
stale selection entries. It exits non-zero when any error is found.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, io, args[0])
			if err != nil {
				return emitOPE009AndError(cmd, jsonMode, err)
			}

			diags := audit.Run(s.editor)
			if jsonMode {
				out := make([]CheckDiagnosticJSON, len(diags))
				for i, d := range diags {
					out[i] = CheckDiagnosticJSON{
						Code:     string(d.Code),
						Severity: string(d.Severity),
						Message:  d.Message,
						UnitID:   d.UnitID,
					}
				}
				if err := json.NewEncoder(cmd.OutOrStdout()).Encode(out); err != nil {
					return fmt.Errorf("encoding output: %w", err)
				}
			} else {
				for _, d := range diags {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", d.Code, d.Severity, sanitizeText(d.Message))
				}
			}

			if audit.HasErrors(diags) {
				return fmt.Errorf("document has integrity errors")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output diagnostics as a JSON array")
	return cmd
}
