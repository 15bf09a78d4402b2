package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/unitree-go/internal/unit"
	"github.com/eykd/unitree-go/internal/unit/ops"
)

// NewDuplicateCmd creates the duplicate subcommand.
func NewDuplicateCmd(io DocumentIO) *cobra.Command {
	var jsonMode bool

	cmd := &cobra.Command{
		Use:          "duplicate <document> <id>",
		Short:        "Insert a copy of a unit right after it",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			docPath, id := args[0], args[1]
			s, err := openSession(cmd, io, docPath)
			if err != nil {
				return emitOPE009AndError(cmd, jsonMode, err)
			}

			res, opErr := s.editor.Apply("duplicate", func(h unit.Host) (unit.State, error) {
				return ops.DuplicateUnit(h, id)
			})
			msg := ""
			if sel := s.state().SelectedUnitIDs; opErr == nil && len(sel) > 0 {
				msg = fmt.Sprintf("Duplicated %s as %s in %s", id, sel[0], docPath)
			}
			return s.finish(cmd, jsonMode, res, opErr, msg)
		},
	}

	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output result as JSON")
	return cmd
}
