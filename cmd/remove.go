package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eykd/unitree-go/internal/editor"
	"github.com/eykd/unitree-go/internal/unit"
	"github.com/eykd/unitree-go/internal/unit/ops"
)

// NewRemoveCmd creates the remove subcommand.
func NewRemoveCmd(io DocumentIO) *cobra.Command {
	var jsonMode bool

	cmd := &cobra.Command{
		Use:          "remove <document> <id>...",
		Short:        "Remove units and their subtrees",
		Args:         cobra.MinimumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			docPath, ids := args[0], args[1:]
			s, err := openSession(cmd, io, docPath)
			if err != nil {
				return emitOPE009AndError(cmd, jsonMode, err)
			}
			if err := s.requireUnits(ids...); err != nil {
				return s.finish(cmd, jsonMode, editor.Result{}, err, "")
			}

			res := s.editor.Update("remove", func(h unit.Host) unit.State {
				return ops.RemoveUnit(h, ids...)
			})
			return s.finish(cmd, jsonMode, res, nil, fmt.Sprintf("Removed %s from %s", strings.Join(ids, ", "), docPath))
		},
	}

	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output result as JSON")
	return cmd
}
