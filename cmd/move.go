package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/unitree-go/internal/editor"
	"github.com/eykd/unitree-go/internal/unit"
	"github.com/eykd/unitree-go/internal/unit/ops"
)

// NewMoveCmd creates the move subcommand.
func NewMoveCmd(io DocumentIO) *cobra.Command {
	var (
		pos      positionFlags
		up       bool
		down     bool
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:   "move <document> <id>",
		Short: "Move a unit within the tree",
		Long: `Move a unit (with its subtree) to --root/--at, or one slot with --up or
--down. Without flags the unit is appended at root level. The index is
counted after the unit has been taken out of its current list.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			docPath, id := args[0], args[1]
			s, err := openSession(cmd, io, docPath)
			if err != nil {
				return emitOPE009AndError(cmd, jsonMode, err)
			}
			check := []string{id}
			if pos.root != "" {
				check = append(check, pos.root)
			}
			if err := s.requireUnits(check...); err != nil {
				return s.finish(cmd, jsonMode, editor.Result{}, err, "")
			}

			res, opErr := s.editor.Apply("move", func(h unit.Host) (unit.State, error) {
				switch {
				case up:
					return ops.MoveUpUnit(h, id)
				case down:
					return ops.MoveDownUnit(h, id)
				default:
					return ops.MoveUnitToPosition(h, id, pos.position(cmd))
				}
			})
			return s.finish(cmd, jsonMode, res, opErr, fmt.Sprintf("Moved %s in %s", id, docPath))
		},
	}

	pos.register(cmd)
	cmd.Flags().BoolVar(&up, "up", false, "Move one slot towards the start")
	cmd.Flags().BoolVar(&down, "down", false, "Move one slot towards the end")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output result as JSON")
	cmd.MarkFlagsMutuallyExclusive("up", "down", "root")
	cmd.MarkFlagsMutuallyExclusive("up", "down", "at")

	return cmd
}
