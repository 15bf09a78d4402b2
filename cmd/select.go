package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eykd/unitree-go/internal/editor"
	"github.com/eykd/unitree-go/internal/unit"
	"github.com/eykd/unitree-go/internal/unit/ops"
)

// NewSelectCmd creates the select subcommand.
func NewSelectCmd(io DocumentIO) *cobra.Command {
	var (
		next     bool
		prev     bool
		none     bool
		remove   string
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:   "select <document> [id]",
		Short: "Change the stored selection",
		Long: `With an id, the selection becomes exactly that unit. --next and --prev
step through the tree depth-first and wrap around; --none clears the
selection and --remove drops one id from it.`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			docPath := args[0]
			s, err := openSession(cmd, io, docPath)
			if err != nil {
				return emitOPE009AndError(cmd, jsonMode, err)
			}

			var id string
			if len(args) == 2 {
				id = args[1]
			}
			modes := 0
			for _, set := range []bool{id != "", next, prev, none, remove != ""} {
				if set {
					modes++
				}
			}
			if modes != 1 {
				err := fmt.Errorf("select needs exactly one of <id>, --next, --prev, --none, --remove: %w", errInvalidArguments)
				return s.finish(cmd, jsonMode, editor.Result{}, err, "")
			}
			if id != "" {
				if err := s.requireUnits(id); err != nil {
					return s.finish(cmd, jsonMode, editor.Result{}, err, "")
				}
			}

			res := s.editor.Update("select", func(h unit.Host) unit.State {
				switch {
				case next:
					return ops.SelectNextUnit(h)
				case prev:
					return ops.SelectPreviousUnit(h)
				case none:
					return ops.DeselectAll(h)
				case remove != "":
					return ops.DeselectUnit(h, remove)
				default:
					return ops.SelectUnit(h, id)
				}
			})
			msg := "Selection cleared"
			if sel := s.state().SelectedUnitIDs; len(sel) > 0 {
				msg = "Selected " + strings.Join(sel, ", ")
			}
			return s.finish(cmd, jsonMode, res, nil, msg)
		},
	}

	cmd.Flags().BoolVar(&next, "next", false, "Select the next unit")
	cmd.Flags().BoolVar(&prev, "prev", false, "Select the previous unit")
	cmd.Flags().BoolVar(&none, "none", false, "Clear the selection")
	cmd.Flags().StringVar(&remove, "remove", "", "Remove this id from the selection")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output result as JSON")
	cmd.MarkFlagsMutuallyExclusive("next", "prev", "none", "remove")

	return cmd
}
