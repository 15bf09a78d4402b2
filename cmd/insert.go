package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/unitree-go/internal/editor"
	"github.com/eykd/unitree-go/internal/unit"
	"github.com/eykd/unitree-go/internal/unit/ops"
)

// NewInsertCmd creates the insert subcommand.
func NewInsertCmd(io DocumentIO) *cobra.Command {
	var (
		unitType string
		id       string
		after    string
		before   string
		attrs    []string
		pos      positionFlags
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:   "insert <document>",
		Short: "Insert a new unit",
		Long: `Insert a new unit of the given type. Without --root/--at the unit is
appended at root level; --after and --before place it next to a sibling.
The new unit becomes the selection.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			docPath := args[0]
			s, err := openSession(cmd, io, docPath)
			if err != nil {
				return emitOPE009AndError(cmd, jsonMode, err)
			}

			attributes, err := parseAttributes(attrs)
			if err != nil {
				return s.finish(cmd, jsonMode, editor.Result{}, err, "")
			}
			anchor := after + before
			if anchor != "" {
				if err := s.requireUnits(anchor); err != nil {
					return s.finish(cmd, jsonMode, editor.Result{}, err, "")
				}
			}
			if root := pos.root; root != "" {
				if err := s.requireUnits(root); err != nil {
					return s.finish(cmd, jsonMode, editor.Result{}, err, "")
				}
			}

			if id == "" {
				id = s.editor.GenerateUnitID()
			}
			n := &unit.Node{
				ID:         id,
				Type:       unitType,
				Status:     unit.StatusOpen,
				Attributes: attributes,
				Children:   []*unit.Node{},
			}
			nodes := []*unit.Node{n}

			res, opErr := s.editor.Apply("insert", func(h unit.Host) (unit.State, error) {
				switch {
				case after != "":
					return ops.InsertAfterUnit(h, after, nodes)
				case before != "":
					return ops.InsertBeforeUnit(h, before, nodes)
				default:
					return ops.InsertUnit(h, nodes, pos.position(cmd))
				}
			})
			return s.finish(cmd, jsonMode, res, opErr, fmt.Sprintf("Inserted %s in %s", id, docPath))
		},
	}

	cmd.Flags().StringVar(&unitType, "type", "", "Unit type (required)")
	cmd.Flags().StringVar(&id, "id", "", "Unit id (default: generated)")
	cmd.Flags().StringVar(&after, "after", "", "Insert after this unit")
	cmd.Flags().StringVar(&before, "before", "", "Insert before this unit")
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "Attribute as key=value (repeatable)")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output result as JSON")
	pos.register(cmd)
	_ = cmd.MarkFlagRequired("type")
	cmd.MarkFlagsMutuallyExclusive("after", "before", "root")
	cmd.MarkFlagsMutuallyExclusive("after", "before", "at")

	return cmd
}
