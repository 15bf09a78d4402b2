package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/unitree-go/internal/editor"
	"github.com/eykd/unitree-go/internal/unit"
	"github.com/eykd/unitree-go/internal/unit/ops"
)

// NewWrapCmd creates the wrap subcommand.
func NewWrapCmd(io DocumentIO) *cobra.Command {
	var (
		unitType string
		id       string
		attrs    []string
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:   "wrap <document> [id...]",
		Short: "Wrap contiguous siblings in a new unit",
		Long: `Wrap moves the given units, which must be contiguous siblings, into a
new unit of --type placed where the first of them was. Without ids the
current selection is wrapped.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			docPath, ids := args[0], args[1:]
			s, err := openSession(cmd, io, docPath)
			if err != nil {
				return emitOPE009AndError(cmd, jsonMode, err)
			}
			attributes, err := parseAttributes(attrs)
			if err != nil {
				return s.finish(cmd, jsonMode, editor.Result{}, err, "")
			}
			if err := s.requireUnits(ids...); err != nil {
				return s.finish(cmd, jsonMode, editor.Result{}, err, "")
			}
			if id == "" {
				id = s.editor.GenerateUnitID()
			}
			wrapper := &unit.Node{
				ID:         id,
				Type:       unitType,
				Status:     unit.StatusOpen,
				Attributes: attributes,
				Children:   []*unit.Node{},
			}

			res, opErr := s.editor.Apply("wrap", func(h unit.Host) (unit.State, error) {
				if len(ids) == 0 {
					return ops.WrapSelectedUnits(h, wrapper)
				}
				return ops.WrapUnits(h, wrapper, ids)
			})
			msg := ""
			if res.Changed {
				msg = fmt.Sprintf("Wrapped into %s in %s", id, docPath)
			}
			return s.finish(cmd, jsonMode, res, opErr, msg)
		},
	}

	cmd.Flags().StringVar(&unitType, "type", "", "Wrapper unit type (required)")
	cmd.Flags().StringVar(&id, "id", "", "Wrapper unit id (default: generated)")
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "Wrapper attribute as key=value (repeatable)")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output result as JSON")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

// NewUnwrapCmd creates the unwrap subcommand.
func NewUnwrapCmd(io DocumentIO) *cobra.Command {
	var jsonMode bool

	cmd := &cobra.Command{
		Use:          "unwrap <document> <id>",
		Short:        "Replace a unit by its children",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			docPath, id := args[0], args[1]
			s, err := openSession(cmd, io, docPath)
			if err != nil {
				return emitOPE009AndError(cmd, jsonMode, err)
			}
			if err := s.requireUnits(id); err != nil {
				return s.finish(cmd, jsonMode, editor.Result{}, err, "")
			}

			res, opErr := s.editor.Apply("unwrap", func(h unit.Host) (unit.State, error) {
				return ops.UnwrapUnit(h, id)
			})
			return s.finish(cmd, jsonMode, res, opErr, fmt.Sprintf("Unwrapped %s in %s", id, docPath))
		},
	}

	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output result as JSON")
	return cmd
}
