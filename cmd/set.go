package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/unitree-go/internal/editor"
	"github.com/eykd/unitree-go/internal/unit"
	"github.com/eykd/unitree-go/internal/unit/ops"
)

// NewSetCmd creates the set subcommand.
func NewSetCmd(io DocumentIO) *cobra.Command {
	var (
		status          string
		align           string
		group           string
		anker           string
		collapsed       bool
		attrs           []string
		toggleStatus    bool
		toggleCollapsed bool
		jsonMode        bool
	)

	cmd := &cobra.Command{
		Use:   "set <document> <id>",
		Short: "Update the metadata of a unit",
		Long: `Set merges the given fields onto one unit. --attr merges keys into the
existing attributes. Toggles are applied after the explicit values.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			docPath, id := args[0], args[1]
			s, err := openSession(cmd, io, docPath)
			if err != nil {
				return emitOPE009AndError(cmd, jsonMode, err)
			}

			flags := cmd.Flags()
			var p ops.Patch
			if flags.Changed("status") {
				st := unit.Status(status)
				if st != unit.StatusOpen && st != unit.StatusClose {
					err := fmt.Errorf("status %q: want open or close: %w", status, errInvalidArguments)
					return s.finish(cmd, jsonMode, editor.Result{}, err, "")
				}
				p.Status = &st
			}
			if flags.Changed("align") {
				p.Align = &align
			}
			if flags.Changed("group") {
				p.Group = &group
			}
			if flags.Changed("anker") {
				p.Anker = &anker
			}
			if flags.Changed("collapsed") {
				p.Collapsed = &collapsed
			}
			attributes, err := parseAttributes(attrs)
			if err != nil {
				return s.finish(cmd, jsonMode, editor.Result{}, err, "")
			}
			if err := s.requireUnits(id); err != nil {
				return s.finish(cmd, jsonMode, editor.Result{}, err, "")
			}

			res, opErr := s.editor.Apply("set", func(h unit.Host) (unit.State, error) {
				chain := ops.NewChain(h).Then(func(h unit.Host) (unit.State, error) {
					return ops.UpdateUnit(h, id, p), nil
				})
				if attributes != nil {
					chain = chain.Then(func(h unit.Host) (unit.State, error) {
						return ops.SetUnitAttributes(h, id, attributes), nil
					})
				}
				if toggleStatus {
					chain = chain.Then(func(h unit.Host) (unit.State, error) {
						return ops.ToggleUnitStatus(h, id), nil
					})
				}
				if toggleCollapsed {
					chain = chain.Then(func(h unit.Host) (unit.State, error) {
						return ops.ToggleUnitCollapsed(h, id), nil
					})
				}
				return chain.Run()
			})
			msg := fmt.Sprintf("Updated %s in %s", id, docPath)
			if !res.Changed {
				msg = fmt.Sprintf("%s unchanged", id)
			}
			return s.finish(cmd, jsonMode, res, opErr, msg)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "open or close")
	cmd.Flags().StringVar(&align, "align", "", "Alignment metadata")
	cmd.Flags().StringVar(&group, "group", "", "Group metadata")
	cmd.Flags().StringVar(&anker, "anker", "", "Anchor metadata")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "Collapsed UI flag")
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "Attribute as key=value (repeatable)")
	cmd.Flags().BoolVar(&toggleStatus, "toggle-status", false, "Flip open/close")
	cmd.Flags().BoolVar(&toggleCollapsed, "toggle-collapsed", false, "Flip the collapsed flag")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output result as JSON")
	cmd.MarkFlagsMutuallyExclusive("status", "toggle-status")
	cmd.MarkFlagsMutuallyExclusive("collapsed", "toggle-collapsed")

	return cmd
}
