// Package cmd implements the utk CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root utk command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmdWithIO(newDefaultDocumentIO())
}

func newRootCmdWithIO(io DocumentIO) *cobra.Command {
	root := &cobra.Command{
		Use:           "utk",
		Short:         "utk - edit hierarchical unit trees from the command line",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE:          rootRunE,
	}
	root.PersistentFlags().String("config", "", "config file (default: ./utk.yaml if present)")

	root.AddCommand(
		NewShowCmd(io),
		NewCheckCmd(io),
		NewInsertCmd(io),
		NewRemoveCmd(io),
		NewMoveCmd(io),
		NewDuplicateCmd(io),
		NewWrapCmd(io),
		NewUnwrapCmd(io),
		NewSelectCmd(io),
		NewSetCmd(io),
	)
	return root
}

func rootRunE(_ *cobra.Command, _ []string) error {
	return nil
}
