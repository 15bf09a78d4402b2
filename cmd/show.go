package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/eykd/unitree-go/internal/document"
	"github.com/eykd/unitree-go/internal/unit"
)

// NewShowCmd creates the show subcommand.
func NewShowCmd(dio DocumentIO) *cobra.Command {
	var jsonMode bool

	cmd := &cobra.Command{
		Use:   "show <document>",
		Short: "Print the unit tree",
		Long: `Show prints the tree as an indented outline. Selected units are marked
with *, closed units with (closed) and collapsed units with +.
With --json the normalised document is printed instead.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, dio, args[0])
			if err != nil {
				return emitOPE009AndError(cmd, jsonMode, err)
			}

			if jsonMode {
				data, err := document.Encode(s.state(), document.FormatJSON)
				if err != nil {
					return err
				}
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
				return nil
			}
			return renderOutline(cmd.OutOrStdout(), s.state())
		},
	}

	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output the document as JSON")
	return cmd
}

// renderOutline writes one line per unit, indented two spaces per level.
func renderOutline(w io.Writer, st unit.State) error {
	r := lipgloss.NewRenderer(w)
	idStyle := r.NewStyle().Bold(true)
	typeStyle := r.NewStyle().Faint(true)
	markStyle := r.NewStyle().Foreground(lipgloss.Color("5"))

	if len(st.Units) == 0 {
		_, err := fmt.Fprintln(w, typeStyle.Render("(empty)"))
		return err
	}

	var b strings.Builder
	depths := make(map[string]int)
	unit.Walk(st.Units, func(n *unit.Node, parentID string, _ int) bool {
		depth := 0
		if parentID != "" {
			depth = depths[parentID] + 1
		}
		depths[n.ID] = depth
		sel := " "
		if unit.IsSelectedUnit(st, n.ID) {
			sel = markStyle.Render("*")
		}
		fold := "-"
		if n.Collapsed && len(n.Children) > 0 {
			fold = "+"
		}
		fmt.Fprintf(&b, "%s%s %s %s %s", strings.Repeat("  ", depth), sel, fold,
			idStyle.Render(sanitizeText(n.ID)), typeStyle.Render("["+sanitizeText(n.Type)+"]"))
		if n.Status == unit.StatusClose {
			b.WriteString(" " + markStyle.Render("(closed)"))
		}
		b.WriteByte('\n')
		return true
	})
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
