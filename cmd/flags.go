package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eykd/unitree-go/internal/unit"
)

// positionFlags are the --root/--at pair shared by insert and move.
type positionFlags struct {
	root string
	at   int
}

func (p *positionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.root, "root", "", "Parent unit id (default: root level)")
	cmd.Flags().IntVar(&p.at, "at", 0, "Zero-based index in the parent's children (default: append)")
}

// position returns the target, or nil when neither flag was given.
func (p *positionFlags) position(cmd *cobra.Command) *unit.Position {
	rootSet, atSet := cmd.Flags().Changed("root"), cmd.Flags().Changed("at")
	if !rootSet && !atSet {
		return nil
	}
	if atSet {
		return unit.At(p.at, p.root)
	}
	return unit.Append(p.root)
}

// parseAttributes turns k=v pairs into an attribute map. Values are read as
// YAML scalars or flow collections, so "3" is a number, "true" a bool and
// "[a, b]" a list; anything else stays a string.
func parseAttributes(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	attrs := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("attribute %q: want key=value: %w", pair, errInvalidArguments)
		}
		var parsed any
		if err := yaml.Unmarshal([]byte(v), &parsed); err != nil || parsed == nil {
			parsed = v
		}
		attrs[k] = parsed
	}
	return attrs, nil
}
