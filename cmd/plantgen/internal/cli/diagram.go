package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsmgen/plantgen/internal/diagnostics"
	"github.com/hsmgen/plantgen/internal/diagram"
	"github.com/hsmgen/plantgen/internal/parser"
)

// newDiagramCommand prints the canonicalized PlantUML round-trip of a
// diagram: Parse builds the Model, internal/diagram renders it back out.
// Grounded in the teacher's DiagramBuilder (see DESIGN.md, internal/diagram),
// this is a text round-trip, not a visualization — SPEC_FULL.md's
// [CLI] module and Non-goals note both call this out explicitly.
func newDiagramCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diagram <file.puml>",
		Short: "Print the canonicalized PlantUML round-trip of a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(args[0])
			if err != nil {
				return err
			}
			diag := diagnostics.NewSink()
			m := parser.Parse(lines, diag)
			for _, d := range diag.All() {
				fmt.Fprintln(cmd.ErrOrStderr(), d.Error())
			}
			fmt.Fprint(cmd.OutOrStdout(), diagram.Render(m))
			return nil
		},
	}
}
