package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/regula/internal/presentation/graph"
	"github.com/aretw0/regula/pkg/nfa"
	"github.com/aretw0/regula/pkg/pattern"
	"github.com/aretw0/regula/pkg/stream"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [pattern]",
	Short: "Export the automaton of a pattern as a Mermaid diagram",
	Long: `Compiles a pattern and outputs a Mermaid flowchart (graph LR) of its automaton.
With --input, the states active after consuming the input are highlighted.`,
	Example: `  regula graph 'a(b|c)*'
  regula graph --name digits --input 12`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, a, err := resolveAutomaton(cmd.Context(), cmd, args)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			overlay = &graph.GraphOverlay{Active: a.Starting(), Accepted: a.MatchString(input)}
			for _, active := range a.Trace(stream.String(input)) {
				overlay.Active = active
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(a, overlay))
		return nil
	},
}

// resolveAutomaton compiles the pattern argument, or loads the stored pattern named by --name.
func resolveAutomaton(ctx context.Context, cmd *cobra.Command, args []string) (string, *nfa.Automaton, error) {
	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		if len(args) != 1 {
			return "", nil, errors.New("exactly one pattern argument is required")
		}
		a, err := pattern.Compile(args[0])
		return args[0], a, err
	}

	app, err := openApp()
	if err != nil {
		return "", nil, err
	}
	defer app.Close()
	p, a, err := app.Registry.Automaton(ctx, name)
	return p.Expr, a, err
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("name", "", "Use the stored pattern with this name")
	graphCmd.Flags().String("input", "", "Highlight the states active after this input")
}
