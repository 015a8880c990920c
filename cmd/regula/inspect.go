package main

import (
	"fmt"

	"github.com/aretw0/regula/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [pattern]",
	Short: "Describe the automaton of a pattern",
	Long: `Prints a markdown report of a pattern's automaton: its starting and finished states,
its transition table and, with --input, the active set after every rune.
The report is rendered for the terminal unless --raw is set or output is redirected.`,
	Example: `  regula inspect '(a*b)*' --input aab`,
	RunE: func(cmd *cobra.Command, args []string) error {
		expr, a, err := resolveAutomaton(cmd.Context(), cmd, args)
		if err != nil {
			return err
		}

		var input *string
		if cmd.Flags().Changed("input") {
			s, _ := cmd.Flags().GetString("input")
			input = &s
		}
		report := tui.InspectReport(expr, a, input)

		out := cmd.OutOrStdout()
		render := tui.PlainRenderer
		if raw, _ := cmd.Flags().GetBool("raw"); !raw && isTerminal(out) {
			render = tui.NewRenderer()
		}
		rendered, err := render(report)
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().String("name", "", "Use the stored pattern with this name")
	inspectCmd.Flags().String("input", "", "Trace the run of the automaton over this input")
	inspectCmd.Flags().Bool("raw", false, "Print markdown without terminal rendering")
}
