package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/regula/pkg/domain"
	"github.com/aretw0/regula/pkg/pattern"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [pattern] [input...]",
	Short: "Test inputs against a pattern",
	Long: `Tests each input against a pattern and prints one verdict per input.
Without --name or --all the first argument is the pattern itself.
When no input is given, each line of standard input is tested.
Exits with status 1 when no input matched.`,
	Example: `  regula match '(ab)*c' c ababc aba
  regula match --name digits 2024
  printf 'foo\nbar\n' | regula match --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		all, _ := cmd.Flags().GetBool("all")
		quiet, _ := cmd.Flags().GetBool("quiet")

		if name != "" && all {
			return errors.New("--name and --all are mutually exclusive")
		}

		var evaluate func(input string) ([]domain.MatchResult, error)
		switch {
		case name != "" || all:
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()
			evaluate = func(input string) ([]domain.MatchResult, error) {
				if all {
					return app.Registry.MatchAll(cmd.Context(), input)
				}
				res, err := app.Registry.Match(cmd.Context(), name, input)
				return []domain.MatchResult{res}, err
			}
		default:
			if len(args) == 0 {
				return errors.New("a pattern argument is required")
			}
			expr := args[0]
			args = args[1:]
			a, err := pattern.Compile(expr)
			if err != nil {
				return err
			}
			evaluate = func(input string) ([]domain.MatchResult, error) {
				return []domain.MatchResult{{
					Pattern: expr,
					Input:   input,
					Matched: a.MatchString(input),
					States:  a.States(),
				}}, nil
			}
		}

		out := cmd.OutOrStdout()
		st := styler(out)
		matched := false
		report := func(input string) error {
			results, err := evaluate(input)
			if err != nil {
				return err
			}
			for _, res := range results {
				matched = matched || res.Matched
				if !quiet {
					fmt.Fprintf(out, "%s\t%q\n", st.Verdict(res), input)
				}
			}
			return nil
		}

		if len(args) > 0 {
			for _, input := range args {
				if err := report(input); err != nil {
					return err
				}
			}
		} else if err := eachLine(cmd.InOrStdin(), report); err != nil {
			return err
		}

		if !matched {
			return errNoMatch
		}
		return nil
	},
}

func eachLine(r io.Reader, fn func(string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().String("name", "", "Use the stored pattern with this name")
	matchCmd.Flags().Bool("all", false, "Test against every stored pattern")
	matchCmd.Flags().BoolP("quiet", "q", false, "Print nothing; report through the exit status only")
}
