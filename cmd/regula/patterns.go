package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/regula/pkg/adapters/file"
	"github.com/aretw0/regula/pkg/domain"
	"github.com/spf13/cobra"
)

var patternsCmd = &cobra.Command{
	Use:     "patterns",
	Aliases: []string{"p"},
	Short:   "Manage stored patterns",
}

var patternsAddCmd = &cobra.Command{
	Use:   "add <name> <expr>",
	Short: "Store a pattern, replacing any pattern with the same name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		tags, _ := cmd.Flags().GetStringSlice("tag")

		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		p := domain.Pattern{Name: args[0], Expr: args[1], Description: description, Tags: tags}
		if err := app.Registry.Put(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", p.Name)
		return nil
	},
}

var patternsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored patterns",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, _ := cmd.Flags().GetString("tag")
		asJSON, _ := cmd.Flags().GetBool("json")

		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		patterns, err := app.Registry.List(cmd.Context())
		if err != nil {
			return err
		}
		if tag != "" {
			filtered := patterns[:0]
			for _, p := range patterns {
				if p.HasTag(tag) {
					filtered = append(filtered, p)
				}
			}
			patterns = filtered
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(patterns)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tEXPR\tDESCRIPTION")
		for _, p := range patterns {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Expr, p.Description)
		}
		return tw.Flush()
	},
}

var patternsRemoveCmd = &cobra.Command{
	Use:     "rm <name>...",
	Aliases: []string{"remove"},
	Short:   "Delete stored patterns",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		for _, name := range args {
			if err := app.Registry.Remove(cmd.Context(), name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", name)
		}
		return nil
	},
}

var patternsImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Copy every pattern of a YAML pattern file into the configured store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := file.Open(args[0])
		if err != nil {
			return err
		}
		names, err := src.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return errors.New("no patterns found in " + args[0])
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		for _, name := range names {
			p, err := src.Load(cmd.Context(), name)
			if err != nil {
				return err
			}
			if err := app.Registry.Put(cmd.Context(), p); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d patterns\n", len(names))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
	patternsCmd.AddCommand(patternsAddCmd, patternsListCmd, patternsRemoveCmd, patternsImportCmd)

	patternsAddCmd.Flags().String("description", "", "Human readable description")
	patternsAddCmd.Flags().StringSlice("tag", nil, "Tag to attach (repeatable)")
	patternsListCmd.Flags().String("tag", "", "Only list patterns carrying this tag")
	patternsListCmd.Flags().Bool("json", false, "Print JSON instead of a table")
}
