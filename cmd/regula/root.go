package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/regula/internal/cli"
	"github.com/aretw0/regula/internal/config"
	"github.com/aretw0/regula/internal/logging"
	"github.com/aretw0/regula/internal/presentation/tui"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// errNoMatch makes the process exit with status 1, like grep.
var errNoMatch = errors.New("no input matched")

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "regula",
	Short:         "Regula matches text against regular patterns compiled to NFAs",
	Long:          `Regula compiles regular patterns into automata without silent transitions and decides membership by subset simulation. Patterns can be tested ad hoc or stored by name in memory, Redis or a YAML file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		if cmd.Flags().Changed("store") {
			loaded.Store.Backend, _ = cmd.Flags().GetString("store")
			if err := loaded.Validate(); err != nil {
				return err
			}
		}

		level, err := logging.ParseLevel(loaded.LogLevel)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = logging.New(level)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errNoMatch) {
			return 1
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 2
	}
	return 0
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("store", config.BackendMemory, "Pattern store backend: memory, redis or file")
}

// openApp wires the configured store and registry.
func openApp() (*cli.App, error) {
	return cli.NewApp(cfg, logger)
}

// isTerminal reports whether w is a terminal, which enables colour and markdown rendering.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && tui.IsTerminal(f)
}

func styler(w io.Writer) tui.Styler {
	if isTerminal(w) {
		return tui.NewStyler(termenv.ColorProfile())
	}
	return tui.NewStyler(termenv.Ascii)
}
