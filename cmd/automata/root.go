package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/config"
	"github.com/spf13/cobra"
)

// app carries what the persistent flags resolve to.
type app struct {
	cfg     config.Config
	printer *tui.Printer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "automata",
		Short: "automata runs finite-state-automaton demos",
		Long: `automata drives states through transition engines: a serial adder, a
deterministic armature that rejects a replayed path, and cascading paths.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Enable engine logging at this level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("metrics-addr", "", "Serve /metrics and /healthz on this address while running")
	rootCmd.PersistentFlags().Bool("banner", false, "Print the banner before running")

	rootCmd.AddCommand(
		newAdderCmd(a),
		newArmatureCmd(a),
		newCascadeCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, config.WithDotEnv())
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		level, _ := cmd.Flags().GetString("log-level")
		cfg.Logging.Enabled = true
		cfg.Logging.Level = level
	}
	if cmd.Flags().Changed("metrics-addr") {
		addr, _ := cmd.Flags().GetString("metrics-addr")
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	a.cfg = cfg
	a.printer = tui.NewPrinter(cmd.OutOrStdout())
	if banner, _ := cmd.Flags().GetBool("banner"); banner {
		a.printer.Banner(versionString())
	}
	return nil
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
