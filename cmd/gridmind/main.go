package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gridmind/internal/config"
	"gridmind/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	seed       int64
	plain      bool

	cfg *config.Config

	// Logger
	logger *zap.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gridmind",
		Short: "gridmind - knowledge-based agents on grid worlds",
		Long: `gridmind runs knowledge-based agents that perceive a grid, store what
they learn as Datalog-style facts and plan with breadth-first search.

Two worlds ship with it: a reactive vacuum cleaner and a pursuit game in
which three ghost archetypes (pursuer, analyst, coordinator) chase a
pellet-eating target.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
			logging.CloseAll()
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVarP(&configPath, "config", "c", "gridmind.yaml", "Config file (defaults apply when it is missing)")
	pf.Int64Var(&seed, "seed", 0, "Override the configured seed")
	pf.BoolVar(&plain, "plain", false, "Print reports as raw markdown")

	root.AddCommand(newVacuumCmd())
	root.AddCommand(newPacmanCmd())
	root.AddCommand(newBenchCmd())
	root.AddCommand(newInspectCmd())
	return root
}

// setup loads the configuration and initializes logging.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		c.Seed = seed
	}
	if verbose {
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := logging.Initialize(c.Logging.Options()); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg = c
	logger.Debug("config loaded", zap.String("path", configPath), zap.Int64("seed", c.Seed))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
