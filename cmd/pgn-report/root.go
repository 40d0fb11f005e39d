package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lgbarn/pgn-report-go/internal/config"
)

// app holds state shared by all subcommands.
type app struct {
	// Global flags.
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

// setup loads the configuration and builds the logger before any
// subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("config", a.configPath),
		zap.Stringer("format", cfg.Output.Format),
		zap.Int("workers", cfg.Workers),
	)
	return nil
}

func (a *app) teardown(*cobra.Command, []string) {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "pgn-report",
		Short: "Parse PGN chess games and report on them",
		Long: `pgn-report reads chess games in Portable Game Notation, checks them
against the PGN grammar and prints the tags, moves and result of each.

Inputs may be plain, gzip (.gz) or zstd (.zst) files, or standard input.

Examples:
  # Report on a game
  pgn-report parse game.pgn

  # Convert several games to JSON
  pgn-report parse --format json -o games.json a.pgn b.pgn.zst

  # Check that files are valid PGN
  pgn-report check *.pgn`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (YAML, TOML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newParseCmd(a),
		newCheckCmd(a),
		newTreeCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}
