package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lgbarn/pgn-report-go/internal/config"
	"github.com/lgbarn/pgn-report-go/internal/worker"
)

type checkOptions struct {
	failFast bool
	workers  int
}

func newCheckCmd(a *app) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Check that each input is a valid PGN game",
		Long: `Parse each input without writing a report.

Prints "ok" or the parse error for every input and exits non-zero if any
input fails. With --fail-fast, inputs not yet started when the first
failure is seen are reported as skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, a, opts, args)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.failFast, "fail-fast", false, "stop checking after the first invalid input")
	f.IntVarP(&opts.workers, "workers", "j", 0, "number of inputs parsed concurrently (default from config)")
	return cmd
}

func runCheck(cmd *cobra.Command, a *app, opts *checkOptions, args []string) error {
	names, err := inputNames(args, nil)
	if err != nil {
		return err
	}

	cfg := a.cfg
	if cmd.Flags().Changed("workers") {
		if cfg, err = config.From(a.cfg).WithWorkers(opts.workers).Build(); err != nil {
			return err
		}
	}
	poolOpts := []worker.PoolOption{worker.WithWorkers(cfg.Workers)}
	if opts.failFast {
		poolOpts = append(poolOpts, worker.WithStopOnError())
	}
	results := parseInputs(cmd.Context(), names, a.logger, poolOpts...)

	out := cmd.OutOrStdout()
	var failed, skipped int
	for _, r := range results {
		switch {
		case errors.Is(r.Err, worker.ErrSkipped):
			skipped++
			fmt.Fprintf(out, "%s: skipped\n", r.Name)
		case r.Err != nil:
			failed++
			fmt.Fprintf(out, "%s: %v\n", r.Name, r.Err)
		default:
			fmt.Fprintf(out, "%s: ok\n", r.Name)
		}
	}

	switch {
	case failed > 0 && skipped > 0:
		return fmt.Errorf("%d of %d inputs are not valid PGN, %d skipped", failed, len(results), skipped)
	case failed > 0:
		return fmt.Errorf("%d of %d inputs are not valid PGN", failed, len(results))
	}
	return nil
}
