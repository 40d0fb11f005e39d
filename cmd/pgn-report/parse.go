package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lgbarn/pgn-report-go/internal/config"
	pgnerrors "github.com/lgbarn/pgn-report-go/internal/errors"
	"github.com/lgbarn/pgn-report-go/internal/input"
	"github.com/lgbarn/pgn-report-go/internal/output"
	"github.com/lgbarn/pgn-report-go/internal/parser"
	"github.com/lgbarn/pgn-report-go/internal/worker"
)

type parseOptions struct {
	inputs      []string
	output      string
	format      string
	tags        string
	noComments  bool
	stripClocks bool
	width       uint
	workers     int
}

func newParseCmd(a *app) *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [FILE...]",
		Short: "Parse games and write a report for each",
		Long: `Parse one game from each input and write it in the chosen format.

Inputs come from the arguments and any -i flags, in that order; with none,
standard input is read. An input that fails to parse is reported in place
of its game and the command exits non-zero once all inputs are written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, a, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&opts.inputs, "input", "i", nil, "input file (repeatable; - for standard input)")
	f.StringVarP(&opts.output, "output", "o", "", "write output to file instead of standard output")
	f.StringVarP(&opts.format, "format", "f", "report", "output format: report, json, jsonl or pgn")
	f.StringVar(&opts.tags, "tags", "all", "tags to output: all, seven or none")
	f.BoolVar(&opts.noComments, "no-comments", false, "drop comments from output")
	f.BoolVar(&opts.stripClocks, "strip-clocks", false, "remove [%clk ...] annotations from comments")
	f.UintVarP(&opts.width, "width", "w", config.DefaultMaxLineLength, "maximum line length for PGN output")
	f.IntVarP(&opts.workers, "workers", "j", config.DefaultWorkers, "number of inputs parsed concurrently")
	return cmd
}

// applyFlags layers explicitly set flags over the loaded configuration.
func (o *parseOptions) applyFlags(cmd *cobra.Command, base *config.Config) (*config.Config, error) {
	b := config.From(base)
	f := cmd.Flags()

	if f.Changed("format") {
		format, err := config.ParseFormat(o.format)
		if err != nil {
			return nil, err
		}
		b.WithOutputFormat(format)
	}
	if f.Changed("tags") {
		form, err := config.ParseTagForm(o.tags)
		if err != nil {
			return nil, err
		}
		b.WithTagFormat(form)
	}
	if f.Changed("no-comments") {
		b.KeepComments(!o.noComments)
	}
	if f.Changed("strip-clocks") {
		b.StripClocks(o.stripClocks)
	}
	if f.Changed("width") {
		b.WithMaxLineLength(o.width)
	}
	if f.Changed("workers") {
		b.WithWorkers(o.workers)
	}
	return b.Build()
}

// inputNames lists the inputs in command-line order, defaulting to stdin.
// Standard input can be read only once.
func inputNames(args, flagged []string) ([]string, error) {
	names := append(append([]string(nil), args...), flagged...)
	if len(names) == 0 {
		names = []string{input.StdinName}
	}
	stdin := 0
	for i, name := range names {
		if input.IsStdin(name) {
			names[i] = input.StdinName
			stdin++
		}
	}
	if stdin > 1 {
		return nil, fmt.Errorf("standard input named %d times; it can be read only once", stdin)
	}
	return names, nil
}

// parseInputs reads and parses every input concurrently.
// Results are in the order of names.
func parseInputs(ctx context.Context, names []string, logger *zap.Logger, opts ...worker.PoolOption) []worker.ProcessResult {
	items := make([]worker.WorkItem, len(names))
	for i, name := range names {
		items[i] = worker.WorkItem{Index: i, Name: name}
	}

	process := func(_ context.Context, item worker.WorkItem) worker.ProcessResult {
		result := worker.ProcessResult{Index: item.Index, Name: item.Name}
		text, err := input.ReadAll(item.Name)
		if err != nil {
			result.Err = err
			return result
		}
		p := parser.New(parser.WithLogger(logger.With(zap.String("input", item.Name))))
		result.Game, result.Err = p.Parse(text)
		return result
	}

	opts = append([]worker.PoolOption{worker.WithLogger(logger)}, opts...)
	return worker.Run(ctx, items, process, opts...)
}

func runParse(cmd *cobra.Command, a *app, opts *parseOptions, args []string) error {
	cfg, err := opts.applyFlags(cmd, a.cfg)
	if err != nil {
		return err
	}
	names, err := inputNames(args, opts.inputs)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return pgnerrors.Wrap(err, "creating output file")
		}
		defer f.Close()
		out = f
	}

	writer, err := output.NewWriter(out, cfg)
	if err != nil {
		return err
	}

	results := parseInputs(cmd.Context(), names, a.logger, worker.WithWorkers(cfg.Workers))

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			a.logger.Warn("input failed", zap.String("input", r.Name), zap.Error(r.Err))
			err = writer.WriteError(r.Name, r.Err)
		} else {
			err = writer.WriteGame(r.Game)
		}
		if err != nil {
			return pgnerrors.Wrapf(err, "writing output for %s", r.Name)
		}
	}
	if err := writer.Close(); err != nil {
		return pgnerrors.Wrap(err, "writing output")
	}

	a.logger.Info("parse complete",
		zap.Int("inputs", len(results)),
		zap.Int("failed", failed),
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed to parse", failed, len(results))
	}
	return nil
}
