// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/wktbench/wktbench/adapters"
	"github.com/wktbench/wktbench/benchmark"
	"github.com/wktbench/wktbench/cmd/internal/env"
	"github.com/wktbench/wktbench/config"
	"github.com/wktbench/wktbench/corpus"
	"github.com/wktbench/wktbench/internal/geomlib"
	internal_logging "github.com/wktbench/wktbench/internal/logging"
	"github.com/wktbench/wktbench/metrics"
	"github.com/wktbench/wktbench/util"
)

// Benchmark names, in registration order.
const (
	benchCustom      = "custom"
	benchLibrary     = "go-geom"
	benchCustomFresh = "custom-fresh-grammar"
)

type benchCommandParams struct {
	dryRun       bool
	iterations   int
	threads      int
	corpusPath   string
	freshGrammar bool
	configFile   string
	outputFormat *util.EnumFlag
	logLevel     *util.EnumFlag
	logFormat    *util.EnumFlag
}

func newBenchCommandParams() benchCommandParams {
	return benchCommandParams{
		iterations:   defaultIterations,
		threads:      defaultThreads,
		corpusPath:   corpus.DefaultPath,
		outputFormat: util.NewEnumFlag(benchmark.FormatPretty, benchmark.Formats()),
		logLevel:     util.NewEnumFlag("info", []string{"debug", "info", "warn", "error"}),
		logFormat: util.NewEnumFlag(internal_logging.FormatText, []string{
			internal_logging.FormatText,
			internal_logging.FormatJSON,
			internal_logging.FormatJSONPretty,
		}),
	}
}

func (p *benchCommandParams) validate() error {
	var errs []error
	if p.iterations < 0 {
		errs = append(errs, fmt.Errorf("iterations must be non-negative, got %d", p.iterations))
	}
	if p.threads < 0 {
		errs = append(errs, fmt.Errorf("threads must be non-negative, got %d", p.threads))
	}
	return errors.Join(errs...)
}

func init() {
	params := newBenchCommandParams()

	RootCommand.PreRunE = func(cmd *cobra.Command, args []string) error {
		flags, _ := splitArgs(cmd.Flags(), args)
		if err := cmd.Flags().Parse(flags); err != nil {
			return err
		}
		if help, _ := cmd.Flags().GetBool("help"); help {
			return nil
		}
		if err := env.CmdFlags.CheckEnvironmentVariables(cmd, params.configFile); err != nil {
			return err
		}
		return params.validate()
	}
	RootCommand.Run = func(cmd *cobra.Command, args []string) {
		if help, _ := cmd.Flags().GetBool("help"); help {
			_ = cmd.Help()
			return
		}
		_, tokens := splitArgs(cmd.Flags(), args)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		// Setup failures are reported but never change the exit status.
		diag := cmd.ErrOrStderr()
		if err := benchMain(ctx, tokens, params, diag); err != nil {
			fmt.Fprintln(diag, err)
		}
	}

	addBenchFlags(RootCommand.Flags(), &params)
}

// benchMain loads the corpus and runs every registered benchmark through a
// single Runner. Results and diagnostics are written to diag. Only setup
// failures are returned; benchmark failures are contained by the Runner.
func benchMain(ctx context.Context, args []string, params benchCommandParams, diag io.Writer) error {
	logger, err := internal_logging.NewLogger(diag, params.logLevel.String(), params.logFormat.String())
	if err != nil {
		return err
	}

	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, a ...any) {
		logger.Debug(format, a...)
	}))
	if err != nil {
		logger.Warn("failed to set GOMAXPROCS: %v", err)
	} else {
		defer undo()
	}

	cfg := config.ParseTokens(args)
	cfg.DryRun = cfg.DryRun || params.dryRun

	wkts, err := corpus.Load(params.corpusPath)
	if err != nil {
		return err
	}

	runner := benchmark.NewRunner(cfg,
		benchmark.Output(diag),
		benchmark.Logger(logger),
		benchmark.Format(params.outputFormat.String()),
	)

	logger.WithFields(map[string]any{
		"run_id":     runner.RunID(),
		"corpus":     params.corpusPath,
		"geometries": len(wkts),
		"digest":     corpus.Fingerprint(wkts),
		"iterations": params.iterations,
		"threads":    params.threads,
		"dry_run":    cfg.DryRun,
		"selected":   cfg.Indices(),
	}).Debug("starting benchmark pass")

	runner.Run(ctx, adapters.NewCustom(wkts, params.iterations, params.threads,
		adapters.WithMetrics(metrics.New())), benchCustom)

	geomlib.Init(logger.Debug, logger.Warn)
	defer geomlib.Finish()

	runner.Run(ctx, adapters.NewLibrary(wkts, params.iterations, params.threads,
		adapters.WithMetrics(metrics.New())), benchLibrary)

	if params.freshGrammar {
		runner.Run(ctx, adapters.NewCustom(wkts, params.iterations, params.threads,
			adapters.WithMetrics(metrics.New()), adapters.WithFreshGrammar()), benchCustomFresh)
	}

	runner.Summarize()
	return nil
}
