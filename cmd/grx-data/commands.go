package main

import (
	"context"
	"flag"
	"log/slog"

	"github.com/google/subcommands"

	"grx-data/internal/app"
)

// ingestCmd converts provider ASCII year files into parquet bar files.
type ingestCmd struct{}

func (*ingestCmd) Name() string     { return "ingest" }
func (*ingestCmd) Synopsis() string { return "parse provider ASCII files into parquet bar files" }
func (*ingestCmd) Usage() string {
	return `ingest:
  Parse DAT_ASCII_{SYMBOL}_M1_{YYYY}.csv files under RAW_DIR into one
  parquet per year plus a combined bar file, with a progress checkpoint.
`
}
func (*ingestCmd) SetFlags(*flag.FlagSet) {}

func (*ingestCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := initApp()
	if !ok {
		return subcommands.ExitFailure
	}
	if err := app.RunIngest(a.Config); err != nil {
		slog.Error("ingest failed", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// prepareCmd runs the core feature/target/split pipeline.
type prepareCmd struct{}

func (*prepareCmd) Name() string { return "prepare" }
func (*prepareCmd) Synopsis() string {
	return "compute features and trend targets, split chronologically, save datasets"
}
func (*prepareCmd) Usage() string {
	return `prepare:
  Load 1-minute bars, compute causal features and forward-looking trend
  targets, drop incomplete rows, split into train/validation/test and save
  them plus features.txt under PROCESSED_DIR.
`
}
func (*prepareCmd) SetFlags(*flag.FlagSet) {}

func (*prepareCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := initApp()
	if !ok {
		return subcommands.ExitFailure
	}
	if err := app.RunPrepare(a.Config, a.Saver); err != nil {
		slog.Error("prepare failed", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// statsCmd prints descriptive statistics for the bar series.
type statsCmd struct {
	top int
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "print descriptive statistics for the bar series" }
func (*statsCmd) Usage() string {
	return `stats [-top N]:
  Describe OHLCV columns and the 1-minute return distribution of the
  ingested bar series.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.top, "top", 5, "number of return extremes to show")
}

func (c *statsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := initApp()
	if !ok {
		return subcommands.ExitFailure
	}
	if err := app.RunStats(a.Config, c.top); err != nil {
		slog.Error("stats failed", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
