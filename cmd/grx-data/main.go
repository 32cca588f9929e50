package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"grx-data/internal/app"
	"grx-data/internal/slogx"
)

func init() {
	slog.SetDefault(slogx.NewDefault("info"))
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&ingestCmd{}, "pipeline")
	subcommands.Register(&prepareCmd{}, "pipeline")
	subcommands.Register(&statsCmd{}, "pipeline")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}

// initApp builds the app via Wire and re-levels the default logger from
// config. Shared by all commands.
func initApp() (*app.App, bool) {
	a, err := InitializeApp()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return nil, false
	}
	slog.SetDefault(slogx.NewDefault(a.Config.LogLevel))
	return a, true
}
