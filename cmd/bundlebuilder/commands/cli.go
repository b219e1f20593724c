// Package commands implements the bundlebuilder CLI commands.
package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/bundlebuilder/internal/config"
	"git.home.luguber.info/inful/bundlebuilder/internal/logfields"
)

// Global is shared state handed to every command.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"bundlebuilder.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Run the build pipeline"`
	Verify  VerifyCmd  `cmd:"" help:"Verify an already built output directory against the build map"`
	Watch   WatchCmd   `cmd:"" help:"Re-run the build whenever the configuration or build map changes"`
	Index   IndexCmd   `cmd:"" help:"Import asset .meta GUIDs into the SQLite identity index"`
	History HistoryCmd `cmd:"" help:"List recorded pipeline runs"`
	Options OptionsCmd `cmd:"" help:"Print the engine options derived from the configuration"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	g.Logger = logger
	return nil
}

// loadConfig reads .env files and the configuration file.
func loadConfig(root *CLI) (*config.Config, error) {
	if _, err := config.LoadEnvFiles(); err != nil {
		slog.Warn("Ignoring unreadable .env file", logfields.Error(err))
	}
	return config.Load(root.Config)
}
