package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/bundlebuilder/cmd/bundlebuilder/commands"
	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bundlebuilder/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli commands.CLI
	global := &commands.Global{}
	kctx := kong.Parse(&cli,
		kong.Name("bundlebuilder"),
		kong.Description("Runs asset bundle builds and verifies the engine output against the build map."),
		kong.Vars{"version": version.String()},
		kong.Bind(global, &cli),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	err := kctx.Run()
	code := errors.NewCLIErrorAdapter(cli.Verbose, nil).Report(os.Stderr, err)
	stop()
	os.Exit(code)
}
