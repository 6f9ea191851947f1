package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version   kong.VersionFlag `short:"v" help:"Show version"`
	Play      PlayCmd          `cmd:"" default:"withargs" help:"Play blackjack at the terminal"`
	Simulate  SimulateCmd      `cmd:"" help:"Run unattended rounds with a fixed strategy"`
	Stats     StatsCmd         `cmd:"" help:"Show the persisted session statistics"`
	Transfer  TransferCmd      `cmd:"" help:"Work with the pending credit transfer queue"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("rags2riches"),
		kong.Description("Single-player blackjack against the house, with durable win/loss statistics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
