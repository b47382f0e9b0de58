package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" default:"briscola.hcl" help:"HCL configuration file (missing file uses defaults)"`
	LogLevel string `help:"Log level (debug|info|warn|error), overrides the config file"`
	LogJSON  bool   `help:"Output JSON logs instead of console format"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Play a batch of games between two strategies and report statistics"`
	Play     PlayCmd          `cmd:"" help:"Narrate a single game as plain text"`
	Watch    WatchCmd         `cmd:"" help:"Watch a single game in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Stream games to websocket spectators"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("briscola"),
		kong.Description("Two-player Briscola engine, strategies and simulation harness"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
