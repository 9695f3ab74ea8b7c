package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play full rounds with strategy and count grading"`
	Drill    DrillCmd         `cmd:"" help:"Rapid-fire card counting drill"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate basic strategy to estimate house edge"`
	Stats    StatsCmd         `cmd:"" help:"Show training session history"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pitboss"),
		kong.Description("Single-deck blackjack trainer with Hi-Lo counting"),
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

// setupLogger configures logging for a command. TUI commands log to
// stderr so output does not fight the alternate screen.
func setupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: debug,
	})
}
