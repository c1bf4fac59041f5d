package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/daybookhq/daybook/internal/cli/commands"
)

// Version will be set during build with ldflags
var Version = "0.1.0"

func main() {
	app := &cli.App{
		Name:    "daybook",
		Usage:   "Personal activity journal with matters and long-term goals",
		Version: Version,
		Commands: []*cli.Command{
			commands.NewSetupCommand(),

			// Timeline
			commands.NewStartCommand(),
			commands.NewEndCommand(),
			commands.NewTimelineCommand(),
			commands.NewNowCommand(),

			// Matters & goals
			commands.NewMatterCommand(),
			commands.NewGoalCommand(),

			// Views
			commands.NewReportCommand(),
			commands.NewWatchCommand(),

			// AI & integrations
			commands.NewAnalyzeCommand(),
			commands.NewMcpCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
