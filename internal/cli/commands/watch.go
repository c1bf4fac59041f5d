package commands

import (
	"github.com/urfave/cli/v2"

	"github.com/daybookhq/daybook/internal/client"
	"github.com/daybookhq/daybook/internal/tui"
)

// NewWatchCommand opens the live dashboard of ongoing activities.
func NewWatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Live view of ongoing activities (press q to quit)",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Refresh interval",
				Value:   tui.DefaultRefreshInterval,
			},
		},
		Action: func(c *cli.Context) error {
			return tui.RunWatch(client.NewClient(), c.Duration("interval"))
		},
	}
}
