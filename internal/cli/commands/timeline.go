package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/daybookhq/daybook/internal/client"
)

// NewStartCommand begins a new activity on the timeline.
func NewStartCommand() *cli.Command {
	return &cli.Command{
		Name:      "start",
		Usage:     "Start a new activity (ends any ongoing ones)",
		ArgsUsage: "<content>",
		Flags: []cli.Flag{
			tagsFlag(),
			&cli.Float64Flag{
				Name:    "target",
				Aliases: []string{"T"},
				Usage:   "Target duration in minutes",
			},
			&cli.BoolFlag{
				Name:  "parallel",
				Usage: "Allow this activity to run alongside others",
			},
			&cli.StringFlag{
				Name:  "group",
				Usage: "Parallel group label",
			},
			&cli.IntFlag{
				Name:    "priority",
				Aliases: []string{"p"},
				Usage:   "Priority (higher shows first)",
				Value:   1,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("activity content is required")
			}
			content := strings.Join(c.Args().Slice(), " ")

			req := client.StartActivityRequest{
				Content:       content,
				Tags:          c.StringSlice("tag"),
				AllowParallel: c.Bool("parallel"),
				Priority:      c.Int("priority"),
			}
			if c.IsSet("target") {
				req.TargetDuration = float64Ptr(c.Float64("target") * 60)
			}
			if group := c.String("group"); group != "" {
				req.ParallelGroup = stringPtr(group)
			}

			activity, err := client.NewClient().StartActivity(req)
			if err != nil {
				fmt.Printf("Error starting activity: %v\n", err)
				return err
			}

			fmt.Printf("▶ Started: %s\n", activity.Content)
			if activity.StartTime != nil {
				fmt.Printf("   At: %s\n", activity.StartTime.Local().Format("15:04:05"))
			}
			if activity.TargetDuration != nil {
				fmt.Printf("   Target: %s\n", formatSeconds(*activity.TargetDuration))
			}
			return nil
		},
	}
}

// NewEndCommand closes the ongoing activity.
func NewEndCommand() *cli.Command {
	return &cli.Command{
		Name:      "end",
		Usage:     "End the ongoing activity",
		ArgsUsage: "[note]",
		Action: func(c *cli.Context) error {
			note := strings.Join(c.Args().Slice(), " ")

			activity, err := client.NewClient().EndActivity(note)
			if err != nil {
				if client.IsNotFound(err) {
					fmt.Println("No ongoing activity to end.")
					fmt.Println("💡 Use 'daybook start <content>' to begin one.")
					return nil
				}
				fmt.Printf("Error ending activity: %v\n", err)
				return err
			}

			fmt.Printf("■ Ended: %s\n", firstLine(activity.Content))
			if activity.Duration != nil {
				fmt.Printf("   Duration: %s\n", formatSeconds(*activity.Duration))
			}
			if activity.CompletionRate != nil {
				fmt.Printf("   Completion: %s of target\n", formatRate(activity.CompletionRate))
			}
			return nil
		},
	}
}

// NewTimelineCommand lists the activities of a day.
func NewTimelineCommand() *cli.Command {
	return &cli.Command{
		Name:  "timeline",
		Usage: "Show the timeline for a day",
		Flags: []cli.Flag{dateFlag()},
		Action: func(c *cli.Context) error {
			date := c.String("date")
			records, err := client.NewClient().DailyTimeline(date)
			if err != nil {
				fmt.Printf("Error fetching timeline: %v\n", err)
				return err
			}

			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			if len(records) == 0 {
				fmt.Printf("Nothing recorded on %s.\n", date)
				return nil
			}

			fmt.Printf("📅 Timeline for %s (%d entries)\n\n", date, len(records))
			for i := range records {
				printActivity(&records[i])
			}
			return nil
		},
	}
}

// NewNowCommand shows what is currently running.
func NewNowCommand() *cli.Command {
	return &cli.Command{
		Name:    "now",
		Aliases: []string{"current"},
		Usage:   "Show ongoing activities",
		Action: func(c *cli.Context) error {
			records, err := client.NewClient().CurrentActivities()
			if err != nil {
				fmt.Printf("Error fetching current activities: %v\n", err)
				return err
			}

			if len(records) == 0 {
				fmt.Println("Nothing is running right now.")
				fmt.Println("💡 Use 'daybook start <content>' to begin an activity.")
				return nil
			}

			fmt.Printf("▶ Ongoing (%d):\n\n", len(records))
			now := time.Now()
			for i := range records {
				m := &records[i]
				printActivity(m)
				if m.StartTime != nil {
					fmt.Printf("  Running for %s\n", formatSeconds(now.Sub(*m.StartTime).Seconds()))
				}
			}
			return nil
		},
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
