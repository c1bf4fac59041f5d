package commands

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/urfave/cli/v2"

	"github.com/daybookhq/daybook/internal/client"
)

// NewMatterCommand creates all subcommands for the 'matter' command group.
func NewMatterCommand() *cli.Command {
	return &cli.Command{
		Name:  "matter",
		Usage: "Manage today's important matters",
		Action: func(c *cli.Context) error {
			// Default action is to list today's matters
			return listMatters(c)
		},
		Subcommands: []*cli.Command{
			matterAddCmd(),
			matterListCmd(),
			matterStartCmd(),
			matterEndCmd(),
			matterShowCmd(),
		},
	}
}

func matterAddCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Register an important matter for today",
		ArgsUsage: "<title>",
		Flags: []cli.Flag{
			tagsFlag(),
			&cli.Float64Flag{
				Name:     "target",
				Aliases:  []string{"T"},
				Usage:    "Target time in minutes",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "Longer description",
			},
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Copy the matter ID to the clipboard",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("matter title is required")
			}

			matter, err := client.NewClient().CreateMatter(client.CreateMatterRequest{
				Content:       strings.Join(c.Args().Slice(), " "),
				TargetMinutes: c.Float64("target"),
				Tags:          c.StringSlice("tag"),
				Description:   c.String("description"),
			})
			if err != nil {
				fmt.Printf("Error creating matter: %v\n", err)
				return err
			}

			fmt.Printf("✅ Matter created: %s\n", matter.Content)
			fmt.Printf("   ID: %s\n", matter.ID)
			fmt.Printf("   Target: %.0f minutes\n", matter.TargetMinutes)
			if len(matter.Tags) > 0 {
				fmt.Printf("   Tags: %v\n", matter.Tags)
			}

			if c.Bool("copy") {
				if err := clipboard.WriteAll(matter.ID); err != nil {
					fmt.Printf("   (could not copy ID to clipboard: %v)\n", err)
				} else {
					fmt.Println("   ID copied to clipboard.")
				}
			}
			return nil
		},
	}
}

func matterListCmd() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "List the matters of a day with time invested",
		Flags:  []cli.Flag{dateFlag()},
		Action: listMatters,
	}
}

func listMatters(c *cli.Context) error {
	matters, err := client.NewClient().DailyMatters(c.String("date"))
	if err != nil {
		fmt.Printf("Error fetching matters: %v\n", err)
		return err
	}

	if len(matters) == 0 {
		fmt.Println("No important matters registered.")
		fmt.Println("💡 Use 'daybook matter add <title> --target <minutes>' to register one.")
		return nil
	}

	fmt.Printf("🎯 Important Matters (%d)\n\n", len(matters))
	for _, m := range matters {
		fmt.Printf("• %s\n", truncateString(m.Content, 60))
		fmt.Printf("  ID: %s\n", m.ID[:8])
		fmt.Printf("  Invested: %.0f / %.0f min", m.ActualMinutes, m.TargetMinutes)
		if m.CompletionRate != nil {
			fmt.Printf(" (%s)", formatRate(m.CompletionRate))
		}
		fmt.Println()
		if len(m.Tags) > 0 {
			fmt.Printf("  Tags: %v\n", m.Tags)
		}
	}
	return nil
}

func matterStartCmd() *cli.Command {
	return &cli.Command{
		Name:      "start",
		Usage:     "Start working on a matter",
		ArgsUsage: "<matter-id> [note]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("matter ID is required")
			}
			matterID := c.Args().First()
			note := strings.Join(c.Args().Tail(), " ")

			activity, err := client.NewClient().StartMatterActivity(matterID, note)
			if err != nil {
				if client.IsNotFound(err) {
					fmt.Println("Matter not found.")
					return nil
				}
				fmt.Printf("Error starting matter activity: %v\n", err)
				return err
			}

			fmt.Printf("▶ Started: %s\n", activity.Content)
			if len(activity.Tags) > 0 {
				fmt.Printf("   Tags: %v\n", []string(activity.Tags))
			}
			return nil
		},
	}
}

func matterEndCmd() *cli.Command {
	return &cli.Command{
		Name:      "end",
		Usage:     "End the ongoing activity and report matter progress",
		ArgsUsage: "<matter-id> [note]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("matter ID is required")
			}
			matterID := c.Args().First()
			note := strings.Join(c.Args().Tail(), " ")

			result, err := client.NewClient().EndMatterActivity(matterID, note)
			if err != nil {
				if client.IsNotFound(err) {
					fmt.Println("No ongoing activity, or matter not found.")
					return nil
				}
				fmt.Printf("Error ending matter activity: %v\n", err)
				return err
			}

			fmt.Printf("■ Ended: %s\n", firstLine(result.Activity.Content))
			if result.Activity.Duration != nil {
				fmt.Printf("   Session: %s\n", formatSeconds(*result.Activity.Duration))
			}
			fmt.Printf("   Matter completion: %s\n", formatRate(result.CompletionRate))
			return nil
		},
	}
}

func matterShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a matter with its correlated activities",
		ArgsUsage: "<matter-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("matter ID is required")
			}

			result, err := client.NewClient().GetMatterActivities(c.Args().First())
			if err != nil {
				if client.IsNotFound(err) {
					fmt.Println("Matter not found.")
					return nil
				}
				fmt.Printf("Error fetching matter: %v\n", err)
				return err
			}

			m := result.Matter
			fmt.Printf("🎯 %s\n", m.Content)
			if m.Description != "" {
				fmt.Printf("   %s\n", m.Description)
			}
			fmt.Printf("   Invested: %s (%s of %.0f min target)\n",
				formatSeconds(result.TotalSeconds), formatRate(result.CompletionRate), m.TargetMinutes)

			if len(result.Activities) == 0 {
				fmt.Println("\nNo correlated activities yet.")
				return nil
			}

			fmt.Printf("\n⏱ Activities (%d):\n", len(result.Activities))
			for i := range result.Activities {
				printActivity(&result.Activities[i])
			}
			return nil
		},
	}
}
