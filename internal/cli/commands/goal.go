package commands

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/urfave/cli/v2"

	"github.com/daybookhq/daybook/internal/client"
)

// NewGoalCommand creates all subcommands for the 'goal' command group.
func NewGoalCommand() *cli.Command {
	return &cli.Command{
		Name:  "goal",
		Usage: "Manage long-term goals",
		Action: func(c *cli.Context) error {
			// Default action is to list active goals
			return listGoals(c)
		},
		Subcommands: []*cli.Command{
			goalAddCmd(),
			goalListCmd(),
			goalShowCmd(),
			goalProgressCmd(),
			goalHistoryCmd(),
		},
	}
}

func goalAddCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Register a long-term goal",
		ArgsUsage: "<title>",
		Flags: []cli.Flag{
			tagsFlag(),
			&cli.StringFlag{
				Name:  "description",
				Usage: "Longer description",
			},
			&cli.StringFlag{
				Name:  "by",
				Usage: "Target date (YYYY-MM-DD)",
			},
			&cli.Float64Flag{
				Name:  "target",
				Usage: "Numeric target value (e.g. 12 for '12 books')",
			},
			&cli.StringFlag{
				Name:  "progress-type",
				Usage: "How progress is tracked (numeric|percentage|milestone)",
			},
			&cli.Float64SliceFlag{
				Name:  "milestone",
				Usage: "Milestone point (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Copy the goal ID to the clipboard",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("goal title is required")
			}

			req := client.CreateGoalRequest{
				Content:         strings.Join(c.Args().Slice(), " "),
				Description:     c.String("description"),
				TargetDate:      c.String("by"),
				ProgressType:    c.String("progress-type"),
				MilestonePoints: c.Float64Slice("milestone"),
				Tags:            c.StringSlice("tag"),
			}
			if c.IsSet("target") {
				req.TargetValue = float64Ptr(c.Float64("target"))
			}

			goal, err := client.NewClient().CreateGoal(req)
			if err != nil {
				fmt.Printf("Error creating goal: %v\n", err)
				return err
			}

			fmt.Printf("✅ Goal created: %s\n", goal.Content)
			fmt.Printf("   ID: %s\n", goal.ID)
			if goal.TargetDate != nil {
				fmt.Printf("   Target date: %s\n", goal.TargetDate.Format("2006-01-02"))
			}
			if goal.TargetValue != nil {
				fmt.Printf("   Target value: %g\n", *goal.TargetValue)
			}

			if c.Bool("copy") {
				if err := clipboard.WriteAll(goal.ID); err != nil {
					fmt.Printf("   (could not copy ID to clipboard: %v)\n", err)
				} else {
					fmt.Println("   ID copied to clipboard.")
				}
			}
			return nil
		},
	}
}

func goalListCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List goals",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "all",
				Aliases: []string{"a"},
				Usage:   "Include completed goals",
			},
		},
		Action: listGoals,
	}
}

func listGoals(c *cli.Context) error {
	goals, err := client.NewClient().ListGoals(c.Bool("all"))
	if err != nil {
		fmt.Printf("Error fetching goals: %v\n", err)
		return err
	}

	if len(goals) == 0 {
		fmt.Println("No goals yet.")
		fmt.Println("💡 Use 'daybook goal add <title>' to register one.")
		return nil
	}

	fmt.Printf("🌠 Goals (%d)\n\n", len(goals))
	for _, g := range goals {
		printGoal(&g)
	}
	return nil
}

func printGoal(g *client.Goal) {
	fmt.Printf("• %s\n", truncateString(g.Content, 60))
	fmt.Printf("  ID: %s\n", g.ID[:8])
	if g.TargetValue != nil {
		fmt.Printf("  Progress: %g / %g (%s)\n", g.CurrentValue, *g.TargetValue, formatRate(g.CompletionRate))
	} else {
		fmt.Printf("  Progress: %g\n", g.CurrentValue)
	}
	if g.TargetDate != nil {
		fmt.Printf("  Target date: %s\n", g.TargetDate.Format("2006-01-02"))
	}
	if len(g.Tags) > 0 {
		fmt.Printf("  Tags: %v\n", g.Tags)
	}
}

func goalShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a single goal",
		ArgsUsage: "<goal-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("goal ID is required")
			}

			goal, err := client.NewClient().GetGoal(c.Args().First())
			if err != nil {
				if client.IsNotFound(err) {
					fmt.Println("Goal not found.")
					return nil
				}
				fmt.Printf("Error fetching goal: %v\n", err)
				return err
			}

			printGoal(goal)
			if goal.Description != "" {
				fmt.Printf("  %s\n", goal.Description)
			}
			if len(goal.MilestonePoints) > 0 {
				fmt.Printf("  Milestones: %v\n", goal.MilestonePoints)
			}
			return nil
		},
	}
}

func goalProgressCmd() *cli.Command {
	return &cli.Command{
		Name:      "progress",
		Usage:     "Record progress on a goal",
		ArgsUsage: "<goal-id> <value> [note]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("goal ID and progress value are required")
			}
			goalID := c.Args().Get(0)

			var value float64
			if _, err := fmt.Sscanf(c.Args().Get(1), "%f", &value); err != nil {
				return fmt.Errorf("invalid progress value: %s", c.Args().Get(1))
			}
			note := strings.Join(c.Args().Slice()[2:], " ")

			result, err := client.NewClient().UpdateGoalProgress(goalID, value, note)
			if err != nil {
				if client.IsNotFound(err) {
					fmt.Println("Goal not found.")
					return nil
				}
				fmt.Printf("Error updating progress: %v\n", err)
				return err
			}

			fmt.Printf("✅ Progress recorded: %g\n", result.Goal.CurrentValue)
			if result.CompletionRate != nil {
				fmt.Printf("   Completion: %s\n", formatRate(result.CompletionRate))
				if *result.CompletionRate >= 100 {
					fmt.Println("   🎉 Goal reached!")
				}
			}
			return nil
		},
	}
}

func goalHistoryCmd() *cli.Command {
	return &cli.Command{
		Name:      "history",
		Usage:     "Show the progress log of a goal",
		ArgsUsage: "<goal-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("goal ID is required")
			}

			entries, err := client.NewClient().GoalHistory(c.Args().First())
			if err != nil {
				if client.IsNotFound(err) {
					fmt.Println("Goal not found.")
					return nil
				}
				fmt.Printf("Error fetching history: %v\n", err)
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No progress recorded yet.")
				return nil
			}

			fmt.Printf("📈 Progress log (%d entries)\n\n", len(entries))
			for _, e := range entries {
				when := e.CreatedAt.Local().Format("2006-01-02 15:04")
				if e.StartTime != nil {
					when = e.StartTime.Local().Format("2006-01-02 15:04")
				}
				fmt.Printf("• %s  %s\n", when, e.Content)
			}
			return nil
		},
	}
}
