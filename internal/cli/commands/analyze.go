package commands

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/daybookhq/daybook/internal/client"
)

// NewAnalyzeCommand sends free text to the server-side analyzer and prints
// the structured proposal it returns.
func NewAnalyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Turn free text into a structured entry proposal",
		ArgsUsage: "<text>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("text to analyze is required")
			}

			result, err := client.NewClient().Analyze(strings.Join(c.Args().Slice(), " "))
			if err != nil {
				apiErr, ok := err.(*client.APIError)
				if ok && apiErr.StatusCode == 503 {
					fmt.Println("The server has no analyzer configured (OPENAI_API_KEY not set).")
					return nil
				}
				fmt.Printf("Error analyzing text: %v\n", err)
				return err
			}

			fmt.Println("🔎 Analysis result:")
			fmt.Printf("   Kind: %s\n", result.Kind)
			if result.FocusKind != nil {
				fmt.Printf("   Focus kind: %s\n", *result.FocusKind)
			}
			fmt.Printf("   Content: %s\n", result.Content)
			if result.Description != "" {
				fmt.Printf("   Description: %s\n", result.Description)
			}
			if len(result.Tags) > 0 {
				fmt.Printf("   Tags: %v\n", result.Tags)
			}
			if result.TargetMinutes != nil {
				fmt.Printf("   Target: %.0f minutes\n", *result.TargetMinutes)
			}
			if result.TargetValue != nil {
				fmt.Printf("   Target value: %g\n", *result.TargetValue)
			}
			if result.TargetDate != "" {
				fmt.Printf("   Target date: %s\n", result.TargetDate)
			}
			fmt.Println("\n💡 Use 'daybook start', 'daybook matter add' or 'daybook goal add' to record it.")
			return nil
		},
	}
}
