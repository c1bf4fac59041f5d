package commands

// Helper functions shared across commands

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/daybookhq/daybook/internal/models"
)

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func dateFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "date",
		Aliases: []string{"d"},
		Usage:   "Date in YYYY-MM-DD form (defaults to today)",
	}
}

func tagsFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "tag",
		Aliases: []string{"t"},
		Usage:   "Tag to attach (repeatable)",
	}
}

// formatSeconds renders a raw seconds value as "1h 23m" or "45m".
func formatSeconds(seconds float64) string {
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}

// formatRate renders a completion rate (already a percentage) or a dash.
func formatRate(rate *float64) string {
	if rate == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", *rate)
}

func printActivity(m *models.Memory) {
	marker := "•"
	if m.IsOngoing {
		marker = "▶"
	}

	line := fmt.Sprintf("%s %s", marker, truncateString(m.Content, 60))
	if m.StartTime != nil {
		line += fmt.Sprintf("  [%s", m.StartTime.Local().Format("15:04"))
		if m.EndTime != nil {
			line += fmt.Sprintf(" - %s]", m.EndTime.Local().Format("15:04"))
		} else {
			line += " - now]"
		}
	}
	if m.Duration != nil {
		line += fmt.Sprintf(" (%s)", formatSeconds(*m.Duration))
	}
	fmt.Println(line)

	if len(m.Tags) > 0 {
		fmt.Printf("  Tags: %v\n", []string(m.Tags))
	}
}
