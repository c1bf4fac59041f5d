package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/daybookhq/daybook/internal/client"
	"github.com/daybookhq/daybook/internal/models"
)

// NewReportCommand renders a markdown summary of a day.
func NewReportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Render a daily report (timeline, matters, goals)",
		Flags: []cli.Flag{
			dateFlag(),
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Print raw markdown instead of rendering",
			},
		},
		Action: func(c *cli.Context) error {
			date := c.String("date")
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			apiClient := client.NewClient()
			timeline, err := apiClient.DailyTimeline(date)
			if err != nil {
				fmt.Printf("Error fetching timeline: %v\n", err)
				return err
			}
			matters, err := apiClient.DailyMatters(date)
			if err != nil {
				fmt.Printf("Error fetching matters: %v\n", err)
				return err
			}
			goals, err := apiClient.ListGoals(false)
			if err != nil {
				fmt.Printf("Error fetching goals: %v\n", err)
				return err
			}

			md := buildDailyReport(date, timeline, matters, goals)
			if c.Bool("raw") {
				fmt.Print(md)
				return nil
			}

			width := 100
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
				width = w
			}
			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(width),
			)
			if err != nil {
				fmt.Print(md)
				return nil
			}
			out, err := renderer.Render(md)
			if err != nil {
				fmt.Print(md)
				return nil
			}
			fmt.Print(out)
			return nil
		},
	}
}

func buildDailyReport(date string, timeline []models.Memory, matters []client.Matter, goals []client.Goal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Daily Report · %s\n\n", date)

	fmt.Fprintf(&b, "## Timeline\n\n")
	if len(timeline) == 0 {
		b.WriteString("_Nothing recorded._\n\n")
	} else {
		var totalSeconds float64
		for i := range timeline {
			m := &timeline[i]
			span := "ongoing"
			if m.StartTime != nil {
				span = m.StartTime.Local().Format("15:04")
				if m.EndTime != nil {
					span += " - " + m.EndTime.Local().Format("15:04")
				} else {
					span += " - now"
				}
			}
			fmt.Fprintf(&b, "- **%s** (%s)", firstLine(m.Content), span)
			if m.Duration != nil {
				totalSeconds += *m.Duration
				fmt.Fprintf(&b, " · %s", formatSeconds(*m.Duration))
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\nTotal tracked: **%s** across %d activities.\n\n", formatSeconds(totalSeconds), len(timeline))
	}

	fmt.Fprintf(&b, "## Important Matters\n\n")
	if len(matters) == 0 {
		b.WriteString("_No matters registered._\n\n")
	} else {
		b.WriteString("| Matter | Invested | Target | Completion |\n")
		b.WriteString("|--------|----------|--------|------------|\n")
		for _, m := range matters {
			fmt.Fprintf(&b, "| %s | %.0f min | %.0f min | %s |\n",
				truncateString(m.Content, 40), m.ActualMinutes, m.TargetMinutes, formatRate(m.CompletionRate))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Active Goals\n\n")
	if len(goals) == 0 {
		b.WriteString("_No active goals._\n")
	} else {
		for _, g := range goals {
			fmt.Fprintf(&b, "- **%s**", truncateString(g.Content, 50))
			if g.TargetValue != nil {
				fmt.Fprintf(&b, " · %g / %g (%s)", g.CurrentValue, *g.TargetValue, formatRate(g.CompletionRate))
			} else {
				fmt.Fprintf(&b, " · at %g", g.CurrentValue)
			}
			if g.TargetDate != nil {
				fmt.Fprintf(&b, " · due %s", g.TargetDate.Format("2006-01-02"))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
