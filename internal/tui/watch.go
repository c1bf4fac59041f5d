// Package tui holds the terminal dashboard for watching ongoing
// activities refresh in place.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/daybookhq/daybook/internal/client"
	"github.com/daybookhq/daybook/internal/models"
)

// DefaultRefreshInterval is how often the dashboard polls the API.
const DefaultRefreshInterval = 10 * time.Second

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	activityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	elapsedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

type tickMsg time.Time

type activitiesMsg struct {
	activities []models.Memory
}

type fetchErrMsg struct {
	err error
}

type watchModel struct {
	client     *client.Client
	interval   time.Duration
	spinner    spinner.Model
	activities []models.Memory
	err        error
	loaded     bool
	width      int
}

func newWatchModel(c *client.Client, interval time.Duration) watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return watchModel{
		client:   c,
		interval: interval,
		spinner:  s,
		width:    80,
	}
}

func (m watchModel) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		activities, err := m.client.CurrentActivities()
		if err != nil {
			return fetchErrMsg{err: err}
		}
		return activitiesMsg{activities: activities}
	}
}

func (m watchModel) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd(), m.tickCmd())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.fetchCmd()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		return m, tea.Batch(m.fetchCmd(), m.tickCmd())

	case activitiesMsg:
		m.activities = msg.activities
		m.err = nil
		m.loaded = true

	case fetchErrMsg:
		m.err = msg.err
		m.loaded = true

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("▶ daybook · ongoing activities"))
	b.WriteString("\n")

	switch {
	case !m.loaded:
		b.WriteString(fmt.Sprintf("%s loading...\n", m.spinner.View()))

	case m.err != nil:
		b.WriteString(errStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")

	case len(m.activities) == 0:
		b.WriteString("Nothing is running right now.\n")

	default:
		now := time.Now()
		for i := range m.activities {
			a := &m.activities[i]

			elapsed := ""
			if a.StartTime != nil {
				elapsed = elapsedStyle.Render(formatElapsed(now.Sub(*a.StartTime)))
			}

			content := a.Content
			if idx := strings.IndexByte(content, '\n'); idx >= 0 {
				content = content[:idx]
			}
			if max := m.width - 20; max > 10 && len(content) > max {
				content = content[:max-3] + "..."
			}

			b.WriteString(fmt.Sprintf("%s %s  %s\n",
				m.spinner.View(), activityStyle.Render(content), elapsed))

			if a.TargetDuration != nil && a.StartTime != nil {
				progress := now.Sub(*a.StartTime).Seconds() / *a.TargetDuration
				b.WriteString(fmt.Sprintf("    %s\n", renderProgressBar(progress, 24)))
			}
			if len(a.Tags) > 0 {
				b.WriteString(tagStyle.Render(fmt.Sprintf("    %v", []string(a.Tags))))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString(helpStyle.Render("r refresh · q quit"))
	b.WriteString("\n")
	return b.String()
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	mnt := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, mnt)
	}
	return fmt.Sprintf("%dm%02ds", mnt, s)
}

func renderProgressBar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	over := ratio > 1
	if over {
		ratio = 1
	}

	filled := int(ratio * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := fmt.Sprintf(" %3.0f%%", ratio*100)
	if over {
		pct = " 100%+"
	}
	return elapsedStyle.Render(bar) + tagStyle.Render(pct)
}

// RunWatch starts the dashboard and blocks until the user quits.
func RunWatch(c *client.Client, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	_, err := tea.NewProgram(newWatchModel(c, interval), tea.WithAltScreen()).Run()
	return err
}
