package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/plateplan/internal/tui/theme"
)

// StatusInfo is what the bottom bar reports about the loaded plan.
type StatusInfo struct {
	Plan        string
	Market      string
	Policy      string
	Warnings    int
	DataAge     string
	Refreshing  bool
	AutoRefresh bool
}

// RenderStatusBar renders the bottom status bar at the given width.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)
	planStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	left := mutedStyle.Render(" ") +
		keyStyle.Render("?") + mutedStyle.Render(" help  ") +
		keyStyle.Render("r") + mutedStyle.Render(" reload  ") +
		keyStyle.Render("q") + mutedStyle.Render(" quit  ")
	if info.Plan != "" {
		left += planStyle.Render(info.Plan) + mutedStyle.Render(fmt.Sprintf(" · %s · %s", info.Market, info.Policy))
	}
	if info.Warnings > 0 {
		left += warnStyle.Render(fmt.Sprintf("  ! %d warnings", info.Warnings))
	}

	var right strings.Builder
	switch {
	case info.Refreshing:
		right.WriteString("reloading… ")
	case info.AutoRefresh:
		right.WriteString("watching ")
	}
	if info.DataAge != "" {
		right.WriteString("derived in " + info.DataAge + " ")
	}
	rightStr := mutedStyle.Render(right.String())

	gap := width - lipgloss.Width(left) - lipgloss.Width(rightStr)
	if gap < 0 {
		gap = 0
	}
	return left + mutedStyle.Render(strings.Repeat(" ", gap)) + rightStr
}
