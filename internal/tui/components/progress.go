package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/tui/theme"
)

// HealthColor maps a health label to a theme color.
func HealthColor(label model.HealthLabel) lipgloss.Color {
	t := theme.Active
	switch label {
	case model.HealthExcellent:
		return t.Green
	case model.HealthGood:
		return t.Yellow
	case model.HealthNeedsAttention:
		return t.Red
	default:
		return t.TextMuted
	}
}

// CoverageColor colors a funding coverage ratio: full coverage is green,
// half or more is yellow, anything less is red.
func CoverageColor(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 1:
		return t.Green
	case pct >= 0.5:
		return t.Yellow
	default:
		return t.Red
	}
}

func clampUnit(pct float64) float64 {
	return min(max(pct, 0), 1)
}

// CoverageBar renders a labeled bar for the share of a total that is
// covered, e.g. funding raised against startup costs. pct may exceed 1; the
// bar saturates and the percentage shows the real value.
func CoverageBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active
	color := CoverageColor(pct)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(clampUnit(pct)) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%4.0f%%", pct*100))
}
