package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/tui/theme"
)

// Styles are built from the active theme on each call so that a theme
// selected in config applies to plain CLI output too.
func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.Active.TextPrimary).Align(lipgloss.Center)
}

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.Active.Accent)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Active.TextPrimary)
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Active.TextMuted)
}

func dimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Active.TextDim)
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle().Render(title))
}

// RenderTable renders a bordered table with headers and rows. A row holding
// the single cell "---" renders as a separator. Every column after the
// first is right-aligned.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	widths := columnWidths(t, numCols)

	dim := dimStyle()
	rule := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(dim.Render(left))
		for i, w := range widths {
			b.WriteString(dim.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dim.Render(mid))
			}
		}
		b.WriteString(dim.Render(right))
		b.WriteString("\n")
		return b.String()
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle().Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule("╭", "┬", "╮"))

	if len(t.Headers) > 0 {
		b.WriteString(dim.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle().Render(fmt.Sprintf(" %-*s ", widths[i], h)))
			if i < numCols-1 {
				b.WriteString(dim.Render("│"))
			}
		}
		b.WriteString(dim.Render("│"))
		b.WriteString("\n")
		b.WriteString(rule("├", "┼", "┤"))
	}

	val := valueStyle()
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}

		b.WriteString(dim.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := lipgloss.Width(cell)
			space := strings.Repeat(" ", max(widths[i]-pad, 0))
			if i == 0 {
				b.WriteString(val.Render(" " + cell + space + " "))
			} else {
				b.WriteString(val.Render(" " + space + cell + " "))
			}
			if i < numCols-1 {
				b.WriteString(dim.Render("│"))
			}
		}
		b.WriteString(dim.Render("│"))
		b.WriteString("\n")
	}

	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

func columnWidths(t Table, numCols int) []int {
	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	for i, h := range t.Headers {
		if i < numCols {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			continue
		}
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	return widths
}

// HealthColor maps a health label to its theme color.
func HealthColor(label model.HealthLabel) lipgloss.Color {
	switch label {
	case model.HealthExcellent:
		return theme.Active.Green
	case model.HealthGood:
		return theme.Active.Yellow
	default:
		return theme.Active.Red
	}
}

// RenderHealth renders a colored health label.
func RenderHealth(label model.HealthLabel) string {
	return lipgloss.NewStyle().Bold(true).Foreground(HealthColor(label)).Render(string(label))
}

// RenderSigned colors a currency amount green when non-negative, red otherwise.
func RenderSigned(v float64) string {
	color := theme.Active.Green
	if v < 0 {
		color = theme.Active.Red
	}
	return lipgloss.NewStyle().Foreground(color).Render(FormatCurrency(v))
}

// RenderWarning renders a warning line on the orange accent.
func RenderWarning(msg string) string {
	return lipgloss.NewStyle().Foreground(theme.Active.Orange).Render("! " + msg)
}

// RenderMuted renders secondary text.
func RenderMuted(s string) string {
	return mutedStyle().Render(s)
}

// RenderProgressBar renders a simple text progress bar.
func RenderProgressBar(current, total int, width int) string {
	if total <= 0 {
		return ""
	}

	pct := float64(current) / float64(total)
	if pct > 1 {
		pct = 1
	}
	filled := min(int(pct*float64(width)), width)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s/%s",
		mutedStyle().Render(bar),
		FormatNumber(int64(current)),
		FormatNumber(int64(total)),
	)
}

// RenderSparkline generates a unicode block sparkline from a series of
// values. Negative values render as the lowest block.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		b.WriteRune(blocks[idx])
	}
	return b.String()
}

// RenderHorizontalBar renders a labeled bar scaled against maxValue.
func RenderHorizontalBar(label string, value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 || value <= 0 {
		return fmt.Sprintf("  %s", label)
	}
	barLen := min(int(value/maxValue*float64(maxWidth)), maxWidth)
	bar := lipgloss.NewStyle().Foreground(theme.Active.Accent).Render(strings.Repeat("█", barLen))
	return fmt.Sprintf("  %s %s", label, bar)
}
