package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/plateplan/internal/tui/theme"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as a one-line block chart scaled to the peak.
// Values at or below zero use the lowest block.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[min(max(idx, 0), len(sparkBlocks)-1)])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(buf.String())
}

// BarChart renders a vertical bar chart with a zero baseline. Positive
// values grow up in color, negative values hang below the axis in red.
// Charts smaller than 15x3 fall back to a sparkline.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	hi, lo := 0.0, 0.0
	for _, v := range values {
		hi = max(hi, v)
		lo = min(lo, v)
	}
	span := hi - lo
	if span == 0 {
		span, hi = 1, 1
	}
	upRows := int(math.Round(float64(height) * hi / span))
	downRows := height - upRows
	if lo < 0 && downRows == 0 {
		downRows, upRows = 1, height-1
	}

	labelW := max(len(formatChartLabel(hi)), len(formatChartLabel(lo)), 1)
	n := len(values)
	barW := min(max((width-labelW-1-(n-1))/n, 1), 6)
	axisLen := n*barW + n - 1

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	upStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	downStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	writeRow := func(label string, cell func(v float64) (string, lipgloss.Style)) {
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", labelW, label)))
		b.WriteString(axisStyle.Render("│"))
		for i, v := range values {
			if i > 0 {
				b.WriteString(blank.Render(" "))
			}
			glyph, style := cell(v)
			b.WriteString(style.Render(strings.Repeat(glyph, barW)))
		}
		b.WriteString("\n")
	}

	for row := upRows; row >= 1; row-- {
		top := hi * float64(row) / float64(upRows)
		bottom := hi * float64(row-1) / float64(upRows)
		label := ""
		if row == upRows {
			label = formatChartLabel(hi)
		}
		writeRow(label, func(v float64) (string, lipgloss.Style) {
			switch {
			case v >= top:
				return "█", upStyle
			case v > bottom:
				idx := int((v - bottom) / (top - bottom) * float64(len(sparkBlocks)))
				return string(sparkBlocks[min(max(idx, 0), len(sparkBlocks)-1)]), upStyle
			default:
				return " ", blank
			}
		})
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", labelW, "0")))
	b.WriteString(axisStyle.Render("┼" + strings.Repeat("─", axisLen)))
	b.WriteString("\n")

	for row := 1; row <= downRows; row++ {
		depth := lo * float64(row-1) / float64(downRows)
		label := ""
		if row == downRows {
			label = formatChartLabel(lo)
		}
		writeRow(label, func(v float64) (string, lipgloss.Style) {
			if v < depth {
				return "█", downStyle
			}
			return " ", blank
		})
	}

	if len(labels) == n {
		line := make([]rune, axisLen)
		for i := range line {
			line[i] = ' '
		}
		lastEnd := -1
		for i, lbl := range labels {
			pos := i * (barW + 1)
			lr := []rune(lbl)
			if pos <= lastEnd || pos+len(lr) > axisLen {
				continue
			}
			copy(line[pos:], lr)
			lastEnd = pos + len(lr)
		}
		b.WriteString(blank.Render(strings.Repeat(" ", labelW+1)))
		b.WriteString(axisStyle.Render(strings.TrimRight(string(line), " ")))
	}

	return strings.TrimRight(b.String(), "\n")
}

// formatChartLabel renders an axis value in compact dollars, e.g. $60k.
func formatChartLabel(v float64) string {
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	var s string
	switch {
	case v >= 1e6:
		s = trimZero(fmt.Sprintf("%.1f", v/1e6)) + "M"
	case v >= 1e3:
		s = trimZero(fmt.Sprintf("%.1f", v/1e3)) + "k"
	default:
		s = fmt.Sprintf("%.0f", v)
	}
	return sign + "$" + s
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
