package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/plateplan/internal/cli"
	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/tui/components"
	"github.com/theirongolddev/plateplan/internal/tui/theme"
)

// column describes one column of a card table. The first column is left
// aligned and takes the remaining width; the rest are right aligned.
type column struct {
	title string
	width int
}

// separatorRow marks a rule line inside a card table.
var separatorRow = []string{"---"}

// cardTable renders rows as aligned text for a ContentCard body.
// Cells may carry styling; widths are measured with lipgloss.Width.
func cardTable(cols []column, rows [][]string, innerW int) string {
	t := theme.Active
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	ruleStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	cellStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	fixed := 0
	for _, c := range cols[1:] {
		fixed += c.width + 1
	}
	firstW := max(innerW-fixed, 10)
	total := firstW + fixed

	pad := func(s string, w int, right bool) string {
		gap := max(w-lipgloss.Width(s), 0)
		if right {
			return space.Render(strings.Repeat(" ", gap)) + s
		}
		return s + space.Render(strings.Repeat(" ", gap))
	}
	line := func(cells []string, style lipgloss.Style) string {
		var b strings.Builder
		for i, c := range cols {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if !strings.Contains(cell, "\x1b") {
				cell = style.Render(cell)
			}
			if i == 0 {
				b.WriteString(pad(cell, firstW, false))
				continue
			}
			b.WriteString(space.Render(" "))
			b.WriteString(pad(cell, c.width, true))
		}
		return b.String()
	}

	var b strings.Builder
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
	}
	b.WriteString(line(titles, headerStyle))
	b.WriteString("\n")
	b.WriteString(ruleStyle.Render(strings.Repeat("─", total)))
	for _, r := range rows {
		b.WriteString("\n")
		if len(r) == 1 && r[0] == separatorRow[0] {
			b.WriteString(ruleStyle.Render(strings.Repeat("─", total)))
			continue
		}
		if len(r) > 0 && !strings.Contains(r[0], "\x1b") {
			r = append([]string{truncStr(r[0], firstW)}, r[1:]...)
		}
		b.WriteString(line(r, cellStyle))
	}
	return b.String()
}

// healthText renders a health label in its color.
func healthText(label model.HealthLabel) string {
	if label == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(components.HealthColor(label)).
		Background(theme.Active.Surface).
		Bold(true).
		Render(string(label))
}

// signedText renders a dollar amount green when positive and red when negative.
func signedText(v float64) string {
	t := theme.Active
	color := t.TextPrimary
	switch {
	case v > 0:
		color = t.Green
	case v < 0:
		color = t.Red
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(cli.FormatCurrency(v))
}

// shareBars renders one horizontal bar per item, scaled to the largest.
func shareBars(items []model.LineItem, innerW int, color lipgloss.Color) string {
	t := theme.Active
	largest := 0.0
	nameW := 10
	for _, it := range items {
		largest = max(largest, it.Amount)
		nameW = max(nameW, lipgloss.Width(it.Name))
	}
	if largest <= 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("nothing to show")
	}
	nameW = min(nameW, innerW/3)

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	numStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	const numW = 8
	barMax := max(innerW-nameW-numW-2, 1)

	var lines []string
	for _, it := range items {
		if it.Amount <= 0 {
			continue
		}
		n := int(it.Amount / largest * float64(barMax))
		lines = append(lines, nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(it.Name, nameW)))+
			space.Render(" ")+
			barStyle.Render(strings.Repeat("█", n))+
			space.Render(strings.Repeat(" ", barMax-n+1))+
			numStyle.Render(fmt.Sprintf("%*s", numW, cli.FormatCompact(it.Amount))))
	}
	return strings.Join(lines, "\n")
}

// sideBySide places two cards in a row, or stacks them in compact layouts.
func (a App) sideBySide(cw int, left, right func(w int) string) string {
	if a.isCompactLayout() {
		return left(cw) + "\n" + right(cw)
	}
	halves := components.LayoutRow(cw, 2)
	return components.CardRow([]string{left(halves[0]), right(halves[1])})
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// scrollLines drops the first n lines, keeping at least one.
func scrollLines(s string, n int) string {
	if n <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	n = min(n, len(lines)-1)
	return strings.Join(lines[n:], "\n")
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with the background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
