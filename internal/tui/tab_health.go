package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/plateplan/internal/cli"
	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/pipeline"
	"github.com/theirongolddev/plateplan/internal/tui/components"
	"github.com/theirongolddev/plateplan/internal/tui/theme"
)

func (a App) renderHealthTab(cw int) string {
	t := theme.Active
	m := a.eval.Metrics
	b := a.opts.Benchmarks
	var out strings.Builder

	counts := make(map[model.HealthLabel]int)
	for _, c := range m.Health {
		counts[c.Label]++
	}
	out.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Excellent", Value: fmt.Sprint(counts[model.HealthExcellent]), Color: t.Green},
		{Label: "Good", Value: fmt.Sprint(counts[model.HealthGood]), Color: t.Yellow},
		{Label: "Needs Attention", Value: fmt.Sprint(counts[model.HealthNeedsAttention]), Color: t.Red},
		{Label: "Market", Value: b.Market, Note: fmt.Sprintf("%d metrics tracked", len(m.Health))},
	}, cw))
	out.WriteString("\n")

	rows := make([][]string, 0, len(m.Health))
	for _, c := range m.Health {
		actual, bench := "n/a", formatComparison(c.Benchmark, c.Unit)
		if c.Defined {
			actual = formatComparison(c.Actual, c.Unit)
		}
		direction := "≥"
		if !c.HigherIsBetter {
			direction = "≤"
		}
		rows = append(rows, []string{c.Name, actual, direction + " " + bench, healthText(c.Label)})
	}
	out.WriteString(components.ContentCard("Benchmark Comparison", cardTable([]column{
		{"Metric", 0}, {"Plan", 10}, {"Benchmark", 12}, {"Health", 16},
	}, rows, components.CardInnerWidth(cw)), cw))
	out.WriteString("\n")

	insightStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	innerW := components.CardInnerWidth(cw)
	lines := make([]string, 0, len(m.Health))
	for _, c := range m.Health {
		bullet := lipgloss.NewStyle().Foreground(components.HealthColor(c.Label)).Background(t.Surface).Render("● ")
		lines = append(lines, bullet+insightStyle.Render(truncStr(pipeline.Insight(c), innerW-2)))
	}
	out.WriteString(components.ContentCard("Insights", strings.Join(lines, "\n"), cw))
	return out.String()
}

func formatComparison(v float64, u model.Unit) string {
	switch u {
	case model.UnitFraction:
		return cli.FormatRate(v)
	case model.UnitCurrency:
		return cli.FormatUnitPrice(v)
	default:
		return cli.FormatPercent(v)
	}
}
