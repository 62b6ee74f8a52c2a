package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/plateplan/internal/cli"
	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/pipeline"
	"github.com/theirongolddev/plateplan/internal/tui/components"
	"github.com/theirongolddev/plateplan/internal/tui/theme"
)

func (a App) renderFundingTab(cw int) string {
	t := theme.Active
	p, m := a.eval.Plan, a.eval.Metrics
	var b strings.Builder

	// Coverage: funding raised against startup costs.
	innerW := components.CardInnerWidth(cw)
	coverage := 1.0
	if m.TotalStartupCosts > 0 {
		coverage = m.TotalFunding / m.TotalStartupCosts
	}
	statusColor := t.Green
	if m.FundingGap > 0 {
		statusColor = t.Orange
	}
	status := lipgloss.NewStyle().Foreground(statusColor).Background(t.Surface).Bold(true).
		Render(pipeline.FundingStatus(m.FundingGap))
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	const labelW = 8
	coverageBody := components.CoverageBar("Funded", coverage, labelW, max(innerW-labelW-7, 10)) + "\n" +
		status + muted.Render("  "+cli.FormatCurrency(m.TotalFunding)+" raised of "+cli.FormatCurrency(m.TotalStartupCosts))
	b.WriteString(components.ContentCard("Startup Funding", coverageBody, cw))
	b.WriteString("\n")

	b.WriteString(a.sideBySide(cw,
		func(w int) string {
			return components.ContentCard("Startup Costs",
				lineItemCard(pipeline.StartupBreakdown(p.Startup), m.TotalStartupCosts, components.CardInnerWidth(w)), w)
		},
		func(w int) string {
			return components.ContentCard("Funding Sources",
				lineItemCard(pipeline.FundingBreakdown(p.Funding), m.TotalFunding, components.CardInnerWidth(w)), w)
		},
	))
	b.WriteString("\n")

	rows := [][]string{
		{"Funding Gap", cli.FormatCurrency(m.FundingGap), pipeline.FundingStatus(m.FundingGap)},
		{"Monthly Burn Rate", cli.FormatCurrency(m.MonthlyBurnRate), "Total expenses / 12"},
		{"Cash Runway", cli.FormatMonths(m.RunwayMonths), runwayNote(m)},
		separatorRow,
		{"Break-Even Revenue", cli.FormatBreakEven(m.BreakEvenRevenue), breakEvenNote(m.BreakEvenRevenue, "per year")},
		{"Monthly Break-Even", cli.FormatBreakEven(m.MonthsToBreakEven), breakEvenNote(m.MonthsToBreakEven, "per month")},
	}
	b.WriteString(components.ContentCard("Runway & Break-Even", cardTable([]column{
		{"Metric", 0}, {"Value", 14}, {"Notes", 32},
	}, rows, innerW), cw))
	return b.String()
}

func lineItemCard(items []model.LineItem, total float64, innerW int) string {
	rows := make([][]string, 0, len(items)+2)
	for _, it := range items {
		if it.Amount == 0 {
			continue
		}
		rows = append(rows, []string{it.Name, cli.FormatCurrency(it.Amount), cli.FormatPercent(pipeline.PercentOf(it.Amount, total))})
	}
	rows = append(rows, separatorRow, []string{"Total", cli.FormatCurrency(total), ""})
	return cardTable([]column{{"Item", 0}, {"Amount", 12}, {"Share", 7}}, rows, innerW)
}

func runwayNote(m model.Metrics) string {
	switch {
	case m.RunwayMonths == nil:
		return "No expenses to burn funding"
	case m.TotalFunding <= 0:
		return "No funding"
	default:
		return "Funding / monthly burn"
	}
}

func breakEvenNote(v *float64, period string) string {
	if v == nil {
		return "Not reachable at current margin"
	}
	return "Revenue needed " + period
}
