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

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	p, m := a.eval.Plan, a.eval.Metrics
	var b strings.Builder

	// Row 1: headline KPIs, colored by health where a benchmark applies.
	netColor := t.Green
	if m.NetIncome < 0 {
		netColor = t.Red
	}
	fundingColor := t.Green
	if m.FundingGap > 0 {
		fundingColor = t.Orange
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Revenue", Value: cli.FormatCurrency(m.TotalRevenue), Note: cli.FormatCompact(m.TotalRevenue/12) + "/mo"},
		{Label: "Gross Margin", Value: cli.FormatPercent(m.GrossMarginPct), Note: "profit " + cli.FormatCompact(m.GrossProfit),
			Color: a.healthColor(model.MetricGrossMargin)},
		{Label: "Net Income", Value: cli.FormatCurrency(m.NetIncome), Note: cli.FormatPercent(m.NetMarginPct) + " net margin",
			Color: netColor},
		{Label: "Funding Gap", Value: cli.FormatCurrency(m.FundingGap), Note: pipeline.FundingStatus(m.FundingGap),
			Color: fundingColor},
	}, cw))
	b.WriteString("\n")

	// Row 2: survival metrics.
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Break-Even", Value: cli.FormatBreakEven(m.BreakEvenRevenue), Note: "annual revenue"},
		{Label: "Monthly Break-Even", Value: cli.FormatBreakEven(m.MonthsToBreakEven), Note: "revenue per month"},
		{Label: "Burn Rate", Value: cli.FormatCurrency(m.MonthlyBurnRate), Note: "per month"},
		{Label: "Runway", Value: cli.FormatMonths(m.RunwayMonths), Note: "on " + cli.FormatCompact(m.TotalFunding) + " raised"},
	}, cw))
	b.WriteString("\n")

	// Row 3: revenue mix and health summary.
	b.WriteString(a.sideBySide(cw,
		func(w int) string {
			mix := pipeline.CostBreakdown(p.Revenue, p.Cogs)
			items := make([]model.LineItem, 0, len(mix))
			for _, c := range mix {
				items = append(items, model.LineItem{Name: c.Category, Amount: c.Revenue})
			}
			return components.ContentCard("Revenue Mix", shareBars(items, components.CardInnerWidth(w), t.Blue), w)
		},
		func(w int) string {
			return components.ContentCard("Health", a.healthSummary(), w)
		},
	))

	if len(a.eval.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Adjusted Inputs (%s policy)", a.opts.Policy),
			a.warningList(), cw))
	}
	return b.String()
}

func (a App) healthColor(metric string) lipgloss.Color {
	for _, c := range a.eval.Metrics.Health {
		if c.Metric == metric {
			return components.HealthColor(c.Label)
		}
	}
	return ""
}

// healthSummary lists each metric name with its label, then the tally.
func (a App) healthSummary() string {
	t := theme.Active
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	counts := make(map[model.HealthLabel]int)
	var lines []string
	for _, c := range a.eval.Metrics.Health {
		counts[c.Label]++
		lines = append(lines, nameStyle.Render(fmt.Sprintf("%-22s", c.Name))+space.Render(" ")+healthText(c.Label))
	}
	lines = append(lines, dimStyle.Render(fmt.Sprintf("%d excellent · %d good · %d needs attention",
		counts[model.HealthExcellent], counts[model.HealthGood], counts[model.HealthNeedsAttention])))
	return strings.Join(lines, "\n")
}

func (a App) warningList() string {
	t := theme.Active
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	lines := make([]string, len(a.eval.Warnings))
	for i, fe := range a.eval.Warnings {
		lines[i] = warnStyle.Render("! " + fe.String())
	}
	return strings.Join(lines, "\n")
}
