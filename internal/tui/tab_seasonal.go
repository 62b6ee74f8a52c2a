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

func (a App) renderSeasonalTab(cw int) string {
	t := theme.Active
	months := a.months
	if len(months) == 0 {
		return components.ContentCard("Seasonal Projection", "No projection available", cw)
	}
	var b strings.Builder

	revenues := make([]float64, len(months))
	profits := make([]float64, len(months))
	labels := make([]string, len(months))
	var total model.MonthlyProjection
	peak, trough := months[0], months[0]
	for i, mp := range months {
		revenues[i] = mp.Revenue
		profits[i] = mp.Profit
		labels[i] = mp.Label
		total.Revenue += mp.Revenue
		total.Cost += mp.Cost
		total.Profit += mp.Profit
		total.Customers += mp.Customers
		if mp.Revenue > peak.Revenue {
			peak = mp
		}
		if mp.Revenue < trough.Revenue {
			trough = mp
		}
	}

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Peak Month", Value: peak.Label, Note: cli.FormatCurrency(peak.Revenue)},
		{Label: "Slowest Month", Value: trough.Label, Note: cli.FormatCurrency(trough.Revenue)},
		{Label: "Customers / Year", Value: cli.FormatCount(total.Customers), Note: "at " + cli.FormatUnitPrice(a.aov) + " per order"},
		{Label: "Projected Profit", Value: cli.FormatCurrency(total.Profit),
			Note: cli.FormatPercent(pipeline.PercentOf(total.Profit, total.Revenue)) + " margin"},
	}, cw))
	b.WriteString("\n")

	chartH := 10
	if a.isCompactLayout() {
		chartH = 7
	}
	b.WriteString(a.sideBySide(cw,
		func(w int) string {
			return components.ContentCard("Monthly Revenue",
				components.BarChart(revenues, labels, t.Blue, components.CardInnerWidth(w), chartH), w)
		},
		func(w int) string {
			return components.ContentCard("Monthly Profit",
				components.BarChart(profits, labels, t.Green, components.CardInnerWidth(w), chartH), w)
		},
	))
	b.WriteString("\n")

	rows := make([][]string, 0, len(months)+2)
	for _, mp := range months {
		rows = append(rows, []string{
			mp.Label,
			cli.FormatCurrency(mp.Revenue),
			cli.FormatCurrency(mp.Cost),
			signedText(mp.Profit),
			fmt.Sprintf("%.0f%%", mp.MarginPct),
			cli.FormatCount(mp.Customers),
		})
	}
	rows = append(rows, separatorRow, []string{
		"Total",
		cli.FormatCurrency(total.Revenue),
		cli.FormatCurrency(total.Cost),
		signedText(total.Profit),
		cli.FormatPercent(pipeline.PercentOf(total.Profit, total.Revenue)),
		cli.FormatCount(total.Customers),
	})
	b.WriteString(components.ContentCard("Projection", cardTable([]column{
		{"Month", 0}, {"Revenue", 12}, {"Cost", 12}, {"Profit", 12}, {"Margin", 7}, {"Customers", 10},
	}, rows, components.CardInnerWidth(cw)), cw))

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background).
		Render(" Revenue " + components.Sparkline(revenues, t.Blue)))
	return b.String()
}
