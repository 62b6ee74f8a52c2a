package tui

import (
	"strings"

	"github.com/theirongolddev/plateplan/internal/cli"
	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/pipeline"
	"github.com/theirongolddev/plateplan/internal/tui/components"
	"github.com/theirongolddev/plateplan/internal/tui/theme"
)

func (a App) renderCostsTab(cw int) string {
	t := theme.Active
	p, m := a.eval.Plan, a.eval.Metrics
	var b strings.Builder

	salaries := p.Expenses.SalaryOwners + p.Expenses.SalaryFullTime + p.Expenses.SalaryPartTime
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Cost of Goods", Value: cli.FormatCurrency(m.TotalCogs),
			Note: cli.FormatPercent(pipeline.PercentOf(m.TotalCogs, m.TotalRevenue)) + " of revenue"},
		{Label: "Operating Expenses", Value: cli.FormatCurrency(m.TotalOpEx), Note: "excluding payroll"},
		{Label: "Payroll", Value: cli.FormatCurrency(m.TotalPayroll),
			Note: cli.FormatCompact(salaries) + " + " + cli.FormatRate(p.Expenses.PayrollTaxRate) + " tax"},
		{Label: "Labor Cost", Value: cli.FormatPercent(m.LaborPct), Note: "of revenue",
			Color: a.healthColor(model.MetricLaborCost)},
	}, cw))
	b.WriteString("\n")

	// COGS by category.
	innerW := components.CardInnerWidth(cw)
	categories := pipeline.CostBreakdown(p.Revenue, p.Cogs)
	rows := make([][]string, 0, len(categories)+2)
	for _, c := range categories {
		if c.Revenue == 0 && c.Cogs == 0 {
			continue
		}
		rows = append(rows, []string{
			c.Category,
			cli.FormatCurrency(c.Revenue),
			cli.FormatRate(c.Rate),
			cli.FormatCurrency(c.Cogs),
			cli.FormatPercent(c.SharePercent),
		})
	}
	rows = append(rows, separatorRow, []string{
		"Total",
		cli.FormatCurrency(m.TotalRevenue),
		cli.FormatPercent(pipeline.PercentOf(m.TotalCogs, m.TotalRevenue)),
		cli.FormatCurrency(m.TotalCogs),
		"",
	})
	b.WriteString(components.ContentCard("Cost of Goods Sold", cardTable([]column{
		{"Category", 0}, {"Revenue", 12}, {"Rate", 7}, {"COGS", 12}, {"Share", 7},
	}, rows, innerW), cw))
	b.WriteString("\n")

	// Operating expenses as a table and a mix chart.
	items := pipeline.ExpenseBreakdown(p.Expenses)
	b.WriteString(a.sideBySide(cw,
		func(w int) string {
			expRows := make([][]string, 0, len(items)+2)
			for _, it := range items {
				expRows = append(expRows, []string{
					it.Name,
					cli.FormatCurrency(it.Amount),
					cli.FormatPercent(pipeline.PercentOf(it.Amount, m.TotalRevenue)),
				})
			}
			expRows = append(expRows, separatorRow, []string{
				"Total",
				cli.FormatCurrency(m.TotalExpenses),
				cli.FormatPercent(pipeline.PercentOf(m.TotalExpenses, m.TotalRevenue)),
			})
			return components.ContentCard("Operating Expenses", cardTable([]column{
				{"Expense", 0}, {"Annual", 12}, {"% Rev", 7},
			}, expRows, components.CardInnerWidth(w)), w)
		},
		func(w int) string {
			return components.ContentCard("Expense Mix", shareBars(items, components.CardInnerWidth(w), t.Magenta), w)
		},
	))
	return b.String()
}
