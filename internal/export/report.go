// Package export renders derived plan metrics as CSV or XLSX.
package export

import (
	"github.com/theirongolddev/plateplan/internal/cli"
	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/pipeline"
)

// Row is one Category/Value/Notes line of the summary export.
type Row struct {
	Category string
	Value    string
	Notes    string
}

// Header is the CSV header row.
var Header = []string{"Category", "Value", "Notes"}

// NoteUnreachable annotates a break-even that cannot be reached.
const NoteUnreachable = "Not reachable at current margin"

// Report bundles everything an export needs.
type Report struct {
	Plan    model.Plan
	Metrics model.Metrics
	Costs   []model.CostCategory
	Months  []model.MonthlyProjection
}

// NewReport builds a report from a derived plan.
func NewReport(p model.Plan, m model.Metrics, opts pipeline.SeasonalOptions) Report {
	return Report{
		Plan:    p,
		Metrics: m,
		Costs:   pipeline.CostBreakdown(p.Revenue, p.Cogs),
		Months:  pipeline.ProjectPlan(m, opts),
	}
}

// SummaryRows lists the headline metrics followed by one row per
// benchmark comparison. Every value is preformatted and never NaN or Inf.
func SummaryRows(m model.Metrics) []Row {
	breakEvenNote := "Annual revenue needed to cover expenses"
	if m.BreakEvenRevenue == nil {
		breakEvenNote = NoteUnreachable
	}
	monthlyNote := "Monthly revenue needed to cover expenses"
	if m.MonthsToBreakEven == nil {
		monthlyNote = NoteUnreachable
	}
	runwayNote := "Months of funding at current burn"
	if m.RunwayMonths == nil {
		runwayNote = "No expenses to burn funding"
	}

	rows := []Row{
		{"Total Revenue", cli.FormatCurrency(m.TotalRevenue), "Annual projected sales"},
		{"Total COGS", cli.FormatCurrency(m.TotalCogs), "Cost of goods sold"},
		{"Gross Profit", cli.FormatCurrency(m.GrossProfit), "Revenue minus COGS"},
		{"Gross Margin", cli.FormatPercent(m.GrossMarginPct), "Gross profit / revenue"},
		{"Operating Expenses", cli.FormatCurrency(m.TotalOpEx), "Fixed costs excluding payroll"},
		{"Payroll", cli.FormatCurrency(m.TotalPayroll), "Salaries plus payroll tax"},
		{"Total Expenses", cli.FormatCurrency(m.TotalExpenses), "Operating expenses plus payroll"},
		{"Labor Cost", cli.FormatPercent(m.LaborPct), "Payroll / revenue"},
		{"Net Income", cli.FormatCurrency(m.NetIncome), "Gross profit minus expenses"},
		{"Net Margin", cli.FormatPercent(m.NetMarginPct), "Net income / revenue"},
		{"Startup Costs", cli.FormatCurrency(m.TotalStartupCosts), "One-time pre-opening costs"},
		{"Total Funding", cli.FormatCurrency(m.TotalFunding), "All funding sources"},
		{"Funding Gap", cli.FormatCurrency(m.FundingGap), pipeline.FundingStatus(m.FundingGap)},
		{"Break-Even Revenue", cli.FormatBreakEven(m.BreakEvenRevenue), breakEvenNote},
		{"Monthly Burn Rate", cli.FormatCurrency(m.MonthlyBurnRate), "Total expenses / 12"},
		{"Cash Runway", cli.FormatMonths(m.RunwayMonths), runwayNote},
		{"Monthly Break-Even", cli.FormatBreakEven(m.MonthsToBreakEven), monthlyNote},
	}

	for _, c := range m.Health {
		rows = append(rows, Row{
			Category: "Health: " + c.Name,
			Value:    string(c.Label),
			Notes:    pipeline.Insight(c),
		})
	}
	return rows
}

