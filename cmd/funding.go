package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/plateplan/internal/cli"
	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/pipeline"
)

var fundingCmd = &cobra.Command{
	Use:   "funding",
	Short: "Startup costs, funding gap, burn rate, runway, and break-even",
	RunE:  runFunding,
}

func init() {
	rootCmd.AddCommand(fundingCmd)
}

func runFunding(_ *cobra.Command, _ []string) error {
	lp, err := loadPlan()
	if err != nil {
		return err
	}
	p, m := lp.Eval.Plan, lp.Eval.Metrics

	fmt.Println()
	fmt.Println(cli.RenderTitle(planTitle("FUNDING & RUNWAY", lp)))
	fmt.Println()

	fmt.Print(cli.RenderTable(lineItemTable("Startup Costs", pipeline.StartupBreakdown(p.Startup), m.TotalStartupCosts)))
	fmt.Print(cli.RenderTable(lineItemTable("Funding Sources", pipeline.FundingBreakdown(p.Funding), m.TotalFunding)))

	if m.TotalStartupCosts > 0 {
		funded := int(min(m.TotalFunding, m.TotalStartupCosts))
		fmt.Printf("  Funded  %s\n\n", cli.RenderProgressBar(funded, int(m.TotalStartupCosts), 30))
	}

	rows := [][]string{
		{"Funding Gap", cli.FormatCurrency(m.FundingGap), pipeline.FundingStatus(m.FundingGap)},
		{"Monthly Burn Rate", cli.FormatCurrency(m.MonthlyBurnRate), "Total expenses / 12"},
		{"Cash Runway", cli.FormatMonths(m.RunwayMonths), runwayNote(m)},
		{"---"},
		{"Break-Even Revenue", cli.FormatBreakEven(m.BreakEvenRevenue), breakEvenNote(m.BreakEvenRevenue, "per year")},
		{"Monthly Break-Even", cli.FormatBreakEven(m.MonthsToBreakEven), breakEvenNote(m.MonthsToBreakEven, "per month")},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Runway",
		Headers: []string{"Metric", "Value", "Notes"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func lineItemTable(title string, items []model.LineItem, total float64) cli.Table {
	rows := make([][]string, 0, len(items)+2)
	for _, it := range items {
		if it.Amount == 0 {
			continue
		}
		rows = append(rows, []string{it.Name, cli.FormatCurrency(it.Amount), cli.FormatPercent(pipeline.PercentOf(it.Amount, total))})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"TOTAL", cli.FormatCurrency(total), ""})
	return cli.Table{
		Title:   title,
		Headers: []string{"Item", "Amount", "Share"},
		Rows:    rows,
	}
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
