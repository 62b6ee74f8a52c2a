package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/plateplan/internal/cli"
	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Headline KPIs with health labels",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	lp, err := loadPlan()
	if err != nil {
		return err
	}
	m := lp.Eval.Metrics

	fmt.Println()
	fmt.Println(cli.RenderTitle(planTitle("PLAN SUMMARY", lp)))
	fmt.Println()

	rows := [][]string{
		{"Revenue", cli.FormatCurrency(m.TotalRevenue), ""},
		{"Cost of Goods", cli.FormatCurrency(m.TotalCogs), ""},
		{"Gross Profit", cli.FormatCurrency(m.GrossProfit), ""},
		{"Gross Margin", cli.FormatPercent(m.GrossMarginPct), renderHealthCell(m, model.MetricGrossMargin)},
		{"---"},
		{"Operating Expenses", cli.FormatCurrency(m.TotalOpEx), ""},
		{"Payroll", cli.FormatCurrency(m.TotalPayroll), ""},
		{"Labor Cost", cli.FormatPercent(m.LaborPct), renderHealthCell(m, model.MetricLaborCost)},
		{"---"},
		{"Net Income", cli.RenderSigned(m.NetIncome), ""},
		{"Net Margin", cli.FormatPercent(m.NetMarginPct), renderHealthCell(m, model.MetricNetMargin)},
		{"---"},
		{"Break-Even Revenue", cli.FormatBreakEven(m.BreakEvenRevenue), ""},
		{"Funding Gap", cli.FormatCurrency(m.FundingGap), pipeline.FundingStatus(m.FundingGap)},
		{"Cash Runway", cli.FormatMonths(m.RunwayMonths), ""},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value", "Health"},
		Rows:    rows,
	}))

	if len(lp.Eval.Warnings) > 0 {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("%d input(s) adjusted by the %s policy", len(lp.Eval.Warnings), resolvedPolicyName())))
	}
	fmt.Println()
	return nil
}

func resolvedPolicyName() string {
	p, err := resolvePolicy()
	if err != nil {
		return "configured"
	}
	return string(p)
}
