package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/plateplan/internal/cli"
	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/pipeline"
)

var flagJitterSeed int64

var seasonalCmd = &cobra.Command{
	Use:   "seasonal",
	Short: "12-month revenue, cost, and customer projection",
	RunE:  runSeasonal,
}

func init() {
	seasonalCmd.Flags().Int64Var(&flagJitterSeed, "jitter-seed", -1, "Seed for reproducible cost jitter (-1 uses config)")
	rootCmd.AddCommand(seasonalCmd)
}

func runSeasonal(_ *cobra.Command, _ []string) error {
	lp, err := loadPlan()
	if err != nil {
		return err
	}
	m := lp.Eval.Metrics

	opts := seasonalOptions(lp.Eval.Plan, lp.Benchmarks)
	if flagJitterSeed >= 0 {
		seed := uint64(flagJitterSeed)
		opts.JitterSeed = &seed
	}
	months := pipeline.ProjectPlan(m, opts)

	fmt.Println()
	fmt.Println(cli.RenderTitle(planTitle("SEASONAL PROJECTION", lp)))
	fmt.Println()

	var totals model.MonthlyProjection
	rows := make([][]string, 0, len(months)+2)
	revenues := make([]float64, 0, len(months))
	for _, mp := range months {
		revenues = append(revenues, mp.Revenue)
		totals.Revenue += mp.Revenue
		totals.Cost += mp.Cost
		totals.Profit += mp.Profit
		totals.Customers += mp.Customers
		rows = append(rows, []string{
			mp.Label,
			cli.FormatCurrency(mp.Revenue),
			cli.FormatCurrency(mp.Cost),
			cli.RenderSigned(mp.Profit),
			fmt.Sprintf("%.0f%%", mp.MarginPct),
			cli.FormatCount(mp.Customers),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"TOTAL",
		cli.FormatCurrency(totals.Revenue),
		cli.FormatCurrency(totals.Cost),
		cli.RenderSigned(totals.Profit),
		cli.FormatPercent(pipeline.PercentOf(totals.Profit, totals.Revenue)),
		cli.FormatCount(totals.Customers),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Revenue", "Cost", "Profit", "Margin", "Customers"},
		Rows:    rows,
	}))

	fmt.Printf("  Revenue  %s  Jan-Dec\n", cli.RenderSparkline(revenues))
	fmt.Printf("  Customers at %s average order\n", cli.FormatUnitPrice(opts.AverageOrderValue))
	if opts.JitterSeed != nil {
		fmt.Printf("  Cost jitter seed %d\n", *opts.JitterSeed)
	}
	fmt.Println()
	return nil
}
