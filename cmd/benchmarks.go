package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/plateplan/internal/cli"
	"github.com/theirongolddev/plateplan/internal/config"
)

var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "List benchmark sets per market, with config overrides applied",
	RunE:  runBenchmarks,
}

func init() {
	rootCmd.AddCommand(benchmarksCmd)
}

func runBenchmarks(_ *cobra.Command, _ []string) error {
	active := config.NormalizeMarketName(resolveMarket())

	fmt.Println()
	fmt.Println(cli.RenderTitle("MARKET BENCHMARKS"))
	fmt.Println()

	rows := [][]string{}
	for _, market := range config.Markets(appCfg) {
		b, err := config.ResolveBenchmarks(appCfg, market)
		if err != nil {
			return err
		}
		name := b.Market
		if name == active {
			name += " *"
		}
		if config.HasOverride(appCfg, b.Market) {
			name += " (override)"
		}
		rows = append(rows, []string{
			name,
			cli.FormatRate(b.AvgFoodCostPercent),
			cli.FormatRate(b.AvgLaborPercent),
			cli.FormatUnitPrice(b.AvgRentPerSqFt),
			cli.FormatUnitPrice(b.AvgSeatPrice),
			cli.FormatCurrency(b.AvgStartupCostPerSeat),
			cli.FormatPercent(b.GrossMarginTarget),
			cli.FormatPercent(b.NetMarginTarget),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Market", "Food", "Labor", "Rent/sqft", "Check", "Startup/seat", "Gross", "Net"},
		Rows:    rows,
	}))
	fmt.Println("  * active market. Override values under [benchmarks.overrides.<market>] in config.")
	fmt.Println()
	return nil
}
