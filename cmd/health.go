package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/plateplan/internal/cli"
	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/pipeline"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Compare the plan against market benchmarks",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(_ *cobra.Command, _ []string) error {
	lp, err := loadPlan()
	if err != nil {
		return err
	}
	m := lp.Eval.Metrics

	fmt.Println()
	fmt.Println(cli.RenderTitle(planTitle("PLAN HEALTH", lp)))
	fmt.Println()

	counts := make(map[model.HealthLabel]int)
	rows := make([][]string, 0, len(m.Health))
	for _, c := range m.Health {
		counts[c.Label]++
		actual, bench := "n/a", formatComparison(c.Benchmark, c.Unit)
		if c.Defined {
			actual = formatComparison(c.Actual, c.Unit)
		}
		direction := "lower is better"
		if c.HigherIsBetter {
			direction = "higher is better"
		}
		rows = append(rows, []string{c.Name, actual, bench, direction, cli.RenderHealth(c.Label)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Plan", "Benchmark", "Direction", "Health"},
		Rows:    rows,
	}))

	fmt.Println("  Insights")
	for _, c := range m.Health {
		fmt.Printf("    %s\n", pipeline.Insight(c))
	}
	fmt.Println()
	fmt.Printf("  %d excellent, %d good, %d need attention\n\n",
		counts[model.HealthExcellent], counts[model.HealthGood], counts[model.HealthNeedsAttention])
	return nil
}

func formatComparison(v float64, u model.Unit) string {
	switch u {
	case model.UnitPercent:
		return cli.FormatPercent(v)
	case model.UnitFraction:
		return cli.FormatRate(v)
	default:
		return cli.FormatUnitPrice(v)
	}
}
