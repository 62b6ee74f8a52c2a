package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/plateplan/internal/cli"
	"github.com/theirongolddev/plateplan/internal/pipeline"
)

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Cost of goods by category, operating expenses, and payroll",
	RunE:  runCosts,
}

func init() {
	rootCmd.AddCommand(costsCmd)
}

func runCosts(_ *cobra.Command, _ []string) error {
	lp, err := loadPlan()
	if err != nil {
		return err
	}
	p, m := lp.Eval.Plan, lp.Eval.Metrics

	fmt.Println()
	fmt.Println(cli.RenderTitle(planTitle("COST BREAKDOWN", lp)))
	fmt.Println()

	categories := pipeline.CostBreakdown(p.Revenue, p.Cogs)
	cogsRows := make([][]string, 0, len(categories)+2)
	for _, c := range categories {
		if c.Revenue == 0 && c.Cogs == 0 {
			continue
		}
		cogsRows = append(cogsRows, []string{
			c.Category,
			cli.FormatCurrency(c.Revenue),
			cli.FormatRate(c.Rate),
			cli.FormatCurrency(c.Cogs),
			cli.FormatPercent(c.SharePercent),
		})
	}
	cogsRows = append(cogsRows, []string{"---"})
	cogsRows = append(cogsRows, []string{
		"TOTAL",
		cli.FormatCurrency(m.TotalRevenue),
		cli.FormatPercent(pipeline.PercentOf(m.TotalCogs, m.TotalRevenue)),
		cli.FormatCurrency(m.TotalCogs),
		"",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Cost of Goods Sold",
		Headers: []string{"Category", "Revenue", "Rate", "COGS", "Share"},
		Rows:    cogsRows,
	}))

	// Bars scale against the largest expense line.
	items := pipeline.ExpenseBreakdown(p.Expenses)
	var largest float64
	for _, it := range items {
		largest = max(largest, it.Amount)
	}

	expRows := make([][]string, 0, len(items)+2)
	for _, it := range items {
		expRows = append(expRows, []string{
			it.Name,
			cli.FormatCurrency(it.Amount),
			cli.FormatPercent(pipeline.PercentOf(it.Amount, m.TotalRevenue)),
		})
	}
	expRows = append(expRows, []string{"---"})
	expRows = append(expRows, []string{
		"TOTAL",
		cli.FormatCurrency(m.TotalExpenses),
		cli.FormatPercent(pipeline.PercentOf(m.TotalExpenses, m.TotalRevenue)),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Operating Expenses",
		Headers: []string{"Expense", "Annual", "% Revenue"},
		Rows:    expRows,
	}))

	if largest > 0 {
		fmt.Println("  Expense Mix")
		for _, it := range items {
			if it.Amount <= 0 {
				continue
			}
			fmt.Printf("%s %s\n", cli.RenderHorizontalBar(fmt.Sprintf("%-22s", it.Name), it.Amount, largest, 30), cli.FormatCompact(it.Amount))
		}
		fmt.Println()
	}

	fmt.Printf("  Payroll: %s salaries + %s tax = %s\n\n",
		cli.FormatCurrency(p.Expenses.SalaryOwners+p.Expenses.SalaryFullTime+p.Expenses.SalaryPartTime),
		cli.FormatRate(p.Expenses.PayrollTaxRate),
		cli.FormatCurrency(m.TotalPayroll))

	return nil
}
