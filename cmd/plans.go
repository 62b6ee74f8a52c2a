package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/plateplan/internal/cli"
	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/pipeline"
)

var flagPlansSort string

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Compare every plan file in the plans directory",
	RunE:  runPlans,
}

func init() {
	plansCmd.Flags().StringVar(&flagPlansSort, "sort", "name", "Sort by: name, revenue, net, runway")
	rootCmd.AddCommand(plansCmd)
}

func runPlans(_ *cobra.Command, _ []string) error {
	b, err := resolveBenchmarks()
	if err != nil {
		return err
	}
	policy, err := resolvePolicy()
	if err != nil {
		return err
	}

	result, err := loadPlans()
	if err != nil {
		return err
	}
	if len(result.Plans) == 0 {
		fmt.Printf("\n  No plan files found in %s.\n", plansDir())
		fmt.Println("  Plans are .toml or .json files; see `plateplan drafts save` to create one.")
		return nil
	}

	var (
		summaries []model.PlanSummary
		invalid   [][]string
	)
	for _, lp := range result.Plans {
		p, _, err := pipeline.ApplyPolicy(lp.Plan, policy)
		if err != nil {
			var ie *pipeline.InputError
			if errors.As(err, &ie) {
				invalid = append(invalid, []string{lp.File.Name, fmt.Sprintf("%d out-of-range field(s)", len(ie.Fields))})
				continue
			}
			return err
		}
		summaries = append(summaries, model.PlanSummary{
			Plan:     p,
			FilePath: lp.File.Path,
			Metrics:  pipeline.Derive(p, b),
		})
	}
	sortSummaries(summaries, flagPlansSort)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PLANS  %s (%s)", plansDir(), b.Market)))
	fmt.Println()

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		m := s.Metrics
		rows = append(rows, []string{
			s.Plan.Name,
			cli.FormatCompact(m.TotalRevenue),
			cli.FormatPercent(m.GrossMarginPct),
			cli.RenderSigned(m.NetIncome),
			cli.FormatBreakEven(m.BreakEvenRevenue),
			cli.FormatMonths(m.RunwayMonths),
			healthTally(m),
			relPath(s.FilePath),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Plan", "Revenue", "Gross", "Net", "Break-Even", "Runway", "Health", "File"},
		Rows:    rows,
	}))

	if len(invalid) > 0 {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Rejected (try --rate-policy clamp)",
			Headers: []string{"File", "Problem"},
			Rows:    invalid,
		}))
	}
	if result.FileErrors > 0 {
		fmt.Fprintf(os.Stderr, "\n  %d files could not be parsed\n", result.FileErrors)
		for _, e := range result.Errors {
			logger.WithError(e).Debug("parse failure")
		}
	}
	fmt.Println()
	return nil
}

func sortSummaries(s []model.PlanSummary, by string) {
	sort.SliceStable(s, func(i, j int) bool {
		a, b := s[i].Metrics, s[j].Metrics
		switch by {
		case "revenue":
			return a.TotalRevenue > b.TotalRevenue
		case "net":
			return a.NetIncome > b.NetIncome
		case "runway":
			return runwayKey(a) > runwayKey(b)
		default:
			return s[i].Plan.Name < s[j].Plan.Name
		}
	})
}

// runwayKey orders unlimited runway first.
func runwayKey(m model.Metrics) float64 {
	if m.RunwayMonths == nil {
		return 1e18
	}
	return *m.RunwayMonths
}

// healthTally renders e.g. "5/2/0" for excellent/good/needs-attention.
func healthTally(m model.Metrics) string {
	var ex, good, attn int
	for _, c := range m.Health {
		switch c.Label {
		case model.HealthExcellent:
			ex++
		case model.HealthGood:
			good++
		default:
			attn++
		}
	}
	return fmt.Sprintf("%d/%d/%d", ex, good, attn)
}

func relPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil {
		return rel
	}
	return path
}
