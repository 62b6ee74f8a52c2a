package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/plateplan/internal/cli"
	"github.com/theirongolddev/plateplan/internal/config"
	"github.com/theirongolddev/plateplan/internal/pipeline"
	"github.com/theirongolddev/plateplan/internal/source"
	"github.com/theirongolddev/plateplan/internal/store"
)

var (
	flagDraftID    string
	flagDraftName  string
	flagDraftWrite string
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Save, list, and restore plan drafts",
	RunE:  runDraftsList,
}

var draftsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved drafts, newest first",
	RunE:  runDraftsList,
}

var draftsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current plan as a draft",
	RunE:  runDraftsSave,
}

var draftsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a draft's summary, or write it back to a plan file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftsShow,
}

var draftsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftsDelete,
}

func init() {
	draftsSaveCmd.Flags().StringVar(&flagDraftID, "id", "", "Update an existing draft (ID or prefix)")
	draftsSaveCmd.Flags().StringVar(&flagDraftName, "name", "", "Draft name (defaults to the plan name)")
	draftsShowCmd.Flags().StringVar(&flagDraftWrite, "write", "", "Write the draft to a .toml or .json plan file")

	draftsCmd.AddCommand(draftsListCmd, draftsSaveCmd, draftsShowCmd, draftsDeleteCmd)
	rootCmd.AddCommand(draftsCmd)
}

func openStore() (*store.Store, error) {
	s, err := store.Open(config.StorePath())
	if err != nil {
		return nil, fmt.Errorf("opening draft store: %w", err)
	}
	return s, nil
}

func runDraftsList(_ *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	drafts, err := s.ListDrafts()
	if err != nil {
		return err
	}
	if len(drafts) == 0 {
		fmt.Println("\n  No drafts saved yet. Run `plateplan drafts save -f plan.toml`.")
		return nil
	}

	rows := make([][]string, 0, len(drafts))
	for _, d := range drafts {
		rows = append(rows, []string{
			shortID(d.ID),
			d.Name,
			d.Market,
			cli.FormatCompact(pipeline.TotalRevenue(d.Plan.Revenue)),
			d.UpdatedAt.Local().Format(time.DateTime),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Drafts",
		Headers: []string{"ID", "Name", "Market", "Revenue", "Updated"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runDraftsSave(_ *cobra.Command, _ []string) error {
	lp, err := loadPlan()
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	d := store.Draft{Name: flagDraftName, Market: lp.Benchmarks.Market, Plan: lp.Eval.Plan}
	if flagDraftID != "" {
		existing, err := s.GetDraft(flagDraftID)
		if err != nil {
			return err
		}
		d.ID = existing.ID
		d.CreatedAt = existing.CreatedAt
		if d.Name == "" {
			d.Name = existing.Name
		}
	}

	saved, err := s.SaveDraft(d)
	if err != nil {
		return err
	}
	fmt.Printf("  Saved draft %s (%s)\n", shortID(saved.ID), saved.Name)
	return nil
}

func runDraftsShow(_ *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	d, err := s.GetDraft(args[0])
	if err != nil {
		return err
	}

	if flagDraftWrite != "" {
		if err := source.WritePlan(flagDraftWrite, d.Plan); err != nil {
			return err
		}
		fmt.Printf("  Wrote draft %s to %s\n", shortID(d.ID), flagDraftWrite)
		return nil
	}

	market := d.Market
	if flagMarket != "" {
		market = flagMarket
	}
	b, err := config.ResolveBenchmarks(appCfg, market)
	if err != nil {
		return err
	}
	m := pipeline.Derive(d.Plan, b)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DRAFT  %s (%s)", d.Name, b.Market)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"ID", d.ID},
			{"Created", d.CreatedAt.Local().Format(time.DateTime)},
			{"Updated", d.UpdatedAt.Local().Format(time.DateTime)},
			{"---"},
			{"Revenue", cli.FormatCurrency(m.TotalRevenue)},
			{"Gross Margin", cli.FormatPercent(m.GrossMarginPct)},
			{"Net Income", cli.RenderSigned(m.NetIncome)},
			{"Break-Even Revenue", cli.FormatBreakEven(m.BreakEvenRevenue)},
			{"Funding Gap", cli.FormatCurrency(m.FundingGap)},
			{"Cash Runway", cli.FormatMonths(m.RunwayMonths)},
			{"Health", healthTally(m)},
		},
	}))
	fmt.Println()
	return nil
}

func runDraftsDelete(_ *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	d, err := s.GetDraft(args[0])
	if err != nil {
		return err
	}
	if err := s.DeleteDraft(d.ID); err != nil {
		return err
	}
	fmt.Printf("  Deleted draft %s (%s)\n", shortID(d.ID), d.Name)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
