package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/plateplan/internal/export"
)

var (
	flagExportFormat string
	flagExportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export derived metrics as CSV or XLSX",
	Example: "  plateplan export -f bistro.toml > bistro.csv\n" +
		"  plateplan export -f bistro.toml --format xlsx --out bistro.xlsx",
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportFormat, "format", "csv", "Output format: csv or xlsx")
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output file (CSV defaults to stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	lp, err := loadPlan()
	if err != nil {
		return err
	}
	p, m := lp.Eval.Plan, lp.Eval.Metrics

	switch strings.ToLower(flagExportFormat) {
	case "csv":
		out := os.Stdout
		if flagExportOut != "" {
			f, err := os.Create(flagExportOut) //nolint:gosec // output path is chosen by the local user
			if err != nil {
				return fmt.Errorf("creating %s: %w", flagExportOut, err)
			}
			defer func() { _ = f.Close() }()
			out = f
		}
		if err := export.WriteCSV(out, export.SummaryRows(m)); err != nil {
			return err
		}
	case "xlsx":
		if flagExportOut == "" {
			return errors.New("xlsx export needs --out")
		}
		report := export.NewReport(p, m, seasonalOptions(p, lp.Benchmarks))
		if err := export.SaveXLSX(flagExportOut, report); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export format %q (want csv or xlsx)", flagExportFormat)
	}

	if flagExportOut != "" && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %s\n", flagExportOut)
	}
	return nil
}
