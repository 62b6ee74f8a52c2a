package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/plateplan/internal/cli"
	"github.com/theirongolddev/plateplan/internal/config"
	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/pipeline"
	"github.com/theirongolddev/plateplan/internal/source"
	"github.com/theirongolddev/plateplan/internal/store"
	"github.com/theirongolddev/plateplan/internal/tui/theme"
)

var (
	flagPlan       string
	flagPlansDir   string
	flagMarket     string
	flagRatePolicy string
	flagNoCache    bool
	flagQuiet      bool
	flagVerbose    bool
)

// appCfg and logger are set in PersistentPreRunE before any command runs.
var (
	appCfg = config.DefaultConfig()
	logger = config.NewLogger("warn", os.Stderr)
)

var rootCmd = &cobra.Command{
	Use:   "plateplan",
	Short: "Restaurant financial model and health check",
	Long: "Derive revenue, margins, break-even, and runway from a restaurant plan file,\n" +
		"and score the plan against market benchmarks.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPlan, "plan", "f", "", "Plan file (.toml or .json)")
	rootCmd.PersistentFlags().StringVar(&flagPlansDir, "plans-dir", "", "Directory of plan files (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagMarket, "market", "", "Benchmark market (national, boston, new-york, chicago, ...)")
	rootCmd.PersistentFlags().StringVar(&flagRatePolicy, "rate-policy", "", "Out-of-range input handling: reject, clamp, or ignore")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse every plan file")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output and warnings")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// setup loads .env, the config file, the logger, and the theme.
func setup(_ *cobra.Command, _ []string) error {
	// A missing .env is normal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "  Ignoring .env: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	appCfg = cfg

	level := cfg.Log.Level
	switch {
	case flagVerbose:
		level = "debug"
	case flagQuiet:
		level = "error"
	}
	logger = config.NewLogger(level, os.Stderr)

	if !theme.SetActive(cfg.Appearance.Theme) {
		logger.WithField("theme", cfg.Appearance.Theme).Warn("unknown theme, using flexoki-dark")
	}
	return nil
}

// resolvePlanPath picks the plan file: --plan, then PLATEPLAN_PLAN or
// general.default_plan, then the only plan file in the plans directory.
func resolvePlanPath() (string, error) {
	if flagPlan != "" {
		return flagPlan, nil
	}
	if p := config.GetPlanPath(appCfg); p != "" {
		return p, nil
	}

	dir := plansDir()
	files, err := source.ScanDir(dir)
	if err != nil {
		return "", fmt.Errorf("scanning %s: %w", dir, err)
	}
	switch len(files) {
	case 0:
		return "", fmt.Errorf("no plan file found in %s; pass --plan or set general.default_plan", dir)
	case 1:
		return files[0].Path, nil
	default:
		return "", fmt.Errorf("%d plan files in %s; pick one with --plan (see `plateplan plans`)", len(files), dir)
	}
}

func plansDir() string {
	if flagPlansDir != "" {
		return flagPlansDir
	}
	if appCfg.General.PlansDir != "" {
		return appCfg.General.PlansDir
	}
	return "."
}

func resolveMarket() string {
	if flagMarket != "" {
		return flagMarket
	}
	return config.GetMarket(appCfg)
}

func resolveBenchmarks() (config.Benchmarks, error) {
	return config.ResolveBenchmarks(appCfg, resolveMarket())
}

func resolvePolicy() (pipeline.RatePolicy, error) {
	if flagRatePolicy != "" {
		return pipeline.ParsePolicy(flagRatePolicy)
	}
	return pipeline.ParsePolicy(config.GetRatePolicy(appCfg))
}

// loadedPlan is a plan file run through the whole pipeline.
type loadedPlan struct {
	Path       string
	Benchmarks config.Benchmarks
	Eval       pipeline.Evaluation
}

// loadPlan is the shared plan path used by the single-plan commands.
func loadPlan() (*loadedPlan, error) {
	path, err := resolvePlanPath()
	if err != nil {
		return nil, err
	}
	b, err := resolveBenchmarks()
	if err != nil {
		return nil, err
	}
	policy, err := resolvePolicy()
	if err != nil {
		return nil, err
	}

	df, ok := source.Discover(path)
	if !ok {
		return nil, fmt.Errorf("%s: plan files must be .toml or .json", path)
	}
	pr := source.ParseFile(df)
	if pr.Err != nil {
		return nil, pr.Err
	}
	for _, key := range pr.Unknown {
		logger.WithFields(logrus.Fields{"file": path, "key": key}).Warn("unknown plan key ignored")
	}

	return evaluate(path, pr.Plan, b, policy)
}

func evaluate(path string, raw source.RawPlan, b config.Benchmarks, policy pipeline.RatePolicy) (*loadedPlan, error) {
	ev, err := pipeline.Evaluate(raw, b, policy)
	if err != nil {
		var ie *pipeline.InputError
		if errors.As(err, &ie) {
			fmt.Fprintf(os.Stderr, "\n  %s has out-of-range inputs:\n", path)
			for _, fe := range ie.Fields {
				fmt.Fprintf(os.Stderr, "    %s\n", fe)
			}
			fmt.Fprintf(os.Stderr, "\n  Fix the plan or rerun with --rate-policy clamp.\n\n")
		}
		return nil, err
	}

	for _, fe := range ev.Warnings {
		logger.WithFields(logrus.Fields{
			"field":  fe.Field,
			"value":  fe.Value,
			"policy": policy,
		}).Warn("out-of-range input")
	}

	logger.WithFields(logrus.Fields{
		"plan":   ev.Plan.Name,
		"market": b.Market,
	}).Debug("plan derived")

	return &loadedPlan{Path: path, Benchmarks: b, Eval: ev}, nil
}

// seasonalOptions merges config into projection options for a plan.
func seasonalOptions(p model.Plan, b config.Benchmarks) pipeline.SeasonalOptions {
	return pipeline.SeasonalOptions{
		AverageOrderValue: pipeline.AverageOrderValue(p, appCfg.Seasonal.AverageOrderValue, b.AvgSeatPrice),
		CostMultipliers:   appCfg.Seasonal.CostMultipliers,
		JitterSeed:        appCfg.Seasonal.JitterSeed,
	}
}

// loadPlans is the shared multi-plan loading path.
// Uses the SQLite cache when available for fast subsequent runs.
func loadPlans() (*pipeline.LoadResult, error) {
	dir := plansDir()
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning %s...\n", dir)
	}

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%25 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", current, total)
		}
	}

	if !flagNoCache {
		cache, err := store.Open(config.StorePath())
		if err != nil {
			logger.WithError(err).Warn("cache unavailable, doing full parse")
		} else {
			defer func() { _ = cache.Close() }()

			cr, err := pipeline.LoadWithCache(dir, cache, progressFn)
			if err != nil {
				logger.WithError(err).Warn("cache error, falling back to full parse")
			} else {
				if !flagQuiet && cr.TotalFiles > 0 {
					fmt.Fprintf(os.Stderr, "\r  %s cached + %d reparsed    \n",
						cli.FormatNumber(int64(cr.CacheHits)), cr.Reparsed)
				}
				return &cr.LoadResult, nil
			}
		}
	}

	result, err := pipeline.Load(dir, progressFn)
	if err != nil {
		return nil, err
	}
	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "\r  Parsed %s plan files    \n", cli.FormatNumber(int64(result.ParsedFiles)))
	}
	return result, nil
}

// healthOf returns the label for a metric key.
func healthOf(m model.Metrics, metric string) model.HealthLabel {
	for _, c := range m.Health {
		if c.Metric == metric {
			return c.Label
		}
	}
	return ""
}

func renderHealthCell(m model.Metrics, metric string) string {
	label := healthOf(m, metric)
	if label == "" {
		return ""
	}
	return cli.RenderHealth(label)
}

func planTitle(section string, lp *loadedPlan) string {
	name := lp.Eval.Plan.Name
	if name == "" {
		name = "Untitled plan"
	}
	return fmt.Sprintf("%s  %s (%s)", section, strings.ToUpper(name), lp.Benchmarks.Market)
}
