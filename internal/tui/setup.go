package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/plateplan/internal/config"
	"github.com/theirongolddev/plateplan/internal/pipeline"
	"github.com/theirongolddev/plateplan/internal/tui/theme"
)

// setupValues receives the first-run form answers. App holds it by pointer
// because the form keeps the field addresses across model copies.
type setupValues struct {
	market string
	policy string
	theme  string
}

func newSetupValues(cfg config.Config) *setupValues {
	return &setupValues{
		market: config.NormalizeMarketName(cfg.General.Market),
		policy: cfg.Rates.Policy,
		theme:  cfg.Appearance.Theme,
	}
}

// newSetupForm builds the first-run wizard: market, rate policy, theme.
func newSetupForm(planPath string, cfg config.Config, vals *setupValues) *huh.Form {
	marketOpts := make([]huh.Option[string], 0)
	for _, m := range config.Markets(cfg) {
		marketOpts = append(marketOpts, huh.NewOption(m, m))
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to plateplan").
				Description(fmt.Sprintf("Loaded %s\n\nPick a few defaults. They are saved to %s.",
					planPath, config.ConfigPath())),
			huh.NewSelect[string]().
				Title("Benchmark market").
				Description("Health labels compare the plan against this market.").
				Options(marketOpts...).
				Value(&vals.market),
			huh.NewSelect[string]().
				Title("Out-of-range inputs").
				Description("What to do with a rate like food cost = 28 instead of 0.28.").
				Options(
					huh.NewOption("Reject: stop and list the fields", string(pipeline.PolicyReject)),
					huh.NewOption("Clamp: pull into range and warn", string(pipeline.PolicyClamp)),
					huh.NewOption("Ignore: compute anyway and warn", string(pipeline.PolicyIgnore)),
				).
				Value(&vals.policy),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(true)
}

// applySetup writes the answers into the app config, saves it, and
// re-resolves the market and policy the dashboard derives with.
func (a *App) applySetup() error {
	cfg := a.opts.Config
	cfg.General.Market = a.setupVals.market
	cfg.Rates.Policy = a.setupVals.policy
	cfg.Appearance.Theme = a.setupVals.theme

	b, err := config.ResolveBenchmarks(cfg, cfg.General.Market)
	if err != nil {
		return err
	}
	policy, err := pipeline.ParsePolicy(cfg.Rates.Policy)
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	a.opts.Config = cfg
	a.opts.Benchmarks = b
	a.opts.Policy = policy
	return config.Save(cfg)
}
