// Package cmd implements the plateplan CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/plateplan/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Printf("  Store:       %s\n", config.StorePath())
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Plans directory: %s\n", plansDir())
	plan := config.GetPlanPath(cfg)
	if plan == "" {
		plan = "not set"
	}
	fmt.Printf("    Default plan:    %s%s\n", plan, envNote("PLATEPLAN_PLAN"))
	fmt.Printf("    Market:          %s%s\n", config.NormalizeMarketName(resolveMarket()), envNote("PLATEPLAN_MARKET"))
	fmt.Println()

	fmt.Println("  [Rates]")
	fmt.Printf("    Policy: %s%s\n", resolvedPolicyName(), envNote("PLATEPLAN_RATE_POLICY"))
	fmt.Println()

	fmt.Println("  [Seasonal]")
	if cfg.Seasonal.AverageOrderValue != nil {
		fmt.Printf("    Average order value: $%.2f\n", *cfg.Seasonal.AverageOrderValue)
	} else {
		fmt.Println("    Average order value: from plan or market")
	}
	if len(cfg.Seasonal.CostMultipliers) > 0 {
		parts := make([]string, len(cfg.Seasonal.CostMultipliers))
		for i, v := range cfg.Seasonal.CostMultipliers {
			parts[i] = fmt.Sprintf("%g", v)
		}
		fmt.Printf("    Cost multipliers:    %s\n", strings.Join(parts, " "))
	} else {
		fmt.Println("    Cost multipliers:    flat")
	}
	if cfg.Seasonal.JitterSeed != nil {
		fmt.Printf("    Jitter seed:         %d\n", *cfg.Seasonal.JitterSeed)
	}
	fmt.Println()

	if len(cfg.Benchmarks.Overrides) > 0 {
		fmt.Println("  [Benchmarks]")
		for name := range cfg.Benchmarks.Overrides {
			fmt.Printf("    Override: %s\n", config.NormalizeMarketName(name))
		}
		fmt.Println()
	}

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Auto refresh: %v every %ds\n", cfg.TUI.AutoRefresh, cfg.TUI.RefreshIntervalSec)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:  %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Interval: %ds\n", cfg.Daemon.IntervalSec)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Println()

	fmt.Println("  Run `plateplan setup` to reconfigure.")
	return nil
}

func envNote(key string) string {
	if os.Getenv(key) != "" {
		return fmt.Sprintf(" (from %s)", key)
	}
	return ""
}
