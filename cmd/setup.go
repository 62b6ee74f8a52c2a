package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/plateplan/internal/config"
	"github.com/theirongolddev/plateplan/internal/pipeline"
	"github.com/theirongolddev/plateplan/internal/source"
	"github.com/theirongolddev/plateplan/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

var policyOptions = []struct {
	policy pipeline.RatePolicy
	help   string
}{
	{pipeline.PolicyReject, "stop and list out-of-range fields"},
	{pipeline.PolicyClamp, "clamp to the valid range and warn"},
	{pipeline.PolicyIgnore, "compute anyway and warn"},
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)
	cfg := appCfg

	fmt.Println()
	fmt.Println("  Welcome to plateplan!")
	fmt.Println()

	dir := plansDir()
	if files, _ := source.ScanDir(dir); len(files) > 0 {
		fmt.Printf("  Found %d plan files in %s\n\n", len(files), dir)
	}

	// 1. Plans directory
	fmt.Println("  1. Plans directory")
	fmt.Printf("     Current: %s\n", cfg.General.PlansDir)
	fmt.Print("     > ")
	if v := readLine(reader); v != "" {
		cfg.General.PlansDir = v
	}
	fmt.Println()

	// 2. Market
	markets := config.Markets(cfg)
	fmt.Println("  2. Benchmark market")
	current := config.NormalizeMarketName(cfg.General.Market)
	for i, m := range markets {
		mark := ""
		if m == current {
			mark = " [current]"
		}
		fmt.Printf("     (%d) %s%s\n", i+1, m, mark)
	}
	fmt.Print("     > ")
	if i, ok := choice(readLine(reader), len(markets)); ok {
		cfg.General.Market = markets[i]
	}
	fmt.Println()

	// 3. Rate policy
	fmt.Println("  3. Out-of-range inputs (e.g. a food cost of 28 instead of 0.28)")
	for i, o := range policyOptions {
		fmt.Printf("     (%d) %s: %s\n", i+1, o.policy, o.help)
	}
	fmt.Print("     > ")
	if i, ok := choice(readLine(reader), len(policyOptions)); ok {
		cfg.Rates.Policy = string(policyOptions[i].policy)
	}
	fmt.Println()

	// 4. Theme
	fmt.Println("  4. Color theme")
	for i, name := range theme.Names() {
		mark := ""
		if name == cfg.Appearance.Theme {
			mark = " [current]"
		}
		fmt.Printf("     (%d) %s%s\n", i+1, name, mark)
	}
	fmt.Print("     > ")
	if i, ok := choice(readLine(reader), len(theme.All)); ok {
		cfg.Appearance.Theme = theme.All[i].Name
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `plateplan setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func readLine(r *bufio.Reader) string {
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

// choice parses a 1-based menu pick. Blank or invalid input keeps the current value.
func choice(s string, n int) (int, bool) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 1 || i > n {
		return 0, false
	}
	return i - 1, true
}
