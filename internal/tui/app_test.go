package tui

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/plateplan/internal/config"
	"github.com/theirongolddev/plateplan/internal/pipeline"
	"github.com/theirongolddev/plateplan/internal/tui/components"
)

const planTOML = `name = "Corner Bistro"

[concept]
seats = 60
square_feet = 2400

[revenue]
food_sales = 500000
beverage_sales = 150000
catering_sales = 35000

[cogs]
food = 0.28
beverage = 0.22
catering = 0.3

[expenses]
rent = 72000
utilities = 18000
salary_full_time = 180000
salary_part_time = 60000
payroll_tax_rate = 0.1

[startup]
leasehold_improvements = 150000
kitchen_equipment = 90000

[funding]
owners_equity = 120000
bank_loans = 80000
`

func testOptions(t *testing.T, body string) Options {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bistro.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	b, err := config.ResolveBenchmarks(cfg, "national")
	if err != nil {
		t.Fatal(err)
	}
	return Options{
		PlanPath:   path,
		Benchmarks: b,
		Policy:     pipeline.PolicyReject,
		Config:     cfg,
		Logger:     config.NewLogger("error", io.Discard),
	}
}

// loadedApp returns a sized app with the plan already applied.
func loadedApp(t *testing.T, opts Options) App {
	t.Helper()
	a := NewApp(opts)
	a.needSetup = false
	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 60})
	m, _ = m.(App).Update(loadPlan(opts))
	return m.(App)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(a App, keys ...string) App {
	for _, k := range keys {
		m, _ := a.Update(key(k))
		a = m.(App)
	}
	return a
}

func TestLoadPlan(t *testing.T) {
	msg := loadPlan(testOptions(t, planTOML))
	if msg.Err != nil {
		t.Fatalf("loadPlan: %v", msg.Err)
	}
	if msg.Eval.Metrics.TotalRevenue != 685000 {
		t.Errorf("TotalRevenue = %v, want 685000", msg.Eval.Metrics.TotalRevenue)
	}
	if len(msg.Months) != 12 {
		t.Errorf("got %d months, want 12", len(msg.Months))
	}
	if msg.ModTime.IsZero() {
		t.Error("ModTime not recorded")
	}
}

func TestLoadPlan_InvalidRates(t *testing.T) {
	opts := testOptions(t, "[cogs]\nfood = 28\n")
	a := loadedApp(t, opts)

	var ie *pipeline.InputError
	if a.loadErr == nil || !strings.Contains(a.loadErr.Error(), "cogs.food") {
		t.Fatalf("loadErr = %v, want cogs.food error", a.loadErr)
	}
	if !errors.As(a.loadErr, &ie) {
		t.Fatalf("loadErr is %T, want *InputError", a.loadErr)
	}
	if view := a.View(); !strings.Contains(view, "Out-of-range inputs") {
		t.Error("error card not rendered")
	}

	opts.Policy = pipeline.PolicyClamp
	a = loadedApp(t, opts)
	if a.loadErr != nil || len(a.eval.Warnings) != 1 {
		t.Fatalf("clamp: err %v warnings %v", a.loadErr, a.eval.Warnings)
	}
}

func TestRefreshPlanCmd_SkipsUnchangedFile(t *testing.T) {
	opts := testOptions(t, planTOML)
	first := loadPlan(opts)

	if _, ok := refreshPlanCmd(opts, first.ModTime)().(planUnchangedMsg); !ok {
		t.Fatal("unchanged file should not be re-derived")
	}

	updated := strings.Replace(planTOML, "food_sales = 500000", "food_sales = 535000", 1)
	if err := os.WriteFile(opts.PlanPath, []byte(updated), 0o600); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(time.Minute)
	if err := os.Chtimes(opts.PlanPath, future, future); err != nil {
		t.Fatal(err)
	}

	msg, ok := refreshPlanCmd(opts, first.ModTime)().(PlanLoadedMsg)
	if !ok {
		t.Fatal("changed file should be re-derived")
	}
	if msg.Eval.Metrics.TotalRevenue != 720000 {
		t.Errorf("TotalRevenue = %v, want 720000", msg.Eval.Metrics.TotalRevenue)
	}
}

func TestTabNavigation(t *testing.T) {
	a := loadedApp(t, testOptions(t, planTOML))

	if a = press(a, "f"); a.activeTab != 2 {
		t.Fatalf("f -> tab %d, want 2", a.activeTab)
	}
	if a = press(a, "right", "right"); a.activeTab != 4 {
		t.Fatalf("right x2 -> tab %d, want 4", a.activeTab)
	}
	if a = press(a, "right"); a.activeTab != 0 {
		t.Fatalf("right wraps -> tab %d, want 0", a.activeTab)
	}
	if a = press(a, "left"); a.activeTab != 4 {
		t.Fatalf("left wraps -> tab %d, want 4", a.activeTab)
	}

	a = press(a, "j", "j")
	if a.scroll != 2 {
		t.Fatalf("scroll = %d, want 2", a.scroll)
	}
	if a = press(a, "o"); a.scroll != 0 {
		t.Fatal("switching tabs should reset scroll")
	}
}

func TestHelpOverlay(t *testing.T) {
	a := press(loadedApp(t, testOptions(t, planTOML)), "?")
	if !a.showHelp || !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Fatal("? should open help")
	}
	if a = press(a, "c"); a.showHelp || a.activeTab != 0 {
		t.Fatal("any key should only close help")
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			if got := a.tabAtX(pos + w/2); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("x past the last tab -> %d, want -1", got)
		}
	}
}

func TestMouseClickSelectsTab(t *testing.T) {
	a := loadedApp(t, testOptions(t, planTOML))
	x := 0
	for i := 0; i < 3; i++ {
		x += components.TabVisualWidth(components.Tabs[i], i == a.activeTab) + 1
	}
	m, _ := a.Update(tea.MouseMsg{X: x + 2, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.(App).activeTab; got != 3 {
		t.Fatalf("click -> tab %d, want 3", got)
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := loadedApp(t, testOptions(t, planTOML))
	want := []string{"Revenue Mix", "Cost of Goods Sold", "Startup Funding", "Monthly Revenue", "Benchmark Comparison"}
	for i, title := range want {
		a.activeTab = i
		view := a.View()
		if !strings.Contains(view, title) {
			t.Errorf("tab %d view missing %q", i, title)
		}
		if lines := strings.Count(view, "\n") + 1; lines != 60 {
			t.Errorf("tab %d view has %d lines, want 60", i, lines)
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := loadedApp(t, testOptions(t, planTOML))
	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(m.(App).View(), "Terminal too narrow") {
		t.Fatal("narrow terminal message missing")
	}
}

func TestScrollLines(t *testing.T) {
	if got := scrollLines("a\nb\nc", 1); got != "b\nc" {
		t.Errorf("scrollLines 1 = %q", got)
	}
	if got := scrollLines("a\nb\nc", 10); got != "c" {
		t.Errorf("scrollLines past end = %q, want last line", got)
	}
}
