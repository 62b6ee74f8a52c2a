// Package tui provides the interactive Bubble Tea dashboard for plateplan.
package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/plateplan/internal/config"
	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/pipeline"
	"github.com/theirongolddev/plateplan/internal/source"
	"github.com/theirongolddev/plateplan/internal/tui/components"
	"github.com/theirongolddev/plateplan/internal/tui/theme"
)

// Options configures the dashboard.
type Options struct {
	PlanPath   string
	Benchmarks config.Benchmarks
	Policy     pipeline.RatePolicy
	Config     config.Config
	Logger     logrus.FieldLogger
}

// PlanLoadedMsg carries the result of reading and deriving the plan file.
type PlanLoadedMsg struct {
	Eval     pipeline.Evaluation
	Months   []model.MonthlyProjection
	AOV      float64
	ModTime  time.Time
	LoadTime time.Duration
	Err      error
}

// planUnchangedMsg is returned by a refresh check that found nothing new.
type planUnchangedMsg struct{}

type tickMsg struct{}

// App is the root Bubble Tea model.
type App struct {
	opts Options

	// Data
	eval     pipeline.Evaluation
	months   []model.MonthlyProjection
	aov      float64
	loaded   bool
	loadErr  error
	loadTime time.Duration
	modTime  time.Time

	// Auto-refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastCheck       time.Time
	refreshing      bool

	// UI state
	width     int
	height    int
	activeTab int
	scroll    int
	showHelp  bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160

	minContentHeight = 5
	minRefreshPeriod = time.Second
	tickPeriod       = 250 * time.Millisecond
)

// NewApp creates the dashboard for one plan file.
func NewApp(opts Options) App {
	if opts.Logger == nil {
		opts.Logger = config.NewLogger("error", os.Stderr)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	interval := time.Duration(opts.Config.TUI.RefreshIntervalSec) * time.Second
	if interval < minRefreshPeriod {
		interval = 2 * time.Second
	}

	return App{
		opts:            opts,
		needSetup:       !config.Exists(),
		setupVals:       newSetupValues(opts.Config),
		autoRefresh:     opts.Config.TUI.AutoRefresh,
		refreshInterval: interval,
		spinner:         sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadPlanCmd(a.opts),
		a.spinner.Tick,
		tickCmd(),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}
		return a.updateMouse(msg), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		// The setup wizard gets every key while it is open.
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		return a.updateKeys(msg)

	case PlanLoadedMsg:
		return a.applyLoad(msg)

	case planUnchangedMsg:
		a.refreshing = false
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.loaded && a.autoRefresh && !a.refreshing && time.Since(a.lastCheck) >= a.refreshInterval {
			a.refreshing = true
			a.lastCheck = time.Now()
			cmds = append(cmds, refreshPlanCmd(a.opts, a.modTime))
		}
		return a, tea.Batch(cmds...)
	}

	// Cursor blinks and other form internals.
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) applyLoad(msg PlanLoadedMsg) (tea.Model, tea.Cmd) {
	first := !a.loaded
	a.loaded = true
	a.refreshing = false
	a.lastCheck = time.Now()
	a.loadTime = msg.LoadTime
	if !msg.ModTime.IsZero() {
		a.modTime = msg.ModTime
	}

	if msg.Err != nil && (a.loadErr == nil || a.loadErr.Error() != msg.Err.Error()) {
		config.LogError(a.opts.Logger, "tui", "applyLoad", a.opts.PlanPath, msg.Err)
	}
	a.loadErr = msg.Err
	if msg.Err == nil {
		a.eval = msg.Eval
		a.months = msg.Months
		a.aov = msg.AOV
	}

	if first && a.needSetup {
		a.setupForm = newSetupForm(a.opts.PlanPath, a.opts.Config, a.setupVals)
		if a.width > 0 {
			a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
		}
		return a, a.setupForm.Init()
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q", "esc":
		return a, tea.Quit
	case "r":
		if a.refreshing {
			return a, nil
		}
		a.refreshing = true
		return a, loadPlanCmd(a.opts)
	case "R":
		a.autoRefresh = !a.autoRefresh
		// Best effort: the toggle still applies for this session.
		cfg := a.opts.Config
		cfg.TUI.AutoRefresh = a.autoRefresh
		if err := config.Save(cfg); err == nil {
			a.opts.Config = cfg
		}
		return a, nil
	case "j", "down":
		a.scroll++
		return a, nil
	case "k", "up":
		a.scroll = max(a.scroll-1, 0)
		return a, nil
	case "g", "home":
		a.scroll = 0
		return a, nil
	case "left", "shift+tab":
		a.setTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
		return a, nil
	case "right", "tab":
		a.setTab((a.activeTab + 1) % len(components.Tabs))
		return a, nil
	}

	if r := []rune(key); len(r) == 1 {
		if idx := components.TabIdxByKey(r[0]); idx >= 0 {
			a.setTab(idx)
		}
	}
	return a, nil
}

func (a *App) setTab(idx int) {
	if idx != a.activeTab {
		a.activeTab = idx
		a.scroll = 0
	}
}

func (a App) updateMouse(msg tea.MouseMsg) App {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.scroll = max(a.scroll-1, 0)
	case tea.MouseButtonWheelDown:
		a.scroll++
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			break
		}
		// The tab bar is the first line.
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.setTab(tab)
			}
		}
	}
	return a
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.setupForm = nil
		a.needSetup = false
		if err := a.applySetup(); err != nil {
			config.LogError(a.opts.Logger, "tui", "applySetup", a.setupVals, err)
		}
		a.refreshing = true
		return a, loadPlanCmd(a.opts)
	case huh.StateAborted:
		a.setupForm = nil
		a.needSetup = false
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  plateplan needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ plateplan"))
	b.WriteString(mutedStyle.Render(" · Restaurant Financial Model"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(mutedStyle.Render(" Deriving " + a.opts.PlanPath))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

type keyHelp struct{ key, desc string }

var (
	navBindings = []keyHelp{
		{"o c f s h", "Jump to tab"},
		{"← → tab", "Previous / Next tab"},
		{"j k", "Scroll"},
		{"click", "Select tab"},
	}
	actionBindings = []keyHelp{
		{"r", "Reload plan"},
		{"R", "Toggle auto-refresh"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
)

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, section := range []struct {
		title    string
		bindings []keyHelp
	}{
		{"Navigation", navBindings},
		{"Actions", actionBindings},
	} {
		b.WriteString(sectionStyle.Render(section.title))
		b.WriteString("\n")
		for _, bind := range section.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w, h, cw := a.width, a.height, a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusInfo())

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch {
	case a.loadErr != nil:
		content = a.renderLoadError(cw)
	default:
		switch a.activeTab {
		case 0:
			content = a.renderOverviewTab(cw)
		case 1:
			content = a.renderCostsTab(cw)
		case 2:
			content = a.renderFundingTab(cw)
		case 3:
			content = a.renderSeasonalTab(cw)
		case 4:
			content = a.renderHealthTab(cw)
		}
	}

	content = scrollLines(content, a.scroll)
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusInfo() components.StatusInfo {
	name := a.eval.Plan.Name
	if name == "" {
		name = a.opts.PlanPath
	}
	return components.StatusInfo{
		Plan:        name,
		Market:      a.opts.Benchmarks.Market,
		Policy:      string(a.opts.Policy),
		Warnings:    len(a.eval.Warnings),
		DataAge:     fmt.Sprintf("%dms", a.loadTime.Milliseconds()),
		Refreshing:  a.refreshing,
		AutoRefresh: a.autoRefresh,
	}
}

func (a App) renderLoadError(cw int) string {
	t := theme.Active
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	var ie *pipeline.InputError
	if errors.As(a.loadErr, &ie) {
		b.WriteString(errStyle.Render("Out-of-range inputs"))
		b.WriteString("\n")
		for _, fe := range ie.Fields {
			b.WriteString(textStyle.Render("  " + fe.String()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("Fix the plan file or rerun with --rate-policy clamp."))
	} else {
		b.WriteString(errStyle.Render("Could not load plan"))
		b.WriteString("\n")
		b.WriteString(textStyle.Render(truncStr(a.loadErr.Error(), components.CardInnerWidth(cw))))
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("The dashboard reloads when the file changes."))

	return components.ContentCard(a.opts.PlanPath, b.String(), cw)
}

// ─── Loading ────────────────────────────────────────────────────

func tickCmd() tea.Cmd {
	return tea.Tick(tickPeriod, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadPlanCmd reads and derives the plan in the background.
func loadPlanCmd(opts Options) tea.Cmd {
	return func() tea.Msg {
		return loadPlan(opts)
	}
}

// refreshPlanCmd re-derives only when the file's mtime moved past since.
func refreshPlanCmd(opts Options, since time.Time) tea.Cmd {
	return func() tea.Msg {
		info, err := os.Stat(opts.PlanPath)
		if err == nil && !info.ModTime().After(since) {
			return planUnchangedMsg{}
		}
		return loadPlan(opts)
	}
}

func loadPlan(opts Options) (msg PlanLoadedMsg) {
	start := time.Now()
	defer func() { msg.LoadTime = time.Since(start) }()

	info, err := os.Stat(opts.PlanPath)
	if err != nil {
		msg.Err = err
		return msg
	}
	msg.ModTime = info.ModTime()

	df, ok := source.Discover(opts.PlanPath)
	if !ok {
		msg.Err = fmt.Errorf("%s: plan files must be .toml or .json", opts.PlanPath)
		return msg
	}
	pr := source.ParseFile(df)
	if pr.Err != nil {
		msg.Err = pr.Err
		return msg
	}

	ev, err := pipeline.Evaluate(pr.Plan, opts.Benchmarks, opts.Policy)
	if err != nil {
		msg.Err = err
		return msg
	}

	seasonal := opts.Config.Seasonal
	msg.AOV = pipeline.AverageOrderValue(ev.Plan, seasonal.AverageOrderValue, opts.Benchmarks.AvgSeatPrice)
	msg.Eval = ev
	msg.Months = pipeline.ProjectPlan(ev.Metrics, pipeline.SeasonalOptions{
		AverageOrderValue: msg.AOV,
		CostMultipliers:   seasonal.CostMultipliers,
		JitterSeed:        seasonal.JitterSeed,
	})
	return msg
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at column x, or -1. Hitboxes follow the
// widths RenderTabBar draws, with a one-column separator between tabs.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		w := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1
	}
	return -1
}
