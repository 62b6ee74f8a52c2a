package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/plateplan/internal/config"
	"github.com/theirongolddev/plateplan/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive plan dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	path, err := resolvePlanPath()
	if err != nil {
		return err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	b, err := resolveBenchmarks()
	if err != nil {
		return err
	}
	policy, err := resolvePolicy()
	if err != nil {
		return err
	}

	// Stderr belongs to the alt screen while the dashboard runs.
	tuiLog := io.Discard
	if err := os.MkdirAll(config.CacheDir(), 0o750); err == nil {
		//nolint:gosec // log path is under the user's cache dir
		if f, err := os.OpenFile(filepath.Join(config.CacheDir(), "tui.log"), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600); err == nil {
			defer func() { _ = f.Close() }()
			tuiLog = f
		}
	}

	// Force TrueColor so background styling always produces ANSI codes.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(tui.Options{
		PlanPath:   path,
		Benchmarks: b,
		Policy:     policy,
		Config:     appCfg,
		Logger:     config.NewLogger(appCfg.Log.Level, tuiLog),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
