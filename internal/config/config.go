// Package config loads plateplan settings and resolves market benchmarks.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all plateplan configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Rates      RatesConfig      `toml:"rates"`
	Seasonal   SeasonalConfig   `toml:"seasonal"`
	Benchmarks BenchmarkConfig  `toml:"benchmarks"`
	Appearance AppearanceConfig `toml:"appearance"`
	TUI        TUIConfig        `toml:"tui"`
	Daemon     DaemonConfig     `toml:"daemon"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	PlansDir    string `toml:"plans_dir"`
	DefaultPlan string `toml:"default_plan,omitempty"`
	Market      string `toml:"market"`
}

// RatesConfig controls how out-of-range rates in a plan are handled.
// Policy is one of "reject", "clamp", or "ignore".
type RatesConfig struct {
	Policy string `toml:"policy"`
}

// SeasonalConfig tunes the monthly projection.
type SeasonalConfig struct {
	AverageOrderValue *float64  `toml:"average_order_value,omitempty"`
	CostMultipliers   []float64 `toml:"cost_multipliers,omitempty"`
	JitterSeed        *uint64   `toml:"jitter_seed,omitempty"`
}

// BenchmarkConfig holds user-defined benchmark overrides keyed by market.
type BenchmarkConfig struct {
	Overrides map[string]BenchmarkOverride `toml:"overrides,omitempty"`
}

// BenchmarkOverride holds per-market benchmark overrides.
type BenchmarkOverride struct {
	AvgFoodCostPercent    *float64 `toml:"avg_food_cost_percent,omitempty"`
	AvgLaborPercent       *float64 `toml:"avg_labor_percent,omitempty"`
	AvgRentPerSqFt        *float64 `toml:"avg_rent_per_sqft,omitempty"`
	AvgSeatPrice          *float64 `toml:"avg_seat_price,omitempty"`
	AvgStartupCostPerSeat *float64 `toml:"avg_startup_cost_per_seat,omitempty"`
	GrossMarginTarget     *float64 `toml:"gross_margin_target,omitempty"`
	NetMarginTarget       *float64 `toml:"net_margin_target,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// TUIConfig holds dashboard settings.
type TUIConfig struct {
	AutoRefresh        bool `toml:"auto_refresh"`
	RefreshIntervalSec int  `toml:"refresh_interval_sec"`
}

// DaemonConfig holds background service settings.
type DaemonConfig struct {
	Addr        string `toml:"addr"`
	IntervalSec int    `toml:"interval_sec"`
	EventsLimit int    `toml:"events_limit"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			PlansDir: ".",
			Market:   DefaultMarket,
		},
		Rates: RatesConfig{
			Policy: "reject",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		TUI: TUIConfig{
			AutoRefresh:        true,
			RefreshIntervalSec: 2,
		},
		Daemon: DaemonConfig{
			Addr:        "127.0.0.1:8787",
			IntervalSec: 5,
			EventsLimit: 200,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "plateplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "plateplan")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "plateplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "plateplan")
}

// StorePath returns the full path to the drafts and cache database.
func StorePath() string {
	return filepath.Join(CacheDir(), "plateplan.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads a config file at path, returning defaults if it doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's config file
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path, creating parent directories.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// GetMarket returns the market from env var or config, in that order.
func GetMarket(cfg Config) string {
	if m := os.Getenv("PLATEPLAN_MARKET"); m != "" {
		return m
	}
	return cfg.General.Market
}

// GetPlanPath returns the default plan file from env var or config, in that order.
func GetPlanPath(cfg Config) string {
	if p := os.Getenv("PLATEPLAN_PLAN"); p != "" {
		return p
	}
	return cfg.General.DefaultPlan
}

// GetRatePolicy returns the rate policy from env var or config, in that order.
func GetRatePolicy(cfg Config) string {
	if p := os.Getenv("PLATEPLAN_RATE_POLICY"); p != "" {
		return p
	}
	return cfg.Rates.Policy
}
