package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func floatp(f float64) *float64 { return &f }

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Rates.Policy != "reject" {
		t.Errorf("Rates.Policy = %q, want reject", cfg.Rates.Policy)
	}
	if cfg.General.Market != DefaultMarket {
		t.Errorf("General.Market = %q, want %q", cfg.General.Market, DefaultMarket)
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.toml")
	seed := uint64(42)

	cfg := DefaultConfig()
	cfg.General.Market = "boston"
	cfg.Rates.Policy = "clamp"
	cfg.Seasonal.AverageOrderValue = floatp(31.5)
	cfg.Seasonal.JitterSeed = &seed
	cfg.Benchmarks.Overrides = map[string]BenchmarkOverride{
		"boston": {AvgRentPerSqFt: floatp(60)},
	}

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if got.General.Market != "boston" || got.Rates.Policy != "clamp" {
		t.Errorf("general/rates = %q/%q, want boston/clamp", got.General.Market, got.Rates.Policy)
	}
	if got.Seasonal.AverageOrderValue == nil || *got.Seasonal.AverageOrderValue != 31.5 {
		t.Errorf("AverageOrderValue = %v, want 31.5", got.Seasonal.AverageOrderValue)
	}
	if got.Seasonal.JitterSeed == nil || *got.Seasonal.JitterSeed != 42 {
		t.Errorf("JitterSeed = %v, want 42", got.Seasonal.JitterSeed)
	}
	o, ok := got.Benchmarks.Overrides["boston"]
	if !ok || o.AvgRentPerSqFt == nil || *o.AvgRentPerSqFt != 60 {
		t.Errorf("boston override = %+v, want rent 60", o)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveTo(path, DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[general\nmarket="), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Fatalf("LoadFrom(invalid) err = %v, want parsing config error", err)
	}
}

func TestEnvOverridesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.DefaultPlan = "from-config.toml"

	t.Setenv("PLATEPLAN_MARKET", "nyc")
	t.Setenv("PLATEPLAN_PLAN", "")
	t.Setenv("PLATEPLAN_RATE_POLICY", "ignore")

	if got := GetMarket(cfg); got != "nyc" {
		t.Errorf("GetMarket = %q, want nyc", got)
	}
	if got := GetPlanPath(cfg); got != "from-config.toml" {
		t.Errorf("GetPlanPath = %q, want from-config.toml", got)
	}
	if got := GetRatePolicy(cfg); got != "ignore" {
		t.Errorf("GetRatePolicy = %q, want ignore", got)
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logg := NewLogger("bogus", &buf)
	logg.Info("hidden")
	logg.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line logged at default warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn line missing")
	}

	buf.Reset()
	LogError(NewJSONLogger("error", &buf), "store", "SaveDraft", nil, errors.New("disk full"))
	if !strings.Contains(buf.String(), `"funcName":"SaveDraft"`) {
		t.Errorf("LogError output = %s, want funcName field", buf.String())
	}
}
