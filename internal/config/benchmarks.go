package config

import (
	"fmt"
	"sort"
	"strings"
)

// Benchmarks holds industry reference values for one market.
// Cost and labor benchmarks are fractions of revenue; margin targets are
// percentages (65 means 65%).
type Benchmarks struct {
	Market                string  `json:"market"`
	AvgFoodCostPercent    float64 `json:"avg_food_cost_percent"`
	AvgLaborPercent       float64 `json:"avg_labor_percent"`
	AvgRentPerSqFt        float64 `json:"avg_rent_per_sqft"`
	AvgSeatPrice          float64 `json:"avg_seat_price"`
	AvgStartupCostPerSeat float64 `json:"avg_startup_cost_per_seat"`
	GrossMarginTarget     float64 `json:"gross_margin_target"`
	NetMarginTarget       float64 `json:"net_margin_target"`
}

// DefaultMarket is used when no market is configured.
const DefaultMarket = "national"

// DefaultBenchmarks maps market names to their benchmark sets.
var DefaultBenchmarks = map[string]Benchmarks{
	"national": {
		AvgFoodCostPercent: 0.28, AvgLaborPercent: 0.32,
		AvgRentPerSqFt: 30, AvgSeatPrice: 28, AvgStartupCostPerSeat: 6500,
		GrossMarginTarget: 65, NetMarginTarget: 10,
	},
	"boston": {
		AvgFoodCostPercent: 0.28, AvgLaborPercent: 0.32,
		AvgRentPerSqFt: 55, AvgSeatPrice: 42, AvgStartupCostPerSeat: 9500,
		GrossMarginTarget: 65, NetMarginTarget: 10,
	},
	"new-york": {
		AvgFoodCostPercent: 0.29, AvgLaborPercent: 0.34,
		AvgRentPerSqFt: 85, AvgSeatPrice: 48, AvgStartupCostPerSeat: 11000,
		GrossMarginTarget: 65, NetMarginTarget: 8,
	},
	"chicago": {
		AvgFoodCostPercent: 0.28, AvgLaborPercent: 0.31,
		AvgRentPerSqFt: 38, AvgSeatPrice: 34, AvgStartupCostPerSeat: 7500,
		GrossMarginTarget: 65, NetMarginTarget: 10,
	},
}

// marketAliases maps common spellings to canonical market names.
var marketAliases = map[string]string{
	"us":        "national",
	"usa":       "national",
	"bos":       "boston",
	"boston-ma": "boston",
	"nyc":       "new-york",
	"ny":        "new-york",
	"chi":       "chicago",
}

// NormalizeMarketName lowercases a market name, replaces spaces and
// underscores with dashes, and resolves known aliases.
// e.g., "New York" -> "new-york", "NYC" -> "new-york", "" -> "national"
func NormalizeMarketName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return DefaultMarket
	}
	name = strings.NewReplacer(" ", "-", "_", "-", ",", "").Replace(name)
	if canonical, ok := marketAliases[name]; ok {
		return canonical
	}
	return name
}

// LookupBenchmarks returns the built-in benchmarks for a market.
// Returns zero benchmarks and false if the market is unknown.
func LookupBenchmarks(market string) (Benchmarks, bool) {
	name := NormalizeMarketName(market)
	b, ok := DefaultBenchmarks[name]
	if !ok {
		return Benchmarks{}, false
	}
	b.Market = name
	return b, true
}

// ResolveBenchmarks returns the benchmarks for a market with any config
// overrides applied. A market that exists only in config overrides starts
// from the national set.
func ResolveBenchmarks(cfg Config, market string) (Benchmarks, error) {
	name := NormalizeMarketName(market)
	override, hasOverride := overrideFor(cfg, name)

	b, ok := LookupBenchmarks(name)
	if !ok {
		if !hasOverride {
			return Benchmarks{}, fmt.Errorf("unknown market %q (known: %s)", market, strings.Join(Markets(cfg), ", "))
		}
		b, _ = LookupBenchmarks(DefaultMarket)
		b.Market = name
	}

	if hasOverride {
		b = override.apply(b)
	}
	return b, nil
}

// Markets lists every built-in and config-defined market, sorted.
func Markets(cfg Config) []string {
	seen := make(map[string]struct{}, len(DefaultBenchmarks))
	for name := range DefaultBenchmarks {
		seen[name] = struct{}{}
	}
	for name := range cfg.Benchmarks.Overrides {
		seen[NormalizeMarketName(name)] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasOverride reports whether config overrides any value for market.
func HasOverride(cfg Config, market string) bool {
	_, ok := overrideFor(cfg, NormalizeMarketName(market))
	return ok
}

// overrideFor finds the override for a canonical market name. Config keys
// are normalized, so [benchmarks.overrides."New York"] matches new-york.
func overrideFor(cfg Config, name string) (BenchmarkOverride, bool) {
	if o, ok := cfg.Benchmarks.Overrides[name]; ok {
		return o, true
	}
	for key, o := range cfg.Benchmarks.Overrides {
		if NormalizeMarketName(key) == name {
			return o, true
		}
	}
	return BenchmarkOverride{}, false
}

func (o BenchmarkOverride) apply(b Benchmarks) Benchmarks {
	if o.AvgFoodCostPercent != nil {
		b.AvgFoodCostPercent = *o.AvgFoodCostPercent
	}
	if o.AvgLaborPercent != nil {
		b.AvgLaborPercent = *o.AvgLaborPercent
	}
	if o.AvgRentPerSqFt != nil {
		b.AvgRentPerSqFt = *o.AvgRentPerSqFt
	}
	if o.AvgSeatPrice != nil {
		b.AvgSeatPrice = *o.AvgSeatPrice
	}
	if o.AvgStartupCostPerSeat != nil {
		b.AvgStartupCostPerSeat = *o.AvgStartupCostPerSeat
	}
	if o.GrossMarginTarget != nil {
		b.GrossMarginTarget = *o.GrossMarginTarget
	}
	if o.NetMarginTarget != nil {
		b.NetMarginTarget = *o.NetMarginTarget
	}
	return b
}
