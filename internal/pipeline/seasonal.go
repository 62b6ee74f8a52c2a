package pipeline

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/theirongolddev/plateplan/internal/model"
)

// RevenueMultipliers weights each calendar month's share of annual revenue,
// January first. Holiday months run high and the post-holiday lull low.
var RevenueMultipliers = [12]float64{0.8, 0.9, 1, 1, 1, 1, 1, 1, 1, 1, 1.2, 1.3}

// SeasonalOptions controls the monthly projection.
type SeasonalOptions struct {
	// AverageOrderValue converts revenue to customer counts. Zero disables
	// customer estimates.
	AverageOrderValue float64
	// CostMultipliers weights monthly cost, January first. Fewer than twelve
	// entries, or non-positive entries, fall back to 1.0.
	CostMultipliers []float64
	// JitterSeed, when set, scales each cost multiplier by a reproducible
	// factor in [0.9, 1.1).
	JitterSeed *uint64
}

// ProjectSeasonal spreads annual revenue and cost across twelve months.
// Both multiplier tables are normalized to sum to twelve, so the monthly
// figures add back up to the annual ones within one unit of rounding per
// month.
func ProjectSeasonal(annualRevenue, annualCost float64, opts SeasonalOptions) []model.MonthlyProjection {
	costWeights := costMultipliers(opts)
	revScale := monthsPerYear / weightSum(RevenueMultipliers[:])
	costScale := monthsPerYear / weightSum(costWeights[:])

	months := make([]model.MonthlyProjection, monthsPerYear)
	for i := range months {
		w := RevenueMultipliers[i]
		revenue := math.Round(annualRevenue / monthsPerYear * w * revScale)
		cost := math.Round(annualCost / monthsPerYear * costWeights[i] * costScale)
		profit := revenue - cost

		mp := model.MonthlyProjection{
			Month:   i + 1,
			Label:   time.Month(i + 1).String()[:3],
			Revenue: revenue,
			Cost:    cost,
			Profit:  profit,
		}
		if revenue > 0 {
			mp.MarginPct = math.Round(profit / revenue * percentScale)
		}
		if opts.AverageOrderValue > 0 {
			mp.Customers = math.Round(revenue / opts.AverageOrderValue * w)
		}
		months[i] = mp
	}

	return months
}

// ProjectPlan projects derived metrics across the year. Annual cost is
// cost of goods plus all operating expenses.
func ProjectPlan(m model.Metrics, opts SeasonalOptions) []model.MonthlyProjection {
	return ProjectSeasonal(m.TotalRevenue, m.TotalCogs+m.TotalExpenses, opts)
}

// AverageOrderValue picks the order value used for customer estimates: the
// plan's own average check, then the configured value, then the market's
// average seat price.
func AverageOrderValue(p model.Plan, configured *float64, benchmarkSeatPrice float64) float64 {
	if p.Concept.AverageCheck > 0 {
		return p.Concept.AverageCheck
	}
	if configured != nil && *configured > 0 {
		return *configured
	}
	return benchmarkSeatPrice
}

func costMultipliers(opts SeasonalOptions) [12]float64 {
	var c [12]float64
	for i := range c {
		c[i] = 1
		if len(opts.CostMultipliers) == monthsPerYear {
			v := opts.CostMultipliers[i]
			if v > 0 && !math.IsInf(v, 0) {
				c[i] = v
			}
		}
	}

	if opts.JitterSeed != nil {
		seed := *opts.JitterSeed
		rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		for i := range c {
			c[i] *= 0.9 + rng.Float64()*0.2
		}
	}
	return c
}

func weightSum(w []float64) float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	return total
}
