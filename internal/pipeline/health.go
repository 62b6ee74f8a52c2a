package pipeline

import (
	"fmt"
	"math"

	"github.com/theirongolddev/plateplan/internal/cli"
	"github.com/theirongolddev/plateplan/internal/config"
	"github.com/theirongolddev/plateplan/internal/model"
)

// Classification thresholds, as ratios of actual to benchmark.
const (
	excellentRatio = 1.1
	goodRatio      = 0.9
	ratioTolerance = 1e-9
)

// Classify labels actual against benchmark. For higher-is-better metrics a
// ratio of at least 1.1 is excellent and at least 0.9 is good; for
// lower-is-better metrics the bounds mirror (at most 0.9, at most 1.1).
// A non-positive or non-finite benchmark yields needs-attention.
func Classify(actual, benchmark float64, higherIsBetter bool) model.HealthLabel {
	if benchmark <= 0 || math.IsNaN(benchmark) || math.IsInf(benchmark, 0) {
		return model.HealthNeedsAttention
	}
	if math.IsNaN(actual) || math.IsInf(actual, 0) {
		return model.HealthNeedsAttention
	}

	ratio := actual / benchmark

	if higherIsBetter {
		switch {
		case ratio >= excellentRatio-ratioTolerance:
			return model.HealthExcellent
		case ratio >= goodRatio-ratioTolerance:
			return model.HealthGood
		default:
			return model.HealthNeedsAttention
		}
	}

	switch {
	case ratio <= goodRatio+ratioTolerance:
		return model.HealthExcellent
	case ratio <= excellentRatio+ratioTolerance:
		return model.HealthGood
	default:
		return model.HealthNeedsAttention
	}
}

// requirement names the input a comparison needs before it can be computed.
var requirement = map[string]string{
	model.MetricGrossMargin:    "no revenue",
	model.MetricNetMargin:      "no revenue",
	model.MetricFoodCost:       "no food sales",
	model.MetricLaborCost:      "no revenue",
	model.MetricRentPerSqFt:    "square feet not provided",
	model.MetricStartupPerSeat: "seat count not provided",
	model.MetricAverageCheck:   "average check not provided",
}

// Compare measures every tracked ratio of a plan against the benchmarks.
// The order is fixed so output is stable across runs.
func Compare(p model.Plan, m model.Metrics, b config.Benchmarks) []model.Comparison {
	comparisons := []model.Comparison{
		{
			Metric: model.MetricGrossMargin, Name: "Gross margin", Unit: model.UnitPercent,
			Actual: m.GrossMarginPct, Benchmark: b.GrossMarginTarget,
			HigherIsBetter: true, Defined: m.TotalRevenue > 0,
		},
		{
			Metric: model.MetricNetMargin, Name: "Net margin", Unit: model.UnitPercent,
			Actual: m.NetMarginPct, Benchmark: b.NetMarginTarget,
			HigherIsBetter: true, Defined: m.TotalRevenue > 0,
		},
		{
			Metric: model.MetricFoodCost, Name: "Food cost", Unit: model.UnitFraction,
			Actual: p.Cogs.Food, Benchmark: b.AvgFoodCostPercent,
			Defined: p.Revenue.FoodSales > 0,
		},
		{
			Metric: model.MetricLaborCost, Name: "Labor cost", Unit: model.UnitFraction,
			Actual: m.LaborPct / percentScale, Benchmark: b.AvgLaborPercent,
			Defined: m.TotalRevenue > 0,
		},
	}

	rent := model.Comparison{
		Metric: model.MetricRentPerSqFt, Name: "Rent per sq ft", Unit: model.UnitCurrency,
		Benchmark: b.AvgRentPerSqFt, Defined: p.Concept.SquareFeet > 0,
	}
	if rent.Defined {
		rent.Actual = p.Expenses.Rent / p.Concept.SquareFeet
	}

	perSeat := model.Comparison{
		Metric: model.MetricStartupPerSeat, Name: "Startup cost per seat", Unit: model.UnitCurrency,
		Benchmark: b.AvgStartupCostPerSeat, Defined: p.Concept.Seats > 0,
	}
	if perSeat.Defined {
		perSeat.Actual = m.TotalStartupCosts / p.Concept.Seats
	}

	check := model.Comparison{
		Metric: model.MetricAverageCheck, Name: "Average check", Unit: model.UnitCurrency,
		Actual: p.Concept.AverageCheck, Benchmark: b.AvgSeatPrice,
		HigherIsBetter: true, Defined: p.Concept.AverageCheck > 0,
	}

	comparisons = append(comparisons, rent, perSeat, check)

	for i := range comparisons {
		c := &comparisons[i]
		if c.Defined {
			c.Label = Classify(c.Actual, c.Benchmark, c.HigherIsBetter)
		} else {
			c.Label = model.HealthNeedsAttention
		}
	}
	return comparisons
}

// Insight renders one comparison as a sentence, e.g.
// "Gross margin 73.4% vs 65.0% target: excellent".
func Insight(c model.Comparison) string {
	if !c.Defined {
		return fmt.Sprintf("%s: n/a (%s)", c.Name, requirement[c.Metric])
	}

	word := "target"
	if !c.HigherIsBetter {
		word = "benchmark"
	}
	return fmt.Sprintf("%s %s vs %s %s: %s",
		c.Name, formatUnit(c.Actual, c.Unit), formatUnit(c.Benchmark, c.Unit), word, c.Label)
}

func formatUnit(v float64, u model.Unit) string {
	switch u {
	case model.UnitFraction:
		return fmt.Sprintf("%.1f%%", v*percentScale)
	case model.UnitCurrency:
		return cli.FormatUnitPrice(v)
	default:
		return fmt.Sprintf("%.1f%%", v)
	}
}
