package pipeline

import (
	"math"
	"strings"
	"testing"

	"github.com/theirongolddev/plateplan/internal/config"
	"github.com/theirongolddev/plateplan/internal/model"
)

func TestClassify_HigherIsBetterBoundaries(t *testing.T) {
	for _, benchmark := range []float64{65, 10, 0.28, 3} {
		tests := []struct {
			actual float64
			want   model.HealthLabel
		}{
			{1.1 * benchmark, model.HealthExcellent},
			{2 * benchmark, model.HealthExcellent},
			{1.05 * benchmark, model.HealthGood},
			{0.9 * benchmark, model.HealthGood},
			{0.89 * benchmark, model.HealthNeedsAttention},
			{0.5 * benchmark, model.HealthNeedsAttention},
			{-benchmark, model.HealthNeedsAttention},
		}
		for _, tt := range tests {
			if got := Classify(tt.actual, benchmark, true); got != tt.want {
				t.Errorf("Classify(%v, %v, higher) = %s, want %s", tt.actual, benchmark, got, tt.want)
			}
		}
	}
}

func TestClassify_LowerIsBetterBoundaries(t *testing.T) {
	benchmark := 0.28
	tests := []struct {
		actual float64
		want   model.HealthLabel
	}{
		{0.9 * benchmark, model.HealthExcellent},
		{0.1, model.HealthExcellent},
		{benchmark, model.HealthGood},
		{1.1 * benchmark, model.HealthGood},
		{1.2 * benchmark, model.HealthNeedsAttention},
	}
	for _, tt := range tests {
		if got := Classify(tt.actual, benchmark, false); got != tt.want {
			t.Errorf("Classify(%v, %v, lower) = %s, want %s", tt.actual, benchmark, got, tt.want)
		}
	}
}

func TestClassify_GuardsBenchmark(t *testing.T) {
	for _, bench := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		for _, higher := range []bool{true, false} {
			if got := Classify(50, bench, higher); got != model.HealthNeedsAttention {
				t.Errorf("Classify(50, %v, %v) = %s, want needs-attention", bench, higher, got)
			}
		}
	}
	if got := Classify(math.NaN(), 10, true); got != model.HealthNeedsAttention {
		t.Errorf("Classify(NaN, 10) = %s, want needs-attention", got)
	}
}

func TestCompare_UndefinedWithoutConcept(t *testing.T) {
	p := referencePlan()
	p.Concept = model.Concept{}
	b := nationalBenchmarks(t)

	comps := Compare(p, Derive(p, b), b)
	if len(comps) != 7 {
		t.Fatalf("len(comparisons) = %d, want 7", len(comps))
	}

	for _, c := range comps {
		switch c.Metric {
		case "rent_per_sqft", "startup_per_seat", "average_check":
			if c.Defined {
				t.Errorf("%s Defined = true without concept data", c.Metric)
			}
			if c.Label != model.HealthNeedsAttention {
				t.Errorf("%s Label = %s, want needs-attention", c.Metric, c.Label)
			}
		default:
			if !c.Defined {
				t.Errorf("%s Defined = false, want true", c.Metric)
			}
		}
	}
}

func TestCompare_UsesBenchmarkValue(t *testing.T) {
	p := referencePlan()
	b := nationalBenchmarks(t)
	b.GrossMarginTarget = 80 // 73.4 / 80 = 0.92 -> good

	for _, c := range Compare(p, Derive(p, config.Benchmarks{}), b) {
		if c.Metric == "gross_margin" && c.Label != model.HealthGood {
			t.Errorf("gross_margin vs 80 = %s, want good", c.Label)
		}
	}
}

func TestInsight(t *testing.T) {
	tests := []struct {
		c    model.Comparison
		want string
	}{
		{
			model.Comparison{Name: "Gross margin", Unit: model.UnitPercent, Actual: 73.4015,
				Benchmark: 65, HigherIsBetter: true, Defined: true, Label: model.HealthExcellent},
			"Gross margin 73.4% vs 65.0% target: excellent",
		},
		{
			model.Comparison{Name: "Food cost", Unit: model.UnitFraction, Actual: 0.25,
				Benchmark: 0.28, Defined: true, Label: model.HealthGood},
			"Food cost 25.0% vs 28.0% benchmark: good",
		},
		{
			model.Comparison{Metric: "rent_per_sqft", Name: "Rent per sq ft", Unit: model.UnitCurrency},
			"Rent per sq ft: n/a (square feet not provided)",
		},
	}
	for _, tt := range tests {
		if got := Insight(tt.c); got != tt.want {
			t.Errorf("Insight = %q, want %q", got, tt.want)
		}
	}
	if s := Insight(model.Comparison{Name: "x", Unit: model.UnitCurrency, Actual: 25, Benchmark: 30, Defined: true}); !strings.Contains(s, "$25.00") {
		t.Errorf("currency insight = %q, want $25.00", s)
	}
	big := model.Comparison{Name: "Sales per seat", Unit: model.UnitCurrency, Actual: 12500, Benchmark: 10000,
		HigherIsBetter: true, Defined: true, Label: model.HealthExcellent}
	if got, want := Insight(big), "Sales per seat $12,500.00 vs $10,000.00 target: excellent"; got != want {
		t.Errorf("Insight = %q, want %q", got, want)
	}
}
