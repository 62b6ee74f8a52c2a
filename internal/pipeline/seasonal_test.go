package pipeline

import (
	"math"
	"reflect"
	"testing"

	"github.com/theirongolddev/plateplan/internal/model"
)

func sumMonths(months []model.MonthlyProjection, f func(model.MonthlyProjection) float64) float64 {
	var total float64
	for _, m := range months {
		total += f(m)
	}
	return total
}

func TestProjectSeasonal_RevenueSumsToAnnual(t *testing.T) {
	for _, annual := range []float64{685000, 1, 999999, 12345678.9, 0} {
		months := ProjectSeasonal(annual, annual/2, SeasonalOptions{})
		if len(months) != 12 {
			t.Fatalf("len(months) = %d, want 12", len(months))
		}

		got := sumMonths(months, func(m model.MonthlyProjection) float64 { return m.Revenue })
		if math.Abs(got-annual) > 12 {
			t.Errorf("annual %v: monthly revenue sums to %v, off by more than 12", annual, got)
		}
		cost := sumMonths(months, func(m model.MonthlyProjection) float64 { return m.Cost })
		if math.Abs(cost-annual/2) > 12 {
			t.Errorf("annual cost %v: monthly cost sums to %v", annual/2, cost)
		}
	}
}

func TestProjectSeasonal_Shape(t *testing.T) {
	months := ProjectSeasonal(685000, 566200, SeasonalOptions{AverageOrderValue: 32})

	jan, feb, jun, nov, dec := months[0], months[1], months[5], months[10], months[11]
	if !(jan.Revenue < feb.Revenue && feb.Revenue < jun.Revenue && jun.Revenue < nov.Revenue && nov.Revenue < dec.Revenue) {
		t.Errorf("revenue not seasonal: jan %v feb %v jun %v nov %v dec %v",
			jan.Revenue, feb.Revenue, jun.Revenue, nov.Revenue, dec.Revenue)
	}
	if jan.Label != "Jan" || dec.Label != "Dec" || dec.Month != 12 {
		t.Errorf("labels = %s/%s month %d", jan.Label, dec.Label, dec.Month)
	}

	// Default cost multipliers are flat.
	for _, m := range months[1:] {
		if m.Cost != months[0].Cost {
			t.Fatalf("cost for %s = %v, want flat %v", m.Label, m.Cost, months[0].Cost)
		}
	}

	for _, m := range months {
		if m.Profit != m.Revenue-m.Cost {
			t.Errorf("%s profit = %v, want revenue - cost", m.Label, m.Profit)
		}
		wantMargin := math.Round(m.Profit / m.Revenue * 100)
		if m.MarginPct != wantMargin {
			t.Errorf("%s margin = %v, want %v", m.Label, m.MarginPct, wantMargin)
		}
	}

	wantDecCustomers := math.Round(dec.Revenue / 32 * 1.3)
	if dec.Customers != wantDecCustomers {
		t.Errorf("Dec customers = %v, want %v", dec.Customers, wantDecCustomers)
	}
}

func TestProjectSeasonal_ZeroGuards(t *testing.T) {
	months := ProjectSeasonal(0, 1200, SeasonalOptions{AverageOrderValue: 0})
	for _, m := range months {
		if m.MarginPct != 0 || m.Customers != 0 {
			t.Fatalf("%s margin/customers = %v/%v, want 0/0", m.Label, m.MarginPct, m.Customers)
		}
		if m.Profit != -100 {
			t.Fatalf("%s profit = %v, want -100", m.Label, m.Profit)
		}
	}
}

func TestProjectSeasonal_CostMultipliers(t *testing.T) {
	mult := []float64{2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	months := ProjectSeasonal(0, 1300, SeasonalOptions{CostMultipliers: mult})
	if months[0].Cost != 200 || months[1].Cost != 100 {
		t.Errorf("costs = %v/%v, want 200/100", months[0].Cost, months[1].Cost)
	}

	// Wrong length falls back to flat.
	flat := ProjectSeasonal(0, 1200, SeasonalOptions{CostMultipliers: []float64{5}})
	if flat[0].Cost != 100 {
		t.Errorf("flat cost = %v, want 100", flat[0].Cost)
	}
}

func TestProjectSeasonal_JitterIsReproducible(t *testing.T) {
	seed := uint64(7)
	a := ProjectSeasonal(685000, 566200, SeasonalOptions{JitterSeed: &seed})
	b := ProjectSeasonal(685000, 566200, SeasonalOptions{JitterSeed: &seed})
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different projections")
	}

	other := uint64(8)
	c := ProjectSeasonal(685000, 566200, SeasonalOptions{JitterSeed: &other})
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds produced identical projections")
	}

	cost := sumMonths(a, func(m model.MonthlyProjection) float64 { return m.Cost })
	if math.Abs(cost-566200) > 12 {
		t.Errorf("jittered cost sums to %v, want 566200 +/- 12", cost)
	}
}

func TestAverageOrderValue_Precedence(t *testing.T) {
	configured := 30.0
	p := referencePlan()

	if got := AverageOrderValue(p, &configured, 28); got != 32 {
		t.Errorf("with plan check = %v, want 32", got)
	}
	p.Concept.AverageCheck = 0
	if got := AverageOrderValue(p, &configured, 28); got != 30 {
		t.Errorf("with config = %v, want 30", got)
	}
	if got := AverageOrderValue(p, nil, 28); got != 28 {
		t.Errorf("fallback = %v, want 28", got)
	}
}

func TestProjectPlan_UsesTotalCosts(t *testing.T) {
	m := Derive(referencePlan(), nationalBenchmarks(t))
	months := ProjectPlan(m, SeasonalOptions{})
	cost := sumMonths(months, func(mp model.MonthlyProjection) float64 { return mp.Cost })
	if math.Abs(cost-(m.TotalCogs+m.TotalExpenses)) > 12 {
		t.Errorf("cost sum = %v, want %v", cost, m.TotalCogs+m.TotalExpenses)
	}
}
