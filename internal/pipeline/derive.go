package pipeline

import (
	"github.com/theirongolddev/plateplan/internal/config"
	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/source"
)

// Derive computes every metric for a plan. It is a pure function: the same
// plan and benchmarks always produce identical metrics.
func Derive(p model.Plan, b config.Benchmarks) model.Metrics {
	var m model.Metrics

	m.TotalRevenue = TotalRevenue(p.Revenue)
	m.TotalCogs = TotalCogs(p.Revenue, p.Cogs)
	m.GrossProfit = GrossProfit(m.TotalRevenue, m.TotalCogs)
	m.GrossMarginPct = PercentOf(m.GrossProfit, m.TotalRevenue)

	m.TotalOpEx = TotalOpEx(p.Expenses)
	m.TotalPayroll = TotalPayroll(p.Expenses)
	m.TotalExpenses = sum(m.TotalOpEx, m.TotalPayroll)
	m.LaborPct = PercentOf(m.TotalPayroll, m.TotalRevenue)

	m.NetIncome = NetIncome(m.GrossProfit, m.TotalExpenses)
	m.NetMarginPct = PercentOf(m.NetIncome, m.TotalRevenue)

	m.TotalStartupCosts = TotalStartupCosts(p.Startup)
	m.TotalFunding = TotalFunding(p.Funding)
	m.FundingGap = FundingGap(p.Startup, p.Funding)

	m.BreakEvenRevenue = BreakEvenRevenue(m.TotalExpenses, m.GrossMarginPct)
	m.MonthlyBurnRate = MonthlyBurnRate(m.TotalExpenses)
	m.RunwayMonths = RunwayMonths(m.TotalFunding, m.MonthlyBurnRate)
	m.MonthsToBreakEven = MonthsToBreakEven(m.TotalFunding, m.TotalExpenses, m.GrossMarginPct)

	m.Health = Compare(p, m, b)

	return m
}

// Evaluation is the result of running a raw plan through the full pipeline.
type Evaluation struct {
	Plan     model.Plan
	Metrics  model.Metrics
	Warnings []FieldError
}

// Evaluate normalizes a raw plan, applies the rate policy, and derives its
// metrics. Under the reject policy an out-of-range plan returns an
// *InputError and no metrics.
func Evaluate(raw source.RawPlan, b config.Benchmarks, policy RatePolicy) (Evaluation, error) {
	plan, warnings, err := ApplyPolicy(NormalizePlan(raw), policy)
	if err != nil {
		return Evaluation{Plan: plan}, err
	}
	return Evaluation{
		Plan:     plan,
		Metrics:  Derive(plan, b),
		Warnings: warnings,
	}, nil
}
