package pipeline

// Funding status labels.
const (
	StatusFullyFunded  = "Fully funded"
	StatusNeedsFunding = "Additional funding needed"
)

const (
	monthsPerYear = 12
	percentScale  = 100
)

// FundingStatus reports whether the funding gap is covered. A gap of
// exactly zero counts as fully funded, as does any surplus.
func FundingStatus(gap float64) string {
	if gap > 0 {
		return StatusNeedsFunding
	}
	return StatusFullyFunded
}

func floatPtr(f float64) *float64 {
	return &f
}

// BreakEvenRevenue is the annual revenue at which net income is zero.
// It returns 0 when there are no expenses and nil when the gross margin
// is not positive, since no revenue level covers expenses then.
func BreakEvenRevenue(totalExpenses, grossMarginPct float64) *float64 {
	if totalExpenses <= 0 {
		return floatPtr(0)
	}
	if grossMarginPct <= 0 {
		return nil
	}
	return floatPtr(totalExpenses / (grossMarginPct / percentScale))
}

// MonthlyBurnRate spreads annual expenses evenly across twelve months.
func MonthlyBurnRate(totalExpenses float64) float64 {
	return totalExpenses / monthsPerYear
}

// RunwayMonths is how long funding lasts at the given burn rate.
// It returns 0 without funding and nil (unlimited) when nothing burns.
func RunwayMonths(totalFunding, monthlyBurn float64) *float64 {
	if totalFunding <= 0 {
		return floatPtr(0)
	}
	if monthlyBurn <= 0 {
		return nil
	}
	return floatPtr(totalFunding / monthlyBurn)
}

// MonthsToBreakEven is break-even revenue expressed per month. It returns 0
// without funding and shares the nil result of BreakEvenRevenue.
func MonthsToBreakEven(totalFunding, totalExpenses, grossMarginPct float64) *float64 {
	if totalFunding <= 0 {
		return floatPtr(0)
	}
	be := BreakEvenRevenue(totalExpenses, grossMarginPct)
	if be == nil {
		return nil
	}
	return floatPtr(*be / monthsPerYear)
}
