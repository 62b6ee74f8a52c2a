package pipeline

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/plateplan/internal/model"
)

// dec converts a float to an exact decimal. Non-finite values become zero
// since decimal.NewFromFloat panics on them.
func dec(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// sum adds values in decimal so the result is independent of order.
func sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(dec(v))
	}
	return total.InexactFloat64()
}

// product multiplies two values in decimal.
func product(a, b float64) float64 {
	return dec(a).Mul(dec(b)).InexactFloat64()
}

// TotalRevenue sums every revenue line item.
func TotalRevenue(r model.RevenueInputs) float64 {
	return sum(r.FoodSales, r.BeverageSales, r.MerchandiseSales, r.CateringSales, r.OtherRevenue)
}

// TotalCogs applies each category's rate to its revenue and sums the results.
// Rates are used as given; range checks belong to ValidatePlan.
func TotalCogs(r model.RevenueInputs, c model.CogsRates) float64 {
	total := decimal.Zero
	for _, cat := range categories(r, c) {
		total = total.Add(dec(cat.Revenue).Mul(dec(cat.Rate)))
	}
	return total.InexactFloat64()
}

// TotalOpEx sums the fixed operating expenses, excluding payroll.
func TotalOpEx(e model.OperatingExpenses) float64 {
	return sum(
		e.Rent, e.Utilities, e.Insurance, e.Marketing, e.LegalAccounting,
		e.RepairsMaintenance, e.Supplies, e.AdminOffice, e.OtherOperatingExpenses,
	)
}

// TotalPayroll returns salaries loaded with payroll tax.
func TotalPayroll(e model.OperatingExpenses) float64 {
	salaries := dec(e.SalaryOwners).Add(dec(e.SalaryFullTime)).Add(dec(e.SalaryPartTime))
	return salaries.Mul(decimal.NewFromInt(1).Add(dec(e.PayrollTaxRate))).InexactFloat64()
}

// TotalExpenses is operating expenses plus loaded payroll.
func TotalExpenses(e model.OperatingExpenses) float64 {
	return sum(TotalOpEx(e), TotalPayroll(e))
}

// TotalStartupCosts sums the one-time startup costs.
func TotalStartupCosts(s model.StartupCosts) float64 {
	return sum(
		s.LeaseholdImprovements, s.KitchenEquipment, s.FurnitureFixtures, s.InitialInventory,
		s.PreOpeningSalaries, s.DepositsLicenses, s.InitialMarketing, s.Contingency,
	)
}

// TotalFunding sums every funding source.
func TotalFunding(f model.FundingSources) float64 {
	return sum(f.OwnersEquity, f.InvestorFunds, f.BankLoans, f.OtherFunding)
}

// FundingGap is startup costs minus funding. Positive means underfunded.
func FundingGap(s model.StartupCosts, f model.FundingSources) float64 {
	return dec(TotalStartupCosts(s)).Sub(dec(TotalFunding(f))).InexactFloat64()
}
