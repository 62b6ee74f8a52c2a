package pipeline

import (
	"sort"

	"github.com/theirongolddev/plateplan/internal/model"
)

// categories pairs each revenue line with its COGS rate, in display order.
func categories(r model.RevenueInputs, c model.CogsRates) []model.CostCategory {
	return []model.CostCategory{
		{Category: "Food", Revenue: r.FoodSales, Rate: c.Food},
		{Category: "Beverage", Revenue: r.BeverageSales, Rate: c.Beverage},
		{Category: "Merchandise", Revenue: r.MerchandiseSales, Rate: c.Merchandise},
		{Category: "Catering", Revenue: r.CateringSales, Rate: c.Catering},
		{Category: "Other", Revenue: r.OtherRevenue, Rate: c.Other},
	}
}

// CostBreakdown computes per-category cost of goods, sorted by COGS
// descending. Categories with equal COGS keep their display order.
func CostBreakdown(r model.RevenueInputs, c model.CogsRates) []model.CostCategory {
	rows := categories(r, c)
	total := TotalCogs(r, c)

	for i := range rows {
		rows[i].Cogs = product(rows[i].Revenue, rows[i].Rate)
		if total > 0 {
			rows[i].SharePercent = rows[i].Cogs / total * 100
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Cogs > rows[j].Cogs
	})

	return rows
}

// ExpenseBreakdown lists fixed operating expenses followed by loaded payroll.
func ExpenseBreakdown(e model.OperatingExpenses) []model.LineItem {
	return []model.LineItem{
		{Name: "Rent", Amount: e.Rent},
		{Name: "Utilities", Amount: e.Utilities},
		{Name: "Insurance", Amount: e.Insurance},
		{Name: "Marketing", Amount: e.Marketing},
		{Name: "Legal & Accounting", Amount: e.LegalAccounting},
		{Name: "Repairs & Maintenance", Amount: e.RepairsMaintenance},
		{Name: "Supplies", Amount: e.Supplies},
		{Name: "Admin & Office", Amount: e.AdminOffice},
		{Name: "Other Operating", Amount: e.OtherOperatingExpenses},
		{Name: "Payroll (loaded)", Amount: TotalPayroll(e)},
	}
}

// StartupBreakdown lists the one-time startup costs.
func StartupBreakdown(s model.StartupCosts) []model.LineItem {
	return []model.LineItem{
		{Name: "Leasehold Improvements", Amount: s.LeaseholdImprovements},
		{Name: "Kitchen Equipment", Amount: s.KitchenEquipment},
		{Name: "Furniture & Fixtures", Amount: s.FurnitureFixtures},
		{Name: "Initial Inventory", Amount: s.InitialInventory},
		{Name: "Pre-Opening Salaries", Amount: s.PreOpeningSalaries},
		{Name: "Deposits & Licenses", Amount: s.DepositsLicenses},
		{Name: "Initial Marketing", Amount: s.InitialMarketing},
		{Name: "Contingency", Amount: s.Contingency},
	}
}

// FundingBreakdown lists the funding sources.
func FundingBreakdown(f model.FundingSources) []model.LineItem {
	return []model.LineItem{
		{Name: "Owner's Equity", Amount: f.OwnersEquity},
		{Name: "Investor Funds", Amount: f.InvestorFunds},
		{Name: "Bank Loans", Amount: f.BankLoans},
		{Name: "Other Funding", Amount: f.OtherFunding},
	}
}
