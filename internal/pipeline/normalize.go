// Package pipeline derives financial metrics from restaurant plan inputs.
package pipeline

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/source"
)

// Normalize coerces a raw field value into a finite float64.
// nil, blank or non-numeric strings, NaN, infinities, and unsupported types
// all become 0. It never panics.
func Normalize(raw any) float64 {
	var f float64

	switch v := raw.(type) {
	case nil:
		return 0
	case source.RawValue:
		return Normalize(v.Value())
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return 0
		}
		f = d.InexactFloat64()
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return 0
		}
		f = d.InexactFloat64()
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// NormalizePlan converts a decoded plan file into a typed plan.
func NormalizePlan(raw source.RawPlan) model.Plan {
	n := Normalize
	return model.Plan{
		Name: strings.TrimSpace(raw.Name),
		Concept: model.Concept{
			Seats:        n(raw.Concept.Seats),
			SquareFeet:   n(raw.Concept.SquareFeet),
			AverageCheck: n(raw.Concept.AverageCheck),
		},
		Revenue: model.RevenueInputs{
			FoodSales:        n(raw.Revenue.FoodSales),
			BeverageSales:    n(raw.Revenue.BeverageSales),
			MerchandiseSales: n(raw.Revenue.MerchandiseSales),
			CateringSales:    n(raw.Revenue.CateringSales),
			OtherRevenue:     n(raw.Revenue.OtherRevenue),
		},
		Cogs: model.CogsRates{
			Food:        n(raw.Cogs.Food),
			Beverage:    n(raw.Cogs.Beverage),
			Merchandise: n(raw.Cogs.Merchandise),
			Catering:    n(raw.Cogs.Catering),
			Other:       n(raw.Cogs.Other),
		},
		Expenses: model.OperatingExpenses{
			Rent:                   n(raw.Expenses.Rent),
			Utilities:              n(raw.Expenses.Utilities),
			Insurance:              n(raw.Expenses.Insurance),
			Marketing:              n(raw.Expenses.Marketing),
			LegalAccounting:        n(raw.Expenses.LegalAccounting),
			RepairsMaintenance:     n(raw.Expenses.RepairsMaintenance),
			Supplies:               n(raw.Expenses.Supplies),
			AdminOffice:            n(raw.Expenses.AdminOffice),
			OtherOperatingExpenses: n(raw.Expenses.OtherOperatingExpenses),
			SalaryOwners:           n(raw.Expenses.SalaryOwners),
			SalaryFullTime:         n(raw.Expenses.SalaryFullTime),
			SalaryPartTime:         n(raw.Expenses.SalaryPartTime),
			PayrollTaxRate:         n(raw.Expenses.PayrollTaxRate),
		},
		Startup: model.StartupCosts{
			LeaseholdImprovements: n(raw.Startup.LeaseholdImprovements),
			KitchenEquipment:      n(raw.Startup.KitchenEquipment),
			FurnitureFixtures:     n(raw.Startup.FurnitureFixtures),
			InitialInventory:      n(raw.Startup.InitialInventory),
			PreOpeningSalaries:    n(raw.Startup.PreOpeningSalaries),
			DepositsLicenses:      n(raw.Startup.DepositsLicenses),
			InitialMarketing:      n(raw.Startup.InitialMarketing),
			Contingency:           n(raw.Startup.Contingency),
		},
		Funding: model.FundingSources{
			OwnersEquity:  n(raw.Funding.OwnersEquity),
			InvestorFunds: n(raw.Funding.InvestorFunds),
			BankLoans:     n(raw.Funding.BankLoans),
			OtherFunding:  n(raw.Funding.OtherFunding),
		},
	}
}
