// Package model defines the plan inputs and the metrics derived from them.
package model

// RevenueInputs holds projected annual sales per revenue category.
type RevenueInputs struct {
	FoodSales        float64 `json:"food_sales" toml:"food_sales" validate:"gte=0"`
	BeverageSales    float64 `json:"beverage_sales" toml:"beverage_sales" validate:"gte=0"`
	MerchandiseSales float64 `json:"merchandise_sales" toml:"merchandise_sales" validate:"gte=0"`
	CateringSales    float64 `json:"catering_sales" toml:"catering_sales" validate:"gte=0"`
	OtherRevenue     float64 `json:"other_revenue" toml:"other_revenue" validate:"gte=0"`
}

// CogsRates holds cost-of-goods rates per revenue category, as fractions.
type CogsRates struct {
	Food        float64 `json:"food" toml:"food" validate:"gte=0,lte=1"`
	Beverage    float64 `json:"beverage" toml:"beverage" validate:"gte=0,lte=1"`
	Merchandise float64 `json:"merchandise" toml:"merchandise" validate:"gte=0,lte=1"`
	Catering    float64 `json:"catering" toml:"catering" validate:"gte=0,lte=1"`
	Other       float64 `json:"other" toml:"other" validate:"gte=0,lte=1"`
}

// OperatingExpenses holds fixed annual costs and payroll inputs.
type OperatingExpenses struct {
	Rent                   float64 `json:"rent" toml:"rent" validate:"gte=0"`
	Utilities              float64 `json:"utilities" toml:"utilities" validate:"gte=0"`
	Insurance              float64 `json:"insurance" toml:"insurance" validate:"gte=0"`
	Marketing              float64 `json:"marketing" toml:"marketing" validate:"gte=0"`
	LegalAccounting        float64 `json:"legal_accounting" toml:"legal_accounting" validate:"gte=0"`
	RepairsMaintenance     float64 `json:"repairs_maintenance" toml:"repairs_maintenance" validate:"gte=0"`
	Supplies               float64 `json:"supplies" toml:"supplies" validate:"gte=0"`
	AdminOffice            float64 `json:"admin_office" toml:"admin_office" validate:"gte=0"`
	OtherOperatingExpenses float64 `json:"other_operating_expenses" toml:"other_operating_expenses" validate:"gte=0"`

	SalaryOwners   float64 `json:"salary_owners" toml:"salary_owners" validate:"gte=0"`
	SalaryFullTime float64 `json:"salary_full_time" toml:"salary_full_time" validate:"gte=0"`
	SalaryPartTime float64 `json:"salary_part_time" toml:"salary_part_time" validate:"gte=0"`
	PayrollTaxRate float64 `json:"payroll_tax_rate" toml:"payroll_tax_rate" validate:"gte=0,lte=1"`
}

// StartupCosts holds one-time costs incurred before opening.
type StartupCosts struct {
	LeaseholdImprovements float64 `json:"leasehold_improvements" toml:"leasehold_improvements" validate:"gte=0"`
	KitchenEquipment      float64 `json:"kitchen_equipment" toml:"kitchen_equipment" validate:"gte=0"`
	FurnitureFixtures     float64 `json:"furniture_fixtures" toml:"furniture_fixtures" validate:"gte=0"`
	InitialInventory      float64 `json:"initial_inventory" toml:"initial_inventory" validate:"gte=0"`
	PreOpeningSalaries    float64 `json:"pre_opening_salaries" toml:"pre_opening_salaries" validate:"gte=0"`
	DepositsLicenses      float64 `json:"deposits_licenses" toml:"deposits_licenses" validate:"gte=0"`
	InitialMarketing      float64 `json:"initial_marketing" toml:"initial_marketing" validate:"gte=0"`
	Contingency           float64 `json:"contingency" toml:"contingency" validate:"gte=0"`
}

// FundingSources holds secured capital by source.
type FundingSources struct {
	OwnersEquity  float64 `json:"owners_equity" toml:"owners_equity" validate:"gte=0"`
	InvestorFunds float64 `json:"investor_funds" toml:"investor_funds" validate:"gte=0"`
	BankLoans     float64 `json:"bank_loans" toml:"bank_loans" validate:"gte=0"`
	OtherFunding  float64 `json:"other_funding" toml:"other_funding" validate:"gte=0"`
}

// Concept describes the physical restaurant. Zero means not provided.
type Concept struct {
	Seats        float64 `json:"seats" toml:"seats" validate:"gte=0"`
	SquareFeet   float64 `json:"square_feet" toml:"square_feet" validate:"gte=0"`
	AverageCheck float64 `json:"average_check" toml:"average_check" validate:"gte=0"`
}

// Plan is the full set of business-plan inputs for one restaurant.
type Plan struct {
	Name     string            `json:"name" toml:"name"`
	Concept  Concept           `json:"concept" toml:"concept"`
	Revenue  RevenueInputs     `json:"revenue" toml:"revenue"`
	Cogs     CogsRates         `json:"cogs" toml:"cogs"`
	Expenses OperatingExpenses `json:"expenses" toml:"expenses"`
	Startup  StartupCosts      `json:"startup" toml:"startup"`
	Funding  FundingSources    `json:"funding" toml:"funding"`
}
