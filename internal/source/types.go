package source

import (
	"bytes"
	"encoding/json"
)

// RawValue holds one numeric field exactly as it appeared in a plan file:
// a number, a numeric string, a blank string, or nothing at all.
// Coercion to float64 happens later, at the normalization boundary.
type RawValue struct {
	v any
}

// Raw wraps an arbitrary value, mainly for tests and programmatic plans.
func Raw(v any) RawValue {
	return RawValue{v: v}
}

// Value returns the undecoded value, or nil if the field was absent.
func (r RawValue) Value() any {
	return r.v
}

// UnmarshalJSON keeps numbers as json.Number so no precision is lost
// before normalization.
func (r *RawValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	r.v = v
	return nil
}

// MarshalJSON writes the raw value back unchanged.
func (r RawValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.v)
}

// UnmarshalTOML implements toml.Unmarshaler.
func (r *RawValue) UnmarshalTOML(v any) error {
	r.v = v
	return nil
}

// RawRevenue mirrors model.RevenueInputs before normalization.
type RawRevenue struct {
	FoodSales        RawValue `json:"food_sales" toml:"food_sales"`
	BeverageSales    RawValue `json:"beverage_sales" toml:"beverage_sales"`
	MerchandiseSales RawValue `json:"merchandise_sales" toml:"merchandise_sales"`
	CateringSales    RawValue `json:"catering_sales" toml:"catering_sales"`
	OtherRevenue     RawValue `json:"other_revenue" toml:"other_revenue"`
}

// RawCogs mirrors model.CogsRates before normalization.
type RawCogs struct {
	Food        RawValue `json:"food" toml:"food"`
	Beverage    RawValue `json:"beverage" toml:"beverage"`
	Merchandise RawValue `json:"merchandise" toml:"merchandise"`
	Catering    RawValue `json:"catering" toml:"catering"`
	Other       RawValue `json:"other" toml:"other"`
}

// RawExpenses mirrors model.OperatingExpenses before normalization.
type RawExpenses struct {
	Rent                   RawValue `json:"rent" toml:"rent"`
	Utilities              RawValue `json:"utilities" toml:"utilities"`
	Insurance              RawValue `json:"insurance" toml:"insurance"`
	Marketing              RawValue `json:"marketing" toml:"marketing"`
	LegalAccounting        RawValue `json:"legal_accounting" toml:"legal_accounting"`
	RepairsMaintenance     RawValue `json:"repairs_maintenance" toml:"repairs_maintenance"`
	Supplies               RawValue `json:"supplies" toml:"supplies"`
	AdminOffice            RawValue `json:"admin_office" toml:"admin_office"`
	OtherOperatingExpenses RawValue `json:"other_operating_expenses" toml:"other_operating_expenses"`
	SalaryOwners           RawValue `json:"salary_owners" toml:"salary_owners"`
	SalaryFullTime         RawValue `json:"salary_full_time" toml:"salary_full_time"`
	SalaryPartTime         RawValue `json:"salary_part_time" toml:"salary_part_time"`
	PayrollTaxRate         RawValue `json:"payroll_tax_rate" toml:"payroll_tax_rate"`
}

// RawStartup mirrors model.StartupCosts before normalization.
type RawStartup struct {
	LeaseholdImprovements RawValue `json:"leasehold_improvements" toml:"leasehold_improvements"`
	KitchenEquipment      RawValue `json:"kitchen_equipment" toml:"kitchen_equipment"`
	FurnitureFixtures     RawValue `json:"furniture_fixtures" toml:"furniture_fixtures"`
	InitialInventory      RawValue `json:"initial_inventory" toml:"initial_inventory"`
	PreOpeningSalaries    RawValue `json:"pre_opening_salaries" toml:"pre_opening_salaries"`
	DepositsLicenses      RawValue `json:"deposits_licenses" toml:"deposits_licenses"`
	InitialMarketing      RawValue `json:"initial_marketing" toml:"initial_marketing"`
	Contingency           RawValue `json:"contingency" toml:"contingency"`
}

// RawFunding mirrors model.FundingSources before normalization.
type RawFunding struct {
	OwnersEquity  RawValue `json:"owners_equity" toml:"owners_equity"`
	InvestorFunds RawValue `json:"investor_funds" toml:"investor_funds"`
	BankLoans     RawValue `json:"bank_loans" toml:"bank_loans"`
	OtherFunding  RawValue `json:"other_funding" toml:"other_funding"`
}

// RawConcept mirrors model.Concept before normalization.
type RawConcept struct {
	Seats        RawValue `json:"seats" toml:"seats"`
	SquareFeet   RawValue `json:"square_feet" toml:"square_feet"`
	AverageCheck RawValue `json:"average_check" toml:"average_check"`
}

// RawPlan is a plan file as decoded, before any numeric coercion.
type RawPlan struct {
	Name     string      `json:"name" toml:"name"`
	Concept  RawConcept  `json:"concept" toml:"concept"`
	Revenue  RawRevenue  `json:"revenue" toml:"revenue"`
	Cogs     RawCogs     `json:"cogs" toml:"cogs"`
	Expenses RawExpenses `json:"expenses" toml:"expenses"`
	Startup  RawStartup  `json:"startup" toml:"startup"`
	Funding  RawFunding  `json:"funding" toml:"funding"`
}

// Format identifies a plan file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// DiscoveredFile is a plan file found during directory scanning.
type DiscoveredFile struct {
	Path   string
	Name   string // file stem, used when the plan has no name
	Format Format
}
