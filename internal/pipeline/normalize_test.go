package pipeline

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/theirongolddev/plateplan/internal/source"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"empty string", "", 0},
		{"whitespace", "   ", 0},
		{"numeric string", "1500.25", 1500.25},
		{"padded string", " 42 ", 42},
		{"exponent string", "1e3", 1000},
		{"negative string", "-12.5", -12.5},
		{"non-numeric string", "abc", 0},
		{"currency symbols are not stripped", "$1,000", 0},
		{"NaN string", "NaN", 0},
		{"float64", 0.28, 0.28},
		{"int", 7, 7},
		{"int64", int64(500000), 500000},
		{"uint8", uint8(3), 3},
		{"float32", float32(0.5), 0.5},
		{"json number", json.Number("150000"), 150000},
		{"bad json number", json.Number("x"), 0},
		{"NaN", math.NaN(), 0},
		{"+Inf", math.Inf(1), 0},
		{"-Inf", math.Inf(-1), 0},
		{"bool", true, 0},
		{"slice", []int{1}, 0},
		{"raw value", source.Raw("250"), 250},
		{"empty raw value", source.RawValue{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%#v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizePlan(t *testing.T) {
	raw := source.RawPlan{
		Name: "  Taqueria  ",
		Revenue: source.RawRevenue{
			FoodSales:     source.Raw("500000"),
			BeverageSales: source.Raw(json.Number("150000")),
			CateringSales: source.Raw(""),
		},
		Cogs:     source.RawCogs{Food: source.Raw(0.28)},
		Expenses: source.RawExpenses{PayrollTaxRate: source.Raw("0.1")},
		Funding:  source.RawFunding{BankLoans: source.Raw("lots")},
	}

	p := NormalizePlan(raw)

	if p.Name != "Taqueria" {
		t.Errorf("Name = %q, want Taqueria", p.Name)
	}
	if p.Revenue.FoodSales != 500000 || p.Revenue.BeverageSales != 150000 || p.Revenue.CateringSales != 0 {
		t.Errorf("Revenue = %+v", p.Revenue)
	}
	if p.Cogs.Food != 0.28 {
		t.Errorf("Cogs.Food = %v, want 0.28", p.Cogs.Food)
	}
	if p.Expenses.PayrollTaxRate != 0.1 {
		t.Errorf("PayrollTaxRate = %v, want 0.1", p.Expenses.PayrollTaxRate)
	}
	if p.Funding.BankLoans != 0 {
		t.Errorf("BankLoans = %v, want 0 for non-numeric input", p.Funding.BankLoans)
	}
}
