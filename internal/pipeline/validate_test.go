package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/source"
)

func TestValidatePlan_Valid(t *testing.T) {
	if err := ValidatePlan(referencePlan()); err != nil {
		t.Fatalf("ValidatePlan(reference) = %v, want nil", err)
	}
	if err := ValidatePlan(model.Plan{}); err != nil {
		t.Fatalf("ValidatePlan(zero) = %v, want nil", err)
	}
}

func TestValidatePlan_ReportsEveryField(t *testing.T) {
	p := referencePlan()
	p.Cogs.Food = 28
	p.Expenses.PayrollTaxRate = -0.1
	p.Revenue.OtherRevenue = -5

	err := ValidatePlan(p)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("err is %T, want *InputError", err)
	}

	got := make(map[string]string)
	for _, fe := range ie.Fields {
		got[fe.Field] = fe.Rule
	}
	want := map[string]string{
		"cogs.food":                 "lte=1",
		"expenses.payroll_tax_rate": "gte=0",
		"revenue.other_revenue":     "gte=0",
	}
	for field, rule := range want {
		if got[field] != rule {
			t.Errorf("field %s rule = %q, want %q (all: %v)", field, got[field], rule, got)
		}
	}
	if len(ie.Fields) != len(want) {
		t.Errorf("len(Fields) = %d, want %d", len(ie.Fields), len(want))
	}
	if !strings.Contains(err.Error(), "cogs.food=28") {
		t.Errorf("error text %q should name cogs.food=28", err)
	}
}

func TestClampPlan(t *testing.T) {
	p := referencePlan()
	p.Cogs.Food = 28
	p.Cogs.Beverage = 1.5
	p.Startup.Contingency = -100

	clamped, fields := ClampPlan(p)
	if len(fields) != 3 {
		t.Fatalf("len(fields) = %d, want 3", len(fields))
	}
	if clamped.Cogs.Food != 1 || clamped.Cogs.Beverage != 1 {
		t.Errorf("rates = %v/%v, want 1/1", clamped.Cogs.Food, clamped.Cogs.Beverage)
	}
	if clamped.Startup.Contingency != 0 {
		t.Errorf("Contingency = %v, want 0", clamped.Startup.Contingency)
	}
	if err := ValidatePlan(clamped); err != nil {
		t.Errorf("clamped plan still invalid: %v", err)
	}
	// Money above 1 is untouched.
	if clamped.Revenue.FoodSales != 500000 {
		t.Errorf("FoodSales = %v, want 500000", clamped.Revenue.FoodSales)
	}
}

func TestApplyPolicy(t *testing.T) {
	p := referencePlan()
	p.Cogs.Food = 28

	if _, _, err := ApplyPolicy(p, PolicyReject); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("reject err = %v, want ErrInvalidInput", err)
	}

	clamped, warnings, err := ApplyPolicy(p, PolicyClamp)
	if err != nil || len(warnings) != 1 || clamped.Cogs.Food != 1 {
		t.Errorf("clamp = %v, %v, %v; want food 1 with one warning", clamped.Cogs.Food, warnings, err)
	}

	ignored, warnings, err := ApplyPolicy(p, PolicyIgnore)
	if err != nil || len(warnings) != 1 || ignored.Cogs.Food != 28 {
		t.Errorf("ignore = %v, %v, %v; want food 28 with one warning", ignored.Cogs.Food, warnings, err)
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]RatePolicy{"": PolicyReject, "Clamp": PolicyClamp, " ignore ": PolicyIgnore} {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParsePolicy("bend"); err == nil {
		t.Error("ParsePolicy(bend) should fail")
	}
}

func TestEvaluate(t *testing.T) {
	raw := source.RawPlan{
		Revenue: source.RawRevenue{FoodSales: source.Raw("1000")},
		Cogs:    source.RawCogs{Food: source.Raw("30")},
	}
	b := nationalBenchmarks(t)

	if _, err := Evaluate(raw, b, PolicyReject); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Evaluate(reject) err = %v, want ErrInvalidInput", err)
	}

	ev, err := Evaluate(raw, b, PolicyClamp)
	if err != nil {
		t.Fatalf("Evaluate(clamp): %v", err)
	}
	if ev.Metrics.TotalCogs != 1000 || len(ev.Warnings) != 1 {
		t.Errorf("TotalCogs = %v, warnings = %v; want 1000 and one warning", ev.Metrics.TotalCogs, ev.Warnings)
	}
}
