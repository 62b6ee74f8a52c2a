package pipeline

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/theirongolddev/plateplan/internal/model"
)

// ErrInvalidInput is matched by every *InputError.
var ErrInvalidInput = errors.New("invalid plan input")

// FieldError describes one plan field outside its allowed range.
type FieldError struct {
	Field string  `json:"field"` // dotted path, e.g. "cogs.food"
	Value float64 `json:"value"`
	Rule  string  `json:"rule"` // e.g. "lte=1"
}

func (fe FieldError) String() string {
	return fmt.Sprintf("%s=%g (must be %s)", fe.Field, fe.Value, describeRule(fe.Rule))
}

// InputError lists every out-of-range field in a plan.
type InputError struct {
	Fields []FieldError
}

func (e *InputError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		parts[i] = fe.String()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

// Is reports whether target is ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidatePlan checks that money, seats, and area are non-negative and
// that every rate lies in [0, 1]. It returns nil or an *InputError.
func ValidatePlan(p model.Plan) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating plan: %w", err)
	}

	ie := &InputError{}
	for _, ve := range verrs {
		fe := FieldError{
			Field: fieldPath(ve.Namespace()),
			Rule:  ve.Tag(),
		}
		if ve.Param() != "" {
			fe.Rule += "=" + ve.Param()
		}
		if f, ok := ve.Value().(float64); ok {
			fe.Value = f
		}
		ie.Fields = append(ie.Fields, fe)
	}
	return ie
}

// fieldPath drops the root struct name: "Plan.cogs.food" -> "cogs.food".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func describeRule(rule string) string {
	switch rule {
	case "gte=0":
		return ">= 0"
	case "lte=1":
		return "<= 1 (rates are fractions, 0.28 not 28)"
	default:
		return rule
	}
}

// ClampPlan forces negatives to 0 and rates above 1 down to 1. It returns
// the clamped plan and the fields that changed.
func ClampPlan(p model.Plan) (model.Plan, []FieldError) {
	err := ValidatePlan(p)
	var ie *InputError
	if !errors.As(err, &ie) {
		return p, nil
	}

	refs := fieldRefs(&p)
	for _, fe := range ie.Fields {
		ptr, ok := refs[fe.Field]
		if !ok {
			continue
		}
		switch {
		case *ptr < 0:
			*ptr = 0
		case *ptr > 1 && strings.HasPrefix(fe.Rule, "lte"):
			*ptr = 1
		}
	}
	return p, ie.Fields
}

// RatePolicy selects how out-of-range inputs are handled.
type RatePolicy string

const (
	PolicyReject RatePolicy = "reject"
	PolicyClamp  RatePolicy = "clamp"
	PolicyIgnore RatePolicy = "ignore"
)

// ParsePolicy validates a policy name. Empty means reject.
func ParsePolicy(s string) (RatePolicy, error) {
	switch RatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyReject:
		return PolicyReject, nil
	case PolicyClamp:
		return PolicyClamp, nil
	case PolicyIgnore:
		return PolicyIgnore, nil
	default:
		return "", fmt.Errorf("unknown rate policy %q (want reject, clamp, or ignore)", s)
	}
}

// ApplyPolicy enforces input ranges. Reject returns the *InputError,
// clamp returns the clamped plan with the touched fields as warnings, and
// ignore passes the plan through with the offending fields as warnings.
func ApplyPolicy(p model.Plan, policy RatePolicy) (model.Plan, []FieldError, error) {
	switch policy {
	case PolicyClamp:
		clamped, fields := ClampPlan(p)
		return clamped, fields, nil
	case PolicyIgnore:
		var ie *InputError
		if errors.As(ValidatePlan(p), &ie) {
			return p, ie.Fields, nil
		}
		return p, nil, nil
	default:
		if err := ValidatePlan(p); err != nil {
			return p, nil, err
		}
		return p, nil, nil
	}
}

// fieldRefs maps dotted field paths to the plan's numeric fields.
func fieldRefs(p *model.Plan) map[string]*float64 {
	return map[string]*float64{
		"concept.seats":                     &p.Concept.Seats,
		"concept.square_feet":               &p.Concept.SquareFeet,
		"concept.average_check":             &p.Concept.AverageCheck,
		"revenue.food_sales":                &p.Revenue.FoodSales,
		"revenue.beverage_sales":            &p.Revenue.BeverageSales,
		"revenue.merchandise_sales":         &p.Revenue.MerchandiseSales,
		"revenue.catering_sales":            &p.Revenue.CateringSales,
		"revenue.other_revenue":             &p.Revenue.OtherRevenue,
		"cogs.food":                         &p.Cogs.Food,
		"cogs.beverage":                     &p.Cogs.Beverage,
		"cogs.merchandise":                  &p.Cogs.Merchandise,
		"cogs.catering":                     &p.Cogs.Catering,
		"cogs.other":                        &p.Cogs.Other,
		"expenses.rent":                     &p.Expenses.Rent,
		"expenses.utilities":                &p.Expenses.Utilities,
		"expenses.insurance":                &p.Expenses.Insurance,
		"expenses.marketing":                &p.Expenses.Marketing,
		"expenses.legal_accounting":         &p.Expenses.LegalAccounting,
		"expenses.repairs_maintenance":      &p.Expenses.RepairsMaintenance,
		"expenses.supplies":                 &p.Expenses.Supplies,
		"expenses.admin_office":             &p.Expenses.AdminOffice,
		"expenses.other_operating_expenses": &p.Expenses.OtherOperatingExpenses,
		"expenses.salary_owners":            &p.Expenses.SalaryOwners,
		"expenses.salary_full_time":         &p.Expenses.SalaryFullTime,
		"expenses.salary_part_time":         &p.Expenses.SalaryPartTime,
		"expenses.payroll_tax_rate":         &p.Expenses.PayrollTaxRate,
		"startup.leasehold_improvements":    &p.Startup.LeaseholdImprovements,
		"startup.kitchen_equipment":         &p.Startup.KitchenEquipment,
		"startup.furniture_fixtures":        &p.Startup.FurnitureFixtures,
		"startup.initial_inventory":         &p.Startup.InitialInventory,
		"startup.pre_opening_salaries":      &p.Startup.PreOpeningSalaries,
		"startup.deposits_licenses":         &p.Startup.DepositsLicenses,
		"startup.initial_marketing":         &p.Startup.InitialMarketing,
		"startup.contingency":               &p.Startup.Contingency,
		"funding.owners_equity":             &p.Funding.OwnersEquity,
		"funding.investor_funds":            &p.Funding.InvestorFunds,
		"funding.bank_loans":                &p.Funding.BankLoans,
		"funding.other_funding":             &p.Funding.OtherFunding,
	}
}
