package model

// HealthLabel is a three-tier classification of a metric against its benchmark.
type HealthLabel string

const (
	HealthExcellent      HealthLabel = "excellent"
	HealthGood           HealthLabel = "good"
	HealthNeedsAttention HealthLabel = "needs-attention"
)

// Unit describes how a comparison value should be displayed.
type Unit string

const (
	UnitPercent  Unit = "percent"  // already scaled, 73.4 means 73.4%
	UnitFraction Unit = "fraction" // 0.28 means 28%
	UnitCurrency Unit = "currency"
)

// Tracked health metric keys.
const (
	MetricGrossMargin    = "gross_margin"
	MetricNetMargin      = "net_margin"
	MetricFoodCost       = "food_cost"
	MetricLaborCost      = "labor_cost"
	MetricRentPerSqFt    = "rent_per_sqft"
	MetricStartupPerSeat = "startup_per_seat"
	MetricAverageCheck   = "average_check"
)

// HealthMetrics lists the tracked metrics in display order.
var HealthMetrics = []string{
	MetricGrossMargin,
	MetricNetMargin,
	MetricFoodCost,
	MetricLaborCost,
	MetricRentPerSqFt,
	MetricStartupPerSeat,
	MetricAverageCheck,
}

// Comparison holds one tracked ratio measured against its benchmark.
// Defined is false when the ratio cannot be computed from the inputs
// (e.g. a revenue share with zero revenue); Label is then needs-attention.
type Comparison struct {
	Metric         string      `json:"metric"`
	Name           string      `json:"name"`
	Actual         float64     `json:"actual"`
	Benchmark      float64     `json:"benchmark"`
	HigherIsBetter bool        `json:"higher_is_better"`
	Defined        bool        `json:"defined"`
	Unit           Unit        `json:"unit"`
	Label          HealthLabel `json:"label"`
}

// Metrics holds every KPI derived from a Plan.
// Pointer fields are nil when the value is undefined: BreakEvenRevenue and
// MonthsToBreakEven at a non-positive gross margin, RunwayMonths at zero burn.
type Metrics struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalCogs      float64 `json:"total_cogs"`
	GrossProfit    float64 `json:"gross_profit"`
	GrossMarginPct float64 `json:"gross_margin_pct"`

	TotalOpEx     float64 `json:"total_opex"`
	TotalPayroll  float64 `json:"total_payroll"`
	TotalExpenses float64 `json:"total_expenses"`
	LaborPct      float64 `json:"labor_pct"`

	NetIncome    float64 `json:"net_income"`
	NetMarginPct float64 `json:"net_margin_pct"`

	TotalStartupCosts float64 `json:"total_startup_costs"`
	TotalFunding      float64 `json:"total_funding"`
	FundingGap        float64 `json:"funding_gap"`

	BreakEvenRevenue  *float64 `json:"break_even_revenue"`
	MonthlyBurnRate   float64  `json:"monthly_burn_rate"`
	RunwayMonths      *float64 `json:"runway_months"`
	MonthsToBreakEven *float64 `json:"months_to_break_even"`

	Health []Comparison `json:"health"`
}

// CostCategory holds the cost of goods for one revenue category.
type CostCategory struct {
	Category     string  `json:"category"`
	Revenue      float64 `json:"revenue"`
	Rate         float64 `json:"rate"`
	Cogs         float64 `json:"cogs"`
	SharePercent float64 `json:"share_percent"`
}

// LineItem is a named amount, used for expense and capital breakdowns.
type LineItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// MonthlyProjection holds one month of the seasonal projection.
type MonthlyProjection struct {
	Month     int     `json:"month"`
	Label     string  `json:"label"`
	Revenue   float64 `json:"revenue"`
	Cost      float64 `json:"cost"`
	Profit    float64 `json:"profit"`
	MarginPct float64 `json:"margin_pct"`
	Customers float64 `json:"customers"`
}

// PlanSummary pairs a plan with its derived metrics, for portfolio views.
type PlanSummary struct {
	Plan     Plan    `json:"plan"`
	FilePath string  `json:"file_path,omitempty"`
	Metrics  Metrics `json:"metrics"`
}
