// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NotApplicable is shown for metrics that cannot be computed.
const NotApplicable = "N/A"

// Unlimited is shown when there is no burn to exhaust funding.
const Unlimited = "Unlimited"

// FormatCurrency formats whole dollars with thousands separators.
// e.g., 1234567.4 -> "$1,234,567", -1234 -> "-$1,234"
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotApplicable
	}
	r := math.Round(v)
	digits := groupDigits(strconv.FormatFloat(math.Abs(r), 'f', 0, 64))
	if r < 0 {
		return "-$" + digits
	}
	return "$" + digits
}

// FormatUnitPrice formats per-unit amounts with cents.
// e.g., 25 -> "$25.00", 12500 -> "$12,500.00"
func FormatUnitPrice(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotApplicable
	}
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	whole, cents, _ := strings.Cut(s, ".")
	s = "$" + groupDigits(whole) + "." + cents
	if v < 0 {
		return "-" + s
	}
	return s
}

// FormatCompact formats a dollar amount with a suffix for tight layouts.
// e.g., 685000 -> "$685K", 1250000 -> "$1.2M", 950 -> "$950"
func FormatCompact(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, v/1_000_000)
	case v >= 10_000:
		return fmt.Sprintf("%s$%.0fK", sign, v/1_000)
	case v >= 1_000:
		return fmt.Sprintf("%s$%.1fK", sign, v/1_000)
	default:
		return fmt.Sprintf("%s$%.0f", sign, v)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		return "-" + groupDigits(rest)
	}
	return groupDigits(s)
}

// groupDigits inserts commas every three digits of an unsigned digit string.
func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a value already on the 0-100 scale.
// e.g., 73.4015 -> "73.4%"
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatRate formats a 0-1 fraction as a percentage.
// e.g., 0.28 -> "28.0%"
func FormatRate(f float64) string {
	return FormatPercent(f * 100)
}

// FormatBreakEven formats an optional break-even revenue.
func FormatBreakEven(v *float64) string {
	if v == nil {
		return NotApplicable
	}
	return FormatCurrency(*v)
}

// FormatMonths formats an optional month count. A nil count means the
// funding never runs out.
func FormatMonths(v *float64) string {
	if v == nil {
		return Unlimited
	}
	return fmt.Sprintf("%.1f months", *v)
}

// FormatDelta formats the dollar change between two values with a sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatCurrency(delta)
	}
	return FormatCurrency(delta)
}

// FormatCount formats a customer or seat count.
func FormatCount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotApplicable
	}
	r := math.Round(v)
	digits := groupDigits(strconv.FormatFloat(math.Abs(r), 'f', 0, 64))
	if r < 0 {
		return "-" + digits
	}
	return digits
}
