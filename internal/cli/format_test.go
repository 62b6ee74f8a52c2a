package cli

import (
	"math"
	"strings"
	"testing"

	"github.com/theirongolddev/plateplan/internal/model"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999.4, "$999"},
		{1000, "$1,000"},
		{685000, "$685,000"},
		{1234567.5, "$1,234,568"},
		{-1234, "-$1,234"},
		{-0.4, "$0"},
		{2e19, "$20,000,000,000,000,000,000"},
		{-2e19, "-$20,000,000,000,000,000,000"},
		{math.NaN(), "N/A"},
		{math.Inf(1), "N/A"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{950, "$950"},
		{1500, "$1.5K"},
		{685000, "$685K"},
		{1250000, "$1.2M"},
		{-32000, "-$32K"},
	}
	for _, tt := range tests {
		if got := FormatCompact(tt.in); got != tt.want {
			t.Errorf("FormatCompact(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
		{math.MaxInt64, "9,223,372,036,854,775,807"},
		{math.MinInt64, "-9,223,372,036,854,775,808"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatUnitPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{25, "$25.00"},
		{3.456, "$3.46"},
		{12500, "$12,500.00"},
		{-3.5, "-$3.50"},
		{math.Inf(-1), "N/A"},
	}
	for _, tt := range tests {
		if got := FormatUnitPrice(tt.in); got != tt.want {
			t.Errorf("FormatUnitPrice(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1234.6, "1,235"},
		{0, "0"},
		{3e19, "30,000,000,000,000,000,000"},
		{math.NaN(), "N/A"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.in); got != tt.want {
			t.Errorf("FormatCount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercentAndRate(t *testing.T) {
	if got := FormatPercent(73.4015); got != "73.4%" {
		t.Errorf("FormatPercent = %q, want 73.4%%", got)
	}
	if got := FormatPercent(-12.04); got != "-12.0%" {
		t.Errorf("FormatPercent(neg) = %q, want -12.0%%", got)
	}
	if got := FormatRate(0.28); got != "28.0%" {
		t.Errorf("FormatRate = %q, want 28.0%%", got)
	}
}

func TestFormatOptionals(t *testing.T) {
	v := 523125.5
	months := 11.71875

	if got := FormatBreakEven(nil); got != NotApplicable {
		t.Errorf("FormatBreakEven(nil) = %q", got)
	}
	if got := FormatBreakEven(&v); got != "$523,126" {
		t.Errorf("FormatBreakEven = %q, want $523,126", got)
	}
	if got := FormatMonths(nil); got != Unlimited {
		t.Errorf("FormatMonths(nil) = %q", got)
	}
	if got := FormatMonths(&months); got != "11.7 months" {
		t.Errorf("FormatMonths = %q, want 11.7 months", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(1500, 1000); got != "+$500" {
		t.Errorf("FormatDelta up = %q", got)
	}
	if got := FormatDelta(1000, 1500); got != "-$500" {
		t.Errorf("FormatDelta down = %q", got)
	}
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Revenue", "$685,000"},
			{"---"},
			{"Net", "$1"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	width := len([]rune(stripANSI(lines[0])))
	for i, l := range lines {
		if w := len([]rune(stripANSI(l))); w != width {
			t.Errorf("line %d width = %d, want %d: %q", i, w, width, stripANSI(l))
		}
	}
	if !strings.Contains(stripANSI(lines[5]), "      $1 ") {
		t.Errorf("value column not right-aligned: %q", stripANSI(lines[5]))
	}
}

func TestRenderHealth(t *testing.T) {
	if got := stripANSI(RenderHealth(model.HealthNeedsAttention)); got != string(model.HealthNeedsAttention) {
		t.Errorf("RenderHealth = %q", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 50, 100, -10}); got != "▁▄█▁" {
		t.Errorf("RenderSparkline = %q, want ▁▄█▁", got)
	}
	if RenderSparkline(nil) != "" {
		t.Error("RenderSparkline(nil) should be empty")
	}
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && r == 'm':
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
