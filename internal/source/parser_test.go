package source

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/plateplan/internal/model"
)

// writePlan creates a temp plan file and returns a DiscoveredFile for it.
func writePlan(t *testing.T, name, content string) DiscoveredFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	df, ok := Discover(path)
	if !ok {
		t.Fatalf("Discover(%q) = !ok", path)
	}
	return df
}

func TestParseFile_TOMLMixedValues(t *testing.T) {
	df := writePlan(t, "bistro.toml", `
[revenue]
food_sales = 500000
beverage_sales = "150000"
catering_sales = 25000.0
other_revenue = ""

[cogs]
food = 0.28
`)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}

	if result.Plan.Name != "bistro" {
		t.Errorf("Name = %q, want bistro (file stem)", result.Plan.Name)
	}
	if got, ok := result.Plan.Revenue.FoodSales.Value().(int64); !ok || got != 500000 {
		t.Errorf("FoodSales = %#v, want int64 500000", result.Plan.Revenue.FoodSales.Value())
	}
	if got := result.Plan.Revenue.BeverageSales.Value(); got != "150000" {
		t.Errorf("BeverageSales = %#v, want string 150000", got)
	}
	if got := result.Plan.Revenue.OtherRevenue.Value(); got != "" {
		t.Errorf("OtherRevenue = %#v, want empty string", got)
	}
	if got := result.Plan.Revenue.MerchandiseSales.Value(); got != nil {
		t.Errorf("MerchandiseSales = %#v, want nil for absent key", got)
	}
}

func TestParseFile_JSONKeepsNumbers(t *testing.T) {
	df := writePlan(t, "cafe.json", `{
  "name": "Corner Cafe",
  "revenue": {"food_sales": 120000.50, "beverage_sales": "abc"},
  "funding": {"bank_loans": null}
}`)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.Plan.Name != "Corner Cafe" {
		t.Errorf("Name = %q, want Corner Cafe", result.Plan.Name)
	}
	n, ok := result.Plan.Revenue.FoodSales.Value().(json.Number)
	if !ok || n.String() != "120000.50" {
		t.Errorf("FoodSales = %#v, want json.Number 120000.50", result.Plan.Revenue.FoodSales.Value())
	}
	if got := result.Plan.Revenue.BeverageSales.Value(); got != "abc" {
		t.Errorf("BeverageSales = %#v, want abc", got)
	}
	if got := result.Plan.Funding.BankLoans.Value(); got != nil {
		t.Errorf("BankLoans = %#v, want nil", got)
	}
}

func TestParseFile_ReportsUnknownTOMLKeys(t *testing.T) {
	df := writePlan(t, "typo.toml", `
[revenue]
food_sale = 1000
`)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Unknown) != 1 || result.Unknown[0] != "revenue.food_sale" {
		t.Errorf("Unknown = %v, want [revenue.food_sale]", result.Unknown)
	}
}

func TestParseFile_MalformedFile(t *testing.T) {
	df := writePlan(t, "broken.toml", "[revenue\nfood_sales = 1")

	result := ParseFile(df)
	if result.Err == nil {
		t.Fatal("expected decode error for malformed TOML")
	}
	if !strings.Contains(result.Err.Error(), "broken.toml") {
		t.Errorf("error %q should name the file", result.Err)
	}
}

func TestDecode_UnsupportedFormat(t *testing.T) {
	if _, err := Decode(strings.NewReader("x"), Format("yaml")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWritePlan_RoundTripsThroughParse(t *testing.T) {
	for _, name := range []string{"plan.toml", "plan.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			p := model.Plan{
				Name:    "Harbor Grill",
				Revenue: model.RevenueInputs{FoodSales: 500000},
				Cogs:    model.CogsRates{Food: 0.28},
			}
			if err := WritePlan(path, p); err != nil {
				t.Fatalf("WritePlan: %v", err)
			}

			df, _ := Discover(path)
			result := ParseFile(df)
			if result.Err != nil {
				t.Fatalf("ParseFile: %v", result.Err)
			}
			if result.Plan.Name != "Harbor Grill" {
				t.Errorf("Name = %q, want Harbor Grill", result.Plan.Name)
			}
			if result.Plan.Revenue.FoodSales.Value() == nil {
				t.Error("FoodSales missing after round trip")
			}
		})
	}
}

func TestWritePlan_RejectsUnknownExtension(t *testing.T) {
	if err := WritePlan(filepath.Join(t.TempDir(), "plan.yaml"), model.Plan{}); err == nil {
		t.Fatal("expected error for .yaml")
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.toml", "b.json", "notes.txt", ".git/c.toml", "sub/d.TOML"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}

	var names []string
	for _, f := range files {
		names = append(names, f.Name+"."+string(f.Format))
	}
	got := strings.Join(names, ",")
	if got != "a.toml,b.json,d.toml" {
		t.Errorf("ScanDir names = %s, want a.toml,b.json,d.toml", got)
	}
}

func TestScanDir_MissingDir(t *testing.T) {
	files, err := ScanDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil || files != nil {
		t.Fatalf("ScanDir(missing) = %v, %v; want nil, nil", files, err)
	}
}
