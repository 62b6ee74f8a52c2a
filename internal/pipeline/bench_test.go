package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/plateplan/internal/source"
	"github.com/theirongolddev/plateplan/internal/store"
)

const benchPlanTOML = `name = "Bench %d"

[concept]
seats = 80
square_feet = 2400
average_check = 32

[revenue]
food_sales = %d
beverage_sales = 150000

[cogs]
food = 0.28
beverage = 0.22

[expenses]
rent = 60000
salary_full_time = 140000
payroll_tax_rate = 0.1

[startup]
kitchen_equipment = 120000

[funding]
owners_equity = 100000
`

// benchPlansDir writes n synthetic plan files, nested a level deep.
func benchPlansDir(b *testing.B, n int) string {
	b.Helper()
	dir := b.TempDir()
	for i := 0; i < n; i++ {
		sub := filepath.Join(dir, fmt.Sprintf("group-%d", i%8))
		if err := os.MkdirAll(sub, 0o750); err != nil {
			b.Fatal(err)
		}
		body := fmt.Sprintf(benchPlanTOML, i, 400000+i*1000)
		if err := os.WriteFile(filepath.Join(sub, fmt.Sprintf("plan-%03d.toml", i)), []byte(body), 0o600); err != nil {
			b.Fatal(err)
		}
	}
	return dir
}

func BenchmarkLoad(b *testing.B) {
	dir := benchPlansDir(b, 200)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result, err := Load(dir, nil)
		if err != nil {
			b.Fatal(err)
		}
		if result.ParsedFiles != 200 {
			b.Fatalf("ParsedFiles = %d, want 200", result.ParsedFiles)
		}
	}
}

func BenchmarkParseFile(b *testing.B) {
	dir := benchPlansDir(b, 1)
	files, err := source.ScanDir(dir)
	if err != nil || len(files) != 1 {
		b.Fatalf("ScanDir = %d files, %v", len(files), err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if result := source.ParseFile(files[0]); result.Err != nil {
			b.Fatal(result.Err)
		}
	}
}

func BenchmarkScanDir(b *testing.B) {
	dir := benchPlansDir(b, 200)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := source.ScanDir(dir); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLoadWithCache(b *testing.B) {
	dir := benchPlansDir(b, 200)

	cache, err := store.Open(filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	// Warm the cache so the loop measures the hit path.
	if _, err := LoadWithCache(dir, cache, nil); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cr, err := LoadWithCache(dir, cache, nil)
		if err != nil {
			b.Fatal(err)
		}
		if cr.CacheHits != 200 {
			b.Fatalf("CacheHits = %d, want 200", cr.CacheHits)
		}
	}
}
