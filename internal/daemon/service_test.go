package daemon

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/theirongolddev/plateplan/internal/config"
	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/pipeline"
)

const planTOML = `name = "Corner Bistro"

[revenue]
food_sales = 500000
beverage_sales = 150000

[cogs]
food = 0.28
beverage = 0.22

[expenses]
rent = 60000
salary_full_time = 140000
payroll_tax_rate = 0.1

[funding]
owners_equity = 100000
`

func quietLogger() logrus.FieldLogger {
	return config.NewLogger("error", io.Discard)
}

func newTestService(t *testing.T, planPath string) *Service {
	t.Helper()
	s, err := New(Config{
		PlanPath:     planPath,
		Market:       "national",
		Settings:     config.DefaultConfig(),
		Interval:     10 * time.Second,
		EventsBuffer: 10,
		Logger:       quietLogger(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNew_UnknownMarket(t *testing.T) {
	_, err := New(Config{Market: "atlantis", Settings: config.DefaultConfig(), Logger: quietLogger()})
	if err == nil {
		t.Fatal("New with unknown market should fail")
	}
}

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		TotalRevenue:   650000,
		NetIncome:      100000,
		GrossMarginPct: 73.0,
		FundingGap:     25000,
		Health:         map[string]model.HealthLabel{model.MetricFoodCost: model.HealthGood},
	}
	curr := Snapshot{
		TotalRevenue:   685000,
		NetIncome:      118800,
		GrossMarginPct: 73.4,
		FundingGap:     25000,
		Health:         map[string]model.HealthLabel{model.MetricFoodCost: model.HealthExcellent},
	}

	delta := diffSnapshots(prev, curr)
	if delta.TotalRevenue != 35000 {
		t.Fatalf("TotalRevenue delta = %v, want 35000", delta.TotalRevenue)
	}
	if delta.NetIncome != 18800 {
		t.Fatalf("NetIncome delta = %v, want 18800", delta.NetIncome)
	}
	if math.Abs(delta.GrossMarginPct-0.4) > 1e-9 {
		t.Fatalf("GrossMarginPct delta = %v, want 0.4", delta.GrossMarginPct)
	}
	if delta.FundingGap != 0 {
		t.Fatalf("FundingGap delta = %v, want 0", delta.FundingGap)
	}
	if len(delta.HealthChanges) != 1 || !strings.HasPrefix(delta.HealthChanges[0], "food_cost: good -> excellent") {
		t.Fatalf("HealthChanges = %v", delta.HealthChanges)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
	if !diffSnapshots(curr, curr).isZero() {
		t.Fatal("identical snapshots should diff to zero")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s, err := New(Config{
		Market:       "national",
		Settings:     config.DefaultConfig(),
		EventsBuffer: 2,
		Logger:       quietLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestPollOnce_RederivesOnlyOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bistro.toml")
	if err := os.WriteFile(path, []byte(planTOML), 0o600); err != nil {
		t.Fatal(err)
	}
	s := newTestService(t, path)

	s.pollOnce()
	st := s.snapshotStatus()
	if st.DeriveCount != 1 || st.EventCount != 1 || st.LastError != "" {
		t.Fatalf("after first poll: derives %d events %d err %q", st.DeriveCount, st.EventCount, st.LastError)
	}
	if st.Summary.Plan != "Corner Bistro" || st.Summary.TotalRevenue != 650000 {
		t.Fatalf("Summary = %+v", st.Summary)
	}

	s.pollOnce()
	if st := s.snapshotStatus(); st.DeriveCount != 1 || st.PollCount != 2 {
		t.Fatalf("unchanged file re-derived: derives %d polls %d", st.DeriveCount, st.PollCount)
	}

	updated := strings.Replace(planTOML, "food_sales = 500000", "food_sales = 535000", 1)
	if err := os.WriteFile(path, []byte(updated), 0o600); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	s.pollOnce()
	s.mu.RLock()
	events := append([]Event(nil), s.events...)
	s.mu.RUnlock()

	if len(events) != 2 || events[1].Type != "plan_delta" {
		t.Fatalf("events = %+v, want snapshot then plan_delta", events)
	}
	if events[1].Delta.TotalRevenue != 35000 {
		t.Errorf("revenue delta = %v, want 35000", events[1].Delta.TotalRevenue)
	}
}

func TestPollOnce_RecordsInvalidPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[cogs]\nfood = 28\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := newTestService(t, path)

	s.pollOnce()
	st := s.snapshotStatus()
	if !strings.Contains(st.LastError, "cogs.food") || st.EventCount != 0 {
		t.Fatalf("LastError = %q events = %d", st.LastError, st.EventCount)
	}
}

func TestPollOnce_LogsMissingFileOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bistro.toml")
	logger, hook := logtest.NewNullLogger()
	s, err := New(Config{
		PlanPath:     path,
		Market:       "national",
		Settings:     config.DefaultConfig(),
		EventsBuffer: 10,
		Logger:       logger,
	})
	if err != nil {
		t.Fatal(err)
	}

	errorEntries := func() int {
		n := 0
		for _, e := range hook.AllEntries() {
			if e.Level == logrus.ErrorLevel {
				n++
			}
		}
		return n
	}

	for range 3 {
		s.pollOnce()
	}
	if got := errorEntries(); got != 1 {
		t.Fatalf("error logs after 3 polls of a missing file = %d, want 1", got)
	}
	if st := s.snapshotStatus(); st.LastError == "" || st.PollCount != 3 {
		t.Fatalf("status = polls %d err %q", st.PollCount, st.LastError)
	}

	if err := os.WriteFile(path, []byte(planTOML), 0o600); err != nil {
		t.Fatal(err)
	}
	s.pollOnce()
	if st := s.snapshotStatus(); st.LastError != "" || st.DeriveCount != 1 {
		t.Fatalf("after recovery: derives %d err %q", st.DeriveCount, st.LastError)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	s.pollOnce()
	s.pollOnce()
	if got := errorEntries(); got != 2 {
		t.Errorf("error logs after the file vanished again = %d, want 2", got)
	}
}

func postDerive(t *testing.T, h http.Handler, query, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/derive"+query, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleDerive(t *testing.T) {
	h := newTestService(t, "unused.toml").Handler()

	rec := postDerive(t, h, "", `{"revenue": {"food_sales": "1000"}, "cogs": {"food": 0.3}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp DeriveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Metrics.TotalCogs != 300 || resp.Market != "national" {
		t.Errorf("resp = cogs %v market %s", resp.Metrics.TotalCogs, resp.Market)
	}
	if resp.Metrics.BreakEvenRevenue == nil || *resp.Metrics.BreakEvenRevenue != 0 {
		t.Errorf("BreakEvenRevenue = %v, want 0 with no expenses", resp.Metrics.BreakEvenRevenue)
	}
}

func TestHandleDerive_InvalidRates(t *testing.T) {
	h := newTestService(t, "unused.toml").Handler()
	body := `{"revenue": {"food_sales": 1000}, "cogs": {"food": 28}}`

	rec := postDerive(t, h, "", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatal(err)
	}
	if len(er.Fields) != 1 || er.Fields[0].Field != "cogs.food" {
		t.Errorf("Fields = %+v", er.Fields)
	}

	rec = postDerive(t, h, "?policy=clamp", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("clamp status = %d, want 200", rec.Code)
	}
	var resp DeriveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Warnings) != 1 || resp.Plan.Cogs.Food != 1 {
		t.Errorf("clamped resp = food %v warnings %v", resp.Plan.Cogs.Food, resp.Warnings)
	}
}

func TestHandleDerive_BadRequests(t *testing.T) {
	h := newTestService(t, "unused.toml").Handler()

	if rec := postDerive(t, h, "", "{not json"); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec.Code)
	}
	if rec := postDerive(t, h, "?market=atlantis", "{}"); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown market status = %d, want 400", rec.Code)
	}
	if rec := postDerive(t, h, "?policy=bend", "{}"); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown policy status = %d, want 400", rec.Code)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/derive", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rec.Code)
	}
}

func TestHandleBenchmarks(t *testing.T) {
	h := newTestService(t, "unused.toml").Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/benchmarks", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var sets []config.Benchmarks
	if err := json.Unmarshal(rec.Body.Bytes(), &sets); err != nil {
		t.Fatal(err)
	}
	if len(sets) != len(config.Markets(config.DefaultConfig())) {
		t.Errorf("got %d benchmark sets", len(sets))
	}
}

func TestHandleStatus(t *testing.T) {
	s := newTestService(t, filepath.Join(t.TempDir(), "missing.toml"))
	s.pollOnce()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))

	var st Status
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if st.PollCount != 1 || st.LastError == "" || st.Policy != string(pipeline.PolicyReject) {
		t.Errorf("status = polls %d err %q policy %s", st.PollCount, st.LastError, st.Policy)
	}
}
