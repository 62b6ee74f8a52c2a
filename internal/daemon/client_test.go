package daemon

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestClient_StatusAndDerive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bistro.toml")
	if err := os.WriteFile(path, []byte(planTOML), 0o600); err != nil {
		t.Fatal(err)
	}
	s := newTestService(t, path)
	s.pollOnce()

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	c := NewClient(srv.URL)
	ctx := context.Background()

	st, err := c.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Summary.TotalRevenue != 650000 || st.Market != "national" {
		t.Errorf("status = revenue %v market %s", st.Summary.TotalRevenue, st.Market)
	}

	resp, err := c.Derive(ctx, []byte(`{"revenue": {"food_sales": 1000}, "cogs": {"food": 0.3}}`), "", "")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if resp.Metrics.TotalCogs != 300 {
		t.Errorf("TotalCogs = %v, want 300", resp.Metrics.TotalCogs)
	}

	sets, err := c.Benchmarks(ctx)
	if err != nil || len(sets) == 0 {
		t.Fatalf("Benchmarks = %d sets, err %v", len(sets), err)
	}
}

func TestClient_APIErrors(t *testing.T) {
	srv := httptest.NewServer(newTestService(t, "unused.toml").Handler())
	defer srv.Close()
	c := NewClient(srv.URL)

	_, err := c.Derive(context.Background(), []byte(`{"cogs": {"food": 28}}`), "", "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != 422 || len(apiErr.Response.Fields) != 1 {
		t.Errorf("apiErr = %d %+v", apiErr.StatusCode, apiErr.Response)
	}

	_, err = c.Derive(context.Background(), []byte(`{}`), "atlantis", "")
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
		t.Errorf("unknown market err = %v, want HTTP 400", err)
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(nil)
	addr := srv.Listener.Addr().String()
	srv.Close()

	if _, err := NewClient(addr).Status(context.Background()); !errors.Is(err, ErrUnreachable) {
		t.Fatalf("err = %v, want ErrUnreachable", err)
	}
}
