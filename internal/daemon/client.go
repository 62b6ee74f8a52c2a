package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/theirongolddev/plateplan/internal/config"
)

const (
	clientTimeout = 5 * time.Second
	maxReplySize  = 1 << 20 // 1 MB
)

// ErrUnreachable wraps transport failures talking to a daemon.
var ErrUnreachable = errors.New("daemon: unreachable")

// APIError is a non-2xx reply from the daemon.
type APIError struct {
	StatusCode int
	Response   ErrorResponse
}

func (e *APIError) Error() string {
	if len(e.Response.Fields) > 0 {
		parts := make([]string, len(e.Response.Fields))
		for i, fe := range e.Response.Fields {
			parts[i] = fe.String()
		}
		return fmt.Sprintf("daemon: HTTP %d: %s", e.StatusCode, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("daemon: HTTP %d: %s", e.StatusCode, e.Response.Error)
}

// Client talks to a running daemon's HTTP API.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for addr, e.g. "127.0.0.1:8787".
func NewClient(addr string) *Client {
	base := strings.TrimRight(addr, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &Client{base: base, http: &http.Client{Timeout: clientTimeout}}
}

// Status fetches GET /v1/status.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var st Status
	err := c.do(ctx, http.MethodGet, "/v1/status", nil, &st)
	return st, err
}

// Benchmarks fetches GET /v1/benchmarks.
func (c *Client) Benchmarks(ctx context.Context) ([]config.Benchmarks, error) {
	var sets []config.Benchmarks
	err := c.do(ctx, http.MethodGet, "/v1/benchmarks", nil, &sets)
	return sets, err
}

// Derive posts a JSON plan body to /v1/derive. Empty market or policy use
// the daemon's defaults.
func (c *Client) Derive(ctx context.Context, plan []byte, market, policy string) (DeriveResponse, error) {
	q := url.Values{}
	if market != "" {
		q.Set("market", market)
	}
	if policy != "" {
		q.Set("policy", policy)
	}
	path := "/v1/derive"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp DeriveResponse
	err := c.do(ctx, http.MethodPost, path, plan, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("daemon: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	if err != nil {
		return fmt.Errorf("daemon: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(data, &apiErr.Response) != nil || apiErr.Response.Error == "" {
			apiErr.Response.Error = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("daemon: parsing %s: %w", path, err)
	}
	return nil
}
