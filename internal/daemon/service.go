// Package daemon provides the long-running plan watcher and its HTTP API.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/plateplan/internal/config"
	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/pipeline"
	"github.com/theirongolddev/plateplan/internal/source"
)

// maxBodyBytes caps POST /v1/derive payloads.
const maxBodyBytes = 1 << 20

// Config controls the daemon runtime behavior.
type Config struct {
	PlanPath     string
	Market       string
	Policy       pipeline.RatePolicy
	Settings     config.Config // benchmark overrides for /v1/benchmarks and ?market=
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	Logger       logrus.FieldLogger
}

// Snapshot is a compact plan state for status/event payloads.
type Snapshot struct {
	At               time.Time                    `json:"at"`
	Plan             string                       `json:"plan"`
	TotalRevenue     float64                      `json:"total_revenue"`
	GrossProfit      float64                      `json:"gross_profit"`
	GrossMarginPct   float64                      `json:"gross_margin_pct"`
	NetIncome        float64                      `json:"net_income"`
	NetMarginPct     float64                      `json:"net_margin_pct"`
	FundingGap       float64                      `json:"funding_gap"`
	MonthlyBurnRate  float64                      `json:"monthly_burn_rate"`
	BreakEvenRevenue *float64                     `json:"break_even_revenue"`
	RunwayMonths     *float64                     `json:"runway_months"`
	Health           map[string]model.HealthLabel `json:"health,omitempty"`
}

// Delta captures snapshot changes between two derivations.
type Delta struct {
	TotalRevenue   float64  `json:"total_revenue"`
	NetIncome      float64  `json:"net_income"`
	GrossMarginPct float64  `json:"gross_margin_pct"`
	FundingGap     float64  `json:"funding_gap"`
	HealthChanges  []string `json:"health_changes,omitempty"`
}

func (d Delta) isZero() bool {
	return d.TotalRevenue == 0 &&
		d.NetIncome == 0 &&
		d.GrossMarginPct == 0 &&
		d.FundingGap == 0 &&
		len(d.HealthChanges) == 0
}

// Event is emitted whenever the derived plan changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time             `json:"started_at"`
	LastPollAt      time.Time             `json:"last_poll_at"`
	LastDeriveAt    time.Time             `json:"last_derive_at"`
	PollIntervalSec int                   `json:"poll_interval_sec"`
	PollCount       int64                 `json:"poll_count"`
	DeriveCount     int64                 `json:"derive_count"`
	PlanPath        string                `json:"plan_path"`
	Market          string                `json:"market"`
	Policy          string                `json:"policy"`
	Summary         Snapshot              `json:"summary"`
	Warnings        []pipeline.FieldError `json:"warnings,omitempty"`
	LastError       string                `json:"last_error,omitempty"`
	EventCount      int                   `json:"event_count"`
	SubscriberCount int                   `json:"subscriber_count"`
}

// DeriveResponse is returned by POST /v1/derive.
type DeriveResponse struct {
	Market   string                `json:"market"`
	Plan     model.Plan            `json:"plan"`
	Metrics  model.Metrics         `json:"metrics"`
	Warnings []pipeline.FieldError `json:"warnings,omitempty"`
}

// ErrorResponse is the JSON body of every non-2xx API reply.
type ErrorResponse struct {
	Error  string                `json:"error"`
	Fields []pipeline.FieldError `json:"fields,omitempty"`
}

type fileStamp struct {
	mtimeNs int64
	size    int64
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg        Config
	benchmarks config.Benchmarks
	log        logrus.FieldLogger

	mu           sync.RWMutex
	startedAt    time.Time
	lastPollAt   time.Time
	lastDeriveAt time.Time
	pollCount    int64
	deriveCount  int64
	lastError    string
	stamp        fileStamp
	hasSnapshot  bool
	snapshot     Snapshot
	warnings     []pipeline.FieldError
	nextEventID  int64
	events       []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service. The market must resolve against the
// configured benchmark sets.
func New(cfg Config) (*Service, error) {
	if cfg.Interval < time.Second {
		cfg.Interval = 5 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.Policy == "" {
		cfg.Policy = pipeline.PolicyReject
	}
	if cfg.Logger == nil {
		cfg.Logger = config.NewLogger("warn", os.Stderr)
	}

	b, err := config.ResolveBenchmarks(cfg.Settings, cfg.Market)
	if err != nil {
		return nil, err
	}
	cfg.Market = b.Market

	return &Service{
		cfg:        cfg,
		benchmarks: b,
		log:        cfg.Logger.WithField("module", "daemon"),
		startedAt:  time.Now(),
		subs:       make(map[int]chan Event),
	}, nil
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	mux.HandleFunc("/v1/derive", s.handleDerive)
	mux.HandleFunc("/v1/benchmarks", s.handleBenchmarks)
	return mux
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

// pollOnce re-derives the plan when its file changed since the last poll.
func (s *Service) pollOnce() {
	now := time.Now()

	s.mu.Lock()
	s.pollCount++
	s.lastPollAt = now
	s.mu.Unlock()

	info, err := os.Stat(s.cfg.PlanPath)
	if err != nil {
		s.mu.Lock()
		s.stamp = fileStamp{}
		s.mu.Unlock()
		s.recordError(fmt.Errorf("stat plan: %w", err))
		return
	}
	stamp := fileStamp{mtimeNs: info.ModTime().UnixNano(), size: info.Size()}

	// A failed derivation also records the stamp so a broken file is
	// reported once rather than on every tick.
	s.mu.Lock()
	unchanged := s.stamp == stamp
	s.stamp = stamp
	s.mu.Unlock()
	if unchanged {
		return
	}

	ev, err := s.derivePlanFile()
	if err != nil {
		s.recordError(err)
		return
	}

	snap := snapshotFromMetrics(ev.Plan.Name, ev.Metrics, now)

	var (
		event   Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.warnings = ev.Warnings
	s.lastDeriveAt = now
	s.deriveCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		event = Event{ID: s.nextEventID, Type: "snapshot", Timestamp: now, Snapshot: snap}
		publish = true
	} else if delta := diffSnapshots(prev, snap); !delta.isZero() {
		s.nextEventID++
		event = Event{ID: s.nextEventID, Type: "plan_delta", Timestamp: now, Snapshot: snap, Delta: delta}
		publish = true
	}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"plan":       snap.Plan,
		"net_income": snap.NetIncome,
		"warnings":   len(ev.Warnings),
	}).Debug("plan re-derived")

	if publish {
		s.publishEvent(event)
	}
}

func (s *Service) derivePlanFile() (pipeline.Evaluation, error) {
	df, ok := source.Discover(s.cfg.PlanPath)
	if !ok {
		return pipeline.Evaluation{}, fmt.Errorf("unsupported plan file %s", s.cfg.PlanPath)
	}
	pr := source.ParseFile(df)
	if pr.Err != nil {
		return pipeline.Evaluation{}, pr.Err
	}
	return pipeline.Evaluate(pr.Plan, s.benchmarks, s.cfg.Policy)
}

// recordError stores the latest poll error and logs it only when it differs
// from the previous one, so a missing file is not logged on every tick.
func (s *Service) recordError(err error) {
	msg := err.Error()
	s.mu.Lock()
	repeated := s.lastError == msg
	s.lastError = msg
	s.mu.Unlock()
	if repeated {
		return
	}
	config.LogError(s.log, "daemon", "pollOnce", s.cfg.PlanPath, err)
}

func snapshotFromMetrics(name string, m model.Metrics, at time.Time) Snapshot {
	health := make(map[string]model.HealthLabel, len(m.Health))
	for _, c := range m.Health {
		health[c.Metric] = c.Label
	}
	return Snapshot{
		At:               at,
		Plan:             name,
		TotalRevenue:     m.TotalRevenue,
		GrossProfit:      m.GrossProfit,
		GrossMarginPct:   m.GrossMarginPct,
		NetIncome:        m.NetIncome,
		NetMarginPct:     m.NetMarginPct,
		FundingGap:       m.FundingGap,
		MonthlyBurnRate:  m.MonthlyBurnRate,
		BreakEvenRevenue: m.BreakEvenRevenue,
		RunwayMonths:     m.RunwayMonths,
		Health:           health,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	d := Delta{
		TotalRevenue:   curr.TotalRevenue - prev.TotalRevenue,
		NetIncome:      curr.NetIncome - prev.NetIncome,
		GrossMarginPct: curr.GrossMarginPct - prev.GrossMarginPct,
		FundingGap:     curr.FundingGap - prev.FundingGap,
	}
	for _, c := range model.HealthMetrics {
		if prev.Health[c] != curr.Health[c] {
			d.HealthChanges = append(d.HealthChanges, fmt.Sprintf("%s: %s -> %s", c, prev.Health[c], curr.Health[c]))
		}
	}
	return d
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		LastDeriveAt:    s.lastDeriveAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DeriveCount:     s.deriveCount,
		PlanPath:        s.cfg.PlanPath,
		Market:          s.cfg.Market,
		Policy:          string(s.cfg.Policy),
		Summary:         s.snapshot,
		Warnings:        s.warnings,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

// handleDerive evaluates a JSON plan body without touching daemon state.
// ?market= and ?policy= override the daemon defaults for one request.
func (s *Service) handleDerive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "use POST"})
		return
	}

	b := s.benchmarks
	if market := r.URL.Query().Get("market"); market != "" {
		resolved, err := config.ResolveBenchmarks(s.cfg.Settings, market)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		b = resolved
	}

	policy := s.cfg.Policy
	if p := r.URL.Query().Get("policy"); p != "" {
		parsed, err := pipeline.ParsePolicy(p)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		policy = parsed
	}

	raw, err := source.Decode(io.LimitReader(r.Body, maxBodyBytes), source.FormatJSON)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "decoding plan: " + err.Error()})
		return
	}

	ev, err := pipeline.Evaluate(raw, b, policy)
	if err != nil {
		var ie *pipeline.InputError
		if errors.As(err, &ie) {
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: pipeline.ErrInvalidInput.Error(), Fields: ie.Fields})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, DeriveResponse{
		Market:   b.Market,
		Plan:     ev.Plan,
		Metrics:  ev.Metrics,
		Warnings: ev.Warnings,
	})
}

func (s *Service) handleBenchmarks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "use GET"})
		return
	}

	markets := config.Markets(s.cfg.Settings)
	out := make([]config.Benchmarks, 0, len(markets))
	for _, m := range markets {
		b, err := config.ResolveBenchmarks(s.cfg.Settings, m)
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	writeSSE(w, Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w io.Writer, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
