package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/plateplan/internal/model"
)

var (
	// ErrNotFound is returned when no draft matches an ID.
	ErrNotFound = errors.New("draft not found")
	// ErrAmbiguous is returned when an ID prefix matches several drafts.
	ErrAmbiguous = errors.New("draft id prefix is ambiguous")
)

// Draft is a saved, named plan.
type Draft struct {
	ID        string
	Name      string
	Market    string
	Plan      model.Plan
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaveDraft inserts or updates a draft. A draft without an ID gets a new
// UUID. The stored draft is returned with its timestamps set.
func (s *Store) SaveDraft(d Draft) (Draft, error) {
	now := time.Now().UTC().Truncate(time.Second)
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Name == "" {
		d.Name = d.Plan.Name
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	data, err := json.Marshal(d.Plan)
	if err != nil {
		return d, fmt.Errorf("encoding plan: %w", err)
	}

	_, err = s.db.Exec(`INSERT INTO drafts (draft_id, name, market, plan_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(draft_id) DO UPDATE SET
			name = excluded.name,
			market = excluded.market,
			plan_json = excluded.plan_json,
			updated_at = excluded.updated_at`,
		d.ID, d.Name, d.Market, string(data),
		d.CreatedAt.Format(time.RFC3339), d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return d, fmt.Errorf("saving draft: %w", err)
	}
	return d, nil
}

// GetDraft returns the draft with the given ID or unique ID prefix.
func (s *Store) GetDraft(idOrPrefix string) (Draft, error) {
	if idOrPrefix == "" {
		return Draft{}, ErrNotFound
	}

	rows, err := s.db.Query(`SELECT draft_id, name, market, plan_json, created_at, updated_at
		FROM drafts WHERE draft_id = ? OR draft_id LIKE ? || '%' LIMIT 2`, idOrPrefix, idOrPrefix)
	if err != nil {
		return Draft{}, err
	}
	defer func() { _ = rows.Close() }()

	drafts, err := scanDrafts(rows)
	if err != nil {
		return Draft{}, err
	}

	switch len(drafts) {
	case 0:
		return Draft{}, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	case 1:
		return drafts[0], nil
	}
	for _, d := range drafts {
		if d.ID == idOrPrefix {
			return d, nil
		}
	}
	return Draft{}, fmt.Errorf("%w: %s", ErrAmbiguous, idOrPrefix)
}

// ListDrafts returns every draft, most recently updated first.
func (s *Store) ListDrafts() ([]Draft, error) {
	rows, err := s.db.Query(`SELECT draft_id, name, market, plan_json, created_at, updated_at
		FROM drafts ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanDrafts(rows)
}

// DeleteDraft removes a draft by full ID.
func (s *Store) DeleteDraft(id string) error {
	res, err := s.db.Exec("DELETE FROM drafts WHERE draft_id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func scanDrafts(rows *sql.Rows) ([]Draft, error) {
	var drafts []Draft
	for rows.Next() {
		var d Draft
		var data, created, updated string
		if err := rows.Scan(&d.ID, &d.Name, &d.Market, &data, &created, &updated); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(data), &d.Plan); err != nil {
			return nil, fmt.Errorf("decoding draft %s: %w", d.ID, err)
		}
		d.CreatedAt, _ = time.Parse(time.RFC3339, created)
		d.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}
