package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/covset/internal/tuple"
)

// ErrPlanNotFound is returned when a plan id has no record.
var ErrPlanNotFound = errors.New("plan not found")

// PlanMeta describes a saved plan.
type PlanMeta struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Arity     int
	RowCount  int
}

// Plan is a saved plan with its tuples, in saved order.
type Plan struct {
	PlanMeta
	Tuples []tuple.Tuple
}

// Source returns the plan's tuples as a restartable Source, so a
// reloaded plan can feed an engine or filter like any other producer.
func (p *Plan) Source() tuple.Source {
	return tuple.Fixed(p.Tuples)
}

// SavePlan drains src and persists it under a fresh plan id, which is
// returned. The write is transactional: either the whole plan lands
// or none of it does.
func (s *Store) SavePlan(ctx context.Context, name string, src tuple.Source) (string, error) {
	tuples, err := tuple.Collect(src)
	if err != nil {
		return "", fmt.Errorf("save plan: draining source: %w", err)
	}

	arity := 0
	if len(tuples) > 0 {
		arity = len(tuples[0])
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("save plan: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO plans (id, name, created_at, arity, row_count)
		VALUES (?, ?, ?, ?, ?)
	`, id, name, createdAt, arity, len(tuples))
	if err != nil {
		return "", fmt.Errorf("save plan: %w", err)
	}

	insert, err := tx.PrepareContext(ctx, `
		INSERT INTO plan_rows (plan_id, idx, row_json) VALUES (?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("save plan: %w", err)
	}
	defer insert.Close()

	for i, t := range tuples {
		raw, err := marshalRow(t)
		if err != nil {
			return "", fmt.Errorf("save plan: row %d: %w", i, err)
		}
		if _, err := insert.ExecContext(ctx, id, i, string(raw)); err != nil {
			return "", fmt.Errorf("save plan: row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save plan: %w", err)
	}
	return id, nil
}

// LoadPlan reads a plan and its tuples. Returns ErrPlanNotFound for
// an unknown id.
func (s *Store) LoadPlan(ctx context.Context, id string) (*Plan, error) {
	meta, err := s.planMeta(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT row_json FROM plan_rows WHERE plan_id = ? ORDER BY idx
	`, id)
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	defer rows.Close()

	plan := &Plan{PlanMeta: *meta}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("load plan: %w", err)
		}
		t, err := unmarshalRow([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("load plan: %w", err)
		}
		plan.Tuples = append(plan.Tuples, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	return plan, nil
}

// ListPlans returns metadata for every saved plan, newest first.
func (s *Store) ListPlans(ctx context.Context) ([]PlanMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at, arity, row_count
		FROM plans ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var out []PlanMeta
	for rows.Next() {
		meta, err := scanMeta(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list plans: %w", err)
		}
		out = append(out, *meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return out, nil
}

func (s *Store) planMeta(ctx context.Context, id string) (*PlanMeta, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, arity, row_count
		FROM plans WHERE id = ?
	`, id)
	meta, err := scanMeta(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load plan %s: %w", id, ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	return meta, nil
}

func scanMeta(scan func(...any) error) (*PlanMeta, error) {
	var meta PlanMeta
	var createdAt string
	if err := scan(&meta.ID, &meta.Name, &createdAt, &meta.Arity, &meta.RowCount); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	meta.CreatedAt = ts
	return &meta, nil
}
