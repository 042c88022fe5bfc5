package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const eventsTable = "engagement_events"

// EngagementEvent is one recorded learner action.
type EngagementEvent struct {
	ID        int64
	SessionID string
	Action    string
	Details   map[string]any
	CreatedAt time.Time
}

// EventRepo provides append and query access to engagement events.
type EventRepo interface {
	// AppendEngagement records a learner action.
	AppendEngagement(ctx context.Context, ev EngagementEvent) error

	// RecentEngagement returns up to limit events, newest first.
	RecentEngagement(ctx context.Context, limit int) ([]EngagementEvent, error)

	// CountByAction returns the number of recorded events per action.
	CountByAction(ctx context.Context) (map[string]int, error)

	// DeleteEngagement removes every recorded event.
	DeleteEngagement(ctx context.Context) error
}

// eventRepo implements EventRepo on the engagement_events table.
type eventRepo struct {
	drv *entsql.Driver
}

func (r *eventRepo) AppendEngagement(ctx context.Context, ev EngagementEvent) error {
	details := ev.Details
	if details == nil {
		details = map[string]any{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal event details: %w", err)
	}
	created := ev.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	query, args := builder().Insert(eventsTable).
		Columns("session_id", "action", "details", "created_at").
		Values(ev.SessionID, ev.Action, string(raw), created.UnixMilli()).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("append engagement event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentEngagement(ctx context.Context, limit int) ([]EngagementEvent, error) {
	b := builder()
	sel := b.Select("id", "session_id", "action", "details", "created_at").
		From(b.Table(eventsTable)).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := queryRows(ctx, r.drv, query, args)
	if err != nil {
		return nil, fmt.Errorf("query engagement events: %w", err)
	}
	defer rows.Close()

	var out []EngagementEvent
	for rows.Next() {
		var (
			ev      EngagementEvent
			details string
			created int64
		)
		if err := rows.Scan(&ev.ID, &ev.SessionID, &ev.Action, &details, &created); err != nil {
			return nil, fmt.Errorf("scan engagement event: %w", err)
		}
		if err := json.Unmarshal([]byte(details), &ev.Details); err != nil {
			return nil, fmt.Errorf("decode details of event %d: %w", ev.ID, err)
		}
		ev.CreatedAt = time.UnixMilli(created)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate engagement events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) CountByAction(ctx context.Context) (map[string]int, error) {
	b := builder()
	query, args := b.Select("action", entsql.Count("*")).
		From(b.Table(eventsTable)).
		GroupBy("action").
		Query()

	rows, err := queryRows(ctx, r.drv, query, args)
	if err != nil {
		return nil, fmt.Errorf("count engagement events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			action string
			n      int
		)
		if err := rows.Scan(&action, &n); err != nil {
			return nil, fmt.Errorf("scan event count: %w", err)
		}
		counts[action] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event counts: %w", err)
	}
	return counts, nil
}

func (r *eventRepo) DeleteEngagement(ctx context.Context) error {
	query, args := builder().Delete(eventsTable).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete engagement events: %w", err)
	}
	return nil
}
