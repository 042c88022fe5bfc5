package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("store: key not found")

// KV is a string-keyed, string-valued persistent slot store.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

const kvTable = "kv"

// kvRepo implements KV on the kv table.
type kvRepo struct {
	drv *entsql.Driver
}

func (r *kvRepo) Get(ctx context.Context, key string) (string, error) {
	b := builder()
	query, args := b.Select("payload").
		From(b.Table(kvTable)).
		Where(entsql.EQ("slot", key)).
		Query()

	rows, err := queryRows(ctx, r.drv, query, args)
	if err != nil {
		return "", fmt.Errorf("query slot %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", fmt.Errorf("query slot %q: %w", key, err)
		}
		return "", ErrNotFound
	}
	var payload string
	if err := rows.Scan(&payload); err != nil {
		return "", fmt.Errorf("scan slot %q: %w", key, err)
	}
	return payload, nil
}

func (r *kvRepo) Set(ctx context.Context, key, value string) error {
	query, args := builder().Insert(kvTable).
		Columns("slot", "payload", "updated_at").
		Values(key, value, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("slot"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("write slot %q: %w", key, err)
	}
	return nil
}

func (r *kvRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().Delete(kvTable).
		Where(entsql.EQ("slot", key)).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete slot %q: %w", key, err)
	}
	return nil
}
