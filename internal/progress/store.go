package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/phishcourse/internal/store"
)

// StorageKey is the fixed slot the state blob is written to.
const StorageKey = "phishing-training-progress"

// Store serializes State into a key-value slot.
type Store struct {
	kv     store.KV
	logger *slog.Logger
}

// NewStore creates a Store writing to kv.
func NewStore(kv store.KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// Save writes s under StorageKey. Failures are logged and reported to the
// caller only as a boolean; they are never fatal.
func (st *Store) Save(ctx context.Context, s State) bool {
	raw, err := json.Marshal(s)
	if err != nil {
		st.logger.WarnContext(ctx, "could not save progress", "error", err)
		return false
	}
	if err := st.kv.Set(ctx, StorageKey, string(raw)); err != nil {
		st.logger.WarnContext(ctx, "could not save progress", "error", err)
		return false
	}
	return true
}

// Load reads the persisted state. A missing or unreadable blob yields
// DefaultState. Each top-level field present in the blob replaces the
// default; absent or undecodable fields keep their default.
func (st *Store) Load(ctx context.Context) State {
	raw, err := st.kv.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			st.logger.WarnContext(ctx, "could not load saved progress", "error", err)
		}
		return DefaultState()
	}

	s, err := Decode([]byte(raw))
	if err != nil {
		st.logger.WarnContext(ctx, "could not load saved progress", "error", err)
		return DefaultState()
	}
	return s
}

// Clear removes the persisted blob.
func (st *Store) Clear(ctx context.Context) error {
	if err := st.kv.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

// Decode shallow-merges a JSON blob onto DefaultState and sanitizes the result.
func Decode(raw []byte) (State, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return DefaultState(), fmt.Errorf("parse progress: %w", err)
	}

	s := DefaultState()
	mergeField(fields, "currentSection", &s.CurrentSection)
	mergeField(fields, "completedModules", &s.CompletedModules)
	mergeField(fields, "moduleScores", &s.ModuleScores)
	mergeField(fields, "finalScore", &s.FinalScore)
	mergeField(fields, "userName", &s.UserName)

	return sanitize(s.Clone()), nil
}

// mergeField decodes fields[name] into dst, leaving dst untouched when the
// field is absent, null, or of the wrong type.
func mergeField[T any](fields map[string]json.RawMessage, name string, dst *T) {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	*dst = v
}
