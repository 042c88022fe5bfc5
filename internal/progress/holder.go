package progress

import "context"

// Holder owns the single application State. All mutation goes through
// Update so every change is persisted.
type Holder struct {
	state State
	store *Store
}

// NewHolder loads the persisted state from st and wraps it.
func NewHolder(ctx context.Context, st *Store) *Holder {
	return &Holder{state: st.Load(ctx), store: st}
}

// Snapshot returns a copy of the current state.
func (h *Holder) Snapshot() State {
	return h.state.Clone()
}

// Update applies fn to the state and persists the result.
func (h *Holder) Update(ctx context.Context, fn func(s *State)) {
	fn(&h.state)
	h.store.Save(ctx, h.state)
}

// Save persists the current state without changing it.
func (h *Holder) Save(ctx context.Context) bool {
	return h.store.Save(ctx, h.state)
}
