// Package schedule provides single-threaded, cancellable delayed tasks keyed
// by purpose. Scheduling a task for a purpose that already has one pending
// supersedes the earlier task: it will never run.
//
// The scheduler does not own a clock. A driver (the TUI event loop, or a
// test) drains newly armed tasks, waits out their delay, and hands them back
// to Fire on the same goroutine that mutates application state.
package schedule

import "time"

// Purpose identifies what a task is for. At most one task per purpose is
// pending at any time.
type Purpose string

// Task is a handle to an armed callback.
type Task struct {
	Purpose Purpose
	Delay   time.Duration
	gen     uint64
}

type entry struct {
	gen uint64
	fn  func()
}

// Scheduler tracks pending tasks. It is not safe for concurrent use.
type Scheduler struct {
	gen     uint64
	pending map[Purpose]entry
	armed   []Task
}

// New creates an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{pending: make(map[Purpose]entry)}
}

// After arms fn to run after delay, replacing any pending task for purpose.
func (s *Scheduler) After(purpose Purpose, delay time.Duration, fn func()) Task {
	s.gen++
	t := Task{Purpose: purpose, Delay: delay, gen: s.gen}
	s.pending[purpose] = entry{gen: s.gen, fn: fn}
	s.armed = append(s.armed, t)
	return t
}

// Cancel drops the pending task for purpose, if any.
func (s *Scheduler) Cancel(purpose Purpose) {
	delete(s.pending, purpose)
}

// Pending reports whether a task for purpose is waiting to fire.
func (s *Scheduler) Pending(purpose Purpose) bool {
	_, ok := s.pending[purpose]
	return ok
}

// Drain returns the tasks armed since the last call. The driver must deliver
// each one back to Fire once its delay has elapsed.
func (s *Scheduler) Drain() []Task {
	out := s.armed
	s.armed = nil
	return out
}

// Fire runs the callback for t if t is still the current task for its
// purpose. Superseded and cancelled tasks are ignored. The entry is removed
// before the callback runs, so the callback may re-arm the same purpose.
func (s *Scheduler) Fire(t Task) bool {
	e, ok := s.pending[t.Purpose]
	if !ok || e.gen != t.gen {
		return false
	}
	delete(s.pending, t.Purpose)
	e.fn()
	return true
}
