// Package history provides linear undo/redo over immutable snapshots.
package history

import (
	"sync"

	"github.com/bethropolis/grove/internal/logger"
)

// History tracks a present value with the values before it (past, oldest
// first) and the values undone from it (future, nearest first).
// Committing a new value discards the future.
type History[T any] struct {
	mutex   sync.Mutex
	present T
	past    []T
	future  []T
	limit   int // max len(past); 0 means unlimited
}

// Option configures a History.
type Option func(*options)

type options struct {
	limit int
}

// WithLimit caps the number of undo steps kept. The oldest entries are
// dropped first. Zero or negative means unlimited.
func WithLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.limit = n
		}
	}
}

// New creates a history whose present is initial.
func New[T any](initial T, opts ...Option) *History[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &History[T]{present: initial, limit: o.limit}
}

// Commit makes next the present, pushing the old present onto past and
// clearing any redo state.
func (h *History[T]) Commit(next T) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.past = append(h.past, h.present)
	if h.limit > 0 && len(h.past) > h.limit {
		h.past = h.past[len(h.past)-h.limit:]
	}
	h.present = next
	h.future = nil

	logger.Debugf("History: Committed. Past: %d", len(h.past))
}

// Sync replaces the present without recording an entry and without
// touching past or future.
func (h *History[T]) Sync(next T) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.present = next
	logger.Debugf("History: Synced present. Past: %d, Future: %d", len(h.past), len(h.future))
}

// Undo steps back one entry and returns the new present. It returns false
// and leaves the history unchanged when there is nothing to undo.
func (h *History[T]) Undo() (T, bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if len(h.past) == 0 {
		logger.Debugf("History: Nothing to undo.")
		var zero T
		return zero, false
	}

	last := len(h.past) - 1
	prev := h.past[last]
	h.past = h.past[:last]
	h.future = append([]T{h.present}, h.future...)
	h.present = prev

	logger.Debugf("History: Undo. Past: %d, Future: %d", len(h.past), len(h.future))
	return h.present, true
}

// Redo steps forward one entry and returns the new present. It returns
// false and leaves the history unchanged when there is nothing to redo.
func (h *History[T]) Redo() (T, bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if len(h.future) == 0 {
		logger.Debugf("History: Nothing to redo.")
		var zero T
		return zero, false
	}

	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, h.present)
	h.present = next

	logger.Debugf("History: Redo. Past: %d, Future: %d", len(h.past), len(h.future))
	return h.present, true
}

// Reset clears past and future and makes value the present.
func (h *History[T]) Reset(value T) T {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.past = nil
	h.future = nil
	h.present = value
	logger.Debugf("History: Reset.")
	return value
}

// Present returns the current value.
func (h *History[T]) Present() T {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.present
}

// Past returns a copy of the undo entries, oldest first.
func (h *History[T]) Past() []T {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return append([]T(nil), h.past...)
}

// Future returns a copy of the redo entries, nearest first.
func (h *History[T]) Future() []T {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return append([]T(nil), h.future...)
}

// CanUndo reports whether Undo would change the present.
func (h *History[T]) CanUndo() bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.past) > 0
}

// CanRedo reports whether Redo would change the present.
func (h *History[T]) CanRedo() bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.future) > 0
}

// Len returns the number of undo and redo entries.
func (h *History[T]) Len() (past, future int) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.past), len(h.future)
}
