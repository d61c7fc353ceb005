// Package history implements linear undo/redo over immutable table lists.
//
// A History is a stack of [layout.TableList] snapshots and a cursor. The
// snapshot under the cursor is always the list the editor renders. Pushing
// after an undo discards the redo branch; there is no branching history.
//
// By default the stack grows without bound. [WithLimit] turns it into a ring
// that drops the oldest snapshots once the limit is reached.
package history

import "github.com/matzehuels/tableplan/pkg/layout"

// Option configures a History.
type Option func(*History)

// WithLimit bounds the number of snapshots kept. The oldest snapshots are
// dropped first. n < 2 leaves the history unbounded.
func WithLimit(n int) Option {
	return func(h *History) {
		if n >= 2 {
			h.limit = n
		}
	}
}

// History is a snapshot stack with a cursor.
// It is not safe for concurrent use.
type History struct {
	stack []layout.TableList
	step  int
	limit int
}

// New seeds the history with the initial list at step 0.
func New(initial layout.TableList, opts ...Option) *History {
	h := &History{stack: []layout.TableList{initial}}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Push truncates every snapshot after the cursor, appends s and moves the
// cursor to it.
func (h *History) Push(s layout.TableList) {
	h.stack = append(h.stack[:h.step+1:h.step+1], s)
	if h.limit > 0 && len(h.stack) > h.limit {
		h.stack = h.stack[len(h.stack)-h.limit:]
	}
	h.step = len(h.stack) - 1
}

// Undo moves the cursor back one step and returns that snapshot.
// At step 0 it returns false and changes nothing.
func (h *History) Undo() (layout.TableList, bool) {
	if h.step == 0 {
		return layout.TableList{}, false
	}
	h.step--
	return h.stack[h.step], true
}

// Redo moves the cursor forward one step and returns that snapshot.
// At the newest snapshot it returns false and changes nothing.
func (h *History) Redo() (layout.TableList, bool) {
	if h.step >= len(h.stack)-1 {
		return layout.TableList{}, false
	}
	h.step++
	return h.stack[h.step], true
}

// Current returns the snapshot under the cursor.
func (h *History) Current() layout.TableList {
	return h.stack[h.step]
}

// Reset discards all snapshots and seeds the history with initial.
func (h *History) Reset(initial layout.TableList) {
	h.stack = []layout.TableList{initial}
	h.step = 0
}

// Step returns the cursor position.
func (h *History) Step() int { return h.step }

// Len returns the number of snapshots kept.
func (h *History) Len() int { return len(h.stack) }

// CanUndo reports whether Undo would move the cursor.
func (h *History) CanUndo() bool { return h.step > 0 }

// CanRedo reports whether Redo would move the cursor.
func (h *History) CanRedo() bool { return h.step < len(h.stack)-1 }

// Limit returns the ring size, or 0 when unbounded.
func (h *History) Limit() int { return h.limit }
