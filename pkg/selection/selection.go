// Package selection tracks which table, if any, is the target of transform
// operations and handle affordances.
//
// The state is either Selected(i) or None. Indices refer to positions in the
// current [layout.TableList], so any change that shifts positions must be
// reported through [Manager.OnRemove] or [Manager.OnReplace].
package selection

import "github.com/matzehuels/tableplan/pkg/layout"

// Manager holds the selection state.
// The zero value has nothing selected.
type Manager struct {
	index    int
	selected bool
}

// New returns a Manager with nothing selected.
func New() *Manager {
	return &Manager{}
}

// Index returns the selected index. ok is false when nothing is selected.
func (m *Manager) Index() (i int, ok bool) {
	if !m.selected {
		return -1, false
	}
	return m.index, true
}

// IsSelected reports whether index i is the selection.
func (m *Manager) IsSelected(i int) bool {
	return m.selected && m.index == i
}

// Select makes i the selection. Negative indices clear it.
func (m *Manager) Select(i int) {
	if i < 0 {
		m.Clear()
		return
	}
	m.index, m.selected = i, true
}

// Clear moves to the None state.
func (m *Manager) Clear() {
	m.index, m.selected = 0, false
}

// PointerDown applies the result of a hit test: a hit selects that table,
// a miss on the background clears the selection.
func (m *Manager) PointerDown(hit int, ok bool) {
	if !ok {
		m.Clear()
		return
	}
	m.Select(hit)
}

// OnRemove is called after the table at index r was removed. A selection at
// or past r no longer names the same table and is cleared.
func (m *Manager) OnRemove(r int) {
	if m.selected && m.index >= r {
		m.Clear()
	}
}

// OnReplace is called when the whole list was swapped, as on undo, redo or
// load. The selection survives only if the length is unchanged and the index
// is still in range.
func (m *Manager) OnReplace(before, after layout.TableList) {
	if !m.selected {
		return
	}
	if before.Len() != after.Len() || m.index >= after.Len() {
		m.Clear()
	}
}
