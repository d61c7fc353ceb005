package editor

import (
	"github.com/matzehuels/tableplan/pkg/errors"
	"github.com/matzehuels/tableplan/pkg/layout"
	"github.com/matzehuels/tableplan/pkg/observability"
)

// Offset and suffix applied by DuplicateSelected.
const (
	duplicateOffset = 20.0
	duplicateSuffix = " (Copy)"
)

// commit is the only path that changes the live list. It pushes exactly one
// history snapshot.
func (e *Editor) commit(op string, next layout.TableList) {
	e.tables = next
	e.hist.Push(next)
	observability.Editor().OnCommit(e.id, op, next.Len(), e.hist.Step())
	e.logger.Debug("commit", "op", op, "tables", next.Len(), "step", e.hist.Step())
}

// AddTable appends a Normal table named "Table N" (N = new length) at a
// random position in [0,400)×[0,300), 100×100, seating 10, not reserved.
// It returns the new index.
func (e *Editor) AddTable() int {
	t := layout.Table{
		Geometry: layout.Geometry{
			Point: e.spawnPoint(),
			Size:  layout.Size{Width: 100, Height: 100},
		},
		Name:     layout.DefaultName(layout.Normal, e.tables.Len()+1),
		Type:     layout.Normal,
		Capacity: 10,
	}
	e.commit("add", e.tables.Add(t))
	return e.tables.Len() - 1
}

// AddTableOfType appends a table built from the type's template. A nil at
// places it at a random spawn position.
func (e *Editor) AddTableOfType(typ layout.TableType, at *layout.Point) int {
	p := e.spawnPoint()
	if at != nil {
		p = *at
	}
	t := layout.NewTable(typ, p, layout.DefaultName(typ, e.tables.Len()+1))
	e.commit("add", e.tables.Add(t))
	return e.tables.Len() - 1
}

func (e *Editor) spawnPoint() layout.Point {
	return layout.Point{X: e.rand.Float64() * spawnWidth, Y: e.rand.Float64() * spawnHeight}
}

// OnTransformCommit replaces the geometry of the table at index with g. It
// reports false, and pushes nothing, when index is out of range, g is below
// the minimum size or g equals the current geometry.
func (e *Editor) OnTransformCommit(index int, g layout.Geometry) bool {
	cur, ok := e.tables.At(index)
	if !ok || !g.Size.Valid() || cur.Geometry == g {
		return false
	}
	next, _ := e.tables.Update(index, layout.GeometryPatch(g))
	e.commit("transform", next)
	return true
}

// DeleteSelected removes the selected table and clears the selection.
// It reports false when nothing is selected.
func (e *Editor) DeleteSelected() bool {
	i, ok := e.sel.Index()
	if !ok {
		return false
	}
	next, ok := e.tables.Remove(i)
	if !ok {
		e.sel.Clear()
		return false
	}
	e.ctrl.Cancel()
	e.commit("delete", next)
	e.sel.OnRemove(i)
	return true
}

// UpdateSelected applies p to the selected table. See UpdateTable.
func (e *Editor) UpdateSelected(p layout.Patch) error {
	i, ok := e.sel.Index()
	if !ok {
		return nil
	}
	return e.UpdateTable(i, p)
}

// UpdateTable applies a property edit to the table at index i. The result
// must satisfy the table invariants; otherwise the structured validation
// error is returned and nothing changes. Out-of-range indices and edits that
// change nothing are no-ops.
func (e *Editor) UpdateTable(i int, p layout.Patch) error {
	cur, ok := e.tables.At(i)
	if !ok || p.Empty() {
		return nil
	}
	if p.Name != nil {
		if err := errors.ValidateTableName(*p.Name); err != nil {
			return err
		}
	}
	updated := p.Apply(cur)
	if err := updated.Validate(); err != nil {
		return err
	}
	if updated == cur {
		return nil
	}
	next, _ := e.tables.Replace(i, updated)
	e.commit("update", next)
	return nil
}

// DuplicateSelected appends a copy of the selected table offset by (20,20)
// with " (Copy)" appended to its name, and selects the copy.
func (e *Editor) DuplicateSelected() (int, bool) {
	src, ok := e.SelectedTable()
	if !ok {
		return -1, false
	}
	cp := src
	cp.Point = src.Point.Add(layout.Point{X: duplicateOffset, Y: duplicateOffset})
	cp.Name = src.Name + duplicateSuffix
	e.commit("duplicate", e.tables.Add(cp))
	i := e.tables.Len() - 1
	e.sel.Select(i)
	return i, true
}

// Clear removes every table as one undoable step. It reports false when the
// layout is already empty.
func (e *Editor) Clear() bool {
	if e.tables.Len() == 0 {
		return false
	}
	e.ctrl.Cancel()
	e.sel.Clear()
	e.commit("clear", layout.TableList{})
	return true
}

// Undo replaces the live list with the previous snapshot.
func (e *Editor) Undo() bool {
	prev, ok := e.hist.Undo()
	if !ok {
		return false
	}
	e.replace(prev)
	observability.Editor().OnUndo(e.id, e.hist.Step())
	return true
}

// Redo replaces the live list with the next snapshot.
func (e *Editor) Redo() bool {
	next, ok := e.hist.Redo()
	if !ok {
		return false
	}
	e.replace(next)
	observability.Editor().OnRedo(e.id, e.hist.Step())
	return true
}

func (e *Editor) replace(l layout.TableList) {
	e.ctrl.Cancel()
	e.sel.OnReplace(e.tables, l)
	e.tables = l
	e.logger.Debug("history move", "step", e.hist.Step(), "tables", l.Len())
}
