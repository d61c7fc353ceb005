package editor

import (
	"github.com/matzehuels/tableplan/pkg/layout"
	"github.com/matzehuels/tableplan/pkg/transform"
)

// PointerDown hit-tests p, topmost table first, and updates the selection:
// a table becomes selected, the background clears the selection.
func (e *Editor) PointerDown(p layout.Point) (int, bool) {
	i, ok := e.tables.HitTest(p)
	e.sel.PointerDown(i, ok)
	return i, ok
}

// HandleAt returns the resize handle of the selected table under p.
func (e *Editor) HandleAt(p layout.Point, tolerance float64) transform.Handle {
	t, ok := e.SelectedTable()
	if !ok {
		return transform.HandleNone
	}
	return transform.HandleAt(t.Geometry, p, tolerance)
}

// BeginMove starts moving the selected table. Only the selected table can be
// transformed.
func (e *Editor) BeginMove() bool {
	i, ok := e.sel.Index()
	if !ok {
		return false
	}
	t, _ := e.tables.At(i)
	e.ctrl.BeginMove(i, t.Geometry)
	return true
}

// BeginResize starts resizing the selected table by handle h.
func (e *Editor) BeginResize(h transform.Handle) bool {
	i, ok := e.sel.Index()
	if !ok {
		return false
	}
	t, _ := e.tables.At(i)
	e.ctrl.BeginResize(i, t.Geometry, h)
	return true
}

// DragFrame returns the preview geometry for the gesture in progress. It
// never commits.
func (e *Editor) DragFrame(delta layout.Point) (layout.Geometry, bool) {
	if k, _ := e.ctrl.Active(); k == transform.Idle {
		return layout.Geometry{}, false
	}
	return e.ctrl.Frame(delta), true
}

// Dragging reports the gesture in progress and its preview geometry.
func (e *Editor) Dragging() (transform.Kind, int, layout.Geometry) {
	k, i := e.ctrl.Active()
	return k, i, e.ctrl.Preview()
}

// EndDrag finishes the gesture and commits its geometry, if it changed.
func (e *Editor) EndDrag(delta layout.Point) bool {
	c, ok := e.ctrl.End(delta)
	if !ok {
		return false
	}
	return e.OnTransformCommit(c.Index, c.Geometry)
}

// EndTransform finishes the gesture from a surface-reported node state.
func (e *Editor) EndTransform(n transform.NodeState) bool {
	c, ok := e.ctrl.EndTransform(n)
	if !ok {
		return false
	}
	return e.OnTransformCommit(c.Index, c.Geometry)
}

// CancelDrag abandons the gesture.
func (e *Editor) CancelDrag() { e.ctrl.Cancel() }
