package history

import (
	"testing"

	"github.com/matzehuels/tableplan/pkg/layout"
)

func withTables(n int) layout.TableList {
	var l layout.TableList
	for i := range n {
		l = l.Add(layout.NewTable(layout.Normal, layout.Point{X: float64(i)}, layout.DefaultName(layout.Normal, i+1)))
	}
	return l
}

func TestNewSeedsStepZero(t *testing.T) {
	h := New(layout.TableList{})
	if h.Step() != 0 || h.Len() != 1 {
		t.Errorf("Step()=%d Len()=%d, want 0 and 1", h.Step(), h.Len())
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("fresh history should not undo or redo")
	}
}

func TestUndoRedoInverse(t *testing.T) {
	h := New(withTables(0))
	for i := 1; i <= 4; i++ {
		h.Push(withTables(i))
	}

	before := h.Current()
	step := h.Step()
	if _, ok := h.Undo(); !ok {
		t.Fatal("Undo() ok = false")
	}
	got, ok := h.Redo()
	if !ok {
		t.Fatal("Redo() ok = false")
	}
	if !got.Equal(before) || h.Step() != step {
		t.Errorf("undo then redo changed state: step %d -> %d", step, h.Step())
	}
}

func TestPushAfterUndoTruncates(t *testing.T) {
	h := New(withTables(0))
	for i := 1; i <= 5; i++ {
		h.Push(withTables(i))
	}
	h.Undo()
	h.Undo()
	h.Undo()
	k := h.Step()

	h.Push(withTables(9))
	if h.Len() != k+2 {
		t.Errorf("Len() = %d, want %d", h.Len(), k+2)
	}
	if h.CanRedo() {
		t.Error("push should discard the redo branch")
	}
	if _, ok := h.Redo(); ok {
		t.Error("Redo() after push should be a no-op")
	}
}

func TestBoundsAreNoOps(t *testing.T) {
	h := New(withTables(0))
	if _, ok := h.Undo(); ok {
		t.Error("Undo() at step 0 should report false")
	}
	if _, ok := h.Redo(); ok {
		t.Error("Redo() at newest should report false")
	}
	if h.Step() != 0 {
		t.Errorf("Step() = %d after no-ops", h.Step())
	}
}

func TestAddUndoRedoScenario(t *testing.T) {
	// add ×3, undo ×2, add, redo
	h := New(withTables(0))
	h.Push(withTables(1))
	h.Push(withTables(2))
	h.Push(withTables(3))
	h.Undo()
	h.Undo()
	h.Push(withTables(2))

	if _, ok := h.Redo(); ok {
		t.Error("Redo() should be a no-op")
	}
	if h.Current().Len() != 2 {
		t.Errorf("Current().Len() = %d, want 2", h.Current().Len())
	}
	if h.Len() != 3 || h.Step() != 2 {
		t.Errorf("Len()=%d Step()=%d, want 3 and 2", h.Len(), h.Step())
	}
}

func TestWithLimit(t *testing.T) {
	h := New(withTables(0), WithLimit(3))
	for i := 1; i <= 5; i++ {
		h.Push(withTables(i))
	}
	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	if h.Current().Len() != 5 {
		t.Errorf("Current().Len() = %d, want 5", h.Current().Len())
	}
	h.Undo()
	got, _ := h.Undo()
	if got.Len() != 3 {
		t.Errorf("oldest kept snapshot has %d tables, want 3", got.Len())
	}
	if h.CanUndo() {
		t.Error("should not undo past the oldest kept snapshot")
	}
}

func TestWithLimitIgnoresSmallValues(t *testing.T) {
	h := New(withTables(0), WithLimit(1))
	h.Push(withTables(1))
	h.Push(withTables(2))
	if h.Len() != 3 || h.Limit() != 0 {
		t.Errorf("Len()=%d Limit()=%d, want unbounded", h.Len(), h.Limit())
	}
}

func TestReset(t *testing.T) {
	h := New(withTables(0))
	h.Push(withTables(1))
	h.Reset(withTables(4))
	if h.Len() != 1 || h.Step() != 0 || h.Current().Len() != 4 {
		t.Errorf("Reset() left Len=%d Step=%d", h.Len(), h.Step())
	}
}
