package selection

import (
	"testing"

	"github.com/matzehuels/tableplan/pkg/layout"
)

func list(n int) layout.TableList {
	var l layout.TableList
	for i := range n {
		l = l.Add(layout.NewTable(layout.Normal, layout.Point{X: float64(i) * 200}, layout.DefaultName(layout.Normal, i+1)))
	}
	return l
}

func TestZeroValue(t *testing.T) {
	var m Manager
	if i, ok := m.Index(); ok || i != -1 {
		t.Errorf("Index() = %d, %v; want -1, false", i, ok)
	}
	if m.IsSelected(0) {
		t.Error("zero Manager should not select index 0")
	}
}

func TestPointerDown(t *testing.T) {
	m := New()

	m.PointerDown(2, true)
	if i, ok := m.Index(); !ok || i != 2 {
		t.Errorf("after hit: Index() = %d, %v", i, ok)
	}

	m.PointerDown(-1, false)
	if _, ok := m.Index(); ok {
		t.Error("background pointer-down should clear the selection")
	}
}

func TestSelectNegativeClears(t *testing.T) {
	m := New()
	m.Select(1)
	m.Select(-3)
	if _, ok := m.Index(); ok {
		t.Error("Select(-3) should clear")
	}
}

func TestOnRemove(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		removed  int
		wantOK   bool
	}{
		{"removed selected", 1, 1, false},
		{"removed earlier", 2, 0, false},
		{"removed later", 0, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.Select(tt.selected)
			m.OnRemove(tt.removed)
			i, ok := m.Index()
			if ok != tt.wantOK {
				t.Fatalf("Index() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && i != tt.selected {
				t.Errorf("Index() = %d, want %d", i, tt.selected)
			}
		})
	}
}

func TestOnReplace(t *testing.T) {
	m := New()
	m.Select(1)
	m.OnReplace(list(3), list(3))
	if !m.IsSelected(1) {
		t.Error("same-length replace should keep the selection")
	}

	m.OnReplace(list(3), list(2))
	if _, ok := m.Index(); ok {
		t.Error("length change should clear the selection")
	}

	m.Select(0)
	m.OnReplace(list(1), list(1))
	if !m.IsSelected(0) {
		t.Error("in-range selection lost")
	}
}
