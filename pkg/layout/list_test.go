package layout

import (
	"testing"
)

func sample(n int) TableList {
	var l TableList
	for i := range n {
		l = l.Add(NewTable(Normal, Point{X: float64(i * 120), Y: 0}, DefaultName(Normal, i+1)))
	}
	return l
}

func TestAddDoesNotMutate(t *testing.T) {
	base := sample(2)
	next := base.Add(NewTable(Bar, Point{X: 10, Y: 10}, "Bar 1"))

	if base.Len() != 2 {
		t.Errorf("base.Len() = %d, want 2", base.Len())
	}
	if next.Len() != 3 {
		t.Errorf("next.Len() = %d, want 3", next.Len())
	}
	last, _ := next.At(2)
	if last.Name != "Bar 1" || last.Type != Bar {
		t.Errorf("appended table = %v", last)
	}
}

func TestAddSharedBackingArray(t *testing.T) {
	// Two lists derived from the same parent must not see each other's tables.
	base := sample(1)
	a := base.Add(NewTable(Normal, Point{}, "A"))
	b := base.Add(NewTable(Normal, Point{}, "B"))

	ta, _ := a.At(1)
	tb, _ := b.At(1)
	if ta.Name != "A" || tb.Name != "B" {
		t.Errorf("sibling lists aliased: a=%q b=%q", ta.Name, tb.Name)
	}
}

func TestUpdate(t *testing.T) {
	base := sample(3)

	tests := []struct {
		name   string
		index  int
		patch  Patch
		wantOK bool
	}{
		{"rename", 1, Patch{Name: Ptr("Window")}, true},
		{"move", 0, Patch{X: Ptr(5.0), Y: Ptr(-7.0)}, true},
		{"negative index", -1, Patch{Name: Ptr("x")}, false},
		{"past end", 3, Patch{Name: Ptr("x")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := base.Update(tt.index, tt.patch)
			if ok != tt.wantOK {
				t.Fatalf("Update() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				if !next.Equal(base) {
					t.Error("out-of-range Update() should return the receiver")
				}
				return
			}
			before, _ := base.At(tt.index)
			after, _ := next.At(tt.index)
			if want := tt.patch.Apply(before); after != want {
				t.Errorf("Update() table = %v, want %v", after, want)
			}
			if base.Equal(next) {
				t.Error("Update() should return a different list")
			}
		})
	}
}

func TestUpdateKeepsUnpatchedFields(t *testing.T) {
	base := NewTableList(Table{
		Geometry: Geometry{Point{1, 2}, Size{60, 70}},
		Name:     "T",
		Type:     Booth,
		Capacity: 4,
		Reserved: true,
	})

	next, _ := base.Update(0, Patch{Capacity: Ptr(8)})
	got, _ := next.At(0)
	want := Table{Geometry: Geometry{Point{1, 2}, Size{60, 70}}, Name: "T", Type: Booth, Capacity: 8, Reserved: true}
	if got != want {
		t.Errorf("Update() = %v, want %v", got, want)
	}
}

func TestRemoveShiftsIndices(t *testing.T) {
	base := sample(4)

	next, ok := base.Remove(1)
	if !ok {
		t.Fatal("Remove(1) ok = false")
	}
	if next.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", next.Len())
	}
	for i := 1; i < next.Len(); i++ {
		got, _ := next.At(i)
		want, _ := base.At(i + 1)
		if got != want {
			t.Errorf("next[%d] = %v, want old[%d] = %v", i, got, i+1, want)
		}
	}
	if base.Len() != 4 {
		t.Error("Remove() mutated the receiver")
	}
}

func TestRemoveOutOfRange(t *testing.T) {
	base := sample(2)
	for _, i := range []int{-1, 2, 100} {
		next, ok := base.Remove(i)
		if ok {
			t.Errorf("Remove(%d) ok = true", i)
		}
		if !next.Equal(base) {
			t.Errorf("Remove(%d) changed the list", i)
		}
	}
}

func TestHitTestTopmost(t *testing.T) {
	l := NewTableList(
		NewTable(Normal, Point{X: 0, Y: 0}, "bottom"),
		NewTable(Normal, Point{X: 50, Y: 50}, "top"),
	)

	tests := []struct {
		name   string
		p      Point
		want   int
		wantOK bool
	}{
		{"overlap picks later table", Point{X: 75, Y: 75}, 1, true},
		{"only bottom", Point{X: 10, Y: 10}, 0, true},
		{"edge inclusive", Point{X: 150, Y: 150}, 1, true},
		{"background", Point{X: 500, Y: 500}, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.HitTest(tt.p)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("HitTest(%v) = %d, %v; want %d, %v", tt.p, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestAllReturnsCopy(t *testing.T) {
	l := sample(2)
	all := l.All()
	all[0].Name = "changed"

	got, _ := l.At(0)
	if got.Name == "changed" {
		t.Error("All() exposed internal storage")
	}
}

func TestTablesIterator(t *testing.T) {
	l := sample(3)
	var seen []int
	for i, tbl := range l.Tables() {
		seen = append(seen, i)
		if want, _ := l.At(i); tbl != want {
			t.Errorf("Tables() yielded %v at %d, want %v", tbl, i, want)
		}
	}
	if len(seen) != 3 {
		t.Errorf("Tables() yielded %d items, want 3", len(seen))
	}
}

func TestBoundsAndCapacity(t *testing.T) {
	if _, ok := (TableList{}).Bounds(); ok {
		t.Error("Bounds() of empty list should report false")
	}

	l := NewTableList(
		NewTable(Normal, Point{X: -10, Y: 20}, "a"),
		NewTable(Bar, Point{X: 300, Y: 0}, "b"),
	)
	b, ok := l.Bounds()
	if !ok {
		t.Fatal("Bounds() ok = false")
	}
	want := Geometry{Point{-10, 0}, Size{510, 120}}
	if b != want {
		t.Errorf("Bounds() = %v, want %v", b, want)
	}
	if got := l.TotalCapacity(); got != 18 {
		t.Errorf("TotalCapacity() = %d, want 18", got)
	}
}
