package layout

import (
	"iter"
	"slices"
)

// TableList is the ordered, immutable collection of tables in a layout.
// The zero value is an empty list ready to use.
type TableList struct {
	tables []Table
}

// NewTableList returns a list holding a copy of tables.
func NewTableList(tables ...Table) TableList {
	if len(tables) == 0 {
		return TableList{}
	}
	return TableList{tables: slices.Clone(tables)}
}

// Len returns the number of tables.
func (l TableList) Len() int {
	return len(l.tables)
}

// At returns the table at index i.
func (l TableList) At(i int) (Table, bool) {
	if !l.inRange(i) {
		return Table{}, false
	}
	return l.tables[i], true
}

// All returns a copy of the tables in order.
func (l TableList) All() []Table {
	return slices.Clone(l.tables)
}

// Tables iterates over index/table pairs in order.
func (l TableList) Tables() iter.Seq2[int, Table] {
	return func(yield func(int, Table) bool) {
		for i, t := range l.tables {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Add returns a new list with t appended.
func (l TableList) Add(t Table) TableList {
	next := make([]Table, len(l.tables), len(l.tables)+1)
	copy(next, l.tables)
	return TableList{tables: append(next, t)}
}

// Update returns a new list in which the table at index i is replaced by the
// merge of its fields and p. An out-of-range index returns l and false.
func (l TableList) Update(i int, p Patch) (TableList, bool) {
	if !l.inRange(i) {
		return l, false
	}
	next := slices.Clone(l.tables)
	next[i] = p.Apply(next[i])
	return TableList{tables: next}, true
}

// Replace returns a new list with the table at index i replaced by t.
// An out-of-range index returns l and false.
func (l TableList) Replace(i int, t Table) (TableList, bool) {
	if !l.inRange(i) {
		return l, false
	}
	next := slices.Clone(l.tables)
	next[i] = t
	return TableList{tables: next}, true
}

// Remove returns a new list without the table at index i. Later tables shift
// down by one. An out-of-range index returns l and false.
func (l TableList) Remove(i int) (TableList, bool) {
	if !l.inRange(i) {
		return l, false
	}
	next := make([]Table, 0, len(l.tables)-1)
	next = append(next, l.tables[:i]...)
	next = append(next, l.tables[i+1:]...)
	return TableList{tables: next}, true
}

// HitTest returns the index of the topmost table containing p. Tables later in
// the list are drawn on top, so the search runs back to front.
func (l TableList) HitTest(p Point) (int, bool) {
	for i := len(l.tables) - 1; i >= 0; i-- {
		if l.tables[i].Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// Equal reports whether both lists hold the same tables in the same order.
func (l TableList) Equal(other TableList) bool {
	return slices.Equal(l.tables, other.tables)
}

// Bounds returns the smallest box containing every table.
// An empty list yields the zero geometry and false.
func (l TableList) Bounds() (Geometry, bool) {
	if len(l.tables) == 0 {
		return Geometry{}, false
	}
	minP := l.tables[0].Point
	maxP := l.tables[0].Max()
	for _, t := range l.tables[1:] {
		minP.X = min(minP.X, t.X)
		minP.Y = min(minP.Y, t.Y)
		m := t.Max()
		maxP.X = max(maxP.X, m.X)
		maxP.Y = max(maxP.Y, m.Y)
	}
	return Geometry{Point: minP, Size: Size{Width: maxP.X - minP.X, Height: maxP.Y - minP.Y}}, true
}

// TotalCapacity sums the capacity of all tables.
func (l TableList) TotalCapacity() int {
	total := 0
	for _, t := range l.tables {
		total += t.Capacity
	}
	return total
}

func (l TableList) inRange(i int) bool {
	return i >= 0 && i < len(l.tables)
}
