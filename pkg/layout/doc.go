// Package layout defines the floor plan object model: tables and the ordered
// list that holds them.
//
// # Overview
//
// A [Table] is one placeable seating unit with a canvas-space [Geometry], a
// free-text name, a [TableType], a guest capacity and a reservation flag.
// A [TableList] is the ordered collection of all tables in a layout.
//
// # Identity
//
// There is no stable table id inside an editing session. A table is addressed
// by its position in the list: selecting, updating and removing all take an
// index. Removing index i shifts every later table down by one, so callers that
// hold indices (selection, in-flight drags) must re-derive them after a removal.
//
// # Immutability
//
// TableList is an immutable value. [TableList.Add], [TableList.Update] and
// [TableList.Remove] return a new list and never touch the receiver, which
// lets the history keep snapshots by reference:
//
//	l := layout.TableList{}
//	l = l.Add(layout.NewTable(layout.Normal, layout.Point{X: 50, Y: 50}, "Table 1"))
//	next, ok := l.Update(0, layout.Patch{Name: layout.Ptr("Window")})
//	// l still holds "Table 1"
//
// Out-of-range indices are silent no-ops: the receiver is returned together
// with ok == false.
//
// # Invariants
//
// Width and height are at least [MinSize]; capacity is positive; the type is
// one of the four known values. [Table.Validate] reports violations. The list
// operations do not enforce them; the transform controller and the editor do.
//
// The reservation flag is an editorial annotation set by the venue operator.
// It is not connected to booking records.
package layout
