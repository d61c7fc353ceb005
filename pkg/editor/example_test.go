package editor_test

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tableplan/pkg/editor"
	"github.com/matzehuels/tableplan/pkg/layout"
)

func Example() {
	e := editor.New("club-1", nil, editor.WithLogger(log.New(io.Discard)))

	e.AddTable()
	e.AddTable()
	e.AddTable()
	e.Undo()
	e.Undo()
	e.AddTable()

	fmt.Println(e.Tables().Len(), e.HistoryLen(), e.Step(), e.Redo())
	// Output: 2 3 2 false
}

func ExampleEditor_UpdateSelected() {
	e := editor.New("club-1", nil, editor.WithLogger(log.New(io.Discard)))
	e.AddTableOfType(layout.Booth, &layout.Point{X: 40, Y: 40})
	e.PointerDown(layout.Point{X: 60, Y: 60})

	err := e.UpdateSelected(layout.Patch{Capacity: layout.Ptr(0)})
	fmt.Println(err)

	e.UpdateSelected(layout.Patch{Reserved: layout.Ptr(true)})
	t, _ := e.SelectedTable()
	fmt.Println(t.Name, t.Reserved)
	// Output:
	// INVALID_TABLE: capacity must be positive, got 0
	// Booth 1 true
}
