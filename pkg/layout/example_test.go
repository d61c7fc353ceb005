package layout_test

import (
	"fmt"

	"github.com/matzehuels/tableplan/pkg/layout"
)

func ExampleTableList() {
	var l layout.TableList
	l = l.Add(layout.NewTable(layout.Normal, layout.Point{X: 50, Y: 50}, "Table 1"))
	l = l.Add(layout.NewTable(layout.Bar, layout.Point{X: 300, Y: 40}, "Bar 1"))

	renamed, _ := l.Update(0, layout.Patch{Name: layout.Ptr("Window")})
	shorter, _ := renamed.Remove(0)

	first, _ := l.At(0)
	fmt.Println(l.Len(), first.Name)
	fmt.Println(shorter.Len())
	// Output:
	// 2 Table 1
	// 1
}
