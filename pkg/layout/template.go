package layout

import (
	"fmt"
	"strings"
)

// Template describes the defaults used when a new table of a type is placed.
type Template struct {
	Type     TableType
	Label    string // prefix of generated names
	Icon     string // asset name resolved by the asset provider
	Size     Size
	Capacity int
}

var templates = map[TableType]Template{
	Normal: {Type: Normal, Label: "Table", Size: Size{Width: 100, Height: 100}, Capacity: 10},
	VIP:    {Type: VIP, Label: "VIP", Size: Size{Width: 200, Height: 200}, Capacity: 12},
	Booth:  {Type: Booth, Label: "Booth", Size: Size{Width: 120, Height: 100}, Capacity: 6},
	Bar:    {Type: Bar, Label: "Bar", Size: Size{Width: 200, Height: 60}, Capacity: 8},
}

func init() {
	for t, tmpl := range templates {
		tmpl.Icon = IconName(t)
		templates[t] = tmpl
	}
}

// TemplateFor returns the placement defaults of t. Unknown types fall back to
// the Normal template.
func TemplateFor(t TableType) Template {
	if tmpl, ok := templates[t]; ok {
		return tmpl
	}
	return templates[Normal]
}

// IconName returns the asset name of the icon drawn for tables of type t,
// e.g. "table-vip".
func IconName(t TableType) string {
	if !t.Valid() {
		t = Normal
	}
	return "table-" + strings.ToLower(t.String())
}

// NewTable builds a table of type t at p using the template defaults.
func NewTable(t TableType, p Point, name string) Table {
	tmpl := TemplateFor(t)
	return Table{
		Geometry: Geometry{Point: p, Size: tmpl.Size},
		Name:     name,
		Type:     tmpl.Type,
		Capacity: tmpl.Capacity,
	}
}

// DefaultName returns the generated name for the n-th table (1-based) of type t,
// e.g. "Table 3" or "Booth 2".
func DefaultName(t TableType, n int) string {
	return fmt.Sprintf("%s %d", TemplateFor(t).Label, n)
}
