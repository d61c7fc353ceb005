package layout

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tableplan/pkg/errors"
)

// MinSize is the smallest allowed width and height of a table, in canvas units.
const MinSize = 50.0

// Point is a canvas-space coordinate. Both axes are unconstrained in sign.
type Point struct {
	X, Y float64
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width × height pair.
type Size struct {
	Width, Height float64
}

// Valid reports whether both dimensions meet [MinSize].
func (s Size) Valid() bool {
	return s.Width >= MinSize && s.Height >= MinSize
}

// Geometry is the position (top-left corner) and size of a table.
type Geometry struct {
	Point
	Size
}

// Contains reports whether p lies inside the box, edges included.
func (g Geometry) Contains(p Point) bool {
	return p.X >= g.X && p.X <= g.X+g.Width &&
		p.Y >= g.Y && p.Y <= g.Y+g.Height
}

// Max returns the bottom-right corner.
func (g Geometry) Max() Point {
	return Point{X: g.X + g.Width, Y: g.Y + g.Height}
}

// String formats the geometry for logs.
func (g Geometry) String() string {
	return fmt.Sprintf("(%.1f,%.1f %.1fx%.1f)", g.X, g.Y, g.Width, g.Height)
}

// TableType is the closed set of table kinds.
type TableType int

// Known table types. The zero value is Normal.
const (
	Normal TableType = iota
	VIP
	Booth
	Bar
)

var tableTypeNames = [...]string{
	Normal: "Normal",
	VIP:    "VIP",
	Booth:  "Booth",
	Bar:    "Bar",
}

// TableTypes lists every known type in display order.
var TableTypes = []TableType{Normal, VIP, Booth, Bar}

// String returns the wire name of the type ("Normal", "VIP", "Booth", "Bar").
func (t TableType) String() string {
	if t.Valid() {
		return tableTypeNames[t]
	}
	return fmt.Sprintf("TableType(%d)", int(t))
}

// Valid reports whether t is one of the known types.
func (t TableType) Valid() bool {
	return t >= Normal && t <= Bar
}

// Next cycles through the known types.
func (t TableType) Next() TableType {
	return TableType((int(t) + 1) % len(tableTypeNames))
}

// ParseTableType parses a wire name. Matching is case-insensitive.
func ParseTableType(s string) (TableType, error) {
	for i, name := range tableTypeNames {
		if strings.EqualFold(s, name) {
			return TableType(i), nil
		}
	}
	return Normal, errors.New(errors.ErrCodeInvalidTable, "unknown table type %q", s)
}

// Table is one placeable unit on the floor plan.
type Table struct {
	Geometry
	Name     string
	Type     TableType
	Capacity int  // maximum number of guests
	Reserved bool // editorial annotation, not a booking record
}

// Validate checks the table invariants.
func (t Table) Validate() error {
	if !t.Size.Valid() {
		return errors.New(errors.ErrCodeInvalidGeometry,
			"table size %.1fx%.1f below minimum %.0f", t.Width, t.Height, MinSize)
	}
	if t.Capacity < 1 {
		return errors.New(errors.ErrCodeInvalidTable, "capacity must be positive, got %d", t.Capacity)
	}
	if !t.Type.Valid() {
		return errors.New(errors.ErrCodeInvalidTable, "unknown table type %d", int(t.Type))
	}
	return errors.ValidateTableName(t.Name)
}

// Patch holds a partial update. Nil fields keep the existing value.
type Patch struct {
	X, Y          *float64
	Width, Height *float64
	Name          *string
	Type          *TableType
	Capacity      *int
	Reserved      *bool
}

// GeometryPatch returns a patch that replaces position and size.
func GeometryPatch(g Geometry) Patch {
	return Patch{X: Ptr(g.X), Y: Ptr(g.Y), Width: Ptr(g.Width), Height: Ptr(g.Height)}
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.X == nil && p.Y == nil && p.Width == nil && p.Height == nil &&
		p.Name == nil && p.Type == nil && p.Capacity == nil && p.Reserved == nil
}

// Apply returns t with the non-nil fields of p merged in.
func (p Patch) Apply(t Table) Table {
	if p.X != nil {
		t.X = *p.X
	}
	if p.Y != nil {
		t.Y = *p.Y
	}
	if p.Width != nil {
		t.Width = *p.Width
	}
	if p.Height != nil {
		t.Height = *p.Height
	}
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Capacity != nil {
		t.Capacity = *p.Capacity
	}
	if p.Reserved != nil {
		t.Reserved = *p.Reserved
	}
	return t
}

// Ptr returns a pointer to v. It keeps patch literals short.
func Ptr[T any](v T) *T {
	return &v
}

// String formats the table for logs and test failures.
func (t Table) String() string {
	return fmt.Sprintf("%q %s %s cap=%d reserved=%t", t.Name, t.Type, t.Geometry, t.Capacity, t.Reserved)
}
