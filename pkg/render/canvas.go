package render

import (
	"math"

	"github.com/matzehuels/tableplan/pkg/layout"
)

// Viewport maps canvas space onto a grid of terminal cells. A cell is
// CellWidth canvas units wide and CellHeight tall; Origin is the canvas point
// at the top-left corner of cell (0, 0).
type Viewport struct {
	Origin     layout.Point
	CellWidth  float64
	CellHeight float64
	Cols, Rows int
}

// NewViewport returns a cols×rows viewport at the canvas origin. Terminal
// cells are roughly twice as tall as wide, hence the 10×20 default cell.
func NewViewport(cols, rows int) Viewport {
	return Viewport{CellWidth: 10, CellHeight: 20, Cols: max(cols, 1), Rows: max(rows, 1)}
}

// Fit returns a viewport of the same grid that shows all of g plus one cell
// of margin, keeping the cell aspect ratio.
func (v Viewport) Fit(g layout.Geometry) Viewport {
	sx := g.Width / float64(max(v.Cols-2, 1))
	sy := g.Height / float64(max(v.Rows-2, 1)) / 2
	s := max(sx, sy, 1)
	v.CellWidth, v.CellHeight = s, 2*s
	v.Origin = layout.Point{X: g.X - v.CellWidth, Y: g.Y - v.CellHeight}
	return v
}

// ToPoint returns the canvas point at the top-left corner of a cell.
func (v Viewport) ToPoint(col, row int) layout.Point {
	return layout.Point{
		X: v.Origin.X + float64(col)*v.CellWidth,
		Y: v.Origin.Y + float64(row)*v.CellHeight,
	}
}

// CellCenter returns the canvas point at the centre of a cell.
func (v Viewport) CellCenter(col, row int) layout.Point {
	p := v.ToPoint(col, row)
	return layout.Point{X: p.X + v.CellWidth/2, Y: p.Y + v.CellHeight/2}
}

// ToCell returns the cell containing p. The result may lie outside the grid.
func (v Viewport) ToCell(p layout.Point) (col, row int) {
	return int(math.Floor((p.X - v.Origin.X) / v.CellWidth)),
		int(math.Floor((p.Y - v.Origin.Y) / v.CellHeight))
}

// Delta converts a cell offset to a canvas offset.
func (v Viewport) Delta(dCols, dRows int) layout.Point {
	return layout.Point{X: float64(dCols) * v.CellWidth, Y: float64(dRows) * v.CellHeight}
}

// Pan moves the viewport by whole cells.
func (v Viewport) Pan(dCols, dRows int) Viewport {
	v.Origin = v.Origin.Add(v.Delta(dCols, dRows))
	return v
}

// CellKind classifies what a cell shows.
type CellKind uint8

const (
	Empty CellKind = iota
	Fill
	Border
	Handle
	Text
)

// Cell is one rasterized character.
type Cell struct {
	Rune     rune
	Kind     CellKind
	Table    int // index of the table drawn here, -1 for background
	Selected bool
	Reserved bool
	Type     layout.TableType
}

// Frame is a rasterized viewport, indexed [row][col].
type Frame [][]Cell

// Overlay replaces one table's geometry while rasterizing, e.g. the
// preview of a drag in progress.
type Overlay struct {
	Index    int
	Geometry layout.Geometry
}

// Rasterize draws tables back to front, so later tables cover earlier ones,
// as hit testing expects. selected is the selected index or -1. The selected
// table gets a handle in its bottom-right corner.
func (v Viewport) Rasterize(tables layout.TableList, selected int, overlay *Overlay) Frame {
	f := make(Frame, v.Rows)
	for r := range f {
		f[r] = make([]Cell, v.Cols)
		for c := range f[r] {
			f[r][c] = Cell{Rune: ' ', Table: -1}
		}
	}

	for i, t := range tables.Tables() {
		if overlay != nil && overlay.Index == i {
			t.Geometry = overlay.Geometry
		}
		v.drawTable(f, i, t, i == selected)
	}
	return f
}

func (v Viewport) drawTable(f Frame, i int, t layout.Table, selected bool) {
	c0, r0 := v.ToCell(t.Point)
	c1, r1 := v.ToCell(layout.Point{X: t.X + t.Width - 1e-9, Y: t.Y + t.Height - 1e-9})

	base := Cell{Table: i, Selected: selected, Reserved: t.Reserved, Type: t.Type}
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			if r < 0 || r >= v.Rows || c < 0 || c >= v.Cols {
				continue
			}
			cell := base
			cell.Rune, cell.Kind = borderRune(c, r, c0, r0, c1, r1, t.Reserved)
			f[r][c] = cell
		}
	}

	if selected && inside(v, c1, r1) {
		f[r1][c1].Rune, f[r1][c1].Kind = '◢', Handle
	}

	// Name on the first interior row, clipped to the interior width.
	row := r0 + 1
	if r1-r0 < 2 {
		row = r0
	}
	col, room := c0+1, c1-c0-1
	if room < 1 {
		return
	}
	for j, ch := range []rune(t.Name) {
		if j >= room {
			break
		}
		if inside(v, col+j, row) && f[row][col+j].Kind != Handle {
			f[row][col+j].Rune, f[row][col+j].Kind = ch, Text
		}
	}
}

func inside(v Viewport, c, r int) bool {
	return r >= 0 && r < v.Rows && c >= 0 && c < v.Cols
}

func borderRune(c, r, c0, r0, c1, r1 int, dashed bool) (rune, CellKind) {
	top, bottom, left, right := r == r0, r == r1, c == c0, c == c1
	switch {
	case top && left:
		return '┌', Border
	case top && right:
		return '┐', Border
	case bottom && left:
		return '└', Border
	case bottom && right:
		return '┘', Border
	case top || bottom:
		if dashed {
			return '╌', Border
		}
		return '─', Border
	case left || right:
		if dashed {
			return '╎', Border
		}
		return '│', Border
	}
	return ' ', Fill
}

// String renders the frame's runes, one line per row.
func (f Frame) String() string {
	var out []rune
	for r, row := range f {
		if r > 0 {
			out = append(out, '\n')
		}
		for _, c := range row {
			out = append(out, c.Rune)
		}
	}
	return string(out)
}
