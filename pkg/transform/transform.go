// Package transform turns pointer drags on the selected table into committed
// geometry.
//
// A drag starts with [Controller.BeginMove] or [Controller.BeginResize], which
// capture the table's geometry at drag start. Every pointer frame goes through
// [Controller.Frame], which returns a preview geometry for the surface to draw;
// frames are never committed. [Controller.End] (pointer release) or
// [Controller.EndTransform] (a surface-reported node state) produce exactly one
// [Commit] for the whole gesture.
//
// Moves are unconstrained. Resizes are all-or-nothing: a proposed box narrower
// or shorter than [layout.MinSize] is discarded entirely and the pre-drag
// geometry is kept. Scale factors reported by the surface are baked into width
// and height so repeated resizes never compound.
package transform

import (
	"math"

	"github.com/matzehuels/tableplan/pkg/layout"
)

// Handle identifies the resize handle being dragged.
type Handle int

// Resize handles. Edge handles change one axis, corner handles two.
const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

func (h Handle) String() string {
	switch h {
	case HandleTopLeft:
		return "top-left"
	case HandleTop:
		return "top"
	case HandleTopRight:
		return "top-right"
	case HandleRight:
		return "right"
	case HandleBottomRight:
		return "bottom-right"
	case HandleBottom:
		return "bottom"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleLeft:
		return "left"
	}
	return "none"
}

// Kind is the gesture in progress.
type Kind int

const (
	Idle Kind = iota
	Moving
	Resizing
)

// NodeState is the geometry a rendering surface reports for a node at the end
// of an interactive transform. The surface may express a resize as a scale
// factor on top of the unscaled width and height.
type NodeState struct {
	X, Y          float64
	Width, Height float64
	ScaleX        float64
	ScaleY        float64
}

// Commit is the single geometry update produced by a finished gesture.
type Commit struct {
	Index    int
	Geometry layout.Geometry
}

// Option configures a Controller.
type Option func(*Controller)

// WithGrid snaps committed positions to a grid of the given size.
// A size <= 0 disables snapping.
func WithGrid(size float64) Option {
	return func(c *Controller) {
		c.grid = size
	}
}

// WithMinSize overrides the minimum width and height. Values below
// [layout.MinSize] are ignored.
func WithMinSize(size float64) Option {
	return func(c *Controller) {
		c.minSize = max(size, layout.MinSize)
	}
}

// Controller computes candidate geometry for the table under a drag.
// It holds at most one gesture at a time and is not safe for concurrent use.
type Controller struct {
	grid    float64
	minSize float64

	kind   Kind
	index  int
	handle Handle
	start  layout.Geometry
	last   layout.Geometry
}

// NewController creates an idle controller.
func NewController(opts ...Option) *Controller {
	c := &Controller{minSize: layout.MinSize, index: -1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Grid returns the snap size, or 0 when snapping is off.
func (c *Controller) Grid() float64 { return c.grid }

// SetGrid changes the snap size. A size <= 0 disables snapping.
func (c *Controller) SetGrid(size float64) {
	c.grid = max(size, 0)
}

// Active reports the gesture in progress and the index it applies to.
func (c *Controller) Active() (Kind, int) {
	return c.kind, c.index
}

// Preview returns the geometry of the most recent frame. It is only
// meaningful while a gesture is active.
func (c *Controller) Preview() layout.Geometry { return c.last }

// Handle returns the handle of the resize in progress.
func (c *Controller) Handle() Handle { return c.handle }

// BeginMove starts moving the table at index from its current geometry.
func (c *Controller) BeginMove(index int, start layout.Geometry) {
	c.begin(Moving, index, HandleNone, start)
}

// BeginResize starts resizing the table at index by dragging handle h.
func (c *Controller) BeginResize(index int, start layout.Geometry, h Handle) {
	if h == HandleNone {
		h = HandleBottomRight
	}
	c.begin(Resizing, index, h, start)
}

func (c *Controller) begin(k Kind, index int, h Handle, start layout.Geometry) {
	c.kind = k
	c.index = index
	c.handle = h
	c.start = start
	c.last = start
}

// Frame returns the preview geometry for a pointer that has moved by delta
// since the drag started. It does not commit anything. When idle it returns
// the zero geometry.
func (c *Controller) Frame(delta layout.Point) layout.Geometry {
	switch c.kind {
	case Moving:
		c.last = Move(c.start, delta)
	case Resizing:
		c.last = c.BoundBox(c.start, Resize(c.start, c.handle, delta))
	default:
		return layout.Geometry{}
	}
	return c.last
}

// End finishes the gesture with the final pointer delta and returns the
// commit. ok is false when no gesture was active or the geometry did not
// change, in which case nothing should be committed.
func (c *Controller) End(delta layout.Point) (Commit, bool) {
	if c.kind == Idle {
		return Commit{}, false
	}
	return c.finish(c.Frame(delta))
}

// EndTransform finishes the gesture from a surface-reported node state,
// normalizing scale factors into absolute size first.
func (c *Controller) EndTransform(n NodeState) (Commit, bool) {
	if c.kind == Idle {
		return Commit{}, false
	}
	return c.finish(c.BoundBox(c.start, Normalize(n)))
}

// Cancel abandons the gesture without a commit.
func (c *Controller) Cancel() {
	c.kind = Idle
	c.index = -1
	c.handle = HandleNone
}

// finish snaps a changed geometry to the grid and resets the controller.
// A rejected or empty gesture keeps the start geometry untouched.
func (c *Controller) finish(final layout.Geometry) (Commit, bool) {
	start, index := c.start, c.index
	if final != start {
		final = c.snap(final)
	}
	c.Cancel()
	if final == start {
		return Commit{}, false
	}
	return Commit{Index: index, Geometry: final}, true
}

// BoundBox applies the minimum-size policy: proposed is returned unchanged
// when both dimensions meet the minimum, otherwise old is returned whole.
func (c *Controller) BoundBox(old, proposed layout.Geometry) layout.Geometry {
	if proposed.Width < c.minSize || proposed.Height < c.minSize || !finite(proposed) {
		return old
	}
	return proposed
}

func (c *Controller) snap(g layout.Geometry) layout.Geometry {
	if c.grid <= 0 {
		return g
	}
	snapped := g
	snapped.X = math.Round(g.X/c.grid) * c.grid
	snapped.Y = math.Round(g.Y/c.grid) * c.grid
	if c.kind == Resizing {
		// Snap the far edges too, but never below the minimum size.
		maxX := math.Round((g.X+g.Width)/c.grid) * c.grid
		maxY := math.Round((g.Y+g.Height)/c.grid) * c.grid
		if w := maxX - snapped.X; w >= c.minSize {
			snapped.Width = w
		}
		if h := maxY - snapped.Y; h >= c.minSize {
			snapped.Height = h
		}
	}
	return snapped
}

// Move applies delta to the start position. Size is unchanged.
func Move(start layout.Geometry, delta layout.Point) layout.Geometry {
	start.Point = start.Point.Add(delta)
	return start
}

// Resize returns the box produced by dragging handle h by delta. The opposite
// edge or corner stays fixed. The result is not clamped; see
// [Controller.BoundBox].
func Resize(start layout.Geometry, h Handle, delta layout.Point) layout.Geometry {
	g := start
	switch h {
	case HandleTopLeft, HandleLeft, HandleBottomLeft:
		g.X += delta.X
		g.Width -= delta.X
	case HandleTopRight, HandleRight, HandleBottomRight:
		g.Width += delta.X
	}
	switch h {
	case HandleTopLeft, HandleTop, HandleTopRight:
		g.Y += delta.Y
		g.Height -= delta.Y
	case HandleBottomLeft, HandleBottom, HandleBottomRight:
		g.Height += delta.Y
	}
	return g
}

// HandleAt returns the handle whose anchor lies within tol of p, checking
// corners before edge midpoints. Anchors sit on the corners and edge
// midpoints of g.
func HandleAt(g layout.Geometry, p layout.Point, tol float64) Handle {
	mx, my := g.X+g.Width/2, g.Y+g.Height/2
	maxX, maxY := g.X+g.Width, g.Y+g.Height
	anchors := []struct {
		h    Handle
		x, y float64
	}{
		{HandleTopLeft, g.X, g.Y},
		{HandleTopRight, maxX, g.Y},
		{HandleBottomRight, maxX, maxY},
		{HandleBottomLeft, g.X, maxY},
		{HandleTop, mx, g.Y},
		{HandleRight, maxX, my},
		{HandleBottom, mx, maxY},
		{HandleLeft, g.X, my},
	}
	for _, a := range anchors {
		if math.Abs(p.X-a.x) <= tol && math.Abs(p.Y-a.y) <= tol {
			return a.h
		}
	}
	return HandleNone
}

// Normalize bakes the node's scale factors into its width and height and
// returns geometry at scale 1. A zero scale is treated as 1.
func Normalize(n NodeState) layout.Geometry {
	sx, sy := n.ScaleX, n.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return layout.Geometry{
		Point: layout.Point{X: n.X, Y: n.Y},
		Size:  layout.Size{Width: n.Width * math.Abs(sx), Height: n.Height * math.Abs(sy)},
	}
}

func finite(g layout.Geometry) bool {
	for _, v := range []float64{g.X, g.Y, g.Width, g.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
