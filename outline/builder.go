package outline

import (
	"github.com/gogpu/msdf"
)

// Builder assembles a shape from pen commands, the way font decomposers
// such as FreeType report outlines. Coordinates are multiplied by the
// builder's scale before they become shape coordinates.
//
// A MoveTo while a contour is open closes that contour first.
type Builder struct {
	scale   float64
	shape   *msdf.Shape
	contour *msdf.Contour
	start   msdf.Point2
	pos     msdf.Point2
}

// closeEpsilon is the gap under which a contour's last edge is snapped onto
// its start point instead of being joined by a new line.
const closeEpsilon = 1e-12

// NewBuilder returns a builder for a shape with the given Y orientation.
// A scale of 0 is treated as 1.
func NewBuilder(scale float64, yAxis msdf.Orientation) *Builder {
	if scale == 0 {
		scale = 1
	}
	s := msdf.NewShape()
	s.YAxis = yAxis
	return &Builder{scale: scale, shape: s}
}

func (b *Builder) point(x, y float64) msdf.Point2 {
	return msdf.V2(x*b.scale, y*b.scale)
}

// MoveTo starts a new contour at (x, y).
func (b *Builder) MoveTo(x, y float64) {
	b.Close()
	b.contour = b.shape.AddContour()
	b.start = b.point(x, y)
	b.pos = b.start
}

// LineTo adds a straight edge to (x, y).
func (b *Builder) LineTo(x, y float64) {
	p := b.point(x, y)
	if p == b.pos {
		return
	}
	b.ensureContour()
	b.contour.AddEdge(msdf.NewLinearEdge(b.pos, p))
	b.pos = p
}

// QuadTo adds a quadratic Bézier edge through control point (cx, cy) to
// (x, y).
func (b *Builder) QuadTo(cx, cy, x, y float64) {
	c, p := b.point(cx, cy), b.point(x, y)
	if c == b.pos && p == b.pos {
		return
	}
	b.ensureContour()
	b.contour.AddEdge(msdf.NewQuadraticEdge(b.pos, c, p))
	b.pos = p
}

// ConicTo is QuadTo under the name used by TrueType tooling, where
// quadratic curves are called conics.
func (b *Builder) ConicTo(cx, cy, x, y float64) {
	b.QuadTo(cx, cy, x, y)
}

// CubicTo adds a cubic Bézier edge through control points (c1x, c1y) and
// (c2x, c2y) to (x, y).
func (b *Builder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	c1, c2, p := b.point(c1x, c1y), b.point(c2x, c2y), b.point(x, y)
	if c1 == b.pos && c2 == b.pos && p == b.pos {
		return
	}
	b.ensureContour()
	b.contour.AddEdge(msdf.NewCubicEdge(b.pos, c1, c2, p))
	b.pos = p
}

// Close ends the current contour, joining its last point to its first.
// It does nothing when no contour is open.
func (b *Builder) Close() {
	if b.contour == nil {
		return
	}
	edges := b.contour.Edges
	if n := len(edges); n > 0 && b.pos != b.start {
		if b.pos.Sub(b.start).LengthSq() <= closeEpsilon*closeEpsilon {
			edges[n-1].MoveEndPoint(b.start)
		} else {
			b.contour.AddEdge(msdf.NewLinearEdge(b.pos, b.start))
		}
	}
	b.contour = nil
	b.pos = b.start
}

// Shape closes any open contour and returns the shape, dropping contours
// without edges. The builder must not be used afterwards.
func (b *Builder) Shape() *msdf.Shape {
	b.Close()
	s := b.shape
	kept := s.Contours[:0]
	for _, c := range s.Contours {
		if len(c.Edges) > 0 {
			kept = append(kept, c)
		}
	}
	s.Contours = kept
	b.shape = nil
	return s
}

// ensureContour opens an implicit contour at the pen position for drawing
// commands that arrive without a MoveTo.
func (b *Builder) ensureContour() {
	if b.contour == nil {
		b.contour = b.shape.AddContour()
		b.start = b.pos
	}
}
