package outline

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/msdf"
)

// onCurve is the TrueType point flag of points that lie on the outline.
const onCurve = 0x01

// TrueType builds a shape from a loaded glyph buffer. Points between two
// off-curve points are implied at their midpoint, as in the TrueType
// format. Coordinates are multiplied by scale; the shape is YUpward.
func TrueType(g *truetype.GlyphBuf, scale float64) *msdf.Shape {
	b := NewBuilder(scale, msdf.YUpward)
	start := 0
	for _, end := range g.Ends {
		decomposeContour(b, g.Points[start:end])
		start = end
	}
	return finish(b, "truetype", -1)
}

// LoadTrueType loads the glyph for r without hinting and returns its shape
// in font units.
func LoadTrueType(f *truetype.Font, r rune) (*msdf.Shape, error) {
	idx := f.Index(r)
	if idx == 0 {
		return nil, fmt.Errorf("%w: %q", ErrGlyphNotFound, r)
	}
	var g truetype.GlyphBuf
	// A scale equal to the em size leaves coordinates in font units.
	if err := g.Load(f, fixed.Int26_6(f.FUnitsPerEm()), idx, font.HintingNone); err != nil {
		return nil, fmt.Errorf("outline: load glyph %q: %w", r, err)
	}
	return TrueType(&g, 1), nil
}

// decomposeContour walks one closed TrueType contour.
func decomposeContour(b *Builder, pts []truetype.Point) {
	if len(pts) == 0 {
		return
	}
	xy := func(p truetype.Point) msdf.Point2 {
		return msdf.V2(float64(p.X), float64(p.Y))
	}
	mid := func(p, q msdf.Point2) msdf.Point2 {
		return p.Lerp(q, .5)
	}

	// Start on an on-curve point, or on the midpoint of the first and last
	// points when both are off the curve.
	first := xy(pts[0])
	rest := pts[1:]
	if pts[0].Flags&onCurve == 0 {
		last := pts[len(pts)-1]
		if last.Flags&onCurve != 0 {
			first = xy(last)
			rest = pts[:len(pts)-1]
		} else {
			first = mid(xy(last), first)
			rest = pts
		}
	}
	b.MoveTo(first.X, first.Y)

	var control msdf.Point2
	pending := false
	for _, p := range rest {
		q := xy(p)
		if p.Flags&onCurve != 0 {
			if pending {
				b.ConicTo(control.X, control.Y, q.X, q.Y)
				pending = false
			} else {
				b.LineTo(q.X, q.Y)
			}
			continue
		}
		if pending {
			m := mid(control, q)
			b.ConicTo(control.X, control.Y, m.X, m.Y)
		}
		control = q
		pending = true
	}
	if pending {
		b.ConicTo(control.X, control.Y, first.X, first.Y)
	}
	b.Close()
}
