package outline

import (
	"errors"
	"fmt"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/msdf"
)

// SFNT loads the outline of glyph gid in font units. sfnt reports
// coordinates with Y growing downwards, so the shape is YDownward.
// buf may be nil; passing a buffer avoids allocations across calls.
func SFNT(f *sfnt.Font, buf *sfnt.Buffer, gid sfnt.GlyphIndex) (*msdf.Shape, error) {
	if buf == nil {
		buf = &sfnt.Buffer{}
	}
	// A ppem equal to the em size leaves coordinates in font units.
	ppem := fixed.Int26_6(f.UnitsPerEm()) << 6
	segments, err := f.LoadGlyph(buf, gid, ppem, nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrColoredGlyph) {
			return nil, fmt.Errorf("%w: glyph %d", ErrNoOutline, gid)
		}
		return nil, fmt.Errorf("outline: load glyph %d: %w", gid, err)
	}

	b := NewBuilder(1.0/64, msdf.YDownward)
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			b.MoveTo(fixedXY(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			b.LineTo(fixedXY(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			cx, cy := fixedXY(seg.Args[0])
			x, y := fixedXY(seg.Args[1])
			b.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := fixedXY(seg.Args[0])
			c2x, c2y := fixedXY(seg.Args[1])
			x, y := fixedXY(seg.Args[2])
			b.CubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	return finish(b, "sfnt", int(gid)), nil
}

// SFNTRune is SFNT for the glyph the font maps r to.
func SFNTRune(f *sfnt.Font, buf *sfnt.Buffer, r rune) (*msdf.Shape, error) {
	if buf == nil {
		buf = &sfnt.Buffer{}
	}
	gid, err := f.GlyphIndex(buf, r)
	if err != nil {
		return nil, fmt.Errorf("outline: glyph index of %q: %w", r, err)
	}
	if gid == 0 {
		return nil, fmt.Errorf("%w: %q", ErrGlyphNotFound, r)
	}
	return SFNT(f, buf, gid)
}

func fixedXY(p fixed.Point26_6) (float64, float64) {
	return float64(p.X), float64(p.Y)
}

// finish closes the builder, orients the shape so that filled regions are
// inside and logs the result.
func finish(b *Builder, source string, gid int) *msdf.Shape {
	s := b.Shape()
	s.OrientContours()
	msdf.Logger().Debug("msdf: outline converted",
		"source", source,
		"glyph", gid,
		"contours", len(s.Contours),
		"edges", s.EdgeCount())
	return s
}
