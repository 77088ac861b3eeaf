package outline

import (
	"fmt"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/msdf"
)

// Typesetting loads the outline of glyph gid from a go-text face, in font
// units with Y growing upwards. Variable fonts use the face's current
// variation coordinates.
//
// A font.Face is not safe for concurrent use; callers that convert glyphs
// in parallel need one face per goroutine.
func Typesetting(face *font.Face, gid font.GID) (*msdf.Shape, error) {
	data, ok := face.GlyphData(gid).(font.GlyphOutline)
	if !ok {
		return nil, fmt.Errorf("%w: glyph %d", ErrNoOutline, gid)
	}

	b := NewBuilder(1, msdf.YUpward)
	for _, seg := range data.Segments {
		a := seg.Args
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			b.MoveTo(float64(a[0].X), float64(a[0].Y))
		case opentype.SegmentOpLineTo:
			b.LineTo(float64(a[0].X), float64(a[0].Y))
		case opentype.SegmentOpQuadTo:
			b.QuadTo(float64(a[0].X), float64(a[0].Y), float64(a[1].X), float64(a[1].Y))
		case opentype.SegmentOpCubeTo:
			b.CubicTo(float64(a[0].X), float64(a[0].Y),
				float64(a[1].X), float64(a[1].Y),
				float64(a[2].X), float64(a[2].Y))
		}
	}
	return finish(b, "typesetting", int(gid)), nil
}

// TypesettingRune is Typesetting for the glyph the face maps r to.
func TypesettingRune(face *font.Face, r rune) (*msdf.Shape, error) {
	gid, ok := face.NominalGlyph(r)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrGlyphNotFound, r)
	}
	return Typesetting(face, gid)
}
