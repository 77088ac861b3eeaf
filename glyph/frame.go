package glyph

import (
	"github.com/gogpu/msdf"
)

// Frame places a shape inside a cell: shape coordinates p map to texel
// coordinates (p + Translate) * Scale.
type Frame struct {
	Scale     float64
	Translate msdf.Vector2

	// Range is the width of the distance range in shape units.
	Range float64
}

// AutoFrame fits bounds into a size x size cell, leaving half of pxRange
// texels of margin on every side and centering the shape on the axis with
// spare room.
func AutoFrame(bounds msdf.Rect, size int, pxRange float64) Frame {
	cell := float64(size)
	avail := cell - pxRange
	if avail <= 0 {
		avail = cell
	}

	w, h := bounds.Width(), bounds.Height()
	var scale float64
	switch {
	case w > 0 && h > 0:
		scale = min(avail/w, avail/h)
	case w > 0:
		scale = avail / w
	case h > 0:
		scale = avail / h
	default:
		scale = 1
	}

	// Centering: the cell spans size/scale shape units on each axis.
	translate := msdf.V2(
		.5*(cell/scale-w)-bounds.MinX,
		.5*(cell/scale-h)-bounds.MinY,
	)
	return Frame{Scale: scale, Translate: translate, Range: pxRange / scale}
}

// Transformation returns the msdf transformation of the frame.
func (f Frame) Transformation() msdf.Transformation {
	return msdf.NewTransformation(
		msdf.NewProjection(msdf.V2(f.Scale, f.Scale), f.Translate),
		msdf.SymmetricRange(f.Range),
	)
}

// ShapeToTexel converts shape coordinates to texel coordinates.
func (f Frame) ShapeToTexel(p msdf.Point2) msdf.Point2 {
	return p.Add(f.Translate).Mul(f.Scale)
}

// TexelToShape converts texel coordinates to shape coordinates.
func (f Frame) TexelToShape(p msdf.Point2) msdf.Point2 {
	return p.Mul(1 / f.Scale).Sub(f.Translate)
}
