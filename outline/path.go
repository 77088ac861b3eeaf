package outline

import (
	"seehuhn.de/go/geom/path"

	"github.com/gogpu/msdf"
)

// FromPath builds a shape from a path iterator. Subpaths are closed
// whether or not the path contains an explicit close command.
func FromPath(p path.Path, yAxis msdf.Orientation) *msdf.Shape {
	b := NewBuilder(1, yAxis)
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			b.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			b.LineTo(pts[0].X, pts[0].Y)
		case path.CmdQuadTo:
			b.QuadTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)
		case path.CmdCubeTo:
			b.CubicTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			b.Close()
		}
	}
	return b.Shape()
}
