// Package outline converts vector outlines from fonts and path iterators
// into msdf shapes.
//
// Every converter goes through Builder, which drops degenerate segments
// and closes open contours with a straight edge. Font converters also
// orient the result so that filled regions have negative distance.
//
// Supported sources:
//
//   - seehuhn.de/go/geom/path iterators (FromPath)
//   - golang.org/x/image/font/sfnt fonts (SFNT)
//   - github.com/go-text/typesetting faces (Typesetting)
//   - github.com/golang/freetype/truetype glyph buffers (TrueType)
package outline
