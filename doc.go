// Package msdf generates multi-channel signed distance fields from vector
// outlines.
//
// A signed distance field stores, for every texel, the distance to the
// nearest point of a shape's outline. Sampled with bilinear filtering it
// reproduces smooth edges at any magnification, but rounds off corners.
// A multi-channel field (MSDF) assigns each edge to two of three color
// channels so that at every corner two channels see different edges; the
// median of the channels then reconstructs the sharp corner.
//
// # Pipeline
//
//  1. Build a Shape of closed contours made of linear, quadratic and cubic
//     edges (see the outline package for font and path converters).
//  2. Normalize the shape and orient its contours.
//  3. Color its edges with ColorEdgesSimple or ColorEdgesInkTrap.
//  4. Generate a field with GenerateSDF, GeneratePSDF, GenerateMSDF or
//     GenerateMTSDF. Multi-channel generators run error correction.
//
// # Conventions
//
// Distances are negative inside the shape and positive outside. Filled
// regions are bounded by counter-clockwise contours (in Y-up coordinates);
// Shape.OrientContours fixes outlines that use the opposite convention.
// Field values are distances mapped so that the configured Range lands on
// [-0.5, 0.5], with the edge at 0.
//
// # Usage
//
//	shape := msdf.NewShape()
//	c := shape.AddContour()
//	c.AddEdge(msdf.NewLinearEdge(msdf.V2(0, 0), msdf.V2(10, 0)))
//	c.AddEdge(msdf.NewLinearEdge(msdf.V2(10, 0), msdf.V2(10, 10)))
//	c.AddEdge(msdf.NewLinearEdge(msdf.V2(10, 10), msdf.V2(0, 10)))
//	c.AddEdge(msdf.NewLinearEdge(msdf.V2(0, 10), msdf.V2(0, 0)))
//
//	shape.Normalize()
//	msdf.ColorEdgesSimple(shape, 3, 0)
//
//	out := msdf.NewBitmap[float32](32, 32, 3)
//	t := msdf.NewTransformation(
//	    msdf.NewProjection(msdf.V2(2.5, 2.5), msdf.V2(1.6, 1.6)),
//	    msdf.SymmetricRange(2),
//	)
//	if err := msdf.GenerateMSDF(out, shape, t, msdf.DefaultMSDFGeneratorConfig()); err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// Generators split the output into bands of rows processed in parallel.
// A shape must not be modified once generation starts; a finished shape is
// safe to share between goroutines. ShapeDistanceFinder, ContourCombiner
// and EdgeSelector keep per-query state and belong to one goroutine.
//
// # References
//
//   - msdfgen: https://github.com/Chlumsky/msdfgen
//   - "Shape Decomposition for Multi-channel Distance Fields", V. Chlumský
package msdf
