package msdf

// ShapeDistanceFinder answers distance queries against a shape.
//
// A finder owns per-edge caches that speed up queries at nearby points, so
// it is most effective when points are visited in scanline order. A finder
// must not be used from more than one goroutine; create one per worker.
type ShapeDistanceFinder struct {
	combiner *ContourCombiner
	caches   []EdgeCache

	// contours holds the edges of each contour, zero-length ones excluded.
	contours [][]*EdgeSegment
}

// NewShapeDistanceFinder creates a finder that computes distances of the
// given field kind, combining contours as selected by combiner.
// The shape must not change while the finder is in use.
func NewShapeDistanceFinder(shape *Shape, field FieldKind, combiner CombinerKind) *ShapeDistanceFinder {
	f := &ShapeDistanceFinder{
		combiner: NewContourCombiner(combiner, field, shape),
		contours: make([][]*EdgeSegment, len(shape.Contours)),
	}
	n := 0
	for i := range shape.Contours {
		edges := shape.Contours[i].Edges
		for j := range edges {
			if !edges[j].IsDegenerate() {
				f.contours[i] = append(f.contours[i], &edges[j])
			}
		}
		n += len(f.contours[i])
	}
	f.caches = make([]EdgeCache, n)
	return f
}

// Distance returns the distance from origin to the shape.
func (f *ShapeDistanceFinder) Distance(origin Vector2) Distance {
	f.combiner.Reset(origin)
	ci := 0
	for i, edges := range f.contours {
		n := len(edges)
		if n == 0 {
			continue
		}
		selector := f.combiner.Selector(i)
		prev := edges[0]
		if n >= 2 {
			prev = edges[n-2]
		}
		cur := edges[n-1]
		for _, next := range edges {
			selector.AddEdge(&f.caches[ci], prev, cur, next)
			ci++
			prev, cur = cur, next
		}
	}
	return f.combiner.Distance()
}

// OneShotDistance computes a single distance without keeping a finder.
func OneShotDistance(shape *Shape, field FieldKind, combiner CombinerKind, origin Vector2) Distance {
	return NewShapeDistanceFinder(shape, field, combiner).Distance(origin)
}
