package msdf

import "math"

// CombinerKind selects how the distances of individual contours are
// combined into the distance of the shape.
type CombinerKind uint8

const (
	// CombinerSimple treats all edges of the shape as one set and returns
	// the nearest. It is correct for shapes whose contours do not overlap.
	CombinerSimple CombinerKind = iota

	// CombinerOverlapping resolves each contour separately and combines
	// the results using contour windings, so that overlapping contours of
	// the same orientation fill their union without seams.
	CombinerOverlapping
)

// String returns a string representation of the combiner kind.
func (k CombinerKind) String() string {
	switch k {
	case CombinerSimple:
		return "Simple"
	case CombinerOverlapping:
		return "Overlapping"
	default:
		return "Unknown"
	}
}

// ContourCombiner hands out edge selectors for the contours of a shape and
// combines their results for one query point at a time.
type ContourCombiner struct {
	kind  CombinerKind
	field FieldKind
	p     Vector2

	// shape is the single selector used by CombinerSimple.
	shape EdgeSelector

	// contours and windings are used by CombinerOverlapping; distances
	// holds the per-contour results of the current query.
	contours  []EdgeSelector
	windings  []int
	distances []Distance
}

// NewContourCombiner creates a combiner of the given kind for shape.
// The shape must not change while the combiner is in use.
func NewContourCombiner(kind CombinerKind, field FieldKind, shape *Shape) *ContourCombiner {
	c := &ContourCombiner{kind: kind, field: field}
	switch kind {
	case CombinerSimple:
		c.shape = NewEdgeSelector(field)
	case CombinerOverlapping:
		c.contours = make([]EdgeSelector, len(shape.Contours))
		c.windings = make([]int, len(shape.Contours))
		c.distances = make([]Distance, len(shape.Contours))
		for i := range shape.Contours {
			c.contours[i] = NewEdgeSelector(field)
			c.windings[i] = shape.Contours[i].Winding()
		}
	}
	return c
}

// Kind returns the combiner kind.
func (c *ContourCombiner) Kind() CombinerKind {
	return c.kind
}

// Reset prepares the combiner for a query at p.
func (c *ContourCombiner) Reset(p Vector2) {
	c.p = p
	switch c.kind {
	case CombinerSimple:
		c.shape.Reset(p)
	case CombinerOverlapping:
		for i := range c.contours {
			c.contours[i].Reset(p)
		}
	}
}

// Selector returns the selector that receives the edges of contour i.
func (c *ContourCombiner) Selector(i int) *EdgeSelector {
	if c.kind == CombinerSimple {
		return &c.shape
	}
	return &c.contours[i]
}

// Distance combines the selectors into the distance of the shape at the
// point passed to Reset.
func (c *ContourCombiner) Distance() Distance {
	if c.kind == CombinerSimple {
		return c.shape.Distance()
	}
	return c.overlappingDistance()
}

// newSelectorAt returns an empty selector positioned at p, so that its
// first Reset does not widen anything.
func newSelectorAt(field FieldKind, p Vector2) EdgeSelector {
	s := NewEdgeSelector(field)
	s.p = p
	return s
}

// overlappingDistance picks between the nearest inner contour (filled side
// facing the point) and the nearest outer contour, then lets contours of
// the opposite winding override it when they agree in sign and are closer.
// Inside is negative: a counter-clockwise contour (winding +1) is inner
// when the point lies inside it.
func (c *ContourCombiner) overlappingDistance() Distance {
	shapeSelector := newSelectorAt(c.field, c.p)
	innerSelector := newSelectorAt(c.field, c.p)
	outerSelector := newSelectorAt(c.field, c.p)

	for i := range c.contours {
		c.distances[i] = c.contours[i].Distance()
		d := c.distances[i].Resolve()
		shapeSelector.Merge(&c.contours[i])
		if c.windings[i] > 0 && d <= 0 {
			innerSelector.Merge(&c.contours[i])
		}
		if c.windings[i] < 0 && d >= 0 {
			outerSelector.Merge(&c.contours[i])
		}
	}

	shapeDistance := shapeSelector.Distance()
	innerDistance := innerSelector.Distance()
	outerDistance := outerSelector.Distance()
	innerScalar := innerDistance.Resolve()
	outerScalar := outerDistance.Resolve()

	var distance Distance
	var winding int
	switch {
	case innerScalar <= 0 && math.Abs(innerScalar) <= math.Abs(outerScalar):
		distance = innerDistance
		winding = 1
		for i := range c.contours {
			if c.windings[i] <= 0 {
				continue
			}
			cd := c.distances[i]
			r := cd.Resolve()
			if math.Abs(r) < math.Abs(outerScalar) && r < distance.Resolve() {
				distance = cd
			}
		}
	case outerScalar >= 0 && math.Abs(outerScalar) < math.Abs(innerScalar):
		distance = outerDistance
		winding = -1
		for i := range c.contours {
			if c.windings[i] >= 0 {
				continue
			}
			cd := c.distances[i]
			r := cd.Resolve()
			if math.Abs(r) < math.Abs(innerScalar) && r > distance.Resolve() {
				distance = cd
			}
		}
	default:
		return shapeDistance
	}

	for i := range c.contours {
		if c.windings[i] == winding {
			continue
		}
		cd := c.distances[i]
		r := cd.Resolve()
		current := distance.Resolve()
		if r*current >= 0 && math.Abs(r) < math.Abs(current) {
			distance = cd
		}
	}
	if distance.Resolve() == shapeDistance.Resolve() {
		distance = shapeDistance
	}
	return distance
}
