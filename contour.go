package msdf

// Contour is a closed loop of edges. Each edge starts where the previous
// one ends, and the last edge ends where the first one starts.
type Contour struct {
	// Edges is the list of edges that form this contour.
	Edges []EdgeSegment
}

// AddEdge appends an edge to the contour.
func (c *Contour) AddEdge(e EdgeSegment) {
	c.Edges = append(c.Edges, e)
}

// Bound grows r to contain every edge of the contour.
func (c *Contour) Bound(r *Rect) {
	for i := range c.Edges {
		c.Edges[i].Bound(r)
	}
}

// Bounds returns the bounding box of all edges in the contour.
func (c *Contour) Bounds() Rect {
	r := EmptyRect()
	c.Bound(&r)
	return r
}

// signedArea returns twice the signed area of the polygon through the
// sampled points of the contour. Positive means counter-clockwise.
//
// Contours with one or two edges do not have enough end points to form a
// polygon, so they are sampled inside the edges instead.
func (c *Contour) signedArea() float64 {
	var pts []Vector2
	switch len(c.Edges) {
	case 0:
		return 0
	case 1:
		e := &c.Edges[0]
		pts = []Vector2{e.Point(0), e.Point(1.0 / 3), e.Point(2.0 / 3)}
	case 2:
		pts = []Vector2{
			c.Edges[0].Point(0), c.Edges[0].Point(0.5),
			c.Edges[1].Point(0), c.Edges[1].Point(0.5),
		}
	default:
		pts = make([]Vector2, len(c.Edges))
		for i := range c.Edges {
			pts[i] = c.Edges[i].Point(0)
		}
	}
	var total float64
	prev := pts[len(pts)-1]
	for _, cur := range pts {
		total += prev.Cross(cur)
		prev = cur
	}
	return total
}

// Winding returns the winding direction of the contour:
// 1 for counter-clockwise (filled), -1 for clockwise (hole), 0 if degenerate.
func (c *Contour) Winding() int {
	return sign(c.signedArea())
}

// Reverse flips the direction of the contour in place.
func (c *Contour) Reverse() {
	for i, j := 0, len(c.Edges)-1; i < j; i, j = i+1, j-1 {
		c.Edges[i], c.Edges[j] = c.Edges[j], c.Edges[i]
	}
	for i := range c.Edges {
		c.Edges[i].Reverse()
	}
}

// Clone creates a deep copy of the contour.
func (c *Contour) Clone() Contour {
	edges := make([]EdgeSegment, len(c.Edges))
	copy(edges, c.Edges)
	return Contour{Edges: edges}
}
