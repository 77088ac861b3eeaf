package msdf

import "math"

const (
	// cornerDotEpsilon bounds how close to anti-parallel two directions may
	// be before their edges are treated as convergent.
	cornerDotEpsilon = 1e-6

	// deconvergeOvershoot scales the push applied to convergent edges.
	deconvergeOvershoot = 1.11111111111111111
)

// Normalize prepares the shape for coloring and distance queries.
//
// Zero-length edges are dropped first. Contours consisting of a single edge are split into thirds so that they
// can carry three colors. In longer contours, adjacent edges that meet at an
// almost zero angle are pushed apart so that the distance at the corner is
// well defined.
func (s *Shape) Normalize() {
	for ci := range s.Contours {
		contour := &s.Contours[ci]
		contour.dropDegenerateEdges()
		if len(contour.Edges) == 1 {
			parts := contour.Edges[0].SplitInThirds()
			contour.Edges = append(contour.Edges[:0], parts[:]...)
			continue
		}
		if len(contour.Edges) == 0 {
			continue
		}
		prev := len(contour.Edges) - 1
		for cur := range contour.Edges {
			prevEdge, curEdge := &contour.Edges[prev], &contour.Edges[cur]
			prevDir := prevEdge.Direction(1).Normalize(false)
			curDir := curEdge.Direction(0).Normalize(false)
			if prevDir.Dot(curDir) < cornerDotEpsilon-1 {
				factor := deconvergeOvershoot * math.Sqrt(1-(cornerDotEpsilon-1)*(cornerDotEpsilon-1)) / (cornerDotEpsilon - 1)
				axis := curDir.Sub(prevDir).Normalize(false).Mul(factor)
				if ConvergentCurveOrdering(prevEdge, curEdge) < 0 {
					axis = axis.Neg()
				}
				deconvergeEdge(prevEdge, 1, axis.Orthogonal(true))
				deconvergeEdge(curEdge, 0, axis.Orthogonal(false))
			}
			prev = cur
		}
	}
}

// dropDegenerateEdges removes zero-length edges in place. Their neighbours
// already meet, so the contour stays closed.
func (c *Contour) dropDegenerateEdges() {
	edges := c.Edges[:0]
	for _, e := range c.Edges {
		if !e.IsDegenerate() {
			edges = append(edges, e)
		}
	}
	clear(c.Edges[len(edges):])
	c.Edges = edges
}

// deconvergeEdge moves the control point next to the given end of a curved
// edge (param 0 = start, 1 = end) along vector, scaled by its distance to
// that end. Quadratic edges are converted to cubic first; lines are left
// untouched.
func deconvergeEdge(e *EdgeSegment, param int, vector Vector2) {
	switch e.Type {
	case EdgeLinear:
		return
	case EdgeQuadratic:
		e.toCubic()
	}
	p := &e.Points
	switch param {
	case 0:
		p[1] = p[1].Add(vector.Mul(p[1].Sub(p[0]).Length()))
	case 1:
		p[2] = p[2].Add(vector.Mul(p[2].Sub(p[3]).Length()))
	}
}

// simplifyDegenerateCurve lowers the order of a curve whose control points
// coincide with its end points.
func simplifyDegenerateCurve(cp []Vector2, order int) int {
	if order == 3 && (cp[1] == cp[0] || cp[1] == cp[3]) && (cp[2] == cp[0] || cp[2] == cp[3]) {
		cp[1] = cp[3]
		order = 1
	}
	if order == 2 && (cp[1] == cp[0] || cp[1] == cp[2]) {
		cp[1] = cp[2]
		order = 1
	}
	if order == 1 && cp[0] == cp[1] {
		order = 0
	}
	return order
}

// ConvergentCurveOrdering determines on which side of edge a the edge b
// leaves their shared corner when the two are tangent there.
//
// It returns the sign of the lowest-order non-vanishing term of the cross
// product of the two curves' expansions around the corner, or 0 if the
// edges do not share the corner or the ordering cannot be determined.
func ConvergentCurveOrdering(a, b *EdgeSegment) int {
	aOrder := a.Type.order()
	bOrder := b.Type.order()
	var aCP, bCP [4]Vector2
	copy(aCP[:], a.ControlPoints())
	copy(bCP[:], b.ControlPoints())
	if aCP[aOrder] != bCP[0] {
		return 0
	}
	aOrder = simplifyDegenerateCurve(aCP[:], aOrder)
	bOrder = simplifyDegenerateCurve(bCP[:], bOrder)
	if aOrder == 0 || bOrder == 0 {
		return 0
	}

	// points holds a's control points before the corner at index 3,
	// followed by b's control points.
	var points [7]Vector2
	const corner = 3
	for i := 0; i < aOrder; i++ {
		points[corner-aOrder+i] = aCP[i]
	}
	for i := 0; i <= bOrder; i++ {
		points[corner+i] = bCP[i]
	}
	return convergentOrdering(points[:], corner, aOrder, bOrder)
}

func convergentOrdering(pts []Vector2, corner, before, after int) int {
	var a1, a2, a3, b1, b2, b3 Vector2
	a1 = pts[corner-1].Sub(pts[corner])
	b1 = pts[corner+1].Sub(pts[corner])
	if before >= 2 {
		a2 = pts[corner-2].Sub(pts[corner-1]).Sub(a1)
	}
	if after >= 2 {
		b2 = pts[corner+2].Sub(pts[corner+1]).Sub(b1)
	}
	if before >= 3 {
		a3 = pts[corner-3].Sub(pts[corner-2]).Sub(pts[corner-2].Sub(pts[corner-1])).Sub(a2)
		a2 = a2.Mul(3)
	}
	if after >= 3 {
		b3 = pts[corner+3].Sub(pts[corner+2]).Sub(pts[corner+2].Sub(pts[corner+1])).Sub(b2)
		b2 = b2.Mul(3)
	}
	a1 = a1.Mul(float64(before))
	b1 = b1.Mul(float64(after))

	if !a1.IsZero() && !b1.IsZero() {
		as := a1.Length()
		bs := b1.Length()
		if d := as*a1.Cross(b2) + bs*a2.Cross(b1); d != 0 {
			return sign(d)
		}
		if d := as*as*a1.Cross(b3) + as*bs*a2.Cross(b2) + bs*bs*a3.Cross(b1); d != 0 {
			return sign(d)
		}
		if d := as*a2.Cross(b3) + bs*a3.Cross(b2); d != 0 {
			return sign(d)
		}
		return sign(a3.Cross(b3))
	}

	s := 1
	if !a1.IsZero() {
		// Degenerate after the corner: swap sides and flip the result.
		b1 = a1
		a2, b2 = b2, a2
		a3, b3 = b3, a3
		s = -1
	}
	if !b1.IsZero() {
		if d := a3.Cross(b1); d != 0 {
			return s * sign(d)
		}
		if d := a2.Cross(b2); d != 0 {
			return s * sign(d)
		}
		if d := a3.Cross(b2); d != 0 {
			return s * sign(d)
		}
		if d := a2.Cross(b3); d != 0 {
			return s * sign(d)
		}
		return s * sign(a3.Cross(b3))
	}
	if d := math.Sqrt(a2.Length())*a2.Cross(b3) + math.Sqrt(b2.Length())*a3.Cross(b2); d != 0 {
		return sign(d)
	}
	return sign(a3.Cross(b3))
}
