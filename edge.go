package msdf

import "math"

// EdgeType classifies edge segments by their geometric type.
type EdgeType uint8

const (
	// EdgeLinear is a straight line segment between two points.
	EdgeLinear EdgeType = iota

	// EdgeQuadratic is a quadratic Bezier curve (one control point).
	EdgeQuadratic

	// EdgeCubic is a cubic Bezier curve (two control points).
	EdgeCubic
)

// String returns a string representation of the edge type.
func (t EdgeType) String() string {
	switch t {
	case EdgeLinear:
		return "Linear"
	case EdgeQuadratic:
		return "Quadratic"
	case EdgeCubic:
		return "Cubic"
	default:
		return "Unknown"
	}
}

// order returns the degree of the curve.
func (t EdgeType) order() int {
	return int(t) + 1
}

// EdgeColor determines which RGB channels an edge contributes to.
// Different colors at corners preserve sharpness in MSDF.
type EdgeColor uint8

const (
	// ColorBlack means the edge contributes to no channels.
	ColorBlack EdgeColor = 0

	// ColorRed means the edge contributes to the red channel.
	ColorRed EdgeColor = 1

	// ColorGreen means the edge contributes to the green channel.
	ColorGreen EdgeColor = 2

	// ColorBlue means the edge contributes to the blue channel.
	ColorBlue EdgeColor = 4

	// ColorYellow combines red and green channels.
	ColorYellow = ColorRed | ColorGreen

	// ColorCyan combines green and blue channels.
	ColorCyan = ColorGreen | ColorBlue

	// ColorMagenta combines red and blue channels.
	ColorMagenta = ColorRed | ColorBlue

	// ColorWhite means the edge contributes to all channels.
	ColorWhite = ColorRed | ColorGreen | ColorBlue
)

// String returns a string representation of the edge color.
func (c EdgeColor) String() string {
	switch c {
	case ColorBlack:
		return "Black"
	case ColorRed:
		return "Red"
	case ColorGreen:
		return "Green"
	case ColorBlue:
		return "Blue"
	case ColorYellow:
		return "Yellow"
	case ColorCyan:
		return "Cyan"
	case ColorMagenta:
		return "Magenta"
	case ColorWhite:
		return "White"
	default:
		return "Unknown"
	}
}

// HasRed returns true if the color includes the red channel.
func (c EdgeColor) HasRed() bool { return c&ColorRed != 0 }

// HasGreen returns true if the color includes the green channel.
func (c EdgeColor) HasGreen() bool { return c&ColorGreen != 0 }

// HasBlue returns true if the color includes the blue channel.
func (c EdgeColor) HasBlue() bool { return c&ColorBlue != 0 }

// isSingleChannel reports whether exactly one channel bit is set.
func (c EdgeColor) isSingleChannel() bool {
	return c == ColorRed || c == ColorGreen || c == ColorBlue
}

// EdgeSegment is a single edge of a contour.
//
// It is a closed tagged union over line, quadratic and cubic segments:
// every geometric operation switches exhaustively on Type.
type EdgeSegment struct {
	// Type is the geometric type of this edge.
	Type EdgeType

	// Points contains the control and end points for this edge.
	// Linear: P0 (start), P1 (end)
	// Quadratic: P0 (start), P1 (control), P2 (end)
	// Cubic: P0 (start), P1 (control1), P2 (control2), P3 (end)
	Points [4]Vector2

	// Color determines which channels this edge affects.
	Color EdgeColor
}

// NewLinearEdge creates a new white linear edge from start to end.
func NewLinearEdge(start, end Vector2) EdgeSegment {
	return EdgeSegment{
		Type:   EdgeLinear,
		Points: [4]Vector2{start, end},
		Color:  ColorWhite,
	}
}

// NewQuadraticEdge creates a new white quadratic Bezier edge.
// A control point coinciding with an end point is moved to the midpoint.
func NewQuadraticEdge(start, control, end Vector2) EdgeSegment {
	if control == start || control == end {
		control = start.Lerp(end, 0.5)
	}
	return EdgeSegment{
		Type:   EdgeQuadratic,
		Points: [4]Vector2{start, control, end},
		Color:  ColorWhite,
	}
}

// NewCubicEdge creates a new white cubic Bezier edge.
// If both control points coincide with end points, they are spread
// evenly along the chord.
func NewCubicEdge(start, control1, control2, end Vector2) EdgeSegment {
	if (control1 == start || control1 == end) && (control2 == start || control2 == end) {
		control1 = start.Lerp(end, 1.0/3)
		control2 = start.Lerp(end, 2.0/3)
	}
	return EdgeSegment{
		Type:   EdgeCubic,
		Points: [4]Vector2{start, control1, control2, end},
		Color:  ColorWhite,
	}
}

// ControlPoints returns the points that define the edge, end points included.
func (e *EdgeSegment) ControlPoints() []Vector2 {
	return e.Points[:e.Type.order()+1]
}

// IsDegenerate reports whether all control points of the edge coincide,
// making it a zero-length segment.
func (e *EdgeSegment) IsDegenerate() bool {
	for _, p := range e.ControlPoints()[1:] {
		if p != e.Points[0] {
			return false
		}
	}
	return true
}

// StartPoint returns the starting point of the edge.
func (e *EdgeSegment) StartPoint() Vector2 {
	return e.Points[0]
}

// EndPoint returns the ending point of the edge.
func (e *EdgeSegment) EndPoint() Vector2 {
	switch e.Type {
	case EdgeLinear:
		return e.Points[1]
	case EdgeQuadratic:
		return e.Points[2]
	case EdgeCubic:
		return e.Points[3]
	}
	return e.Points[0]
}

// Point evaluates the edge at parameter t in [0, 1].
func (e *EdgeSegment) Point(t float64) Vector2 {
	p := &e.Points
	switch e.Type {
	case EdgeLinear:
		return p[0].Lerp(p[1], t)
	case EdgeQuadratic:
		return p[0].Lerp(p[1], t).Lerp(p[1].Lerp(p[2], t), t)
	case EdgeCubic:
		p12 := p[1].Lerp(p[2], t)
		return p[0].Lerp(p[1], t).Lerp(p12, t).Lerp(p12.Lerp(p[2].Lerp(p[3], t), t), t)
	}
	return p[0]
}

// Direction returns the tangent direction at parameter t.
// Degenerate tangents at the end points fall back to the direction
// towards the next distinct control point.
func (e *EdgeSegment) Direction(t float64) Vector2 {
	p := &e.Points
	switch e.Type {
	case EdgeLinear:
		return p[1].Sub(p[0])
	case EdgeQuadratic:
		tangent := p[1].Sub(p[0]).Lerp(p[2].Sub(p[1]), t)
		if tangent.IsZero() {
			return p[2].Sub(p[0])
		}
		return tangent
	case EdgeCubic:
		tangent := p[1].Sub(p[0]).Lerp(p[2].Sub(p[1]), t).Lerp(p[2].Sub(p[1]).Lerp(p[3].Sub(p[2]), t), t)
		if tangent.IsZero() {
			if t == 0 {
				return p[2].Sub(p[0])
			}
			if t == 1 {
				return p[3].Sub(p[1])
			}
		}
		return tangent
	}
	return Vector2{}
}

// DirectionChange returns the change of direction (second derivative,
// up to a constant factor) at parameter t.
func (e *EdgeSegment) DirectionChange(t float64) Vector2 {
	p := &e.Points
	switch e.Type {
	case EdgeQuadratic:
		return p[2].Sub(p[1]).Sub(p[1].Sub(p[0]))
	case EdgeCubic:
		return p[2].Sub(p[1]).Sub(p[1].Sub(p[0])).Lerp(p[3].Sub(p[2]).Sub(p[2].Sub(p[1])), t)
	}
	return Vector2{}
}

// Length returns the arc length of the edge. Curves use a fixed
// 16-step polyline approximation.
func (e *EdgeSegment) Length() float64 {
	if e.Type == EdgeLinear {
		return e.Points[1].Sub(e.Points[0]).Length()
	}
	return e.estimateLength(16)
}

func (e *EdgeSegment) estimateLength(steps int) float64 {
	var length float64
	prev := e.Point(0)
	for i := 1; i <= steps; i++ {
		cur := e.Point(float64(i) / float64(steps))
		length += cur.Sub(prev).Length()
		prev = cur
	}
	return length
}

// SignedDistance calculates the signed distance from origin to this edge.
// It also returns the curve parameter of the closest point, which lies
// outside [0, 1] when the closest point is an end point approached from
// beyond the edge.
func (e *EdgeSegment) SignedDistance(origin Vector2) (SignedDistance, float64) {
	switch e.Type {
	case EdgeLinear:
		return e.linearSignedDistance(origin)
	case EdgeQuadratic:
		return e.quadraticSignedDistance(origin)
	case EdgeCubic:
		return e.cubicSignedDistance(origin)
	}
	return InfiniteDistance(), 0
}

func (e *EdgeSegment) linearSignedDistance(origin Vector2) (SignedDistance, float64) {
	p := &e.Points
	aq := origin.Sub(p[0])
	ab := p[1].Sub(p[0])
	var param float64
	if l := ab.Dot(ab); l != 0 {
		param = aq.Dot(ab) / l
	}
	eq := p[0].Sub(origin)
	if param > 0.5 {
		eq = p[1].Sub(origin)
	}
	endpointDistance := eq.Length()
	if param > 0 && param < 1 {
		orthoDistance := ab.Orthonormal(false, false).Dot(aq)
		if math.Abs(orthoDistance) < endpointDistance {
			return SignedDistance{Distance: orthoDistance}, param
		}
	}
	return SignedDistance{
		Distance: nonZeroSign(aq.Cross(ab)) * endpointDistance,
		Dot:      math.Abs(ab.Normalize(false).Dot(eq.Normalize(false))),
	}, param
}

func (e *EdgeSegment) quadraticSignedDistance(origin Vector2) (SignedDistance, float64) {
	p := &e.Points
	qa := p[0].Sub(origin)
	ab := p[1].Sub(p[0])
	br := p[2].Sub(p[1]).Sub(ab)
	a := br.Dot(br)
	b := 3 * ab.Dot(br)
	c := 2*ab.Dot(ab) + qa.Dot(br)
	d := qa.Dot(ab)
	n, t := SolveCubic(a, b, c, d)

	epDir := e.Direction(0)
	minDistance := nonZeroSign(epDir.Cross(qa)) * qa.Length()
	param := -qa.Dot(epDir) / epDir.Dot(epDir)
	if distance := p[2].Sub(origin).Length(); distance < math.Abs(minDistance) {
		epDir = e.Direction(1)
		minDistance = nonZeroSign(epDir.Cross(p[2].Sub(origin))) * distance
		param = origin.Sub(p[1]).Dot(epDir) / epDir.Dot(epDir)
	}
	for i := 0; i < n; i++ {
		if t[i] > 0 && t[i] < 1 {
			qe := qa.Add(ab.Mul(2 * t[i])).Add(br.Mul(t[i] * t[i]))
			distance := qe.Length()
			if distance <= math.Abs(minDistance) {
				minDistance = nonZeroSign(ab.Add(br.Mul(t[i])).Cross(qe)) * distance
				param = t[i]
			}
		}
	}
	return e.endpointAwareDistance(origin, minDistance, param, p[2]), param
}

// Cubic closest-point search settings: Newton iterations are started from
// cubicSearchStarts+1 evenly spaced parameters.
const (
	cubicSearchStarts = 8
	cubicSearchSteps  = 8
)

func (e *EdgeSegment) cubicSignedDistance(origin Vector2) (SignedDistance, float64) {
	p := &e.Points
	qa := p[0].Sub(origin)
	ab := p[1].Sub(p[0])
	br := p[2].Sub(p[1]).Sub(ab)
	as := p[3].Sub(p[2]).Sub(p[2].Sub(p[1])).Sub(br)

	epDir := e.Direction(0)
	minDistance := nonZeroSign(epDir.Cross(qa)) * qa.Length()
	param := -qa.Dot(epDir) / epDir.Dot(epDir)
	if distance := p[3].Sub(origin).Length(); distance < math.Abs(minDistance) {
		epDir = e.Direction(1)
		minDistance = nonZeroSign(epDir.Cross(p[3].Sub(origin))) * distance
		param = 1 + origin.Sub(p[3]).Dot(epDir)/epDir.Dot(epDir)
	}

	curve := func(t float64) (qe, d1 Vector2) {
		qe = qa.Add(ab.Mul(3 * t)).Add(br.Mul(3 * t * t)).Add(as.Mul(t * t * t))
		d1 = ab.Mul(3).Add(br.Mul(6 * t)).Add(as.Mul(3 * t * t))
		return qe, d1
	}
	newton := func(t float64, qe, d1 Vector2) float64 {
		d2 := br.Mul(6).Add(as.Mul(6 * t))
		return t - qe.Dot(d1)/(d1.Dot(d1)+qe.Dot(d2))
	}

	for i := 0; i <= cubicSearchStarts; i++ {
		t := float64(i) / cubicSearchStarts
		qe, d1 := curve(t)
		improved := newton(t, qe, d1)
		if !(improved > 0 && improved < 1) {
			continue
		}
		for step := cubicSearchSteps; ; {
			t = improved
			qe, d1 = curve(t)
			step--
			if step == 0 {
				break
			}
			improved = newton(t, qe, d1)
			if !(improved > 0 && improved < 1) {
				break
			}
		}
		if distance := qe.Length(); distance < math.Abs(minDistance) {
			minDistance = nonZeroSign(d1.Cross(qe)) * distance
			param = t
		}
	}
	return e.endpointAwareDistance(origin, minDistance, param, p[3]), param
}

// endpointAwareDistance attaches the orthogonality score when the closest
// point is one of the end points.
func (e *EdgeSegment) endpointAwareDistance(origin Vector2, distance, param float64, end Vector2) SignedDistance {
	if param >= 0 && param <= 1 {
		return SignedDistance{Distance: distance}
	}
	if param < 0.5 {
		return SignedDistance{
			Distance: distance,
			Dot:      math.Abs(e.Direction(0).Normalize(false).Dot(e.Points[0].Sub(origin).Normalize(false))),
		}
	}
	return SignedDistance{
		Distance: distance,
		Dot:      math.Abs(e.Direction(1).Normalize(false).Dot(end.Sub(origin).Normalize(false))),
	}
}

// DistanceToPerpendicularDistance converts a distance measured to an end
// point into the distance to the edge's tangent line extended past that
// end point, if the origin lies beyond it and the result is not farther.
func (e *EdgeSegment) DistanceToPerpendicularDistance(distance *SignedDistance, origin Vector2, param float64) {
	switch {
	case param < 0:
		dir := e.Direction(0).Normalize(false)
		aq := origin.Sub(e.Point(0))
		if aq.Dot(dir) < 0 {
			perpendicular := aq.Cross(dir)
			if math.Abs(perpendicular) <= math.Abs(distance.Distance) {
				distance.Distance = perpendicular
				distance.Dot = 0
			}
		}
	case param > 1:
		dir := e.Direction(1).Normalize(false)
		bq := origin.Sub(e.Point(1))
		if bq.Dot(dir) > 0 {
			perpendicular := bq.Cross(dir)
			if math.Abs(perpendicular) <= math.Abs(distance.Distance) {
				distance.Distance = perpendicular
				distance.Dot = 0
			}
		}
	}
}

// Bound grows r to contain the edge.
func (e *EdgeSegment) Bound(r *Rect) {
	p := &e.Points
	switch e.Type {
	case EdgeLinear:
		r.Include(p[0])
		r.Include(p[1])
	case EdgeQuadratic:
		r.Include(p[0])
		r.Include(p[2])
		bot := p[1].Sub(p[0]).Sub(p[2].Sub(p[1]))
		if bot.X != 0 {
			if t := (p[1].X - p[0].X) / bot.X; t > 0 && t < 1 {
				r.Include(e.Point(t))
			}
		}
		if bot.Y != 0 {
			if t := (p[1].Y - p[0].Y) / bot.Y; t > 0 && t < 1 {
				r.Include(e.Point(t))
			}
		}
	case EdgeCubic:
		r.Include(p[0])
		r.Include(p[3])
		a0 := p[1].Sub(p[0])
		a1 := p[2].Sub(p[1]).Sub(a0).Mul(2)
		a2 := p[3].Sub(p[2].Mul(3)).Add(p[1].Mul(3)).Sub(p[0])
		for _, axis := range [2][3]float64{{a2.X, a1.X, a0.X}, {a2.Y, a1.Y, a0.Y}} {
			n, ts := SolveQuadratic(axis[0], axis[1], axis[2])
			for i := 0; i < n; i++ {
				if ts[i] > 0 && ts[i] < 1 {
					r.Include(e.Point(ts[i]))
				}
			}
		}
	}
}

// Bounds returns the bounding box of the edge.
func (e *EdgeSegment) Bounds() Rect {
	r := EmptyRect()
	e.Bound(&r)
	return r
}

// Reverse flips the direction of the edge in place.
func (e *EdgeSegment) Reverse() {
	p := &e.Points
	switch e.Type {
	case EdgeLinear:
		p[0], p[1] = p[1], p[0]
	case EdgeQuadratic:
		p[0], p[2] = p[2], p[0]
	case EdgeCubic:
		p[0], p[3] = p[3], p[0]
		p[1], p[2] = p[2], p[1]
	}
}

// MoveStartPoint moves the start point of the edge to the given point,
// adjusting control points to preserve the start tangent where possible.
func (e *EdgeSegment) MoveStartPoint(to Vector2) {
	p := &e.Points
	switch e.Type {
	case EdgeLinear:
		p[0] = to
	case EdgeQuadratic:
		origSDir := p[0].Sub(p[1])
		origP1 := p[1]
		p[1] = p[1].Add(p[2].Sub(p[1]).Mul(p[0].Sub(p[1]).Cross(to.Sub(p[0])) / p[0].Sub(p[1]).Cross(p[2].Sub(p[1]))))
		p[0] = to
		if origSDir.Dot(p[0].Sub(p[1])) < 0 {
			p[1] = origP1
		}
	case EdgeCubic:
		p[1] = p[1].Add(to.Sub(p[0]))
		p[0] = to
	}
}

// MoveEndPoint moves the end point of the edge to the given point,
// adjusting control points to preserve the end tangent where possible.
func (e *EdgeSegment) MoveEndPoint(to Vector2) {
	p := &e.Points
	switch e.Type {
	case EdgeLinear:
		p[1] = to
	case EdgeQuadratic:
		origEDir := p[2].Sub(p[1])
		origP1 := p[1]
		p[1] = p[1].Add(p[0].Sub(p[1]).Mul(p[2].Sub(p[1]).Cross(to.Sub(p[2])) / p[2].Sub(p[1]).Cross(p[0].Sub(p[1]))))
		p[2] = to
		if origEDir.Dot(p[2].Sub(p[1])) < 0 {
			p[1] = origP1
		}
	case EdgeCubic:
		p[2] = p[2].Add(to.Sub(p[3]))
		p[3] = to
	}
}

// SplitInThirds splits the edge into three edges of the same type and color
// covering the parameter ranges [0, 1/3], [1/3, 2/3] and [2/3, 1].
func (e *EdgeSegment) SplitInThirds() [3]EdgeSegment {
	p := &e.Points
	parts := [3]EdgeSegment{
		{Type: e.Type, Color: e.Color},
		{Type: e.Type, Color: e.Color},
		{Type: e.Type, Color: e.Color},
	}
	switch e.Type {
	case EdgeLinear:
		parts[0].Points = [4]Vector2{p[0], e.Point(1.0 / 3)}
		parts[1].Points = [4]Vector2{e.Point(1.0 / 3), e.Point(2.0 / 3)}
		parts[2].Points = [4]Vector2{e.Point(2.0 / 3), p[1]}
	case EdgeQuadratic:
		parts[0].Points = [4]Vector2{p[0], p[0].Lerp(p[1], 1.0/3), e.Point(1.0 / 3)}
		parts[1].Points = [4]Vector2{
			e.Point(1.0 / 3),
			p[0].Lerp(p[1], 5.0/9).Lerp(p[1].Lerp(p[2], 4.0/9), 0.5),
			e.Point(2.0 / 3),
		}
		parts[2].Points = [4]Vector2{e.Point(2.0 / 3), p[1].Lerp(p[2], 2.0/3), p[2]}
	case EdgeCubic:
		c1 := p[0].Lerp(p[1], 1.0/3)
		if p[0] == p[1] {
			c1 = p[0]
		}
		c2 := p[2].Lerp(p[3], 2.0/3)
		if p[2] == p[3] {
			c2 = p[3]
		}
		parts[0].Points = [4]Vector2{
			p[0],
			c1,
			p[0].Lerp(p[1], 1.0/3).Lerp(p[1].Lerp(p[2], 1.0/3), 1.0/3),
			e.Point(1.0 / 3),
		}
		parts[1].Points = [4]Vector2{
			e.Point(1.0 / 3),
			p[0].Lerp(p[1], 1.0/3).Lerp(p[1].Lerp(p[2], 1.0/3), 1.0/3).
				Lerp(p[1].Lerp(p[2], 1.0/3).Lerp(p[2].Lerp(p[3], 1.0/3), 1.0/3), 2.0/3),
			p[0].Lerp(p[1], 2.0/3).Lerp(p[1].Lerp(p[2], 2.0/3), 2.0/3).
				Lerp(p[1].Lerp(p[2], 2.0/3).Lerp(p[2].Lerp(p[3], 2.0/3), 2.0/3), 1.0/3),
			e.Point(2.0 / 3),
		}
		parts[2].Points = [4]Vector2{
			e.Point(2.0 / 3),
			p[1].Lerp(p[2], 2.0/3).Lerp(p[2].Lerp(p[3], 2.0/3), 2.0/3),
			c2,
			p[3],
		}
	}
	return parts
}

// toCubic converts a quadratic edge to an equivalent cubic edge in place.
func (e *EdgeSegment) toCubic() {
	if e.Type != EdgeQuadratic {
		return
	}
	p := e.Points
	e.Type = EdgeCubic
	e.Points = [4]Vector2{p[0], p[0].Lerp(p[1], 2.0/3), p[1].Lerp(p[2], 1.0/3), p[2]}
}
