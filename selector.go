package msdf

import "math"

// FieldKind selects the kind of distance field and, with it, the edge
// selector used to answer per-pixel distance queries.
type FieldKind uint8

const (
	// FieldSDF is a single-channel field of true Euclidean distances.
	FieldSDF FieldKind = iota

	// FieldPSDF is a single-channel field of perpendicular distances:
	// beyond the ends of an edge, distances are measured to its extended
	// tangent line.
	FieldPSDF

	// FieldMSDF is a three-channel field where each channel only sees
	// edges of its color.
	FieldMSDF

	// FieldMTSDF is FieldMSDF with the true distance in a fourth channel.
	FieldMTSDF
)

// String returns a string representation of the field kind.
func (k FieldKind) String() string {
	switch k {
	case FieldSDF:
		return "SDF"
	case FieldPSDF:
		return "PSDF"
	case FieldMSDF:
		return "MSDF"
	case FieldMTSDF:
		return "MTSDF"
	default:
		return "Unknown"
	}
}

// Channels returns the number of output channels of the field kind.
func (k FieldKind) Channels() int {
	switch k {
	case FieldMSDF:
		return 3
	case FieldMTSDF:
		return 4
	default:
		return 1
	}
}

// distanceDeltaFactor widens cached distances by the distance the query
// point moved, so that an edge is only skipped when it provably cannot win.
const distanceDeltaFactor = 1.001

// EdgeCache remembers the result of the last query against one edge so
// that nearby queries can skip it.
type EdgeCache struct {
	point                  Vector2
	absDistance            float64
	aDomainDistance        float64
	bDomainDistance        float64
	aPerpendicularDistance float64
	bPerpendicularDistance float64
}

// perpendicularSelector tracks the nearest edge for one channel together
// with the nearest perpendicular distances on either side.
type perpendicularSelector struct {
	minTrueDistance SignedDistance
	minNegativePerp float64
	minPositivePerp float64
	nearEdge        *EdgeSegment
	nearEdgeParam   float64
}

func newPerpendicularSelector() perpendicularSelector {
	sd := InfiniteDistance()
	return perpendicularSelector{
		minTrueDistance: sd,
		minNegativePerp: -math.Abs(sd.Distance),
		minPositivePerp: math.Abs(sd.Distance),
	}
}

func (s *perpendicularSelector) reset(delta float64) {
	s.minTrueDistance.Distance += nonZeroSign(s.minTrueDistance.Distance) * delta
	s.minNegativePerp = -math.Abs(s.minTrueDistance.Distance)
	s.minPositivePerp = math.Abs(s.minTrueDistance.Distance)
	s.nearEdge = nil
	s.nearEdgeParam = 0
}

func (s *perpendicularSelector) isEdgeRelevant(cache *EdgeCache, p Vector2) bool {
	delta := distanceDeltaFactor * p.Sub(cache.point).Length()
	return cache.absDistance-delta <= math.Abs(s.minTrueDistance.Distance) ||
		math.Abs(cache.aDomainDistance) < delta ||
		math.Abs(cache.bDomainDistance) < delta ||
		(cache.aDomainDistance > 0 && s.perpendicularInRange(cache.aPerpendicularDistance, delta)) ||
		(cache.bDomainDistance > 0 && s.perpendicularInRange(cache.bPerpendicularDistance, delta))
}

func (s *perpendicularSelector) perpendicularInRange(pd, delta float64) bool {
	if pd < 0 {
		return pd+delta >= s.minNegativePerp
	}
	return pd-delta <= s.minPositivePerp
}

func (s *perpendicularSelector) addTrueDistance(edge *EdgeSegment, distance SignedDistance, param float64) {
	if distance.Less(s.minTrueDistance) {
		s.minTrueDistance = distance
		s.nearEdge = edge
		s.nearEdgeParam = param
	}
}

func (s *perpendicularSelector) addPerpendicularDistance(distance float64) {
	if distance <= 0 && distance > s.minNegativePerp {
		s.minNegativePerp = distance
	}
	if distance >= 0 && distance < s.minPositivePerp {
		s.minPositivePerp = distance
	}
}

func (s *perpendicularSelector) merge(other *perpendicularSelector) {
	if other.minTrueDistance.Less(s.minTrueDistance) {
		s.minTrueDistance = other.minTrueDistance
		s.nearEdge = other.nearEdge
		s.nearEdgeParam = other.nearEdgeParam
	}
	if other.minNegativePerp > s.minNegativePerp {
		s.minNegativePerp = other.minNegativePerp
	}
	if other.minPositivePerp < s.minPositivePerp {
		s.minPositivePerp = other.minPositivePerp
	}
}

func (s *perpendicularSelector) computeDistance(p Vector2) float64 {
	minDistance := s.minPositivePerp
	if s.minTrueDistance.Distance < 0 {
		minDistance = s.minNegativePerp
	}
	if s.nearEdge != nil {
		distance := s.minTrueDistance
		s.nearEdge.DistanceToPerpendicularDistance(&distance, p, s.nearEdgeParam)
		if math.Abs(distance.Distance) < math.Abs(minDistance) {
			minDistance = distance.Distance
		}
	}
	return minDistance
}

// perpendicularDistance replaces distance with the perpendicular distance
// from an end point along dir (ep is the query point relative to the end
// point) when the query point lies beyond the end and the result is closer.
func perpendicularDistance(distance *float64, ep, dir Vector2) bool {
	if ep.Dot(dir) > 0 {
		pd := ep.Cross(dir)
		if math.Abs(pd) < math.Abs(*distance) {
			*distance = pd
			return true
		}
	}
	return false
}

// EdgeSelector accumulates the nearest edges to a query point.
//
// What it accumulates depends on its FieldKind. A selector is reused across
// queries: call Reset with the new point, AddEdge for every edge, then read
// Distance. Selectors are not safe for concurrent use.
type EdgeSelector struct {
	kind    FieldKind
	p       Vector2
	minTrue SignedDistance

	// channels holds the per-channel selectors: index 0 alone for
	// FieldPSDF, red, green and blue for FieldMSDF and FieldMTSDF.
	channels [3]perpendicularSelector
}

// NewEdgeSelector returns an empty selector for the given field kind.
func NewEdgeSelector(kind FieldKind) EdgeSelector {
	s := EdgeSelector{kind: kind, minTrue: InfiniteDistance()}
	for i := range s.channels {
		s.channels[i] = newPerpendicularSelector()
	}
	return s
}

// Kind returns the field kind of the selector.
func (s *EdgeSelector) Kind() FieldKind {
	return s.kind
}

// Reset prepares the selector for a query at p. Results of the previous
// query are kept but widened by the distance p moved, so that cached edges
// remain valid bounds.
func (s *EdgeSelector) Reset(p Vector2) {
	delta := distanceDeltaFactor * p.Sub(s.p).Length()
	switch s.kind {
	case FieldSDF:
		s.minTrue.Distance += nonZeroSign(s.minTrue.Distance) * delta
	case FieldPSDF:
		s.channels[0].reset(delta)
	case FieldMSDF, FieldMTSDF:
		for i := range s.channels {
			s.channels[i].reset(delta)
		}
	}
	s.p = p
}

// AddEdge offers edge to the selector. prev and next are the edges before
// and after it in its contour; cache belongs to edge and persists between
// queries.
func (s *EdgeSelector) AddEdge(cache *EdgeCache, prev, edge, next *EdgeSegment) {
	switch s.kind {
	case FieldSDF:
		s.addTrueDistanceEdge(cache, edge)
	case FieldPSDF:
		if s.channels[0].isEdgeRelevant(cache, s.p) {
			s.addPerpendicularEdge(cache, prev, edge, next, ColorWhite, true)
		}
	case FieldMSDF, FieldMTSDF:
		if (edge.Color.HasRed() && s.channels[0].isEdgeRelevant(cache, s.p)) ||
			(edge.Color.HasGreen() && s.channels[1].isEdgeRelevant(cache, s.p)) ||
			(edge.Color.HasBlue() && s.channels[2].isEdgeRelevant(cache, s.p)) {
			s.addPerpendicularEdge(cache, prev, edge, next, edge.Color, false)
		}
	}
}

func (s *EdgeSelector) addTrueDistanceEdge(cache *EdgeCache, edge *EdgeSegment) {
	delta := distanceDeltaFactor * s.p.Sub(cache.point).Length()
	if cache.absDistance-delta <= math.Abs(s.minTrue.Distance) {
		distance, _ := edge.SignedDistance(s.p)
		if distance.Less(s.minTrue) {
			s.minTrue = distance
		}
		cache.point = s.p
		cache.absDistance = math.Abs(distance.Distance)
	}
}

// addPerpendicularEdge evaluates edge and feeds the channels selected by
// color. With single set, only channel 0 is used regardless of color.
func (s *EdgeSelector) addPerpendicularEdge(cache *EdgeCache, prev, edge, next *EdgeSegment, color EdgeColor, single bool) {
	distance, param := edge.SignedDistance(s.p)
	s.forChannels(color, single, func(ch *perpendicularSelector) {
		ch.addTrueDistance(edge, distance, param)
	})
	cache.point = s.p
	cache.absDistance = math.Abs(distance.Distance)

	ap := s.p.Sub(edge.Point(0))
	bp := s.p.Sub(edge.Point(1))
	aDir := edge.Direction(0).Normalize(true)
	bDir := edge.Direction(1).Normalize(true)
	prevDir := prev.Direction(1).Normalize(true)
	nextDir := next.Direction(0).Normalize(true)
	add := ap.Dot(prevDir.Add(aDir).Normalize(true))
	bdd := -bp.Dot(bDir.Add(nextDir).Normalize(true))
	if add > 0 {
		pd := distance.Distance
		if perpendicularDistance(&pd, ap, aDir.Neg()) {
			pd = -pd
			s.forChannels(color, single, func(ch *perpendicularSelector) {
				ch.addPerpendicularDistance(pd)
			})
		}
		cache.aPerpendicularDistance = pd
	}
	if bdd > 0 {
		pd := distance.Distance
		if perpendicularDistance(&pd, bp, bDir) {
			s.forChannels(color, single, func(ch *perpendicularSelector) {
				ch.addPerpendicularDistance(pd)
			})
		}
		cache.bPerpendicularDistance = pd
	}
	cache.aDomainDistance = add
	cache.bDomainDistance = bdd
}

func (s *EdgeSelector) forChannels(color EdgeColor, single bool, fn func(*perpendicularSelector)) {
	if single {
		fn(&s.channels[0])
		return
	}
	if color.HasRed() {
		fn(&s.channels[0])
	}
	if color.HasGreen() {
		fn(&s.channels[1])
	}
	if color.HasBlue() {
		fn(&s.channels[2])
	}
}

// Merge folds the state of other, a selector of the same kind queried at
// the same point, into s.
func (s *EdgeSelector) Merge(other *EdgeSelector) {
	switch s.kind {
	case FieldSDF:
		if other.minTrue.Less(s.minTrue) {
			s.minTrue = other.minTrue
		}
	case FieldPSDF:
		s.channels[0].merge(&other.channels[0])
	case FieldMSDF, FieldMTSDF:
		for i := range s.channels {
			s.channels[i].merge(&other.channels[i])
		}
	}
}

// TrueDistance returns the nearest true signed distance seen so far.
func (s *EdgeSelector) TrueDistance() SignedDistance {
	switch s.kind {
	case FieldSDF:
		return s.minTrue
	case FieldPSDF:
		return s.channels[0].minTrueDistance
	}
	distance := s.channels[0].minTrueDistance
	for i := 1; i < len(s.channels); i++ {
		if s.channels[i].minTrueDistance.Less(distance) {
			distance = s.channels[i].minTrueDistance
		}
	}
	return distance
}

// Distance returns the accumulated distance for the current query.
func (s *EdgeSelector) Distance() Distance {
	switch s.kind {
	case FieldSDF:
		return uniformDistance(s.minTrue.Distance)
	case FieldPSDF:
		return uniformDistance(s.channels[0].computeDistance(s.p))
	}
	d := Distance{
		R: s.channels[0].computeDistance(s.p),
		G: s.channels[1].computeDistance(s.p),
		B: s.channels[2].computeDistance(s.p),
	}
	if s.kind == FieldMTSDF {
		d.A = s.TrueDistance().Distance
	} else {
		d.A = d.Resolve()
	}
	return d
}
