package msdf

import "math"

// SignedDistance is the result of a closest-point query against an edge.
type SignedDistance struct {
	// Distance is the signed Euclidean distance.
	// Negative = inside, Positive = outside.
	Distance float64

	// Dot is the orthogonality score of the approach direction, used to
	// break ties between edges at equal distance. Lower is more perpendicular.
	Dot float64
}

// InfiniteDistance returns the empty signed distance: infinitely far outside.
func InfiniteDistance() SignedDistance {
	return SignedDistance{Distance: math.MaxFloat64, Dot: 0}
}

// Less reports whether d is closer to its edge than other.
func (d SignedDistance) Less(other SignedDistance) bool {
	absD := math.Abs(d.Distance)
	absO := math.Abs(other.Distance)
	return absD < absO || (absD == absO && d.Dot < other.Dot)
}

// Distance is the per-channel result of a distance query.
//
// R, G and B hold the multi-channel distances and A the true distance.
// Single-channel field kinds store the same value in every component so
// that Resolve works uniformly.
type Distance struct {
	R, G, B, A float64
}

// uniformDistance returns a Distance with all channels set to d.
func uniformDistance(d float64) Distance {
	return Distance{R: d, G: d, B: d, A: d}
}

// Resolve returns the scalar distance: the median of the color channels.
func (d Distance) Resolve() float64 {
	return median(d.R, d.G, d.B)
}
