package msdf

// Projection maps shape coordinates to pixel coordinates.
//
// A shape point p lands at (p + Translate) * Scale. Scale may differ per
// axis, but both components must be non-zero.
type Projection struct {
	Scale     Vector2
	Translate Vector2
}

// NewProjection creates a projection with the given scale and translation.
func NewProjection(scale, translate Vector2) Projection {
	return Projection{Scale: scale, Translate: translate}
}

// Project converts a point from shape to pixel coordinates.
func (p Projection) Project(coord Vector2) Vector2 {
	return coord.Add(p.Translate).MulVec(p.Scale)
}

// Unproject converts a point from pixel to shape coordinates.
func (p Projection) Unproject(coord Vector2) Vector2 {
	return coord.DivVec(p.Scale).Sub(p.Translate)
}

// ProjectVector converts a displacement from shape to pixel coordinates.
func (p Projection) ProjectVector(v Vector2) Vector2 {
	return v.MulVec(p.Scale)
}

// UnprojectVector converts a displacement from pixel to shape coordinates.
func (p Projection) UnprojectVector(v Vector2) Vector2 {
	return v.DivVec(p.Scale)
}

// Range is an interval of signed distances in shape units.
type Range struct {
	Lower float64
	Upper float64
}

// SymmetricRange returns the range of the given total width centered on
// zero.
func SymmetricRange(width float64) Range {
	return Range{Lower: -0.5 * width, Upper: 0.5 * width}
}

// Width returns the width of the range.
func (r Range) Width() float64 {
	return r.Upper - r.Lower
}

// DistanceMapping linearly maps distances so that the range it was built
// from lands on [-0.5, 0.5]. Distances outside the range map outside that
// interval; output is never clamped.
type DistanceMapping struct {
	scale     float64
	translate float64
}

// NewDistanceMapping creates the mapping for r. The range must have a
// non-zero width.
func NewDistanceMapping(r Range) DistanceMapping {
	return DistanceMapping{
		scale:     1 / r.Width(),
		translate: -0.5 * (r.Lower + r.Upper),
	}
}

// Map converts a distance to a field value.
func (m DistanceMapping) Map(d float64) float64 {
	return m.scale * (d + m.translate)
}

// MapDelta converts a difference of distances to a difference of field
// values.
func (m DistanceMapping) MapDelta(d float64) float64 {
	return m.scale * d
}

// Unmap converts a field value back to a distance.
func (m DistanceMapping) Unmap(v float64) float64 {
	return v/m.scale - m.translate
}

// Transformation combines the spatial projection of a field with the
// mapping of its distances.
type Transformation struct {
	Projection
	DistanceMapping
}

// NewTransformation creates a transformation from a projection and the
// distance range that should span the output values.
func NewTransformation(p Projection, r Range) Transformation {
	return Transformation{Projection: p, DistanceMapping: NewDistanceMapping(r)}
}
