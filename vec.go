package msdf

import "math"

// Vector2 is a 2D vector in shape space.
// It is used both as a position and as a direction.
type Vector2 struct {
	X, Y float64
}

// Point2 is a position in shape space.
type Point2 = Vector2

// V2 is a convenience function to create a Vector2.
func V2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns v + w.
func (v Vector2) Add(w Vector2) Vector2 {
	return Vector2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns v - w.
func (v Vector2) Sub(w Vector2) Vector2 {
	return Vector2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by s.
func (v Vector2) Mul(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// MulVec returns the component-wise product of v and w.
func (v Vector2) MulVec(w Vector2) Vector2 {
	return Vector2{X: v.X * w.X, Y: v.Y * w.Y}
}

// DivVec returns the component-wise quotient of v and w.
func (v Vector2) DivVec(w Vector2) Vector2 {
	return Vector2{X: v.X / w.X, Y: v.Y / w.Y}
}

// Neg returns -v.
func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of v and w.
func (v Vector2) Dot(w Vector2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the 2D cross product (z-component of the 3D cross product).
func (v Vector2) Cross(w Vector2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Length returns the Euclidean length of the vector.
func (v Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSq returns the squared length of the vector.
func (v Vector2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// IsZero reports whether both components are exactly zero.
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns a unit vector in the same direction.
// A zero vector yields (0, 1), or (0, 0) when allowZero is set.
func (v Vector2) Normalize(allowZero bool) Vector2 {
	length := v.Length()
	if length == 0 {
		if allowZero {
			return Vector2{}
		}
		return Vector2{X: 0, Y: 1}
	}
	return Vector2{X: v.X / length, Y: v.Y / length}
}

// Orthogonal returns v rotated by 90 degrees, counter-clockwise when
// polarity is true and clockwise otherwise.
func (v Vector2) Orthogonal(polarity bool) Vector2 {
	if polarity {
		return Vector2{X: -v.Y, Y: v.X}
	}
	return Vector2{X: v.Y, Y: -v.X}
}

// Orthonormal returns the normalized orthogonal vector.
func (v Vector2) Orthonormal(polarity, allowZero bool) Vector2 {
	length := v.Length()
	if length == 0 {
		if allowZero {
			return Vector2{}
		}
		if polarity {
			return Vector2{X: 0, Y: 1}
		}
		return Vector2{X: 0, Y: -1}
	}
	if polarity {
		return Vector2{X: -v.Y / length, Y: v.X / length}
	}
	return Vector2{X: v.Y / length, Y: -v.X / length}
}

// Lerp returns the linear interpolation v + t*(w-v).
func (v Vector2) Lerp(w Vector2, t float64) Vector2 {
	return Vector2{
		X: v.X + (w.X-v.X)*t,
		Y: v.Y + (w.Y-v.Y)*t,
	}
}

// Rect is an axis-aligned bounding box in shape space.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// EmptyRect returns an inverted rectangle that any Include call replaces.
func EmptyRect() Rect {
	return Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vector2 {
	return Vector2{(r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2}
}

// Include grows the rectangle to contain p.
func (r *Rect) Include(p Vector2) {
	r.MinX = min(r.MinX, p.X)
	r.MinY = min(r.MinY, p.Y)
	r.MaxX = max(r.MaxX, p.X)
	r.MaxY = max(r.MaxY, p.Y)
}

// Expand returns a rectangle expanded by the given margin on all sides.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		MinX: r.MinX - margin,
		MinY: r.MinY - margin,
		MaxX: r.MaxX + margin,
		MaxY: r.MaxY + margin,
	}
}

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		MinX: min(r.MinX, s.MinX),
		MinY: min(r.MinY, s.MinY),
		MaxX: max(r.MaxX, s.MaxX),
		MaxY: max(r.MaxY, s.MaxY),
	}
}

// nonZeroSign returns 1 for positive and zero values and -1 for negative ones.
func nonZeroSign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// sign returns -1, 0 or 1.
func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// median returns the middle value of three.
func median[T float32 | float64](a, b, c T) T {
	return max(min(a, b), min(max(a, b), c))
}

func mix[T float32 | float64](a, b T, t float64) T {
	return T(float64(a) + (float64(b)-float64(a))*t)
}
