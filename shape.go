package msdf

import (
	"fmt"
	"math"
)

// Orientation describes the direction of the shape's Y axis relative to
// the rows of an output bitmap.
type Orientation uint8

const (
	// YUpward is the font convention: Y grows upwards, so the first
	// bitmap row holds the largest Y coordinates.
	YUpward Orientation = iota

	// YDownward is the image convention: Y grows downwards, so the first
	// bitmap row holds the smallest Y coordinates.
	YDownward
)

// String returns a string representation of the orientation.
func (o Orientation) String() string {
	switch o {
	case YUpward:
		return "YUpward"
	case YDownward:
		return "YDownward"
	default:
		return "Unknown"
	}
}

// endpointTolerance is the largest gap accepted between consecutive edges.
const endpointTolerance = 1e-9

// Shape is a vector outline made of closed contours.
//
// A shape is built once by an outline converter, normalized, colored and
// then only read during distance queries. Read-only shapes are safe to share
// between goroutines.
type Shape struct {
	// Contours are the closed paths that make up the shape.
	Contours []Contour

	// YAxis is the orientation of the Y axis in output bitmaps.
	YAxis Orientation
}

// NewShape creates an empty shape with an upward Y axis.
func NewShape() *Shape {
	return &Shape{YAxis: YUpward}
}

// AddContour appends an empty contour and returns a pointer to it.
// The pointer is valid until the next call to AddContour.
func (s *Shape) AddContour() *Contour {
	s.Contours = append(s.Contours, Contour{})
	return &s.Contours[len(s.Contours)-1]
}

// Validate checks that every edge starts where the previous edge of its
// contour ends. It returns an error wrapping ErrOpenContour describing the
// first gap found.
func (s *Shape) Validate() error {
	for ci := range s.Contours {
		edges := s.Contours[ci].Edges
		if len(edges) == 0 {
			continue
		}
		corner := edges[len(edges)-1].EndPoint()
		for ei := range edges {
			start := edges[ei].StartPoint()
			if math.Abs(start.X-corner.X) > endpointTolerance || math.Abs(start.Y-corner.Y) > endpointTolerance {
				return fmt.Errorf("%w: contour %d edge %d starts at %v, previous edge ends at %v",
					ErrOpenContour, ci, ei, start, corner)
			}
			corner = edges[ei].EndPoint()
		}
	}
	return nil
}

// Bounds returns the bounding box of the shape.
// The result is EmptyRect() for a shape without edges.
func (s *Shape) Bounds() Rect {
	r := EmptyRect()
	for i := range s.Contours {
		s.Contours[i].Bound(&r)
	}
	return r
}

// EdgeCount returns the total number of edges across all contours.
func (s *Shape) EdgeCount() int {
	count := 0
	for i := range s.Contours {
		count += len(s.Contours[i].Edges)
	}
	return count
}

// OrientContours reverses every contour when the total signed area of the
// shape is negative, so that filled regions wind counter-clockwise.
// Outlines that use the opposite convention, such as TrueType glyphs,
// come out with negative distances inside after this call.
func (s *Shape) OrientContours() {
	var total float64
	for i := range s.Contours {
		total += s.Contours[i].signedArea()
	}
	if total >= 0 {
		return
	}
	for i := range s.Contours {
		s.Contours[i].Reverse()
	}
}

// Clone creates a deep copy of the shape.
func (s *Shape) Clone() *Shape {
	clone := &Shape{
		Contours: make([]Contour, len(s.Contours)),
		YAxis:    s.YAxis,
	}
	for i := range s.Contours {
		clone.Contours[i] = s.Contours[i].Clone()
	}
	return clone
}
