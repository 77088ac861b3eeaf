package msdf

import (
	"math"
	"testing"
)

// coloredSquare returns a 10x10 square whose edges are yellow, cyan,
// magenta and cyan, starting from the bottom edge.
func coloredSquare() *Shape {
	s := unitSquare(10)
	colors := []EdgeColor{ColorYellow, ColorCyan, ColorMagenta, ColorCyan}
	for i := range s.Contours[0].Edges {
		s.Contours[0].Edges[i].Color = colors[i]
	}
	return s
}

func TestFieldKind(t *testing.T) {
	tests := []struct {
		kind     FieldKind
		name     string
		channels int
	}{
		{FieldSDF, "SDF", 1},
		{FieldPSDF, "PSDF", 1},
		{FieldMSDF, "MSDF", 3},
		{FieldMTSDF, "MTSDF", 4},
		{FieldKind(9), "Unknown", 1},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("FieldKind(%d).String() = %q, want %q", tt.kind, got, tt.name)
		}
		if got := tt.kind.Channels(); got != tt.channels {
			t.Errorf("%v.Channels() = %d, want %d", tt.kind, got, tt.channels)
		}
	}
}

func TestEdgeSelector_MultiChannel(t *testing.T) {
	s := coloredSquare()
	p := V2(5, 1)
	for _, kind := range []FieldKind{FieldMSDF, FieldMTSDF} {
		d := OneShotDistance(s, kind, CombinerSimple, p)
		if math.Abs(d.R+1) > 1e-12 || math.Abs(d.G+1) > 1e-12 {
			t.Errorf("%v R, G = %v, %v, want -1, -1", kind, d.R, d.G)
		}
		if math.Abs(d.B+5) > 1e-12 {
			t.Errorf("%v B = %v, want -5", kind, d.B)
		}
		if math.Abs(d.Resolve()+1) > 1e-12 {
			t.Errorf("%v Resolve() = %v, want -1", kind, d.Resolve())
		}
		if kind == FieldMTSDF && math.Abs(d.A+1) > 1e-12 {
			t.Errorf("MTSDF A = %v, want -1", d.A)
		}
	}
}

func TestEdgeSelector_PerpendicularBeyondCorner(t *testing.T) {
	// Beyond the bottom-right corner the perpendicular field keeps the
	// corner sharp: the distance is the larger of the distances to the
	// two extended edges.
	s := unitSquare(10)
	p := V2(13, -2)
	psdf := OneShotDistance(s, FieldPSDF, CombinerSimple, p).Resolve()
	if math.Abs(psdf-3) > 1e-12 {
		t.Errorf("PSDF distance = %v, want 3", psdf)
	}
	sdf := OneShotDistance(s, FieldSDF, CombinerSimple, p).Resolve()
	if math.Abs(sdf-math.Hypot(3, 2)) > 1e-12 {
		t.Errorf("SDF distance = %v, want %v", sdf, math.Hypot(3, 2))
	}
}

func TestShapeDistanceFinder_CacheConsistent(t *testing.T) {
	// A reused finder must agree with fresh one-shot queries.
	s := glyphLikeShape()
	s.Normalize()
	ColorEdgesSimple(s, 3, 0)
	for _, kind := range []FieldKind{FieldSDF, FieldPSDF, FieldMSDF, FieldMTSDF} {
		for _, combiner := range []CombinerKind{CombinerSimple, CombinerOverlapping} {
			finder := NewShapeDistanceFinder(s, kind, combiner)
			for y := -2.0; y < 32; y += 1.5 {
				for x := -2.0; x < 32; x += 1.25 {
					p := V2(x, y)
					got := finder.Distance(p)
					want := OneShotDistance(s, kind, combiner, p)
					if !approxDistance(got, want, 1e-9) {
						t.Fatalf("%v/%v at %v: finder %+v, one-shot %+v", kind, combiner, p, got, want)
					}
				}
			}
		}
	}
}

func approxDistance(a, b Distance, eps float64) bool {
	return math.Abs(a.R-b.R) <= eps && math.Abs(a.G-b.G) <= eps &&
		math.Abs(a.B-b.B) <= eps && math.Abs(a.A-b.A) <= eps
}

func TestContourCombiner_OverlappingSquares(t *testing.T) {
	single := coloredSquare()
	double := coloredSquare()
	double.Contours = append(double.Contours, double.Contours[0].Clone())

	for _, kind := range []FieldKind{FieldSDF, FieldMSDF} {
		for y := -3.0; y <= 13; y += 0.7 {
			for x := -3.0; x <= 13; x += 0.9 {
				p := V2(x, y)
				want := OneShotDistance(single, kind, CombinerOverlapping, p)
				got := OneShotDistance(double, kind, CombinerOverlapping, p)
				if math.Abs(got.Resolve()-want.Resolve()) > 1e-12 {
					t.Errorf("%v at %v: overlapping pair %v, single %v", kind, p, got.Resolve(), want.Resolve())
				}
			}
		}
	}
}

func TestContourCombiner_UnionOfOverlappingSquares(t *testing.T) {
	// Two overlapping squares: the shared interior must be inside with the
	// overlapping combiner, with no seam along the hidden edges.
	s := unitSquare(10)
	c := s.AddContour()
	for _, e := range unitSquare(10).Contours[0].Edges {
		c.AddEdge(NewLinearEdge(e.StartPoint().Add(V2(5, 0)), e.EndPoint().Add(V2(5, 0))))
	}

	// (9, 5) is 1 from the first square's right edge, which is hidden
	// inside the second square. The contour the point is deepest in
	// decides the distance.
	d := OneShotDistance(s, FieldSDF, CombinerOverlapping, V2(9, 5)).Resolve()
	if math.Abs(d+4) > 1e-9 {
		t.Errorf("union distance at (9, 5) = %v, want -4", d)
	}
	seam := OneShotDistance(s, FieldSDF, CombinerSimple, V2(9, 5)).Resolve()
	if math.Abs(seam+1) > 1e-9 {
		t.Errorf("simple distance at (9, 5) = %v, want -1", seam)
	}
	outside := OneShotDistance(s, FieldSDF, CombinerOverlapping, V2(17, 5)).Resolve()
	if math.Abs(outside-2) > 1e-9 {
		t.Errorf("union distance at (17, 5) = %v, want 2", outside)
	}
}

func TestContourCombiner_HoleMatchesSimple(t *testing.T) {
	// A square with a clockwise hole has no overlaps, so both combiners
	// must agree everywhere, also when one finder answers many queries.
	s := unitSquare(20)
	s.Contours = append(s.Contours, polygonShape(V2(5, 5), V2(5, 15), V2(15, 15), V2(15, 5)).Contours[0])

	simple := NewShapeDistanceFinder(s, FieldSDF, CombinerSimple)
	overlapping := NewShapeDistanceFinder(s, FieldSDF, CombinerOverlapping)
	for y := -2.13; y <= 22; y += 0.97 {
		for x := -2.13; x <= 22; x += 0.89 {
			p := V2(x, y)
			want := simple.Distance(p).Resolve()
			got := overlapping.Distance(p).Resolve()
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("distance at %v = %v, want %v", p, got, want)
			}
		}
	}
	if d := overlapping.Distance(V2(10, 10)).Resolve(); math.Abs(d-5) > 1e-9 {
		t.Errorf("distance at hole center = %v, want 5", d)
	}
}

func TestCombinerKind_String(t *testing.T) {
	if CombinerSimple.String() != "Simple" || CombinerOverlapping.String() != "Overlapping" {
		t.Errorf("CombinerKind strings = %q, %q", CombinerSimple, CombinerOverlapping)
	}
}
