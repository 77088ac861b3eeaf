package msdf

import (
	"math"
	"sort"
	"testing"
)

func sortedRoots(n int, x []float64) []float64 {
	if n <= 0 {
		return nil
	}
	roots := append([]float64(nil), x[:n]...)
	sort.Float64s(roots)
	return roots
}

func TestSolveQuadratic(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		count   int
		roots   []float64
	}{
		{"two roots", 1, -3, 2, 2, []float64{1, 2}},
		{"double root", 1, -2, 1, 1, []float64{1}},
		{"no real roots", 1, 0, 1, 0, nil},
		{"linear", 0, 2, -4, 1, []float64{2}},
		{"constant", 0, 0, 3, 0, nil},
		{"identity", 0, 0, 0, -1, nil},
		{"negligible a", 1e-14, 1, -1, 1, []float64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, x := SolveQuadratic(tt.a, tt.b, tt.c)
			if n != tt.count {
				t.Fatalf("SolveQuadratic(%v, %v, %v) count = %d, want %d", tt.a, tt.b, tt.c, n, tt.count)
			}
			got := sortedRoots(n, x[:])
			for i := range tt.roots {
				if math.Abs(got[i]-tt.roots[i]) > 1e-9 {
					t.Errorf("root[%d] = %v, want %v", i, got[i], tt.roots[i])
				}
			}
		})
	}
}

func TestSolveCubic(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d float64
		roots      []float64
	}{
		{"three roots", 1, -6, 11, -6, []float64{1, 2, 3}},
		{"one real root", 1, 0, 0, -8, []float64{2}},
		{"triple root", 1, -3, 3, -1, []float64{1}},
		{"degenerates to quadratic", 0, 1, -3, 2, []float64{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, x := SolveCubic(tt.a, tt.b, tt.c, tt.d)
			if n < 1 {
				t.Fatalf("SolveCubic() count = %d, want at least 1", n)
			}
			// Every reported root must satisfy the equation.
			for i := 0; i < n; i++ {
				r := x[i]
				if v := tt.a*r*r*r + tt.b*r*r + tt.c*r + tt.d; math.Abs(v) > 1e-6 {
					t.Errorf("root %v evaluates to %v", r, v)
				}
			}
			// Every expected root must be reported.
			for _, want := range tt.roots {
				found := false
				for i := 0; i < n; i++ {
					if math.Abs(x[i]-want) < 1e-4 {
						found = true
					}
				}
				if !found {
					t.Errorf("root %v missing from %v", want, x[:n])
				}
			}
		})
	}
}
