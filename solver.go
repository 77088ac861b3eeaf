package msdf

import "math"

// Polynomial root solvers used for closest-point queries and curve bounds.
//
// Both solvers return the number of real solutions followed by a fixed-size
// array; only the first count entries are meaningful. A count of -1 means the
// equation degenerated to 0 == 0 and every x is a solution.

// SolveQuadratic finds the real roots of a*x^2 + b*x + c = 0.
//
// When a is zero, or negligible next to b, the equation is solved as linear
// instead of dividing by a near-zero leading coefficient.
func SolveQuadratic(a, b, c float64) (int, [2]float64) {
	var x [2]float64
	if a == 0 || math.Abs(b) > 1e12*math.Abs(a) {
		if b == 0 {
			if c == 0 {
				return -1, x
			}
			return 0, x
		}
		x[0] = -c / b
		return 1, x
	}
	dscr := b*b - 4*a*c
	switch {
	case dscr > 0:
		dscr = math.Sqrt(dscr)
		x[0] = (-b + dscr) / (2 * a)
		x[1] = (-b - dscr) / (2 * a)
		return 2, x
	case dscr == 0:
		x[0] = -b / (2 * a)
		return 1, x
	}
	return 0, x
}

// solveCubicNormed solves x^3 + a*x^2 + b*x + c = 0.
func solveCubicNormed(a, b, c float64) (int, [3]float64) {
	var x [3]float64
	a2 := a * a
	q := (a2 - 3*b) / 9
	r := (a*(2*a2-9*b) + 27*c) / 54
	r2 := r * r
	q3 := q * q * q
	a /= 3
	if r2 < q3 {
		t := r / math.Sqrt(q3)
		t = math.Max(-1, math.Min(1, t))
		t = math.Acos(t)
		q = -2 * math.Sqrt(q)
		x[0] = q*math.Cos(t/3) - a
		x[1] = q*math.Cos((t+2*math.Pi)/3) - a
		x[2] = q*math.Cos((t-2*math.Pi)/3) - a
		return 3, x
	}
	u := math.Pow(math.Abs(r)+math.Sqrt(r2-q3), 1.0/3)
	if r >= 0 {
		u = -u
	}
	var v float64
	if u != 0 {
		v = q / u
	}
	x[0] = (u + v) - a
	if u == v || math.Abs(u-v) < 1e-12*math.Abs(u+v) {
		x[1] = -0.5*(u+v) - a
		return 2, x
	}
	return 1, x
}

// SolveCubic finds the real roots of a*x^3 + b*x^2 + c*x + d = 0.
//
// When |b/a| reaches 1e6 the cubic term is numerically insignificant and the
// equation is solved as a quadratic.
func SolveCubic(a, b, c, d float64) (int, [3]float64) {
	if a != 0 {
		bn := b / a
		if math.Abs(bn) < 1e6 {
			return solveCubicNormed(bn, c/a, d/a)
		}
	}
	n, q := SolveQuadratic(b, c, d)
	return n, [3]float64{q[0], q[1], 0}
}
