package msdf

import (
	"math"
	"math/rand/v2"
)

// colorSeedStream is the fixed second half of the PCG state used to expand
// a coloring seed. Changing it changes every generated coloring.
const colorSeedStream = 0x9E3779B97F4A7C15

// colorRandom is the deterministic source of edge color choices.
//
// Choices are drawn from a PCG generator (math/rand/v2.PCG) seeded with the
// caller's seed. The sequence is fixed by the Go standard library and does
// not depend on the platform, so equal seeds give equal colorings.
type colorRandom struct {
	pcg  *rand.PCG
	bits uint64
	left int
}

func newColorRandom(seed uint64) *colorRandom {
	return &colorRandom{pcg: rand.NewPCG(seed, colorSeedStream)}
}

// bit returns a pseudo-random 0 or 1.
func (r *colorRandom) bit() int {
	if r.left == 0 {
		r.bits = r.pcg.Uint64()
		r.left = 64
	}
	v := int(r.bits & 1)
	r.bits >>= 1
	r.left--
	return v
}

// trit returns a pseudo-random 0, 1 or 2.
func (r *colorRandom) trit() int {
	return int(r.pcg.Uint64() % 3)
}

// initColor picks the starting color of a coloring run.
func (r *colorRandom) initColor() EdgeColor {
	colors := [3]EdgeColor{ColorCyan, ColorMagenta, ColorYellow}
	return colors[r.trit()]
}

// switchColor moves a two-channel color to one of the two other
// two-channel colors.
func (r *colorRandom) switchColor(color EdgeColor) EdgeColor {
	shifted := int(color) << (1 + r.bit())
	return EdgeColor(shifted|shifted>>3) & ColorWhite
}

// switchColorBanned is like switchColor, but avoids sharing two channels
// with banned when the current color already shares exactly one with it.
func (r *colorRandom) switchColorBanned(color, banned EdgeColor) EdgeColor {
	combined := color & banned
	if combined.isSingleChannel() {
		return combined ^ ColorWhite
	}
	return r.switchColor(color)
}

// isCorner reports whether the turn between two unit directions is sharp.
func isCorner(aDir, bDir Vector2, crossThreshold float64) bool {
	return aDir.Dot(bDir) <= 0 || math.Abs(aDir.Cross(bDir)) > crossThreshold
}

// symmetricalTrichotomy maps position in [0, n) to -1, 0 or 1 so that the
// three groups are placed symmetrically around the middle.
func symmetricalTrichotomy(position, n int) int {
	return int(3+2.875*float64(position)/float64(n-1)-1.4375+0.5) - 3
}

// contourCorners returns the indices of edges that start at a corner.
func contourCorners(c *Contour, crossThreshold float64) []int {
	var corners []int
	prevDirection := c.Edges[len(c.Edges)-1].Direction(1)
	for i := range c.Edges {
		if isCorner(prevDirection.Normalize(false), c.Edges[i].Direction(0).Normalize(false), crossThreshold) {
			corners = append(corners, i)
		}
		prevDirection = c.Edges[i].Direction(1)
	}
	return corners
}

// teardropColors picks three distinct two-channel colors. The outer two
// meet at the corner; the middle one covers the tip of the teardrop.
func (r *colorRandom) teardropColors(color EdgeColor) (EdgeColor, [3]EdgeColor) {
	var colors [3]EdgeColor
	color = r.switchColor(color)
	colors[0] = color
	color = r.switchColor(color)
	colors[2] = color
	colors[1] = (colors[0] & colors[2]) ^ ColorWhite
	return color, colors
}

// colorTeardrop colors a contour with exactly one corner, splitting its
// edges when there are fewer than three.
func colorTeardrop(c *Contour, corner int, colors [3]EdgeColor) {
	m := len(c.Edges)
	if m >= 3 {
		for i := 0; i < m; i++ {
			c.Edges[(corner+i)%m].Color = colors[1+symmetricalTrichotomy(i, m)]
		}
		return
	}
	var parts []EdgeSegment
	if m == 1 {
		thirds := c.Edges[0].SplitInThirds()
		thirds[0].Color = colors[0]
		thirds[1].Color = colors[1]
		thirds[2].Color = colors[2]
		parts = thirds[:]
	} else {
		// The corner is at the start of edge 0 or edge 1; the six
		// thirds are arranged so the sequence starts at the corner.
		first := c.Edges[0].SplitInThirds()
		second := c.Edges[1].SplitInThirds()
		var six [6]EdgeSegment
		copy(six[3*corner:], first[:])
		copy(six[3-3*corner:], second[:])
		six[0].Color, six[1].Color = colors[0], colors[0]
		six[2].Color, six[3].Color = colors[1], colors[1]
		six[4].Color, six[5].Color = colors[2], colors[2]
		parts = six[:]
	}
	c.Edges = append(c.Edges[:0], parts...)
}

// ColorEdgesSimple assigns edge colors so that color changes coincide with
// the corners of the shape.
//
// A corner is a junction where the edge directions turn by more than
// angleThreshold radians. Contours without corners get a single color;
// contours with one corner are colored as a teardrop using three colors;
// all others switch color at every corner. The result depends only on the
// shape and seed.
func ColorEdgesSimple(shape *Shape, angleThreshold float64, seed uint64) {
	crossThreshold := math.Sin(angleThreshold)
	rng := newColorRandom(seed)
	color := rng.initColor()
	for ci := range shape.Contours {
		contour := &shape.Contours[ci]
		if len(contour.Edges) == 0 {
			continue
		}
		corners := contourCorners(contour, crossThreshold)
		switch len(corners) {
		case 0:
			color = rng.switchColor(color)
			for i := range contour.Edges {
				contour.Edges[i].Color = color
			}
		case 1:
			var colors [3]EdgeColor
			color, colors = rng.teardropColors(color)
			colorTeardrop(contour, corners[0], colors)
		default:
			cornerCount := len(corners)
			spline := 0
			start := corners[0]
			m := len(contour.Edges)
			color = rng.switchColor(color)
			initialColor := color
			for i := 0; i < m; i++ {
				index := (start + i) % m
				if spline+1 < cornerCount && corners[spline+1] == index {
					spline++
					banned := ColorBlack
					if spline == cornerCount-1 {
						banned = initialColor
					}
					color = rng.switchColorBanned(color, banned)
				}
				contour.Edges[index].Color = color
			}
		}
	}
}

// inkTrapCorner is a corner together with the length of the spline that
// precedes it.
type inkTrapCorner struct {
	index          int
	prevEdgeLength float64
	minor          bool
	color          EdgeColor
}

// ColorEdgesInkTrap is a variant of ColorEdgesSimple for shapes with ink
// traps: small notches made of short splines between longer ones.
//
// In contours with more than three corners, a corner followed by a spline
// shorter than both its neighbours is minor. Minor corners take the color
// complementary to the channel shared by the surrounding major colors, so
// the notch does not break the coloring of the major corners.
func ColorEdgesInkTrap(shape *Shape, angleThreshold float64, seed uint64) {
	crossThreshold := math.Sin(angleThreshold)
	rng := newColorRandom(seed)
	color := rng.initColor()
	for ci := range shape.Contours {
		contour := &shape.Contours[ci]
		if len(contour.Edges) == 0 {
			continue
		}

		var corners []inkTrapCorner
		splineLength := 0.0
		prevDirection := contour.Edges[len(contour.Edges)-1].Direction(1)
		for i := range contour.Edges {
			edge := &contour.Edges[i]
			if isCorner(prevDirection.Normalize(false), edge.Direction(0).Normalize(false), crossThreshold) {
				corners = append(corners, inkTrapCorner{index: i, prevEdgeLength: splineLength})
				splineLength = 0
			}
			splineLength += edge.estimateLength(4)
			prevDirection = edge.Direction(1)
		}

		switch len(corners) {
		case 0:
			color = rng.switchColor(color)
			for i := range contour.Edges {
				contour.Edges[i].Color = color
			}
		case 1:
			var colors [3]EdgeColor
			color, colors = rng.teardropColors(color)
			colorTeardrop(contour, corners[0].index, colors)
		default:
			cornerCount := len(corners)
			majorCornerCount := cornerCount
			if cornerCount > 3 {
				corners[0].prevEdgeLength += splineLength
				for i := 0; i < cornerCount; i++ {
					a := corners[i].prevEdgeLength
					b := corners[(i+1)%cornerCount].prevEdgeLength
					c := corners[(i+2)%cornerCount].prevEdgeLength
					if a > b && b < c {
						corners[i].minor = true
						majorCornerCount--
					}
				}
			}
			initialColor := ColorBlack
			for i := range corners {
				if corners[i].minor {
					continue
				}
				majorCornerCount--
				banned := ColorBlack
				if majorCornerCount == 0 {
					banned = initialColor
				}
				color = rng.switchColorBanned(color, banned)
				corners[i].color = color
				if initialColor == ColorBlack {
					initialColor = color
				}
			}
			for i := range corners {
				if corners[i].minor {
					next := corners[(i+1)%cornerCount].color
					corners[i].color = (color & next) ^ ColorWhite
				} else {
					color = corners[i].color
				}
			}
			spline := 0
			start := corners[0].index
			color = corners[0].color
			m := len(contour.Edges)
			for i := 0; i < m; i++ {
				index := (start + i) % m
				if spline+1 < cornerCount && corners[spline+1].index == index {
					spline++
					color = corners[spline].color
				}
				contour.Edges[index].Color = color
			}
		}
	}
}
