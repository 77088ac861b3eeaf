package msdf

import (
	"fmt"
	"math"
)

// Stencil flags used by ErrorCorrection.
const (
	// StencilError marks a texel whose color channels will be replaced by
	// their median.
	StencilError uint8 = 1

	// StencilProtected marks a texel that contributes to an edge or corner
	// and should only be corrected for clear inversion artifacts.
	StencilProtected uint8 = 2
)

const (
	// artifactTEpsilon keeps interpolation points near texel centers from
	// being reported; those crossings occur naturally.
	artifactTEpsilon = .01

	// protectionRadiusTolerance widens the edge protection radius slightly.
	protectionRadiusTolerance = 1.001

	classifierCandidate = 1
	classifierArtifact  = 2
)

// ErrorCorrectionMode selects which texels error correction may change.
type ErrorCorrectionMode uint8

const (
	// ErrorCorrectionDisabled skips error correction.
	ErrorCorrectionDisabled ErrorCorrectionMode = iota

	// ErrorCorrectionIndiscriminate corrects artifacts anywhere, including
	// at edges and corners.
	ErrorCorrectionIndiscriminate

	// ErrorCorrectionEdgePriority protects texels at corners and edges so
	// that they are only corrected for inversion artifacts.
	ErrorCorrectionEdgePriority

	// ErrorCorrectionEdgeOnly only corrects inversion artifacts.
	ErrorCorrectionEdgeOnly
)

// String returns a string representation of the mode.
func (m ErrorCorrectionMode) String() string {
	switch m {
	case ErrorCorrectionDisabled:
		return "Disabled"
	case ErrorCorrectionIndiscriminate:
		return "Indiscriminate"
	case ErrorCorrectionEdgePriority:
		return "EdgePriority"
	case ErrorCorrectionEdgeOnly:
		return "EdgeOnly"
	default:
		return "Unknown"
	}
}

// DistanceCheckMode selects when suspected artifacts are confirmed against
// the exact distance to the shape.
type DistanceCheckMode uint8

const (
	// DoNotCheckDistance relies on the field values alone.
	DoNotCheckDistance DistanceCheckMode = iota

	// CheckDistanceAtEdge confirms suspected artifacts with the exact
	// distance only near edges; elsewhere field values decide.
	CheckDistanceAtEdge

	// AlwaysCheckDistance confirms every suspected artifact with the
	// exact distance.
	AlwaysCheckDistance
)

// String returns a string representation of the mode.
func (m DistanceCheckMode) String() string {
	switch m {
	case DoNotCheckDistance:
		return "DoNotCheck"
	case CheckDistanceAtEdge:
		return "CheckAtEdge"
	case AlwaysCheckDistance:
		return "AlwaysCheck"
	default:
		return "Unknown"
	}
}

// ErrorCorrectionConfig configures error correction of multi-channel
// fields.
type ErrorCorrectionConfig struct {
	// Mode selects which texels may be corrected.
	Mode ErrorCorrectionMode

	// DistanceCheck selects when artifacts are confirmed with the exact
	// distance.
	DistanceCheck DistanceCheckMode

	// MinDeviationRatio is the minimum ratio between the actual and the
	// expected change of the field between neighbouring texels for the
	// change to be considered an artifact.
	MinDeviationRatio float64

	// MinImproveRatio is the minimum ratio by which correcting a texel
	// must improve the distance error for it to be corrected.
	MinImproveRatio float64
}

// DefaultErrorCorrectionConfig returns the recommended configuration.
func DefaultErrorCorrectionConfig() ErrorCorrectionConfig {
	return ErrorCorrectionConfig{
		Mode:              ErrorCorrectionEdgePriority,
		DistanceCheck:     CheckDistanceAtEdge,
		MinDeviationRatio: 1.11111111111111111,
		MinImproveRatio:   1.11111111111111111,
	}
}

// Validate checks that the configuration is valid.
func (c ErrorCorrectionConfig) Validate() error {
	if c.Mode > ErrorCorrectionEdgeOnly {
		return &ConfigError{Field: "Mode", Reason: "unknown error correction mode"}
	}
	if c.DistanceCheck > AlwaysCheckDistance {
		return &ConfigError{Field: "DistanceCheck", Reason: "unknown distance check mode"}
	}
	if !(c.MinDeviationRatio > 0) {
		return &ConfigError{Field: "MinDeviationRatio", Reason: "must be positive"}
	}
	if !(c.MinImproveRatio > 0) {
		return &ConfigError{Field: "MinImproveRatio", Reason: "must be positive"}
	}
	return nil
}

// ErrorCorrection detects and removes artifacts from multi-channel fields.
//
// Artifacts are texels whose channels, when bilinearly interpolated with a
// neighbour, produce a median that crosses the edge where the true shape
// has none. Correcting a texel replaces its color channels with their
// median, turning it into a plain distance sample.
//
// The engine marks texels in a stencil with the Protect and Find methods,
// then Apply rewrites the flagged texels. The stencil and all fields passed
// to the methods must share dimensions and orientation.
type ErrorCorrection struct {
	stencil           *Bitmap[uint8]
	view              View[uint8]
	orientation       Orientation
	transformation    Transformation
	minDeviationRatio float64
	minImproveRatio   float64
}

// NewErrorCorrection creates an engine that records its decisions in
// stencil, a one-channel bitmap of the field's size. Fields are addressed
// in the row order of shapes with the given orientation.
func NewErrorCorrection(stencil *Bitmap[uint8], orientation Orientation, t Transformation) *ErrorCorrection {
	cfg := DefaultErrorCorrectionConfig()
	return &ErrorCorrection{
		stencil:           stencil,
		view:              stencil.View(orientation),
		orientation:       orientation,
		transformation:    t,
		minDeviationRatio: cfg.MinDeviationRatio,
		minImproveRatio:   cfg.MinImproveRatio,
	}
}

// SetMinDeviationRatio sets the ratio used by FindErrors.
func (ec *ErrorCorrection) SetMinDeviationRatio(r float64) {
	ec.minDeviationRatio = r
}

// SetMinImproveRatio sets the ratio used by FindErrorsWithShape.
func (ec *ErrorCorrection) SetMinImproveRatio(r float64) {
	ec.minImproveRatio = r
}

// Stencil returns the stencil bitmap.
func (ec *ErrorCorrection) Stencil() *Bitmap[uint8] {
	return ec.stencil
}

// ErrorCount returns the number of texels flagged with StencilError.
func (ec *ErrorCorrection) ErrorCount() int {
	count := 0
	for _, flags := range ec.stencil.Pix {
		if flags&StencilError != 0 {
			count++
		}
	}
	return count
}

// ProtectCorners protects the four texels around every corner where the
// edge color changes.
func (ec *ErrorCorrection) ProtectCorners(shape *Shape) {
	w, h := ec.view.Width(), ec.view.Height()
	for ci := range shape.Contours {
		edges := shape.Contours[ci].Edges
		if len(edges) == 0 {
			continue
		}
		prev := &edges[len(edges)-1]
		for i := range edges {
			edge := &edges[i]
			common := prev.Color & edge.Color
			// A corner shares at most one channel with its predecessor.
			if common&(common-1) == 0 {
				p := ec.transformation.Project(edge.Point(0))
				l := int(math.Floor(p.X - .5))
				b := int(math.Floor(p.Y - .5))
				r, t := l+1, b+1
				if l < w && b < h && r >= 0 && t >= 0 {
					if l >= 0 && b >= 0 {
						ec.view.At(l, b)[0] |= StencilProtected
					}
					if r < w && b >= 0 {
						ec.view.At(r, b)[0] |= StencilProtected
					}
					if l >= 0 && t < h {
						ec.view.At(l, t)[0] |= StencilProtected
					}
					if r < w && t < h {
						ec.view.At(r, t)[0] |= StencilProtected
					}
				}
			}
			prev = edge
		}
	}
}

// ProtectEdges protects texel pairs that straddle an edge, keeping the
// channels that define it.
func (ec *ErrorCorrection) ProtectEdges(sdf *Bitmap[float32]) {
	v := sdf.View(ec.orientation)
	w, h := v.Width(), v.Height()

	radius := float32(protectionRadiusTolerance * ec.unitSpan(V2(1, 0)))
	for y := 0; y < h; y++ {
		left := v.At(0, y)
		for x := 0; x < w-1; x++ {
			right := v.At(x+1, y)
			lm := median(left[0], left[1], left[2])
			rm := median(right[0], right[1], right[2])
			if abs32(lm)+abs32(rm) < radius {
				mask := edgeBetweenTexels(left, right)
				ec.protectExtremeChannels(x, y, left, lm, mask)
				ec.protectExtremeChannels(x+1, y, right, rm, mask)
			}
			left = right
		}
	}

	radius = float32(protectionRadiusTolerance * ec.unitSpan(V2(0, 1)))
	for y := 0; y < h-1; y++ {
		for x := 0; x < w; x++ {
			bottom := v.At(x, y)
			top := v.At(x, y+1)
			bm := median(bottom[0], bottom[1], bottom[2])
			tm := median(top[0], top[1], top[2])
			if abs32(bm)+abs32(tm) < radius {
				mask := edgeBetweenTexels(bottom, top)
				ec.protectExtremeChannels(x, y, bottom, bm, mask)
				ec.protectExtremeChannels(x, y+1, top, tm, mask)
			}
		}
	}

	radius = float32(protectionRadiusTolerance * ec.unitSpan(V2(1, 1)))
	for y := 0; y < h-1; y++ {
		for x := 0; x < w-1; x++ {
			lb, rb := v.At(x, y), v.At(x+1, y)
			lt, rt := v.At(x, y+1), v.At(x+1, y+1)
			mlb := median(lb[0], lb[1], lb[2])
			mrb := median(rb[0], rb[1], rb[2])
			mlt := median(lt[0], lt[1], lt[2])
			mrt := median(rt[0], rt[1], rt[2])
			if abs32(mlb)+abs32(mrt) < radius {
				mask := edgeBetweenTexels(lb, rt)
				ec.protectExtremeChannels(x, y, lb, mlb, mask)
				ec.protectExtremeChannels(x+1, y+1, rt, mrt, mask)
			}
			if abs32(mrb)+abs32(mlt) < radius {
				mask := edgeBetweenTexels(rb, lt)
				ec.protectExtremeChannels(x+1, y, rb, mrb, mask)
				ec.protectExtremeChannels(x, y+1, lt, mlt, mask)
			}
		}
	}
}

// ProtectAll protects every texel.
func (ec *ErrorCorrection) ProtectAll() {
	for i := range ec.stencil.Pix {
		ec.stencil.Pix[i] |= StencilProtected
	}
}

// unitSpan returns the change of the field value that corresponds to a
// step of one texel along dir.
func (ec *ErrorCorrection) unitSpan(dir Vector2) float64 {
	d := ec.transformation.MapDelta(1)
	return ec.transformation.UnprojectVector(dir.Mul(d)).Length()
}

// protectExtremeChannels protects the texel at (x, y) when one of the
// channels in mask differs from the median m.
func (ec *ErrorCorrection) protectExtremeChannels(x, y int, msd []float32, m float32, mask EdgeColor) {
	if (mask.HasRed() && msd[0] != m) ||
		(mask.HasGreen() && msd[1] != m) ||
		(mask.HasBlue() && msd[2] != m) {
		ec.view.At(x, y)[0] |= StencilProtected
	}
}

// edgeBetweenTexels returns the channels whose zero crossing between a and b
// is where the interpolated median crosses zero.
func edgeBetweenTexels(a, b []float32) EdgeColor {
	var mask EdgeColor
	if edgeBetweenTexelsChannel(a, b, 0) {
		mask |= ColorRed
	}
	if edgeBetweenTexelsChannel(a, b, 1) {
		mask |= ColorGreen
	}
	if edgeBetweenTexelsChannel(a, b, 2) {
		mask |= ColorBlue
	}
	return mask
}

func edgeBetweenTexelsChannel(a, b []float32, channel int) bool {
	t := float64(a[channel]) / float64(a[channel]-b[channel])
	if t > 0 && t < 1 {
		c0 := mix(a[0], b[0], t)
		c1 := mix(a[1], b[1], t)
		c2 := mix(a[2], b[2], t)
		c := [3]float32{c0, c1, c2}
		return median(c0, c1, c2) == c[channel]
	}
	return false
}

// FindErrors flags texels that produce artifacts when interpolated with
// any of their eight neighbours, judging by field values alone.
func (ec *ErrorCorrection) FindErrors(sdf *Bitmap[float32]) {
	v := sdf.View(ec.orientation)
	w, h := v.Width(), v.Height()
	hSpan := ec.minDeviationRatio * ec.unitSpan(V2(1, 0))
	vSpan := ec.minDeviationRatio * ec.unitSpan(V2(0, 1))
	dSpan := ec.minDeviationRatio * ec.unitSpan(V2(1, 1))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			stencil := ec.view.At(x, y)
			protected := stencil[0]&StencilProtected != 0
			classify := func(_ Vector2, span float64) artifactClassifier {
				return baseClassifier{span: span, protected: protected}
			}
			if ec.hasArtifact(v, x, y, hSpan, vSpan, dSpan, classify) {
				stencil[0] |= StencilError
			}
		}
	}
}

// FindErrorsWithShape flags texels whose correction measurably reduces the
// difference between the interpolated field and the exact distance to
// shape. Texels already flagged are skipped.
func (ec *ErrorCorrection) FindErrorsWithShape(sdf *Bitmap[float32], shape *Shape, overlapSupport bool) {
	v := sdf.View(ec.orientation)
	w, h := v.Width(), v.Height()
	hSpan := ec.minDeviationRatio * ec.unitSpan(V2(1, 0))
	vSpan := ec.minDeviationRatio * ec.unitSpan(V2(0, 1))
	dSpan := ec.minDeviationRatio * ec.unitSpan(V2(1, 1))

	combiner := CombinerSimple
	if overlapSupport {
		combiner = CombinerOverlapping
	}
	checker := &shapeDistanceChecker{
		sdf:             v,
		finder:          NewShapeDistanceFinder(shape, FieldPSDF, combiner),
		transformation:  ec.transformation,
		minImproveRatio: ec.minImproveRatio,
		texelSize:       ec.transformation.UnprojectVector(V2(1, 1)),
	}

	for y := 0; y < h; y++ {
		for col := 0; col < w; col++ {
			x := col
			if y&1 == 1 {
				x = w - col - 1
			}
			stencil := ec.view.At(x, y)
			if stencil[0]&StencilError != 0 {
				continue
			}
			checker.shapeCoord = ec.transformation.Unproject(V2(float64(x)+.5, float64(y)+.5))
			checker.sdfCoord = V2(float64(x)+.5, float64(y)+.5)
			checker.msd = v.At(x, y)
			checker.protected = stencil[0]&StencilProtected != 0
			if ec.hasArtifact(v, x, y, hSpan, vSpan, dSpan, checker.classifier) {
				stencil[0] |= StencilError
			}
		}
	}
}

// hasArtifact tests the texel at (x, y) against its eight neighbours.
func (ec *ErrorCorrection) hasArtifact(v View[float32], x, y int, hSpan, vSpan, dSpan float64,
	classify func(dir Vector2, span float64) artifactClassifier) bool {
	w, h := v.Width(), v.Height()
	c := v.At(x, y)
	cm := median(c[0], c[1], c[2])
	var l, b, r, t []float32
	if x > 0 {
		l = v.At(x-1, y)
		if hasLinearArtifact(classify(V2(-1, 0), hSpan), cm, c, l) {
			return true
		}
	}
	if y > 0 {
		b = v.At(x, y-1)
		if hasLinearArtifact(classify(V2(0, -1), vSpan), cm, c, b) {
			return true
		}
	}
	if x < w-1 {
		r = v.At(x+1, y)
		if hasLinearArtifact(classify(V2(1, 0), hSpan), cm, c, r) {
			return true
		}
	}
	if y < h-1 {
		t = v.At(x, y+1)
		if hasLinearArtifact(classify(V2(0, 1), vSpan), cm, c, t) {
			return true
		}
	}
	return (l != nil && b != nil && hasDiagonalArtifact(classify(V2(-1, -1), dSpan), cm, c, l, b, v.At(x-1, y-1))) ||
		(r != nil && b != nil && hasDiagonalArtifact(classify(V2(1, -1), dSpan), cm, c, r, b, v.At(x+1, y-1))) ||
		(l != nil && t != nil && hasDiagonalArtifact(classify(V2(-1, 1), dSpan), cm, c, l, t, v.At(x-1, y+1))) ||
		(r != nil && t != nil && hasDiagonalArtifact(classify(V2(1, 1), dSpan), cm, c, r, t, v.At(x+1, y+1)))
}

// Apply replaces the color channels of every texel flagged with
// StencilError by their median. Other channels are left untouched.
func (ec *ErrorCorrection) Apply(sdf *Bitmap[float32]) {
	n := sdf.Channels
	for i, flags := range ec.stencil.Pix {
		if flags&StencilError == 0 {
			continue
		}
		texel := sdf.Pix[i*n : i*n+3]
		m := median(texel[0], texel[1], texel[2])
		texel[0], texel[1], texel[2] = m, m, m
	}
}

// artifactClassifier decides whether an interpolated median indicates an
// artifact.
type artifactClassifier interface {
	rangeTest(at, bt, xt float64, am, bm, xm float32) int
	evaluate(t float64, m float32, flags int) bool
}

// baseClassifier judges artifacts by field values alone.
type baseClassifier struct {
	span      float64
	protected bool
}

// rangeTest evaluates whether the median xm interpolated at xt between am
// at at and bm at bt is an artifact candidate, and whether it falls outside
// the range its distance from the boundaries allows.
func (c baseClassifier) rangeTest(at, bt, xt float64, am, bm, xm float32) int {
	// Protected texels only consider inversions, where the interpolated
	// median has a different sign than both boundaries.
	if (am > 0 && bm > 0 && xm <= 0) || (am < 0 && bm < 0 && xm >= 0) || (!c.protected && median(am, bm, xm) != xm) {
		axSpan := (xt - at) * c.span
		bxSpan := (bt - xt) * c.span
		m := float64(xm)
		a, b := float64(am), float64(bm)
		if !(m >= a-axSpan && m <= a+axSpan && m >= b-bxSpan && m <= b+bxSpan) {
			return classifierCandidate | classifierArtifact
		}
		return classifierCandidate
	}
	return 0
}

func (c baseClassifier) evaluate(_ float64, _ float32, flags int) bool {
	return flags&classifierArtifact != 0
}

// shapeDistanceChecker confirms artifact candidates by comparing the field
// against the exact distance to the shape.
type shapeDistanceChecker struct {
	sdf             View[float32]
	finder          *ShapeDistanceFinder
	transformation  Transformation
	minImproveRatio float64
	texelSize       Vector2

	shapeCoord Vector2
	sdfCoord   Vector2
	msd        []float32
	protected  bool
}

func (s *shapeDistanceChecker) classifier(dir Vector2, span float64) artifactClassifier {
	return shapeClassifier{
		baseClassifier: baseClassifier{span: span, protected: s.protected},
		parent:         s,
		direction:      dir,
	}
}

type shapeClassifier struct {
	baseClassifier
	parent    *shapeDistanceChecker
	direction Vector2
}

func (c shapeClassifier) evaluate(t float64, _ float32, flags int) bool {
	if flags&classifierCandidate == 0 {
		return false
	}
	if flags&classifierArtifact != 0 {
		return true
	}
	p := c.parent
	tVector := c.direction.Mul(t)

	// The color currently interpolated at the candidate position, and the
	// color interpolated there if the texel were corrected.
	var oldMSD [4]float32
	interpolate(oldMSD[:p.sdf.Channels()], p.sdf, p.sdfCoord.Add(tVector))
	aWeight := (1 - math.Abs(tVector.X)) * (1 - math.Abs(tVector.Y))
	aPSD := median(p.msd[0], p.msd[1], p.msd[2])
	var newMSD [3]float32
	for i := range newMSD {
		newMSD[i] = float32(float64(oldMSD[i]) + aWeight*float64(aPSD-p.msd[i]))
	}
	oldPSD := median(oldMSD[0], oldMSD[1], oldMSD[2])
	newPSD := median(newMSD[0], newMSD[1], newMSD[2])
	d := p.finder.Distance(p.shapeCoord.Add(tVector.MulVec(p.texelSize)))
	refPSD := float32(p.transformation.Map(d.R))
	return p.minImproveRatio*float64(abs32(newPSD-refPSD)) < float64(abs32(oldPSD-refPSD))
}

// interpolate samples v bilinearly at pos, given in texel units with texel
// centers at half-integers. Coordinates outside the view are clamped.
func interpolate(out []float32, v View[float32], pos Vector2) {
	pos = pos.Sub(V2(.5, .5))
	l := int(math.Floor(pos.X))
	b := int(math.Floor(pos.Y))
	lr := pos.X - float64(l)
	bt := pos.Y - float64(b)
	r, t := l+1, b+1
	l = clampInt(l, v.Width()-1)
	r = clampInt(r, v.Width()-1)
	b = clampInt(b, v.Height()-1)
	t = clampInt(t, v.Height()-1)
	lb, rb, lt, rt := v.At(l, b), v.At(r, b), v.At(l, t), v.At(r, t)
	for i := range out {
		out[i] = mix(mix(lb[i], rb[i], lr), mix(lt[i], rt[i], lr), bt)
	}
}

func clampInt(n, hi int) int {
	return max(0, min(n, hi))
}

func abs32(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

func interpolatedMedian(a, b []float32, t float64) float32 {
	return median(mix(a[0], b[0], t), mix(a[1], b[1], t), mix(a[2], b[2], t))
}

func interpolatedMedianQuadratic(a, l, q *[3]float32, t float64) float32 {
	var v [3]float32
	for i := range v {
		v[i] = float32(t*(t*float64(q[i])+float64(l[i])) + float64(a[i]))
	}
	return median(v[0], v[1], v[2])
}

// hasLinearArtifact reports an artifact between texel a with median am and
// its neighbour b. Only the texel further from the edge is reported.
func hasLinearArtifact(c artifactClassifier, am float32, a, b []float32) bool {
	bm := median(b[0], b[1], b[2])
	return abs32(am) >= abs32(bm) &&
		(hasLinearArtifactInner(c, am, bm, a, b, a[1]-a[0], b[1]-b[0]) ||
			hasLinearArtifactInner(c, am, bm, a, b, a[2]-a[1], b[2]-b[1]) ||
			hasLinearArtifactInner(c, am, bm, a, b, a[0]-a[2], b[0]-b[2]))
}

// hasLinearArtifactInner checks the point where two channels, whose
// differences at a and b are dA and dB, meet.
func hasLinearArtifactInner(c artifactClassifier, am, bm float32, a, b []float32, dA, dB float32) bool {
	t := float64(dA) / float64(dA-dB)
	if t > artifactTEpsilon && t < 1-artifactTEpsilon {
		xm := interpolatedMedian(a, b, t)
		return c.evaluate(t, xm, c.rangeTest(0, 1, t, am, bm, xm))
	}
	return false
}

// hasDiagonalArtifact reports an artifact between texel a and its diagonal
// neighbour d, where b and c are the two texels adjacent to both.
func hasDiagonalArtifact(cl artifactClassifier, am float32, a, b, c, d []float32) bool {
	dm := median(d[0], d[1], d[2])
	if abs32(am) < abs32(dm) {
		return false
	}
	var av, l, q [3]float32
	var tEx [3]float64
	for i := range l {
		abc := a[i] - b[i] - c[i]
		av[i] = a[i]
		// Linear and quadratic terms of bilinear interpolation along the
		// diagonal.
		l[i] = -a[i] - abc
		q[i] = d[i] + abc
		// Local extreme of each channel.
		tEx[i] = -.5 * float64(l[i]) / float64(q[i])
	}
	return hasDiagonalArtifactInner(cl, am, dm, &av, &l, &q, a[1]-a[0], b[1]-b[0]+c[1]-c[0], d[1]-d[0], tEx[0], tEx[1]) ||
		hasDiagonalArtifactInner(cl, am, dm, &av, &l, &q, a[2]-a[1], b[2]-b[1]+c[2]-c[1], d[2]-d[1], tEx[1], tEx[2]) ||
		hasDiagonalArtifactInner(cl, am, dm, &av, &l, &q, a[0]-a[2], b[0]-b[2]+c[0]-c[2], d[0]-d[2], tEx[2], tEx[0])
}

func hasDiagonalArtifactInner(cl artifactClassifier, am, dm float32, a, l, q *[3]float32, dA, dBC, dD float32, tEx0, tEx1 float64) bool {
	n, ts := SolveQuadratic(float64(dD-dBC+dA), float64(dBC-dA-dA), float64(dA))
	for i := 0; i < n; i++ {
		t := ts[i]
		// t near 0 or 1 is a natural singularity.
		if t <= artifactTEpsilon || t >= 1-artifactTEpsilon {
			continue
		}
		xm := interpolatedMedianQuadratic(a, l, q, t)
		flags := cl.rangeTest(0, 1, t, am, dm, xm)
		// Also check xm against the medians at the local extremes.
		for _, tEx := range [2]float64{tEx0, tEx1} {
			if !(tEx > 0 && tEx < 1) {
				continue
			}
			tEnd := [2]float64{0, 1}
			em := [2]float32{am, dm}
			side := 0
			if tEx > t {
				side = 1
			}
			tEnd[side] = tEx
			em[side] = interpolatedMedianQuadratic(a, l, q, tEx)
			flags |= cl.rangeTest(tEnd[0], tEnd[1], t, em[0], em[1], xm)
		}
		if cl.evaluate(t, xm, flags) {
			return true
		}
	}
	return false
}

// CorrectErrors runs error correction on a multi-channel field generated
// from shape with transformation t, as configured by cfg.
func CorrectErrors(sdf *Bitmap[float32], shape *Shape, t Transformation, cfg ErrorCorrectionConfig, overlapSupport bool) error {
	if sdf.Channels < 3 {
		return fmt.Errorf("%w: error correction needs at least 3 channels, bitmap has %d", ErrChannelCount, sdf.Channels)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Mode == ErrorCorrectionDisabled {
		return nil
	}

	stencil := NewBitmap[uint8](sdf.Width, sdf.Height, 1)
	ec := NewErrorCorrection(stencil, shape.YAxis, t)
	ec.SetMinDeviationRatio(cfg.MinDeviationRatio)
	ec.SetMinImproveRatio(cfg.MinImproveRatio)

	switch cfg.Mode {
	case ErrorCorrectionEdgePriority:
		ec.ProtectCorners(shape)
		ec.ProtectEdges(sdf)
	case ErrorCorrectionEdgeOnly:
		ec.ProtectAll()
	}
	if cfg.DistanceCheck == DoNotCheckDistance ||
		(cfg.DistanceCheck == CheckDistanceAtEdge && cfg.Mode != ErrorCorrectionEdgeOnly) {
		ec.FindErrors(sdf)
		if cfg.DistanceCheck == CheckDistanceAtEdge {
			ec.ProtectAll()
		}
	}
	if cfg.DistanceCheck == AlwaysCheckDistance || cfg.DistanceCheck == CheckDistanceAtEdge {
		ec.FindErrorsWithShape(sdf, shape, overlapSupport)
	}
	ec.Apply(sdf)

	Logger().Debug("msdf: error correction applied",
		"mode", cfg.Mode,
		"distanceCheck", cfg.DistanceCheck,
		"corrected", ec.ErrorCount(),
		"texels", sdf.Width*sdf.Height)
	return nil
}
