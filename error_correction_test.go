package msdf

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

// artifactPair returns a 2x1 field whose texels both have a positive
// median but whose interpolation crosses zero halfway between them.
func artifactPair() *Bitmap[float32] {
	b := NewBitmap[float32](2, 1, 3)
	copy(b.At(0, 0), []float32{0.3, -0.3, 0.3})
	copy(b.At(1, 0), []float32{-0.3, 0.3, 0.3})
	return b
}

// pairTransformation makes one texel span 0.1 units so that the expected
// change between neighbours is small.
func pairTransformation() Transformation {
	return NewTransformation(NewProjection(V2(10, 10), V2(0, 0)), SymmetricRange(1))
}

func TestErrorCorrectionConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ErrorCorrectionConfig)
		field  string
	}{
		{"default", func(*ErrorCorrectionConfig) {}, ""},
		{"bad mode", func(c *ErrorCorrectionConfig) { c.Mode = 9 }, "Mode"},
		{"bad check", func(c *ErrorCorrectionConfig) { c.DistanceCheck = 9 }, "DistanceCheck"},
		{"zero deviation", func(c *ErrorCorrectionConfig) { c.MinDeviationRatio = 0 }, "MinDeviationRatio"},
		{"NaN improve", func(c *ErrorCorrectionConfig) { c.MinImproveRatio = math.NaN() }, "MinImproveRatio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultErrorCorrectionConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Field != tt.field {
				t.Errorf("Validate() = %v, want ConfigError on %s", err, tt.field)
			}
		})
	}
}

func TestDefaultErrorCorrectionConfig(t *testing.T) {
	cfg := DefaultErrorCorrectionConfig()
	if cfg.Mode != ErrorCorrectionEdgePriority {
		t.Errorf("Mode = %v, want EdgePriority", cfg.Mode)
	}
	if cfg.DistanceCheck != CheckDistanceAtEdge {
		t.Errorf("DistanceCheck = %v, want CheckAtEdge", cfg.DistanceCheck)
	}
	if math.Abs(cfg.MinDeviationRatio-10.0/9) > 1e-12 || math.Abs(cfg.MinImproveRatio-10.0/9) > 1e-12 {
		t.Errorf("ratios = %v, %v, want 10/9", cfg.MinDeviationRatio, cfg.MinImproveRatio)
	}
}

func TestErrorCorrection_ApplyWithoutErrorsIsNoop(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for _, channels := range []int{3, 4} {
		sdf := NewBitmap[float32](9, 7, channels)
		for i := range sdf.Pix {
			sdf.Pix[i] = rng.Float32() - 0.5
		}
		orig := append([]float32(nil), sdf.Pix...)

		stencil := NewBitmap[uint8](9, 7, 1)
		ec := NewErrorCorrection(stencil, YUpward, pairTransformation())
		ec.ProtectAll()
		ec.Apply(sdf)
		for i := range orig {
			if sdf.Pix[i] != orig[i] {
				t.Fatalf("%d channels: sample %d changed from %v to %v", channels, i, orig[i], sdf.Pix[i])
			}
		}
	}
}

func TestErrorCorrection_ApplySetsMedian(t *testing.T) {
	sdf := NewBitmap[float32](2, 1, 4)
	copy(sdf.At(0, 0), []float32{0.1, 0.4, -0.2, 0.9})
	copy(sdf.At(1, 0), []float32{0.1, 0.4, -0.2, 0.9})
	stencil := NewBitmap[uint8](2, 1, 1)
	stencil.Pix[1] = StencilError | StencilProtected

	ec := NewErrorCorrection(stencil, YDownward, pairTransformation())
	ec.Apply(sdf)

	if got := sdf.At(0, 0); got[0] != 0.1 || got[1] != 0.4 || got[2] != -0.2 {
		t.Errorf("unflagged texel = %v, want unchanged", got)
	}
	got := sdf.At(1, 0)
	for c := 0; c < 3; c++ {
		if got[c] != 0.1 {
			t.Errorf("flagged texel channel %d = %v, want median 0.1", c, got[c])
		}
	}
	if got[3] != 0.9 {
		t.Errorf("flagged texel alpha = %v, want 0.9 untouched", got[3])
	}
	if ec.ErrorCount() != 1 {
		t.Errorf("ErrorCount() = %d, want 1", ec.ErrorCount())
	}
}

func TestErrorCorrection_FindErrors(t *testing.T) {
	sdf := artifactPair()
	stencil := NewBitmap[uint8](2, 1, 1)
	ec := NewErrorCorrection(stencil, YDownward, pairTransformation())
	ec.FindErrors(sdf)
	for i, flags := range stencil.Pix {
		if flags&StencilError == 0 {
			t.Errorf("texel %d flags = %b, want error", i, flags)
		}
	}
	ec.Apply(sdf)
	for i, v := range sdf.Pix {
		if math.Abs(float64(v)-0.3) > 1e-7 {
			t.Errorf("sample %d = %v, want 0.3 after correction", i, v)
		}
	}
}

func TestErrorCorrection_FindErrorsIgnoresSmoothField(t *testing.T) {
	// A plain gradient has all channels equal and no artifacts.
	sdf := NewBitmap[float32](8, 8, 3)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			v := float32(x-4) * 0.01
			copy(sdf.At(x, y), []float32{v, v, v})
		}
	}
	stencil := NewBitmap[uint8](8, 8, 1)
	ec := NewErrorCorrection(stencil, YUpward, pairTransformation())
	ec.FindErrors(sdf)
	if n := ec.ErrorCount(); n != 0 {
		t.Errorf("ErrorCount() = %d, want 0", n)
	}
}

func TestErrorCorrection_ProtectCorners(t *testing.T) {
	shape := coloredSquare()
	// Shape (0, 0) maps to pixel (2, 2).
	tr := NewTransformation(NewProjection(V2(1, 1), V2(2, 2)), SymmetricRange(4))
	stencil := NewBitmap[uint8](14, 14, 1)
	ec := NewErrorCorrection(stencil, YDownward, tr)
	ec.ProtectCorners(shape)

	view := stencil.View(YDownward)
	// Yellow to cyan and magenta to cyan share one channel: corners at
	// (10, 0), (10, 10), (0, 10) and (0, 0).
	for _, corner := range [][2]int{{2, 2}, {12, 2}, {12, 12}, {2, 12}} {
		for _, d := range [][2]int{{-1, -1}, {0, -1}, {-1, 0}, {0, 0}} {
			x, y := corner[0]+d[0], corner[1]+d[1]
			if view.At(x, y)[0]&StencilProtected == 0 {
				t.Errorf("texel (%d, %d) next to corner %v not protected", x, y, corner)
			}
		}
	}
	if view.At(7, 7)[0] != 0 {
		t.Errorf("interior texel flags = %b, want 0", view.At(7, 7)[0])
	}
}

func TestErrorCorrection_ProtectEdges(t *testing.T) {
	// Two texels straddling an edge carried by the red channel, which is
	// not the median at either texel.
	sdf := NewBitmap[float32](2, 1, 3)
	copy(sdf.At(0, 0), []float32{-0.05, -0.01, 0.03})
	copy(sdf.At(1, 0), []float32{0.05, -0.03, 0.01})
	stencil := NewBitmap[uint8](2, 1, 1)
	ec := NewErrorCorrection(stencil, YDownward, pairTransformation())
	ec.ProtectEdges(sdf)
	for i, flags := range stencil.Pix {
		if flags&StencilProtected == 0 {
			t.Errorf("texel %d flags = %b, want protected", i, flags)
		}
	}
}

func TestEdgeBetweenTexels(t *testing.T) {
	a := []float32{-0.05, -0.01, 0.03}
	b := []float32{0.05, -0.03, 0.01}
	if got := edgeBetweenTexels(a, b); got != ColorRed {
		t.Errorf("edgeBetweenTexels() = %v, want Red", got)
	}
	same := []float32{0.1, 0.1, 0.1}
	if got := edgeBetweenTexels(same, same); got != ColorBlack {
		t.Errorf("edgeBetweenTexels(equal) = %v, want Black", got)
	}
}

func TestCorrectErrors(t *testing.T) {
	cfg := ErrorCorrectionConfig{
		Mode:              ErrorCorrectionIndiscriminate,
		DistanceCheck:     DoNotCheckDistance,
		MinDeviationRatio: 10.0 / 9,
		MinImproveRatio:   10.0 / 9,
	}
	sdf := artifactPair()
	shape := NewShape()
	shape.YAxis = YDownward
	if err := CorrectErrors(sdf, shape, pairTransformation(), cfg, true); err != nil {
		t.Fatalf("CorrectErrors() error = %v", err)
	}
	for i, v := range sdf.Pix {
		if math.Abs(float64(v)-0.3) > 1e-7 {
			t.Errorf("sample %d = %v, want 0.3", i, v)
		}
	}

	cfg.Mode = ErrorCorrectionDisabled
	sdf = artifactPair()
	if err := CorrectErrors(sdf, shape, pairTransformation(), cfg, true); err != nil {
		t.Fatalf("CorrectErrors(disabled) error = %v", err)
	}
	if sdf.Pix[0] != 0.3 || sdf.Pix[1] != -0.3 {
		t.Errorf("disabled correction changed the field: %v", sdf.Pix)
	}

	err := CorrectErrors(NewBitmap[float32](2, 2, 1), shape, pairTransformation(), cfg, true)
	if !errors.Is(err, ErrChannelCount) {
		t.Errorf("CorrectErrors(1 channel) = %v, want ErrChannelCount", err)
	}
}

func TestInterpolate(t *testing.T) {
	b := NewBitmap[float32](2, 2, 1)
	b.Pix = []float32{0, 1, 2, 3}
	v := b.View(YDownward)
	var out [1]float32
	tests := []struct {
		pos  Vector2
		want float32
	}{
		{V2(0.5, 0.5), 0},
		{V2(1.5, 0.5), 1},
		{V2(1, 1), 1.5},
		{V2(-5, -5), 0},
		{V2(9, 9), 3},
	}
	for _, tt := range tests {
		interpolate(out[:], v, tt.pos)
		if math.Abs(float64(out[0]-tt.want)) > 1e-6 {
			t.Errorf("interpolate(%v) = %v, want %v", tt.pos, out[0], tt.want)
		}
	}
}

// dipPair returns a 2x1 field whose interpolated median drops from 0.3 to
// 0.05 halfway between the texels without changing sign.
func dipPair() *Bitmap[float32] {
	b := NewBitmap[float32](2, 1, 3)
	copy(b.At(0, 0), []float32{0.5, -0.4, 0.3})
	copy(b.At(1, 0), []float32{-0.4, 0.5, 0.3})
	return b
}

// bumpPair returns a 2x1 field whose interpolated median rises from 0.27
// to 0.3 halfway between the texels. The rise is within the expected
// change between neighbours, so only the exact distance can decide it.
func bumpPair() *Bitmap[float32] {
	b := NewBitmap[float32](2, 1, 3)
	copy(b.At(0, 0), []float32{0.4, 0.2, 0.27})
	copy(b.At(1, 0), []float32{0.2, 0.4, 0.27})
	return b
}

// wallShape returns a shape whose left edge at x = 0.3 is 0.2 away from the
// point halfway between the texels of a pair under pairTransformation.
// Correcting bumpPair moves the interpolated value there from 0.3 to 0.27,
// closer to the exact 0.2.
func wallShape() *Shape {
	return polygonShape(V2(0.3, -5), V2(10, -5), V2(10, 5), V2(0.3, 5))
}

func TestErrorCorrection_ProtectedTexelsOnlyFlagInversions(t *testing.T) {
	tests := []struct {
		name      string
		field     func() *Bitmap[float32]
		protected bool
		want      bool
	}{
		{"inversion", artifactPair, false, true},
		{"protected inversion", artifactPair, true, true},
		{"dip", dipPair, false, true},
		{"protected dip", dipPair, true, false},
		{"bump", bumpPair, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stencil := NewBitmap[uint8](2, 1, 1)
			ec := NewErrorCorrection(stencil, YDownward, pairTransformation())
			if tt.protected {
				ec.ProtectAll()
			}
			ec.FindErrors(tt.field())
			for i, flags := range stencil.Pix {
				if got := flags&StencilError != 0; got != tt.want {
					t.Errorf("texel %d error flag = %v, want %v", i, got, tt.want)
				}
				if got := flags&StencilProtected != 0; got != tt.protected {
					t.Errorf("texel %d protected flag = %v, want %v", i, got, tt.protected)
				}
			}
		})
	}
}

func TestErrorCorrection_FindErrorsWithShape(t *testing.T) {
	tests := []struct {
		name         string
		field        func() *Bitmap[float32]
		protected    bool
		improveRatio float64
		want         bool
	}{
		{"bump improves", bumpPair, false, 10.0 / 9, true},
		{"bump improves too little", bumpPair, false, 2, false},
		{"protected bump", bumpPair, true, 10.0 / 9, false},
		{"inversion regardless of ratio", artifactPair, true, 1e9, true},
		{"dip regardless of ratio", dipPair, false, 1e9, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stencil := NewBitmap[uint8](2, 1, 1)
			ec := NewErrorCorrection(stencil, YDownward, pairTransformation())
			ec.SetMinImproveRatio(tt.improveRatio)
			if tt.protected {
				ec.ProtectAll()
			}
			ec.FindErrorsWithShape(tt.field(), wallShape(), true)
			for i, flags := range stencil.Pix {
				if got := flags&StencilError != 0; got != tt.want {
					t.Errorf("texel %d error flag = %v, want %v", i, got, tt.want)
				}
			}
		})
	}
}

func TestErrorCorrection_FindErrorsWithShapeSkipsFlagged(t *testing.T) {
	stencil := NewBitmap[uint8](2, 1, 1)
	stencil.Pix[0] = StencilError
	ec := NewErrorCorrection(stencil, YDownward, pairTransformation())
	ec.SetMinImproveRatio(2)
	ec.FindErrorsWithShape(bumpPair(), wallShape(), false)
	if stencil.Pix[0] != StencilError || stencil.Pix[1] != 0 {
		t.Errorf("stencil = %v, want [%d 0]", stencil.Pix, StencilError)
	}
}

func TestCorrectErrors_Modes(t *testing.T) {
	modes := []ErrorCorrectionMode{ErrorCorrectionIndiscriminate, ErrorCorrectionEdgePriority, ErrorCorrectionEdgeOnly}
	checks := []DistanceCheckMode{DoNotCheckDistance, CheckDistanceAtEdge, AlwaysCheckDistance}
	fields := []struct {
		name  string
		field func() *Bitmap[float32]
		// want reports whether the pair is corrected under mode and check.
		want func(ErrorCorrectionMode, DistanceCheckMode) bool
	}{
		{"inversion", artifactPair, func(ErrorCorrectionMode, DistanceCheckMode) bool {
			return true
		}},
		{"dip", dipPair, func(m ErrorCorrectionMode, _ DistanceCheckMode) bool {
			return m != ErrorCorrectionEdgeOnly
		}},
		{"bump", bumpPair, func(m ErrorCorrectionMode, c DistanceCheckMode) bool {
			return m != ErrorCorrectionEdgeOnly && c == AlwaysCheckDistance
		}},
	}

	for _, f := range fields {
		for _, mode := range modes {
			for _, check := range checks {
				t.Run(f.name+"/"+mode.String()+"/"+check.String(), func(t *testing.T) {
					shape := wallShape()
					shape.YAxis = YDownward
					cfg := DefaultErrorCorrectionConfig()
					cfg.Mode = mode
					cfg.DistanceCheck = check

					sdf := f.field()
					orig := append([]float32(nil), sdf.Pix...)
					if err := CorrectErrors(sdf, shape, pairTransformation(), cfg, true); err != nil {
						t.Fatalf("CorrectErrors() error = %v", err)
					}

					want := f.want(mode, check)
					for x := 0; x < 2; x++ {
						o := orig[3*x : 3*x+3]
						m := median(o[0], o[1], o[2])
						got := sdf.At(x, 0)
						if want {
							if got[0] != m || got[1] != m || got[2] != m {
								t.Errorf("texel %d = %v, want corrected to median %v", x, got, m)
							}
						} else if got[0] != o[0] || got[1] != o[1] || got[2] != o[2] {
							t.Errorf("texel %d = %v, want untouched %v", x, got, o)
						}
					}
				})
			}
		}
	}
}

func TestCorrectErrors_ImproveRatioSuppresses(t *testing.T) {
	shape := wallShape()
	cfg := ErrorCorrectionConfig{
		Mode:              ErrorCorrectionIndiscriminate,
		DistanceCheck:     AlwaysCheckDistance,
		MinDeviationRatio: 10.0 / 9,
		MinImproveRatio:   2,
	}
	sdf := bumpPair()
	orig := append([]float32(nil), sdf.Pix...)
	if err := CorrectErrors(sdf, shape, pairTransformation(), cfg, false); err != nil {
		t.Fatalf("CorrectErrors() error = %v", err)
	}
	for i := range orig {
		if sdf.Pix[i] != orig[i] {
			t.Errorf("sample %d = %v, want untouched %v", i, sdf.Pix[i], orig[i])
		}
	}
}

// correctedTexels returns the set of texels CorrectErrors changed.
func correctedTexels(before, after *Bitmap[float32]) map[int]bool {
	n := before.Channels
	set := make(map[int]bool)
	for i := 0; i < before.Width*before.Height; i++ {
		for c := 0; c < n; c++ {
			if before.Pix[i*n+c] != after.Pix[i*n+c] {
				set[i] = true
				break
			}
		}
	}
	return set
}

func TestCorrectErrors_GlyphInvariants(t *testing.T) {
	shape := glyphLikeShape()
	shape.Normalize()
	ColorEdgesSimple(shape, 3, 11)
	tr := NewTransformation(NewProjection(V2(0.5, 0.5), V2(1, 1)), SymmetricRange(4))

	gen := DefaultMSDFGeneratorConfig()
	gen.ErrorCorrection.Mode = ErrorCorrectionDisabled
	raw := NewBitmap[float32](17, 17, 4)
	if err := GenerateMTSDF(raw, shape, tr, gen); err != nil {
		t.Fatalf("GenerateMTSDF() error = %v", err)
	}

	type combo struct {
		mode  ErrorCorrectionMode
		check DistanceCheckMode
	}
	corrected := make(map[combo]map[int]bool)
	for _, mode := range []ErrorCorrectionMode{ErrorCorrectionIndiscriminate, ErrorCorrectionEdgePriority, ErrorCorrectionEdgeOnly} {
		for _, check := range []DistanceCheckMode{DoNotCheckDistance, CheckDistanceAtEdge, AlwaysCheckDistance} {
			cfg := DefaultErrorCorrectionConfig()
			cfg.Mode, cfg.DistanceCheck = mode, check
			sdf := NewBitmap[float32](raw.Width, raw.Height, raw.Channels)
			copy(sdf.Pix, raw.Pix)
			if err := CorrectErrors(sdf, shape, tr, cfg, true); err != nil {
				t.Fatalf("CorrectErrors(%v, %v) error = %v", mode, check, err)
			}

			for i := 0; i < raw.Width*raw.Height; i++ {
				before, after := raw.Pix[4*i:4*i+4], sdf.Pix[4*i:4*i+4]
				if m, got := median(before[0], before[1], before[2]), median(after[0], after[1], after[2]); m != got {
					t.Errorf("%v/%v texel %d median = %v, want %v", mode, check, i, got, m)
				}
				if after[3] != before[3] {
					t.Errorf("%v/%v texel %d true distance changed", mode, check, i)
				}
			}
			set := correctedTexels(raw, sdf)
			for i := range set {
				if px := sdf.Pix[4*i : 4*i+3]; px[0] != px[1] || px[1] != px[2] {
					t.Errorf("%v/%v corrected texel %d = %v, want equal channels", mode, check, i, px)
				}
			}
			corrected[combo{mode, check}] = set
		}
	}

	subset := func(a, b combo) {
		for i := range corrected[a] {
			if !corrected[b][i] {
				t.Errorf("texel %d corrected by %v/%v but not by %v/%v", i, a.mode, a.check, b.mode, b.check)
			}
		}
	}
	// Protection only removes candidates, and checking distance only adds
	// texels whose correction brings the field closer to the shape.
	for _, check := range []DistanceCheckMode{DoNotCheckDistance, CheckDistanceAtEdge, AlwaysCheckDistance} {
		subset(combo{ErrorCorrectionEdgeOnly, check}, combo{ErrorCorrectionEdgePriority, check})
		subset(combo{ErrorCorrectionEdgePriority, check}, combo{ErrorCorrectionIndiscriminate, check})
	}
	for _, mode := range []ErrorCorrectionMode{ErrorCorrectionIndiscriminate, ErrorCorrectionEdgePriority, ErrorCorrectionEdgeOnly} {
		subset(combo{mode, DoNotCheckDistance}, combo{mode, CheckDistanceAtEdge})
		subset(combo{mode, CheckDistanceAtEdge}, combo{mode, AlwaysCheckDistance})
	}
}
