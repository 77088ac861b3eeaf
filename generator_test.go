package msdf

import (
	"errors"
	"math"
	"testing"
)

// squareTransformation frames a 10x10 square in a 12x12 bitmap with one
// pixel of margin and a distance range of 4 units.
func squareTransformation() Transformation {
	return NewTransformation(NewProjection(V2(1, 1), V2(1, 1)), SymmetricRange(4))
}

func noCorrection() MSDFGeneratorConfig {
	cfg := DefaultMSDFGeneratorConfig()
	cfg.ErrorCorrection.Mode = ErrorCorrectionDisabled
	return cfg
}

func TestGenerate_MatchesDistanceQueries(t *testing.T) {
	shape := coloredSquare()
	tr := squareTransformation()

	tests := []struct {
		kind FieldKind
		gen  func(*Bitmap[float32]) error
	}{
		{FieldSDF, func(b *Bitmap[float32]) error { return GenerateSDF(b, shape, tr, GeneratorConfig{Workers: 3}) }},
		{FieldPSDF, func(b *Bitmap[float32]) error { return GeneratePSDF(b, shape, tr, GeneratorConfig{Workers: 2}) }},
		{FieldMSDF, func(b *Bitmap[float32]) error { return GenerateMSDF(b, shape, tr, noCorrection()) }},
		{FieldMTSDF, func(b *Bitmap[float32]) error { return GenerateMTSDF(b, shape, tr, noCorrection()) }},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			out := NewBitmap[float32](12, 12, tt.kind.Channels())
			if err := tt.gen(out); err != nil {
				t.Fatalf("generate error = %v", err)
			}
			combiner := CombinerSimple
			if tt.kind == FieldMSDF || tt.kind == FieldMTSDF {
				combiner = CombinerOverlapping
			}
			view := out.View(shape.YAxis)
			for y := 0; y < 12; y++ {
				for x := 0; x < 12; x++ {
					p := tr.Unproject(V2(float64(x)+.5, float64(y)+.5))
					d := OneShotDistance(shape, tt.kind, combiner, p)
					want := []float64{d.R, d.G, d.B, d.A}
					for c, got := range view.At(x, y) {
						if math.Abs(float64(got)-tr.Map(want[c])) > 1e-5 {
							t.Fatalf("pixel (%d, %d) channel %d = %v, want %v", x, y, c, got, tr.Map(want[c]))
						}
					}
				}
			}
		})
	}
}

func TestGenerateSDF_SquareValues(t *testing.T) {
	shape := unitSquare(10)
	out := NewBitmap[float32](12, 12, 1)
	if err := GenerateSDF(out, shape, squareTransformation(), DefaultGeneratorConfig()); err != nil {
		t.Fatalf("GenerateSDF() error = %v", err)
	}
	// View pixel (5, 5) covers shape point (4.5, 4.5); YUpward puts it in
	// memory row 6.
	if got := out.At(5, 6)[0]; math.Abs(float64(got)+4.5/4) > 1e-6 {
		t.Errorf("center value = %v, want %v", got, -4.5/4)
	}
	// View pixel (0, 0) covers shape point (-0.5, -0.5), outside the corner.
	if got := out.At(0, 11)[0]; math.Abs(float64(got)-math.Hypot(.5, .5)/4) > 1e-6 {
		t.Errorf("corner value = %v, want %v", got, math.Hypot(.5, .5)/4)
	}
}

func TestGenerate_Orientation(t *testing.T) {
	// An asymmetric triangle generated in both orientations must produce
	// vertically mirrored memory.
	up := polygonShape(V2(0, 0), V2(10, 0), V2(0, 10))
	down := up.Clone()
	down.YAxis = YDownward
	tr := NewTransformation(NewProjection(V2(1, 1), V2(1, 1)), SymmetricRange(4))

	a := NewBitmap[float32](12, 12, 1)
	b := NewBitmap[float32](12, 12, 1)
	if err := GenerateSDF(a, up, tr, DefaultGeneratorConfig()); err != nil {
		t.Fatal(err)
	}
	if err := GenerateSDF(b, down, tr, DefaultGeneratorConfig()); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			if a.At(x, y)[0] != b.At(x, 11-y)[0] {
				t.Fatalf("pixel (%d, %d): YUpward %v, YDownward mirror %v", x, y, a.At(x, y)[0], b.At(x, 11-y)[0])
			}
		}
	}
}

func TestGenerate_WorkerCountIndependent(t *testing.T) {
	shape := glyphLikeShape()
	shape.Normalize()
	ColorEdgesSimple(shape, 3, 5)
	tr := NewTransformation(NewProjection(V2(1, 1), V2(2, 2)), SymmetricRange(4))

	var results []*Bitmap[float32]
	for _, workers := range []int{1, 4, 64} {
		cfg := DefaultMSDFGeneratorConfig()
		cfg.Workers = workers
		out := NewBitmap[float32](34, 34, 3)
		if err := GenerateMSDF(out, shape, tr, cfg); err != nil {
			t.Fatalf("GenerateMSDF(workers=%d) error = %v", workers, err)
		}
		results = append(results, out)
	}
	for i := 1; i < len(results); i++ {
		for j := range results[0].Pix {
			if math.Abs(float64(results[i].Pix[j]-results[0].Pix[j])) > 1e-6 {
				t.Fatalf("result %d differs at sample %d", i, j)
			}
		}
	}
}

func TestGenerateMSDF_SignMatchesSDF(t *testing.T) {
	shape := unitSquare(10)
	shape.Normalize()
	ColorEdgesSimple(shape, 3, 0)
	tr := NewTransformation(NewProjection(V2(2, 2), V2(2, 2)), SymmetricRange(4))

	msdf := NewBitmap[float32](28, 28, 3)
	sdf := NewBitmap[float32](28, 28, 1)
	if err := GenerateMSDF(msdf, shape, tr, DefaultMSDFGeneratorConfig()); err != nil {
		t.Fatal(err)
	}
	if err := GenerateSDF(sdf, shape, tr, DefaultGeneratorConfig()); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 28; y++ {
		for x := 0; x < 28; x++ {
			s := sdf.At(x, y)[0]
			if s == 0 {
				continue
			}
			m := msdf.At(x, y)
			if med := median(m[0], m[1], m[2]); (med < 0) != (s < 0) {
				t.Errorf("pixel (%d, %d): median %v, distance %v", x, y, med, s)
			}
		}
	}
}

func TestGenerate_OverlappingSquaresEqualSingle(t *testing.T) {
	single := coloredSquare()
	double := coloredSquare()
	double.Contours = append(double.Contours, double.Contours[0].Clone())
	tr := squareTransformation()

	for _, kind := range []FieldKind{FieldSDF, FieldMSDF} {
		a := NewBitmap[float32](12, 12, kind.Channels())
		b := NewBitmap[float32](12, 12, kind.Channels())
		var errA, errB error
		if kind == FieldSDF {
			errA = GenerateSDF(a, single, tr, DefaultGeneratorConfig())
			errB = GenerateSDF(b, double, tr, DefaultGeneratorConfig())
		} else {
			errA = GenerateMSDF(a, single, tr, DefaultMSDFGeneratorConfig())
			errB = GenerateMSDF(b, double, tr, DefaultMSDFGeneratorConfig())
		}
		if errA != nil || errB != nil {
			t.Fatalf("%v errors = %v, %v", kind, errA, errB)
		}
		for i := range a.Pix {
			if math.Abs(float64(a.Pix[i]-b.Pix[i])) > 1e-6 {
				t.Fatalf("%v sample %d: single %v, overlapping pair %v", kind, i, a.Pix[i], b.Pix[i])
			}
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	shape := unitSquare(10)
	tr := squareTransformation()

	err := GenerateSDF(NewBitmap[float32](4, 4, 3), shape, tr, DefaultGeneratorConfig())
	if !errors.Is(err, ErrChannelCount) {
		t.Errorf("GenerateSDF(3 channels) = %v, want ErrChannelCount", err)
	}
	err = GenerateMSDF(NewBitmap[float32](4, 4, 4), shape, tr, DefaultMSDFGeneratorConfig())
	if !errors.Is(err, ErrChannelCount) {
		t.Errorf("GenerateMSDF(4 channels) = %v, want ErrChannelCount", err)
	}

	var cfgErr *ConfigError
	err = GenerateSDF(NewBitmap[float32](4, 4, 1), shape, tr, GeneratorConfig{Workers: -1})
	if !errors.As(err, &cfgErr) || cfgErr.Field != "Workers" {
		t.Errorf("GenerateSDF(Workers=-1) = %v, want ConfigError on Workers", err)
	}
	cfg := DefaultMSDFGeneratorConfig()
	cfg.ErrorCorrection.MinImproveRatio = 0
	err = GenerateMSDF(NewBitmap[float32](4, 4, 3), shape, tr, cfg)
	if !errors.As(err, &cfgErr) || cfgErr.Field != "MinImproveRatio" {
		t.Errorf("GenerateMSDF(MinImproveRatio=0) = %v, want ConfigError on MinImproveRatio", err)
	}
}

func TestGenerate_EmptyBitmap(t *testing.T) {
	if err := GenerateSDF(NewBitmap[float32](0, 0, 1), unitSquare(1), squareTransformation(), DefaultGeneratorConfig()); err != nil {
		t.Errorf("GenerateSDF(empty) = %v, want nil", err)
	}
}

func BenchmarkGenerateMSDF(b *testing.B) {
	shape := glyphLikeShape()
	shape.Normalize()
	ColorEdgesSimple(shape, 3, 0)
	tr := NewTransformation(NewProjection(V2(1, 1), V2(2, 2)), SymmetricRange(4))
	out := NewBitmap[float32](34, 34, 3)
	cfg := DefaultMSDFGeneratorConfig()
	for b.Loop() {
		_ = GenerateMSDF(out, shape, tr, cfg)
	}
}
