package msdf

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// GeneratorConfig holds the settings shared by all field generators.
type GeneratorConfig struct {
	// OverlapSupport resolves overlapping contours using their windings.
	// Without it, overlaps produce seams where contours cross.
	OverlapSupport bool

	// Workers is the number of goroutines that generate rows in parallel.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int
}

// DefaultGeneratorConfig returns the default generator settings.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{OverlapSupport: true}
}

// Validate checks that the configuration is valid.
func (c GeneratorConfig) Validate() error {
	if c.Workers < 0 {
		return &ConfigError{Field: "Workers", Reason: "must not be negative"}
	}
	return nil
}

func (c GeneratorConfig) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (c GeneratorConfig) combiner() CombinerKind {
	if c.OverlapSupport {
		return CombinerOverlapping
	}
	return CombinerSimple
}

// MSDFGeneratorConfig holds the settings of multi-channel generators.
type MSDFGeneratorConfig struct {
	GeneratorConfig

	// ErrorCorrection configures the artifact removal pass that runs after
	// the field is generated.
	ErrorCorrection ErrorCorrectionConfig
}

// DefaultMSDFGeneratorConfig returns the default multi-channel settings.
func DefaultMSDFGeneratorConfig() MSDFGeneratorConfig {
	return MSDFGeneratorConfig{
		GeneratorConfig: DefaultGeneratorConfig(),
		ErrorCorrection: DefaultErrorCorrectionConfig(),
	}
}

// Validate checks that the configuration is valid.
func (c MSDFGeneratorConfig) Validate() error {
	if err := c.GeneratorConfig.Validate(); err != nil {
		return err
	}
	return c.ErrorCorrection.Validate()
}

// GenerateSDF fills a one-channel output with true signed distances.
func GenerateSDF(output *Bitmap[float32], shape *Shape, t Transformation, cfg GeneratorConfig) error {
	return generate(output, shape, t, cfg, FieldSDF)
}

// GeneratePSDF fills a one-channel output with perpendicular signed
// distances.
func GeneratePSDF(output *Bitmap[float32], shape *Shape, t Transformation, cfg GeneratorConfig) error {
	return generate(output, shape, t, cfg, FieldPSDF)
}

// GenerateMSDF fills a three-channel output with a multi-channel distance
// field and corrects its artifacts. The shape's edges must be colored.
func GenerateMSDF(output *Bitmap[float32], shape *Shape, t Transformation, cfg MSDFGeneratorConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := generate(output, shape, t, cfg.GeneratorConfig, FieldMSDF); err != nil {
		return err
	}
	return CorrectErrors(output, shape, t, cfg.ErrorCorrection, cfg.OverlapSupport)
}

// GenerateMTSDF is GenerateMSDF with the true signed distance stored in a
// fourth channel.
func GenerateMTSDF(output *Bitmap[float32], shape *Shape, t Transformation, cfg MSDFGeneratorConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := generate(output, shape, t, cfg.GeneratorConfig, FieldMTSDF); err != nil {
		return err
	}
	return CorrectErrors(output, shape, t, cfg.ErrorCorrection, cfg.OverlapSupport)
}

// generate evaluates the field at every pixel center. Rows are split into
// bands processed in parallel, each band with its own distance finder, and
// scanned in alternating directions so that the edge caches stay warm.
func generate(output *Bitmap[float32], shape *Shape, t Transformation, cfg GeneratorConfig, kind FieldKind) error {
	if output.Channels != kind.Channels() {
		return fmt.Errorf("%w: %s needs %d channels, bitmap has %d",
			ErrChannelCount, kind, kind.Channels(), output.Channels)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	w, h := output.Width, output.Height
	if w == 0 || h == 0 {
		return nil
	}
	view := output.View(shape.YAxis)
	combiner := cfg.combiner()
	workers := min(cfg.workers(), h)
	rowsPerBand := (h + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < h; start += rowsPerBand {
		end := min(start+rowsPerBand, h)
		g.Go(func() error {
			finder := NewShapeDistanceFinder(shape, kind, combiner)
			for y := start; y < end; y++ {
				for col := 0; col < w; col++ {
					x := col
					if y&1 == 1 {
						x = w - col - 1
					}
					p := t.Unproject(V2(float64(x)+.5, float64(y)+.5))
					writeDistance(view.At(x, y), finder.Distance(p), t.DistanceMapping, kind)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	Logger().Debug("msdf: field generated",
		"kind", kind,
		"width", w,
		"height", h,
		"contours", len(shape.Contours),
		"edges", shape.EdgeCount(),
		"combiner", combiner,
		"workers", workers)
	return nil
}

func writeDistance(px []float32, d Distance, m DistanceMapping, kind FieldKind) {
	switch kind {
	case FieldSDF, FieldPSDF:
		px[0] = float32(m.Map(d.R))
	case FieldMSDF:
		px[0] = float32(m.Map(d.R))
		px[1] = float32(m.Map(d.G))
		px[2] = float32(m.Map(d.B))
	case FieldMTSDF:
		px[0] = float32(m.Map(d.R))
		px[1] = float32(m.Map(d.G))
		px[2] = float32(m.Map(d.B))
		px[3] = float32(m.Map(d.A))
	}
}
