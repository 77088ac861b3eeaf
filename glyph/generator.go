package glyph

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/msdf"
	"github.com/gogpu/msdf/cache"
)

// Key identifies a glyph for caching: a font name chosen by the caller and
// the glyph index within that font.
type Key struct {
	Font  string
	Glyph uint32
}

// KeyHasher hashes a Key for cache shard selection.
func KeyHasher(k Key) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k.Font)) // fnv.Write never returns an error
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], k.Glyph)
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// Generator creates glyph fields. It is safe for concurrent use.
type Generator struct {
	config Config
	cache  *cache.ShardedCache[Key, *Field]
}

// NewGenerator creates a generator with the given configuration.
func NewGenerator(config Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{config: config}
	if config.CacheCapacity > 0 {
		g.cache = cache.NewSharded[Key, *Field](config.CacheCapacity, KeyHasher)
	}
	return g, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.config
}

// Generate creates a field from shape. The shape is normalized and colored
// in place; it must not be shared with goroutines that read it.
func (g *Generator) Generate(shape *msdf.Shape) (*Field, error) {
	return g.generate(shape, g.config.Generator)
}

func (g *Generator) generate(shape *msdf.Shape, gen msdf.MSDFGeneratorConfig) (*Field, error) {
	start := time.Now()
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("glyph: %w", err)
	}

	cfg := g.config
	out := msdf.NewBitmap[float32](cfg.Size, cfg.Size, cfg.Kind.Channels())
	field := &Field{
		Kind:    cfg.Kind,
		Bitmap:  out,
		YAxis:   shape.YAxis,
		PxRange: cfg.Range,
		Metrics: Metrics{
			Width:    cfg.Size,
			Height:   cfg.Size,
			Contours: len(shape.Contours),
		},
	}

	shape.Normalize()
	field.Metrics.Edges = shape.EdgeCount()
	bounds := shape.Bounds()
	if field.Metrics.Edges == 0 || bounds.IsEmpty() {
		// Nothing to draw: every texel is far outside.
		for i := range out.Pix {
			out.Pix[i] = 0.5
		}
		field.Frame = Frame{Scale: 1, Range: cfg.Range}
		field.Metrics.Scale = 1
		field.Metrics.Elapsed = time.Since(start)
		return field, nil
	}

	switch cfg.Coloring {
	case ColoringInkTrap:
		msdf.ColorEdgesInkTrap(shape, cfg.AngleThreshold, cfg.Seed)
	default:
		msdf.ColorEdgesSimple(shape, cfg.AngleThreshold, cfg.Seed)
	}

	field.Frame = AutoFrame(bounds, cfg.Size, cfg.Range)
	t := field.Frame.Transformation()
	var err error
	switch cfg.Kind {
	case msdf.FieldSDF:
		err = msdf.GenerateSDF(out, shape, t, gen.GeneratorConfig)
	case msdf.FieldPSDF:
		err = msdf.GeneratePSDF(out, shape, t, gen.GeneratorConfig)
	case msdf.FieldMSDF:
		err = msdf.GenerateMSDF(out, shape, t, gen)
	case msdf.FieldMTSDF:
		err = msdf.GenerateMTSDF(out, shape, t, gen)
	}
	if err != nil {
		return nil, fmt.Errorf("glyph: generate %s: %w", cfg.Kind, err)
	}

	field.Metrics.Scale = field.Frame.Scale
	field.Metrics.Bounds = bounds
	field.Metrics.Elapsed = time.Since(start)
	return field, nil
}

// GenerateKey returns the cached field for key, or loads the shape with
// load, generates its field and caches it. Without a cache it always
// generates.
func (g *Generator) GenerateKey(key Key, load func() (*msdf.Shape, error)) (*Field, error) {
	if g.cache != nil {
		if f, ok := g.cache.Get(key); ok {
			return f, nil
		}
	}
	shape, err := load()
	if err != nil {
		return nil, fmt.Errorf("glyph: load %s/%d: %w", key.Font, key.Glyph, err)
	}
	f, err := g.Generate(shape)
	if err != nil {
		return nil, err
	}
	if g.cache != nil {
		g.cache.Set(key, f)
	}
	return f, nil
}

// CacheStats returns the statistics of the field cache, or zero stats
// when caching is disabled.
func (g *Generator) CacheStats() cache.Stats {
	if g.cache == nil {
		return cache.Stats{}
	}
	return g.cache.Stats()
}

// GenerateBatch generates fields for several shapes in parallel, one
// glyph per goroutine. ctx is checked before each glyph starts; a glyph
// already being generated runs to completion. The first error cancels the
// remaining glyphs and is returned.
func (g *Generator) GenerateBatch(ctx context.Context, shapes []*msdf.Shape) ([]*Field, error) {
	start := time.Now()
	gen := g.config.Generator
	workers := gen.Workers
	// Parallelism comes from the batch; each glyph runs on one goroutine.
	gen.Workers = 1

	fields := make([]*Field, len(shapes))
	eg, ctx := errgroup.WithContext(ctx)
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	eg.SetLimit(workers)
	for i, shape := range shapes {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := g.generate(shape, gen)
			if err != nil {
				return fmt.Errorf("glyph %d: %w", i, err)
			}
			fields[i] = f
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	msdf.Logger().Info("msdf: glyph batch generated",
		"glyphs", len(shapes),
		"size", g.config.Size,
		"kind", g.config.Kind,
		"elapsed", time.Since(start))
	return fields, nil
}

// GenerateKeys returns one field per key. Keys found in the cache and keys
// repeated within keys are generated once; the shapes of the others are
// loaded in order on the calling goroutine and generated with
// GenerateBatch. New fields are added to the cache.
func (g *Generator) GenerateKeys(ctx context.Context, keys []Key, load func(Key) (*msdf.Shape, error)) ([]*Field, error) {
	fields := make([]*Field, len(keys))
	first := make(map[Key]int, len(keys))
	var shapes []*msdf.Shape
	var pending []int
	for i, key := range keys {
		if _, ok := first[key]; ok {
			continue
		}
		first[key] = i
		if g.cache != nil {
			if f, ok := g.cache.Get(key); ok {
				fields[i] = f
				continue
			}
		}
		shape, err := load(key)
		if err != nil {
			return nil, fmt.Errorf("glyph: load %s/%d: %w", key.Font, key.Glyph, err)
		}
		shapes = append(shapes, shape)
		pending = append(pending, i)
	}

	if len(shapes) > 0 {
		generated, err := g.GenerateBatch(ctx, shapes)
		if err != nil {
			return nil, err
		}
		for n, i := range pending {
			fields[i] = generated[n]
			if g.cache != nil {
				g.cache.Set(keys[i], generated[n])
			}
		}
	}
	for i, key := range keys {
		fields[i] = fields[first[key]]
	}
	return fields, nil
}
