package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/msdf"
	"github.com/gogpu/msdf/glyph"
	"github.com/gogpu/msdf/outline"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// job is one msdfgen invocation.
type job struct {
	fontPath    string
	chars       string
	outDir      string
	previewSize int
	metricsPath string
	config      glyph.Config
}

// glyphMetrics is one entry of the metrics file.
type glyphMetrics struct {
	Rune    string        `json:"rune"`
	Glyph   uint32        `json:"glyph"`
	File    string        `json:"file"`
	Kind    string        `json:"kind"`
	PxRange float64       `json:"px_range"`
	Metrics glyph.Metrics `json:"metrics"`
}

func (j *job) run(ctx context.Context) error {
	f, err := j.loadFont()
	if err != nil {
		return err
	}
	runes := uniqueRunes(j.chars)
	fontKey := j.fontPath
	if fontKey == "" {
		fontKey = "goregular"
	}

	// Characters mapping to the same glyph share a key, so the generator
	// loads and generates each glyph once.
	var buf sfnt.Buffer
	keys := make([]glyph.Key, 0, len(runes))
	kept := make([]rune, 0, len(runes))
	shapes := make(map[glyph.Key]*msdf.Shape)
	for _, r := range runes {
		gid, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return fmt.Errorf("glyph index of %q: %w", r, err)
		}
		key := glyph.Key{Font: fontKey, Glyph: uint32(gid)}
		if _, ok := shapes[key]; !ok {
			s, err := j.loadShape(f, &buf, r, gid)
			if errors.Is(err, outline.ErrGlyphNotFound) || errors.Is(err, outline.ErrNoOutline) {
				msdf.Logger().Warn("msdf: skipping glyph", "rune", string(r), "err", err)
				continue
			}
			if err != nil {
				return err
			}
			shapes[key] = s
		}
		keys = append(keys, key)
		kept = append(kept, r)
	}
	if len(keys) == 0 {
		return errors.New("no glyphs to generate")
	}

	gen, err := glyph.NewGenerator(j.config)
	if err != nil {
		return err
	}
	fields, err := gen.GenerateKeys(ctx, keys, func(k glyph.Key) (*msdf.Shape, error) {
		return shapes[k], nil
	})
	if err != nil {
		return err
	}
	stats := gen.CacheStats()
	msdf.Logger().Info("msdf: field cache",
		"glyphs", len(shapes),
		"characters", len(keys),
		"hits", stats.Hits,
		"misses", stats.Misses)

	if err := os.MkdirAll(j.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	metrics := make([]glyphMetrics, 0, len(fields))
	for i, field := range fields {
		r := kept[i]
		name := fmt.Sprintf("%s_U+%04X.png", field.Kind, r)
		if err := imaging.Save(fieldImage(field), filepath.Join(j.outDir, name)); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
		if j.previewSize > 0 {
			if err := j.savePreview(field, r); err != nil {
				return err
			}
		}
		metrics = append(metrics, glyphMetrics{
			Rune:    string(r),
			Glyph:   keys[i].Glyph,
			File:    name,
			Kind:    field.Kind.String(),
			PxRange: field.PxRange,
			Metrics: field.Metrics,
		})
	}

	if j.metricsPath != "" {
		data, err := json.MarshalIndent(metrics, "", "  ")
		if err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
		if err := os.WriteFile(j.metricsPath, data, 0o644); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

// loadShape loads the outline of gid, the glyph the font maps r to.
func (j *job) loadShape(f *sfnt.Font, buf *sfnt.Buffer, r rune, gid sfnt.GlyphIndex) (*msdf.Shape, error) {
	if gid == 0 {
		return nil, fmt.Errorf("%w: %q", outline.ErrGlyphNotFound, r)
	}
	return outline.SFNT(f, buf, gid)
}

func (j *job) loadFont() (*sfnt.Font, error) {
	data := goregular.TTF
	if j.fontPath != "" {
		var err error
		data, err = os.ReadFile(j.fontPath)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return f, nil
}

func (j *job) savePreview(field *glyph.Field, r rune) error {
	cov, err := field.Render(j.previewSize, j.previewSize)
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	img := image.NewGray(image.Rect(0, 0, cov.Width, cov.Height))
	for i, v := range cov.Pix {
		img.Pix[i] = uint8(v*255 + .5)
	}
	name := fmt.Sprintf("preview_U+%04X.png", r)
	if err := imaging.Save(img, filepath.Join(j.outDir, name)); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// fieldImage converts a field to an image: gray for single-channel fields,
// RGB for MSDF and RGBA for MTSDF.
func fieldImage(f *glyph.Field) image.Image {
	enc := f.Encode()
	rect := image.Rect(0, 0, enc.Width, enc.Height)
	if enc.Channels == 1 {
		return &image.Gray{Pix: enc.Pix, Stride: enc.Width, Rect: rect}
	}
	img := image.NewNRGBA(rect)
	for y := range enc.Height {
		for x := range enc.Width {
			px := enc.At(x, y)
			c := color.NRGBA{R: px[0], G: px[1], B: px[2], A: 255}
			if len(px) == 4 {
				c.A = px[3]
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// uniqueRunes returns the runes of s in NFC form, without duplicates and
// in order of first appearance.
func uniqueRunes(s string) []rune {
	seen := make(map[rune]bool)
	var runes []rune
	for _, r := range norm.NFC.String(s) {
		if seen[r] {
			continue
		}
		seen[r] = true
		runes = append(runes, r)
	}
	return runes
}
