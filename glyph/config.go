package glyph

import (
	"math"

	"github.com/gogpu/msdf"
)

// Coloring selects the edge coloring strategy.
type Coloring uint8

const (
	// ColoringSimple switches color at every corner.
	ColoringSimple Coloring = iota

	// ColoringInkTrap keeps small notches from disturbing the colors of
	// the surrounding corners.
	ColoringInkTrap
)

// String returns a string representation of the coloring strategy.
func (c Coloring) String() string {
	switch c {
	case ColoringSimple:
		return "simple"
	case ColoringInkTrap:
		return "inktrap"
	default:
		return "Unknown"
	}
}

// Config holds glyph field generation parameters.
type Config struct {
	// Size is the width and height of a cell in texels.
	// Default: 32
	Size int

	// Range is the width of the distance range in texels. Larger values
	// allow wider effects such as outlines and shadows.
	// Default: 4.0
	Range float64

	// Kind is the type of field to generate.
	// Default: msdf.FieldMSDF
	Kind msdf.FieldKind

	// AngleThreshold is the turn in radians above which a junction between
	// edges counts as a corner.
	// Default: 3.0
	AngleThreshold float64

	// Coloring is the edge coloring strategy.
	Coloring Coloring

	// Seed drives the edge coloring; equal seeds give equal fields.
	Seed uint64

	// Generator configures the field generator and its error correction.
	Generator msdf.MSDFGeneratorConfig

	// CacheCapacity is the number of fields kept per cache shard by
	// Generator.GenerateKey. Zero disables caching.
	CacheCapacity int
}

// DefaultConfig returns the default glyph configuration.
func DefaultConfig() Config {
	return Config{
		Size:           32,
		Range:          4.0,
		Kind:           msdf.FieldMSDF,
		AngleThreshold: 3.0,
		Coloring:       ColoringSimple,
		Generator:      msdf.DefaultMSDFGeneratorConfig(),
	}
}

// Validate checks if the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.Size < 8 {
		return &msdf.ConfigError{Field: "Size", Reason: "must be at least 8"}
	}
	if c.Size > 4096 {
		return &msdf.ConfigError{Field: "Size", Reason: "must be at most 4096"}
	}
	if c.Range <= 0 {
		return &msdf.ConfigError{Field: "Range", Reason: "must be positive"}
	}
	if c.Range >= float64(c.Size) {
		return &msdf.ConfigError{Field: "Range", Reason: "must be smaller than Size"}
	}
	switch c.Kind {
	case msdf.FieldSDF, msdf.FieldPSDF, msdf.FieldMSDF, msdf.FieldMTSDF:
	default:
		return &msdf.ConfigError{Field: "Kind", Reason: "unknown field kind"}
	}
	if c.AngleThreshold <= 0 || c.AngleThreshold > math.Pi {
		return &msdf.ConfigError{Field: "AngleThreshold", Reason: "must be in (0, pi]"}
	}
	if c.Coloring > ColoringInkTrap {
		return &msdf.ConfigError{Field: "Coloring", Reason: "unknown coloring strategy"}
	}
	if c.CacheCapacity < 0 {
		return &msdf.ConfigError{Field: "CacheCapacity", Reason: "must not be negative"}
	}
	return c.Generator.Validate()
}
