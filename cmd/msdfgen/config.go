package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/msdf"
	"github.com/gogpu/msdf/glyph"
)

// fileConfig is the YAML configuration file. Zero values keep the
// defaults; command-line flags override the file.
type fileConfig struct {
	Size           int     `yaml:"size"`
	Range          float64 `yaml:"range"`
	Kind           string  `yaml:"kind"`
	AngleThreshold float64 `yaml:"angle_threshold"`
	Coloring       string  `yaml:"coloring"`
	Seed           uint64  `yaml:"seed"`
	Overlap        *bool   `yaml:"overlap"`
	Workers        int     `yaml:"workers"`
	CacheCapacity  int     `yaml:"cache_capacity"`

	ErrorCorrection struct {
		Mode              string  `yaml:"mode"`
		DistanceCheck     string  `yaml:"distance_check"`
		MinDeviationRatio float64 `yaml:"min_deviation_ratio"`
		MinImproveRatio   float64 `yaml:"min_improve_ratio"`
	} `yaml:"error_correction"`
}

func loadConfigFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, nil
}

// apply copies the non-zero settings of fc onto c.
func (fc *fileConfig) apply(c *glyph.Config) error {
	if fc.Size != 0 {
		c.Size = fc.Size
	}
	if fc.Range != 0 {
		c.Range = fc.Range
	}
	if fc.Kind != "" {
		k, err := parseKind(fc.Kind)
		if err != nil {
			return err
		}
		c.Kind = k
	}
	if fc.AngleThreshold != 0 {
		c.AngleThreshold = fc.AngleThreshold
	}
	if fc.Coloring != "" {
		col, err := parseColoring(fc.Coloring)
		if err != nil {
			return err
		}
		c.Coloring = col
	}
	if fc.Seed != 0 {
		c.Seed = fc.Seed
	}
	if fc.Overlap != nil {
		c.Generator.OverlapSupport = *fc.Overlap
	}
	if fc.Workers != 0 {
		c.Generator.Workers = fc.Workers
	}
	if fc.CacheCapacity != 0 {
		c.CacheCapacity = fc.CacheCapacity
	}

	ec := &c.Generator.ErrorCorrection
	if m := fc.ErrorCorrection.Mode; m != "" {
		mode, err := parseMode(m)
		if err != nil {
			return err
		}
		ec.Mode = mode
	}
	if dc := fc.ErrorCorrection.DistanceCheck; dc != "" {
		check, err := parseDistanceCheck(dc)
		if err != nil {
			return err
		}
		ec.DistanceCheck = check
	}
	if r := fc.ErrorCorrection.MinDeviationRatio; r != 0 {
		ec.MinDeviationRatio = r
	}
	if r := fc.ErrorCorrection.MinImproveRatio; r != 0 {
		ec.MinImproveRatio = r
	}
	return nil
}

func parseKind(s string) (msdf.FieldKind, error) {
	for _, k := range []msdf.FieldKind{msdf.FieldSDF, msdf.FieldPSDF, msdf.FieldMSDF, msdf.FieldMTSDF} {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown field kind %q (want sdf, psdf, msdf or mtsdf)", s)
}

func parseColoring(s string) (glyph.Coloring, error) {
	for _, c := range []glyph.Coloring{glyph.ColoringSimple, glyph.ColoringInkTrap} {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown coloring %q (want simple or inktrap)", s)
}

func parseMode(s string) (msdf.ErrorCorrectionMode, error) {
	modes := []msdf.ErrorCorrectionMode{
		msdf.ErrorCorrectionDisabled,
		msdf.ErrorCorrectionIndiscriminate,
		msdf.ErrorCorrectionEdgePriority,
		msdf.ErrorCorrectionEdgeOnly,
	}
	for _, m := range modes {
		if strings.EqualFold(strings.ReplaceAll(s, "-", ""), m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown error correction mode %q", s)
}

func parseDistanceCheck(s string) (msdf.DistanceCheckMode, error) {
	checks := []msdf.DistanceCheckMode{
		msdf.DoNotCheckDistance,
		msdf.CheckDistanceAtEdge,
		msdf.AlwaysCheckDistance,
	}
	for _, c := range checks {
		if strings.EqualFold(strings.ReplaceAll(s, "-", ""), c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown distance check %q", s)
}

// configFromFlags builds the glyph configuration from the defaults, the
// optional configuration file and the flags set on the command line.
func configFromFlags(c *cli.Context) (glyph.Config, error) {
	cfg := glyph.DefaultConfig()
	if path := c.String("config"); path != "" {
		fc, err := loadConfigFile(path)
		if err != nil {
			return cfg, err
		}
		if err := fc.apply(&cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if c.IsSet("size") {
		cfg.Size = c.Int("size")
	}
	if c.IsSet("range") {
		cfg.Range = c.Float64("range")
	}
	if c.IsSet("kind") {
		k, err := parseKind(c.String("kind"))
		if err != nil {
			return cfg, err
		}
		cfg.Kind = k
	}
	if c.IsSet("angle") {
		cfg.AngleThreshold = c.Float64("angle")
	}
	if c.IsSet("coloring") {
		col, err := parseColoring(c.String("coloring"))
		if err != nil {
			return cfg, err
		}
		cfg.Coloring = col
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Uint64("seed")
	}
	if c.IsSet("error-correction") {
		mode, err := parseMode(c.String("error-correction"))
		if err != nil {
			return cfg, err
		}
		cfg.Generator.ErrorCorrection.Mode = mode
	}
	if c.Bool("no-overlap") {
		cfg.Generator.OverlapSupport = false
	}
	if c.IsSet("workers") {
		cfg.Generator.Workers = c.Int("workers")
	}
	if c.IsSet("cache") {
		cfg.CacheCapacity = c.Int("cache")
	}
	return cfg, cfg.Validate()
}
