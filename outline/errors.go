package outline

import "errors"

// Sentinel errors for outline package.
var (
	// ErrGlyphNotFound is returned when a font has no glyph for a rune.
	ErrGlyphNotFound = errors.New("outline: glyph not found")

	// ErrNoOutline is returned for glyphs stored as bitmaps or SVG
	// documents instead of vector outlines.
	ErrNoOutline = errors.New("outline: glyph has no vector outline")
)
