// Package glyph generates fixed-size distance field cells for glyphs.
//
// A Generator frames each shape into a square cell, colors its edges,
// runs the msdf generator and keeps the float field together with the
// framing needed to map texels back to shape coordinates. Fields can be
// encoded to bytes and described as RGBA8 textures for GPU upload.
//
// Example:
//
//	gen, err := glyph.NewGenerator(glyph.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	shape, err := outline.SFNTRune(font, nil, 'A')
//	if err != nil {
//	    return err
//	}
//	field, err := gen.Generate(shape)
//	if err != nil {
//	    return err
//	}
//	tex := field.Texture()
package glyph
