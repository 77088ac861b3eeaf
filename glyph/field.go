package glyph

import (
	"math"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/msdf"
)

// Field is a generated glyph cell.
type Field struct {
	// Kind is the type of field stored in Bitmap.
	Kind msdf.FieldKind

	// Bitmap holds the field values, top row first. Values lie in
	// [-0.5, 0.5] within the distance range, negative inside.
	Bitmap *msdf.Bitmap[float32]

	// YAxis is the orientation of the source shape; frame texel rows
	// count from the bottom of Bitmap for YUpward shapes.
	YAxis msdf.Orientation

	// Frame maps shape coordinates to texels.
	Frame Frame

	// PxRange is the width of the distance range in texels.
	PxRange float64

	// Metrics describes how the field was produced.
	Metrics Metrics
}

// Metrics holds statistics about a generated field.
type Metrics struct {
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Scale    float64       `json:"scale"`
	Bounds   msdf.Rect     `json:"bounds"`
	Contours int           `json:"contours"`
	Edges    int           `json:"edges"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

// Width returns the cell width in texels.
func (f *Field) Width() int { return f.Bitmap.Width }

// Height returns the cell height in texels.
func (f *Field) Height() int { return f.Bitmap.Height }

// Empty reports whether the field was generated from a shape without
// edges.
func (f *Field) Empty() bool { return f.Metrics.Edges == 0 }

// EncodeValue converts a field value to a byte. The edge maps to 127.5;
// values inside the shape map above it.
func EncodeValue(v float32) uint8 {
	return uint8(math.Round(float64(max(0, min(1, 0.5-v))) * 255))
}

// Encode returns the field as bytes with the same channel layout.
func (f *Field) Encode() *msdf.Bitmap[uint8] {
	out := msdf.NewBitmap[uint8](f.Bitmap.Width, f.Bitmap.Height, f.Bitmap.Channels)
	for i, v := range f.Bitmap.Pix {
		out.Pix[i] = EncodeValue(v)
	}
	return out
}

// TextureData describes a field as an RGBA8 texture ready for upload.
// Single-channel fields are replicated into RGB; fields without a fourth
// channel get an opaque alpha.
type TextureData struct {
	Format      gputypes.TextureFormat
	Width       uint32
	Height      uint32
	BytesPerRow uint32
	Data        []byte
}

// Texture converts the field to RGBA8 texel data, top row first.
func (f *Field) Texture() TextureData {
	w, h, ch := f.Bitmap.Width, f.Bitmap.Height, f.Bitmap.Channels
	data := make([]byte, w*h*4)
	for i := range w * h {
		src := f.Bitmap.Pix[i*ch : (i+1)*ch]
		dst := data[i*4 : i*4+4]
		switch ch {
		case 1:
			v := EncodeValue(src[0])
			dst[0], dst[1], dst[2], dst[3] = v, v, v, 255
		case 3:
			dst[0], dst[1], dst[2], dst[3] = EncodeValue(src[0]), EncodeValue(src[1]), EncodeValue(src[2]), 255
		default:
			dst[0], dst[1], dst[2], dst[3] = EncodeValue(src[0]), EncodeValue(src[1]), EncodeValue(src[2]), EncodeValue(src[3])
		}
	}
	return TextureData{
		Format:      gputypes.TextureFormatRGBA8Unorm,
		Width:       uint32(w),
		Height:      uint32(h),
		BytesPerRow: uint32(w * 4),
		Data:        data,
	}
}

// Render draws the field at width x height into a coverage bitmap, the
// way a text shader would.
func (f *Field) Render(width, height int) (*msdf.Bitmap[float32], error) {
	out := msdf.NewBitmap[float32](width, height, 1)
	if err := msdf.RenderSDF(out, f.Bitmap, f.PxRange, 0); err != nil {
		return nil, err
	}
	return out, nil
}
