package msdf

// Bitmap is a row-major image with interleaved channels.
//
// Pix holds Width*Height*Channels samples; the sample for channel c of the
// pixel in memory row y and column x is at (y*Width+x)*Channels + c.
// Memory row 0 is the top row of the image.
type Bitmap[T ~float32 | ~uint8] struct {
	Pix      []T
	Width    int
	Height   int
	Channels int
}

// NewBitmap allocates a zeroed bitmap.
func NewBitmap[T ~float32 | ~uint8](width, height, channels int) *Bitmap[T] {
	return &Bitmap[T]{
		Pix:      make([]T, width*height*channels),
		Width:    width,
		Height:   height,
		Channels: channels,
	}
}

// At returns the samples of the pixel at memory row y, column x.
// The returned slice aliases Pix.
func (b *Bitmap[T]) At(x, y int) []T {
	i := (y*b.Width + x) * b.Channels
	return b.Pix[i : i+b.Channels : i+b.Channels]
}

// View returns an addressing of the bitmap in the row order of a shape
// with orientation o. For YUpward, view row 0 is the bottom memory row so
// that glyphs come out upright; for YDownward, view rows equal memory rows.
func (b *Bitmap[T]) View(o Orientation) View[T] {
	stride := b.Width * b.Channels
	v := View[T]{
		pix:       b.Pix,
		width:     b.Width,
		height:    b.Height,
		channels:  b.Channels,
		rowStride: stride,
	}
	if o == YUpward && b.Height > 0 {
		v.offset = (b.Height - 1) * stride
		v.rowStride = -stride
	}
	return v
}

// View addresses the pixels of a bitmap in projection row order.
// A View is an immutable value; it shares the bitmap's samples.
type View[T ~float32 | ~uint8] struct {
	pix       []T
	width     int
	height    int
	channels  int
	offset    int
	rowStride int
}

// Width returns the number of columns.
func (v View[T]) Width() int { return v.width }

// Height returns the number of rows.
func (v View[T]) Height() int { return v.height }

// Channels returns the number of samples per pixel.
func (v View[T]) Channels() int { return v.channels }

// At returns the samples of the pixel at view row y, column x.
// The returned slice aliases the bitmap.
func (v View[T]) At(x, y int) []T {
	i := v.offset + y*v.rowStride + x*v.channels
	return v.pix[i : i+v.channels : i+v.channels]
}
