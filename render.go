package msdf

import "fmt"

// RenderSDF renders a distance field into a one-channel coverage bitmap of
// any size, the way a shader would sample it: bilinear interpolation
// followed by the median of the color channels.
//
// pxRange is the width of the field's distance range in field texels and
// midValue the field value of the edge (0 for fields produced by this
// package). Coverage ramps linearly over one output pixel across the edge.
func RenderSDF(output, sdf *Bitmap[float32], pxRange float64, midValue float32) error {
	if output.Channels != 1 {
		return fmt.Errorf("%w: render output needs 1 channel, bitmap has %d", ErrChannelCount, output.Channels)
	}
	switch sdf.Channels {
	case 1, 3, 4:
	default:
		return fmt.Errorf("%w: unsupported field with %d channels", ErrChannelCount, sdf.Channels)
	}
	if output.Width == 0 || output.Height == 0 || sdf.Width == 0 || sdf.Height == 0 {
		return nil
	}

	src := sdf.View(YDownward)
	dst := output.View(YDownward)
	scale := V2(float64(sdf.Width)/float64(output.Width), float64(sdf.Height)/float64(output.Height))
	rangePx := pxRange * float64(output.Width+output.Height) / float64(sdf.Width+sdf.Height)

	var sample [4]float32
	for y := 0; y < output.Height; y++ {
		for x := 0; x < output.Width; x++ {
			pos := V2(float64(x)+.5, float64(y)+.5).MulVec(scale)
			interpolate(sample[:sdf.Channels], src, pos)
			m := sample[0]
			if sdf.Channels >= 3 {
				m = median(sample[0], sample[1], sample[2])
			}
			coverage := 0.5 - float64(m-midValue)*rangePx
			dst.At(x, y)[0] = float32(max(0, min(1, coverage)))
		}
	}
	return nil
}
