package frame

import (
	"image"
	"math"
)

// Render converts the frame to an 8-bit grayscale image using a
// percentile stretch, so that faint structure stays visible next to
// bright cores. NaN pixels render black.
func (f *Frame) Render(loPct, hiPct float64) *image.Gray {
	lo, hi := f.Percentiles(loPct, hiPct)
	span := hi - lo
	if span <= 0 {
		span = 1
	}

	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			v := f.Pix[y*f.Width+x]
			if math.IsNaN(v) {
				continue
			}
			s := (v - lo) / span
			if s < 0 {
				s = 0
			}
			if s > 1 {
				s = 1
			}
			// FITS rows count upward from the bottom; image rows
			// count downward, so flip vertically for display.
			img.Pix[(f.Height-1-y)*img.Stride+x] = uint8(s * 255)
		}
	}
	return img
}
