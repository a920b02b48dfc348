// Package frame provides science-frame loading and pixel access.
package frame

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/siravan/fits"
)

// Frame holds a single 2D intensity image as a flat float64 buffer in
// row-major order. Values may be NaN where the instrument provided no
// data; all sampling helpers treat NaN as invalid.
type Frame struct {
	Width  int
	Height int
	Pix    []float64
}

// New creates an empty frame of the given size.
func New(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}
}

// At returns the intensity at integer pixel (x, y). Out-of-bounds
// access returns NaN.
func (f *Frame) At(x, y int) float64 {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return math.NaN()
	}
	return f.Pix[y*f.Width+x]
}

// Set stores an intensity at (x, y). Out-of-bounds writes are ignored.
func (f *Frame) Set(x, y int, v float64) {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return
	}
	f.Pix[y*f.Width+x] = v
}

// Bilinear samples the frame at a fractional pixel position using
// bilinear interpolation. The second return value is false when the
// position falls outside the frame or any contributing pixel is NaN.
func (f *Frame) Bilinear(x, y float64) (float64, bool) {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	if x0 < 0 || x0+1 >= f.Width || y0 < 0 || y0+1 >= f.Height {
		return 0, false
	}
	fx := x - float64(x0)
	fy := y - float64(y0)

	v00 := f.Pix[y0*f.Width+x0]
	v10 := f.Pix[y0*f.Width+x0+1]
	v01 := f.Pix[(y0+1)*f.Width+x0]
	v11 := f.Pix[(y0+1)*f.Width+x0+1]
	if math.IsNaN(v00) || math.IsNaN(v10) || math.IsNaN(v01) || math.IsNaN(v11) {
		return 0, false
	}

	top := v00*(1-fx) + v10*fx
	bottom := v01*(1-fx) + v11*fx
	return top*(1-fy) + bottom*fy, true
}

// Percentiles returns the lo and hi percentile intensities of the
// finite pixels, for display stretching. Percentiles are in [0, 100].
func (f *Frame) Percentiles(lo, hi float64) (float64, float64) {
	vals := make([]float64, 0, len(f.Pix))
	for _, v := range f.Pix {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return 0, 0
	}
	sort.Float64s(vals)
	idx := func(p float64) int {
		i := int(p / 100.0 * float64(len(vals)-1))
		if i < 0 {
			i = 0
		}
		if i >= len(vals) {
			i = len(vals) - 1
		}
		return i
	}
	return vals[idx(lo)], vals[idx(hi)]
}

// LoadFITS reads the named HDU of a FITS file into a Frame. An empty
// hdu selects the first image HDU. Axis order follows the FITS
// convention: NAXIS1 is the x (width) axis.
func LoadFITS(path, hdu string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FITS file: %w", err)
	}
	defer file.Close()

	units, err := fits.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	unit, err := selectImageUnit(units, hdu)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	width := unit.Naxis[0]
	height := unit.Naxis[1]
	f := New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			f.Pix[y*width+x] = unit.FloatAt(x, y)
		}
	}
	return f, nil
}

func selectImageUnit(units []*fits.Unit, hdu string) (*fits.Unit, error) {
	for _, u := range units {
		if !u.HasImage() || len(u.Naxis) < 2 {
			continue
		}
		if hdu == "" {
			return u, nil
		}
		if name, ok := u.Keys["EXTNAME"].(string); ok && name == hdu {
			return u, nil
		}
	}
	if hdu == "" {
		return nil, fmt.Errorf("no 2D image HDU found")
	}
	return nil, fmt.Errorf("no image HDU named %q", hdu)
}
