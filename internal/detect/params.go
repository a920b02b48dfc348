// Package detect locates candidate galaxies in a science frame and
// seeds an elliptical aperture for each.
package detect

// Params are the segmentation tuning knobs.
type Params struct {
	// Threshold is the surface brightness cut, in frame intensity
	// units. Smaller finds more (and fainter) sources.
	Threshold float64

	// MinPixels rejects segments smaller than this many pixels.
	MinPixels int

	// BlurSize is the Gaussian smoothing kernel width (odd, pixels)
	// applied before thresholding to suppress pixel noise.
	BlurSize int

	// KronScale multiplies the fitted segment semi-major axis to get
	// the initial aperture, so the aperture bounds the whole source
	// rather than hugging the threshold contour.
	KronScale float64
}

// DefaultParams returns segmentation parameters tuned for deep
// near-infrared survey frames.
func DefaultParams() Params {
	return Params{
		Threshold: 0.5,
		MinPixels: 10,
		BlurSize:  5,
		KronScale: 2.5,
	}
}

// WithThreshold returns a copy of the params with a new threshold.
func (p Params) WithThreshold(t float64) Params {
	p.Threshold = t
	return p
}
