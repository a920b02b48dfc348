package petro

import (
	"math"

	"gonum.org/v1/gonum/integrate"
)

// Radius is the outcome of one Petrosian criterion scan. Determined
// distinguishes "no crossing found" from a legitimately small radius,
// so callers never have to compare against a zero sentinel.
type Radius struct {
	Pixels     float64
	Index      int
	Determined bool
}

// Compute scans an isophote sequence for the radius where the mean
// surface brightness enclosed by the ellipse matches targetRatio times
// the local surface brightness, within tol.
//
// The scan starts at the third isophote; the first two radii give too
// short a baseline for a stable area integral. At each index i the
// intensity profile over radii[0..i] is integrated with composite
// Simpson's rule (gonum integrate.Simpsons, which handles the
// non-uniform ring spacing) and scaled by 2*pi to approximate the
// enclosed flux along the semi-major axis profile. The first index
// satisfying the criterion wins.
//
// Sequences with fewer than three isophotes, or with no crossing,
// yield an undetermined Radius.
func Compute(radii, intensities, ellipticities []float64, targetRatio, tol float64) Radius {
	if len(radii) < 3 || len(intensities) != len(radii) || len(ellipticities) != len(radii) {
		return Radius{}
	}

	for i := 2; i < len(radii); i++ {
		local := intensities[i]

		flux := integrate.Simpsons(radii[:i+1], intensities[:i+1]) * 2.0 * math.Pi

		a := radii[i]
		b := a - ellipticities[i]*a
		area := math.Pi * a * b
		if area <= 0 {
			continue
		}

		enclosed := flux / area
		if math.Abs(enclosed-targetRatio*local) < tol {
			return Radius{Pixels: radii[i], Index: i, Determined: true}
		}
	}
	return Radius{}
}
