// Package report writes measurement results: the results CSV, physical
// unit conversion, and the run summary table.
package report

import "math"

// speed of light, km/s
const lightSpeed = 3.0e5

// arcsecToRad converts arcseconds to radians.
const arcsecToRad = math.Pi / (180.0 * 3600.0)

// Cosmology holds the constants for converting an angular size on the
// detector to a proper physical size at the source.
type Cosmology struct {
	// H0 is the Hubble constant, km/s/Mpc.
	H0 float64
	// PixScale is the detector plate scale, arcsec per pixel.
	PixScale float64
}

// DefaultCosmology matches the WFC3/IR plate scale and a local H0.
func DefaultCosmology() Cosmology {
	return Cosmology{H0: 73.8, PixScale: 0.031}
}

// KpcPerPixel returns the proper size, in kpc, subtended by one pixel
// at redshift z under the small-angle Hubble-flow distance c·z/H0.
func (c Cosmology) KpcPerPixel(z float64) float64 {
	distMpc := lightSpeed * z / c.H0
	return distMpc * c.PixScale * arcsecToRad * 1000.0
}

// Kpc converts a length in pixels at redshift z to kpc. NaN when the
// redshift is unknown.
func (c Cosmology) Kpc(pixels, z float64) float64 {
	if math.IsNaN(z) {
		return math.NaN()
	}
	return pixels * c.KpcPerPixel(z)
}
