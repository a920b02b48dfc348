// Package isophote fits nested elliptical isophotes to surface
// brightness data around a galaxy center.
package isophote

import (
	"petrofind/internal/frame"
	"petrofind/pkg/geometry"
)

// Isophote is one fitted elliptical ring: its semi-major axis length in
// pixels, the mean intensity sampled along the ring, the standard error
// of that mean, and the ring's ellipticity.
type Isophote struct {
	SMA          float64
	Intensity    float64
	IntensityErr float64
	Ellipticity  float64
}

// Geometry is the elliptical geometry seeding a fit: center, starting
// semi-major axis, ellipticity and position angle in radians.
type Geometry struct {
	X0, Y0 float64
	SMA    float64
	Eps    float64
	PA     float64
}

// GeometryFrom builds a fit geometry from a detection aperture with an
// ellipticity override. The aperture's position angle is converted from
// degrees to radians; its own ellipticity is intentionally ignored so
// the retry controller can perturb the value independently.
func GeometryFrom(aper geometry.Ellipse, eps float64) Geometry {
	return Geometry{
		X0:  aper.Center.X,
		Y0:  aper.Center.Y,
		SMA: aper.SemiMajor,
		Eps: eps,
		PA:  aper.PARadians(),
	}
}

// Fitter is the numerical primitive that fits isophotes outward from a
// seed geometry to a maximum semi-major axis. Implementations return
// rings ordered by strictly increasing SMA, or an empty slice when the
// fit fails to converge anywhere.
type Fitter interface {
	Fit(f *frame.Frame, g Geometry, maxSMA float64) []Isophote
}

// Radii extracts the SMA column from a sequence.
func Radii(isos []Isophote) []float64 {
	out := make([]float64, len(isos))
	for i, iso := range isos {
		out[i] = iso.SMA
	}
	return out
}

// Intensities extracts the mean intensity column from a sequence.
func Intensities(isos []Isophote) []float64 {
	out := make([]float64, len(isos))
	for i, iso := range isos {
		out[i] = iso.Intensity
	}
	return out
}

// Ellipticities extracts the ellipticity column from a sequence.
func Ellipticities(isos []Isophote) []float64 {
	out := make([]float64, len(isos))
	for i, iso := range isos {
		out[i] = iso.Ellipticity
	}
	return out
}
