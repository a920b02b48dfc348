package isophote

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"petrofind/internal/frame"
)

// RingSampler fits isophotes by sampling frame intensity along nested
// elliptical rings of the seed geometry. Each ring is sampled at evenly
// spaced parametric angles with bilinear interpolation; the ring's mean
// intensity and standard error come from the valid samples.
//
// A ring is rejected when too few of its samples land on valid pixels,
// or when the combined first and second harmonic amplitudes of the
// azimuthal intensity variation are large compared to the sample
// scatter — the signature of a badly chosen center or ellipticity.
// A fit with fewer than MinRings accepted rings fails outright and
// returns an empty sequence.
type RingSampler struct {
	Angles      int     // samples per ring
	Growth      float64 // multiplicative SMA step between rings
	MinSMA      float64 // innermost ring semi-major axis, pixels
	MinCoverage float64 // minimum fraction of valid samples per ring
	MaxHarmonic float64 // harmonic amplitude limit, relative to scatter
	MinRings    int     // fewer accepted rings than this is a failed fit
}

// DefaultSampler returns ring sampling parameters suitable for small
// galaxy cutouts.
func DefaultSampler() *RingSampler {
	return &RingSampler{
		Angles:      64,
		Growth:      1.1,
		MinSMA:      0.75,
		MinCoverage: 0.7,
		MaxHarmonic: 1.0,
		MinRings:    3,
	}
}

// Fit implements Fitter.
func (s *RingSampler) Fit(f *frame.Frame, g Geometry, maxSMA float64) []Isophote {
	if f == nil || maxSMA <= 0 {
		return nil
	}
	// Ellipticity at or beyond 1.0 is a degenerate ellipse; below zero
	// is meaningless. Both are unconditional fit failures.
	if g.Eps < 0 || g.Eps >= 1.0 {
		return nil
	}

	growth := s.Growth
	if growth <= 1.0 {
		growth = 1.1
	}
	minSMA := s.MinSMA
	if minSMA <= 0 {
		minSMA = 0.75
	}

	cosPA, sinPA := math.Cos(g.PA), math.Sin(g.PA)

	var isos []Isophote
	misses := 0
	for sma := minSMA; sma <= maxSMA; sma *= growth {
		iso, ok := s.sampleRing(f, g, sma, cosPA, sinPA)
		if !ok {
			// Two consecutive rejected rings means the profile has run
			// off the frame or into garbage; further rings only get
			// larger, so stop.
			misses++
			if misses >= 2 {
				break
			}
			continue
		}
		misses = 0
		isos = append(isos, iso)
	}

	minRings := s.MinRings
	if minRings <= 0 {
		minRings = 3
	}
	if len(isos) < minRings {
		return nil
	}
	return isos
}

func (s *RingSampler) sampleRing(f *frame.Frame, g Geometry, sma, cosPA, sinPA float64) (Isophote, bool) {
	angles := s.Angles
	if angles <= 0 {
		angles = 64
	}
	b := sma * (1.0 - g.Eps)

	vals := make([]float64, 0, angles)
	phis := make([]float64, 0, angles)
	for k := 0; k < angles; k++ {
		phi := 2.0 * math.Pi * float64(k) / float64(angles)
		cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)
		x := g.X0 + sma*cosPhi*cosPA - b*sinPhi*sinPA
		y := g.Y0 + sma*cosPhi*sinPA + b*sinPhi*cosPA
		v, ok := f.Bilinear(x, y)
		if !ok {
			continue
		}
		vals = append(vals, v)
		phis = append(phis, phi)
	}

	if float64(len(vals)) < s.MinCoverage*float64(angles) || len(vals) < 4 {
		return Isophote{}, false
	}

	mean := stat.Mean(vals, nil)
	sd := stat.StdDev(vals, nil)
	if math.IsNaN(mean) || math.IsNaN(sd) {
		return Isophote{}, false
	}

	if sd > 0 && s.MaxHarmonic > 0 {
		if harmonicAmplitude(vals, phis) > s.MaxHarmonic*sd {
			return Isophote{}, false
		}
	}

	return Isophote{
		SMA:          sma,
		Intensity:    mean,
		IntensityErr: sd / math.Sqrt(float64(len(vals))),
		Ellipticity:  g.Eps,
	}, true
}

// harmonicAmplitude returns the combined amplitude of the first and
// second azimuthal harmonics of the sampled intensities. For a ring
// matching the true isophote shape these harmonics vanish
// (Jedrzejewski 1987); a large residual flags a bad geometry.
func harmonicAmplitude(vals, phis []float64) float64 {
	n := float64(len(vals))
	var a1, b1, a2, b2 float64
	for i, v := range vals {
		a1 += v * math.Cos(phis[i])
		b1 += v * math.Sin(phis[i])
		a2 += v * math.Cos(2*phis[i])
		b2 += v * math.Sin(2*phis[i])
	}
	a1, b1, a2, b2 = 2*a1/n, 2*b1/n, 2*a2/n, 2*b2/n
	return math.Sqrt(a1*a1 + b1*b1 + a2*a2 + b2*b2)
}
