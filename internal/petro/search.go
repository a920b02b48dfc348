package petro

import (
	"github.com/rs/zerolog"

	"petrofind/internal/frame"
	"petrofind/internal/isophote"
	"petrofind/pkg/geometry"
)

// SearchResult is the outcome of the radius search loop. Isophotes is
// the sequence in effect when the search finished — the range-extended
// refit replaces it wholesale on every retry, so the caller must store
// it back on the record whether or not a radius was found.
type SearchResult struct {
	Radius    Radius
	Isophotes []isophote.Isophote
	Fraction  float64
	Attempts  int
}

// SearchRadius locates a Petrosian radius in an already-fitted isophote
// sequence, extending the fit range when the criterion has no crossing.
// Each failed scan grows the maximum radius fraction by
// pol.FractionStep percentage points — strictly increasing across
// attempts — and refits with eps, the ellipticity the fit retry loop
// settled on. Exhaustion returns ErrRadiusExhausted.
func SearchRadius(fitter isophote.Fitter, f *frame.Frame, aper geometry.Ellipse, eps float64, isos []isophote.Isophote, pol Policy, log zerolog.Logger) (SearchResult, error) {
	fraction := pol.StartFraction

	radius, attempts, ok := bounded(pol.MaxAttempts,
		func() Radius {
			return Compute(
				isophote.Radii(isos),
				isophote.Intensities(isos),
				isophote.Ellipticities(isos),
				pol.TargetRatio, pol.Tolerance,
			)
		},
		func(r Radius) bool {
			return r.Determined
		},
		func() {
			fraction += pol.FractionStep
			log.Debug().
				Float64("fraction_pct", fraction).
				Msg("no petrosian crossing, extending fit range")
			isos = fitter.Fit(f, isophote.GeometryFrom(aper, eps), aper.SemiMajor*fraction/100.0)
		},
	)

	result := SearchResult{Radius: radius, Isophotes: isos, Fraction: fraction, Attempts: attempts}
	if !ok {
		return result, ErrRadiusExhausted
	}
	return result, nil
}
