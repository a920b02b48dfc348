package petro

import (
	"github.com/rs/zerolog"

	"petrofind/internal/frame"
	"petrofind/internal/isophote"
	"petrofind/pkg/geometry"
)

// FitResult is the outcome of the fit retry loop: the accepted isophote
// sequence, the ellipticity that produced it, and the number of fit
// attempts made. Controllers return values; the orchestrating loop is
// the only place records are updated.
type FitResult struct {
	Isophotes   []isophote.Isophote
	Ellipticity float64
	Attempts    int
}

// FitWithRetry drives the isophote fitter with adaptive ellipticity
// perturbation. Starting from pol.StartEps, each empty fit bumps the
// ellipticity by pol.EpsStep and tries again, up to pol.MaxAttempts
// total fit calls. fraction is the maximum fit radius as a percentage
// of the aperture semi-major axis.
//
// MaxAttempts is the hard bound even when the ellipticity schedule
// would reach the degenerate 1.0 first; the fitter simply keeps
// failing for those attempts. Exhaustion returns ErrFitExhausted.
func FitWithRetry(fitter isophote.Fitter, f *frame.Frame, aper geometry.Ellipse, fraction float64, pol Policy, log zerolog.Logger) (FitResult, error) {
	maxSMA := aper.SemiMajor * fraction / 100.0
	eps := pol.StartEps

	isos, attempts, ok := bounded(pol.MaxAttempts,
		func() []isophote.Isophote {
			return fitter.Fit(f, isophote.GeometryFrom(aper, eps), maxSMA)
		},
		func(isos []isophote.Isophote) bool {
			return len(isos) > 0
		},
		func() {
			eps += pol.EpsStep
			log.Debug().
				Float64("ellipticity", eps).
				Msg("fit failed, altering ellipticity")
		},
	)

	result := FitResult{Isophotes: isos, Ellipticity: eps, Attempts: attempts}
	if !ok {
		return result, ErrFitExhausted
	}
	return result, nil
}
