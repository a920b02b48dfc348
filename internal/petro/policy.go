package petro

// Policy holds the retry and convergence parameters for one processing
// run. The defaults reproduce the survey pipeline's tuning: 50 attempts
// caps the ellipticity schedule at 0.99 from the 0.01 seed, and the 18
// point range step reaches 1000% of the initial aperture.
type Policy struct {
	// MaxAttempts bounds both retry loops independently. It is the hard
	// bound even when the ellipticity schedule would pass 1.0 first.
	MaxAttempts int

	// StartEps is the first ellipticity guess handed to the fitter.
	StartEps float64
	// EpsStep is added to the ellipticity after each failed fit.
	EpsStep float64

	// StartFraction is the initial maximum fit radius as a percentage
	// of the aperture semi-major axis (100 = the axis itself).
	StartFraction float64
	// FractionStep is added to the fraction, in percentage points, each
	// time the radius search comes up empty.
	FractionStep float64

	// TargetRatio is the Petrosian ratio constant.
	TargetRatio float64
	// Tolerance is the sensitivity of the crossing test; smaller is
	// stricter.
	Tolerance float64
}

// DefaultPolicy returns the standard tuning.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:   50,
		StartEps:      0.01,
		EpsStep:       0.0195,
		StartFraction: 100,
		FractionStep:  18,
		TargetRatio:   0.2,
		Tolerance:     0.1,
	}
}
