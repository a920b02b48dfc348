package petro

import (
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"petrofind/internal/frame"
	"petrofind/internal/isophote"
	"petrofind/pkg/geometry"
)

func TestBoundedStopsAtMaxAttempts(t *testing.T) {
	tries, advances := 0, 0
	_, attempts, ok := bounded(3,
		func() int { tries++; return 0 },
		func(int) bool { return false },
		func() { advances++ },
	)
	if ok {
		t.Fatal("nothing was acceptable, ok must be false")
	}
	if attempts != 3 || tries != 3 {
		t.Fatalf("expected exactly 3 attempts, got attempts=%d tries=%d", attempts, tries)
	}
	if advances != 3 {
		t.Fatalf("advance must run after every rejected attempt, got %d", advances)
	}
}

func TestBoundedAcceptsWithoutAdvancing(t *testing.T) {
	advances := 0
	v, attempts, ok := bounded(5,
		func() int { return 42 },
		func(v int) bool { return v == 42 },
		func() { advances++ },
	)
	if !ok || v != 42 || attempts != 1 {
		t.Fatalf("expected first-attempt acceptance, got v=%d attempts=%d ok=%v", v, attempts, ok)
	}
	if advances != 0 {
		t.Fatalf("accepted attempts must not advance, got %d advances", advances)
	}
}

// scriptedFitter replays canned isophote sequences and records the
// geometry and range of every fit call.
type scriptedFitter struct {
	results [][]isophote.Isophote // cycled; nil entries are failed fits
	calls   int
	eps     []float64
	maxSMAs []float64
}

func (s *scriptedFitter) Fit(_ *frame.Frame, g isophote.Geometry, maxSMA float64) []isophote.Isophote {
	s.eps = append(s.eps, g.Eps)
	s.maxSMAs = append(s.maxSMAs, maxSMA)
	var out []isophote.Isophote
	if len(s.results) > 0 {
		out = s.results[s.calls%len(s.results)]
	}
	s.calls++
	return out
}

func flatIsos(level float64) []isophote.Isophote {
	isos := make([]isophote.Isophote, 5)
	for i := range isos {
		isos[i] = isophote.Isophote{SMA: float64(i + 1), Intensity: level}
	}
	return isos
}

func testPolicy() Policy {
	pol := DefaultPolicy()
	pol.MaxAttempts = 3
	return pol
}

func testAperture() geometry.Ellipse {
	return geometry.Ellipse{
		Center:    geometry.Point2D{X: 50, Y: 50},
		SemiMajor: 10,
	}
}

func TestFitWithRetryExhaustsAndStepsEllipticity(t *testing.T) {
	fitter := &scriptedFitter{results: [][]isophote.Isophote{nil}}
	pol := testPolicy()

	res, err := FitWithRetry(fitter, nil, testAperture(), pol.StartFraction, pol, zerolog.Nop())
	if !errors.Is(err, ErrFitExhausted) {
		t.Fatalf("expected ErrFitExhausted, got %v", err)
	}
	if res.Attempts != 3 || fitter.calls != 3 {
		t.Fatalf("expected exactly 3 fit attempts, got attempts=%d calls=%d", res.Attempts, fitter.calls)
	}

	want := []float64{pol.StartEps, pol.StartEps + pol.EpsStep, pol.StartEps + 2*pol.EpsStep}
	for i, eps := range fitter.eps {
		if math.Abs(eps-want[i]) > 1e-12 {
			t.Fatalf("attempt %d used ellipticity %v, want %v", i+1, eps, want[i])
		}
	}
}

func TestFitWithRetryFreshStatePerCall(t *testing.T) {
	fitter := &scriptedFitter{results: [][]isophote.Isophote{nil}}
	pol := testPolicy()

	FitWithRetry(fitter, nil, testAperture(), pol.StartFraction, pol, zerolog.Nop())
	FitWithRetry(fitter, nil, testAperture(), pol.StartFraction, pol, zerolog.Nop())

	// The second call must restart the ellipticity schedule, not resume
	// where the first left off.
	if math.Abs(fitter.eps[3]-pol.StartEps) > 1e-12 {
		t.Fatalf("second call started at ellipticity %v, want %v", fitter.eps[3], pol.StartEps)
	}
}

func TestFitWithRetrySucceedsAfterPerturbation(t *testing.T) {
	fitter := &scriptedFitter{results: [][]isophote.Isophote{nil, nil, flatIsos(1)}}
	pol := testPolicy()

	res, err := FitWithRetry(fitter, nil, testAperture(), pol.StartFraction, pol, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Attempts != 3 {
		t.Fatalf("expected success on attempt 3, got %d", res.Attempts)
	}
	if len(res.Isophotes) != 5 {
		t.Fatalf("expected the accepted sequence, got %d isophotes", len(res.Isophotes))
	}
	wantEps := pol.StartEps + 2*pol.EpsStep
	if math.Abs(res.Ellipticity-wantEps) > 1e-12 {
		t.Fatalf("result ellipticity %v, want %v", res.Ellipticity, wantEps)
	}
}

func TestSearchRadiusAcceptsWithoutRefit(t *testing.T) {
	fitter := &scriptedFitter{}
	pol := testPolicy()
	pol.Tolerance = 0.3

	res, err := SearchRadius(fitter, nil, testAperture(), 0.05, flatIsos(1), pol, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Radius.Pixels != 3 {
		t.Fatalf("expected radius 3, got %v", res.Radius.Pixels)
	}
	if fitter.calls != 0 {
		t.Fatalf("crossing found in the given sequence, no refit expected, got %d calls", fitter.calls)
	}
	if res.Fraction != pol.StartFraction {
		t.Fatalf("fraction must stay at start when no refit happens, got %v", res.Fraction)
	}
}

func TestSearchRadiusExtendsRangeMonotonically(t *testing.T) {
	// The scripted refits keep returning the same non-crossing profile,
	// so the search must exhaust its budget while strictly growing the
	// fit range on each attempt.
	fitter := &scriptedFitter{results: [][]isophote.Isophote{flatIsos(1)}}
	pol := testPolicy()
	pol.Tolerance = 0.05

	aper := testAperture()
	res, err := SearchRadius(fitter, nil, aper, 0.05, flatIsos(1), pol, zerolog.Nop())
	if !errors.Is(err, ErrRadiusExhausted) {
		t.Fatalf("expected ErrRadiusExhausted, got %v", err)
	}
	if res.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", res.Attempts)
	}
	if fitter.calls != 3 {
		t.Fatalf("expected one refit per rejected attempt, got %d", fitter.calls)
	}

	prev := aper.SemiMajor * pol.StartFraction / 100.0
	for i, maxSMA := range fitter.maxSMAs {
		if maxSMA <= prev {
			t.Fatalf("refit %d range %v did not grow past %v", i+1, maxSMA, prev)
		}
		prev = maxSMA
	}
	if len(res.Isophotes) != 5 {
		t.Fatal("the last refit sequence must be returned even on failure")
	}
}
