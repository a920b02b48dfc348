package petro

import "errors"

var (
	// ErrFitExhausted means the fit retry budget ran out with every
	// attempt returning an empty isophote sequence.
	ErrFitExhausted = errors.New("isophote fit attempts exhausted")

	// ErrRadiusExhausted means the radius search budget ran out with no
	// isophote satisfying the Petrosian criterion.
	ErrRadiusExhausted = errors.New("petrosian radius search exhausted")
)
