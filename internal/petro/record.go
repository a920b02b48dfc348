// Package petro determines Petrosian radii from isophote fits,
// including the adaptive retry policies that cope with non-convergent
// real-world profiles.
package petro

import (
	"math"

	"petrofind/internal/isophote"
	"petrofind/pkg/geometry"
)

// Status tracks where a source record is in the pipeline.
type Status int

const (
	// StatusPending means processing has not started.
	StatusPending Status = iota
	// StatusFitted means an isophote sequence was accepted but no
	// radius has been determined yet.
	StatusFitted
	// StatusDone means a Petrosian radius was determined.
	StatusDone
	// StatusFatalNoFit means the fit retry budget was exhausted with no
	// isophotes found.
	StatusFatalNoFit
	// StatusFatalNoRadius means isophotes were fitted but no radius
	// satisfied the Petrosian criterion within the search budget.
	StatusFatalNoRadius
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusFitted:
		return "fitted"
	case StatusDone:
		return "done"
	case StatusFatalNoFit:
		return "fatal-no-fit"
	case StatusFatalNoRadius:
		return "fatal-no-radius"
	default:
		return "unknown"
	}
}

// Fatal reports whether the status is a per-record failure.
func (s Status) Fatal() bool {
	return s == StatusFatalNoFit || s == StatusFatalNoRadius
}

// SourceRecord carries the per-object state for one galaxy candidate.
// The aperture is set once from source detection and never mutated; the
// isophote sequence is replaced wholesale on each refit, and the
// Petrosian radius stays 0 until determined.
type SourceRecord struct {
	ID       string
	Redshift float64 // NaN when unknown
	Position geometry.Point2D
	Aperture geometry.Ellipse

	Isophotes []isophote.Isophote
	PetroR    float64
	Status    Status
}

// NewSourceRecord creates a pending record. Pass NaN for an unknown
// redshift.
func NewSourceRecord(id string, z float64, pos geometry.Point2D, aper geometry.Ellipse) *SourceRecord {
	return &SourceRecord{
		ID:       id,
		Redshift: z,
		Position: pos,
		Aperture: aper,
		Status:   StatusPending,
	}
}

// HasRedshift reports whether the record carries a known redshift.
func (r *SourceRecord) HasRedshift() bool {
	return !math.IsNaN(r.Redshift)
}
