package catalog

import (
	"math"

	"petrofind/internal/detect"
	"petrofind/internal/petro"
)

// Match pairs each catalog target with the nearest detected source
// whose centroid lies within tol pixels of the target position on both
// axes, and returns a pending record per matched target. Targets with
// no source inside the box are dropped; duplicate target IDs keep the
// first occurrence.
func Match(targets []Target, sources []detect.Source, tol float64) []*petro.SourceRecord {
	var records []*petro.SourceRecord
	seen := make(map[string]bool, len(targets))

	for _, t := range targets {
		if seen[t.ID] {
			continue
		}

		best := -1
		bestDist := math.Inf(1)
		for i, s := range sources {
			if !s.Center.WithinBox(t.Position(), tol) {
				continue
			}
			if d := s.Center.Distance(t.Position()); d < bestDist {
				best = i
				bestDist = d
			}
		}
		if best < 0 {
			continue
		}

		seen[t.ID] = true
		z := t.Z
		if z < 0 {
			z = math.NaN()
		}
		src := sources[best]
		records = append(records, petro.NewSourceRecord(t.ID, z, src.Center, src.Aperture))
	}
	return records
}
