package petro

import (
	"errors"

	"github.com/rs/zerolog"

	"petrofind/internal/frame"
	"petrofind/internal/isophote"
)

// Summary aggregates the outcome of a batch.
type Summary struct {
	Total         int
	Done          int
	FatalNoFit    int
	FatalNoRadius int
}

// Fatal returns the number of records that failed.
func (s Summary) Fatal() int {
	return s.FatalNoFit + s.FatalNoRadius
}

// SuccessRate returns the fraction of records with a determined radius,
// as a percentage. An empty batch reports 0.
func (s Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Done) / float64(s.Total) * 100.0
}

// Processor resolves a batch of source records against one frame:
// isophote fit with ellipticity retries, then the Petrosian radius
// search with range-extension retries. Records are resolved one at a
// time, each with fresh retry state; a fatal record is flagged and the
// batch moves on.
type Processor struct {
	Fitter isophote.Fitter
	Policy Policy
	Log    zerolog.Logger
}

// NewProcessor builds a processor with the default ring sampler.
func NewProcessor(pol Policy, log zerolog.Logger) *Processor {
	return &Processor{
		Fitter: isophote.DefaultSampler(),
		Policy: pol,
		Log:    log,
	}
}

// Process runs every record to completion and returns the batch
// summary. Only this loop mutates records; the controllers underneath
// return values.
func (p *Processor) Process(f *frame.Frame, records []*SourceRecord) Summary {
	sum := Summary{Total: len(records)}

	for i, rec := range records {
		log := p.Log.With().Str("id", rec.ID).Logger()
		log.Info().
			Int("n", i+1).
			Int("of", len(records)).
			Msg("fitting isophotes")

		fit, err := FitWithRetry(p.Fitter, f, rec.Aperture, p.Policy.StartFraction, p.Policy, log)
		rec.Isophotes = fit.Isophotes
		if err != nil {
			rec.Status = StatusFatalNoFit
			sum.FatalNoFit++
			log.Error().
				Int("attempts", fit.Attempts).
				Msg("FATAL: no isophote fit determined")
			continue
		}
		rec.Status = StatusFitted

		log.Info().
			Int("isophotes", len(fit.Isophotes)).
			Float64("ellipticity", fit.Ellipticity).
			Msg("calculating petrosian radius")

		res, err := SearchRadius(p.Fitter, f, rec.Aperture, fit.Ellipticity, fit.Isophotes, p.Policy, log)
		rec.Isophotes = res.Isophotes
		if err != nil {
			if !errors.Is(err, ErrRadiusExhausted) {
				log.Error().Err(err).Msg("radius search failed")
			}
			rec.Status = StatusFatalNoRadius
			sum.FatalNoRadius++
			log.Error().
				Int("attempts", res.Attempts).
				Msg("FATAL: no petrosian radius determined")
			continue
		}

		rec.PetroR = res.Radius.Pixels
		rec.Status = StatusDone
		sum.Done++
		log.Info().
			Float64("petro_r_pix", rec.PetroR).
			Int("attempts", res.Attempts).
			Msg("petrosian radius determined")
	}

	p.Log.Info().
		Int("done", sum.Done).
		Int("fatal", sum.Fatal()).
		Float64("success_rate_pct", sum.SuccessRate()).
		Msg("batch complete")
	return sum
}
