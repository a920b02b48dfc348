// Package render draws surface brightness profile plots for processed
// records.
package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"petrofind/internal/petro"
)

// profilePoints adapts an isophote sequence to the plotting
// interfaces, with the intensity standard errors as Y error bars.
type profilePoints struct {
	plotter.XYs
	plotter.YErrors
}

// Profile plots a record's surface brightness profile — intensity with
// error bars against semi-major axis — and, when the radius was
// determined, a dashed vertical marker at the Petrosian radius. The
// plot is written as a PNG at path.
func Profile(rec *petro.SourceRecord, path string) error {
	if len(rec.Isophotes) == 0 {
		return fmt.Errorf("record %s has no isophotes to plot", rec.ID)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Surface brightness profile %s", rec.ID)
	p.X.Label.Text = "semi-major axis (pix)"
	p.Y.Label.Text = "intensity"

	pts := profilePoints{
		XYs:     make(plotter.XYs, len(rec.Isophotes)),
		YErrors: make(plotter.YErrors, len(rec.Isophotes)),
	}
	for i, iso := range rec.Isophotes {
		pts.XYs[i].X = iso.SMA
		pts.XYs[i].Y = iso.Intensity
		pts.YErrors[i].Low = iso.IntensityErr
		pts.YErrors[i].High = iso.IntensityErr
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("failed to build scatter: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)

	bars, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return fmt.Errorf("failed to build error bars: %w", err)
	}
	p.Add(bars)

	if rec.Status == petro.StatusDone && rec.PetroR > 0 {
		marker := radiusMarker(rec)
		line, err := plotter.NewLine(marker)
		if err != nil {
			return fmt.Errorf("failed to build radius marker: %w", err)
		}
		line.LineStyle.Color = color.RGBA{R: 196, A: 255}
		line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("Rp = %.2f pix", rec.PetroR), line)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

// radiusMarker spans the intensity range vertically at the Petrosian
// radius.
func radiusMarker(rec *petro.SourceRecord) plotter.XYs {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, iso := range rec.Isophotes {
		if iso.Intensity < lo {
			lo = iso.Intensity
		}
		if iso.Intensity > hi {
			hi = iso.Intensity
		}
	}
	if lo > hi {
		lo, hi = 0, 1
	}
	return plotter.XYs{
		{X: rec.PetroR, Y: lo},
		{X: rec.PetroR, Y: hi},
	}
}
