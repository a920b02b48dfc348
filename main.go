// Command petrofind displays a FITS science frame with the measured
// Petrosian radii overlaid. Run petrorun first to produce the results
// CSV; this viewer is for inspecting what it found.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"

	"petrofind/internal/frame"
	"petrofind/internal/report"
)

const maxViewDim = 1000

func main() {
	fitsPath := flag.String("fits", "", "Path to FITS science frame")
	hdu := flag.String("hdu", "", "Image extension name (default: first image HDU)")
	resultsPath := flag.String("results", "", "Results CSV from petrorun (optional)")
	flag.Parse()

	if *fitsPath == "" {
		fmt.Println("Usage: petrofind -fits <frame.fits> [-hdu SCI] [-results petrosian.csv]")
		os.Exit(1)
	}

	f, err := frame.LoadFITS(*fitsPath, *hdu)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load frame: %v\n", err)
		os.Exit(1)
	}

	var rows []report.Row
	if *resultsPath != "" {
		rows, err = report.ReadCSV(*resultsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load results: %v\n", err)
			os.Exit(1)
		}
	}

	img := overlay(f, rows)
	view := scaleToFit(img, maxViewDim)

	myApp := app.NewWithID("io.petrofind.viewer")
	w := myApp.NewWindow(fmt.Sprintf("petrofind - %s", *fitsPath))

	frameImg := canvas.NewImageFromImage(view)
	frameImg.FillMode = canvas.ImageFillContain
	frameImg.SetMinSize(fyne.NewSize(float32(view.Bounds().Dx()), float32(view.Bounds().Dy())))

	status := widget.NewLabel(statusLine(f, rows))
	w.SetContent(container.NewBorder(nil, status, nil, nil, frameImg))
	w.Resize(fyne.NewSize(float32(view.Bounds().Dx()), float32(view.Bounds().Dy())+40))
	w.ShowAndRun()
}

func statusLine(f *frame.Frame, rows []report.Row) string {
	determined := 0
	for _, row := range rows {
		if row.PetroPix > 0 {
			determined++
		}
	}
	return fmt.Sprintf("%dx%d px, %d targets, %d with Petrosian radius",
		f.Width, f.Height, len(rows), determined)
}

// overlay renders the frame with a percentile stretch and draws a red
// circle of the Petrosian radius around each determined target. The
// rendered image is flipped to screen orientation, so target rows flip
// with it.
func overlay(f *frame.Frame, rows []report.Row) *image.RGBA {
	gray := f.Render(1, 99)
	out := image.NewRGBA(gray.Bounds())
	draw.Draw(out, out.Bounds(), gray, image.Point{}, draw.Src)

	red := color.RGBA{R: 255, A: 255}
	for _, row := range rows {
		if row.PetroPix <= 0 {
			continue
		}
		cx := row.CenterX
		cy := float64(f.Height-1) - row.CenterY
		drawCircle(out, cx, cy, row.PetroPix, red)
	}
	return out
}

// drawCircle plots the circle point by point, one step per
// circumference pixel.
func drawCircle(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	steps := int(2 * math.Pi * r)
	if steps < 16 {
		steps = 16
	}
	for i := 0; i < steps; i++ {
		phi := 2 * math.Pi * float64(i) / float64(steps)
		x := int(cx + r*math.Cos(phi))
		y := int(cy + r*math.Sin(phi))
		if image.Pt(x, y).In(img.Bounds()) {
			img.SetRGBA(x, y, c)
		}
	}
}

// scaleToFit shrinks the image so its largest dimension is at most
// maxDim. Frames smaller than the limit are shown as-is.
func scaleToFit(img *image.RGBA, maxDim int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}
	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
