package detect

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"

	"petrofind/internal/frame"
	"petrofind/pkg/geometry"
)

// Source is one detected galaxy candidate: its centroid, the initial
// elliptical aperture seeded from the segment shape, the segment
// ellipticity, and the segment size in pixels.
type Source struct {
	Center      geometry.Point2D
	Aperture    geometry.Ellipse
	Ellipticity float64
	PixelCount  int
}

// Sources segments the frame and returns one Source per accepted
// segment: blur, threshold, external contours, ellipse fit. Mirrors
// the usual convolve/detect/catalog flow for survey imagery.
func Sources(f *frame.Frame, params Params) ([]Source, error) {
	if f == nil || f.Width == 0 || f.Height == 0 {
		return nil, fmt.Errorf("empty frame")
	}

	mat, err := matFromFrame(f)
	if err != nil {
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}
	defer mat.Close()

	// Light blur before thresholding, as with a 2D Gaussian kernel
	// convolution in the classic segmentation recipe.
	blurSize := params.BlurSize
	if blurSize < 1 {
		blurSize = 1
	}
	if blurSize%2 == 0 {
		blurSize++
	}
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(mat, &blurred, image.Point{X: blurSize, Y: blurSize}, 0, 0, gocv.BorderDefault)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(blurred, &mask, float32(params.Threshold), 1, gocv.ThresholdBinary)

	mask8 := gocv.NewMat()
	defer mask8.Close()
	mask.ConvertToWithParams(&mask8, gocv.MatTypeCV8U, 255, 0)

	contours := gocv.FindContours(mask8, gocv.RetrievalExternal, gocv.ChainApproxNone)
	defer contours.Close()

	var sources []Source
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		area := gocv.ContourArea(contour)
		if int(area) < params.MinPixels {
			continue
		}
		// FitEllipse needs at least five contour points.
		if contour.Size() < 5 {
			continue
		}

		rr := gocv.FitEllipse(contour)
		major := float64(rr.Width) / 2.0
		minor := float64(rr.Height) / 2.0
		angle := rr.Angle
		if minor > major {
			major, minor = minor, major
			angle += 90.0
		}
		if major <= 0 {
			continue
		}

		eps := 1.0 - minor/major
		center := geometry.Point2D{X: float64(rr.Center.X), Y: float64(rr.Center.Y)}
		sources = append(sources, Source{
			Center: center,
			Aperture: geometry.Ellipse{
				Center:        center,
				SemiMajor:     major * params.KronScale,
				Ellipticity:   eps,
				PositionAngle: angle,
			},
			Ellipticity: eps,
			PixelCount:  int(area),
		})
	}

	return sources, nil
}

// matFromFrame copies the frame into a 32-bit float Mat. NaN pixels
// become zero so the threshold treats missing data as background.
func matFromFrame(f *frame.Frame) (gocv.Mat, error) {
	mat := gocv.NewMatWithSize(f.Height, f.Width, gocv.MatTypeCV32F)
	data, err := mat.DataPtrFloat32()
	if err != nil {
		mat.Close()
		return gocv.Mat{}, err
	}
	for i, v := range f.Pix {
		if math.IsNaN(v) {
			data[i] = 0
			continue
		}
		data[i] = float32(v)
	}
	return mat, nil
}
