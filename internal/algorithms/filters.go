// Neighbourhood filters: smoothing and edge detection
package algorithms

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

const (
	// MedianAperture is the side of the median neighbourhood.
	MedianAperture = 5
	// GaussianKernel is the side of the Gaussian kernel.
	GaussianKernel = 5
	// SobelAperture is the Sobel operator size.
	SobelAperture = 5
)

// Median replaces each pixel by the per-channel median of its 5x5
// neighbourhood. Borders are replicated.
func Median(src gocv.Mat) (gocv.Mat, error) {
	if err := ValidateInput(src); err != nil {
		return gocv.NewMat(), err
	}

	output := gocv.NewMat()
	if err := gocv.MedianBlur(src, &output, MedianAperture); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("median blur: %w", err)
	}
	return output, nil
}

// Gaussian blurs each channel with a 5x5 kernel; sigma is derived from the
// kernel size.
func Gaussian(src gocv.Mat) (gocv.Mat, error) {
	if err := ValidateInput(src); err != nil {
		return gocv.NewMat(), err
	}

	output := gocv.NewMat()
	err := gocv.GaussianBlur(src, &output, image.Point{X: GaussianKernel, Y: GaussianKernel}, 0, 0, gocv.BorderDefault)
	if err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("gaussian blur: %w", err)
	}
	return output, nil
}

// Laplacian returns |∇²I| of the intensity image, saturated to 8 bits and
// replicated to three channels.
func Laplacian(src gocv.Mat) (gocv.Mat, error) {
	gray, err := intensity(src)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	lap := gocv.NewMat()
	defer lap.Close()
	if err := gocv.Laplacian(gray, &lap, gocv.MatTypeCV64F, 1, 1, 0, gocv.BorderDefault); err != nil {
		return gocv.NewMat(), fmt.Errorf("laplacian: %w", err)
	}

	abs := gocv.NewMat()
	defer abs.Close()
	if err := gocv.ConvertScaleAbs(lap, &abs, 1, 0); err != nil {
		return gocv.NewMat(), fmt.Errorf("laplacian abs: %w", err)
	}

	return replicate(abs)
}

// Sobel returns sqrt(gx² + gy²) of the intensity image, saturated to 8 bits
// and replicated to three channels.
func Sobel(src gocv.Mat) (gocv.Mat, error) {
	gray, err := intensity(src)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	gx := gocv.NewMat()
	defer gx.Close()
	gy := gocv.NewMat()
	defer gy.Close()
	if err := gocv.Sobel(gray, &gx, gocv.MatTypeCV64F, 1, 0, SobelAperture, 1, 0, gocv.BorderDefault); err != nil {
		return gocv.NewMat(), fmt.Errorf("sobel x: %w", err)
	}
	if err := gocv.Sobel(gray, &gy, gocv.MatTypeCV64F, 0, 1, SobelAperture, 1, 0, gocv.BorderDefault); err != nil {
		return gocv.NewMat(), fmt.Errorf("sobel y: %w", err)
	}

	magnitude := gocv.NewMat()
	defer magnitude.Close()
	if err := gocv.Magnitude(gx, gy, &magnitude); err != nil {
		return gocv.NewMat(), fmt.Errorf("gradient magnitude: %w", err)
	}

	// ConvertTo saturates, so magnitudes above 255 clamp.
	mag8 := gocv.NewMat()
	defer mag8.Close()
	if err := magnitude.ConvertTo(&mag8, gocv.MatTypeCV8U); err != nil {
		return gocv.NewMat(), fmt.Errorf("gradient to 8 bit: %w", err)
	}

	return replicate(mag8)
}
