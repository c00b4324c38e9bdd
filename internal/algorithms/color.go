// Color space transforms
package algorithms

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Red hue bands on OpenCV's 0-179 hue scale.
var (
	redLowerBand = [2]gocv.Scalar{gocv.NewScalar(0, 100, 100, 0), gocv.NewScalar(10, 255, 255, 0)}
	redUpperBand = [2]gocv.Scalar{gocv.NewScalar(160, 100, 100, 0), gocv.NewScalar(179, 255, 255, 0)}
)

// Grayscale converts to luma and back to three identical channels.
func Grayscale(src gocv.Mat) (gocv.Mat, error) {
	gray, err := intensity(src)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()
	return replicate(gray)
}

// Invert returns 255 - v for every channel.
func Invert(src gocv.Mat) (gocv.Mat, error) {
	if err := ValidateInput(src); err != nil {
		return gocv.NewMat(), err
	}

	output := gocv.NewMat()
	if err := gocv.BitwiseNot(src, &output); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("invert: %w", err)
	}
	return output, nil
}

// IsolateRed keeps the original color of saturated, bright red pixels and
// shows every other pixel in grayscale.
func IsolateRed(src gocv.Mat) (gocv.Mat, error) {
	if err := ValidateInput(src); err != nil {
		return gocv.NewMat(), err
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	if err := gocv.CvtColor(src, &hsv, gocv.ColorBGRToHSV); err != nil {
		return gocv.NewMat(), fmt.Errorf("convert to hsv: %w", err)
	}

	lower := gocv.NewMat()
	defer lower.Close()
	if err := gocv.InRangeWithScalar(hsv, redLowerBand[0], redLowerBand[1], &lower); err != nil {
		return gocv.NewMat(), fmt.Errorf("lower red band: %w", err)
	}

	upper := gocv.NewMat()
	defer upper.Close()
	if err := gocv.InRangeWithScalar(hsv, redUpperBand[0], redUpperBand[1], &upper); err != nil {
		return gocv.NewMat(), fmt.Errorf("upper red band: %w", err)
	}

	mask := gocv.NewMat()
	defer mask.Close()
	if err := gocv.BitwiseOr(lower, upper, &mask); err != nil {
		return gocv.NewMat(), fmt.Errorf("red mask: %w", err)
	}

	output, err := Grayscale(src)
	if err != nil {
		return gocv.NewMat(), err
	}
	if err := src.CopyToWithMask(&output, mask); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("copy red pixels: %w", err)
	}
	return output, nil
}

// intensity returns the single-channel luma of src.
func intensity(src gocv.Mat) (gocv.Mat, error) {
	if err := ValidateInput(src); err != nil {
		return gocv.NewMat(), err
	}

	gray := gocv.NewMat()
	if err := gocv.CvtColor(src, &gray, gocv.ColorBGRToGray); err != nil {
		gray.Close()
		return gocv.NewMat(), fmt.Errorf("convert to gray: %w", err)
	}
	return gray, nil
}

// replicate expands a single-channel image to three identical BGR channels.
func replicate(gray gocv.Mat) (gocv.Mat, error) {
	output := gocv.NewMat()
	if err := gocv.CvtColor(gray, &output, gocv.ColorGrayToBGR); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("convert to bgr: %w", err)
	}
	return output, nil
}
