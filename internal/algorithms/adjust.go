// Pointwise adjustments driven by a slider value
package algorithms

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Contrast scales every channel by 1 + p/100 with saturation. p = 0 is the
// identity.
func Contrast(src gocv.Mat, p int) (gocv.Mat, error) {
	if err := ValidateInput(src); err != nil {
		return gocv.NewMat(), err
	}

	alpha := 1 + float64(p)/100.0
	output := gocv.NewMat()
	if err := gocv.ConvertScaleAbs(src, &output, alpha, 0); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("contrast: %w", err)
	}
	return output, nil
}

// Brightness adds p - 50 to every channel with saturation. p = 50 is the
// identity.
func Brightness(src gocv.Mat, p int) (gocv.Mat, error) {
	if err := ValidateInput(src); err != nil {
		return gocv.NewMat(), err
	}

	// ConvertScaleAbs would fold negative results back up, AddWeighted
	// saturates at 0 instead.
	beta := float64(p - 50)
	output := gocv.NewMat()
	if err := gocv.AddWeighted(src, 1.0, src, 0.0, beta, &output); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("brightness: %w", err)
	}
	return output, nil
}

// Binarize maps intensity > threshold to white and everything else to black.
func Binarize(src gocv.Mat, threshold int) (gocv.Mat, error) {
	gray, err := intensity(src)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	binary := gocv.NewMat()
	defer binary.Close()
	// Threshold reports the threshold it used, not an error.
	gocv.Threshold(gray, &binary, float32(threshold), 255, gocv.ThresholdBinary)

	out, err := replicate(binary)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("binarize: %w", err)
	}
	return out, nil
}
