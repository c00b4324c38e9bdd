// Concrete implementations of quality metrics
package metrics

import (
	"fmt"
	"math"

	"gocv.io/x/gocv"
)

// MSE is the mean squared difference over every channel of every pixel.
type MSE struct{}

func NewMSE() *MSE {
	return &MSE{}
}

func (m *MSE) Calculate(original, processed gocv.Mat) (float64, error) {
	return meanSquaredError(original, processed)
}

func (m *MSE) GetName() string {
	return "MSE"
}

func (m *MSE) IsHigherBetter() bool {
	return false
}

// PSNR implements Peak Signal-to-Noise Ratio for 8-bit images. Identical
// images yield +Inf.
type PSNR struct{}

func NewPSNR() *PSNR {
	return &PSNR{}
}

func (p *PSNR) Calculate(original, processed gocv.Mat) (float64, error) {
	mse, err := meanSquaredError(original, processed)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}
	const maxVal = 255.0
	return 10 * math.Log10(maxVal*maxVal/mse), nil
}

func (p *PSNR) GetName() string {
	return "PSNR"
}

func (p *PSNR) IsHigherBetter() bool {
	return true
}

// SSIM implements the Structural Similarity Index on luma, averaged over
// Gaussian windows. Identical images yield 1.
type SSIM struct{}

func NewSSIM() *SSIM {
	return &SSIM{}
}

func (s *SSIM) Calculate(original, processed gocv.Mat) (float64, error) {
	if err := checkPair(original, processed); err != nil {
		return 0, err
	}
	return structuralSimilarity(original, processed)
}

func (s *SSIM) GetName() string {
	return "SSIM"
}

func (s *SSIM) IsHigherBetter() bool {
	return true
}

func checkPair(original, processed gocv.Mat) error {
	if original.Empty() || processed.Empty() {
		return fmt.Errorf("empty images")
	}
	if original.Rows() != processed.Rows() || original.Cols() != processed.Cols() ||
		original.Channels() != processed.Channels() {
		return fmt.Errorf("image dimensions mismatch")
	}
	return nil
}

func meanSquaredError(original, processed gocv.Mat) (float64, error) {
	if err := checkPair(original, processed); err != nil {
		return 0, err
	}

	origFloat := gocv.NewMat()
	defer origFloat.Close()
	procFloat := gocv.NewMat()
	defer procFloat.Close()
	if err := original.ConvertTo(&origFloat, gocv.MatTypeCV64F); err != nil {
		return 0, fmt.Errorf("convert original: %w", err)
	}
	if err := processed.ConvertTo(&procFloat, gocv.MatTypeCV64F); err != nil {
		return 0, fmt.Errorf("convert processed: %w", err)
	}

	diff := gocv.NewMat()
	defer diff.Close()
	if err := gocv.Subtract(origFloat, procFloat, &diff); err != nil {
		return 0, fmt.Errorf("subtract: %w", err)
	}

	norm := gocv.Norm(diff, gocv.NormL2)
	samples := float64(original.Total() * original.Channels())
	return norm * norm / samples, nil
}
