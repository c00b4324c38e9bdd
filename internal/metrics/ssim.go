package metrics

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

const (
	ssimC1     = 6.5025  // (0.01 * 255)^2
	ssimC2     = 58.5225 // (0.03 * 255)^2
	ssimWindow = 11
	ssimSigma  = 1.5
)

// scratch owns the intermediate Mats of one computation.
type scratch struct {
	mats []*gocv.Mat
}

func (s *scratch) mat() *gocv.Mat {
	m := gocv.NewMat()
	s.mats = append(s.mats, &m)
	return &m
}

func (s *scratch) close() {
	for _, m := range s.mats {
		m.Close()
	}
}

func structuralSimilarity(original, processed gocv.Mat) (float64, error) {
	var s scratch
	defer s.close()

	f1, f2 := s.mat(), s.mat()
	mu1, mu2 := s.mat(), s.mat()
	mu1Sq, mu2Sq, mu1Mu2 := s.mat(), s.mat(), s.mat()
	f1Sq, f2Sq, f1f2 := s.mat(), s.mat(), s.mat()
	sigma1Sq, sigma2Sq, sigma12 := s.mat(), s.mat(), s.mat()
	num1, num2, den1, den2 := s.mat(), s.mat(), s.mat(), s.mat()
	num, den, ssimMap := s.mat(), s.mat(), s.mat()

	steps := []struct {
		name string
		run  func() error
	}{
		{"luma original", func() error { return lumaFloat(original, f1, s.mat()) }},
		{"luma processed", func() error { return lumaFloat(processed, f2, s.mat()) }},
		{"mean original", func() error { return smooth(*f1, mu1) }},
		{"mean processed", func() error { return smooth(*f2, mu2) }},
		{"mean products", func() error {
			if err := gocv.Multiply(*mu1, *mu1, mu1Sq); err != nil {
				return err
			}
			if err := gocv.Multiply(*mu2, *mu2, mu2Sq); err != nil {
				return err
			}
			return gocv.Multiply(*mu1, *mu2, mu1Mu2)
		}},
		{"variance original", func() error { return localMoment(*f1, *f1, *mu1Sq, f1Sq, sigma1Sq) }},
		{"variance processed", func() error { return localMoment(*f2, *f2, *mu2Sq, f2Sq, sigma2Sq) }},
		{"covariance", func() error { return localMoment(*f1, *f2, *mu1Mu2, f1f2, sigma12) }},
		{"numerator", func() error {
			if err := gocv.AddWeighted(*mu1Mu2, 2, *mu1Mu2, 0, ssimC1, num1); err != nil {
				return err
			}
			if err := gocv.AddWeighted(*sigma12, 2, *sigma12, 0, ssimC2, num2); err != nil {
				return err
			}
			return gocv.Multiply(*num1, *num2, num)
		}},
		{"denominator", func() error {
			if err := gocv.AddWeighted(*mu1Sq, 1, *mu2Sq, 1, ssimC1, den1); err != nil {
				return err
			}
			if err := gocv.AddWeighted(*sigma1Sq, 1, *sigma2Sq, 1, ssimC2, den2); err != nil {
				return err
			}
			return gocv.Multiply(*den1, *den2, den)
		}},
		{"ratio", func() error { return gocv.Divide(*num, *den, ssimMap) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return 0, fmt.Errorf("ssim %s: %w", step.name, err)
		}
	}

	return ssimMap.Mean().Val1, nil
}

// lumaFloat writes the 32-bit float luma of src to dst.
func lumaFloat(src gocv.Mat, dst, tmp *gocv.Mat) error {
	gray := src
	if src.Channels() == 3 {
		if err := gocv.CvtColor(src, tmp, gocv.ColorBGRToGray); err != nil {
			return err
		}
		gray = *tmp
	}
	return gray.ConvertTo(dst, gocv.MatTypeCV32F)
}

func smooth(src gocv.Mat, dst *gocv.Mat) error {
	return gocv.GaussianBlur(src, dst, image.Pt(ssimWindow, ssimWindow), ssimSigma, ssimSigma, gocv.BorderDefault)
}

// localMoment writes smooth(a*b) - meanProduct to dst.
func localMoment(a, b, meanProduct gocv.Mat, product, dst *gocv.Mat) error {
	if err := gocv.Multiply(a, b, product); err != nil {
		return err
	}
	smoothed := gocv.NewMat()
	defer smoothed.Close()
	if err := smooth(*product, &smoothed); err != nil {
		return err
	}
	return gocv.AddWeighted(smoothed, 1, meanProduct, -1, 0, dst)
}
