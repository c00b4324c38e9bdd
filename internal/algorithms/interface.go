// Transform registry and dispatch table for the editor
package algorithms

import (
	"errors"
	"fmt"
	"sort"

	"gocv.io/x/gocv"
)

// Kind identifies a transform in the dispatch table.
type Kind string

const (
	KindNone       Kind = ""
	KindMedian     Kind = "median"
	KindLaplacian  Kind = "laplacian"
	KindGaussian   Kind = "gaussian"
	KindSobel      Kind = "sobel"
	KindContrast   Kind = "contrast"
	KindBrightness Kind = "brightness"
	KindBinarize   Kind = "binarize"
	KindGrayscale  Kind = "grayscale"
	KindInvert     Kind = "invert"
	KindIsolateRed Kind = "isolate_red"
)

var (
	// ErrUnknownKind is returned when no transform is registered for a kind.
	ErrUnknownKind = errors.New("unknown transform")
	// ErrEmptyInput is returned for an empty or zero-sized raster.
	ErrEmptyInput = errors.New("input image is empty")
	// ErrParameterRange is returned when a parameter is outside its declared range.
	ErrParameterRange = errors.New("parameter out of range")
)

// Transform maps a raster and a scalar parameter to a new raster of the same size.
type Transform interface {
	Apply(input gocv.Mat, param int) (gocv.Mat, error)
	GetName() string
	GetDescription() string
	// GetParameterInfo returns nil for transforms that ignore the parameter.
	GetParameterInfo() *ParameterInfo
	Validate(param int) error
}

// ParameterInfo describes the slider that drives a transform.
type ParameterInfo struct {
	Name        string `json:"name"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Default     int    `json:"default"`
	Description string `json:"description"`
}

type transform struct {
	name        string
	description string
	param       *ParameterInfo
	fn          func(gocv.Mat, int) (gocv.Mat, error)
}

func (t *transform) Apply(input gocv.Mat, param int) (gocv.Mat, error) {
	if err := ValidateInput(input); err != nil {
		return gocv.NewMat(), err
	}
	if err := t.Validate(param); err != nil {
		return gocv.NewMat(), err
	}
	return t.fn(input, param)
}

func (t *transform) GetName() string {
	return t.name
}

func (t *transform) GetDescription() string {
	return t.description
}

func (t *transform) GetParameterInfo() *ParameterInfo {
	return t.param
}

func (t *transform) Validate(param int) error {
	if t.param == nil {
		return nil
	}
	if param < t.param.Min || param > t.param.Max {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d",
			ErrParameterRange, t.param.Name, t.param.Min, t.param.Max, param)
	}
	return nil
}

// unary adapts a parameterless transform to the table signature.
func unary(fn func(gocv.Mat) (gocv.Mat, error)) func(gocv.Mat, int) (gocv.Mat, error) {
	return func(m gocv.Mat, _ int) (gocv.Mat, error) {
		return fn(m)
	}
}

var transforms = make(map[Kind]Transform)

func Register(kind Kind, t Transform) {
	transforms[kind] = t
}

func Get(kind Kind) (Transform, bool) {
	t, exists := transforms[kind]
	return t, exists
}

// Apply runs the transform registered for kind. The input is never modified;
// the returned Mat is owned by the caller.
func Apply(kind Kind, input gocv.Mat, param int) (gocv.Mat, error) {
	t, exists := transforms[kind]
	if !exists {
		return gocv.NewMat(), fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return t.Apply(input, param)
}

// DefaultParam returns the slider default for kind, or 0 when it has none.
func DefaultParam(kind Kind) int {
	t, exists := transforms[kind]
	if !exists || t.GetParameterInfo() == nil {
		return 0
	}
	return t.GetParameterInfo().Default
}

// Kinds lists the registered kinds in a stable order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(transforms))
	for k := range transforms {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func GetTransformsByCategory() map[string][]Kind {
	return map[string][]Kind{
		"Filters": {
			KindMedian,
			KindLaplacian,
			KindGaussian,
			KindSobel,
		},
		"Adjustments": {
			KindContrast,
			KindBrightness,
			KindBinarize,
		},
		"Color": {
			KindGrayscale,
			KindInvert,
			KindIsolateRed,
		},
	}
}

// ValidateInput checks that m is a non-empty 8-bit, 3-channel raster.
func ValidateInput(m gocv.Mat) error {
	if m.Empty() || m.Rows() <= 0 || m.Cols() <= 0 {
		return ErrEmptyInput
	}
	if m.Type() != gocv.MatTypeCV8UC3 {
		return fmt.Errorf("unsupported mat type %v: expected 8-bit BGR", m.Type())
	}
	return nil
}

func init() {
	Register(KindMedian, &transform{
		name:        "Median",
		description: "5x5 median filter for salt-and-pepper noise",
		fn:          unary(Median),
	})
	Register(KindLaplacian, &transform{
		name:        "Laplacian",
		description: "Absolute Laplacian of the intensity image",
		fn:          unary(Laplacian),
	})
	Register(KindGaussian, &transform{
		name:        "Gaussian",
		description: "5x5 Gaussian blur with automatic sigma",
		fn:          unary(Gaussian),
	})
	Register(KindSobel, &transform{
		name:        "Sobel",
		description: "Sobel gradient magnitude, aperture 5",
		fn:          unary(Sobel),
	})

	Register(KindContrast, &transform{
		name:        "Contrast",
		description: "Scale every channel by 1 + p/100",
		param: &ParameterInfo{
			Name: "contrast", Min: 0, Max: 100, Default: 0,
			Description: "Contrast strength in percent",
		},
		fn: Contrast,
	})
	Register(KindBrightness, &transform{
		name:        "Brightness",
		description: "Offset every channel by p - 50",
		param: &ParameterInfo{
			Name: "brightness", Min: 0, Max: 100, Default: 50,
			Description: "Brightness, 50 leaves the image unchanged",
		},
		fn: Brightness,
	})
	Register(KindBinarize, &transform{
		name:        "Binarize",
		description: "Intensity threshold to black and white",
		param: &ParameterInfo{
			Name: "threshold", Min: 0, Max: 255, Default: 128,
			Description: "Pixels brighter than the threshold become white",
		},
		fn: Binarize,
	})

	Register(KindGrayscale, &transform{
		name:        "Grayscale",
		description: "Luma conversion kept as three channels",
		fn:          unary(Grayscale),
	})
	Register(KindInvert, &transform{
		name:        "Invert",
		description: "255 minus every channel",
		fn:          unary(Invert),
	})
	Register(KindIsolateRed, &transform{
		name:        "Isolate Red",
		description: "Keep red hues in color, everything else in gray",
		fn:          unary(IsolateRed),
	})
}
