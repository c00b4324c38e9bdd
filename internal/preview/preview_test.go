package preview

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestFitSize(t *testing.T) {
	cases := []struct {
		name         string
		w, h, maxDim int
		wantW, wantH int
	}{
		{"landscape", 1200, 800, 600, 600, 400},
		{"portrait", 800, 1200, 600, 400, 600},
		{"square", 1000, 1000, 600, 600, 600},
		{"upscale small", 100, 50, 600, 600, 300},
		{"truncates", 1000, 333, 600, 600, 199},
		{"thin strip keeps one row", 5000, 1, 600, 600, 1},
		{"invalid", 0, 10, 600, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, h := FitSize(tc.w, tc.h, tc.maxDim)
			assert.Equal(t, tc.wantW, w)
			assert.Equal(t, tc.wantH, h)
		})
	}
}

func TestFitConvertsBGRAndLeavesMatAlone(t *testing.T) {
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 255, 0), 150, 300, gocv.MatTypeCV8UC3)
	defer mat.Close()
	before := mat.ToBytes()

	img, err := Fit(mat, 600)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 600, 300), img.Bounds())
	r, g, b, _ := img.At(300, 150).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})

	assert.Equal(t, 150, mat.Rows())
	assert.Equal(t, 300, mat.Cols())
	assert.Equal(t, before, mat.ToBytes())
}

func TestFitRejectsBadInput(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()
	_, err := Fit(empty, 600)
	assert.Error(t, err)

	mat := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8UC3)
	defer mat.Close()
	_, err = Fit(mat, 0)
	assert.Error(t, err)
}

func TestPlaceholder(t *testing.T) {
	img := Placeholder(200)
	assert.Equal(t, image.Rect(0, 0, 200, 150), img.Bounds())
	assert.Equal(t, color.RGBA{R: 240, G: 240, B: 240, A: 255}, img.RGBAAt(10, 10))
}
