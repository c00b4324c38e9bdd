//go:build matprofile

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"image-filter-editor/internal/algorithms"
)

// Run with -tags matprofile so gocv counts live Mats.
func TestFailedLoadAndApplyReleaseMats(t *testing.T) {
	codec := newMemCodec()
	codec.add(t, "a.png", solid(4, 4, 10, 20, 30))
	codec.add(t, "gray.png", gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8U))
	s := newSession(t, codec)
	require.NoError(t, s.Load("a.png"))

	before := gocv.MatProfile.Count()

	assert.Error(t, s.Load("missing.png"))
	assert.Error(t, s.Load("gray.png"))
	assert.Error(t, s.Apply("sharpen", 0))
	assert.Error(t, s.Apply(algorithms.KindContrast, 500))

	assert.Equal(t, before, gocv.MatProfile.Count())
}
