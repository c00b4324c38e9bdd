package core

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"image-filter-editor/internal/algorithms"
	"image-filter-editor/internal/io"
)

var errNoFixture = errors.New("no such fixture")

// memCodec serves fixtures from memory and records exports.
type memCodec struct {
	images  map[string]gocv.Mat
	saved   map[string][]byte
	saveErr error
}

func newMemCodec() *memCodec {
	return &memCodec{
		images: map[string]gocv.Mat{},
		saved:  map[string][]byte{},
	}
}

func (c *memCodec) LoadImage(path string) (gocv.Mat, error) {
	m, ok := c.images[path]
	if !ok {
		return gocv.NewMat(), errNoFixture
	}
	return m.Clone(), nil
}

func (c *memCodec) SaveImage(mat gocv.Mat, path string) error {
	if c.saveErr != nil {
		return c.saveErr
	}
	if !io.IsWritable(path) {
		return io.ErrUnsupportedFormat
	}
	c.saved[path] = mat.ToBytes()
	return nil
}

func (c *memCodec) add(t *testing.T, path string, m gocv.Mat) {
	t.Helper()
	c.images[path] = m
	t.Cleanup(func() { m.Close() })
}

func solid(rows, cols int, b, g, r float64) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(b, g, r, 0), rows, cols, gocv.MatTypeCV8UC3)
}

func newSession(t *testing.T, codec Codec) *Session {
	t.Helper()
	logger, _ := test.NewNullLogger()
	s := NewSession(codec, logger)
	t.Cleanup(s.Close)
	return s
}

func bytesOf(m gocv.Mat) []byte {
	defer m.Close()
	return m.ToBytes()
}

func TestEmptySession(t *testing.T) {
	s := newSession(t, newMemCodec())

	assert.False(t, s.HasImage())
	assert.ErrorIs(t, s.Apply(algorithms.KindInvert, 0), ErrInvalidState)
	assert.ErrorIs(t, s.Export("/tmp/out.png"), ErrInvalidState)
	assert.ErrorIs(t, s.Reset(), ErrInvalidState)

	orig := s.Original()
	defer orig.Close()
	proc := s.Processed()
	defer proc.Close()
	assert.True(t, orig.Empty())
	assert.True(t, proc.Empty())
}

func TestLoadCopiesOriginalIntoProcessed(t *testing.T) {
	codec := newMemCodec()
	codec.add(t, "image1.jpg", solid(4, 5, 1, 2, 3))
	s := newSession(t, codec)

	require.NoError(t, s.Load("image1.jpg"))
	assert.True(t, s.HasImage())
	assert.Equal(t, bytesOf(s.Original()), bytesOf(s.Processed()))
	assert.Equal(t, Metadata{Path: "image1.jpg", Width: 5, Height: 4, Channels: 3, Format: "jpg"}, s.Metadata())
	assert.Equal(t, algorithms.KindNone, s.LastApplied().Kind)
}

func TestMidGrayScenario(t *testing.T) {
	codec := newMemCodec()
	codec.add(t, "gray.png", solid(4, 4, 128, 128, 128))
	s := newSession(t, codec)
	require.NoError(t, s.Load("gray.png"))

	check := func(kind algorithms.Kind, param int, want byte) {
		t.Helper()
		require.NoError(t, s.Apply(kind, param))
		for _, b := range bytesOf(s.Processed()) {
			require.Equal(t, want, b, "%s(%d)", kind, param)
		}
	}

	check(algorithms.KindGrayscale, 0, 128)
	check(algorithms.KindInvert, 0, 127)
	check(algorithms.KindBinarize, 100, 255)
	check(algorithms.KindBinarize, 200, 0)
}

func TestApplyIsNotCumulative(t *testing.T) {
	data := make([]byte, 8*8*3)
	for i := range data {
		data[i] = byte(i * 7)
	}
	m, err := gocv.NewMatFromBytes(8, 8, gocv.MatTypeCV8UC3, data)
	require.NoError(t, err)

	codec := newMemCodec()
	codec.add(t, "noise.png", m)

	chained := newSession(t, codec)
	require.NoError(t, chained.Load("noise.png"))
	require.NoError(t, chained.Apply(algorithms.KindMedian, 0))
	require.NoError(t, chained.Apply(algorithms.KindContrast, 40))
	require.NoError(t, chained.Apply(algorithms.KindInvert, 0))

	single := newSession(t, codec)
	require.NoError(t, single.Load("noise.png"))
	require.NoError(t, single.Apply(algorithms.KindInvert, 0))

	assert.Equal(t, bytesOf(single.Processed()), bytesOf(chained.Processed()))
	assert.Equal(t, Applied{Kind: algorithms.KindInvert}, chained.LastApplied())

	// invert applied twice in a row still equals one invert of the original
	require.NoError(t, chained.Apply(algorithms.KindInvert, 0))
	assert.Equal(t, bytesOf(single.Processed()), bytesOf(chained.Processed()))
}

func TestApplyFailureKeepsProcessed(t *testing.T) {
	codec := newMemCodec()
	codec.add(t, "a.png", solid(3, 3, 9, 9, 9))
	s := newSession(t, codec)
	require.NoError(t, s.Load("a.png"))
	require.NoError(t, s.Apply(algorithms.KindInvert, 0))
	before := bytesOf(s.Processed())

	err := s.Apply(algorithms.KindContrast, 500)
	assert.ErrorIs(t, err, algorithms.ErrParameterRange)
	err = s.Apply("emboss", 0)
	assert.ErrorIs(t, err, algorithms.ErrUnknownKind)

	assert.Equal(t, before, bytesOf(s.Processed()))
	assert.Equal(t, algorithms.KindInvert, s.LastApplied().Kind)
}

func TestLoadFailureKeepsState(t *testing.T) {
	codec := newMemCodec()
	codec.add(t, "a.png", solid(3, 3, 50, 60, 70))
	codec.add(t, "tiny.png", gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8U))
	s := newSession(t, codec)

	err := s.Load("missing.png")
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "missing.png", loadErr.Path)
	assert.ErrorIs(t, err, errNoFixture)
	assert.False(t, s.HasImage())

	require.NoError(t, s.Load("a.png"))
	require.NoError(t, s.Apply(algorithms.KindInvert, 0))
	before := bytesOf(s.Processed())

	err = s.Load("tiny.png")
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, s.HasImage())
	assert.Equal(t, "a.png", s.Metadata().Path)
	assert.Equal(t, before, bytesOf(s.Processed()))
}

func TestLoadAcceptsVeryWideImage(t *testing.T) {
	codec := newMemCodec()
	codec.add(t, "strip.png", solid(1, 20000, 1, 2, 3))
	s := newSession(t, codec)

	require.NoError(t, s.Load("strip.png"))
	assert.Equal(t, 20000, s.Metadata().Width)
}

func TestExportUnsupportedExtension(t *testing.T) {
	codec := newMemCodec()
	codec.add(t, "a.png", solid(4, 4, 128, 128, 128))
	s := newSession(t, codec)
	require.NoError(t, s.Load("a.png"))
	require.NoError(t, s.Apply(algorithms.KindInvert, 0))
	before := bytesOf(s.Processed())

	err := s.Export("/tmp/out.gif")
	var saveErr *SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.Equal(t, "/tmp/out.gif", saveErr.Path)
	assert.ErrorIs(t, err, io.ErrUnsupportedFormat)

	assert.Equal(t, before, bytesOf(s.Processed()))
	assert.Empty(t, codec.saved)
}

func TestExportWritesProcessed(t *testing.T) {
	codec := newMemCodec()
	codec.add(t, "a.png", solid(2, 2, 0, 100, 200))
	s := newSession(t, codec)
	require.NoError(t, s.Load("a.png"))
	require.NoError(t, s.Apply(algorithms.KindInvert, 0))

	require.NoError(t, s.Export("/out/result.bmp"))
	assert.Equal(t, bytesOf(s.Processed()), codec.saved["/out/result.bmp"])

	codec.saveErr = errors.New("disk full")
	err := s.Export("/out/result.png")
	var saveErr *SaveError
	assert.ErrorAs(t, err, &saveErr)
}

func TestResetAndClose(t *testing.T) {
	codec := newMemCodec()
	codec.add(t, "a.png", solid(2, 3, 10, 20, 30))
	s := newSession(t, codec)
	require.NoError(t, s.Load("a.png"))
	require.NoError(t, s.Apply(algorithms.KindBrightness, 90))

	require.NoError(t, s.Reset())
	assert.Equal(t, bytesOf(s.Original()), bytesOf(s.Processed()))

	s.Close()
	assert.False(t, s.HasImage())
	assert.Equal(t, Metadata{}, s.Metadata())
}

func TestSessionWithImageLoader(t *testing.T) {
	logger, _ := test.NewNullLogger()
	loader := io.NewImageLoader(logger)
	dir := t.TempDir()

	src := solid(5, 7, 30, 60, 90)
	defer src.Close()
	input := filepath.Join(dir, "image1.png")
	require.NoError(t, loader.SaveImage(src, input))

	s := newSession(t, loader)
	require.NoError(t, s.Load(input))
	require.NoError(t, s.Apply(algorithms.KindInvert, 0))

	output := filepath.Join(dir, "inverted.png")
	require.NoError(t, s.Export(output))

	back, err := loader.LoadImage(output)
	require.NoError(t, err)
	assert.Equal(t, bytesOf(s.Processed()), bytesOf(back))

	err = s.Load(filepath.Join(dir, "nope.jpg"))
	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Equal(t, input, s.Metadata().Path)
}
