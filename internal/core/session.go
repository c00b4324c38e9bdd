// Editor session: one original image and the result of the last transform
package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"image-filter-editor/internal/algorithms"
)

// Codec reads and writes images on disk.
type Codec interface {
	LoadImage(path string) (gocv.Mat, error)
	SaveImage(mat gocv.Mat, path string) error
}

// Metadata describes the loaded original.
type Metadata struct {
	Path     string
	Width    int
	Height   int
	Channels int
	Format   string
}

// Applied records the transform that produced the processed image.
type Applied struct {
	Kind  algorithms.Kind
	Param int
}

// Session holds the original and processed images. It is owned by a single
// goroutine (the UI event loop) and performs no locking.
//
// processed is always derived from original by exactly one transform, so
// selecting a new filter discards the previous one.
type Session struct {
	codec  Codec
	logger logrus.FieldLogger

	original  gocv.Mat
	processed gocv.Mat
	hasImage  bool
	metadata  Metadata
	last      Applied
}

func NewSession(codec Codec, logger logrus.FieldLogger) *Session {
	return &Session{
		codec:     codec,
		logger:    logger,
		original:  gocv.NewMat(),
		processed: gocv.NewMat(),
	}
}

// Load replaces the original with the image at path and resets processed to
// a copy of it. On failure the session keeps its previous images.
func (s *Session) Load(path string) error {
	mat, err := s.codec.LoadImage(path)
	if err != nil {
		mat.Close()
		s.logger.WithError(err).WithField("filepath", path).Warn("Load failed")
		return &LoadError{Path: path, Err: err}
	}

	if err := ValidateImage(mat); err != nil {
		mat.Close()
		s.logger.WithError(err).WithField("filepath", path).Warn("Load rejected")
		return &LoadError{Path: path, Err: err}
	}

	s.release()
	s.original = mat
	s.processed = mat.Clone()
	s.hasImage = true
	s.last = Applied{Kind: algorithms.KindNone}
	s.metadata = Metadata{
		Path:     path,
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Channels: mat.Channels(),
		Format:   formatFromPath(path),
	}

	s.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    s.metadata.Width,
		"height":   s.metadata.Height,
	}).Info("Session loaded image")
	return nil
}

// Apply recomputes processed from original with the given transform.
func (s *Session) Apply(kind algorithms.Kind, param int) error {
	if !s.hasImage {
		return ErrInvalidState
	}

	out, err := algorithms.Apply(kind, s.original, param)
	if err != nil {
		out.Close()
		return fmt.Errorf("apply %s: %w", kind, err)
	}

	s.processed.Close()
	s.processed = out
	s.last = Applied{Kind: kind, Param: param}

	s.logger.WithFields(logrus.Fields{
		"transform": string(kind),
		"param":     param,
	}).Debug("Transform applied")
	return nil
}

// Reset makes processed an unmodified copy of original again.
func (s *Session) Reset() error {
	if !s.hasImage {
		return ErrInvalidState
	}
	s.processed.Close()
	s.processed = s.original.Clone()
	s.last = Applied{Kind: algorithms.KindNone}
	return nil
}

// Export writes processed to path. The session is unchanged whatever the outcome.
func (s *Session) Export(path string) error {
	if !s.hasImage {
		return ErrInvalidState
	}

	if err := s.codec.SaveImage(s.processed, path); err != nil {
		s.logger.WithError(err).WithField("filepath", path).Warn("Export failed")
		return &SaveError{Path: path, Err: err}
	}
	return nil
}

// Original returns a copy of the original image, or an empty Mat before load.
// The caller owns the returned Mat.
func (s *Session) Original() gocv.Mat {
	if !s.hasImage {
		return gocv.NewMat()
	}
	return s.original.Clone()
}

// Processed returns a copy of the processed image, or an empty Mat before load.
// The caller owns the returned Mat.
func (s *Session) Processed() gocv.Mat {
	if !s.hasImage {
		return gocv.NewMat()
	}
	return s.processed.Clone()
}

func (s *Session) HasImage() bool {
	return s.hasImage
}

func (s *Session) Metadata() Metadata {
	return s.metadata
}

func (s *Session) LastApplied() Applied {
	return s.last
}

// Close releases both images and returns the session to the empty state.
func (s *Session) Close() {
	s.release()
	s.original = gocv.NewMat()
	s.processed = gocv.NewMat()
	s.hasImage = false
	s.metadata = Metadata{}
	s.last = Applied{}
}

func (s *Session) release() {
	s.original.Close()
	s.processed.Close()
}

func formatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}

// ValidateImage checks that mat can serve as an original.
func ValidateImage(mat gocv.Mat) error {
	if mat.Empty() {
		return fmt.Errorf("image is empty")
	}

	if mat.Cols() <= 0 || mat.Rows() <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", mat.Cols(), mat.Rows())
	}

	if mat.Type() != gocv.MatTypeCV8UC3 {
		return fmt.Errorf("unsupported image type %v", mat.Type())
	}

	return nil
}
