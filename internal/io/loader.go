// Image loading and saving on top of OpenCV codecs
package io

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

var (
	// ErrUnsupportedFormat is returned for an extension the loader will not handle.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrDecode is returned when a file exists but does not decode to an image.
	ErrDecode = errors.New("failed to decode image")
	// ErrEncode is returned when OpenCV refuses to write the file.
	ErrEncode = errors.New("failed to encode image")
)

var (
	readFormats  = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff"}
	writeFormats = []string{".png", ".jpg", ".jpeg", ".bmp"}
)

// ImageLoader handles image file operations
type ImageLoader struct {
	logger logrus.FieldLogger
}

func NewImageLoader(logger logrus.FieldLogger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// LoadImage decodes path as an 8-bit BGR image.
func (il *ImageLoader) LoadImage(path string) (gocv.Mat, error) {
	log := il.logger.WithField("filepath", path)
	log.Debug("Loading image")

	if !IsReadable(path) {
		return gocv.NewMat(), fmt.Errorf("%w: %s", ErrUnsupportedFormat, Extension(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return gocv.NewMat(), err
	}
	if info.IsDir() {
		return gocv.NewMat(), fmt.Errorf("%s is a directory", path)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("%w: %s", ErrDecode, path)
	}

	log.WithFields(logrus.Fields{
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image loaded successfully")

	return mat, nil
}

// SaveImage writes mat verbatim in the format implied by the extension of path.
func (il *ImageLoader) SaveImage(mat gocv.Mat, path string) error {
	log := il.logger.WithField("filepath", path)
	log.Debug("Saving image")

	if mat.Empty() {
		return fmt.Errorf("cannot save empty image")
	}

	if !IsWritable(path) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, Extension(path))
	}

	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil {
		return err
	} else if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("%w: %s", ErrEncode, path)
	}

	log.WithFields(logrus.Fields{
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image saved successfully")

	return nil
}

// Extension returns the lower-cased extension of path including the dot.
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func IsReadable(path string) bool {
	return contains(readFormats, Extension(path))
}

func IsWritable(path string) bool {
	return contains(writeFormats, Extension(path))
}

// WriteFormats returns the extensions accepted by SaveImage.
func WriteFormats() []string {
	out := make([]string, len(writeFormats))
	copy(out, writeFormats)
	return out
}

func contains(list []string, ext string) bool {
	for _, format := range list {
		if ext == format {
			return true
		}
	}
	return false
}
