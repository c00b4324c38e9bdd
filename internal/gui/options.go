package gui

import (
	"fmt"
	"path/filepath"

	"image-filter-editor/internal/preview"
)

// SampleNames are the bundled images offered in the sample bar.
var SampleNames = []string{"image1.jpg", "image2.jpg", "image3.jpg", "image4.jpg"}

// Options configures the editor window.
type Options struct {
	SamplesDir  string
	PreviewSize int
	Debug       bool
}

func DefaultOptions() Options {
	return Options{
		SamplesDir:  ".",
		PreviewSize: preview.DefaultMaxDim,
	}
}

func (o Options) Validate() error {
	if o.PreviewSize <= 0 {
		return fmt.Errorf("preview size must be positive, got %d", o.PreviewSize)
	}
	if o.SamplesDir == "" {
		return fmt.Errorf("samples directory must not be empty")
	}
	return nil
}

// SamplePath resolves a sample name against the samples directory.
func (o Options) SamplePath(name string) string {
	return filepath.Join(o.SamplesDir, name)
}
