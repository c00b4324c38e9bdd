// Side-by-side original and processed previews
package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"image-filter-editor/internal/preview"
)

// ImageCanvas shows the original on the left and the processed image on the right.
type ImageCanvas struct {
	logger  logrus.FieldLogger
	maxDim  int
	content *fyne.Container

	originalImage  *canvas.Image
	processedImage *canvas.Image
	originalView   *widget.Card
	processedView  *widget.Card
}

func NewImageCanvas(maxDim int, logger logrus.FieldLogger) *ImageCanvas {
	ic := &ImageCanvas{
		logger: logger,
		maxDim: maxDim,
	}
	ic.initializeUI()
	return ic
}

func (ic *ImageCanvas) initializeUI() {
	placeholder := preview.Placeholder(ic.maxDim)

	ic.originalImage = newPreviewImage(placeholder, ic.maxDim)
	ic.processedImage = newPreviewImage(placeholder, ic.maxDim)

	ic.originalView = widget.NewCard("Original", "", ic.originalImage)
	ic.processedView = widget.NewCard("Processed", "", ic.processedImage)

	ic.content = container.NewGridWithColumns(2, ic.originalView, ic.processedView)
}

func newPreviewImage(img image.Image, maxDim int) *canvas.Image {
	ci := canvas.NewImageFromImage(img)
	ci.FillMode = canvas.ImageFillContain
	ci.ScaleMode = canvas.ImageScaleSmooth
	side := float32(maxDim) / 2
	ci.SetMinSize(fyne.NewSize(side, side))
	return ci
}

func (ic *ImageCanvas) GetContainer() fyne.CanvasObject {
	return ic.content
}

// Update redraws both panes. Either Mat may be empty, in which case that
// pane shows the placeholder.
func (ic *ImageCanvas) Update(original, processed gocv.Mat) {
	ic.show(ic.originalImage, original, "original")
	ic.show(ic.processedImage, processed, "processed")
}

// UpdateProcessed redraws only the right pane.
func (ic *ImageCanvas) UpdateProcessed(processed gocv.Mat) {
	ic.show(ic.processedImage, processed, "processed")
}

func (ic *ImageCanvas) show(target *canvas.Image, mat gocv.Mat, pane string) {
	if mat.Empty() {
		target.Image = preview.Placeholder(ic.maxDim)
		target.Refresh()
		return
	}

	img, err := preview.Fit(mat, ic.maxDim)
	if err != nil {
		ic.logger.WithError(err).WithField("pane", pane).Error("Failed to build preview")
		return
	}

	target.Image = img
	target.Refresh()
	ic.logger.WithFields(logrus.Fields{
		"pane":   pane,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Debug("Preview updated")
}
