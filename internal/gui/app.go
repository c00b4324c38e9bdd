// Main editor window wiring the session to the widgets
package gui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"github.com/sirupsen/logrus"

	"image-filter-editor/internal/algorithms"
	"image-filter-editor/internal/core"
	"image-filter-editor/internal/io"
	"image-filter-editor/internal/metrics"
)

// Application is the editor window. All methods run on the fyne event loop.
type Application struct {
	app    fyne.App
	window fyne.Window
	logger logrus.FieldLogger
	opts   Options

	// Core components
	session   *core.Session
	loader    *io.ImageLoader
	evaluator *metrics.Evaluator

	// GUI components
	canvas   *ImageCanvas
	controls *ControlPanel
	toolbar  *Toolbar
	menu     *MenuHandler
}

func NewApplication(app fyne.App, logger logrus.FieldLogger, opts Options) (*Application, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	window := app.NewWindow("Filter Editor")
	window.Resize(fyne.NewSize(float32(opts.PreviewSize)*2+80, float32(opts.PreviewSize)+260))

	a := &Application{
		app:    app,
		window: window,
		logger: logger,
		opts:   opts,
	}

	a.initializeCore()
	a.initializeGUI()
	a.setupLayout()

	logger.WithFields(logrus.Fields{
		"samples": opts.SamplesDir,
		"preview": opts.PreviewSize,
		"debug":   opts.Debug,
	}).Debug("Editor window created")

	return a, nil
}

func (a *Application) initializeCore() {
	a.loader = io.NewImageLoader(a.logger.WithField("component", "loader"))
	a.session = core.NewSession(a.loader, a.logger.WithField("component", "session"))
	a.evaluator = metrics.NewEvaluator()
}

func (a *Application) initializeGUI() {
	a.canvas = NewImageCanvas(a.opts.PreviewSize, a.logger.WithField("component", "canvas"))
	a.controls = NewControlPanel(a.ApplyTransform)
	a.toolbar = NewToolbar(a.LoadSample, a.requestSave, a.Reset)
	a.menu = NewMenuHandler(a.window, a.logger.WithField("component", "menu"))
	a.menu.SetCallbacks(a.requestSave, a.Reset)
}

func (a *Application) setupLayout() {
	content := container.NewBorder(
		a.toolbar.Top(),
		container.NewVBox(a.controls.GetContainer(), a.toolbar.Bottom()),
		nil,
		nil,
		container.NewPadded(a.canvas.GetContainer()),
	)

	a.window.SetMainMenu(a.menu.GetMainMenu())
	a.window.SetContent(content)
}

// LoadSample loads one of the bundled images by name.
func (a *Application) LoadSample(name string) {
	a.LoadImage(a.opts.SamplePath(name))
}

// LoadImage replaces the session image. Failures are shown and leave the
// current images in place.
func (a *Application) LoadImage(path string) {
	if err := a.session.Load(path); err != nil {
		a.showError("Failed to Load Image", err)
		return
	}

	original := a.session.Original()
	defer original.Close()
	processed := a.session.Processed()
	defer processed.Close()
	a.canvas.Update(original, processed)

	meta := a.session.Metadata()
	a.updateStatusMessage(fmt.Sprintf("Loaded %s (%dx%d %s)", filepath.Base(meta.Path), meta.Width, meta.Height, meta.Format))
}

// ApplyTransform re-derives the processed image from the original.
func (a *Application) ApplyTransform(kind algorithms.Kind, param int) {
	err := a.session.Apply(kind, param)
	if errors.Is(err, core.ErrInvalidState) {
		a.logger.WithField("transform", string(kind)).Debug("Ignoring transform, no image loaded")
		return
	}
	if err != nil {
		a.showError("Processing Error", err)
		return
	}

	processed := a.session.Processed()
	defer processed.Close()
	a.canvas.UpdateProcessed(processed)

	a.updateStatusMessage(a.describe(kind, param))
}

// Reset shows the unmodified original in the processed pane.
func (a *Application) Reset() {
	if err := a.session.Reset(); err != nil {
		return
	}
	processed := a.session.Processed()
	defer processed.Close()
	a.canvas.UpdateProcessed(processed)
	a.updateStatusMessage("Reset to original image")
}

func (a *Application) requestSave() {
	if !a.session.HasImage() {
		a.updateStatusMessage("Nothing to save, load an image first")
		return
	}
	a.menu.ShowSaveDialog(a.toolbar.SelectedExtension(), a.SaveTo)
}

// SaveTo exports the processed image. It reports failures to the user and
// returns them for callers that need the outcome.
func (a *Application) SaveTo(path string) error {
	if err := a.session.Export(path); err != nil {
		if !errors.Is(err, core.ErrInvalidState) {
			a.showError("Failed to Save Image", err)
		}
		return err
	}

	a.logger.WithField("filepath", path).Info("Image saved")
	a.updateStatusMessage(fmt.Sprintf("Saved %s", path))
	return nil
}

func (a *Application) describe(kind algorithms.Kind, param int) string {
	name := string(kind)
	t, ok := algorithms.Get(kind)
	if ok {
		name = t.GetName()
		if t.GetParameterInfo() != nil {
			name = fmt.Sprintf("%s %d", name, param)
		}
	}

	original := a.session.Original()
	defer original.Close()
	processed := a.session.Processed()
	defer processed.Close()

	results := a.evaluator.CalculateAll(original, processed)
	mse, ok := results["mse"]
	if !ok {
		return fmt.Sprintf("Applied %s", name)
	}
	if mse == 0 {
		return fmt.Sprintf("Applied %s, unchanged", name)
	}

	parts := []string{fmt.Sprintf("Applied %s", name)}
	for _, metric := range a.evaluator.Names() {
		if value, ok := results[metric]; ok {
			parts = append(parts, formatMetric(metric, value))
		}
	}
	return strings.Join(parts, ", ")
}

func formatMetric(name string, value float64) string {
	switch name {
	case "psnr":
		return fmt.Sprintf("PSNR %.2f dB", value)
	case "ssim":
		return fmt.Sprintf("SSIM %.4f", value)
	default:
		return fmt.Sprintf("%s %.2f", strings.ToUpper(name), value)
	}
}

func (a *Application) updateStatusMessage(message string) {
	a.toolbar.SetStatus(message)
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error(title)
	dialog.ShowError(err, a.window)
	a.updateStatusMessage(fmt.Sprintf("Error: %s", err.Error()))
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	a.session.Close()
}
