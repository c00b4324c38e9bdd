// Menu handler for application actions
package gui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"image-filter-editor/internal/algorithms"
	"image-filter-editor/internal/io"
)

// MenuHandler owns the main menu and the save dialog.
type MenuHandler struct {
	window fyne.Window
	logger logrus.FieldLogger

	onSaveRequested func()
	onReset         func()
}

func NewMenuHandler(window fyne.Window, logger logrus.FieldLogger) *MenuHandler {
	return &MenuHandler{
		window: window,
		logger: logger,
	}
}

func (mh *MenuHandler) SetCallbacks(onSaveRequested, onReset func()) {
	mh.onSaveRequested = onSaveRequested
	mh.onReset = onReset
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Save Image As...", func() { mh.onSaveRequested() }),
		fyne.NewMenuItem("Reset to Original", func() { mh.onReset() }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, helpMenu)
}

// ShowSaveDialog asks for a destination and hands it to save, with ext
// appended when the name has no extension.
func (mh *MenuHandler) ShowSaveDialog(ext string, save func(path string) error) {
	mh.logger.WithField("format", ext).Info("Opening file dialog for image saving")

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mh.logger.WithError(err).Error("File dialog error")
			dialog.ShowError(err, mh.window)
			return
		}
		if writer == nil {
			return
		}

		chosen := writer.URI().Path()
		if err := writer.Close(); err != nil {
			mh.logger.WithError(err).WithField("filepath", chosen).Warn("Failed to close dialog writer")
		}
		mh.saveChosen(chosen, ext, save)
	}, mh.window)

	fileDialog.SetFileName("processed_image" + ext)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(io.WriteFormats()))
	fileDialog.Show()
}

// saveChosen saves to the name picked in the dialog. The dialog has already
// created chosen as an empty file; it is removed when the image ends up
// elsewhere or the save fails.
func (mh *MenuHandler) saveChosen(chosen, ext string, save func(path string) error) {
	target := resolveSavePath(chosen, ext)
	if target == chosen {
		if err := save(target); err != nil {
			mh.removeFile(chosen)
		}
		return
	}

	mh.removeFile(chosen)
	if _, err := os.Stat(target); err != nil {
		_ = save(target)
		return
	}

	// The dialog only asked about the bare name.
	dialog.ShowConfirm("Replace File",
		fmt.Sprintf("%s already exists. Do you want to replace it?", filepath.Base(target)),
		func(replace bool) {
			if replace {
				_ = save(target)
			}
		}, mh.window)
}

func (mh *MenuHandler) removeFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		mh.logger.WithError(err).WithField("filepath", path).Warn("Failed to remove file")
	}
}

// resolveSavePath appends ext when the user typed a name without one. An
// explicit extension is kept so an unsupported one is reported on export.
func resolveSavePath(path, ext string) string {
	if io.Extension(path) == "" {
		return path + ext
	}
	return path
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("Filter Editor"),
		widget.NewSeparator(),
		widget.NewLabel(transformSummary()),
		widget.NewSeparator(),
		widget.NewLabel("Built with Go, Fyne and OpenCV"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(360, 240))
	aboutDialog.Show()
}

// transformSummary lists every registered transform by display name.
func transformSummary() string {
	kinds := algorithms.Kinds()
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		if t, ok := algorithms.Get(kind); ok {
			names = append(names, t.GetName())
		}
	}
	return fmt.Sprintf("%d transforms: %s", len(names), strings.Join(names, ", "))
}
