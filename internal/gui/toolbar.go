// Sample picker on top, save controls and status at the bottom
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// SaveFormats maps the format chooser entries to file extensions.
var SaveFormats = []struct {
	Label string
	Ext   string
}{
	{"PNG", ".png"},
	{"JPG", ".jpg"},
	{"BMP", ".bmp"},
}

func formatExtension(label string) string {
	for _, f := range SaveFormats {
		if f.Label == label {
			return f.Ext
		}
	}
	return SaveFormats[0].Ext
}

// Toolbar holds the sample buttons and the save row.
type Toolbar struct {
	samples *fyne.Container
	bottom  *fyne.Container

	sampleButtons map[string]*widget.Button
	formatSelect  *widget.Select
	saveBtn       *widget.Button
	resetBtn      *widget.Button
	status        *widget.Label

	onSample func(name string)
	onSave   func()
	onReset  func()
}

func NewToolbar(onSample func(name string), onSave, onReset func()) *Toolbar {
	tb := &Toolbar{
		sampleButtons: make(map[string]*widget.Button),
		onSample:      onSample,
		onSave:        onSave,
		onReset:       onReset,
	}
	tb.initializeUI()
	return tb
}

func (tb *Toolbar) initializeUI() {
	tb.samples = container.NewHBox(widget.NewLabelWithStyle("Samples", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	for _, name := range SampleNames {
		btn := widget.NewButtonWithIcon(name, theme.FileImageIcon(), func() {
			tb.onSample(name)
		})
		tb.sampleButtons[name] = btn
		tb.samples.Add(btn)
	}

	labels := make([]string, 0, len(SaveFormats))
	for _, f := range SaveFormats {
		labels = append(labels, f.Label)
	}
	tb.formatSelect = widget.NewSelect(labels, nil)
	tb.formatSelect.SetSelected(labels[0])

	tb.saveBtn = widget.NewButtonWithIcon("Save Image", theme.DocumentSaveIcon(), tb.onSave)
	tb.saveBtn.Importance = widget.HighImportance
	tb.resetBtn = widget.NewButtonWithIcon("Reset", theme.ViewRefreshIcon(), tb.onReset)

	tb.status = widget.NewLabel("Select a sample image to begin")
	tb.status.Truncation = fyne.TextTruncateEllipsis

	tb.bottom = container.NewBorder(nil, nil,
		container.NewHBox(tb.formatSelect, tb.saveBtn, tb.resetBtn),
		nil,
		tb.status,
	)
}

// SelectedExtension returns the extension picked in the format chooser.
func (tb *Toolbar) SelectedExtension() string {
	return formatExtension(tb.formatSelect.Selected)
}

func (tb *Toolbar) SetStatus(message string) {
	tb.status.SetText(message)
}

func (tb *Toolbar) Status() string {
	return tb.status.Text
}

func (tb *Toolbar) Top() fyne.CanvasObject {
	return tb.samples
}

func (tb *Toolbar) Bottom() fyne.CanvasObject {
	return tb.bottom
}
