// Filter buttons, adjustment sliders and color actions
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"image-filter-editor/internal/algorithms"
)

// ControlPanel turns user input into (kind, parameter) commands. It holds no
// image state of its own.
type ControlPanel struct {
	content *fyne.Container

	buttons map[algorithms.Kind]*widget.Button
	sliders map[algorithms.Kind]*widget.Slider
	values  map[algorithms.Kind]*widget.Label

	onApply func(kind algorithms.Kind, param int)
}

func NewControlPanel(onApply func(kind algorithms.Kind, param int)) *ControlPanel {
	cp := &ControlPanel{
		buttons: make(map[algorithms.Kind]*widget.Button),
		sliders: make(map[algorithms.Kind]*widget.Slider),
		values:  make(map[algorithms.Kind]*widget.Label),
		onApply: onApply,
	}
	cp.initializeUI()
	return cp
}

func (cp *ControlPanel) initializeUI() {
	categories := algorithms.GetTransformsByCategory()

	filters := container.NewHBox(widget.NewLabelWithStyle("Filters", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	for _, kind := range categories["Filters"] {
		filters.Add(cp.createButton(kind))
	}

	colors := container.NewHBox(widget.NewLabelWithStyle("Color", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	for _, kind := range categories["Color"] {
		colors.Add(cp.createButton(kind))
	}

	adjustments := container.New(layout.NewFormLayout())
	for _, kind := range categories["Adjustments"] {
		label, slider, value := cp.createSlider(kind)
		adjustments.Add(label)
		adjustments.Add(container.NewBorder(nil, nil, nil, value, slider))
	}

	cp.content = container.NewVBox(
		filters,
		widget.NewSeparator(),
		adjustments,
		widget.NewSeparator(),
		colors,
	)
}

func (cp *ControlPanel) createButton(kind algorithms.Kind) *widget.Button {
	t, _ := algorithms.Get(kind)
	btn := widget.NewButton(t.GetName(), func() {
		cp.onApply(kind, algorithms.DefaultParam(kind))
	})
	cp.buttons[kind] = btn
	return btn
}

func (cp *ControlPanel) createSlider(kind algorithms.Kind) (*widget.Label, *widget.Slider, *widget.Label) {
	t, _ := algorithms.Get(kind)
	info := t.GetParameterInfo()

	slider := widget.NewSlider(float64(info.Min), float64(info.Max))
	slider.Step = 1
	slider.Value = float64(info.Default)

	valueLabel := widget.NewLabel(fmt.Sprintf("%d", info.Default))
	slider.OnChanged = func(value float64) {
		param := int(value)
		valueLabel.SetText(fmt.Sprintf("%d", param))
		cp.onApply(kind, param)
	}

	cp.sliders[kind] = slider
	cp.values[kind] = valueLabel
	return widget.NewLabel(t.GetName()), slider, valueLabel
}

func (cp *ControlPanel) GetContainer() fyne.CanvasObject {
	return cp.content
}
