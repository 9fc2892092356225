package gui

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"jordanella.com/pixel-trigger-go/internal/config"
	"jordanella.com/pixel-trigger-go/internal/cv"
)

// Slider ranges of the panel
const (
	toleranceSliderMax = 100
)

// sliderRow is a labelled integer slider bound to one config field
type sliderRow struct {
	slider *widget.Slider
	value  *widget.Label
	get    func(config.Config) int
}

// Controls is the settings form of the panel
type Controls struct {
	controller *Controller

	radius    *sliderRow
	tolerance *sliderRow
	cooldown  *sliderRow
	clickWait *sliderRow

	minDelayEntry  *widget.Entry
	maxDelayEntry  *widget.Entry
	clickCheck     *widget.Check
	indicatorCheck *widget.Check
	presetSelect   *widget.Select

	colorSwatch *canvas.Rectangle
	colorLabel  *widget.Label
}

// NewControls creates the settings form for ctrl
func NewControls(ctrl *Controller) *Controls {
	return &Controls{controller: ctrl}
}

func (ctl *Controls) update(fn func(*config.Config)) config.Config {
	return ctl.controller.shared.Update(fn)
}

// newSliderRow builds a slider that writes its value through set
func (ctl *Controls) newSliderRow(lo, hi int, get func(config.Config) int, set func(*config.Config, int)) *sliderRow {
	cfg := ctl.controller.shared.Snapshot()

	row := &sliderRow{
		slider: widget.NewSlider(float64(lo), float64(hi)),
		value:  widget.NewLabel(strconv.Itoa(get(cfg))),
		get:    get,
	}
	row.slider.Step = 1
	row.slider.SetValue(float64(get(cfg)))

	row.slider.OnChanged = func(v float64) {
		next := ctl.update(func(c *config.Config) { set(c, int(v)) })
		row.value.SetText(strconv.Itoa(get(next)))
	}
	row.slider.OnChangeEnded = func(float64) {
		ctl.controller.configChanged()
	}
	return row
}

func (row *sliderRow) object() fyne.CanvasObject {
	return container.NewBorder(nil, nil, nil, row.value, row.slider)
}

// sync moves the slider to cfg unless cfg is outside the slider's range
func (row *sliderRow) sync(cfg config.Config) {
	v := float64(row.get(cfg))
	row.value.SetText(strconv.Itoa(row.get(cfg)))
	if v < row.slider.Min || v > row.slider.Max || v == row.slider.Value {
		return
	}
	row.slider.SetValue(v)
}

// Build constructs the form
func (ctl *Controls) Build() fyne.CanvasObject {
	cfg := ctl.controller.shared.Snapshot()

	ctl.radius = ctl.newSliderRow(config.MinRadius, config.MaxRadius,
		func(c config.Config) int { return c.Radius },
		func(c *config.Config, v int) { c.Radius = v })
	ctl.tolerance = ctl.newSliderRow(0, toleranceSliderMax,
		func(c config.Config) int { return c.Tolerance },
		func(c *config.Config, v int) { c.Tolerance = v })
	ctl.cooldown = ctl.newSliderRow(0, config.MaxCooldownMs,
		func(c config.Config) int { return c.CooldownMs },
		func(c *config.Config, v int) { c.CooldownMs = v })
	ctl.clickWait = ctl.newSliderRow(0, config.MaxClickDelayMs,
		func(c config.Config) int { return c.ClickDelayMs },
		func(c *config.Config, v int) { c.ClickDelayMs = v })

	// Humanization delays are applied on Enter so a half-typed value
	// never swaps the range under the user
	ctl.minDelayEntry = widget.NewEntry()
	ctl.minDelayEntry.SetText(strconv.Itoa(cfg.MinDelayMs))
	ctl.minDelayEntry.OnSubmitted = func(string) { ctl.applyDelays() }

	ctl.maxDelayEntry = widget.NewEntry()
	ctl.maxDelayEntry.SetText(strconv.Itoa(cfg.MaxDelayMs))
	ctl.maxDelayEntry.OnSubmitted = func(string) { ctl.applyDelays() }

	applyDelaysBtn := widget.NewButton("Apply", ctl.applyDelays)
	delays := container.NewBorder(nil, nil, nil, applyDelaysBtn,
		container.NewGridWithColumns(2, ctl.minDelayEntry, ctl.maxDelayEntry))

	ctl.clickCheck = widget.NewCheck("Click when detected", func(on bool) {
		ctl.update(func(c *config.Config) { c.ClickEnabled = on })
		ctl.controller.configChanged()
	})
	ctl.clickCheck.Checked = cfg.ClickEnabled

	ctl.indicatorCheck = widget.NewCheck("Show indicator", func(on bool) {
		ctl.update(func(c *config.Config) { c.ShowIndicator = on })
		ctl.controller.configChanged()
	})
	ctl.indicatorCheck.Checked = cfg.ShowIndicator

	ctl.colorSwatch = canvas.NewRectangle(cfg.TargetColor.NRGBA())
	ctl.colorSwatch.SetMinSize(fyne.NewSize(24, 24))
	ctl.colorLabel = widget.NewLabel(cfg.TargetColor.Hex())
	pickBtn := widget.NewButton("Pick Target Color", ctl.pickColor)
	colorRow := container.NewHBox(ctl.colorSwatch, ctl.colorLabel, pickBtn)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Radius (px)", Widget: ctl.radius.object()},
			{Text: "Tolerance", Widget: ctl.tolerance.object()},
			{Text: "Cooldown (ms)", Widget: ctl.cooldown.object()},
			{Text: "Click Delay (ms)", Widget: ctl.clickWait.object()},
			{Text: "Min / Max Delay (ms)", Widget: delays},
			{Text: "Target Color", Widget: colorRow},
		},
	}

	items := []fyne.CanvasObject{form, ctl.clickCheck, ctl.indicatorCheck}

	if presets := ctl.controller.presets; presets != nil && len(presets.Presets) > 0 {
		ctl.presetSelect = widget.NewSelect(presets.Names(), ctl.applyPreset)
		ctl.presetSelect.PlaceHolder = "Color preset"
		items = append(items, ctl.presetSelect)
	}

	return container.NewVBox(items...)
}

// applyDelays reads both delay entries and writes them as one update
func (ctl *Controls) applyDelays() {
	cfg := ctl.controller.shared.Snapshot()

	minMs, err := strconv.Atoi(ctl.minDelayEntry.Text)
	if err != nil {
		minMs = cfg.MinDelayMs
	}
	maxMs, err := strconv.Atoi(ctl.maxDelayEntry.Text)
	if err != nil {
		maxMs = cfg.MaxDelayMs
	}

	next := ctl.update(func(c *config.Config) {
		c.MinDelayMs = minMs
		c.MaxDelayMs = maxMs
	})

	ctl.minDelayEntry.SetText(strconv.Itoa(next.MinDelayMs))
	ctl.maxDelayEntry.SetText(strconv.Itoa(next.MaxDelayMs))
	ctl.controller.configChanged()
}

func (ctl *Controls) pickColor() {
	current := ctl.controller.shared.Snapshot().TargetColor

	picker := dialog.NewColorPicker("Target Color", "Color that triggers a click", func(c color.Color) {
		ctl.setTargetColor(cv.FromColor(c))
	}, ctl.controller.window)
	picker.Advanced = true
	picker.SetColor(current.NRGBA())
	picker.Show()
}

func (ctl *Controls) setTargetColor(c cv.Color) {
	ctl.update(func(cfg *config.Config) { cfg.TargetColor = c })
	ctl.controller.logger.InfoWithContext("Target color changed", map[string]interface{}{"color": c.Hex()})
	ctl.controller.configChanged()
}

func (ctl *Controls) applyPreset(name string) {
	preset, ok := ctl.controller.presets.Find(name)
	if !ok {
		return
	}
	ctl.update(preset.Apply)
	ctl.controller.logger.InfoWithContext("Preset applied", map[string]interface{}{"preset": preset.Name})
	ctl.controller.configChanged()
}

// Sync mirrors cfg into the widgets. Delay entries are left alone while the user edits them.
func (ctl *Controls) Sync(cfg config.Config) {
	for _, row := range []*sliderRow{ctl.radius, ctl.tolerance, ctl.cooldown, ctl.clickWait} {
		row.sync(cfg)
	}

	if ctl.clickCheck.Checked != cfg.ClickEnabled {
		ctl.clickCheck.SetChecked(cfg.ClickEnabled)
	}
	if ctl.indicatorCheck.Checked != cfg.ShowIndicator {
		ctl.indicatorCheck.SetChecked(cfg.ShowIndicator)
	}

	ctl.colorSwatch.FillColor = cfg.TargetColor.NRGBA()
	ctl.colorSwatch.Refresh()
	ctl.colorLabel.SetText(cfg.TargetColor.Hex())
}
