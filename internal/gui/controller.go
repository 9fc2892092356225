package gui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"jordanella.com/pixel-trigger-go/internal/config"
	"jordanella.com/pixel-trigger-go/internal/events"
	"jordanella.com/pixel-trigger-go/internal/input"
	"jordanella.com/pixel-trigger-go/internal/logging"
	"jordanella.com/pixel-trigger-go/internal/trigger"
)

// movement state has no event, so the status line is also polled
const statusPoll = 100 * time.Millisecond

// Controller owns the control panel and routes its input to the detector
type Controller struct {
	app    fyne.App
	window fyne.Window

	shared   *config.Shared
	detector *trigger.Detector
	presets  *config.Presets
	eventBus events.EventBus
	logger   *logging.Logger

	// GUI components
	statusLabel  *widget.Label
	detectCheck  *widget.Check
	toggleButton *widget.Button
	testButton   *widget.Button
	indicator    *Indicator
	controls     *Controls
	activity     *ActivityLog

	subs     []events.SubscriptionID
	unwatch  func()
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewController creates the controller. presets may be nil.
func NewController(app fyne.App, window fyne.Window, shared *config.Shared, detector *trigger.Detector,
	presets *config.Presets, bus events.EventBus, logger *logging.Logger) *Controller {
	if logger == nil {
		logger = logging.NewLogger("GUI")
	}
	return &Controller{
		app:      app,
		window:   window,
		shared:   shared,
		detector: detector,
		presets:  presets,
		eventBus: bus,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// BuildUI constructs the panel and starts listening for state changes
func (c *Controller) BuildUI() fyne.CanvasObject {
	cfg := c.shared.Snapshot()

	header := widget.NewLabelWithStyle("Pixel Trigger", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	c.statusLabel = widget.NewLabel("")
	c.statusLabel.Wrapping = fyne.TextWrapWord

	c.detectCheck = widget.NewCheck("Enable detection", nil)
	c.detectCheck.SetChecked(c.shared.DetectionEnabled())
	c.detectCheck.OnChanged = func(on bool) {
		c.detector.SetDetectionEnabled("checkbox", on)
	}

	c.toggleButton = widget.NewButton(toggleLabel(cfg), func() {
		c.detector.RequestToggleDetection()
	})
	c.testButton = widget.NewButton("Test Click", func() {
		go c.detector.TestClick()
	})

	c.indicator = NewIndicator()
	c.controls = NewControls(c)
	c.activity = NewActivityLog()

	buttons := container.NewGridWithColumns(2, c.toggleButton, c.testButton)

	content := container.NewVBox(
		header,
		c.statusLabel,
		widget.NewSeparator(),
		c.detectCheck,
		c.controls.Build(),
		buttons,
		widget.NewSeparator(),
		container.NewCenter(c.indicator.Object()),
	)

	c.setupEventHandlers()
	c.refresh()

	return container.NewAppTabs(
		container.NewTabItem("Trigger", container.NewVScroll(container.NewPadded(content))),
		container.NewTabItem("Activity", container.NewPadded(c.activity.Build())),
	)
}

// setupEventHandlers wires every source of state change to refresh
func (c *Controller) setupEventHandlers() {
	redraw := func() { fyne.Do(c.refresh) }

	if c.eventBus != nil {
		for _, t := range []events.EventType{
			events.EventTypeDetectionToggled,
			events.EventTypeTriggerFired,
			events.EventTypeDetectorStarted,
			events.EventTypeDetectorStopped,
			events.EventTypeConfigChanged,
		} {
			c.subs = append(c.subs, c.eventBus.Subscribe(t, func(events.Event) { redraw() }))
		}
		c.subs = append(c.subs, c.activity.Subscribe(c.eventBus)...)
	}

	c.detector.SetInvalidateHook(redraw)
	c.unwatch = c.shared.OnChange(func(config.Config) { redraw() })

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(statusPoll)
		defer ticker.Stop()
		for {
			select {
			case <-c.stopCh:
				return
			case <-ticker.C:
				redraw()
			}
		}
	}()
}

// refresh pulls the current state into the widgets. Must run on the fyne thread.
func (c *Controller) refresh() {
	cfg := c.shared.Snapshot()
	detecting := c.shared.DetectionEnabled()

	status := Status{
		Detecting: detecting,
		Moving:    c.detector.MovementLocked(),
		Running:   c.detector.Running(),
		Center:    cfg.Center,
		Stats:     c.detector.Stats(),
	}
	c.statusLabel.Importance = statusImportance(detecting)
	c.statusLabel.SetText(status.String())

	if c.detectCheck.Checked != detecting {
		c.detectCheck.SetChecked(detecting)
	}
	c.toggleButton.SetText(toggleLabel(cfg))
	c.indicator.Update(cfg, detecting)
	c.controls.Sync(cfg)
}

// configChanged is called by the controls after they write the shared config
func (c *Controller) configChanged() {
	if c.eventBus != nil {
		c.eventBus.Publish(events.NewConfigChangedEvent("ui"))
	}
}

func toggleLabel(cfg config.Config) string {
	if cfg.ToggleHotkeyEnabled && cfg.ToggleHotkey != input.KeyNone {
		return "Toggle (" + cfg.ToggleHotkey.String() + ")"
	}
	return "Toggle"
}

// Shutdown stops background refreshes and detaches from the bus and detector.
// The detector itself is stopped by the owner.
func (c *Controller) Shutdown() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
		c.wg.Wait()

		c.detector.SetInvalidateHook(nil)
		if c.unwatch != nil {
			c.unwatch()
		}
		if c.eventBus != nil {
			for _, id := range c.subs {
				c.eventBus.Unsubscribe(id)
			}
		}
		c.subs = nil
	})
}
