package trigger

import (
	"context"
	"time"

	"jordanella.com/pixel-trigger-go/internal/config"
	"jordanella.com/pixel-trigger-go/internal/input"
)

const hotkeyPoll = 10 * time.Millisecond

// HotkeyWatcher toggles detection when the configured hotkey goes down.
// Holding the key toggles once; it has to be released before it toggles again.
type HotkeyWatcher struct {
	shared *config.Shared
	keys   input.KeyState
	clock  Clock
	toggle func(source string) bool

	held bool
}

// NewHotkeyWatcher watches the detector's shared config with the detector's key state and clock
func NewHotkeyWatcher(d *Detector) *HotkeyWatcher {
	return &HotkeyWatcher{
		shared: d.shared,
		keys:   d.keys,
		clock:  d.clock,
		toggle: d.ToggleFrom,
	}
}

// Run polls until ctx is done
func (w *HotkeyWatcher) Run(ctx context.Context) error {
	for {
		w.poll()
		if err := w.clock.Sleep(ctx, hotkeyPoll); err != nil {
			return nil
		}
	}
}

// poll checks the hotkey once and reports whether it toggled
func (w *HotkeyWatcher) poll() bool {
	cfg := w.shared.Snapshot()
	if !cfg.ToggleHotkeyEnabled || cfg.ToggleHotkey == input.KeyNone {
		w.held = false
		return false
	}

	down := w.keys.IsPressed(cfg.ToggleHotkey)
	pressed := down && !w.held
	w.held = down

	if pressed {
		w.toggle("hotkey")
	}
	return pressed
}
