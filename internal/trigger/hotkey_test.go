package trigger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"jordanella.com/pixel-trigger-go/internal/config"
	"jordanella.com/pixel-trigger-go/internal/cv"
	"jordanella.com/pixel-trigger-go/internal/events"
	"jordanella.com/pixel-trigger-go/internal/input"
)

func TestHotkeyTogglesOncePerPress(t *testing.T) {
	h := newHarness(t, constantSampler(cv.RGB(0, 0, 0)), func(c *config.Config) {
		c.StartEnabled = false
		c.ToggleHotkey = input.KeyF2
		c.ToggleHotkeyEnabled = true
	})
	w := NewHotkeyWatcher(h.det)

	assert.False(t, w.poll(), "nothing pressed")

	h.keys.Set(input.KeyF2, true)
	assert.True(t, w.poll())
	assert.True(t, h.shared.DetectionEnabled())

	// Held down: no repeat
	for i := 0; i < 5; i++ {
		assert.False(t, w.poll())
	}
	assert.True(t, h.shared.DetectionEnabled())

	h.keys.Set(input.KeyF2, false)
	assert.False(t, w.poll())

	h.keys.Set(input.KeyF2, true)
	assert.True(t, w.poll())
	assert.False(t, h.shared.DetectionEnabled())

	toggles := h.bus.OfType(events.EventTypeDetectionToggled)
	require.Len(t, toggles, 2)
	assert.Equal(t, "hotkey", toggles[0].Source)
}

func TestHotkeyDisabled(t *testing.T) {
	h := newHarness(t, constantSampler(cv.RGB(0, 0, 0)), func(c *config.Config) {
		c.StartEnabled = false
		c.ToggleHotkey = input.KeyF2
		c.ToggleHotkeyEnabled = false
	})
	w := NewHotkeyWatcher(h.det)

	h.keys.Set(input.KeyF2, true)
	assert.False(t, w.poll())
	assert.False(t, h.shared.DetectionEnabled())

	// Enabling while the key is already down counts as a fresh press
	h.shared.Update(func(c *config.Config) { c.ToggleHotkeyEnabled = true })
	assert.True(t, w.poll())
	assert.True(t, h.shared.DetectionEnabled())
}

func TestHotkeyFollowsRebinding(t *testing.T) {
	h := newHarness(t, constantSampler(cv.RGB(0, 0, 0)), func(c *config.Config) {
		c.StartEnabled = false
		c.ToggleHotkey = input.KeyF2
	})
	w := NewHotkeyWatcher(h.det)

	h.shared.Update(func(c *config.Config) { c.ToggleHotkey = input.KeyF12 })

	h.keys.Set(input.KeyF2, true)
	assert.False(t, w.poll())

	h.keys.Set(input.KeyF12, true)
	assert.True(t, w.poll())
}

func TestHotkeyRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := newHarness(t, constantSampler(cv.RGB(0, 0, 0)), nil)
	w := NewHotkeyWatcher(h.det)
	w.clock = RealClock{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("hotkey watcher did not stop")
	}
}
