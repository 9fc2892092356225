package gui

import (
	"errors"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jordanella.com/pixel-trigger-go/internal/events"
)

func TestActivityDescribesEvents(t *testing.T) {
	tests := []struct {
		event events.Event
		want  string
	}{
		{events.NewTriggerFiredEvent(10, 20, 15*time.Millisecond), "Click at (10,20) after 15ms"},
		{events.NewTriggerAbandonedEvent("movement"), "Trigger abandoned (movement)"},
		{events.NewDetectionToggledEvent("hotkey", true), "Detection enabled by hotkey"},
		{events.NewDetectionToggledEvent("ui", false), "Detection disabled by ui"},
		{events.NewDetectorStartedEvent(960, 540), "Detector started at (960,540)"},
		{events.NewDetectorStoppedEvent(7), "Detector stopped after 7 clicks"},
		{events.NewErrorEvent("sampler", errors.New("no dc")), "Error from sampler: no dc"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, describe(tt.event))
	}
}

func TestActivityFilterAndCap(t *testing.T) {
	test.NewTempApp(t)

	a := NewActivityLog()
	a.maxEntries = 3
	a.filterSelect = widget.NewSelect([]string{filterAll, filterClicks, filterErrors}, nil)

	a.Add(events.NewDetectionToggledEvent("ui", true))
	a.Add(events.NewTriggerFiredEvent(1, 1, 0))
	a.Add(events.NewErrorEvent("sampler", errors.New("x")))
	a.Add(events.NewTriggerFiredEvent(2, 2, 0))

	all := a.Entries()
	require.Len(t, all, 3, "oldest entry dropped")
	assert.Equal(t, events.EventTypeTriggerFired, all[0].Type)

	a.filterSelect.Selected = filterClicks
	assert.Len(t, a.Entries(), 2)

	a.filterSelect.Selected = filterErrors
	assert.Len(t, a.Entries(), 1)

	a.Clear()
	a.filterSelect.Selected = filterAll
	assert.Empty(t, a.Entries())
}

func TestActivitySubscribes(t *testing.T) {
	bus := events.NewEventBus(16, nil)
	defer bus.Stop()

	a := NewActivityLog()
	ids := a.Subscribe(bus)
	assert.Len(t, ids, 6)

	bus.Publish(events.NewTriggerAbandonedEvent("movement"))
	require.Eventually(t, func() bool { return len(a.Entries()) == 1 }, time.Second, 5*time.Millisecond)

	for _, id := range ids {
		bus.Unsubscribe(id)
	}
}
