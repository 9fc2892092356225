package gui

import (
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"jordanella.com/pixel-trigger-go/internal/events"
)

const maxActivity = 500

// Activity filters
const (
	filterAll       = "All"
	filterClicks    = "Clicks"
	filterAbandoned = "Abandoned"
	filterToggles   = "Toggles"
	filterErrors    = "Errors"
)

var activityFilters = map[string]events.EventType{
	filterClicks:    events.EventTypeTriggerFired,
	filterAbandoned: events.EventTypeTriggerAbandoned,
	filterToggles:   events.EventTypeDetectionToggled,
	filterErrors:    events.EventTypeError,
}

// ActivityEntry is one line of the activity view
type ActivityEntry struct {
	Timestamp time.Time
	Type      events.EventType
	Message   string
}

// ActivityLog shows recent detector events, newest last
type ActivityLog struct {
	entries   []ActivityEntry
	entriesMu sync.RWMutex

	list            *widget.List
	filterSelect    *widget.Select
	autoScrollCheck *widget.Check
	maxEntries      int
}

// NewActivityLog creates an empty activity log
func NewActivityLog() *ActivityLog {
	return &ActivityLog{
		entries:    make([]ActivityEntry, 0, 64),
		maxEntries: maxActivity,
	}
}

// Build constructs the activity view
func (a *ActivityLog) Build() fyne.CanvasObject {
	a.filterSelect = widget.NewSelect(
		[]string{filterAll, filterClicks, filterAbandoned, filterToggles, filterErrors},
		func(string) {
			if a.list != nil {
				a.list.Refresh()
			}
		},
	)
	a.filterSelect.SetSelected(filterAll)

	a.autoScrollCheck = widget.NewCheck("Auto-scroll", nil)
	a.autoScrollCheck.SetChecked(true)

	clearBtn := widget.NewButton("Clear", a.Clear)

	controls := container.NewHBox(widget.NewLabel("Show:"), a.filterSelect, a.autoScrollCheck, clearBtn)

	a.list = widget.NewList(
		func() int {
			return len(a.filtered())
		},
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewLabel("00:00:00.000"), widget.NewLabel("message"))
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			entries := a.filtered()
			if id < 0 || id >= len(entries) {
				return
			}
			entry := entries[id]
			box := item.(*fyne.Container)

			ts := box.Objects[0].(*widget.Label)
			ts.SetText(entry.Timestamp.Format("15:04:05.000"))

			msg := box.Objects[1].(*widget.Label)
			switch entry.Type {
			case events.EventTypeError:
				msg.Importance = widget.DangerImportance
			case events.EventTypeTriggerAbandoned:
				msg.Importance = widget.WarningImportance
			case events.EventTypeTriggerFired:
				msg.Importance = widget.SuccessImportance
			default:
				msg.Importance = widget.MediumImportance
			}
			msg.SetText(entry.Message)
		},
	)

	return container.NewBorder(controls, nil, nil, nil, a.list)
}

// Subscribe feeds the log from bus and returns the subscriptions to release later
func (a *ActivityLog) Subscribe(bus events.EventBus) []events.SubscriptionID {
	ids := make([]events.SubscriptionID, 0, len(activityFilters)+2)
	for _, t := range []events.EventType{
		events.EventTypeTriggerFired,
		events.EventTypeTriggerAbandoned,
		events.EventTypeDetectionToggled,
		events.EventTypeDetectorStarted,
		events.EventTypeDetectorStopped,
		events.EventTypeError,
	} {
		ids = append(ids, bus.Subscribe(t, a.Add))
	}
	return ids
}

// Add records an event. Safe to call from any goroutine.
func (a *ActivityLog) Add(e events.Event) {
	entry := ActivityEntry{
		Timestamp: e.Timestamp,
		Type:      e.Type,
		Message:   describe(e),
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	a.entriesMu.Lock()
	a.entries = append(a.entries, entry)
	if len(a.entries) > a.maxEntries {
		a.entries = a.entries[len(a.entries)-a.maxEntries:]
	}
	a.entriesMu.Unlock()

	if a.list != nil {
		fyne.Do(func() {
			a.list.Refresh()
			if a.autoScrollCheck != nil && a.autoScrollCheck.Checked {
				a.list.ScrollToBottom()
			}
		})
	}
}

// Clear removes every entry
func (a *ActivityLog) Clear() {
	a.entriesMu.Lock()
	a.entries = a.entries[:0]
	a.entriesMu.Unlock()

	if a.list != nil {
		a.list.Refresh()
	}
}

// Entries returns a copy of the entries matching the current filter
func (a *ActivityLog) Entries() []ActivityEntry {
	return a.filtered()
}

func (a *ActivityLog) filtered() []ActivityEntry {
	a.entriesMu.RLock()
	defer a.entriesMu.RUnlock()

	selected := filterAll
	if a.filterSelect != nil && a.filterSelect.Selected != "" {
		selected = a.filterSelect.Selected
	}

	want, filtering := activityFilters[selected]
	out := make([]ActivityEntry, 0, len(a.entries))
	for _, e := range a.entries {
		if !filtering || e.Type == want {
			out = append(out, e)
		}
	}
	return out
}

// describe renders an event as one human readable line
func describe(e events.Event) string {
	switch e.Type {
	case events.EventTypeTriggerFired:
		return fmt.Sprintf("Click at (%v,%v) after %vms", e.Data["x"], e.Data["y"], e.Data["delay_ms"])
	case events.EventTypeTriggerAbandoned:
		return fmt.Sprintf("Trigger abandoned (%v)", e.Data["reason"])
	case events.EventTypeDetectionToggled:
		state := "disabled"
		if on, _ := e.Data["enabled"].(bool); on {
			state = "enabled"
		}
		return fmt.Sprintf("Detection %s by %s", state, e.Source)
	case events.EventTypeDetectorStarted:
		return fmt.Sprintf("Detector started at (%v,%v)", e.Data["center_x"], e.Data["center_y"])
	case events.EventTypeDetectorStopped:
		return fmt.Sprintf("Detector stopped after %v clicks", e.Data["clicks"])
	case events.EventTypeError:
		return fmt.Sprintf("Error from %s: %v", e.Source, e.Data["error"])
	default:
		return string(e.Type)
	}
}
