package events

import "time"

// EventType represents different types of events in the system
type EventType string

const (
	// Detector lifecycle
	EventTypeDetectorStarted EventType = "detector.started"
	EventTypeDetectorStopped EventType = "detector.stopped"

	// Detection state
	EventTypeDetectionToggled EventType = "detection.toggled"
	EventTypeConfigChanged    EventType = "config.changed"

	// Trigger outcomes
	EventTypeTriggerFired     EventType = "trigger.fired"
	EventTypeTriggerAbandoned EventType = "trigger.abandoned"

	// Error events
	EventTypeError EventType = "error"
)

// AllEventTypes lists every type the detector and the UI emit
var AllEventTypes = []EventType{
	EventTypeDetectorStarted,
	EventTypeDetectorStopped,
	EventTypeDetectionToggled,
	EventTypeConfigChanged,
	EventTypeTriggerFired,
	EventTypeTriggerAbandoned,
	EventTypeError,
}

// Event represents a system event with metadata
type Event struct {
	Type      EventType              // Type of event
	Source    string                 // Component that emitted event (e.g., "detector", "hotkey")
	Timestamp time.Time              // When the event occurred
	Data      map[string]interface{} // Event-specific data
}

// EventHandler is a function that processes an event
type EventHandler func(Event)

// SubscriptionID uniquely identifies a subscription
type SubscriptionID int64

// EventBus defines the interface for event pub/sub
type EventBus interface {
	// Subscribe registers a handler for a specific event type
	Subscribe(eventType EventType, handler EventHandler) SubscriptionID

	// Unsubscribe removes a subscription by ID
	Unsubscribe(id SubscriptionID)

	// Publish sends an event to all subscribers (blocking until queued)
	Publish(event Event)

	// Stop stops the event bus and drains remaining events
	Stop()
}

// NewDetectorStartedEvent creates a detector started event
func NewDetectorStartedEvent(centerX, centerY int) Event {
	return Event{
		Type:      EventTypeDetectorStarted,
		Source:    "detector",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"center_x": centerX,
			"center_y": centerY,
		},
	}
}

// NewDetectorStoppedEvent creates a detector stopped event
func NewDetectorStoppedEvent(clicks int64) Event {
	return Event{
		Type:      EventTypeDetectorStopped,
		Source:    "detector",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"clicks": clicks,
		},
	}
}

// NewDetectionToggledEvent creates an event for the enable flag flipping
func NewDetectionToggledEvent(source string, enabled bool) Event {
	return Event{
		Type:      EventTypeDetectionToggled,
		Source:    source,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"enabled": enabled,
		},
	}
}

// NewConfigChangedEvent creates an event for a configuration update
func NewConfigChangedEvent(source string) Event {
	return Event{
		Type:      EventTypeConfigChanged,
		Source:    source,
		Timestamp: time.Now(),
		Data:      map[string]interface{}{},
	}
}

// NewTriggerFiredEvent creates an event for an issued click
func NewTriggerFiredEvent(x, y int, delay time.Duration) Event {
	return Event{
		Type:      EventTypeTriggerFired,
		Source:    "detector",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"x":        x,
			"y":        y,
			"delay_ms": delay.Milliseconds(),
		},
	}
}

// NewTriggerAbandonedEvent creates an event for a match dropped by the movement lockout
func NewTriggerAbandonedEvent(reason string) Event {
	return Event{
		Type:      EventTypeTriggerAbandoned,
		Source:    "detector",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"reason": reason,
		},
	}
}

// NewErrorEvent creates an error event
func NewErrorEvent(source string, err error) Event {
	return Event{
		Type:      EventTypeError,
		Source:    source,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"error": err.Error(),
		},
	}
}
