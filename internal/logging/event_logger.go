package logging

import (
	"fmt"
	"io"

	"jordanella.com/pixel-trigger-go/internal/events"
)

// EventLogger subscribes to the event bus and writes every event to its own log
type EventLogger struct {
	logger        *Logger
	eventBus      events.EventBus
	subscriptions []events.SubscriptionID
	out           io.WriteCloser
}

// NewEventLogger creates an event logger writing to a rotating events.log in logDir
func NewEventLogger(eventBus events.EventBus, logDir string) (*EventLogger, error) {
	out, err := NewRotatingFile(logDir, "events.log", DefaultRotationConfig())
	if err != nil {
		return nil, err
	}
	return NewEventLoggerTo(eventBus, out), nil
}

// NewEventLoggerTo creates an event logger writing to out only
func NewEventLoggerTo(eventBus events.EventBus, out io.WriteCloser) *EventLogger {
	logger := NewLogger("Events").SetOutputs(out).SetMinLevel(LogLevelDebug)

	el := &EventLogger{
		logger:   logger,
		eventBus: eventBus,
		out:      out,
	}

	for _, eventType := range events.AllEventTypes {
		el.subscriptions = append(el.subscriptions, eventBus.Subscribe(eventType, el.handleEvent))
	}

	return el
}

func (el *EventLogger) handleEvent(event events.Event) {
	context := map[string]interface{}{
		"source": event.Source,
	}
	for k, v := range event.Data {
		context[k] = v
	}

	if event.Type == events.EventTypeError {
		el.logger.WarnWithContext(fmt.Sprintf("Event: %s", event.Type), context)
		return
	}
	el.logger.InfoWithContext(fmt.Sprintf("Event: %s", event.Type), context)
}

// Close unsubscribes and closes the log file
func (el *EventLogger) Close() error {
	for _, id := range el.subscriptions {
		el.eventBus.Unsubscribe(id)
	}
	el.subscriptions = nil

	if el.out != nil {
		return el.out.Close()
	}
	return nil
}
