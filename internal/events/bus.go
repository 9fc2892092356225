package events

import (
	"fmt"
	"sync"
	"time"
)

// Logger is the subset of logging.Logger the bus reports through
type Logger interface {
	Debug(message string)
	Warn(message string)
	Error(message string, err error)
}

type nopLogger struct{}

func (nopLogger) Debug(string)        {}
func (nopLogger) Warn(string)         {}
func (nopLogger) Error(string, error) {}

// subscription represents a single event subscription
type subscription struct {
	id      SubscriptionID
	handler EventHandler
}

// DefaultEventBus dispatches events from a queue on its own goroutine.
// Handlers for one event run in order on that goroutine, so they must not block.
type DefaultEventBus struct {
	subscribers map[EventType][]subscription
	nextSubID   SubscriptionID
	mu          sync.RWMutex

	eventQueue chan Event
	stopCh     chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup

	logger Logger
}

// NewEventBus creates a new event bus with specified buffer size
func NewEventBus(bufferSize int, logger Logger) *DefaultEventBus {
	if logger == nil {
		logger = nopLogger{}
	}

	bus := &DefaultEventBus{
		subscribers: make(map[EventType][]subscription),
		nextSubID:   1,
		eventQueue:  make(chan Event, bufferSize),
		stopCh:      make(chan struct{}),
		logger:      logger,
	}

	bus.wg.Add(1)
	go bus.processEvents()

	return bus
}

// Subscribe registers a handler for a specific event type
func (eb *DefaultEventBus) Subscribe(eventType EventType, handler EventHandler) SubscriptionID {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subID := eb.nextSubID
	eb.nextSubID++

	eb.subscribers[eventType] = append(eb.subscribers[eventType], subscription{
		id:      subID,
		handler: handler,
	})

	return subID
}

// Unsubscribe removes a subscription by ID
func (eb *DefaultEventBus) Unsubscribe(id SubscriptionID) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for eventType, subs := range eb.subscribers {
		for i, sub := range subs {
			if sub.id == id {
				eb.subscribers[eventType] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish queues an event. When the queue is full the event is dropped
// rather than stalling the detection loop.
func (eb *DefaultEventBus) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case <-eb.stopCh:
		eb.logger.Debug(fmt.Sprintf("Dropped event (bus stopped): %v", event.Type))
		return
	default:
	}

	select {
	case eb.eventQueue <- event:
	case <-eb.stopCh:
		eb.logger.Debug(fmt.Sprintf("Dropped event (bus stopped): %v", event.Type))
	default:
		eb.logger.Warn(fmt.Sprintf("Event queue full, dropping %v", event.Type))
	}
}

// Stop stops the event bus and drains remaining events. Safe to call twice.
func (eb *DefaultEventBus) Stop() {
	eb.stopOnce.Do(func() {
		close(eb.stopCh)
	})
	eb.wg.Wait()
}

func (eb *DefaultEventBus) processEvents() {
	defer eb.wg.Done()

	for {
		select {
		case event := <-eb.eventQueue:
			eb.dispatch(event)

		case <-eb.stopCh:
			for {
				select {
				case event := <-eb.eventQueue:
					eb.dispatch(event)
				default:
					return
				}
			}
		}
	}
}

func (eb *DefaultEventBus) dispatch(event Event) {
	eb.mu.RLock()
	subs := eb.subscribers[event.Type]
	handlers := make([]EventHandler, len(subs))
	for i, sub := range subs {
		handlers[i] = sub.handler
	}
	eb.mu.RUnlock()

	for _, handler := range handlers {
		eb.safeHandlerCall(handler, event)
	}
}

// safeHandlerCall calls a handler with panic recovery
func (eb *DefaultEventBus) safeHandlerCall(handler EventHandler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error(fmt.Sprintf("Handler panic for event %v", event.Type), fmt.Errorf("%v", r))
		}
	}()

	handler(event)
}

// GetSubscriberCount returns the number of subscribers for an event type
func (eb *DefaultEventBus) GetSubscriberCount(eventType EventType) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	return len(eb.subscribers[eventType])
}

// GetQueueSize returns the current number of events in the queue
func (eb *DefaultEventBus) GetQueueSize() int {
	return len(eb.eventQueue)
}
