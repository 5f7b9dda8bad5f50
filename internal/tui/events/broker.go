package events

import (
	"sync"
)

// Broker fans events out to subscriber channels. Publish never blocks: a
// subscriber whose buffer is full misses the event, which is acceptable for
// status traffic. Anything that must reach the UI goes through IdleQueue.
type Broker struct {
	subscribers map[EventType][]chan Event
	mu          sync.RWMutex
	bufferSize  int
}

// NewBroker creates a new event broker
func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[EventType][]chan Event),
		bufferSize:  16,
	}
}

// Subscribe creates a subscription to specific event types, or to all of
// them when none are given.
func (b *Broker) Subscribe(eventTypes ...EventType) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.bufferSize)
	if len(eventTypes) == 0 {
		eventTypes = []EventType{wildcard}
	}
	for _, eventType := range eventTypes {
		b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	}
	return ch
}

// Unsubscribe removes the subscription and closes its channel.
func (b *Broker) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var closed bool
	for eventType, subscribers := range b.subscribers {
		for i, sub := range subscribers {
			if sub != ch {
				continue
			}
			b.subscribers[eventType] = append(subscribers[:i], subscribers[i+1:]...)
			if !closed {
				close(sub)
				closed = true
			}
			break
		}
		if len(b.subscribers[eventType]) == 0 {
			delete(b.subscribers, eventType)
		}
	}
}

// Publish sends an event to all matching subscribers
func (b *Broker) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	b.deliver(b.subscribers[event.Type], event)
	b.deliver(b.subscribers[wildcard], event)
}

// PublishStatus is shorthand for a StatusMessageEvent.
func (b *Broker) PublishStatus(kind StatusKind, message string) {
	eventType := StatusMessageEvent
	if kind == StatusError {
		eventType = ErrorMessageEvent
	}
	b.Publish(Event{
		Type:    eventType,
		Payload: StatusMessagePayload{Message: message, Type: kind},
	})
}

func (b *Broker) deliver(subscribers []chan Event, event Event) {
	for _, ch := range subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, skip this event
		}
	}
}

// Clear removes all subscriptions
func (b *Broker) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	seen := make(map[chan Event]bool)
	for _, subscribers := range b.subscribers {
		for _, ch := range subscribers {
			if !seen[ch] {
				close(ch)
				seen[ch] = true
			}
		}
	}
	b.subscribers = make(map[EventType][]chan Event)
}
