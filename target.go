package pointerflow

import "sync"

// Listener receives events from an EventTarget.
type Listener interface {
	HandleEvent(ev Event, args ...any)
}

// EventTarget is anything a Processor can register on: an input source, a
// remote connection or an EventBus.
type EventTarget interface {
	AddEventListener(eventType string, l Listener)
	RemoveEventListener(eventType string, l Listener)
}

// Sink accepts events. Processors and emitters are sinks.
type Sink interface {
	Emit(ev Event, args ...any)
}

// Emitter is an EventTarget that delivers the events it is given to its
// listeners.
type Emitter interface {
	EventTarget
	Sink
}

// EventBus is an in-process Emitter. Listeners for one event type run in
// registration order. A listener registered twice for the same type is
// called once. Listeners must be comparable, typically pointers.
type EventBus struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
}

// NewEventBus returns an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{listeners: make(map[string][]Listener)}
}

// DefaultTarget is used by Register and Unregister when no target is given.
var DefaultTarget = NewEventBus()

// AddEventListener registers l for eventType.
func (b *EventBus) AddEventListener(eventType string, l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, existing := range b.listeners[eventType] {
		if existing == l {
			return
		}
	}
	b.listeners[eventType] = append(b.listeners[eventType], l)
}

// RemoveEventListener unregisters l for eventType.
func (b *EventBus) RemoveEventListener(eventType string, l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ls := b.listeners[eventType]
	for i := range ls {
		if ls[i] == l {
			copy(ls[i:], ls[i+1:])
			ls[len(ls)-1] = nil
			ls = ls[:len(ls)-1]
			break
		}
	}
	if len(ls) == 0 {
		delete(b.listeners, eventType)
		return
	}
	b.listeners[eventType] = ls
}

// Emit delivers ev to every listener registered for ev.Type().
func (b *EventBus) Emit(ev Event, args ...any) {
	b.mu.RLock()
	ls := append([]Listener(nil), b.listeners[ev.Type()]...)
	b.mu.RUnlock()
	for _, l := range ls {
		l.HandleEvent(ev, args...)
	}
}

// ListenerCount returns the number of listeners for eventType.
func (b *EventBus) ListenerCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[eventType])
}
