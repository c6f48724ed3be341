package pointerflow

import "time"

// Event is anything that can be dispatched through a Processor. Type returns
// the concrete event name (e.g. "mousedown", "touchmove", "gestureend") that
// the classifier maps to a device and an abstract EventType.
type Event interface {
	Type() string
}

// Cancelable is implemented by events whose default handling can be
// suppressed by a middleware.
type Cancelable interface {
	Event
	PreventDefault()
	DefaultPrevented() bool
}

// EventBase carries the fields every built-in event shares. Embed it in
// custom events to get Type, PreventDefault and DefaultPrevented.
type EventBase struct {
	Kind       string
	Timestamp  time.Time
	Cancelable bool

	prevented bool
}

// NewEventBase returns a cancelable EventBase of the given kind stamped with
// the current time.
func NewEventBase(kind string) EventBase {
	return EventBase{Kind: kind, Timestamp: time.Now(), Cancelable: true}
}

// Type returns the event name.
func (e *EventBase) Type() string { return e.Kind }

// PreventDefault marks the event as consumed. No-op for non-cancelable events.
func (e *EventBase) PreventDefault() {
	if e.Cancelable {
		e.prevented = true
	}
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *EventBase) DefaultPrevented() bool { return e.prevented }

// MouseEvent is a mouse press, move or release.
type MouseEvent struct {
	EventBase
	ClientX, ClientY float64
	Button           PointerButton
	Buttons          int // bitmask of held buttons, DOM numbering
	Modifiers        KeyModifiers
}

// Touch is a single contact point inside a TouchEvent.
type Touch struct {
	Identifier       int
	ClientX, ClientY float64
	Force            float64
}

// TouchEvent reports the touches that changed in one batch.
type TouchEvent struct {
	EventBase
	ChangedTouches []Touch
	Modifiers      KeyModifiers
}

// PointerEvent is a unified pointer (mouse, pen or touch) event.
type PointerEvent struct {
	EventBase
	PointerID        int
	PointerType      DeviceType
	ClientX, ClientY float64
	Pressure         float64
	Button           PointerButton
	Buttons          int
	Modifiers        KeyModifiers
}

// KeyEvent is a key press or release. Key holds the logical key name
// (e.g. "a", "Control", "ArrowUp").
type KeyEvent struct {
	EventBase
	Key       string
	Repeat    bool
	Modifiers KeyModifiers
}

// WheelEvent is a scroll wheel or trackpad scroll.
type WheelEvent struct {
	EventBase
	ClientX, ClientY float64
	DeltaX, DeltaY   float64
	Modifiers        KeyModifiers
}

// Gesture event names.
const (
	GestureStart = "gesturestart"
	GestureMove  = "gesturemove"
	GestureEnd   = "gestureend"
)

// GestureEvent is dispatched by Gesturize when a gesture starts, moves or ends.
type GestureEvent struct {
	EventBase
	ID        EntityID
	Context   map[string]any
	Transform TransformData // displacement since the gesture started
	Origin    TransformData // anchor the transform is currently measured from
	Pointers  []*Pointer    // pointers backing the gesture for this batch
	Session   string        // unique per gesture lifetime
}

// Atom event names.
const (
	AtomStart = "atomstart"
	AtomMove  = "atommove"
	AtomEnd   = "atomend"
)

// AtomEvent is dispatched by Atomize once per pointer per batch.
type AtomEvent struct {
	EventBase
	ID      EntityID
	Pointer *Pointer
	Context map[string]any
}
