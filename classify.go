package pointerflow

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Classification is the abstract device and phase of a concrete event name.
type Classification struct {
	Device    DeviceType
	EventType EventType
}

// EventMap maps concrete event names to classifications.
type EventMap map[string]Classification

// DefaultEventMap returns a fresh copy of the built-in event map.
func DefaultEventMap() EventMap {
	return EventMap{
		"mousedown":      {DeviceMouse, EventStart},
		"mousemove":      {DeviceMouse, EventMove},
		"mouseup":        {DeviceMouse, EventEnd},
		"touchstart":     {DeviceTouch, EventStart},
		"touchmove":      {DeviceTouch, EventMove},
		"touchend":       {DeviceTouch, EventEnd},
		"touchcancel":    {DeviceTouch, EventEnd},
		"pointerdown":    {DevicePointer, EventStart},
		"pointermove":    {DevicePointer, EventMove},
		"pointerup":      {DevicePointer, EventEnd},
		"pointercancel":  {DevicePointer, EventEnd},
		"keydown":        {DeviceKey, EventStart},
		"keyup":          {DeviceKey, EventEnd},
		"wheel":          {DeviceWheel, EventWheel},
		"mousewheel":     {DeviceWheel, EventWheel},
		"DOMMouseScroll": {DeviceWheel, EventWheel},
		GestureStart:     {DeviceGesture, EventStart},
		GestureMove:      {DeviceGesture, EventMove},
		GestureEnd:       {DeviceGesture, EventEnd},
		AtomStart:        {DeviceAtom, EventStart},
		AtomMove:         {DeviceAtom, EventMove},
		AtomEnd:          {DeviceAtom, EventEnd},
	}
}

// Merge returns a copy of m with the entries of o added or replaced.
func (m EventMap) Merge(o EventMap) EventMap {
	out := make(EventMap, len(m)+len(o))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range o {
		out[k] = v
	}
	return out
}

// LoadEventMap reads an event map from YAML (or JSON) in the form
//
//	mousedown: [mouse, start]
//	pencilhover: [pen, move]
//
// and returns it merged over DefaultEventMap.
func LoadEventMap(r io.Reader) (EventMap, error) {
	var raw map[string][]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode event map: %w", err)
	}
	loaded := make(EventMap, len(raw))
	for name, pair := range raw {
		if len(pair) != 2 || pair[0] == "" || pair[1] == "" {
			return nil, fmt.Errorf("%w: %q needs [device, eventType], got %v", ErrInvalidEventMap, name, pair)
		}
		loaded[name] = Classification{
			Device:    DeviceType(strings.ToLower(pair[0])),
			EventType: EventType(strings.ToLower(pair[1])),
		}
	}
	return DefaultEventMap().Merge(loaded), nil
}

// Classify tags each event with the Device and EventType found in m.
// Unmapped events pass through untagged.
func Classify(m EventMap) Middleware {
	return func(data *EventData, _ *Processor) Result {
		if c, ok := m[data.Event.Type()]; ok {
			data.Device = c.Device
			data.EventType = c.EventType
		}
		return Next()
	}
}

// Filter aborts the middleware chain when pred returns false.
func Filter(pred func(data *EventData, p *Processor) bool) Middleware {
	return func(data *EventData, p *Processor) Result {
		if !pred(data, p) {
			return Abort()
		}
		return Next()
	}
}

// SideEffect calls fn for events whose name is one of types, or for every
// event when types is empty.
func SideEffect(fn func(ev Event), types ...string) Middleware {
	return func(data *EventData, _ *Processor) Result {
		if len(types) > 0 && !slices.Contains(types, data.Event.Type()) {
			return Next()
		}
		fn(data.Event)
		return Next()
	}
}

// PreventDefault marks cancelable events consumed once an adapter has
// attached them to entities. With unknown set every cancelable event is
// consumed.
func PreventDefault(unknown bool) Middleware {
	return func(data *EventData, _ *Processor) Result {
		if !unknown && data.IDs == nil {
			return Next()
		}
		if c, ok := data.Event.(Cancelable); ok {
			c.PreventDefault()
		}
		return Next()
	}
}

// LogEvents logs events attached to entities, or every event with unknown
// set. Nothing is logged in production.
func LogEvents(unknown bool) Middleware {
	return func(data *EventData, p *Processor) Result {
		if p.Production() || (!unknown && data.IDs == nil) {
			return Next()
		}
		p.Logger().Infof("event %s device=%s type=%s ids=%v",
			data.Event.Type(), data.Device, data.EventType, data.IDs)
		return Next()
	}
}
