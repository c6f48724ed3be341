package pointerflow

import "strconv"

// PointerContactPrefix prefixes the contact ids of unified pointer events.
const PointerContactPrefix = "p/"

// PointerCancel is the event name of a canceled pointer.
const PointerCancel = "pointercancel"

func penContact(ev *PointerEvent) ContactID {
	return ContactID(PointerContactPrefix + strconv.Itoa(ev.PointerID))
}

func penDetail(ev *PointerEvent) PointerDetail {
	d := PointerDetail{
		Identifier: penContact(ev),
		ClientX:    ev.ClientX,
		ClientY:    ev.ClientY,
		Buttons:    ev.Buttons,
		Cancel:     ev.Kind == PointerCancel,
		Source:     ev,
	}
	// Pressure is only meaningful while a button is held. Devices that
	// report none while pressed get full pressure.
	if ev.Buttons != 0 {
		d.Pressure = ev.Pressure
		if d.Pressure == 0 {
			d.Pressure = 1
		}
	}
	return d
}

func penPointer(id EntityID, ev *PointerEvent) *Pointer {
	device := ev.PointerType
	if device == "" {
		device = DevicePointer
	}
	return NewPointer(id, penDetail(ev), PointerContext{
		Device:    device,
		StartTime: ev.Timestamp,
		Modifiers: ev.Modifiers,
		Button:    ev.Button,
	})
}

// PointerAdapter tracks unified pointer events (mouse, pen and touch
// reported through one event family). With handleUnidentified set, events
// that could not be attached to an entity are still reported in
// EventData.UnidentifiedPointers.
func PointerAdapter(handleUnidentified bool) Middleware {
	return func(data *EventData, p *Processor) Result {
		if data.Device != DevicePointer {
			return Next()
		}
		ev, ok := data.Event.(*PointerEvent)
		if !ok {
			return Next()
		}
		pointers, _ := Get(p, PointersKey)

		if data.EventType == EventStart {
			if id := EntityFromArgs(data.Args); id != NoEntity {
				consume(ev)
				ptr := penPointer(id, ev)
				data.IDs = []EntityID{id}
				data.Pointers = []*Pointer{ptr}
				if pointers == nil {
					pointers = make(PointerMap)
				}
				pointers[ptr.Detail.Identifier] = ptr
				Set(p, PointersKey, pointers)
			}
		} else if ptr := pointers[penContact(ev)]; ptr != nil {
			consume(ev)
			ptr.Detail = penDetail(ev)
			data.IDs = []EntityID{ptr.ID}
			data.Pointers = []*Pointer{ptr}
			if data.EventType == EventEnd {
				delete(pointers, ptr.Detail.Identifier)
			}
		}

		if handleUnidentified && data.IDs == nil {
			consume(ev)
			data.UnidentifiedPointers = []*Pointer{penPointer(NoEntity, ev)}
		}
		return Next()
	}
}
