package pointerflow

// MouseContact is the contact id of the single mouse pointer.
const MouseContact ContactID = "mouse"

func mouseDetail(ev *MouseEvent) PointerDetail {
	d := PointerDetail{
		Identifier: MouseContact,
		ClientX:    ev.ClientX,
		ClientY:    ev.ClientY,
		Buttons:    ev.Buttons,
		Source:     ev,
	}
	if ev.Buttons != 0 {
		d.Pressure = 0.5
	}
	return d
}

// MouseAdapter tracks the mouse as a pointer. A start attaches it to the
// entity passed as the first dispatch argument; moves and the final end are
// reported for that entity until the pointer is released.
func MouseAdapter() Middleware {
	return func(data *EventData, p *Processor) Result {
		if data.Device != DeviceMouse {
			return Next()
		}
		ev, ok := data.Event.(*MouseEvent)
		if !ok {
			return Next()
		}
		pointers, _ := Get(p, PointersKey)

		if data.EventType == EventStart {
			id := EntityFromArgs(data.Args)
			if id == NoEntity {
				return Next()
			}
			ptr := NewPointer(id, mouseDetail(ev), PointerContext{
				Device:    DeviceMouse,
				StartTime: ev.Timestamp,
				Modifiers: ev.Modifiers,
				Button:    ev.Button,
			})
			data.IDs = []EntityID{id}
			data.Pointers = []*Pointer{ptr}
			if pointers == nil {
				pointers = make(PointerMap)
			}
			pointers[MouseContact] = ptr
			Set(p, PointersKey, pointers)
			return Next()
		}

		ptr := pointers[MouseContact]
		if ptr == nil {
			return Next()
		}
		if data.EventType == EventMove {
			ptr.Detail = mouseDetail(ev)
		}
		data.IDs = []EntityID{ptr.ID}
		data.Pointers = []*Pointer{ptr}
		if data.EventType == EventEnd {
			delete(pointers, MouseContact)
		}
		return Next()
	}
}

// TrackMousePosition stores the last seen mouse position under
// MousePositionKey.
func TrackMousePosition() Middleware {
	return func(data *EventData, p *Processor) Result {
		if data.Device != DeviceMouse {
			return Next()
		}
		ev, ok := data.Event.(*MouseEvent)
		if !ok {
			return Next()
		}
		consume(ev)
		Set(p, MousePositionKey, Vec2{X: ev.ClientX, Y: ev.ClientY})
		return Next()
	}
}

// consume prevents the default handling of ev when it is cancelable.
func consume(ev Event) {
	if c, ok := ev.(Cancelable); ok {
		c.PreventDefault()
	}
}
