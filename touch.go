package pointerflow

import "strconv"

// TouchContactPrefix prefixes the contact ids of touch pointers.
const TouchContactPrefix = "t/"

func touchContact(t Touch) ContactID {
	return ContactID(TouchContactPrefix + strconv.Itoa(t.Identifier))
}

func touchDetail(ev *TouchEvent, t Touch) PointerDetail {
	return PointerDetail{
		Identifier: touchContact(t),
		ClientX:    t.ClientX,
		ClientY:    t.ClientY,
		Buttons:    1,
		Pressure:   t.Force,
		Source:     ev,
	}
}

// TouchAdapter tracks every changed touch as its own pointer. All touches of
// a start are attached to the entity passed as the first dispatch argument.
// Later batches report each entity touched by the batch once.
func TouchAdapter() Middleware {
	return func(data *EventData, p *Processor) Result {
		if data.Device != DeviceTouch {
			return Next()
		}
		ev, ok := data.Event.(*TouchEvent)
		if !ok {
			return Next()
		}
		pointers, _ := Get(p, PointersKey)

		if data.EventType == EventStart {
			id := EntityFromArgs(data.Args)
			if id == NoEntity {
				return Next()
			}
			if pointers == nil {
				pointers = make(PointerMap)
			}
			created := make([]*Pointer, 0, len(ev.ChangedTouches))
			for _, t := range ev.ChangedTouches {
				ptr := NewPointer(id, touchDetail(ev, t), PointerContext{
					Device:    DeviceTouch,
					StartTime: ev.Timestamp,
					Modifiers: ev.Modifiers,
					Button:    ButtonLeft,
				})
				pointers[ptr.Detail.Identifier] = ptr
				created = append(created, ptr)
			}
			data.IDs = []EntityID{id}
			data.Pointers = created
			Set(p, PointersKey, pointers)
			return Next()
		}

		if pointers == nil {
			return Next()
		}
		var touched []*Pointer
		var ids []EntityID
		for _, t := range ev.ChangedTouches {
			contact := touchContact(t)
			ptr := pointers[contact]
			if ptr == nil {
				continue
			}
			touched = append(touched, ptr)
			if data.EventType == EventMove {
				ptr.Detail = touchDetail(ev, t)
			}
			if !containsEntity(ids, ptr.ID) {
				ids = append(ids, ptr.ID)
			}
			if data.EventType == EventEnd {
				delete(pointers, contact)
			}
		}
		if ids != nil {
			data.IDs = ids
		}
		if touched != nil {
			data.Pointers = touched
		}
		return Next()
	}
}

func containsEntity(ids []EntityID, id EntityID) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
