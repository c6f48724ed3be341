package pointerflow

import "time"

func newAtomEvent(kind string, ptr *Pointer, ctx map[string]any) *AtomEvent {
	return &AtomEvent{
		EventBase: EventBase{Kind: kind, Timestamp: time.Now()},
		ID:        ptr.ID,
		Pointer:   ptr,
		Context:   ctx,
	}
}

// Atomize dispatches one atomstart, atommove or atomend event per pointer in
// the batch. Each contact gets a context map on start, kept under
// PointerContextsKey until the contact ends, which handlers may use to carry
// per-contact state across its events.
func Atomize() Middleware {
	return func(data *EventData, p *Processor) Result {
		if data.Pointers == nil {
			return Next()
		}
		contexts, _ := Get(p, PointerContextsKey)

		switch data.EventType {
		case EventStart:
			for _, ptr := range data.Pointers {
				ctx := make(map[string]any)
				if contexts == nil {
					contexts = make(PointerContexts)
				}
				contexts[ptr.Detail.Identifier] = ctx
				Set(p, PointerContextsKey, contexts)
				p.Dispatch(newAtomEvent(AtomStart, ptr, ctx))
			}
		case EventMove, EventEnd:
			kind := AtomMove
			if data.EventType == EventEnd {
				kind = AtomEnd
			}
			for _, ptr := range data.Pointers {
				p.Dispatch(newAtomEvent(kind, ptr, contexts[ptr.Detail.Identifier]))
				if data.EventType == EventEnd && contexts != nil {
					delete(contexts, ptr.Detail.Identifier)
				}
			}
		default:
			return Next()
		}

		if contexts != nil {
			Set(p, PointerContextsKey, contexts)
		}
		return Next()
	}
}
