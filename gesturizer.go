package pointerflow

import (
	"time"

	"github.com/google/uuid"
)

// newSession returns a time-ordered id for one gesture lifetime.
func newSession() string {
	return uuid.Must(uuid.NewV7()).String()
}

func newGestureEvent(kind string, id EntityID, g *TransformGesture, pointers []*Pointer) *GestureEvent {
	return &GestureEvent{
		EventBase: EventBase{Kind: kind, Timestamp: time.Now()},
		ID:        id,
		Context:   g.Context,
		Transform: g.Transform(),
		Origin:    g.Origin(),
		Pointers:  pointers,
		Session:   g.Session,
	}
}

// Gesturize keeps one TransformGesture per entity in sync with the pointers
// attached to it and dispatches gesturestart, gesturemove and gestureend
// events. It must run after the device adapters.
//
// A start for an entity that already has a gesture rebases it onto the
// enlarged pointer set; an end that leaves pointers behind rebases it onto
// the remaining ones. Neither is visible as motion.
func Gesturize() Middleware {
	return func(data *EventData, p *Processor) Result {
		if len(data.IDs) == 0 {
			return Next()
		}
		pointers, ok := Get(p, PointersKey)
		if !ok || pointers == nil {
			return Next()
		}
		gestures, _ := Get(p, GesturesKey)

		switch data.EventType {
		case EventStart:
			for _, id := range data.IDs {
				own := pointers.ForEntity(id)
				if g := gestures[id]; g != nil {
					g.Rebase(FromPointers(own))
					continue
				}
				if len(own) == 0 {
					continue
				}
				g := NewTransformGesture(FromPointers(own), map[string]any{"id": id})
				g.Session = newSession()
				if gestures == nil {
					gestures = make(GestureMap)
				}
				gestures[id] = g
				// Stored before dispatching so nested middleware see it.
				Set(p, GesturesKey, gestures)
				p.Dispatch(newGestureEvent(GestureStart, id, g, own))
			}

		case EventMove:
			for _, id := range data.IDs {
				g := gestures[id]
				if g == nil {
					continue
				}
				own := pointers.ForEntity(id)
				if len(own) == 0 {
					continue
				}
				g.SetTarget(FromPointers(own).Patch())
				p.Dispatch(newGestureEvent(GestureMove, id, g, own))
			}

		case EventEnd:
			for _, id := range data.IDs {
				g := gestures[id]
				if g == nil {
					continue
				}
				if own := pointers.ForEntity(id); len(own) > 0 {
					g.Rebase(FromPointers(own))
					continue
				}
				delete(gestures, id)
				p.Dispatch(newGestureEvent(GestureEnd, id, g, data.Pointers))
			}
		}

		if gestures != nil {
			Set(p, GesturesKey, gestures)
			debugCheckGestures(p, gestures)
		}
		return Next()
	}
}

// ReduceIDs maintains the ids state key: an entity is appended when a
// gesture or atom starts for it and removed once when one ends.
func ReduceIDs() Middleware {
	return func(data *EventData, p *Processor) Result {
		var id EntityID
		var start bool
		switch ev := data.Event.(type) {
		case *GestureEvent:
			id = ev.ID
			start = ev.Kind == GestureStart
			if !start && ev.Kind != GestureEnd {
				return Next()
			}
		case *AtomEvent:
			id = ev.ID
			start = ev.Kind == AtomStart
			if !start && ev.Kind != AtomEnd {
				return Next()
			}
		default:
			return Next()
		}

		Update(p, IDsKey, func(ids []EntityID, _ bool) []EntityID {
			if start {
				return append(ids, id)
			}
			for i, existing := range ids {
				if existing == id {
					return append(ids[:i:i], ids[i+1:]...)
				}
			}
			return ids
		})
		return Next()
	}
}
