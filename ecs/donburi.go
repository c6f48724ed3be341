// Package ecs provides ECS adapters for pointerflow.
package ecs

import (
	"github.com/phanxgames/pointerflow"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for gesture events.
// Subscribe to this in your ECS systems to receive gesture start, move and end.
var GestureEventType = events.NewEventType[pointerflow.GestureEvent]()

// AtomEventType is the Donburi event type for per-contact atom events.
var AtomEventType = events.NewEventType[pointerflow.AtomEvent]()

// DonburiBridge publishes pointerflow events into a Donburi world.
type DonburiBridge struct {
	world donburi.World
}

// NewDonburiBridge creates a bridge publishing into world. Events are queued
// and delivered by events.ProcessAllEvents or the event type's ProcessEvents.
func NewDonburiBridge(world donburi.World) *DonburiBridge {
	return &DonburiBridge{world: world}
}

// PublishGesture queues a copy of ev.
func (b *DonburiBridge) PublishGesture(ev *pointerflow.GestureEvent) {
	GestureEventType.Publish(b.world, *ev)
}

// PublishAtom queues a copy of ev.
func (b *DonburiBridge) PublishAtom(ev *pointerflow.AtomEvent) {
	AtomEventType.Publish(b.world, *ev)
}

// Middleware returns a middleware that publishes every gesture and atom event
// it sees. Register it after Gesturize or Atomize.
func (b *DonburiBridge) Middleware() pointerflow.Middleware {
	return func(data *pointerflow.EventData, _ *pointerflow.Processor) pointerflow.Result {
		switch ev := data.Event.(type) {
		case *pointerflow.GestureEvent:
			b.PublishGesture(ev)
		case *pointerflow.AtomEvent:
			b.PublishAtom(ev)
		}
		return pointerflow.Next()
	}
}
