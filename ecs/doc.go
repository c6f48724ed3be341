// Package ecs provides ECS adapters for pointerflow's gesture and atom events.
//
// The primary adapter is [NewDonburiBridge], which forwards gesture and atom
// events dispatched through a pointerflow processor into a [Donburi] world as
// typed events. Subscribe to [GestureEventType] or [AtomEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	bridge := ecs.NewDonburiBridge(world)
//	handler := pointerflow.NewDragHandler(pointerflow.DefaultConfig())
//	handler.Use(bridge.Middleware())
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
