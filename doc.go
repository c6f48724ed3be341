// Package pointerflow turns mouse, touch, pen, wheel and keyboard input into
// per-entity pointers and continuous pan, zoom and rotate gestures.
//
// Input flows through a [Processor]: an ordered middleware chain followed by
// an afterware chain, sharing a typed state store. Classification, device
// adapters, gesture tracking and application callbacks are all middleware.
//
// # Quick start
//
// [NewDragHandler] assembles the usual chain. Feed it events from an input
// source and react to gesture events:
//
//	handler := pointerflow.NewDragHandler(pointerflow.DefaultConfig())
//	handler.OnGesture(func(ev *pointerflow.GestureEvent) {
//		fmt.Println(ev.Type(), ev.ID, ev.Transform)
//	})
//
//	source := pointerflow.NewEbitenSource(nil, hitTest)
//	handler.Register(pointerflow.EbitenEventNames, source)
//
//	// in Game.Update:
//	source.Poll()
//
// Start events carry the entity they begin on as the first dispatch
// argument. Every later event of the same contact is attributed to that
// entity by the adapters.
//
// # Gestures
//
// [Gesturize] keeps one [TransformGesture] per entity. Its transform is the
// displacement since the gesture began, aggregated over every pointer on
// the entity with [FromPointers]. When a pointer joins or leaves, the
// gesture is rebased so the reported transform does not jump.
//
// [Viewport] applies gesture and wheel events to a pan and zoom view with
// zoom-to-cursor, zoom limits, bounds clamping and animated scrolling
// (via [gween]).
//
// # Middleware
//
// A middleware returns [Next], [Abort] or [Fail]. Abort and Fail both stop
// the middleware chain; afterware runs regardless. Panics are recovered and
// treated as failures. Failures are logged through [golog] unless the
// processor is in production mode (POINTERFLOW_ENV=production).
//
// State is read and written through typed keys:
//
//	var selected = pointerflow.NewKey[pointerflow.EntityID]("selected")
//	pointerflow.Set(p, selected, "canvas")
//	id, ok := pointerflow.Get(p, selected)
//
// # Input sources
//
// [EbitenSource] polls [Ebitengine] input, [TerminalSource] reads [tcell]
// events and [RemoteTarget] accepts browser events over WebSocket.
// [Injector] and [ScriptRunner] produce scripted input for tests and demos.
// ECS integration lives in pointerflow/ecs ([Donburi] adapter).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [golog]: https://github.com/kataras/golog
// [tcell]: https://github.com/gdamore/tcell
// [Donburi]: https://github.com/yohamta/donburi
package pointerflow
