package pointerflow

// DragHandler is a Processor preconfigured to turn device input into
// gesture events: classification, the device adapters, Gesturize, ReduceIDs
// and PreventDefault.
type DragHandler struct {
	*Processor
}

// NewDragHandler creates a DragHandler from cfg.
func NewDragHandler(cfg Config) *DragHandler {
	p := NewProcessor(cfg)
	Set(p, IDsKey, []EntityID{})
	p.Use(
		Classify(DefaultEventMap()),
		Adapters(),
		Gesturize(),
		ReduceIDs(),
		PreventDefault(false),
	)
	return &DragHandler{Processor: p}
}

// On calls fn for events named in types, or for every event when types is
// empty. Callbacks run after the built-in chain, in registration order.
func (h *DragHandler) On(fn func(ev Event), types ...string) *DragHandler {
	h.Use(SideEffect(fn, types...))
	return h
}

// OnGesture is On restricted to gesture events.
func (h *DragHandler) OnGesture(fn func(ev *GestureEvent)) *DragHandler {
	return h.On(func(ev Event) {
		if g, ok := ev.(*GestureEvent); ok {
			fn(g)
		}
	}, GestureStart, GestureMove, GestureEnd)
}

// IDs returns the entities with a live gesture.
func (h *DragHandler) IDs() []EntityID {
	ids, _ := Get(h.Processor, IDsKey)
	return ids
}

// AtomicHandler is a Processor preconfigured to report every contact on its
// own: classification, the device adapters, Atomize, ReduceIDs and
// PreventDefault.
type AtomicHandler struct {
	*Processor
}

// NewAtomicHandler creates an AtomicHandler from cfg.
func NewAtomicHandler(cfg Config) *AtomicHandler {
	p := NewProcessor(cfg)
	Set(p, IDsKey, []EntityID{})
	p.Use(
		Classify(DefaultEventMap()),
		Adapters(),
		Atomize(),
		ReduceIDs(),
		PreventDefault(false),
	)
	return &AtomicHandler{Processor: p}
}

// On calls fn for events named in types, or for every event when types is
// empty.
func (h *AtomicHandler) On(fn func(ev Event), types ...string) *AtomicHandler {
	h.Use(SideEffect(fn, types...))
	return h
}

// OnAtom is On restricted to atom events.
func (h *AtomicHandler) OnAtom(fn func(ev *AtomEvent)) *AtomicHandler {
	return h.On(func(ev Event) {
		if a, ok := ev.(*AtomEvent); ok {
			fn(a)
		}
	}, AtomStart, AtomMove, AtomEnd)
}

// IDs returns the entities with at least one live contact.
func (h *AtomicHandler) IDs() []EntityID {
	ids, _ := Get(h.Processor, IDsKey)
	return ids
}
